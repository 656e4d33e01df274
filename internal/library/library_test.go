package library

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/codr1/themesmith/internal/models"
	"github.com/codr1/themesmith/internal/storage"
)

type fixedClock struct {
	now time.Time
}

func (c *fixedClock) Now() time.Time {
	c.now = c.now.Add(time.Second)
	return c.now
}

func newTestLibrary(t *testing.T) (*Library, *storage.Memory) {
	t.Helper()
	store := storage.NewMemory()
	clock := &fixedClock{now: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
	return New(store, Options{Now: clock.Now}), store
}

func newTheme(t *testing.T, name string) *models.Theme {
	t.Helper()
	theme, err := models.NewTheme(models.ThemeConfig{Name: name})
	if err != nil {
		t.Fatalf("NewTheme(%q) error = %v", name, err)
	}
	return theme
}

func TestSaveLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	lib, _ := newTestLibrary(t)
	theme := newTheme(t, "Studio")
	if err := theme.LinkColor("ring", "primary"); err != nil {
		t.Fatalf("LinkColor() error = %v", err)
	}

	meta, err := lib.Save(ctx, theme)
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if meta.ID != theme.ID() || meta.Name != "Studio" || !meta.Valid || meta.Score != 100 {
		t.Fatalf("unexpected metadata: %+v", meta)
	}
	if len(meta.Checksum) != 64 {
		t.Fatalf("checksum length = %d, want 64", len(meta.Checksum))
	}

	loaded, err := lib.Load(ctx, theme.ID())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded.HasChanges(theme) {
		t.Fatalf("loaded theme differs from saved theme")
	}
	if target, ok := loaded.Light().LinkTarget("ring"); !ok || target != "primary" {
		t.Fatalf("ring link lost: %q %v", target, ok)
	}
}

func TestLoadMissing(t *testing.T) {
	lib, _ := newTestLibrary(t)
	if _, err := lib.Load(context.Background(), "nope"); !errors.Is(err, ErrThemeNotFound) {
		t.Fatalf("Load() error = %v, want ErrThemeNotFound", err)
	}
	if err := lib.Delete(context.Background(), "nope"); !errors.Is(err, ErrThemeNotFound) {
		t.Fatalf("Delete() error = %v, want ErrThemeNotFound", err)
	}
}

func TestLoadDetectsTampering(t *testing.T) {
	ctx := context.Background()
	lib, store := newTestLibrary(t)
	theme := newTheme(t, "Original")
	if _, err := lib.Save(ctx, theme); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	doc, err := store.Get(ctx, themeKey(theme.ID()))
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	tampered := strings.Replace(string(doc), `"Original"`, `"Edited"`, 1)
	if err := store.Set(ctx, themeKey(theme.ID()), []byte(tampered)); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	if _, err := lib.Load(ctx, theme.ID()); !errors.Is(err, ErrChecksumMismatch) {
		t.Fatalf("Load() error = %v, want ErrChecksumMismatch", err)
	}
}

func TestListOrdersByName(t *testing.T) {
	ctx := context.Background()
	lib, _ := newTestLibrary(t)
	for _, name := range []string{"Sunset", "Autumn", "Mist"} {
		if _, err := lib.Save(ctx, newTheme(t, name)); err != nil {
			t.Fatalf("Save(%q) error = %v", name, err)
		}
	}

	list, err := lib.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	var names []string
	for _, meta := range list {
		names = append(names, meta.Name)
	}
	if strings.Join(names, ",") != "Autumn,Mist,Sunset" {
		t.Fatalf("List() names = %v", names)
	}
}

func TestInvalidThemeIsStoredWithMetadata(t *testing.T) {
	ctx := context.Background()
	lib, _ := newTestLibrary(t)
	theme, err := models.NewTheme(models.ThemeConfig{
		Name:        "Partial",
		LightColors: map[string]string{"primary": "#000000"},
		DarkColors:  map[string]string{"primary": "#ffffff"},
	})
	if err != nil {
		t.Fatalf("NewTheme() error = %v", err)
	}

	meta, err := lib.Save(ctx, theme)
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if meta.Valid || meta.Score >= 100 {
		t.Fatalf("expected invalid metadata, got %+v", meta)
	}
}

func TestUpdateAppliesOrLeavesUntouched(t *testing.T) {
	ctx := context.Background()
	lib, _ := newTestLibrary(t)
	theme := newTheme(t, "Editable")
	if _, err := lib.Save(ctx, theme); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	updated, err := lib.Update(ctx, theme.ID(), func(th *models.Theme) error {
		return th.UpdateColor("primary", "#123456", "#abcdef")
	})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if value, _ := updated.Light().Color("primary"); value != "#123456" {
		t.Fatalf("primary = %q", value)
	}

	_, err = lib.Update(ctx, theme.ID(), func(th *models.Theme) error {
		return th.UpdateColor("primary", "#000000", "not-a-color")
	})
	if !errors.Is(err, models.ErrInvalidFormat) {
		t.Fatalf("Update() error = %v, want ErrInvalidFormat", err)
	}
	reloaded, err := lib.Load(ctx, theme.ID())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if value, _ := reloaded.Light().Color("primary"); value != "#123456" {
		t.Fatalf("failed update leaked: primary = %q", value)
	}
}

func TestImportExport(t *testing.T) {
	ctx := context.Background()
	lib, _ := newTestLibrary(t)

	if _, _, err := lib.ImportTheme(ctx, "  "); !errors.Is(err, ErrEmptyImport) {
		t.Fatalf("ImportTheme(blank) error = %v", err)
	}
	if _, _, err := lib.ImportTheme(ctx, "{not json"); !errors.Is(err, ErrInvalidDocument) {
		t.Fatalf("ImportTheme(malformed) error = %v, want ErrInvalidDocument", err)
	}
	if _, _, err := lib.ImportTheme(ctx, `{"name":"Bare"}`); !errors.Is(err, models.ErrMissingPalettes) {
		t.Fatalf("ImportTheme(no palettes) error = %v, want ErrMissingPalettes", err)
	}

	source := newTheme(t, "Portable")
	doc, err := source.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON() error = %v", err)
	}
	imported, meta, err := lib.ImportTheme(ctx, string(doc))
	if err != nil {
		t.Fatalf("ImportTheme() error = %v", err)
	}
	if imported.ID() != source.ID() || meta.Name != "Portable" {
		t.Fatalf("unexpected import: id=%s meta=%+v", imported.ID(), meta)
	}

	exported, err := lib.ExportTheme(ctx, source.ID())
	if err != nil {
		t.Fatalf("ExportTheme() error = %v", err)
	}
	if !strings.Contains(string(exported), `"lightModeConfig"`) {
		t.Fatalf("export missing lightModeConfig: %s", exported)
	}

	css, err := lib.ExportCSS(ctx, source.ID())
	if err != nil {
		t.Fatalf("ExportCSS() error = %v", err)
	}
	if !strings.HasPrefix(css, ":root {") || !strings.Contains(css, `[data-theme="dark"] {`) {
		t.Fatalf("unexpected css: %s", css)
	}
}

func TestDeleteRemovesBothRecords(t *testing.T) {
	ctx := context.Background()
	lib, store := newTestLibrary(t)
	theme := newTheme(t, "Short-lived")
	if _, err := lib.Save(ctx, theme); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if err := lib.Delete(ctx, theme.ID()); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	size, err := store.Size(ctx)
	if err != nil {
		t.Fatalf("Size() error = %v", err)
	}
	if size != 0 {
		t.Fatalf("store size = %d after delete, want 0", size)
	}
}

func TestSeedPresetsOnlyWhenEmpty(t *testing.T) {
	ctx := context.Background()
	lib, _ := newTestLibrary(t)
	presets := []*models.Theme{newTheme(t, "One"), newTheme(t, "Two")}

	seeded, err := lib.SeedPresets(ctx, presets)
	if err != nil || seeded != 2 {
		t.Fatalf("SeedPresets() = %d, %v; want 2, nil", seeded, err)
	}
	seeded, err = lib.SeedPresets(ctx, presets)
	if err != nil || seeded != 0 {
		t.Fatalf("second SeedPresets() = %d, %v; want 0, nil", seeded, err)
	}
	count, err := lib.Count(ctx)
	if err != nil || count != 2 {
		t.Fatalf("Count() = %d, %v", count, err)
	}
}
