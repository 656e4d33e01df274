// Package library persists themes over a storage.Store. Each theme is kept
// as its canonical JSON document under theme:<id> with a metadata record
// under meta:<id>.
package library

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/blake2b"

	"github.com/codr1/themesmith/internal/metrics"
	"github.com/codr1/themesmith/internal/models"
	"github.com/codr1/themesmith/internal/storage"
	"github.com/codr1/themesmith/internal/templates/layouts"
	"github.com/codr1/themesmith/internal/validation"
)

const (
	themePrefix = "theme:"
	metaPrefix  = "meta:"

	DefaultBackupPrefix = "backup:"
)

var (
	ErrThemeNotFound    = errors.New("theme not found")
	ErrChecksumMismatch = errors.New("stored theme does not match its checksum")
	ErrEmptyImport      = errors.New("import content is empty")
	ErrInvalidDocument  = errors.New("invalid theme document")
)

// Metadata summarizes a stored theme without decoding it.
type Metadata struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Version   string    `json:"version"`
	Checksum  string    `json:"checksum"`
	Valid     bool      `json:"valid"`
	Score     int       `json:"score"`
	UpdatedAt time.Time `json:"updatedAt"`
	SavedAt   time.Time `json:"savedAt"`
}

type Options struct {
	Engine       *validation.Engine
	Metrics      *metrics.Metrics
	BackupPrefix string
	Now          func() time.Time
}

type Library struct {
	store        storage.Store
	engine       *validation.Engine
	metrics      *metrics.Metrics
	backupPrefix string
	now          func() time.Time

	// mu serializes writes so a theme and its metadata never diverge.
	mu sync.Mutex
}

func New(store storage.Store, opts Options) *Library {
	if opts.Engine == nil {
		opts.Engine = validation.NewEngine(validation.Options{})
	}
	if opts.BackupPrefix == "" {
		opts.BackupPrefix = DefaultBackupPrefix
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Library{
		store:        store,
		engine:       opts.Engine,
		metrics:      opts.Metrics,
		backupPrefix: opts.BackupPrefix,
		now:          opts.Now,
	}
}

func themeKey(id string) string { return themePrefix + id }
func metaKey(id string) string  { return metaPrefix + id }

// Checksum is the hex BLAKE2b-256 digest of a stored document.
func Checksum(data []byte) string {
	sum := blake2b.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// Save stores the theme and refreshes its metadata. Invalid themes are
// stored too; the metadata records the validation outcome.
func (l *Library) Save(ctx context.Context, theme *models.Theme) (Metadata, error) {
	if theme == nil {
		return Metadata{}, fmt.Errorf("save theme: nil theme")
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.save(ctx, theme)
}

func (l *Library) save(ctx context.Context, theme *models.Theme) (Metadata, error) {
	doc, err := json.Marshal(theme)
	if err != nil {
		return Metadata{}, fmt.Errorf("encode theme %s: %w", theme.ID(), err)
	}

	report := l.engine.ValidateTheme(theme)
	l.metrics.ObserveValidation(report.IsValid, report.Score)

	meta := Metadata{
		ID:        theme.ID(),
		Name:      theme.Name(),
		Version:   theme.Version(),
		Checksum:  Checksum(doc),
		Valid:     report.IsValid,
		Score:     report.Score,
		UpdatedAt: theme.UpdatedAt(),
		SavedAt:   l.now().UTC(),
	}
	metaDoc, err := json.Marshal(meta)
	if err != nil {
		return Metadata{}, fmt.Errorf("encode metadata %s: %w", theme.ID(), err)
	}

	if err := storage.SetMany(ctx, l.store, map[string][]byte{
		themeKey(theme.ID()): doc,
		metaKey(theme.ID()):  metaDoc,
	}); err != nil {
		return Metadata{}, fmt.Errorf("store theme %s: %w", theme.ID(), err)
	}

	log.Ctx(ctx).Debug().
		Str("theme_id", meta.ID).
		Str("theme_name", meta.Name).
		Bool("valid", meta.Valid).
		Int("score", meta.Score).
		Msg("Theme saved")
	l.refreshCount(ctx)
	return meta, nil
}

// Load decodes a stored theme, checking it against its metadata checksum.
func (l *Library) Load(ctx context.Context, id string) (*models.Theme, error) {
	doc, err := l.store.Get(ctx, themeKey(id))
	if errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("load theme %s: %w", id, ErrThemeNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("load theme %s: %w", id, err)
	}

	meta, err := l.Metadata(ctx, id)
	if err == nil && meta.Checksum != "" && meta.Checksum != Checksum(doc) {
		return nil, fmt.Errorf("load theme %s: %w", id, ErrChecksumMismatch)
	}
	if err != nil && !errors.Is(err, ErrThemeNotFound) {
		return nil, err
	}

	theme, err := models.ThemeFromJSON(doc)
	if err != nil {
		return nil, fmt.Errorf("decode theme %s: %w", id, err)
	}
	return theme, nil
}

func (l *Library) Metadata(ctx context.Context, id string) (Metadata, error) {
	data, err := l.store.Get(ctx, metaKey(id))
	if errors.Is(err, storage.ErrNotFound) {
		return Metadata{}, fmt.Errorf("load metadata %s: %w", id, ErrThemeNotFound)
	}
	if err != nil {
		return Metadata{}, fmt.Errorf("load metadata %s: %w", id, err)
	}
	var meta Metadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return Metadata{}, fmt.Errorf("decode metadata %s: %w", id, err)
	}
	return meta, nil
}

// List returns metadata for every stored theme ordered by name, then id.
func (l *Library) List(ctx context.Context) ([]Metadata, error) {
	keys, err := l.store.Keys(ctx, metaPrefix)
	if err != nil {
		return nil, fmt.Errorf("list themes: %w", err)
	}
	out := make([]Metadata, 0, len(keys))
	for _, key := range keys {
		meta, err := l.Metadata(ctx, strings.TrimPrefix(key, metaPrefix))
		if errors.Is(err, ErrThemeNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		out = append(out, meta)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (l *Library) Count(ctx context.Context) (int, error) {
	keys, err := l.store.Keys(ctx, metaPrefix)
	if err != nil {
		return 0, fmt.Errorf("count themes: %w", err)
	}
	return len(keys), nil
}

func (l *Library) Delete(ctx context.Context, id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	exists, err := l.store.Has(ctx, themeKey(id))
	if err != nil {
		return fmt.Errorf("delete theme %s: %w", id, err)
	}
	if !exists {
		return fmt.Errorf("delete theme %s: %w", id, ErrThemeNotFound)
	}
	if err := l.store.Remove(ctx, metaKey(id)); err != nil {
		return fmt.Errorf("delete metadata %s: %w", id, err)
	}
	if err := l.store.Remove(ctx, themeKey(id)); err != nil {
		return fmt.Errorf("delete theme %s: %w", id, err)
	}
	log.Ctx(ctx).Info().Str("theme_id", id).Msg("Theme deleted")
	l.refreshCount(ctx)
	return nil
}

// Update loads a theme, applies fn and saves the result. Nothing is written
// when fn fails.
func (l *Library) Update(ctx context.Context, id string, fn func(*models.Theme) error) (*models.Theme, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	theme, err := l.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := fn(theme); err != nil {
		return nil, err
	}
	if _, err := l.save(ctx, theme); err != nil {
		return nil, err
	}
	return theme, nil
}

// ImportTheme parses a theme document, canonical or legacy, and stores it
// under the id it carries. An existing theme with that id is replaced.
func (l *Library) ImportTheme(ctx context.Context, content string) (*models.Theme, Metadata, error) {
	if strings.TrimSpace(content) == "" {
		return nil, Metadata{}, ErrEmptyImport
	}
	theme, err := models.ThemeFromJSON([]byte(content))
	if err != nil {
		return nil, Metadata{}, fmt.Errorf("import theme: %w: %w", ErrInvalidDocument, err)
	}
	meta, err := l.Save(ctx, theme)
	if err != nil {
		return nil, Metadata{}, err
	}
	log.Ctx(ctx).Info().Str("theme_id", meta.ID).Str("theme_name", meta.Name).Msg("Theme imported")
	return theme, meta, nil
}

// ExportTheme returns the indented JSON document for id.
func (l *Library) ExportTheme(ctx context.Context, id string) ([]byte, error) {
	theme, err := l.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	return theme.ToJSON()
}

func (l *Library) ExportCSS(ctx context.Context, id string) (string, error) {
	theme, err := l.Load(ctx, id)
	if err != nil {
		return "", err
	}
	return layouts.ThemeCSS(theme), nil
}

// SeedPresets saves presets when the library holds no themes. It returns the
// number of presets written.
func (l *Library) SeedPresets(ctx context.Context, presets []*models.Theme) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	keys, err := l.store.Keys(ctx, metaPrefix)
	if err != nil {
		return 0, fmt.Errorf("check library: %w", err)
	}
	if len(keys) > 0 {
		return 0, nil
	}
	for _, preset := range presets {
		if _, err := l.save(ctx, preset); err != nil {
			return 0, fmt.Errorf("seed preset %q: %w", preset.Name(), err)
		}
	}
	log.Ctx(ctx).Info().Int("count", len(presets)).Msg("Seeded preset themes")
	return len(presets), nil
}

func (l *Library) refreshCount(ctx context.Context) {
	if l.metrics == nil {
		return
	}
	count, err := l.Count(ctx)
	if err != nil {
		log.Ctx(ctx).Warn().Err(err).Msg("Failed to count stored themes")
		return
	}
	l.metrics.SetStoredThemes(count)
}
