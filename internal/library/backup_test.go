package library

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/codr1/themesmith/internal/models"
)

func TestBackupAndRestore(t *testing.T) {
	ctx := context.Background()
	lib, _ := newTestLibrary(t)
	theme := newTheme(t, "Snapshot")
	if _, err := lib.Save(ctx, theme); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	key, err := lib.Backup(ctx)
	if err != nil {
		t.Fatalf("Backup() error = %v", err)
	}
	if !strings.HasPrefix(key, DefaultBackupPrefix) {
		t.Fatalf("backup key = %q", key)
	}

	if _, err := lib.Update(ctx, theme.ID(), func(th *models.Theme) error {
		return th.SetName("Changed")
	}); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	restored, err := lib.RestoreBackup(ctx, key)
	if err != nil {
		t.Fatalf("RestoreBackup() error = %v", err)
	}
	if restored != 1 {
		t.Fatalf("restored = %d, want 1", restored)
	}
	loaded, err := lib.Load(ctx, theme.ID())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded.Name() != "Snapshot" {
		t.Fatalf("name after restore = %q, want Snapshot", loaded.Name())
	}
}

func TestBackupsAreNotThemes(t *testing.T) {
	ctx := context.Background()
	lib, _ := newTestLibrary(t)
	if _, err := lib.Save(ctx, newTheme(t, "Only")); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if _, err := lib.Backup(ctx); err != nil {
		t.Fatalf("Backup() error = %v", err)
	}
	list, err := lib.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("List() returned %d themes, want 1", len(list))
	}
}

func TestPruneBackupsKeepsNewest(t *testing.T) {
	ctx := context.Background()
	lib, _ := newTestLibrary(t)

	var keys []string
	for i := 0; i < 4; i++ {
		key, err := lib.Backup(ctx)
		if err != nil {
			t.Fatalf("Backup() error = %v", err)
		}
		keys = append(keys, key)
	}

	pruned, err := lib.PruneBackups(ctx, 2)
	if err != nil {
		t.Fatalf("PruneBackups() error = %v", err)
	}
	if pruned != 2 {
		t.Fatalf("pruned = %d, want 2", pruned)
	}
	remaining, err := lib.Backups(ctx)
	if err != nil {
		t.Fatalf("Backups() error = %v", err)
	}
	if len(remaining) != 2 || remaining[0] != keys[2] || remaining[1] != keys[3] {
		t.Fatalf("remaining = %v, want %v", remaining, keys[2:])
	}

	if pruned, err := lib.PruneBackups(ctx, 5); err != nil || pruned != 0 {
		t.Fatalf("PruneBackups(5) = %d, %v", pruned, err)
	}
}

func TestRestoreUnknownBackup(t *testing.T) {
	lib, _ := newTestLibrary(t)
	for _, key := range []string{"backup:missing", "theme:abc"} {
		if _, err := lib.RestoreBackup(context.Background(), key); !errors.Is(err, ErrBackupNotFound) {
			t.Fatalf("RestoreBackup(%q) error = %v, want ErrBackupNotFound", key, err)
		}
	}
}
