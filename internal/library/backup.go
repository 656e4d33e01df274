package library

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/codr1/themesmith/internal/models"
	"github.com/codr1/themesmith/internal/storage"
)

const backupTimeLayout = "20060102T150405.000000000Z"

var ErrBackupNotFound = errors.New("backup not found")

type snapshot struct {
	CreatedAt time.Time                  `json:"createdAt"`
	Themes    map[string]json.RawMessage `json:"themes"`
}

// Backup writes every stored theme into one snapshot record and returns its
// key. Keys sort by creation time.
func (l *Library) Backup(ctx context.Context) (string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	keys, err := l.store.Keys(ctx, themePrefix)
	if err != nil {
		return "", fmt.Errorf("list themes for backup: %w", err)
	}
	now := l.now().UTC()
	snap := snapshot{CreatedAt: now, Themes: make(map[string]json.RawMessage, len(keys))}
	for _, key := range keys {
		doc, err := l.store.Get(ctx, key)
		if errors.Is(err, storage.ErrNotFound) {
			continue
		}
		if err != nil {
			return "", fmt.Errorf("read %s for backup: %w", key, err)
		}
		snap.Themes[strings.TrimPrefix(key, themePrefix)] = json.RawMessage(doc)
	}

	data, err := json.Marshal(snap)
	if err != nil {
		return "", fmt.Errorf("encode backup: %w", err)
	}
	key := l.backupPrefix + now.Format(backupTimeLayout) + "-" + uuid.NewString()[:8]
	if err := l.store.Set(ctx, key, data); err != nil {
		return "", fmt.Errorf("store backup: %w", err)
	}
	log.Ctx(ctx).Info().Str("backup_key", key).Int("themes", len(snap.Themes)).Msg("Library backup created")
	return key, nil
}

// Backups lists backup keys, oldest first.
func (l *Library) Backups(ctx context.Context) ([]string, error) {
	keys, err := l.store.Keys(ctx, l.backupPrefix)
	if err != nil {
		return nil, fmt.Errorf("list backups: %w", err)
	}
	sort.Strings(keys)
	return keys, nil
}

// PruneBackups removes all but the newest keep backups.
func (l *Library) PruneBackups(ctx context.Context, keep int) (int, error) {
	if keep < 0 {
		keep = 0
	}
	keys, err := l.Backups(ctx)
	if err != nil {
		return 0, err
	}
	if len(keys) <= keep {
		return 0, nil
	}
	stale := keys[:len(keys)-keep]
	for _, key := range stale {
		if err := l.store.Remove(ctx, key); err != nil {
			return 0, fmt.Errorf("remove backup %s: %w", key, err)
		}
	}
	return len(stale), nil
}

// RestoreBackup saves every theme in the snapshot, replacing themes with the
// same id. Themes created after the snapshot are left alone.
func (l *Library) RestoreBackup(ctx context.Context, key string) (int, error) {
	if !strings.HasPrefix(key, l.backupPrefix) {
		return 0, fmt.Errorf("restore %s: %w", key, ErrBackupNotFound)
	}
	data, err := l.store.Get(ctx, key)
	if errors.Is(err, storage.ErrNotFound) {
		return 0, fmt.Errorf("restore %s: %w", key, ErrBackupNotFound)
	}
	if err != nil {
		return 0, fmt.Errorf("restore %s: %w", key, err)
	}
	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return 0, fmt.Errorf("decode backup %s: %w", key, err)
	}

	ids := make([]string, 0, len(snap.Themes))
	for id := range snap.Themes {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	l.mu.Lock()
	defer l.mu.Unlock()
	for _, id := range ids {
		theme, err := models.ThemeFromJSON(snap.Themes[id])
		if err != nil {
			return 0, fmt.Errorf("decode theme %s from backup: %w", id, err)
		}
		if _, err := l.save(ctx, theme); err != nil {
			return 0, err
		}
	}
	log.Ctx(ctx).Info().Str("backup_key", key).Int("themes", len(ids)).Msg("Library backup restored")
	return len(ids), nil
}
