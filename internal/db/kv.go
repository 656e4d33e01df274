package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"

	"github.com/codr1/themesmith/internal/storage"
)

func (db *DB) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := db.Queries.GetEntry(ctx, key)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", key, err)
	}
	return value, nil
}

func (db *DB) Set(ctx context.Context, key string, value []byte) error {
	if err := db.Queries.UpsertEntry(ctx, key, value); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

// SetMany writes all entries in a single transaction.
func (db *DB) SetMany(ctx context.Context, entries map[string][]byte) error {
	keys := make([]string, 0, len(entries))
	for key := range entries {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	return db.RunInTx(ctx, func(tx *DB) error {
		for _, key := range keys {
			if err := tx.Queries.UpsertEntry(ctx, key, entries[key]); err != nil {
				return fmt.Errorf("set %s: %w", key, err)
			}
		}
		return nil
	})
}

func (db *DB) Remove(ctx context.Context, key string) error {
	if err := db.Queries.DeleteEntry(ctx, key); err != nil {
		return fmt.Errorf("remove %s: %w", key, err)
	}
	return nil
}

func (db *DB) Keys(ctx context.Context, prefix string) ([]string, error) {
	keys, err := db.Queries.ListKeys(ctx, prefix)
	if err != nil {
		return nil, fmt.Errorf("list keys %q: %w", prefix, err)
	}
	return keys, nil
}

func (db *DB) Has(ctx context.Context, key string) (bool, error) {
	exists, err := db.Queries.EntryExists(ctx, key)
	if err != nil {
		return false, fmt.Errorf("has %s: %w", key, err)
	}
	return exists, nil
}

func (db *DB) Size(ctx context.Context) (int, error) {
	count, err := db.Queries.CountEntries(ctx)
	if err != nil {
		return 0, fmt.Errorf("count entries: %w", err)
	}
	return count, nil
}
