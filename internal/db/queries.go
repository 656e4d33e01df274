package db

import (
	"context"
	"database/sql"
)

// DBTX is satisfied by both *sql.DB and *sql.Tx.
type DBTX interface {
	ExecContext(context.Context, string, ...interface{}) (sql.Result, error)
	QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error)
	QueryRowContext(context.Context, string, ...interface{}) *sql.Row
}

type Queries struct {
	db DBTX
}

func NewQueries(db DBTX) *Queries {
	return &Queries{db: db}
}

const getEntry = `SELECT value FROM kv_entries WHERE key = ?`

func (q *Queries) GetEntry(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := q.db.QueryRowContext(ctx, getEntry, key).Scan(&value)
	return value, err
}

const upsertEntry = `INSERT INTO kv_entries (key, value) VALUES (?, ?)
ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`

func (q *Queries) UpsertEntry(ctx context.Context, key string, value []byte) error {
	_, err := q.db.ExecContext(ctx, upsertEntry, key, value)
	return err
}

const deleteEntry = `DELETE FROM kv_entries WHERE key = ?`

func (q *Queries) DeleteEntry(ctx context.Context, key string) error {
	_, err := q.db.ExecContext(ctx, deleteEntry, key)
	return err
}

// instr keeps the match case-sensitive, unlike LIKE.
const listKeys = `SELECT key FROM kv_entries WHERE instr(key, ?) = 1 ORDER BY key`

func (q *Queries) ListKeys(ctx context.Context, prefix string) ([]string, error) {
	rows, err := q.db.QueryContext(ctx, listKeys, prefix)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	keys := []string{}
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, err
		}
		keys = append(keys, key)
	}
	return keys, rows.Err()
}

const entryExists = `SELECT EXISTS(SELECT 1 FROM kv_entries WHERE key = ?)`

func (q *Queries) EntryExists(ctx context.Context, key string) (bool, error) {
	var exists bool
	err := q.db.QueryRowContext(ctx, entryExists, key).Scan(&exists)
	return exists, err
}

const countEntries = `SELECT COUNT(*) FROM kv_entries`

func (q *Queries) CountEntries(ctx context.Context) (int, error) {
	var count int
	err := q.db.QueryRowContext(ctx, countEntries).Scan(&count)
	return count, err
}
