package redisstore

import (
	"context"
	"errors"
	"os"
	"reflect"
	"testing"

	"github.com/google/uuid"

	"github.com/codr1/themesmith/internal/storage"
)

// newTestStore connects to THEMESMITH_TEST_REDIS_URL under a fresh prefix.
func newTestStore(t *testing.T) *Store {
	t.Helper()
	url := os.Getenv("THEMESMITH_TEST_REDIS_URL")
	if url == "" {
		t.Skip("THEMESMITH_TEST_REDIS_URL not set")
	}
	store, err := New(context.Background(), Config{URL: url, Prefix: "test:" + uuid.NewString() + ":"})
	if err != nil {
		t.Fatalf("New error = %v", err)
	}
	t.Cleanup(func() {
		ctx := context.Background()
		keys, _ := store.Keys(ctx, "")
		for _, key := range keys {
			_ = store.Remove(ctx, key)
		}
		_ = store.Close()
	})
	return store
}

func TestStoreRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if _, err := store.Get(ctx, "theme:1"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("Get(missing) error = %v, want storage.ErrNotFound", err)
	}

	err := store.SetMany(ctx, map[string][]byte{
		"theme:1": []byte(`{"name":"Harbor"}`),
		"meta:1":  []byte(`{}`),
	})
	if err != nil {
		t.Fatalf("SetMany error = %v", err)
	}

	got, err := store.Get(ctx, "theme:1")
	if err != nil {
		t.Fatalf("Get error = %v", err)
	}
	if string(got) != `{"name":"Harbor"}` {
		t.Fatalf("Get = %s", got)
	}
	keys, err := store.Keys(ctx, "theme:")
	if err != nil {
		t.Fatalf("Keys error = %v", err)
	}
	if want := []string{"theme:1"}; !reflect.DeepEqual(keys, want) {
		t.Fatalf("Keys = %v, want %v", keys, want)
	}
	if size, _ := store.Size(ctx); size != 2 {
		t.Fatalf("Size = %d, want 2", size)
	}
	if err := store.Remove(ctx, "theme:1"); err != nil {
		t.Fatalf("Remove error = %v", err)
	}
	if has, _ := store.Has(ctx, "theme:1"); has {
		t.Fatalf("Has = true after Remove")
	}
}
