package storage

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"testing"
)

type sequentialStore struct {
	*Memory
	sets []string
}

func (s *sequentialStore) Set(ctx context.Context, key string, value []byte) error {
	s.sets = append(s.sets, key)
	return s.Memory.Set(ctx, key, value)
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()

	if _, err := store.Get(ctx, "theme:1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get(missing) error = %v, want ErrNotFound", err)
	}

	value := []byte(`{"name":"Harbor"}`)
	if err := store.Set(ctx, "theme:1", value); err != nil {
		t.Fatalf("Set error = %v", err)
	}
	value[0] = 'x'
	got, err := store.Get(ctx, "theme:1")
	if err != nil {
		t.Fatalf("Get error = %v", err)
	}
	if string(got) != `{"name":"Harbor"}` {
		t.Fatalf("Get = %s, stored value aliased the caller's slice", got)
	}

	if err := store.Set(ctx, "meta:1", []byte("{}")); err != nil {
		t.Fatalf("Set error = %v", err)
	}
	if err := store.Set(ctx, "theme:0", []byte("{}")); err != nil {
		t.Fatalf("Set error = %v", err)
	}
	keys, err := store.Keys(ctx, "theme:")
	if err != nil {
		t.Fatalf("Keys error = %v", err)
	}
	if want := []string{"theme:0", "theme:1"}; !reflect.DeepEqual(keys, want) {
		t.Fatalf("Keys(theme:) = %v, want %v", keys, want)
	}

	if size, _ := store.Size(ctx); size != 3 {
		t.Fatalf("Size = %d, want 3", size)
	}
	if err := store.Remove(ctx, "theme:1"); err != nil {
		t.Fatalf("Remove error = %v", err)
	}
	if err := store.Remove(ctx, "theme:1"); err != nil {
		t.Fatalf("Remove(missing) error = %v", err)
	}
	if has, _ := store.Has(ctx, "theme:1"); has {
		t.Fatalf("Has(theme:1) = true after Remove")
	}
}

func TestSetManyFallsBackToSet(t *testing.T) {
	ctx := context.Background()
	store := &sequentialStore{Memory: NewMemory()}
	var plain Store = struct{ Store }{store}

	err := SetMany(ctx, plain, map[string][]byte{"b": []byte("2"), "a": []byte("1")})
	if err != nil {
		t.Fatalf("SetMany error = %v", err)
	}
	if want := []string{"a", "b"}; !reflect.DeepEqual(store.sets, want) {
		t.Fatalf("Set calls = %v, want %v", store.sets, want)
	}
}

func TestMemoryStoreConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := string(rune('a' + i))
			_ = store.Set(ctx, key, []byte(key))
			_, _ = store.Get(ctx, key)
			_, _ = store.Keys(ctx, "")
		}(i)
	}
	wg.Wait()

	if size, _ := store.Size(ctx); size != 16 {
		t.Fatalf("Size = %d, want 16", size)
	}
}
