package slotRepo

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
)

func repositories(t *testing.T) map[string]SlotRepository {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return map[string]SlotRepository{
		"memory": NewMemorySlotRepo(),
		"redis":  NewRedisSlotRepo(client),
	}
}

func TestSlotRepository_RoundTrip(t *testing.T) {
	ctx := context.Background()
	for name, repo := range repositories(t) {
		t.Run(name, func(t *testing.T) {
			key := Key("browser-1")

			if _, found, err := repo.Load(ctx, key); err != nil || found {
				t.Fatalf("empty slot: found=%v err=%v", found, err)
			}

			want := []byte(`{"id":7,"full_name":"Sita Rai"}`)
			if err := repo.Save(ctx, key, want); err != nil {
				t.Fatalf("Save: %v", err)
			}
			got, found, err := repo.Load(ctx, key)
			if err != nil || !found {
				t.Fatalf("Load after save: found=%v err=%v", found, err)
			}
			if !bytes.Equal(got, want) {
				t.Errorf("Load = %s, want %s", got, want)
			}

			if err := repo.Delete(ctx, key); err != nil {
				t.Fatalf("Delete: %v", err)
			}
			if _, found, _ := repo.Load(ctx, key); found {
				t.Error("slot still present after Delete")
			}
			if err := repo.Delete(ctx, key); err != nil {
				t.Errorf("second Delete: %v", err)
			}
		})
	}
}

func TestSlotRepository_KeysAreIsolated(t *testing.T) {
	ctx := context.Background()
	for name, repo := range repositories(t) {
		t.Run(name, func(t *testing.T) {
			if err := repo.Save(ctx, Key("a"), []byte("A")); err != nil {
				t.Fatal(err)
			}
			if err := repo.Save(ctx, Key("b"), []byte("B")); err != nil {
				t.Fatal(err)
			}
			if err := repo.Delete(ctx, Key("a")); err != nil {
				t.Fatal(err)
			}
			got, found, err := repo.Load(ctx, Key("b"))
			if err != nil || !found || string(got) != "B" {
				t.Errorf("slot b = %q found=%v err=%v", got, found, err)
			}
		})
	}
}

func TestSlotRepository_EmptyKey(t *testing.T) {
	ctx := context.Background()
	for name, repo := range repositories(t) {
		t.Run(name, func(t *testing.T) {
			if err := repo.Save(ctx, "", []byte("x")); !errors.Is(err, ErrEmptyKey) {
				t.Errorf("Save(\"\") err = %v", err)
			}
			if _, _, err := repo.Load(ctx, ""); !errors.Is(err, ErrEmptyKey) {
				t.Errorf("Load(\"\") err = %v", err)
			}
		})
	}
}

func TestMemorySlotRepo_CopiesValues(t *testing.T) {
	ctx := context.Background()
	repo := NewMemorySlotRepo()
	data := []byte("abc")
	if err := repo.Save(ctx, "k", data); err != nil {
		t.Fatal(err)
	}
	data[0] = 'z'
	got, _, _ := repo.Load(ctx, "k")
	if string(got) != "abc" {
		t.Errorf("stored value mutated through caller slice: %q", got)
	}
}
