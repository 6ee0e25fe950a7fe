package data

import (
	"context"
	"errors"
	"testing"
	"testing/fstest"
)

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"abilities/bolt.ini": &fstest.MapFile{
			Data: []byte("[Init]\nName=Bolt\nMoveKind=FreeFly\nSpeed=300\nDamage=10\n"),
		},
		"abilities/nova.ini": &fstest.MapFile{
			Data: []byte("[Init]\nName=Nova\nMoveKind=Circle\nSpeed=200\nDamage=8\n"),
		},
	}
}

func TestStore_LoadAndCache(t *testing.T) {
	s := NewStore(testFS())

	if _, ok := s.Cached("abilities/bolt.ini"); ok {
		t.Fatal("nothing should be cached before Load")
	}

	def, err := s.Load("abilities/bolt.ini")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if def.Name != "Bolt" {
		t.Errorf("Name = %q", def.Name)
	}

	cached, ok := s.Cached("abilities/bolt.ini")
	if !ok || cached != def {
		t.Error("Cached must return the same definition instance")
	}

	again, err := s.Load("abilities/bolt.ini")
	if err != nil || again != def {
		t.Error("repeated Load must hit the cache")
	}
}

func TestStore_NotFound(t *testing.T) {
	s := NewStore(testFS())
	_, err := s.Load("abilities/missing.ini")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("want ErrNotFound, got %v", err)
	}
}

func TestStore_Preload(t *testing.T) {
	s := NewStore(testFS())
	err := s.Preload(context.Background(),
		"abilities/bolt.ini",
		"abilities/nova.ini",
		"abilities/missing.ini", // logged, not fatal
	)
	if err != nil {
		t.Fatalf("Preload: %v", err)
	}
	if s.Len() != 2 {
		t.Errorf("expected 2 cached definitions, got %d", s.Len())
	}
}
