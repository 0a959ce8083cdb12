package store

import (
	"path/filepath"
	"testing"
)

type sample struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestStore_SetGetSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "marquee.db")

	s, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := s.Set("item", sample{Name: "a", Count: 2}); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	reopened, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()

	var got sample
	if !reopened.Get("item", &got) {
		t.Fatal("expected value after reopen")
	}
	if got.Name != "a" || got.Count != 2 {
		t.Fatalf("unexpected value %+v", got)
	}
}

func TestStore_GetMissingAndMalformed(t *testing.T) {
	s, err := Open("")
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	var got sample
	if s.Get("missing", &got) {
		t.Fatal("expected false for missing key")
	}

	if err := s.SetRaw("broken", []byte("{not json")); err != nil {
		t.Fatalf("set raw: %v", err)
	}
	if s.Get("broken", &got) {
		t.Fatal("expected false for malformed value")
	}
}

func TestStore_Delete(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "marquee.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer s.Close()

	if err := s.Set("k", "v"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := s.Delete("k"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	var v string
	if s.Get("k", &v) {
		t.Fatalf("expected key to be gone, got %q", v)
	}
	if err := s.Delete("never-set"); err != nil {
		t.Fatalf("deleting missing key: %v", err)
	}
	if keys := s.Keys(); len(keys) != 0 {
		t.Fatalf("expected no keys, got %v", keys)
	}
}

func TestStore_SetOverwritesWholeValue(t *testing.T) {
	s, _ := Open("")

	_ = s.Set("list", []int{1, 2, 3})
	_ = s.Set("list", []int{4})

	var got []int
	if !s.Get("list", &got) {
		t.Fatal("expected value")
	}
	if len(got) != 1 || got[0] != 4 {
		t.Fatalf("expected [4], got %v", got)
	}
}
