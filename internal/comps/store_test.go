package comps

import (
	"os"
	"path/filepath"
	"testing"
)

func TestStore_Persistence(t *testing.T) {
	tmpDir := t.TempDir()

	store1 := NewStore()
	name := "12-oak-st"

	sales := []ComparableSale{
		{ID: "b", Sqft: 1000, SalesPrice: 200000, PricePerSqft: 200, DaysAgo: 40},
		{ID: "a", Sqft: 1200, SalesPrice: 264000, PricePerSqft: 220, DaysAgo: 12},
	}

	store1.Append(name, sales)
	if err := store1.Save(tmpDir, name); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	path := filepath.Join(tmpDir, name+".jsonl")
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Fatalf("comps file does not exist: %s", path)
	}

	store2 := NewStore()
	if err := store2.Load(tmpDir, name); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	loaded := store2.Get(name)
	if len(loaded) != 2 {
		t.Fatalf("expected 2 comps, got %d", len(loaded))
	}
	if loaded[0].ID != "a" || loaded[1].ID != "b" {
		t.Errorf("expected comps ordered by age, got %s, %s", loaded[0].ID, loaded[1].ID)
	}

	// Re-appending replaces by ID instead of duplicating
	updated := sales[0]
	updated.Excluded = true
	store2.Append(name, []ComparableSale{updated})
	if store2.Count(name) != 2 {
		t.Errorf("expected 2 comps after re-append, got %d", store2.Count(name))
	}
	if got := store2.Get(name); !got[1].Excluded {
		t.Error("re-appended comp did not replace the stored copy")
	}
}

func TestStore_LoadMissingIsNotAnError(t *testing.T) {
	s := NewStore()
	if err := s.Load(t.TempDir(), "nothing"); err != nil {
		t.Errorf("Load of missing set returned %v", err)
	}
	if s.Count("nothing") != 0 {
		t.Error("expected empty set")
	}
}

func TestStore_SkipsInvalidLines(t *testing.T) {
	dir := t.TempDir()
	content := "{\"id\":\"a\",\"sqft\":1000,\"salesPrice\":1}\nnot json\n\n{\"id\":\"b\",\"sqft\":1000}\n"
	if err := os.WriteFile(filepath.Join(dir, "mixed.jsonl"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	s := NewStore()
	if err := s.Load(dir, "mixed"); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if s.Count("mixed") != 2 {
		t.Errorf("expected 2 valid comps, got %d", s.Count("mixed"))
	}
	if names := s.Names(); len(names) != 1 || names[0] != "mixed" {
		t.Errorf("Names() = %v", names)
	}
}

func TestDecode_Layouts(t *testing.T) {
	tests := []struct {
		name        string
		data        string
		wantCount   int
		wantSubject bool
	}{
		{"Empty", "  ", 0, false},
		{"Array", `[{"id":"a","sqft":1000},{"id":"b","sqft":900}]`, 2, false},
		{"Dataset", `{"subject":{"address":"1 Elm","sqft":1400},"comps":[{"id":"a","sqft":1000}]}`, 1, true},
		{"JSONL", "{\"id\":\"a\",\"sqft\":1000}\n{\"id\":\"b\",\"sqft\":900}\n{\"id\":\"c\",\"sqft\":800}", 3, false},
		{"SingleLine", `{"id":"a","sqft":1000}`, 1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ds, err := Decode([]byte(tt.data))
			if err != nil {
				t.Fatalf("Decode() error: %v", err)
			}
			if len(ds.Comps) != tt.wantCount {
				t.Errorf("got %d comps, want %d", len(ds.Comps), tt.wantCount)
			}
			if (ds.Subject != nil) != tt.wantSubject {
				t.Errorf("subject presence = %v, want %v", ds.Subject != nil, tt.wantSubject)
			}
		})
	}

	if _, err := Decode([]byte("{\"id\":\"a\"}\ngarbage")); err == nil {
		t.Error("expected error for malformed JSONL")
	}
}

func TestStore_EvictsLeastRecentlyUsed(t *testing.T) {
	s := NewStoreSize(2)
	s.Append("a", []ComparableSale{{ID: "1", Sqft: 1000}})
	s.Append("b", []ComparableSale{{ID: "2", Sqft: 1000}})

	// Touch "a" so "b" becomes the eviction candidate.
	if got := s.Get("a"); len(got) != 1 {
		t.Fatalf("Get(a) = %d sales, want 1", len(got))
	}
	s.Append("c", []ComparableSale{{ID: "3", Sqft: 1000}})

	if s.Count("b") != 0 {
		t.Error("expected set b to be evicted")
	}
	names := s.Names()
	if len(names) != 2 || names[0] != "a" || names[1] != "c" {
		t.Errorf("Names() = %v, want [a c]", names)
	}
}

func TestStore_AppendDoesNotAliasCallerSlices(t *testing.T) {
	s := NewStore()
	first := s.Get("x")
	s.Append("x", []ComparableSale{{ID: "1", DaysAgo: 5}})
	snapshot := s.Get("x")
	s.Append("x", []ComparableSale{{ID: "0", DaysAgo: 1}})

	if first != nil {
		t.Errorf("Get on an unknown set = %v, want nil", first)
	}
	if len(snapshot) != 1 || snapshot[0].ID != "1" {
		t.Errorf("earlier snapshot changed: %+v", snapshot)
	}
	if got := s.Get("x"); len(got) != 2 || got[0].ID != "0" {
		t.Errorf("merged set = %+v, want sorted by DaysAgo", got)
	}
}
