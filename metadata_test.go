package extractous

import (
	"slices"
	"testing"
)

func TestMetadata_AddMergesDuplicates(t *testing.T) {
	m := Metadata{}
	m.Add("Author", "Alice")
	m.Add("Author", "Bob")
	m.Add("Title", "Report")

	if len(m) != 2 {
		t.Fatalf("expected 2 keys, got %d", len(m))
	}
	if !slices.Equal(m.Values("Author"), []string{"Alice", "Bob"}) {
		t.Errorf("Author values = %v", m.Values("Author"))
	}
	if m.Get("Author") != "Alice" {
		t.Errorf("Get returns first value, got %q", m.Get("Author"))
	}
}

func TestMetadata_SetReplaces(t *testing.T) {
	m := Metadata{}
	m.Add("Content-Type", "text/plain")
	m.Set("Content-Type", "text/html")
	if !slices.Equal(m.Values("Content-Type"), []string{"text/html"}) {
		t.Errorf("Set should replace, got %v", m.Values("Content-Type"))
	}
}

func TestMetadata_AbsentKey(t *testing.T) {
	m := Metadata{}
	if m.Get("missing") != "" {
		t.Error("Get on absent key should return empty string")
	}
	if m.Values("missing") != nil {
		t.Error("Values on absent key should return nil")
	}
}
