package store

import (
	"path/filepath"
	"testing"

	"queryrouter/internal/port"
)

func TestBoltVectorStore_UpsertAndSearch(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "vectors.db")

	st, err := NewBoltVectorStore(dbPath, 3)
	if err != nil {
		t.Fatal(err)
	}
	defer st.Close()

	items := []port.VectorItem{
		{ID: "a", Vector: []float32{1, 0, 0}, Content: "doc a"},
		{ID: "b", Vector: []float32{0, 1, 0}, Content: "doc b"},
		{ID: "c", Vector: []float32{0.9, 0.1, 0}, Content: "doc c"},
	}
	if err := st.Upsert("docs", items); err != nil {
		t.Fatal(err)
	}

	results, err := st.Search("docs", []float32{1, 0, 0}, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].ID != "a" {
		t.Errorf("expected closest vector to be a, got %s", results[0].ID)
	}
	if results[1].ID != "c" {
		t.Errorf("expected second result to be c, got %s", results[1].ID)
	}
	if results[0].Content != "doc a" {
		t.Errorf("expected content to round-trip, got %q", results[0].Content)
	}
}

func TestBoltVectorStore_CollectionsAreIsolated(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "vectors.db")

	st, err := NewBoltVectorStore(dbPath, 2)
	if err != nil {
		t.Fatal(err)
	}
	defer st.Close()

	if err := st.Upsert("left", []port.VectorItem{{ID: "x", Vector: []float32{1, 0}}}); err != nil {
		t.Fatal(err)
	}
	if err := st.Upsert("right", []port.VectorItem{{ID: "y", Vector: []float32{0, 1}}}); err != nil {
		t.Fatal(err)
	}

	results, err := st.Search("left", []float32{0, 1}, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 1 || results[0].ID != "x" {
		t.Errorf("expected only x in left collection, got %+v", results)
	}

	n, err := st.Count("right")
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Errorf("expected 1 vector in right collection, got %d", n)
	}
}

func TestBoltVectorStore_Persistence(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "vectors.db")

	st, err := NewBoltVectorStore(dbPath, 2)
	if err != nil {
		t.Fatal(err)
	}
	if err := st.Upsert("docs", []port.VectorItem{
		{ID: "a", Vector: []float32{1, 0}, Content: "persisted", Metadata: map[string]string{"source": "test"}},
	}); err != nil {
		t.Fatal(err)
	}
	if err := st.Close(); err != nil {
		t.Fatal(err)
	}

	reopened, err := NewBoltVectorStore(dbPath, 2)
	if err != nil {
		t.Fatal(err)
	}
	defer reopened.Close()

	results, err := reopened.Search("docs", []float32{1, 0}, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 1 || results[0].Content != "persisted" {
		t.Fatalf("expected persisted vector after reopen, got %+v", results)
	}
	if results[0].Metadata["source"] != "test" {
		t.Errorf("expected metadata to persist, got %v", results[0].Metadata)
	}
}

func TestBoltVectorStore_DimensionMismatch(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "vectors.db")

	st, err := NewBoltVectorStore(dbPath, 3)
	if err != nil {
		t.Fatal(err)
	}
	defer st.Close()

	err = st.Upsert("docs", []port.VectorItem{{ID: "a", Vector: []float32{1, 0}}})
	if err == nil {
		t.Error("expected error for wrong upsert dimension")
	}

	if _, err := st.Search("docs", []float32{1, 0}, 1); err == nil {
		t.Error("expected error for wrong query dimension")
	}
}

func TestMemoryVectorStore(t *testing.T) {
	st := NewMemoryVectorStore(2)

	if err := st.Upsert("docs", []port.VectorItem{
		{ID: "a", Vector: []float32{1, 0}, Content: "alpha"},
		{ID: "b", Vector: []float32{0, 1}, Content: "beta"},
	}); err != nil {
		t.Fatal(err)
	}

	results, err := st.Search("docs", []float32{0, 1}, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 1 || results[0].ID != "b" {
		t.Fatalf("expected b, got %+v", results)
	}

	if err := st.Delete("docs", []string{"b"}); err != nil {
		t.Fatal(err)
	}
	n, _ := st.Count("docs")
	if n != 1 {
		t.Errorf("expected 1 vector after delete, got %d", n)
	}
}

func TestCosineSimilarity(t *testing.T) {
	if got := cosineSimilarity([]float32{1, 0}, []float32{1, 0}); got < 0.999 {
		t.Errorf("identical vectors should score ~1, got %f", got)
	}
	if got := cosineSimilarity([]float32{1, 0}, []float32{0, 1}); got != 0 {
		t.Errorf("orthogonal vectors should score 0, got %f", got)
	}
	if got := cosineSimilarity([]float32{0, 0}, []float32{1, 0}); got != 0 {
		t.Errorf("zero vector should score 0, got %f", got)
	}
}
