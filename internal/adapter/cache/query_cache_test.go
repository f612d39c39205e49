package cache

import (
	"context"
	"testing"
	"time"

	"queryrouter/internal/domain"
)

func TestQueryCache_PutGet(t *testing.T) {
	c := NewQueryCache(10, time.Minute)

	docs := []domain.Document{{ID: "d1", Content: "hello"}}
	c.Put("docs", "query", docs)

	got, hit := c.Get("docs", "query")
	if !hit {
		t.Fatal("expected cache hit")
	}
	if len(got) != 1 || got[0].ID != "d1" {
		t.Errorf("unexpected cached docs: %+v", got)
	}

	if _, hit := c.Get("other", "query"); hit {
		t.Error("expected miss for different collection")
	}
	if _, hit := c.Get("docs", "other query"); hit {
		t.Error("expected miss for different query")
	}
}

func TestQueryCache_TTLExpiry(t *testing.T) {
	c := NewQueryCache(10, 10*time.Millisecond)

	c.Put("docs", "query", []domain.Document{{ID: "d1"}})
	time.Sleep(20 * time.Millisecond)

	if _, hit := c.Get("docs", "query"); hit {
		t.Error("expected expired entry to miss")
	}
	if c.Size() != 0 {
		t.Errorf("expected expired entry removed, size=%d", c.Size())
	}
}

func TestQueryCache_Invalidate(t *testing.T) {
	c := NewQueryCache(10, time.Minute)

	c.Put("docs", "query", []domain.Document{{ID: "d1"}})
	c.Invalidate()

	if _, hit := c.Get("docs", "query"); hit {
		t.Error("expected miss after invalidation")
	}
	if c.Size() != 0 {
		t.Errorf("expected empty cache, size=%d", c.Size())
	}
}

func TestQueryCache_LRUEviction(t *testing.T) {
	c := NewQueryCache(2, time.Minute)

	c.Put("docs", "q1", []domain.Document{{ID: "1"}})
	c.Put("docs", "q2", []domain.Document{{ID: "2"}})

	// Touch q1 so q2 becomes the eviction candidate.
	c.Get("docs", "q1")
	c.Put("docs", "q3", []domain.Document{{ID: "3"}})

	if _, hit := c.Get("docs", "q1"); !hit {
		t.Error("expected recently used q1 to survive")
	}
	if _, hit := c.Get("docs", "q2"); hit {
		t.Error("expected q2 evicted")
	}
}

type countingRetriever struct {
	calls int
	docs  []domain.Document
}

func (r *countingRetriever) Retrieve(context.Context, string) ([]domain.Document, error) {
	r.calls++
	return r.docs, nil
}

func TestCachedRetriever(t *testing.T) {
	inner := &countingRetriever{docs: []domain.Document{{ID: "d1"}}}
	r := NewCachedRetriever("docs", inner, NewQueryCache(10, time.Minute))

	for i := 0; i < 3; i++ {
		docs, err := r.Retrieve(context.Background(), "query")
		if err != nil {
			t.Fatal(err)
		}
		if len(docs) != 1 || docs[0].ID != "d1" {
			t.Fatalf("unexpected docs on call %d: %+v", i, docs)
		}
	}

	if inner.calls != 1 {
		t.Errorf("expected 1 backend call, got %d", inner.calls)
	}
}
