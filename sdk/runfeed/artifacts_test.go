package runfeed_test

import (
	"testing"

	"runtui/sdk/runfeed"
)

func TestArtifactStore(t *testing.T) {
	store := runfeed.NewArtifactStore()

	keyA := runfeed.ArtifactKey{MessageID: "m1", Index: 0}
	keyB := runfeed.ArtifactKey{MessageID: "m1", Index: 1}

	store.Put(keyA, runfeed.DocumentBlock{Type: runfeed.DocWord, Title: "A", Content: "a"})
	store.Put(keyB, runfeed.DocumentBlock{Type: runfeed.DocExcel, Title: "B", Content: "b"})

	if store.Len() != 2 {
		t.Fatalf("Len = %d, want 2", store.Len())
	}

	got, ok := store.Get(keyA)
	if !ok || got.Title != "A" {
		t.Errorf("Get(keyA) = %+v, %v", got, ok)
	}
	if _, ok := store.Get(runfeed.ArtifactKey{MessageID: "m2", Index: 0}); ok {
		t.Errorf("Get on absent key reported ok")
	}

	t.Run("overwrite keeps order", func(t *testing.T) {
		store.Put(keyA, runfeed.DocumentBlock{Type: runfeed.DocWord, Title: "A2", Content: "a2"})
		list := store.List()
		if len(list) != 2 {
			t.Fatalf("List = %d entries, want 2", len(list))
		}
		if list[0].Title != "A2" || list[1].Title != "B" {
			t.Errorf("order broken: %+v", list)
		}
	})

	t.Run("clear", func(t *testing.T) {
		store.Clear()
		if store.Len() != 0 || len(store.List()) != 0 {
			t.Errorf("store not empty after Clear")
		}
	})
}
