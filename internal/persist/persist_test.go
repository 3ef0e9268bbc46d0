package persist

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"

	"github.com/pablasso/tasktracker/internal/blob"
	"github.com/pablasso/tasktracker/internal/store"
	"github.com/pablasso/tasktracker/internal/task"
	"github.com/pablasso/tasktracker/internal/testutil"
)

// failingBlobs fails every call with err.
type failingBlobs struct{ err error }

func (f failingBlobs) Get(context.Context, string) ([]byte, error) { return nil, f.err }
func (f failingBlobs) Set(context.Context, string, []byte) error { return f.err }
func (f failingBlobs) Close() error { return nil }

func newAdapter(t *testing.T, blobs blob.Store) (*Adapter, *test.Hook) {
	t.Helper()
	log, hook := test.NewNullLogger()
	log.SetLevel(logrus.DebugLevel)
	return New(blobs, log, time.Second), hook
}

func seed(t *testing.T, blobs blob.Store, key, value string) {
	t.Helper()
	if err := blobs.Set(context.Background(), key, []byte(value)); err != nil {
		t.Fatalf("seed %s: %v", key, err)
	}
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name string
		v2   *string
		v1   *string
		want int
	}{
		{"nothing stored", nil, nil, 0},
		{"current key", task.Ptr(`[{"title":"a"},{"title":"b"}]`), task.Ptr(`[{"title":"old"}]`), 2},
		{"legacy fallback", nil, task.Ptr(`[{"title":"old"}]`), 1},
		{"empty current falls back", task.Ptr(""), task.Ptr(`[{"title":"old"}]`), 1},
		{"corrupt current", task.Ptr("{oops"), task.Ptr(`[{"title":"old"}]`), 0},
		{"non-array current", task.Ptr(`{"title":"a"}`), nil, 0},
		{"corrupt legacy", nil, task.Ptr("nope"), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			blobs := blob.NewMemoryStore()
			if tt.v2 != nil {
				seed(t, blobs, KeyV2, *tt.v2)
			}
			if tt.v1 != nil {
				seed(t, blobs, KeyV1, *tt.v1)
			}
			a, _ := newAdapter(t, blobs)

			raw, err := a.Load(context.Background())
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if raw == nil {
				t.Fatal("Load should never return a nil slice")
			}
			if len(raw) != tt.want {
				t.Errorf("len = %d, want %d", len(raw), tt.want)
			}
		})
	}
}

func TestLoad_BackendError(t *testing.T) {
	boom := errors.New("disk on fire")
	a, _ := newAdapter(t, failingBlobs{err: boom})

	if _, err := a.Load(context.Background()); !errors.Is(err, boom) {
		t.Errorf("Load error = %v, want wrapped %v", err, boom)
	}
}

func TestSave(t *testing.T) {
	blobs := blob.NewMemoryStore()
	a, _ := newAdapter(t, blobs)

	list := []task.Task{{ID: "1", Title: "Buy milk", Priority: task.PriorityHigh, Tags: []string{"home"}}}
	a.Save(context.Background(), list)

	data, err := blobs.Get(context.Background(), KeyV2)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	var got []task.Task
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("stored data is not JSON: %v", err)
	}
	if len(got) != 1 || got[0].Title != "Buy milk" || got[0].Priority != task.PriorityHigh {
		t.Errorf("stored = %+v", got)
	}
	if _, err := blobs.Get(context.Background(), KeyV1); !errors.Is(err, blob.ErrNotFound) {
		t.Error("Save must not touch the legacy key")
	}

	a.Save(context.Background(), nil)
	data, _ = blobs.Get(context.Background(), KeyV2)
	if string(data) != "[]" {
		t.Errorf("nil list saved as %q, want []", data)
	}
}

func TestSave_ErrorsAreSwallowed(t *testing.T) {
	a, hook := newAdapter(t, failingBlobs{err: errors.New("quota exceeded")})

	a.Save(context.Background(), []task.Task{{ID: "1", Title: "x"}})

	entry := hook.LastEntry()
	if entry == nil || entry.Level != logrus.WarnLevel {
		t.Fatalf("expected a warning, got %+v", entry)
	}
	if entry.Message != "Failed to save tasks" {
		t.Errorf("message = %q", entry.Message)
	}
}

func TestObserver_SavesEveryCommit(t *testing.T) {
	blobs := blob.NewMemoryStore()
	a, _ := newAdapter(t, blobs)

	log, _ := test.NewNullLogger()
	clock := testutil.NewClock()
	s := store.New(store.WithLogger(log), store.WithClock(clock.Now), store.WithIDGenerator(testutil.SequentialIDs()))
	if err := s.Hydrate(context.Background(), a); err != nil {
		t.Fatalf("Hydrate: %v", err)
	}
	unsubscribe := s.Subscribe(a.Observer())
	defer unsubscribe()

	added, _ := s.AddTask(task.Record{"title": "Write report"})
	s.ToggleTask(added.ID)

	// A fresh adapter over the same blobs sees the committed state.
	reloaded := store.New(store.WithLogger(log))
	if err := reloaded.Hydrate(context.Background(), a); err != nil {
		t.Fatalf("reload: %v", err)
	}
	list := reloaded.List()
	if len(list) != 1 || list[0].ID != added.ID || !list[0].Completed {
		t.Errorf("reloaded list = %+v", list)
	}
}

func TestHydrateFailure_DoesNotOverwrite(t *testing.T) {
	blobs := &flakyBlobs{MemoryStore: blob.NewMemoryStore(), failGets: true}
	seed(t, blobs.MemoryStore, KeyV2, `[{"id":"keep","title":"precious"}]`)
	a, _ := newAdapter(t, blobs)

	log, _ := test.NewNullLogger()
	s := store.New(store.WithLogger(log))
	s.Subscribe(a.Observer())

	if err := s.Hydrate(context.Background(), a); !errors.Is(err, store.ErrHydration) {
		t.Fatalf("Hydrate error = %v, want ErrHydration", err)
	}

	data, _ := blobs.MemoryStore.Get(context.Background(), KeyV2)
	if string(data) != `[{"id":"keep","title":"precious"}]` {
		t.Errorf("stored data overwritten: %q", data)
	}
}

type flakyBlobs struct {
	*blob.MemoryStore
	failGets bool
}

func (f *flakyBlobs) Get(ctx context.Context, key string) ([]byte, error) {
	if f.failGets {
		return nil, errors.New("connection reset")
	}
	return f.MemoryStore.Get(ctx, key)
}
