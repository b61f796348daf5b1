package favourites

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zenloop/zenloop/internal/client/models"
	"github.com/zenloop/zenloop/internal/client/storage"
)

func newTestSet(t *testing.T) (*Set, storage.Store) {
	t.Helper()

	kv, err := storage.NewSQLiteStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { kv.Close() })

	return NewSet(kv), kv
}

var pushUps = models.Exercise{Name: "Push-ups", Muscle: "chest", Difficulty: "beginner"}
var squats = models.Exercise{Name: "Squats", Muscle: "quadriceps", Difficulty: "beginner"}

func TestToggleParity(t *testing.T) {
	set, _ := newTestSet(t)
	ctx := context.Background()

	// Final membership equals (number of toggles) mod 2 == 1.
	for i := 1; i <= 5; i++ {
		require.NoError(t, set.Toggle(ctx, pushUps))
		assert.Equal(t, i%2 == 1, set.IsFavourite("Push-ups"), "after %d toggles", i)
	}
}

func TestAddIsIdempotent(t *testing.T) {
	set, _ := newTestSet(t)
	ctx := context.Background()

	require.NoError(t, set.Add(ctx, pushUps))
	require.NoError(t, set.Add(ctx, pushUps))

	assert.Len(t, set.List(), 1)
}

func TestRemoveAbsentIsNoOp(t *testing.T) {
	set, _ := newTestSet(t)
	ctx := context.Background()

	require.NoError(t, set.Add(ctx, pushUps))
	require.NoError(t, set.Remove(ctx, "Deadlifts"))

	assert.Len(t, set.List(), 1)
}

func TestRemove(t *testing.T) {
	set, _ := newTestSet(t)
	ctx := context.Background()

	require.NoError(t, set.Add(ctx, pushUps))
	require.NoError(t, set.Add(ctx, squats))
	require.NoError(t, set.Remove(ctx, "Push-ups"))

	list := set.List()
	require.Len(t, list, 1)
	assert.Equal(t, "Squats", list[0].Name)
}

func TestOrderIsInsertionOrder(t *testing.T) {
	set, _ := newTestSet(t)
	ctx := context.Background()

	require.NoError(t, set.Add(ctx, squats))
	require.NoError(t, set.Add(ctx, pushUps))

	list := set.List()
	require.Len(t, list, 2)
	assert.Equal(t, "Squats", list[0].Name)
	assert.Equal(t, "Push-ups", list[1].Name)
}

func TestNameMatchIsCaseSensitive(t *testing.T) {
	set, _ := newTestSet(t)
	ctx := context.Background()

	require.NoError(t, set.Add(ctx, pushUps))
	require.NoError(t, set.Add(ctx, models.Exercise{Name: "push-ups"}))

	assert.Len(t, set.List(), 2)
}

func TestEveryMutationPersists(t *testing.T) {
	set, kv := newTestSet(t)
	ctx := context.Background()

	require.NoError(t, set.Add(ctx, pushUps))

	data, err := kv.Get(ctx, StorageKey)
	require.NoError(t, err)
	require.NoError(t, Validate(data))

	reloaded := NewSet(kv)
	reloaded.Load(ctx)
	assert.True(t, reloaded.IsFavourite("Push-ups"))

	require.NoError(t, set.Remove(ctx, "Push-ups"))

	reloaded.Load(ctx)
	assert.False(t, reloaded.IsFavourite("Push-ups"))
}

func TestLoadCorruptBlobReadsEmpty(t *testing.T) {
	set, kv := newTestSet(t)
	ctx := context.Background()

	require.NoError(t, kv.Set(ctx, StorageKey, []byte("{broken")))

	set.Load(ctx)
	assert.Empty(t, set.List())
}

func TestNoDuplicatesUnderConcurrentToggles(t *testing.T) {
	set, kv := newTestSet(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = set.Toggle(ctx, pushUps)
		}()
	}
	wg.Wait()

	// Even number of toggles: the entry is gone and the blob holds no
	// duplicates regardless of interleaving.
	assert.False(t, set.IsFavourite("Push-ups"))

	data, err := kv.Get(ctx, StorageKey)
	require.NoError(t, err)
	assert.NoError(t, Validate(data))
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Validate([]byte(`[]`)))
	assert.NoError(t, Validate([]byte(`[{"name":"a"},{"name":"b"}]`)))
	assert.Error(t, Validate([]byte(`[{"name":"a"},{"name":"a"}]`)))
	assert.Error(t, Validate([]byte(`not json`)))
}
