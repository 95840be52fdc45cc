package bulk

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newExecutorFixture(t *testing.T, actions ...Action) (*Store, *Registry, *Executor) {
	t.Helper()
	store := NewStore()
	registry := NewRegistry()
	require.NoError(t, registry.SetActions(actions))
	return store, registry, NewExecutor(store, registry)
}

func TestExecuteUnknownAction(t *testing.T) {
	t.Parallel()
	store, _, executor := newExecutorFixture(t,
		Action{ID: "bulk-delete", Handler: noopHandler})
	store.Select(orgItem("a"))

	err := executor.Execute(context.Background(), "missing")
	require.ErrorIs(t, err, ErrActionNotFound)
	require.Equal(t, 1, store.Count(), "selection must be untouched on lookup failure")
}

func TestExecuteEmptySelectionNeverInvokesHandler(t *testing.T) {
	t.Parallel()
	var calls int
	_, _, executor := newExecutorFixture(t, Action{
		ID: "bulk-delete",
		Handler: func(ctx context.Context, items []Item) error {
			calls++
			return nil
		},
	})

	err := executor.Execute(context.Background(), "bulk-delete")
	require.ErrorIs(t, err, ErrEmptySelection)
	require.Equal(t, 0, calls, "handler must not run for an empty selection")
}

func TestExecuteSuccessClearsSelection(t *testing.T) {
	t.Parallel()
	store, _, executor := newExecutorFixture(t,
		Action{ID: "bulk-delete", Handler: noopHandler})
	store.SelectAll(orgItems("a", "b", "c"))

	require.NoError(t, executor.Execute(context.Background(), "bulk-delete"))
	require.Equal(t, 0, store.Count(), "successful execution clears the selection")
}

func TestExecuteFailurePreservesSelection(t *testing.T) {
	t.Parallel()
	boom := errors.New("boom")
	store, _, executor := newExecutorFixture(t, Action{
		ID: "bulk-delete",
		Handler: func(ctx context.Context, items []Item) error {
			return boom
		},
	})
	store.SelectAll(orgItems("a", "b", "c"))

	err := executor.Execute(context.Background(), "bulk-delete")
	require.Same(t, boom, err, "the handler's error must be propagated unwrapped")
	require.Equal(t, "boom", err.Error())
	require.Equal(t, 3, store.Count(), "failed execution leaves the selection intact")
}

func TestExecutePassesSnapshotInSelectionOrder(t *testing.T) {
	t.Parallel()
	var got []string
	var calls int
	store, _, executor := newExecutorFixture(t, Action{
		ID: "bulk-delete",
		Handler: func(ctx context.Context, items []Item) error {
			calls++
			for _, item := range items {
				got = append(got, item.ID)
			}
			return nil
		},
	})

	store.Select(orgItem("a"))
	store.Select(orgItem("b"))
	store.Select(orgItem("c"))

	require.NoError(t, executor.Execute(context.Background(), "bulk-delete"))
	require.Equal(t, 1, calls, "handler runs exactly once")
	require.Equal(t, []string{"a", "b", "c"}, got, "snapshot arrives in selection order")
	require.Empty(t, store.SelectedIDs(), "selection is empty afterwards")
}

func TestExecuteSnapshotIgnoresMidFlightMutation(t *testing.T) {
	t.Parallel()
	var seen int
	store := NewStore()
	registry := NewRegistry()
	executor := NewExecutor(store, registry)
	require.NoError(t, registry.SetActions([]Action{{
		ID: "bulk-delete",
		Handler: func(ctx context.Context, items []Item) error {
			seen = len(items)
			// A checkbox click landing while the handler runs must not
			// change the snapshot already captured
			store.Select(orgItem("late"))
			return nil
		},
	}}))
	store.SelectAll(orgItems("a", "b"))

	require.NoError(t, executor.Execute(context.Background(), "bulk-delete"))
	require.Equal(t, 2, seen, "snapshot is captured at invocation time")
	require.Equal(t, 0, store.Count(), "post-success clear wins over mid-flight additions")
}

func TestExecuteRejectsConcurrentInvocation(t *testing.T) {
	t.Parallel()
	release := make(chan struct{})
	started := make(chan struct{})
	store, _, executor := newExecutorFixture(t, Action{
		ID: "slow",
		Handler: func(ctx context.Context, items []Item) error {
			close(started)
			<-release
			return nil
		},
	})
	store.Select(orgItem("a"))

	var wg sync.WaitGroup
	wg.Add(1)
	var firstErr error
	go func() {
		defer wg.Done()
		firstErr = executor.Execute(context.Background(), "slow")
	}()

	select {
	case <-started:
	case <-time.After(time.Second):
		t.Fatal("handler never started")
	}

	require.True(t, executor.IsRunning(), "executor should report in flight")
	err := executor.Execute(context.Background(), "slow")
	require.ErrorIs(t, err, ErrAlreadyRunning, "double invocation is rejected while pending")

	close(release)
	wg.Wait()
	require.NoError(t, firstErr)
	require.False(t, executor.IsRunning())
}

func TestExecuteAfterStoreCloseSkipsClear(t *testing.T) {
	t.Parallel()
	store := NewStore()
	registry := NewRegistry()
	executor := NewExecutor(store, registry)
	require.NoError(t, registry.SetActions([]Action{{
		ID: "bulk-delete",
		Handler: func(ctx context.Context, items []Item) error {
			// The owning view unmounts while the handler is awaited
			store.Close()
			return nil
		},
	}}))
	store.SelectAll(orgItems("a", "b"))

	require.NoError(t, executor.Execute(context.Background(), "bulk-delete"),
		"a torn-down store must not turn success into an error")
	require.Equal(t, 2, store.Count(), "clear on a disposed store is a no-op")
}

func TestExecuteBulkDeleteScenario(t *testing.T) {
	t.Parallel()
	var deleted [][]string
	store, _, executor := newExecutorFixture(t, Action{
		ID:    "bulk-delete",
		Label: "Delete",
		Handler: func(ctx context.Context, items []Item) error {
			ids := make([]string, 0, len(items))
			for _, item := range items {
				ids = append(ids, item.ID)
			}
			deleted = append(deleted, ids)
			return nil
		},
	})

	store.Select(orgItem("a"))
	store.Select(orgItem("b"))
	store.Select(orgItem("c"))

	require.NoError(t, executor.Execute(context.Background(), "bulk-delete"))
	require.Len(t, deleted, 1, "deleteAll called exactly once")
	require.Equal(t, []string{"a", "b", "c"}, deleted[0], "called with all three items in selection order")
	require.Empty(t, store.SelectedIDs(), "selection is cleared after success")
}
