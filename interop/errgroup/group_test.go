package errgroup_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/goleak"

	"github.com/Cresspresso/defer/interop/errgroup"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestCleanupRunsAfterWait(t *testing.T) {
	t.Parallel()
	g, _ := errgroup.WithContext(context.Background())
	var order []string
	g.Defer(func() { order = append(order, "cleanup1") })
	g.Defer(func() { order = append(order, "cleanup2") })
	done := atomic.Bool{}
	g.Go(func() error {
		done.Store(true)
		return nil
	})
	if err := g.Wait(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !done.Load() {
		t.Fatal("task did not run before Wait returned")
	}
	if len(order) != 2 || order[0] != "cleanup2" || order[1] != "cleanup1" {
		t.Fatalf("expected cleanups in reverse order, got %v", order)
	}
}

func TestCleanupRunsDespiteTaskError(t *testing.T) {
	t.Parallel()
	g, ctx := errgroup.WithContext(context.Background())
	cleaned := atomic.Bool{}
	g.Defer(func() { cleaned.Store(true) })
	g.Go(func() error { return errors.New("boom") })
	g.Go(func() error {
		<-ctx.Done()
		return ctx.Err()
	})
	if err := g.Wait(); err == nil {
		t.Fatal("expected error from failing task")
	}
	if !cleaned.Load() {
		t.Fatal("cleanup must run even when a task fails")
	}
}

func TestCleanupRunsAfterAllTasksJoin(t *testing.T) {
	t.Parallel()
	g, _ := errgroup.WithContext(context.Background())
	taskDone := atomic.Bool{}
	g.Defer(func() {
		if !taskDone.Load() {
			t.Error("cleanup ran before the task joined")
		}
	})
	g.Go(func() error {
		time.Sleep(30 * time.Millisecond)
		taskDone.Store(true)
		return nil
	})
	if err := g.Wait(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestSetLimitBound(t *testing.T) {
	t.Parallel()
	const limit = 2
	g, _ := errgroup.WithContext(context.Background())
	g.SetLimit(limit)
	var cur, maxSeen atomic.Int64
	for i := 0; i < 10; i++ {
		g.Go(func() error {
			c := cur.Add(1)
			for {
				m := maxSeen.Load()
				if c <= m || maxSeen.CompareAndSwap(m, c) {
					break
				}
			}
			time.Sleep(5 * time.Millisecond)
			cur.Add(-1)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if observed := maxSeen.Load(); observed > limit {
		t.Fatalf("observed concurrency %d exceeds limit %d", observed, limit)
	}
}
