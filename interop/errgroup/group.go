// Package errgroup provides an adapter that binds guard cleanups to the
// lifetime of a golang.org/x/sync/errgroup group. Handing a cleanup to
// the group is a full ownership transfer: the group, not the registering
// scope, becomes responsible for firing it after Wait.
package errgroup

import (
	"context"

	xerrgroup "golang.org/x/sync/errgroup"

	"github.com/Cresspresso/defer/guard"
)

// Group is an errgroup.Group that also owns scope-bound cleanups.
type Group struct {
	g     *xerrgroup.Group
	stack *guard.Stack
}

// WithContext creates a Group bound to ctx. The returned context is
// canceled when any function passed to Go returns a non-nil error.
// Options apply to the cleanups the group runs.
func WithContext(ctx context.Context, optFns ...guard.Option) (*Group, context.Context) {
	eg, ctx := xerrgroup.WithContext(ctx)
	g := &Group{g: eg, stack: guard.NewStack(optFns...)}
	return g, ctx
}

// Go starts a function. It should return a non-nil error to signal failure.
func (g *Group) Go(f func() error) {
	if f == nil {
		return
	}
	g.g.Go(f)
}

// Defer registers a cleanup owned by the group. Cleanups run in reverse
// registration order once Wait has joined all tasks, whether or not a
// task failed.
func (g *Group) Defer(fn guard.Func) {
	g.stack.Defer(fn)
}

// SetLimit bounds the number of active tasks, as errgroup.Group.SetLimit.
func (g *Group) SetLimit(n int) {
	g.g.SetLimit(n)
}

// Wait blocks until all functions have returned, then fires the
// registered cleanups. It returns the first non-nil task error.
func (g *Group) Wait() error {
	defer g.stack.Exit()
	return g.g.Wait()
}
