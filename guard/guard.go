package guard

import (
	"fmt"
	"os"
	"time"
)

// Func is a cleanup action. It takes no arguments, returns nothing and
// must not panic; cleanup steps are expected to always succeed.
type Func func()

type Option func(*Options)

type Options struct {
	Observer Observer
	OnPanic  func(recovered any)
}

func defaultOptions() Options { return Options{} }

// WithObserver attaches lifecycle hooks to a guard.
func WithObserver(obs Observer) Option { return func(o *Options) { o.Observer = obs } }

// WithOnPanic replaces the handler invoked when an action panics during
// Exit. The default handler writes the panic value to stderr and aborts
// the process; a replacement that returns normally suppresses the panic.
func WithOnPanic(fn func(recovered any)) Option { return func(o *Options) { o.OnPanic = fn } }

// Observer receives guard lifecycle events.
type Observer interface {
	GuardArmed()
	GuardFired(dur time.Duration)
	GuardMoved()
	GuardPanicked(recovered any)
}

// noCopy triggers the go vet copylocks check when a Guard or Stack is
// copied by value.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// Guard owns a single cleanup action and fires it exactly once. The
// intended use is
//
//	defer guard.New(action).Exit()
//
// or, when the guard needs a name (to move it, or to inspect it):
//
//	g := guard.New(action)
//	defer g.Exit()
//
// A Guard is bound to one scope on one goroutine; it is not safe for
// concurrent use. Copying a Guard by value is illegal: any method called
// on a copy panics.
type Guard struct {
	noCopy noCopy

	addr  *Guard
	fn    Func
	armed bool

	opts Options
	obs  Observer
}

// New binds fn to a fresh armed guard. A nil fn yields a disarmed guard
// whose Exit is a no-op.
func New(fn Func, optFns ...Option) *Guard {
	g := &Guard{fn: fn, opts: defaultOptions()}
	for _, opt := range optFns {
		opt(&g.opts)
	}
	g.addr = g
	g.obs = g.opts.Observer
	g.armed = fn != nil
	if g.obs != nil && g.armed {
		g.obs.GuardArmed()
	}
	return g
}

// copyCheck binds a zero-value guard to its own address on first use and
// panics when the receiver was copied from another guard.
func (g *Guard) copyCheck() {
	if g.addr == nil {
		g.addr = g
	} else if g.addr != g {
		panic("guard: illegal use of copied Guard")
	}
}

// Armed reports whether the guard still holds an unfired action.
func (g *Guard) Armed() bool {
	g.copyCheck()
	return g.armed
}

// Exit fires the action exactly once. Calling Exit on a fired, moved-out
// or disarmed guard does nothing. A panic raised by the action is caught
// here and handed to the OnPanic handler; it never propagates into the
// unwinding of the surrounding scope.
func (g *Guard) Exit() {
	g.copyCheck()
	if !g.armed {
		return
	}
	g.armed = false
	fn := g.fn
	g.fn = nil
	invoke(fn, g.obs, g.opts.OnPanic)
}

// Move transfers the action to a fresh guard and disarms the receiver:
// after a move only the returned guard fires. Options default to the
// receiver's and may be overridden for the new guard.
func (g *Guard) Move(optFns ...Option) *Guard {
	g.copyCheck()
	opts := g.opts
	for _, opt := range optFns {
		opt(&opts)
	}
	ng := &Guard{fn: g.fn, armed: g.armed, opts: opts}
	ng.addr = ng
	ng.obs = opts.Observer
	g.armed = false
	g.fn = nil
	if g.obs != nil {
		g.obs.GuardMoved()
	}
	return ng
}

// invoke runs one action with panic containment. An action that panics
// is a contract violation; the panic is recovered and routed to onPanic,
// which defaults to fatal.
func invoke(fn Func, obs Observer, onPanic func(recovered any)) {
	defer func() {
		if r := recover(); r != nil {
			if obs != nil {
				obs.GuardPanicked(r)
			}
			if onPanic == nil {
				onPanic = fatal
			}
			onPanic(r)
		}
	}()
	var start time.Time
	if obs != nil {
		start = time.Now()
	}
	fn()
	if obs != nil {
		obs.GuardFired(time.Since(start))
	}
}

// fatal is the default OnPanic handler. Cleanup runs while the scope may
// already be unwinding from an earlier failure, so a second failure
// cannot be layered on top; the process aborts instead.
func fatal(recovered any) {
	fmt.Fprintf(os.Stderr, "guard: cleanup action panicked: %v\n", recovered)
	os.Exit(2)
}
