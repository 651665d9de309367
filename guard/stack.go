package guard

import "slices"

// Stack collects cleanup actions for one scope and runs them in reverse
// registration order, mirroring nested-scope teardown. It removes the
// need to name a guard per cleanup:
//
//	var s guard.Stack
//	defer s.Exit()
//	s.Defer(closeConn)
//	s.Defer(releaseLock)
//
// The zero value is ready to use. Like Guard, a Stack belongs to one
// scope on one goroutine and must not be copied after first use: any
// method called on a copy panics.
type Stack struct {
	noCopy noCopy

	addr *Stack
	fns  []Func
	opts Options
}

// NewStack returns an empty stack with the given options applied to
// every action it runs.
func NewStack(optFns ...Option) *Stack {
	s := &Stack{opts: defaultOptions()}
	for _, opt := range optFns {
		opt(&s.opts)
	}
	s.addr = s
	return s
}

// copyCheck binds a zero-value stack to its own address on first use and
// panics when the receiver was copied from another stack.
func (s *Stack) copyCheck() {
	if s.addr == nil {
		s.addr = s
	} else if s.addr != s {
		panic("guard: illegal use of copied Stack")
	}
}

// Defer registers fn to run when the stack exits. A nil fn is ignored.
func (s *Stack) Defer(fn Func) {
	s.copyCheck()
	if fn == nil {
		return
	}
	s.fns = append(s.fns, fn)
	if s.opts.Observer != nil {
		s.opts.Observer.GuardArmed()
	}
}

// Len reports the number of pending actions.
func (s *Stack) Len() int {
	s.copyCheck()
	return len(s.fns)
}

// Exit runs all pending actions, last registered first, each exactly
// once. An action that panics is contained the same way Guard.Exit
// contains it; when the OnPanic handler returns, the remaining actions
// still run. Exit on an empty stack is a no-op, and a stack may be
// reused after exiting.
func (s *Stack) Exit() {
	s.copyCheck()
	fns := s.fns
	s.fns = nil
	for _, fn := range slices.Backward(fns) {
		invoke(fn, s.opts.Observer, s.opts.OnPanic)
	}
}
