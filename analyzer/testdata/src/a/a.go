package a

import "github.com/Cresspresso/defer/guard"

func cleanup() {}

func dropped() {
	guard.New(cleanup) // want `result of guard\.New is discarded; the cleanup can never fire`
}

func droppedBlank() {
	_ = guard.New(cleanup) // want `result of guard\.New is discarded; the cleanup can never fire`
}

func droppedDefer() {
	defer guard.New(cleanup) // want `result of guard\.New is discarded; the cleanup can never fire`
}

func droppedMoveChain() {
	guard.New(cleanup).Move() // want `result of guard\.New is discarded; the cleanup can never fire`
}

func droppedArmedChain() {
	guard.New(cleanup).Armed() // want `result of guard\.New is discarded; the cleanup can never fire`
}

func immediate() {
	guard.New(cleanup).Exit() // want `guard fires immediately; defer the call to Exit to run it at scope exit`
}

func neverFired() {
	g := guard.New(cleanup) // want `guard g is never fired; defer g\.Exit\(\)`
	_ = g.Armed()
}

func neverFiredBlankUse() {
	g := guard.New(cleanup) // want `guard g is never fired; defer g\.Exit\(\)`
	_ = g
}

func neverFiredVarDecl() {
	var g = guard.New(cleanup) // want `guard g is never fired; defer g\.Exit\(\)`
	_ = g
}

func okOneLiner() {
	defer guard.New(cleanup).Exit()
}

func okNamed() {
	g := guard.New(cleanup)
	defer g.Exit()
}

func okMoved() {
	g := guard.New(cleanup)
	g2 := g.Move()
	defer g2.Exit()
}

func okEarlyExit() {
	g := guard.New(cleanup)
	g.Exit()
}

func okHandedOff() {
	g := guard.New(cleanup)
	fire(g)
}

func okReturned() *guard.Guard {
	g := guard.New(cleanup)
	return g
}

func fire(g *guard.Guard) {
	defer g.Exit()
}
