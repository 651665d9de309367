// Package clean misuses the guard package in every way guardcheck knows
// about; with the guard package overridden to a different import path,
// none of it is reported.
package clean

import "github.com/Cresspresso/defer/guard"

func cleanup() {}

func dropped() {
	guard.New(cleanup)
}

func immediate() {
	guard.New(cleanup).Exit()
}

func neverFired() {
	g := guard.New(cleanup)
	_ = g
}
