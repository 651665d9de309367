// Package guard binds cleanup actions to the scopes that own them.
// A Guard holds exactly one action and fires it exactly once when its
// scope ends, whether the scope returns normally or unwinds from a panic.
package guard
