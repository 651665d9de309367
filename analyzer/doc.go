// Package analyzer provides a go/analysis based checker for scope guard
// misuse: guards whose cleanup can never fire, guards that fire
// immediately instead of at scope exit, and guards that are created but
// never released.
package analyzer
