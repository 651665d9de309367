package analyzer

import (
	"errors"
	"go/ast"
	"go/types"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/ast/inspector"
	"golang.org/x/tools/go/types/typeutil"
)

const (
	msgDiscarded = "result of guard.New is discarded; the cleanup can never fire"
	msgImmediate = "guard fires immediately; defer the call to Exit to run it at scope exit"
)

// ErrNoInspector is returned when the required inspect pass result is missing.
var ErrNoInspector = errors.New("inspector analyzer result not found")

// New returns a guardcheck analyzer. Options may also be set through the
// analyzer's flags.
func New(opts ...Option) *analysis.Analyzer {
	o := &options{guardPackage: DefaultGuardPackage}
	for _, opt := range opts {
		opt(o)
	}
	a := &analysis.Analyzer{
		Name:     "guardcheck",
		Doc:      "reports scope guards that can never fire or that fire immediately",
		Requires: []*analysis.Analyzer{inspect.Analyzer},
		Run: func(pass *analysis.Pass) (any, error) {
			return run(pass, o)
		},
	}
	a.Flags.StringVar(&o.guardPackage, "guard-package", o.guardPackage,
		"import path of the guard package to check")
	return a
}

func run(pass *analysis.Pass, o *options) (any, error) {
	insp, ok := pass.ResultOf[inspect.Analyzer].(*inspector.Inspector)
	if !ok {
		return nil, ErrNoInspector
	}

	nodeFilter := []ast.Node{(*ast.CallExpr)(nil)}
	insp.WithStack(nodeFilter, func(n ast.Node, push bool, stack []ast.Node) bool {
		if !push {
			return false
		}
		file, ok := stack[0].(*ast.File)
		if !ok || ast.IsGenerated(file) {
			return false
		}
		call := n.(*ast.CallExpr)
		if !isGuardNew(pass, call, o.guardPackage) {
			return true
		}
		checkNewCall(pass, call, stack)
		return true
	})
	return nil, nil
}

// isGuardNew reports whether call resolves to New of the guard package.
func isGuardNew(pass *analysis.Pass, call *ast.CallExpr, pkgPath string) bool {
	fn, ok := typeutil.Callee(pass.TypesInfo, call).(*types.Func)
	if !ok {
		return false
	}
	return fn.Name() == "New" && fn.Pkg() != nil && fn.Pkg().Path() == pkgPath
}

// checkNewCall classifies the syntactic position of a guard.New call and
// reports misuse. stack runs from the file down to the call itself.
func checkNewCall(pass *analysis.Pass, call *ast.CallExpr, stack []ast.Node) {
	parent := stack[len(stack)-2]
	switch parent := parent.(type) {
	case *ast.ExprStmt:
		// guard.New(fn) as a bare statement: nothing can fire it.
		pass.Reportf(call.Pos(), "%s", msgDiscarded)

	case *ast.DeferStmt:
		// defer guard.New(fn): the guard is built during unwinding and
		// never fired.
		if parent.Call == call {
			pass.Reportf(call.Pos(), "%s", msgDiscarded)
		}

	case *ast.SelectorExpr:
		checkChainedCall(pass, call, parent, stack)

	case *ast.AssignStmt:
		idx := rhsIndex(parent.Rhs, call)
		if idx < 0 || idx >= len(parent.Lhs) {
			return
		}
		ident, ok := parent.Lhs[idx].(*ast.Ident)
		if !ok {
			return
		}
		if ident.Name == "_" {
			pass.Reportf(call.Pos(), "%s", msgDiscarded)
			return
		}
		obj := pass.TypesInfo.Defs[ident]
		if obj == nil {
			obj = pass.TypesInfo.Uses[ident]
		}
		checkGuardVar(pass, call, ident.Name, obj, stack)

	case *ast.ValueSpec:
		idx := rhsIndex(parent.Values, call)
		if idx < 0 || idx >= len(parent.Names) {
			return
		}
		name := parent.Names[idx]
		if name.Name == "_" {
			pass.Reportf(call.Pos(), "%s", msgDiscarded)
			return
		}
		checkGuardVar(pass, call, name.Name, pass.TypesInfo.Defs[name], stack)
	}
}

// checkChainedCall handles methods called directly on the constructor,
// like guard.New(fn).Exit() or guard.New(fn).Armed().
func checkChainedCall(pass *analysis.Pass, call *ast.CallExpr, sel *ast.SelectorExpr, stack []ast.Node) {
	if len(stack) < 4 {
		return
	}
	outer, ok := stack[len(stack)-3].(*ast.CallExpr)
	if !ok || outer.Fun != sel {
		return
	}
	if _, ok := stack[len(stack)-4].(*ast.ExprStmt); !ok {
		return
	}
	switch sel.Sel.Name {
	case "Exit":
		// defer guard.New(fn).Exit() is the intended one-liner; the same
		// chain without defer runs the cleanup on the spot.
		pass.Reportf(outer.Pos(), "%s", msgImmediate)
	default:
		// Move, Armed or anything else chained as a bare statement drops
		// the guard with the cleanup still pending.
		pass.Reportf(outer.Pos(), "%s", msgDiscarded)
	}
}

// checkGuardVar inspects how a variable bound to guard.New is used in
// its enclosing function. A guard that is never fired, moved or handed
// off can never run its cleanup.
func checkGuardVar(pass *analysis.Pass, call *ast.CallExpr, name string, obj types.Object, stack []ast.Node) {
	if obj == nil {
		return
	}
	fnNode := enclosingFunc(stack)
	if fnNode == nil {
		// Package-level guards escape local analysis.
		return
	}
	fires, escapes := guardUsage(fnNode, obj, pass.TypesInfo)
	if !fires && !escapes {
		pass.Reportf(call.Pos(), "guard %s is never fired; defer %s.Exit()", name, name)
	}
}

// guardUsage classifies every use of obj inside fnNode. fires means the
// guard's Exit or Move is reachable through the variable; escapes means
// the variable is handed to code this pass cannot see through.
func guardUsage(fnNode ast.Node, obj types.Object, info *types.Info) (fires, escapes bool) {
	handled := make(map[*ast.Ident]bool)
	ast.Inspect(fnNode, func(n ast.Node) bool {
		switch n := n.(type) {
		case *ast.SelectorExpr:
			if ident, ok := n.X.(*ast.Ident); ok && info.Uses[ident] == obj {
				handled[ident] = true
				switch n.Sel.Name {
				case "Exit", "Move":
					fires = true
				}
			}
		case *ast.AssignStmt:
			// Being the target of an assignment neither fires a guard
			// nor hands it off, and neither does _ = g.
			for _, lhs := range n.Lhs {
				if ident, ok := lhs.(*ast.Ident); ok && info.Uses[ident] == obj {
					handled[ident] = true
				}
			}
			if !allBlank(n.Lhs) {
				return true
			}
			for _, rhs := range n.Rhs {
				if ident, ok := rhs.(*ast.Ident); ok && info.Uses[ident] == obj {
					handled[ident] = true
				}
			}
		}
		return true
	})
	ast.Inspect(fnNode, func(n ast.Node) bool {
		if ident, ok := n.(*ast.Ident); ok && info.Uses[ident] == obj && !handled[ident] {
			escapes = true
		}
		return true
	})
	return fires, escapes
}

func allBlank(exprs []ast.Expr) bool {
	for _, e := range exprs {
		ident, ok := e.(*ast.Ident)
		if !ok || ident.Name != "_" {
			return false
		}
	}
	return true
}

func enclosingFunc(stack []ast.Node) ast.Node {
	for i := len(stack) - 1; i >= 0; i-- {
		switch stack[i].(type) {
		case *ast.FuncDecl, *ast.FuncLit:
			return stack[i]
		}
	}
	return nil
}

// rhsIndex locates call among the right-hand sides of an assignment or
// value spec. A single multi-value RHS maps to index 0.
func rhsIndex(rhs []ast.Expr, call *ast.CallExpr) int {
	for i, e := range rhs {
		if e == call {
			return i
		}
	}
	return -1
}
