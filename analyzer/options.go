package analyzer

// DefaultGuardPackage is the import path checked when no override is given.
const DefaultGuardPackage = "github.com/Cresspresso/defer/guard"

// Option configures the analyzer returned by New.
type Option func(*options)

type options struct {
	guardPackage string
}

// WithGuardPackage overrides the import path of the guard package to
// check, for forks and vendored copies.
func WithGuardPackage(path string) Option {
	return func(o *options) { o.guardPackage = path }
}
