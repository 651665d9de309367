package gclplugin

import "github.com/Cresspresso/defer/analyzer"

// Settings represents the configuration options for an instance of the [Plugin].
type Settings struct {
	// GuardPackage overrides the import path of the guard package to check.
	GuardPackage *string `json:"guard-package,omitzero"`
}

// Options converts [Settings] into a list of [analyzer.Option] for the
// guardcheck analyzer. Settings apply only when explicitly set (non-nil).
func (s Settings) Options() []analyzer.Option {
	var opts []analyzer.Option

	if s.GuardPackage != nil {
		opts = append(opts, analyzer.WithGuardPackage(*s.GuardPackage))
	}

	return opts
}
