package core

import (
	"context"
	"io"
	"os"
)

// Session holds the runtime context for one reconciliation run against a
// single cluster. It wraps the standard Go context and adds the facts
// fetched from the cluster, so `when:` conditions can reference them.
//
// The transport handle itself is not carried here; account items hold
// their own service reference. Keeping the session free of the API client
// avoids an import cycle and keeps condition evaluation side-effect free.
type Session struct {
	context.Context `yaml:"-"`

	// Cluster facts, filled from GetClusterInfo before the run.
	Cluster   string `yaml:"cluster"`    // cluster name as reported by the API
	MVIP      string `yaml:"mvip"`       // management virtual IP
	Version   string `yaml:"version"`    // Element API version in use
	NodeCount int    `yaml:"node_count"` // number of ensemble nodes

	// DryRun reports the decision for each account without executing it.
	DryRun bool `yaml:"-"`

	Stdout io.Writer `yaml:"-"`
	Stderr io.Writer `yaml:"-"`
}

// NewSession builds a Session with stdio defaults.
func NewSession(ctx context.Context, dryRun bool) *Session {
	if ctx == nil {
		ctx = context.Background()
	}
	return &Session{
		Context: ctx,
		DryRun:  dryRun,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
	}
}
