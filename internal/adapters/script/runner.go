// Package script implements the configuration runner that applies a unit's
// script sources. The real evaluation engine is an external collaborator;
// this runner performs the engine-side bookkeeping of an apply: it resolves
// and reads every contributing script in declaration order.
package script

import (
	"context"
	"os"
	"path/filepath"

	"go.trai.ch/keel/internal/core/domain"
	"go.trai.ch/keel/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Configurer = (*Runner)(nil)

// Runner implements ports.Configurer against the local source tree.
type Runner struct {
	root string
}

// NewRunner creates a Runner rooted at the given source directory.
func NewRunner(root string) *Runner {
	return &Runner{root: root}
}

// Configure applies the unit's scripts in declaration order.
// A missing or unreadable script fails the unit; nothing is retained for a
// failed unit, so the pass never sees partially-applied state.
func (r *Runner) Configure(ctx context.Context, unit *domain.Unit) error {
	for _, script := range unit.ScriptSources {
		if err := ctx.Err(); err != nil {
			return err
		}

		path := filepath.Join(r.root, script.String())
		//nolint:gosec // Script paths come from the validated layout
		if _, err := os.ReadFile(path); err != nil {
			return zerr.With(
				zerr.With(zerr.Wrap(domain.ErrConfigurationFailed, "failed to read script source"), "path", path),
				"unit", unit.Path.String(),
			)
		}
	}
	return nil
}
