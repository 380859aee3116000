// Package refindex adapts the reference index construction engine
// (sshash-based) for registration.
package refindex

import (
	"github.com/vk/refidx/internal/engine"
)

// Version is the engine release the argv contract targets.
const Version = "0.4.0"

// Module implements the engine.Module interface for this package.
type Module struct {
	// Binary overrides the executable path; empty resolves the engine
	// name against PATH.
	Binary string
}

// Register registers the index builder with the registry.
func (m *Module) Register(r *engine.Registry) {
	r.Register(&engine.Proc{
		EngineName:    engine.IndexBuilder,
		Binary:        m.Binary,
		BinaryVersion: Version,
	})
}
