// Package poison adapts the poison table construction engine for
// registration. The poison table records decoy k-mers that veto
// spurious mappings.
package poison

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

// Register registers the poison table builder with the registry.
func (m *Module) Register(r *engine.Registry) {
	r.Register(&engine.Proc{
		EngineName:    engine.PoisonBuilder,
		Binary:        m.Binary,
		BinaryVersion: Version,
	})
}
