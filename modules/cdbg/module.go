// Package cdbg adapts the compacted de Bruijn graph construction
// engine (cuttlefish) for registration.
package cdbg

import (
	"github.com/vk/refidx/internal/engine"
)

// Version is the engine release the argv contract targets.
const Version = "2.2.0"

// Module implements the engine.Module interface for this package.
type Module struct {
	// Binary overrides the executable path; empty resolves the engine
	// name against PATH.
	Binary string
}

// Register registers the graph builder with the registry.
func (m *Module) Register(r *engine.Registry) {
	r.Register(&engine.Proc{
		EngineName:    engine.GraphBuilder,
		Binary:        m.Binary,
		BinaryVersion: Version,
	})
}
