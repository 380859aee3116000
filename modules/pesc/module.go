// Package pesc adapts the three read mapping engines (single-cell,
// bulk, and single-cell ATAC) for registration.
package pesc

import (
	"github.com/vk/refidx/internal/engine"
)

// Version is the mapper release the argv contracts target.
const Version = "0.7.0"

// Module implements the engine.Module interface for this package.
type Module struct {
	// Binary overrides; empty resolves each engine name against PATH.
	SCBinary   string
	BulkBinary string
	ATACBinary string
}

// Register registers the three mappers with the registry.
func (m *Module) Register(r *engine.Registry) {
	r.Register(&engine.Proc{
		EngineName:    engine.SCMapper,
		Binary:        m.SCBinary,
		BinaryVersion: Version,
	})
	r.Register(&engine.Proc{
		EngineName:    engine.BulkMapper,
		Binary:        m.BulkBinary,
		BinaryVersion: Version,
	})
	r.Register(&engine.Proc{
		EngineName:    engine.ATACMapper,
		Binary:        m.ATACBinary,
		BinaryVersion: Version,
	})
}
