package app

import (
	"github.com/vk/refidx/internal/engine"
	"github.com/vk/refidx/modules/cdbg"
	"github.com/vk/refidx/modules/pesc"
	"github.com/vk/refidx/modules/poison"
	"github.com/vk/refidx/modules/refindex"
)

// coreModules is the definitive list of engine adapters compiled into
// the refidx binary. Binary paths come from a profile's engines block
// when present; an empty path resolves the engine name against PATH.
func coreModules(binaries map[string]string) []engine.Module {
	return []engine.Module{
		&cdbg.Module{Binary: binaries[engine.GraphBuilder]},
		&refindex.Module{Binary: binaries[engine.IndexBuilder]},
		&poison.Module{Binary: binaries[engine.PoisonBuilder]},
		&pesc.Module{
			SCBinary:   binaries[engine.SCMapper],
			BulkBinary: binaries[engine.BulkMapper],
			ATACBinary: binaries[engine.ATACMapper],
		},
	}
}
