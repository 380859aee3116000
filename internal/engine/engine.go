package engine

import "context"

// Well-known engine names. Each name doubles as argv[0] of the
// invocation handed to the engine.
const (
	GraphBuilder  = "cdbg_builder"
	IndexBuilder  = "ref_index_builder"
	PoisonBuilder = "poison_table_builder"
	SCMapper      = "sc_ref_mapper"
	BulkMapper    = "bulk_ref_mapper"
	ATACMapper    = "scatac_ref_mapper"
)

// Engine is the capability interface for a single external engine.
type Engine interface {
	// Name returns the engine's registered name.
	Name() string

	// Version reports the engine's version string for the provenance
	// manifest. Implementations that cannot determine a version return
	// "unknown".
	Version() string

	// Invoke runs the engine with the given argv (argv[0] is the
	// engine name) and blocks until it completes. The returned integer
	// is the engine's exit code; 0 means success and any other value
	// is a failure carrying no further structured information. A
	// non-nil error means the engine could not be invoked at all.
	Invoke(ctx context.Context, argv []string) (int, error)
}
