// Package engine defines the capability boundary between the
// orchestrator and the compute-heavy engines (graph builder, index
// builder, poison-table builder, read mappers).
//
// An engine is consumed purely as `invoke(argv) -> exit code`: the
// orchestrator marshals a synthetic argv, blocks on the invocation,
// and interprets the integer result. Production implementations launch
// external processes; tests substitute in-memory fakes recording calls
// and returning scripted codes.
package engine
