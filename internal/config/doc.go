// Package config defines the format-agnostic request model for the
// application, along with the Loader interface for reading build
// profiles from various sources.
//
// A config.BuildRequest is the single source of truth for the pipeline
// package: it is assembled once per invocation (from flags, or from a
// profile merged with flags) and is read-only afterwards. Concrete
// Loader implementations, such as for HCL, are provided in separate
// packages.
package config
