package pipeline

import "fmt"

// ConfigError reports an invalid build request parameter. It is always
// detected before any engine runs and is never retried.
type ConfigError struct {
	Reason string
}

// Error implements the error interface.
func (e *ConfigError) Error() string { return e.Reason }

// InputError reports a referenced file that does not exist or cannot
// be statted.
type InputError struct {
	Path string
	Err  error
}

// Error implements the error interface.
func (e *InputError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("error %v when checking the existence of file %s", e.Err, e.Path)
	}
	return fmt.Sprintf("path for file %s seems not to point to a valid file", e.Path)
}

// Unwrap exposes the underlying cause, if any.
func (e *InputError) Unwrap() error { return e.Err }

// StageError reports a nonzero exit code from an engine. The integer
// is the only diagnostic carried across the boundary; artifacts
// already produced by the failed stage are left for inspection.
type StageError struct {
	Stage string
	Code  int
}

// Error implements the error interface.
func (e *StageError) Error() string {
	return fmt.Sprintf("%s returned exit code %d; failure", e.Stage, e.Code)
}
