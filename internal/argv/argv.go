// Package argv builds the ordered token sequences handed to engines.
//
// Engines consume a C-style argc/argv pair, so every token must be
// representable as a NUL-terminated byte string. The builder validates
// tokens as they are appended; an embedded NUL byte surfaces as a
// MarshalError before any engine is invoked.
package argv

import (
	"fmt"
	"strconv"
	"strings"
)

// MarshalError reports a token that cannot cross the engine boundary.
type MarshalError struct {
	Token string
}

// Error implements the error interface.
func (e *MarshalError) Error() string {
	return fmt.Sprintf("argument %q contains an embedded NUL byte and cannot be passed to an engine", e.Token)
}

// Builder accumulates argv tokens in a stable order.
type Builder struct {
	tokens []string
	err    error
}

// NewBuilder starts an argv for the named engine; the name becomes
// argv[0].
func NewBuilder(program string) *Builder {
	b := &Builder{}
	b.Token(program)
	return b
}

// Token appends a single token.
func (b *Builder) Token(tok string) *Builder {
	if b.err != nil {
		return b
	}
	if strings.ContainsRune(tok, 0) {
		b.err = &MarshalError{Token: tok}
		return b
	}
	b.tokens = append(b.tokens, tok)
	return b
}

// Flag appends a flag followed by its value.
func (b *Builder) Flag(flag, value string) *Builder {
	return b.Token(flag).Token(value)
}

// IntFlag appends a flag followed by the decimal form of n.
func (b *Builder) IntFlag(flag string, n int) *Builder {
	return b.Flag(flag, strconv.Itoa(n))
}

// PathsFlag appends a flag followed by a comma-joined path list.
func (b *Builder) PathsFlag(flag string, paths []string) *Builder {
	return b.Flag(flag, strings.Join(paths, ","))
}

// BoolFlag appends a bare flag when set is true.
func (b *Builder) BoolFlag(flag string, set bool) *Builder {
	if set {
		return b.Token(flag)
	}
	return b
}

// Argv returns the accumulated token sequence, or the first
// MarshalError encountered while building it.
func (b *Builder) Argv() ([]string, error) {
	if b.err != nil {
		return nil, b.err
	}
	return b.tokens, nil
}
