package column

import (
	"strings"

	"github.com/pseudomuto/colsweep/pkg/errs"
)

type (
	// Spec describes the column to add. Use New to construct one.
	Spec struct {
		name     string
		typ      string
		nullable bool
		def      *string
		comment  *string
	}

	// Option customizes a Spec during construction.
	Option func(*Spec)
)

// New validates and builds a Spec. The column is nullable unless NotNull (or
// Nullable(false)) is supplied. A blank name or type yields an
// errs.ConfigurationError.
func New(name, typ string, opts ...Option) (Spec, error) {
	s := Spec{
		name:     strings.TrimSpace(name),
		typ:      strings.TrimSpace(typ),
		nullable: true,
	}

	for _, opt := range opts {
		opt(&s)
	}

	if s.name == "" {
		return Spec{}, errs.Configuration("column name is required")
	}

	if s.typ == "" {
		return Spec{}, errs.Configuration("column %s is missing a type", s.name)
	}

	return s, nil
}

// Nullable sets whether the column accepts NULL.
func Nullable(nullable bool) Option {
	return func(s *Spec) { s.nullable = nullable }
}

// NotNull marks the column NOT NULL.
func NotNull() Option {
	return Nullable(false)
}

// WithDefault sets the raw default value. Formatting happens per dialect.
// An empty value means no default.
func WithDefault(value string) Option {
	return func(s *Spec) {
		if value == "" {
			s.def = nil
			return
		}
		s.def = &value
	}
}

// WithComment sets the column comment. An empty comment means none.
func WithComment(comment string) Option {
	return func(s *Spec) {
		if comment == "" {
			s.comment = nil
			return
		}
		s.comment = &comment
	}
}

// Name returns the column name.
func (s Spec) Name() string { return s.name }

// Type returns the type expression, verbatim.
func (s Spec) Type() string { return s.typ }

// Nullable reports whether the column accepts NULL.
func (s Spec) Nullable() bool { return s.nullable }

// Default returns the raw default value and whether one was set.
func (s Spec) Default() (string, bool) {
	if s.def == nil {
		return "", false
	}
	return *s.def, true
}

// Comment returns the column comment and whether one was set.
func (s Spec) Comment() (string, bool) {
	if s.comment == nil {
		return "", false
	}
	return *s.comment, true
}

// Class classifies the type expression. See Classify.
func (s Spec) Class() TypeClass {
	return Classify(s.typ)
}

// IsZero reports whether s was never built by New.
func (s Spec) IsZero() bool {
	return s.name == "" && s.typ == ""
}
