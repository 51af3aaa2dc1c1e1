package pathargs

import (
	"fmt"
	"strings"
)

// TypeSet is the declared type of a parameter.
// Several flags together describe a union.
type TypeSet uint8

const (
	// TypePath is the structured path type.
	TypePath TypeSet = 1 << iota
	// TypeText is plain text.
	TypeText
	// TypeNone allows the absence marker (nil).
	TypeNone
	// TypeOther is any other type.
	TypeOther
)

// Common declared types.
const (
	// File is a path expected to name a regular file.
	File = TypePath
	// Directory is a path expected to name a directory.
	Directory = TypePath
	// OptionalPath is a path or nil.
	OptionalPath = TypePath | TypeNone
	// PathOrText is a path or plain text; text is still converted.
	PathOrText = TypePath | TypeText
)

//nolint:gochecknoglobals // Immutable lookup used by String.
var typeNames = []struct {
	flag TypeSet
	name string
}{
	{TypePath, "path"},
	{TypeText, "text"},
	{TypeNone, "none"},
	{TypeOther, "other"},
}

// Has reports whether every flag of other is present in t.
func (t TypeSet) Has(other TypeSet) bool {
	return other != 0 && t&other == other
}

// IsPathBearing reports whether the path type is a member of the set.
func (t TypeSet) IsPathBearing() bool {
	return t.Has(TypePath)
}

func (t TypeSet) String() string {
	if t == 0 {
		return "unknown"
	}

	names := make([]string, 0, len(typeNames))

	for _, tn := range typeNames {
		if t.Has(tn.flag) {
			names = append(names, tn.name)
		}
	}

	return strings.Join(names, "|")
}

// ParamKind tells how a parameter may be supplied.
type ParamKind uint8

const (
	// Positional parameters may be supplied by position or by name.
	Positional ParamKind = iota
	// KeywordOnly parameters may only be supplied by name.
	KeywordOnly
)

func (k ParamKind) String() string {
	if k == KeywordOnly {
		return "keyword-only"
	}

	return "positional"
}

// Param describes one parameter of a callable.
type Param struct {
	// Name is the parameter name used for keyword arguments.
	Name string
	// Type is the declared type, possibly a union.
	Type TypeSet
	// Kind tells whether the parameter may be given by position.
	Kind ParamKind
	// Default is the value used when the parameter is omitted.
	// It is only meaningful when HasDefault is set.
	Default any
	// HasDefault reports whether the parameter declares a default.
	HasDefault bool
}

// Required declares a positional parameter without a default.
func Required(name string, typ TypeSet) Param {
	return Param{Name: name, Type: typ, Kind: Positional}
}

// Optional declares a positional parameter with a default.
func Optional(name string, typ TypeSet, def any) Param {
	return Param{Name: name, Type: typ, Kind: Positional, Default: def, HasDefault: true}
}

// KeywordOnlyParam declares a keyword-only parameter with a default.
func KeywordOnlyParam(name string, typ TypeSet, def any) Param {
	return Param{Name: name, Type: typ, Kind: KeywordOnly, Default: def, HasDefault: true}
}

// KeywordOnlyRequired declares a keyword-only parameter without a default.
func KeywordOnlyRequired(name string, typ TypeSet) Param {
	return Param{Name: name, Type: typ, Kind: KeywordOnly}
}

// Signature is the parameter table of a callable.
type Signature struct {
	// Name identifies the callable in logs and introspection.
	Name string
	// Doc is a short human description.
	Doc string
	// Params lists parameters in declaration order.
	Params []Param
}

// NewSignature builds a validated Signature.
// Positional parameters must precede keyword-only ones and names must be unique.
func NewSignature(name, doc string, params ...Param) (Signature, error) {
	var (
		seen        = make(map[string]struct{}, len(params))
		keywordOnly bool
	)

	for i, p := range params {
		if p.Name == "" {
			return Signature{}, fmt.Errorf("%w: parameter #%d of %q", ErrEmptyParamName, i, name)
		}

		if _, ok := seen[p.Name]; ok {
			return Signature{}, fmt.Errorf("%w: %q in %q", ErrDuplicateParam, p.Name, name)
		}

		seen[p.Name] = struct{}{}

		switch p.Kind {
		case KeywordOnly:
			keywordOnly = true
		case Positional:
			if keywordOnly {
				return Signature{}, fmt.Errorf("%w: %q in %q", ErrParamOrder, p.Name, name)
			}
		}
	}

	return Signature{
		Name:   name,
		Doc:    doc,
		Params: append([]Param(nil), params...),
	}, nil
}

// MustSignature is like NewSignature but panics on an invalid table.
func MustSignature(name, doc string, params ...Param) Signature {
	sig, err := NewSignature(name, doc, params...)
	if err != nil {
		panic(err)
	}

	return sig
}

// Lookup returns the parameter with the given name.
func (s Signature) Lookup(name string) (Param, bool) {
	for _, p := range s.Params {
		if p.Name == name {
			return p, true
		}
	}

	return Param{}, false
}

// PathParams returns the names of the path-bearing parameters in declaration order.
func (s Signature) PathParams() []string {
	names := make([]string, 0, len(s.Params))

	for _, p := range s.Params {
		if p.Type.IsPathBearing() {
			names = append(names, p.Name)
		}
	}

	return names
}

// PositionalCount returns the number of parameters that may be given by position.
func (s Signature) PositionalCount() int {
	count := 0

	for _, p := range s.Params {
		if p.Kind == Positional {
			count++
		}
	}

	return count
}

// positionalIndexes maps each parameter to its position among positional
// parameters, or -1 for keyword-only ones.
func (s Signature) positionalIndexes() []int {
	var (
		indexes = make([]int, len(s.Params))
		next    int
	)

	for i, p := range s.Params {
		if p.Kind != Positional {
			indexes[i] = -1

			continue
		}

		indexes[i] = next
		next++
	}

	return indexes
}

func (s Signature) String() string {
	parts := make([]string, 0, len(s.Params))

	for _, p := range s.Params {
		part := p.Name + " " + p.Type.String()
		if p.Kind == KeywordOnly {
			part = "*" + part
		}

		if p.HasDefault {
			part += fmt.Sprintf(" = %v", p.Default)
		}

		parts = append(parts, part)
	}

	return s.Name + "(" + strings.Join(parts, ", ") + ")"
}
