package template

import (
	"errors"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/goliatone/go-doctemplate/pkg/render"
)

// CatchAll is the pattern that matches every file name, with or without an
// extension.
const CatchAll = "*"

type patternKind int

const (
	kindInvalid patternKind = iota
	kindCatchAll
	kindExtension
	kindGlob
)

// Pattern is a validated file-name glob. The zero Pattern is invalid and
// matches nothing; build patterns with ParsePattern.
type Pattern struct {
	raw    string
	kind   patternKind
	suffix string
}

// ParsePattern validates raw. Patterns are matched against base file names,
// so empty patterns, patterns with a path separator and malformed globs are
// rejected with a ConfigurationError.
func ParsePattern(raw string) (Pattern, error) {
	trimmed := strings.TrimSpace(raw)
	switch {
	case trimmed == "":
		return Pattern{}, render.NewConfigurationError("pattern", raw, errors.New("pattern is empty"))
	case strings.ContainsAny(trimmed, `/\`):
		return Pattern{}, render.NewConfigurationError("pattern", raw, errors.New("pattern must match a file name, not a path"))
	case trimmed == CatchAll || trimmed == "**":
		return Pattern{raw: trimmed, kind: kindCatchAll}, nil
	}

	if ext, ok := strings.CutPrefix(trimmed, "*."); ok && ext != "" && !hasGlobMeta(ext) {
		return Pattern{raw: trimmed, kind: kindExtension, suffix: "." + ext}, nil
	}

	if !doublestar.ValidatePattern(trimmed) {
		return Pattern{}, render.NewConfigurationError("pattern", raw, errors.New("unsupported glob syntax"))
	}
	return Pattern{raw: trimmed, kind: kindGlob}, nil
}

// MustParsePattern panics when raw is not a valid pattern.
func MustParsePattern(raw string) Pattern {
	p, err := ParsePattern(raw)
	if err != nil {
		panic(err)
	}
	return p
}

// Match reports whether fileName matches the pattern. The extension form is a
// case-sensitive suffix comparison, so "*.xyz" matches ".xyz" as well.
func (p Pattern) Match(fileName string) bool {
	switch p.kind {
	case kindInvalid:
		return false
	case kindCatchAll:
		return true
	case kindExtension:
		return strings.HasSuffix(fileName, p.suffix)
	default:
		ok, err := doublestar.Match(p.raw, fileName)
		return err == nil && ok
	}
}

// Valid reports whether p came from ParsePattern.
func (p Pattern) Valid() bool {
	return p.kind != kindInvalid
}

// String returns the pattern as written.
func (p Pattern) String() string {
	return p.raw
}

// IsCatchAll reports whether the pattern matches every name.
func (p Pattern) IsCatchAll() bool {
	return p.kind == kindCatchAll
}

// Matches parses pattern and matches it against fileName in one step.
func Matches(pattern, fileName string) (bool, error) {
	p, err := ParsePattern(pattern)
	if err != nil {
		return false, err
	}
	return p.Match(fileName), nil
}

func hasGlobMeta(s string) bool {
	return strings.ContainsAny(s, `*?[]{}\`)
}
