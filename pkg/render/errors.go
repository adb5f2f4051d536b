package render

import (
	"errors"
	"fmt"

	"github.com/goliatone/go-doctemplate/pkg/node"
)

var (
	// ErrNilNode is returned when a nil node reaches the converter.
	ErrNilNode = errors.New("render: node is nil")
	// ErrMaxDepth is returned when nested rendering exceeds the configured depth.
	ErrMaxDepth = errors.New("render: maximum nesting depth exceeded")
)

// ConfigurationError reports a broken template configuration: an unsupported
// engine pattern, an unknown configuration shape, or a template that fails to
// compile. It is raised while building the converter, before any rendering.
type ConfigurationError struct {
	Op    string
	Value string
	Err   error
}

func (e *ConfigurationError) Error() string {
	msg := "render: configuration"
	if e.Op != "" {
		msg += ": " + e.Op
	}
	if e.Value != "" {
		msg += fmt.Sprintf(" %q", e.Value)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// NewConfigurationError builds a ConfigurationError.
func NewConfigurationError(op, value string, err error) *ConfigurationError {
	return &ConfigurationError{Op: op, Value: value, Err: err}
}

// IsConfigurationError reports whether err wraps a ConfigurationError.
func IsConfigurationError(err error) bool {
	var cfgErr *ConfigurationError
	return errors.As(err, &cfgErr)
}

// RenderError wraps an error returned by a template. Only the innermost
// failing handler is wrapped; enclosing handlers that forward the error leave
// it untouched.
type RenderError struct {
	Type   node.Type
	Source string
	Err    error
}

func (e *RenderError) Error() string {
	if e.Source == "" {
		return fmt.Sprintf("render: %s: %v", e.Type, e.Err)
	}
	return fmt.Sprintf("render: %s (%s): %v", e.Type, e.Source, e.Err)
}

func (e *RenderError) Unwrap() error {
	return e.Err
}

func wrapRenderError(n node.Node, source string, err error) error {
	var renderErr *RenderError
	if errors.As(err, &renderErr) {
		return err
	}
	return &RenderError{Type: n.Type(), Source: source, Err: err}
}
