package engine

import (
	"errors"
	"fmt"
)

var (
	ErrNoGraphics      = errors.New("engine: graphics device unavailable")
	ErrNoElements      = errors.New("engine: no elements to register")
	ErrUnknownInstance = errors.New("engine: unknown instance")
)

// DiagnosticKind classifies a non-fatal problem.
type DiagnosticKind int

const (
	// DiagSetup: a texture, model or shape failed to load. The element stays
	// unrendered.
	DiagSetup DiagnosticKind = iota
	// DiagConfig: a configuration value was rejected and a default used instead.
	DiagConfig
	// DiagDraw: drawing failed; the effect system was isolated.
	DiagDraw
)

func (k DiagnosticKind) String() string {
	switch k {
	case DiagSetup:
		return "setup"
	case DiagConfig:
		return "config"
	case DiagDraw:
		return "draw"
	}
	return fmt.Sprintf("DiagnosticKind(%d)", int(k))
}

// Diagnostic reports a problem that did not abort the caller's request.
type Diagnostic struct {
	Instance InstanceID
	Element  string
	Kind     DiagnosticKind
	Err      error
}

func (d Diagnostic) Error() string {
	if d.Element == "" {
		return fmt.Sprintf("instance %d: %s: %v", d.Instance, d.Kind, d.Err)
	}
	return fmt.Sprintf("instance %d, element %q: %s: %v", d.Instance, d.Element, d.Kind, d.Err)
}

func (d Diagnostic) Unwrap() error { return d.Err }
