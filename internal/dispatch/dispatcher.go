package dispatch

import (
	"context"
	"sort"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// Handler runs one aggregation tool over validated, normalized
// parameters and returns the rendered report.
type Handler func(ctx context.Context, params map[string]any) string

// Registration binds a tool name to its schema and handler.
type Registration struct {
	Name        string
	Description string
	Schema      Schema
	Handler     Handler
}

// Dispatcher routes tool calls. Registrations happen at startup; Dispatch
// is safe for concurrent use afterwards.
type Dispatcher struct {
	tools map[string]Registration
}

// NewDispatcher creates an empty dispatcher.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{tools: make(map[string]Registration)}
}

// Register adds a tool. Re-registering a name replaces the earlier entry.
func (d *Dispatcher) Register(r Registration) {
	d.tools[r.Name] = r
}

// Names lists the registered tool names, sorted.
func (d *Dispatcher) Names() []string {
	names := make([]string, 0, len(d.tools))
	for name := range d.tools {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Describe returns a tool's registration for discovery endpoints.
func (d *Dispatcher) Describe(name string) (Registration, bool) {
	r, ok := d.tools[name]
	return r, ok
}

// Dispatch validates params and runs the named tool. Validation failures
// and unknown tools come back as errors before any network activity; a
// panicking handler is recovered into an error-flagged text result so the
// caller still receives a report.
func (d *Dispatcher) Dispatch(ctx context.Context, name string, params map[string]any) (result string, err error) {
	reg, ok := d.tools[name]
	if !ok {
		return "", eris.Errorf("dispatch: unknown tool %q", name)
	}

	normalized, err := reg.Schema.Validate(params)
	if err != nil {
		return "", err
	}

	defer func() {
		if r := recover(); r != nil {
			zap.L().Error("dispatch: handler panic",
				zap.String("tool", name),
				zap.Any("panic", r),
			)
			result = "# Error\n\nThe " + name + " tool failed unexpectedly. Re-run to retry."
			err = nil
		}
	}()

	return reg.Handler(ctx, normalized), nil
}
