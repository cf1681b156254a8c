// Package simulation routes experiment requests to the simulation modules
// and lists the experiment catalog.
package simulation

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	apperrors "github.com/Estagiarius/simulajuls/internal/platform/errors"
	"github.com/Estagiarius/simulajuls/internal/platform/otel"
	"github.com/Estagiarius/simulajuls/internal/simulation/acidbase"
	"github.com/Estagiarius/simulajuls/internal/simulation/genetics"
	"github.com/Estagiarius/simulajuls/internal/simulation/projectile"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var (
	// ErrModuleRequired indicates a nil module registration.
	ErrModuleRequired = errors.New("simulation module is required")
	// ErrModuleNameRequired indicates a module without domain or name.
	ErrModuleNameRequired = errors.New("simulation module domain and name are required")
	// ErrModuleAlreadyRegistered indicates a duplicate registration.
	ErrModuleAlreadyRegistered = errors.New("simulation module already registered")
)

// Module is one runnable experiment.
//
// Run receives loosely typed request fields and returns a JSON-serializable
// result. It must return a nil result whenever it returns an error.
type Module interface {
	Name() string
	DisplayName() string
	Category() string
	Domain() string
	Description() string
	Run(ctx context.Context, params map[string]any) (any, error)
}

// Key identifies a module by domain and experiment name.
type Key struct {
	Domain     string
	Experiment string
}

// String renders the key as a request path segment.
func (k Key) String() string {
	return k.Domain + "/" + k.Experiment
}

// ParseKey splits "domain/experiment".
func ParseKey(path string) (Key, bool) {
	domain, experiment, ok := strings.Cut(strings.Trim(strings.TrimSpace(path), "/"), "/")
	if !ok || domain == "" || experiment == "" || strings.Contains(experiment, "/") {
		return Key{}, false
	}
	return Key{Domain: domain, Experiment: experiment}, true
}

func keyOf(m Module) Key {
	return Key{Domain: strings.TrimSpace(m.Domain()), Experiment: strings.TrimSpace(m.Name())}
}

// Registry holds the modules served by the transports. It is filled at
// startup and only read afterwards.
type Registry struct {
	mu      sync.RWMutex
	modules map[Key]Module
	tracer  trace.Tracer
}

// NewRegistry registers modules and panics on an invalid or duplicate one.
func NewRegistry(modules ...Module) *Registry {
	r := &Registry{
		modules: make(map[Key]Module, len(modules)),
		tracer:  otel.Tracer(),
	}
	for _, m := range modules {
		if err := r.Register(m); err != nil {
			panic(fmt.Sprintf("simulation: %v", err))
		}
	}
	return r
}

// Default returns a registry with every built-in module.
func Default() *Registry {
	return NewRegistry(
		genetics.Module{},
		acidbase.Module{},
		acidbase.TitrationModule{},
		projectile.Module{},
	)
}

// Register adds a module.
func (r *Registry) Register(m Module) error {
	if m == nil {
		return ErrModuleRequired
	}
	key := keyOf(m)
	if key.Domain == "" || key.Experiment == "" {
		return ErrModuleNameRequired
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.modules[key]; exists {
		return fmt.Errorf("%w: %s", ErrModuleAlreadyRegistered, key)
	}
	r.modules[key] = m
	return nil
}

// Lookup returns the module registered for domain and experiment.
func (r *Registry) Lookup(domain, experiment string) (Module, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.modules[Key{Domain: domain, Experiment: experiment}]
	return m, ok
}

// Modules returns the registered modules sorted by domain then name.
func (r *Registry) Modules() []Module {
	r.mu.RLock()
	out := make([]Module, 0, len(r.modules))
	for _, m := range r.modules {
		out = append(out, m)
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		a, b := keyOf(out[i]), keyOf(out[j])
		if a.Domain != b.Domain {
			return a.Domain < b.Domain
		}
		return a.Experiment < b.Experiment
	})
	return out
}

// Run dispatches params to the module at domain/experiment.
func (r *Registry) Run(ctx context.Context, domain, experiment string, params map[string]any) (any, error) {
	key := Key{Domain: domain, Experiment: experiment}
	ctx, span := r.tracer.Start(ctx, "simulation.Run", trace.WithAttributes(
		attribute.String("simulation.domain", domain),
		attribute.String("simulation.experiment", experiment),
	))
	defer span.End()

	m, ok := r.Lookup(domain, experiment)
	if !ok {
		err := apperrors.WithMetadata(apperrors.CodeUnknownExperiment,
			fmt.Sprintf("simulation %q is not registered", key),
			map[string]string{apperrors.MetaExperiment: key.String()})
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	if params == nil {
		params = map[string]any{}
	}
	result, err := m.Run(ctx, params)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		span.SetAttributes(attribute.String("simulation.error_code", string(apperrors.CodeOf(err))))
		if field := apperrors.Field(err); field != "" {
			span.SetAttributes(attribute.String("simulation.error_field", field))
		}
		return nil, err
	}
	return result, nil
}

// ModuleInfo describes a registered module for listings.
type ModuleInfo struct {
	Domain      string `json:"domain"`
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Path        string `json:"path"`
}

// Describe returns listing entries for every registered module.
func (r *Registry) Describe() []ModuleInfo {
	modules := r.Modules()
	out := make([]ModuleInfo, len(modules))
	for i, m := range modules {
		key := keyOf(m)
		out[i] = ModuleInfo{
			Domain:      key.Domain,
			Name:        key.Experiment,
			DisplayName: m.DisplayName(),
			Category:    m.Category(),
			Description: m.Description(),
			Path:        SimulationPath(key),
		}
	}
	return out
}

// SimulationPath is the HTTP path that starts the simulation at key.
func SimulationPath(key Key) string {
	return "/api/simulation/" + key.String() + "/start"
}
