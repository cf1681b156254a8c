// Package runner runs simulations either in process or against a remote
// simulation service, behind one interface shared by the MCP tools and the
// command-line client.
package runner

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Estagiarius/simulajuls/internal/services/simulation/api/grpcapi"
	"github.com/Estagiarius/simulajuls/internal/simulation"
)

// Listing is the experiment catalog plus the runnable simulations.
type Listing struct {
	Experiments simulation.Catalog      `json:"experiments" jsonschema:"experiments in the public catalog"`
	Simulations []simulation.ModuleInfo `json:"simulations" jsonschema:"simulations that can be started"`
}

// Simulator runs experiments.
type Simulator interface {
	Run(ctx context.Context, domain, experiment string, params map[string]any, locale string) (any, error)
	ListExperiments(ctx context.Context, category string) (Listing, error)
}

// Local runs experiments in process.
type Local struct {
	Registry *simulation.Registry
}

// Run dispatches to the registry. locale is unused; errors keep their domain
// codes and are localized by the caller.
func (s Local) Run(ctx context.Context, domain, experiment string, params map[string]any, _ string) (any, error) {
	return s.Registry.Run(ctx, domain, experiment, params)
}

// ListExperiments returns the registry catalog filtered by category.
func (s Local) ListExperiments(_ context.Context, category string) (Listing, error) {
	return Listing{
		Experiments: s.Registry.Catalog().Filter(category),
		Simulations: s.Registry.Describe(),
	}, nil
}

// Remote runs experiments on a simulation service over gRPC.
type Remote struct {
	Client *grpcapi.Client
	// Timeout bounds each call. Zero leaves the caller's context in charge.
	Timeout time.Duration
}

// Run calls the remote service and returns the decoded result object.
func (s Remote) Run(ctx context.Context, domain, experiment string, params map[string]any, locale string) (any, error) {
	ctx, cancel := s.callContext(ctx)
	defer cancel()
	return s.Client.Run(ctx, domain, experiment, params, locale)
}

// ListExperiments calls the remote catalog.
func (s Remote) ListExperiments(ctx context.Context, category string) (Listing, error) {
	ctx, cancel := s.callContext(ctx)
	defer cancel()
	raw, err := s.Client.ListExperiments(ctx, category)
	if err != nil {
		return Listing{}, err
	}
	var listing Listing
	if err := Decode(raw, &listing); err != nil {
		return Listing{}, fmt.Errorf("decode experiment listing: %w", err)
	}
	if listing.Experiments == nil {
		listing.Experiments = simulation.Catalog{}
	}
	if listing.Simulations == nil {
		listing.Simulations = []simulation.ModuleInfo{}
	}
	return listing, nil
}

func (s Remote) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.Timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.Timeout)
}

// Decode copies src into dst through its JSON encoding, so results from
// either simulator land in the same shape.
func Decode(src, dst any) error {
	data, err := json.Marshal(src)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, dst)
}
