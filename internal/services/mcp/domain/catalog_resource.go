package domain

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Estagiarius/simulajuls/internal/services/simulation/runner"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// CatalogResource defines the readable experiment catalog.
func CatalogResource() *mcp.Resource {
	return &mcp.Resource{
		Name:        "experiment_catalog",
		Title:       "Experiment Catalog",
		Description: "Every catalog experiment and the simulations that can be run",
		MIMEType:    "application/json",
		URI:         "simulajuls://experiments",
	}
}

// CatalogResourceHandler renders the unfiltered listing from sim.
func CatalogResourceHandler(sim runner.Simulator) mcp.ResourceHandler {
	return func(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		if sim == nil {
			return nil, fmt.Errorf("simulator is not configured")
		}

		uri := CatalogResource().URI
		if req != nil && req.Params != nil && req.Params.URI != "" {
			uri = req.Params.URI
		}

		listing, err := sim.ListExperiments(ctx, "")
		if err != nil {
			return nil, fmt.Errorf("list experiments: %w", err)
		}
		data, err := json.MarshalIndent(listing, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshal experiment catalog: %w", err)
		}

		return &mcp.ReadResourceResult{
			Contents: []*mcp.ResourceContents{
				{
					URI:      uri,
					MIMEType: "application/json",
					Text:     string(data),
				},
			},
		}, nil
	}
}
