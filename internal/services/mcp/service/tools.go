package service

import (
	"fmt"

	"github.com/Estagiarius/simulajuls/internal/services/mcp/domain"
	"github.com/Estagiarius/simulajuls/internal/services/simulation/runner"
	"github.com/Estagiarius/simulajuls/internal/simulation/acidbase"
	"github.com/Estagiarius/simulajuls/internal/simulation/genetics"
	"github.com/Estagiarius/simulajuls/internal/simulation/projectile"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type mcpRegistrationTarget interface {
	AddTool(*mcp.Tool, any) error
	AddResource(*mcp.Resource, mcp.ResourceHandler)
}

type mcpServerRegistrationAdapter struct {
	server *mcp.Server
}

func (r mcpServerRegistrationAdapter) AddTool(tool *mcp.Tool, handler any) error {
	return addMCPTool(r.server, tool, handler)
}

func (r mcpServerRegistrationAdapter) AddResource(resource *mcp.Resource, handler mcp.ResourceHandler) {
	r.server.AddResource(resource, handler)
}

type mcpToolRegistrar struct {
	matches func(any) bool
	add     func(*mcp.Server, *mcp.Tool, any)
}

func newMCPToolRegistrar[I any, O any]() mcpToolRegistrar {
	return mcpToolRegistrar{
		matches: func(handler any) bool {
			_, ok := handler.(mcp.ToolHandlerFor[I, O])
			return ok
		},
		add: func(server *mcp.Server, tool *mcp.Tool, handler any) {
			mcp.AddTool(server, tool, handler.(mcp.ToolHandlerFor[I, O]))
		},
	}
}

var mcpToolRegistrars = []mcpToolRegistrar{
	newMCPToolRegistrar[domain.MendelianCrossInput, genetics.Result](),
	newMCPToolRegistrar[domain.AcidBaseReactionInput, acidbase.Result](),
	newMCPToolRegistrar[domain.AcidBaseTitrationInput, acidbase.CurveResult](),
	newMCPToolRegistrar[domain.ProjectileLaunchInput, projectile.Result](),
	newMCPToolRegistrar[domain.ListExperimentsInput, runner.Listing](),
}

func addMCPTool(server *mcp.Server, tool *mcp.Tool, handler any) error {
	for _, registrar := range mcpToolRegistrars {
		if registrar.matches(handler) {
			registrar.add(server, tool, handler)
			return nil
		}
	}
	toolName := "<nil>"
	if tool != nil {
		toolName = tool.Name
	}
	return fmt.Errorf("unsupported MCP tool handler for %q: %T", toolName, handler)
}

func registerTool(registrar mcpRegistrationTarget, tool *mcp.Tool, handler any) error {
	if err := registrar.AddTool(tool, handler); err != nil {
		return fmt.Errorf("register tool %q: %w", tool.Name, err)
	}
	return nil
}

func registerSimulationTools(registrar mcpRegistrationTarget, sim runner.Simulator, defaultLocale string) error {
	registrations := []struct {
		tool    *mcp.Tool
		handler any
	}{
		{tool: domain.MendelianCrossTool(), handler: domain.MendelianCrossHandler(sim, defaultLocale)},
		{tool: domain.AcidBaseReactionTool(), handler: domain.AcidBaseReactionHandler(sim, defaultLocale)},
		{tool: domain.AcidBaseTitrationTool(), handler: domain.AcidBaseTitrationHandler(sim, defaultLocale)},
		{tool: domain.ProjectileLaunchTool(), handler: domain.ProjectileLaunchHandler(sim, defaultLocale)},
		{tool: domain.ListExperimentsTool(), handler: domain.ListExperimentsHandler(sim)},
	}
	for _, registration := range registrations {
		if err := registerTool(registrar, registration.tool, registration.handler); err != nil {
			return err
		}
	}
	return nil
}

func registerCatalogResource(registrar mcpRegistrationTarget, sim runner.Simulator) {
	registrar.AddResource(domain.CatalogResource(), domain.CatalogResourceHandler(sim))
}
