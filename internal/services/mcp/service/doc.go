// Package service wires MCP transports to the simulation tools.
//
// It runs the MCP server over stdio or streamable HTTP and chooses the
// simulator behind the tools: the in-process registry, or a remote
// simulation service when a gRPC address is configured.
package service
