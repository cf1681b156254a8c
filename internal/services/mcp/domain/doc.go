// Package domain exposes the simulation engine as MCP tools.
//
// Each tool has a typed input, a typed output and a handler that runs the
// matching experiment through a runner.Simulator. The simulator is either the
// in-process registry or a remote simulation service over gRPC, so the same
// handlers serve both deployments.
package domain
