// Package timeouts defines shared timeout constants used by the transports.
package timeouts

import "time"

// GRPCDial caps the wait time when the CLI dials a remote simulation server.
const GRPCDial = 2 * time.Second

// Request caps a single simulation call made through the gRPC client.
const Request = 5 * time.Second

// ReadHeader limits how long the HTTP server waits for request headers.
const ReadHeader = 5 * time.Second

// Shutdown limits how long servers wait for in-flight requests during
// graceful shutdown.
const Shutdown = 5 * time.Second
