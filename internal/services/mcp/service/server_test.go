package service

import (
	"context"
	"net"
	"net/http"
	"sort"
	"testing"
	"time"

	"github.com/Estagiarius/simulajuls/internal/services/simulation/api/grpcapi"
	"github.com/Estagiarius/simulajuls/internal/simulation"
	"github.com/google/go-cmp/cmp"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// connect serves s over in-memory transports and returns a client session.
func connect(t *testing.T, s *Server) *mcp.ClientSession {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	serverTransport, clientTransport := mcp.NewInMemoryTransports()

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- s.serveWithTransport(ctx, serverTransport)
	}()

	client := mcp.NewClient(&mcp.Implementation{Name: "client", Version: "v0.0.1"}, nil)
	connectCtx, connectCancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer connectCancel()
	session, err := client.Connect(connectCtx, clientTransport, nil)
	if err != nil {
		cancel()
		t.Fatalf("connect client: %v", err)
	}

	t.Cleanup(func() {
		_ = session.Close()
		cancel()
		select {
		case err := <-serveErr:
			if err != nil {
				t.Errorf("serve returned error: %v", err)
			}
		case <-time.After(2 * time.Second):
			t.Error("serve did not stop")
		}
	})
	return session
}

func newLocalServer(t *testing.T, locale string) *Server {
	t.Helper()
	s, err := New(context.Background(), Config{DefaultLocale: locale})
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	return s
}

func TestListTools(t *testing.T) {
	session := connect(t, newLocalServer(t, ""))

	res, err := session.ListTools(context.Background(), &mcp.ListToolsParams{})
	if err != nil {
		t.Fatalf("list tools: %v", err)
	}
	var names []string
	for _, tool := range res.Tools {
		names = append(names, tool.Name)
		if tool.OutputSchema == nil {
			t.Errorf("tool %q has no output schema", tool.Name)
		}
	}
	sort.Strings(names)
	want := []string{"acid_base_reaction", "acid_base_titration", "list_experiments", "mendelian_cross", "projectile_launch"}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Fatalf("tools mismatch (-want +got):\n%s", diff)
	}
}

func TestCallMendelianCross(t *testing.T) {
	session := connect(t, newLocalServer(t, ""))

	res, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name: "mendelian_cross",
		Arguments: map[string]any{
			"parent1_genotype": "Aa",
			"parent2_genotype": "aa",
		},
	})
	if err != nil {
		t.Fatalf("call tool: %v", err)
	}
	if res.IsError {
		t.Fatalf("unexpected tool error: %v", res.Content)
	}
	out, ok := res.StructuredContent.(map[string]any)
	if !ok {
		t.Fatalf("structured content = %T, want object", res.StructuredContent)
	}
	genotypes, _ := out["offspring_genotypes"].([]any)
	if len(genotypes) != 2 {
		t.Fatalf("offspring genotypes = %v, want 2 entries", out["offspring_genotypes"])
	}
}

func TestCallToolErrorIsLocalized(t *testing.T) {
	tests := []struct {
		name   string
		locale string
		args   map[string]any
		want   string
	}{
		{
			name:   "server default",
			locale: "en-US",
			args:   map[string]any{"initial_velocity": 10, "launch_angle": 95},
			want:   "Parameter 'launch_angle' must be between 0 and 90 (got: 95).",
		},
		{
			name:   "call locale wins",
			locale: "en-US",
			args:   map[string]any{"initial_velocity": -1, "launch_angle": 30, "locale": "pt-BR"},
			want:   "O parâmetro 'initial_velocity' deve ser maior ou igual a 0 (recebido: -1).",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			session := connect(t, newLocalServer(t, tt.locale))
			res, err := session.CallTool(context.Background(), &mcp.CallToolParams{
				Name:      "projectile_launch",
				Arguments: tt.args,
			})
			if err != nil {
				t.Fatalf("call tool: %v", err)
			}
			if !res.IsError {
				t.Fatal("expected tool error")
			}
			text, ok := res.Content[0].(*mcp.TextContent)
			if !ok {
				t.Fatalf("content = %T, want text", res.Content[0])
			}
			if text.Text != tt.want {
				t.Fatalf("message = %q, want %q", text.Text, tt.want)
			}
		})
	}
}

func TestReadCatalogResource(t *testing.T) {
	session := connect(t, newLocalServer(t, ""))

	res, err := session.ReadResource(context.Background(), &mcp.ReadResourceParams{URI: "simulajuls://experiments"})
	if err != nil {
		t.Fatalf("read resource: %v", err)
	}
	if len(res.Contents) != 1 || res.Contents[0].MIMEType != "application/json" {
		t.Fatalf("unexpected contents: %+v", res.Contents)
	}
}

func TestRemoteSimulator(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	grpcServer, healthServer := grpcapi.NewServer(simulation.Default(), grpcapi.Options{})
	go func() {
		_ = grpcServer.Serve(listener)
	}()
	defer func() {
		healthServer.Shutdown()
		grpcServer.Stop()
	}()

	s, err := New(context.Background(), Config{GRPCAddr: listener.Addr().String()})
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	session := connect(t, s)

	res, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name: "acid_base_reaction",
		Arguments: map[string]any{
			"acid_concentration": 0.1,
			"acid_volume":        50,
			"base_concentration": 0.1,
			"base_volume":        50,
		},
	})
	if err != nil {
		t.Fatalf("call tool: %v", err)
	}
	if res.IsError {
		t.Fatalf("unexpected tool error: %v", res.Content)
	}
	out := res.StructuredContent.(map[string]any)
	if out["status"] != "Neutra" {
		t.Fatalf("status = %v, want Neutra", out["status"])
	}
}

func TestNewFailsWhenRemoteIsDown(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	addr := listener.Addr().String()
	_ = listener.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()
	if _, err := New(ctx, Config{GRPCAddr: addr}); err == nil {
		t.Fatal("expected error for unreachable simulation server")
	}
}

func TestServeStreamableHTTP(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	s := newLocalServer(t, "")

	ctx, cancel := context.WithCancel(context.Background())
	serveErr := make(chan error, 1)
	go func() {
		serveErr <- s.ServeStreamableHTTP(ctx, listener)
	}()

	httpClient := &http.Client{Transport: &http.Transport{}}
	client := mcp.NewClient(&mcp.Implementation{Name: "client", Version: "v0.0.1"}, nil)
	session, err := client.Connect(context.Background(), &mcp.StreamableClientTransport{
		Endpoint:   "http://" + listener.Addr().String(),
		HTTPClient: httpClient,
	}, nil)
	if err != nil {
		cancel()
		t.Fatalf("connect client: %v", err)
	}

	res, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      "list_experiments",
		Arguments: map[string]any{"category": "Física"},
	})
	if err != nil {
		t.Fatalf("call tool: %v", err)
	}
	out := res.StructuredContent.(map[string]any)
	if experiments, _ := out["experiments"].([]any); len(experiments) != 3 {
		t.Fatalf("experiments = %v, want 3 entries", out["experiments"])
	}

	_ = session.Close()
	httpClient.CloseIdleConnections()
	cancel()
	select {
	case err := <-serveErr:
		if err != nil {
			t.Fatalf("serve returned error: %v", err)
		}
	case <-time.After(10 * time.Second):
		t.Fatal("serve did not stop")
	}
}

func TestRunRejectsUnknownTransport(t *testing.T) {
	if err := Run(context.Background(), Config{Transport: "carrier-pigeon"}); err == nil {
		t.Fatal("expected error")
	}
}
