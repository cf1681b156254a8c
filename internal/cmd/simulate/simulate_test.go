package simulate

import (
	"bytes"
	"context"
	"encoding/json"
	"net"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Estagiarius/simulajuls/internal/services/simulation/api/grpcapi"
	"github.com/Estagiarius/simulajuls/internal/services/simulation/runner"
	"github.com/Estagiarius/simulajuls/internal/simulation"
	"github.com/Estagiarius/simulajuls/internal/simulation/acidbase"
	"github.com/Estagiarius/simulajuls/internal/simulation/genetics"
	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"
)

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	err := Execute(context.Background(), args, &stdout, &stderr)
	return stdout.String(), stderr.String(), err
}

func startServer(t *testing.T) string {
	t.Helper()
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	server, healthServer := grpcapi.NewServer(simulation.Default(), grpcapi.Options{})
	go func() {
		_ = server.Serve(lis)
	}()
	t.Cleanup(func() {
		healthServer.Shutdown()
		server.Stop()
	})
	return lis.Addr().String()
}

var monohybridArgs = []string{
	"run", "biology/mendelian-genetics",
	"--set", "parent1_genotype=Aa",
	"-s", "parent2_genotype=Aa",
}

func TestRunMendelianCross(t *testing.T) {
	stdout, _, err := execute(t, monohybridArgs...)
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	var result genetics.Result
	if err := json.Unmarshal([]byte(stdout), &result); err != nil {
		t.Fatalf("decode output: %v\n%s", err, stdout)
	}
	if len(result.OffspringGenotypes) != 3 {
		t.Fatalf("genotypes = %+v", result.OffspringGenotypes)
	}
	if got := result.OffspringGenotypes[0]; got.Genotype != "Aa" || got.Count != 2 {
		t.Fatalf("most frequent genotype = %+v, want Aa x2", got)
	}
	if got := result.OffspringPhenotypes[0].Percentage; got != 75 {
		t.Fatalf("dominant phenotype = %v%%, want 75%%", got)
	}
}

func TestRunFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mix.yaml")
	content := "acid_concentration: 0.1\nacid_volume: 50\nbase_concentration: 0.1\nbase_volume: 50\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write params: %v", err)
	}

	stdout, _, err := execute(t, "run", "chemistry/acid-base", "-f", path, "--set", "indicator_name=Fenolftaleína")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	var result acidbase.Result
	if err := json.Unmarshal([]byte(stdout), &result); err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if result.FinalPH != 7 || result.Status != acidbase.StatusNeutral {
		t.Fatalf("pH %v status %q, want neutral 7", result.FinalPH, result.Status)
	}
	if result.ParametersUsed.IndicatorName != "Fenolftaleína" {
		t.Fatalf("indicator = %q", result.ParametersUsed.IndicatorName)
	}
}

func TestRunYAMLOutputWithNestedParameter(t *testing.T) {
	stdout, _, err := execute(t, "run", "physics/projectile-launch",
		"--set", "initial_velocity=20",
		"--set", "launch_angle=45",
		"--set", "output_units.range_unit=km",
		"-o", "yaml",
	)
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	var out map[string]any
	if err := yaml.Unmarshal([]byte(stdout), &out); err != nil {
		t.Fatalf("decode yaml: %v\n%s", err, stdout)
	}
	if out["range_unit"] != "km" {
		t.Fatalf("range_unit = %v, want km", out["range_unit"])
	}
	if _, ok := out["trajectory"].([]any); !ok {
		t.Fatalf("trajectory missing from output:\n%s", stdout)
	}
}

func TestRunErrorsAreLocalized(t *testing.T) {
	tests := []struct {
		locale string
		want   string
	}{
		{"en-US", "Invalid genotype 'AAA'"},
		{"pt-BR", "Genótipo 'AAA' inválido"},
	}
	for _, tt := range tests {
		t.Run(tt.locale, func(t *testing.T) {
			_, stderr, err := execute(t, "run", "biology/mendelian-genetics",
				"--set", "parent1_genotype=AAA",
				"--set", "parent2_genotype=Aa",
				"--locale", tt.locale,
			)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("error = %q, want it to contain %q", err, tt.want)
			}
			if !strings.Contains(stderr, tt.want) {
				t.Fatalf("stderr = %q", stderr)
			}
		})
	}
}

func TestRunRejectsBadArguments(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"bare domain", []string{"run", "biology"}, "want <domain>/<experiment>"},
		{"missing value", []string{"run", "biology/mendelian-genetics", "--set", "parent1_genotype"}, "want key=value"},
		{"unknown output", []string{"run", "biology/mendelian-genetics", "-o", "xml"}, `output format "xml"`},
		{"missing file", []string{"run", "biology/mendelian-genetics", "-f", "/nonexistent/params.yaml"}, "read /nonexistent/params.yaml"},
		{"no experiment", []string{"run"}, "accepts 1 arg"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := execute(t, tt.args...)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("error = %v, want it to contain %q", err, tt.want)
			}
		})
	}
}

func TestRunUnknownExperiment(t *testing.T) {
	_, _, err := execute(t, "run", "biology/cloning", "--locale", "en-US")
	if err == nil || !strings.Contains(err.Error(), "Experiment 'biology/cloning' not found") {
		t.Fatalf("error = %v", err)
	}
}

func TestList(t *testing.T) {
	stdout, _, err := execute(t, "list", "--category", "Química")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	var listing runner.Listing
	if err := json.Unmarshal([]byte(stdout), &listing); err != nil {
		t.Fatalf("decode listing: %v", err)
	}
	if len(listing.Experiments) != 3 {
		t.Fatalf("experiments = %+v, want the 3 chemistry entries", listing.Experiments)
	}
	if len(listing.Simulations) != len(simulation.Default().Describe()) {
		t.Fatalf("simulations = %+v", listing.Simulations)
	}
}

func TestRemoteMatchesLocal(t *testing.T) {
	addr := startServer(t)

	localOut, _, err := execute(t, monohybridArgs...)
	if err != nil {
		t.Fatalf("local run: %v", err)
	}
	remoteOut, _, err := execute(t, append(monohybridArgs, "--grpc-addr", addr)...)
	if err != nil {
		t.Fatalf("remote run: %v", err)
	}

	var local, remote genetics.Result
	if err := json.Unmarshal([]byte(localOut), &local); err != nil {
		t.Fatalf("decode local: %v", err)
	}
	if err := json.Unmarshal([]byte(remoteOut), &remote); err != nil {
		t.Fatalf("decode remote: %v", err)
	}
	if diff := cmp.Diff(local, remote); diff != "" {
		t.Fatalf("remote result differs (-local +remote):\n%s", diff)
	}

	_, _, err = execute(t, "run", "physics/projectile-launch",
		"--set", "initial_velocity=10", "--set", "launch_angle=120",
		"--grpc-addr", addr, "-l", "en-US")
	if err == nil || !strings.Contains(err.Error(), "must be between 0 and 90") {
		t.Fatalf("remote error = %v", err)
	}
}

func TestRemoteUnavailable(t *testing.T) {
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	addr := lis.Addr().String()
	_ = lis.Close()

	_, _, err = execute(t, "list", "--grpc-addr", addr)
	if err == nil || !strings.Contains(err.Error(), "connect to simulation server") {
		t.Fatalf("error = %v", err)
	}
}

func TestVersion(t *testing.T) {
	stdout, _, err := execute(t, "version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if stdout != "simulate dev\n" {
		t.Fatalf("stdout = %q", stdout)
	}
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("SIMULAJULS_SIMULATE_OUTPUT", "yaml")
	t.Setenv("SIMULAJULS_DEFAULT_LOCALE", "en-US")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	want := Config{Locale: "en-US", Output: "yaml", LogLevel: "warn"}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
}
