package httpapi

import (
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Estagiarius/simulajuls/internal/simulation"
	"github.com/google/go-cmp/cmp"
	"go.uber.org/goleak"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newTestHandler(t *testing.T) http.Handler {
	t.Helper()
	return NewHandler(simulation.Default(), Options{AllowedOrigins: []string{"*"}})
}

func do(t *testing.T, h http.Handler, method, target, body string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(rr.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode %q: %v", rr.Body.String(), err)
	}
	return out
}

func TestWelcome(t *testing.T) {
	rr := do(t, newTestHandler(t), http.MethodGet, "/", "", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	got := decode[map[string]string](t, rr)
	if got["message"] != WelcomeMessage {
		t.Fatalf("message = %q", got["message"])
	}
	if rr.Header().Get(RequestIDHeader) == "" {
		t.Fatal("expected request id header")
	}
}

func TestListExperiments(t *testing.T) {
	h := newTestHandler(t)

	all := decode[[]simulation.Experiment](t, do(t, h, http.MethodGet, "/api/experiments", "", nil))
	if len(all) != 9 {
		t.Fatalf("experiments = %d, want 9", len(all))
	}

	bio := decode[[]simulation.Experiment](t, do(t, h, http.MethodGet, "/api/experiments?category=Biologia", "", nil))
	var names []string
	for _, exp := range bio {
		names = append(names, exp.Name)
	}
	if diff := cmp.Diff([]string{"Fotossíntese", "Ciclo Celular", "Genética Mendeliana"}, names); diff != "" {
		t.Fatalf("biology experiments mismatch (-want +got):\n%s", diff)
	}
	if bio[2].Simulation != "/api/simulation/biology/mendelian-genetics/start" {
		t.Fatalf("simulation link = %q", bio[2].Simulation)
	}
}

func TestListSimulations(t *testing.T) {
	rr := do(t, newTestHandler(t), http.MethodGet, "/api/simulations", "", nil)
	infos := decode[[]simulation.ModuleInfo](t, rr)
	if len(infos) != 4 {
		t.Fatalf("simulations = %d, want 4", len(infos))
	}
	if infos[0].Path != "/api/simulation/biology/mendelian-genetics/start" {
		t.Fatalf("first path = %q", infos[0].Path)
	}
}

func TestRunSimulationSuccess(t *testing.T) {
	h := newTestHandler(t)

	tests := []struct {
		name   string
		target string
		body   string
		check  func(t *testing.T, got map[string]any)
	}{
		{
			name:   "genetics",
			target: "/api/simulation/biology/mendelian-genetics/start",
			body:   `{"parent1_genotype":"Aa","parent2_genotype":"Aa","dominant_allele":"A","recessive_allele":"a"}`,
			check: func(t *testing.T, got map[string]any) {
				square, ok := got["punnett_square"].([]any)
				if !ok || len(square) != 2 {
					t.Fatalf("punnett_square = %v", got["punnett_square"])
				}
			},
		},
		{
			name:   "acid base",
			target: "/api/simulation/chemistry/acid-base/start",
			body:   `{"acid_concentration":0.1,"acid_volume":"50","base_concentration":0.1,"base_volume":50,"indicator_name":"Fenolftaleína"}`,
			check: func(t *testing.T, got map[string]any) {
				if got["final_ph"] != 7.0 || got["status"] != "Neutra" || got["indicator_color"] != "Incolor" {
					t.Fatalf("unexpected result: %v", got)
				}
			},
		},
		{
			name:   "projectile",
			target: "/api/simulation/physics/projectile-launch/start",
			body:   `{"initial_velocity":20,"launch_angle":45}`,
			check: func(t *testing.T, got map[string]any) {
				if r, _ := got["max_range"].(float64); r < 40.76 || r > 40.78 {
					t.Fatalf("max_range = %v", got["max_range"])
				}
			},
		},
		{
			name:   "titration",
			target: "/api/simulation/chemistry/acid-base-titration/start",
			body:   `{"acid_concentration":0.1,"acid_volume":50,"titrant_concentration":0.1,"final_titrant_volume_ml":100,"volume_increment_ml":10}`,
			check: func(t *testing.T, got map[string]any) {
				if curve, _ := got["titration_curve"].([]any); len(curve) != 11 {
					t.Fatalf("titration_curve = %v", got["titration_curve"])
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := do(t, h, http.MethodPost, tt.target, tt.body, nil)
			if rr.Code != http.StatusOK {
				t.Fatalf("status = %d, body %s", rr.Code, rr.Body.String())
			}
			tt.check(t, decode[map[string]any](t, rr))
		})
	}
}

func TestRunSimulationErrors(t *testing.T) {
	h := newTestHandler(t)

	tests := []struct {
		name    string
		target  string
		body    string
		headers map[string]string
		status  int
		detail  string
	}{
		{
			name:   "invalid genotype in pt-BR",
			target: "/api/simulation/biology/mendelian-genetics/start",
			body:   `{"parent1_genotype":"AX","parent2_genotype":"Aa","dominant_allele":"A","recessive_allele":"a"}`,
			status: http.StatusBadRequest,
			detail: "Genótipo 'AX' inválido: use apenas os alelos A, a.",
		},
		{
			name:    "zero volume in en-US",
			target:  "/api/simulation/chemistry/acid-base/start",
			body:    `{"acid_concentration":0.1,"acid_volume":0,"base_concentration":0.1,"base_volume":0}`,
			headers: map[string]string{"Accept-Language": "en-US,en;q=0.9"},
			status:  http.StatusBadRequest,
			detail:  "Total solution volume cannot be zero.",
		},
		{
			name:   "lang parameter",
			target: "/api/simulation/physics/projectile-launch/start?lang=en",
			body:   `{"initial_velocity":20,"launch_angle":120}`,
			status: http.StatusBadRequest,
			detail: "Parameter 'launch_angle' must be between 0 and 90 (got: 120).",
		},
		{
			name:   "unknown experiment",
			target: "/api/simulation/chemistry/electrolysis/start",
			body:   `{}`,
			status: http.StatusNotFound,
			detail: "Experimento 'chemistry/electrolysis' não encontrado.",
		},
		{
			name:   "array body",
			target: "/api/simulation/chemistry/acid-base/start",
			body:   `[1, 2]`,
			status: http.StatusBadRequest,
			detail: "O corpo da requisição deve ser um objeto JSON.",
		},
		{
			name:   "malformed body",
			target: "/api/simulation/chemistry/acid-base/start",
			body:   `{"acid_concentration":`,
			status: http.StatusBadRequest,
			detail: "O corpo da requisição deve ser um objeto JSON.",
		},
		{
			name:   "overflowing launch",
			target: "/api/simulation/physics/projectile-launch/start",
			body:   `{"initial_velocity":1e200,"launch_angle":45}`,
			status: http.StatusBadRequest,
			detail: "O parâmetro 'initial_velocity' leva a valores grandes demais para calcular.",
		},
		{
			name:    "overflowing mixture in en-US",
			target:  "/api/simulation/chemistry/acid-base/start",
			body:    `{"acid_concentration":1e308,"acid_volume":1000,"base_concentration":0,"base_volume":0}`,
			headers: map[string]string{"Accept-Language": "en-US"},
			status:  http.StatusBadRequest,
			detail:  "Parameter 'acid_concentration' leads to values too large to compute.",
		},
		{
			name:   "empty body reports missing field",
			target: "/api/simulation/physics/projectile-launch/start",
			status: http.StatusBadRequest,
			detail: "O parâmetro 'initial_velocity' é obrigatório.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := do(t, h, http.MethodPost, tt.target, tt.body, tt.headers)
			if rr.Code != tt.status {
				t.Fatalf("status = %d, want %d (body %s)", rr.Code, tt.status, rr.Body.String())
			}
			got := decode[map[string]string](t, rr)
			if got["detail"] != tt.detail {
				t.Fatalf("detail = %q, want %q", got["detail"], tt.detail)
			}
		})
	}
}

func TestRunSimulationBodyLimit(t *testing.T) {
	h := NewHandler(simulation.Default(), Options{MaxBodyBytes: 16})
	rr := do(t, h, http.MethodPost, "/api/simulation/physics/projectile-launch/start",
		`{"initial_velocity":20,"launch_angle":45}`, nil)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rr.Code)
	}
}

func TestMethodMismatch(t *testing.T) {
	rr := do(t, newTestHandler(t), http.MethodGet, "/api/simulation/physics/projectile-launch/start", "", nil)
	if rr.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want 405", rr.Code)
	}
}

func TestCORS(t *testing.T) {
	h := NewHandler(simulation.Default(), Options{AllowedOrigins: []string{"http://localhost:5173"}})

	rr := do(t, h, http.MethodOptions, "/api/experiments", "", map[string]string{
		"Origin":                        "http://localhost:5173",
		"Access-Control-Request-Method": "GET",
	})
	if rr.Code != http.StatusNoContent {
		t.Fatalf("preflight status = %d, want 204", rr.Code)
	}
	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:5173" {
		t.Fatalf("allow origin = %q", got)
	}

	rr = do(t, h, http.MethodGet, "/api/experiments", "", map[string]string{"Origin": "http://evil.example"})
	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Fatalf("unexpected allow origin %q", got)
	}
}

func TestRespondUnencodablePayload(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	h := &handler{logger: zap.New(core)}

	req := httptest.NewRequest(http.MethodGet, "/api/simulations", nil)
	req.Header.Set("Accept-Language", "en")
	rr := httptest.NewRecorder()
	h.respond(rr, req, map[string]float64{"max_range": math.Inf(1)})

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rr.Code)
	}
	if got := decode[map[string]string](t, rr)["detail"]; got != "An unexpected error occurred." {
		t.Fatalf("detail = %q", got)
	}
	if logs.FilterMessage("encode response").Len() != 1 {
		t.Fatalf("expected one encode log entry, got %v", logs.All())
	}
}

func TestRecoverPanicLogsAndReturnsGenericDetail(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	logger := zap.New(core)

	h := Chain(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}), RequestID(), RecoverPanic(logger))

	rr := do(t, h, http.MethodGet, "/", "", map[string]string{"Accept-Language": "en"})
	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rr.Code)
	}
	if got := decode[map[string]string](t, rr)["detail"]; got != "An unexpected error occurred." {
		t.Fatalf("detail = %q", got)
	}
	if logs.FilterMessage("panic recovered").Len() != 1 {
		t.Fatalf("expected one panic log entry, got %v", logs.All())
	}
}

func TestAccessLog(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	h := Chain(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}), RequestID(), AccessLog(zap.New(core)))

	do(t, h, http.MethodGet, "/tea", "", map[string]string{RequestIDHeader: "req-1"})
	entries := logs.FilterMessage("http request").All()
	if len(entries) != 1 {
		t.Fatalf("log entries = %d, want 1", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["status"] != int64(http.StatusTeapot) || fields["request_id"] != "req-1" || fields["path"] != "/tea" {
		t.Fatalf("unexpected fields: %v", fields)
	}
}

func TestChainAppliesMiddlewareInOrder(t *testing.T) {
	called := ""
	mw := func(tag string) Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called += tag
				next.ServeHTTP(w, r)
			})
		}
	}
	h := Chain(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		called += "h"
		w.WriteHeader(http.StatusNoContent)
	}), mw("1"), nil, mw("2"))

	do(t, h, http.MethodGet, "/", "", nil)
	if called != "12h" {
		t.Fatalf("call order = %q, want %q", called, "12h")
	}
}

func TestDefaultLocale(t *testing.T) {
	h := NewHandler(simulation.Default(), Options{DefaultLocale: "en-US"})
	target := "/api/simulation/chemistry/electrolysis/start"

	rr := do(t, h, http.MethodPost, target, `{}`, nil)
	if got := decode[map[string]string](t, rr)["detail"]; got != "Experiment 'chemistry/electrolysis' not found." {
		t.Fatalf("detail = %q", got)
	}
	if got := rr.Header().Get("Content-Language"); got != "en-US" {
		t.Fatalf("Content-Language = %q", got)
	}

	rr = do(t, h, http.MethodPost, target, `{}`, map[string]string{"Accept-Language": "pt-BR"})
	if got := decode[map[string]string](t, rr)["detail"]; got != "Experimento 'chemistry/electrolysis' não encontrado." {
		t.Fatalf("detail = %q", got)
	}
}

func TestResolveLocale(t *testing.T) {
	tests := []struct {
		name     string
		target   string
		accept   string
		fallback string
		want     string
	}{
		{"base", "/", "", "", "pt-BR"},
		{"fallback", "/", "", "en", "en-US"},
		{"accept language", "/", "en-US", "", "en-US"},
		{"query wins", "/?lang=pt", "en-US", "", "pt-BR"},
		{"unsupported", "/", "ja", "", "pt-BR"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.target, nil)
			if tt.accept != "" {
				req.Header.Set("Accept-Language", tt.accept)
			}
			if got := ResolveLocale(req, tt.fallback); got != tt.want {
				t.Fatalf("ResolveLocale = %q, want %q", got, tt.want)
			}
		})
	}
}
