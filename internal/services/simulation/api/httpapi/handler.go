// Package httpapi serves the simulation engine over HTTP JSON.
package httpapi

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	apperrors "github.com/Estagiarius/simulajuls/internal/platform/errors"
	"github.com/Estagiarius/simulajuls/internal/platform/logging"
	"github.com/Estagiarius/simulajuls/internal/simulation"
	"go.uber.org/zap"
)

// DefaultMaxBodyBytes bounds simulation request bodies.
const DefaultMaxBodyBytes = 1 << 20

// WelcomeMessage is returned by GET /.
const WelcomeMessage = "Bem-vindo ao Simulador de Experimentos Educativos API"

// Options configures the handler.
type Options struct {
	Logger         *zap.Logger
	AllowedOrigins []string
	MaxBodyBytes   int64
	// DefaultLocale applies when the request names no language.
	DefaultLocale string
}

type handler struct {
	registry     *simulation.Registry
	logger       *zap.Logger
	maxBodyBytes int64
}

// NewHandler returns the HTTP API for registry wrapped in the request
// middleware stack.
func NewHandler(registry *simulation.Registry, opts Options) http.Handler {
	if registry == nil {
		registry = simulation.Default()
	}
	h := &handler{
		registry:     registry,
		logger:       logging.OrNop(opts.Logger),
		maxBodyBytes: opts.MaxBodyBytes,
	}
	if h.maxBodyBytes <= 0 {
		h.maxBodyBytes = DefaultMaxBodyBytes
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", h.welcome)
	mux.HandleFunc("GET /api/experiments", h.listExperiments)
	mux.HandleFunc("GET /api/simulations", h.listSimulations)
	mux.HandleFunc("POST /api/simulation/{domain}/{experiment}/start", h.runSimulation)

	return Chain(mux,
		RequestID(),
		AccessLog(h.logger),
		Locale(opts.DefaultLocale),
		RecoverPanic(h.logger),
		CORS(opts.AllowedOrigins),
	)
}

func (h *handler) welcome(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, map[string]string{"message": WelcomeMessage})
}

func (h *handler) listExperiments(w http.ResponseWriter, r *http.Request) {
	catalog := h.registry.Catalog().Filter(r.URL.Query().Get("category"))
	h.respond(w, r, catalog)
}

func (h *handler) listSimulations(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, h.registry.Describe())
}

func (h *handler) runSimulation(w http.ResponseWriter, r *http.Request) {
	domain, experiment := r.PathValue("domain"), r.PathValue("experiment")

	params, err := decodeParams(http.MaxBytesReader(w, r.Body, h.maxBodyBytes))
	if err != nil {
		writeError(w, r, err)
		return
	}

	result, err := h.registry.Run(r.Context(), domain, experiment, params)
	if err != nil {
		if !apperrors.CodeOf(err).IsClientError() {
			h.logger.Error("simulation failed",
				zap.String("domain", domain),
				zap.String("experiment", experiment),
				zap.String("request_id", r.Header.Get(RequestIDHeader)),
				zap.Error(err),
			)
		}
		writeError(w, r, err)
		return
	}
	h.respond(w, r, result)
}

// decodeParams reads a JSON object body. Numbers stay json.Number so the
// simulations coerce them without float round-trips. An empty body is an
// empty parameter set.
func decodeParams(body io.Reader) (map[string]any, error) {
	raw, err := io.ReadAll(body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, invalidBody("request body too large", err)
		}
		return nil, invalidBody("read request body", err)
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return map[string]any{}, nil
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var params map[string]any
	if err := dec.Decode(&params); err != nil {
		return nil, invalidBody("decode request body", err)
	}
	if params == nil {
		return nil, invalidBody("request body is null", nil)
	}
	if dec.More() {
		return nil, invalidBody("trailing data after request body", nil)
	}
	return params, nil
}

func invalidBody(message string, cause error) error {
	return apperrors.Wrap(apperrors.CodeInvalidRequest, message, cause,
		map[string]string{apperrors.MetaRule: apperrors.RuleBody})
}
