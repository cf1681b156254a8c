package grpcapi

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	apperrors "github.com/Estagiarius/simulajuls/internal/platform/errors"
	"github.com/Estagiarius/simulajuls/internal/platform/errors/i18n"
	"github.com/Estagiarius/simulajuls/internal/platform/logging"
	"github.com/Estagiarius/simulajuls/internal/simulation"
	"go.uber.org/zap"
	"google.golang.org/grpc/metadata"
	"google.golang.org/protobuf/types/known/structpb"
)

// Request and response field names.
const (
	FieldDomain      = "domain"
	FieldExperiment  = "experiment"
	FieldParameters  = "parameters"
	FieldLocale      = "locale"
	FieldCategory    = "category"
	FieldExperiments = "experiments"
	FieldSimulations = "simulations"
)

// Options configures the service.
type Options struct {
	Logger *zap.Logger
	// DefaultLocale applies when a call names no language.
	DefaultLocale string
}

// Service implements SimulationServer over a registry.
type Service struct {
	registry      *simulation.Registry
	logger        *zap.Logger
	defaultLocale string
}

// NewService creates the gRPC simulation service.
func NewService(registry *simulation.Registry, opts Options) *Service {
	if registry == nil {
		registry = simulation.Default()
	}
	return &Service{
		registry:      registry,
		logger:        logging.OrNop(opts.Logger),
		defaultLocale: i18n.GetCatalog(opts.DefaultLocale).Locale(),
	}
}

// Run executes the requested simulation and returns its result object.
func (s *Service) Run(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	fields := in.GetFields()
	locale := s.requestLocale(ctx, fields[FieldLocale].GetStringValue())

	domain := strings.TrimSpace(fields[FieldDomain].GetStringValue())
	if domain == "" {
		return nil, apperrors.HandleError(apperrors.InvalidParameter(FieldDomain, apperrors.RuleMissing, nil), locale)
	}
	experiment := strings.TrimSpace(fields[FieldExperiment].GetStringValue())
	if experiment == "" {
		return nil, apperrors.HandleError(apperrors.InvalidParameter(FieldExperiment, apperrors.RuleMissing, nil), locale)
	}

	var params map[string]any
	if raw, ok := fields[FieldParameters]; ok {
		structValue := raw.GetStructValue()
		if structValue == nil {
			return nil, apperrors.HandleError(apperrors.InvalidParameter(FieldParameters, apperrors.RuleObject, nil), locale)
		}
		params = structValue.AsMap()
	}

	result, err := s.registry.Run(ctx, domain, experiment, params)
	if err != nil {
		if !apperrors.CodeOf(err).IsClientError() {
			s.logger.Error("simulation failed",
				zap.String("domain", domain),
				zap.String("experiment", experiment),
				zap.Error(err),
			)
		}
		return nil, apperrors.HandleError(err, locale)
	}

	out, err := toStruct(result)
	if err != nil {
		s.logger.Error("encode simulation result", zap.Error(err))
		return nil, apperrors.HandleError(err, locale)
	}
	return out, nil
}

// ListExperiments returns {experiments, simulations}.
func (s *Service) ListExperiments(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	category := in.GetFields()[FieldCategory].GetStringValue()
	out, err := toStruct(map[string]any{
		FieldExperiments: s.registry.Catalog().Filter(category),
		FieldSimulations: s.registry.Describe(),
	})
	if err != nil {
		return nil, apperrors.HandleError(err, s.requestLocale(ctx, ""))
	}
	return out, nil
}

// requestLocale prefers the explicit locale field, then the accept-language
// metadata of the call, then the service default.
func (s *Service) requestLocale(ctx context.Context, explicit string) string {
	if explicit = strings.TrimSpace(explicit); explicit != "" {
		return i18n.GetCatalog(explicit).Locale()
	}
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if values := md.Get("accept-language"); len(values) > 0 {
			return i18n.MatchAcceptLanguage(strings.Join(values, ","))
		}
	}
	return s.defaultLocale
}

// toStruct converts a JSON-serializable value to a Struct through its JSON
// encoding, so field names match the HTTP API.
func toStruct(v any) (*structpb.Struct, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal result: %w", err)
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("result is not an object: %w", err)
	}
	return structpb.NewStruct(m)
}
