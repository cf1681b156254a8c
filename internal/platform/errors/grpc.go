package errors

import (
	"github.com/Estagiarius/simulajuls/internal/platform/errors/i18n"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// DefaultLocale is the default locale for error messages.
const DefaultLocale = i18n.BaseLocale

// genericMessageKey renders the user-facing message for unexpected failures.
const genericMessageKey = "INTERNAL"

// Localize renders the user-facing message for err in the requested locale.
// Errors that are not domain errors render a generic message so internals
// never reach clients. The returned locale is the one actually used.
func Localize(err error, locale string) (message string, resolvedLocale string) {
	catalog := i18n.GetCatalog(locale)
	appErr, ok := As(err)
	if !ok || appErr.Code == CodeUnknown {
		return catalog.Format(genericMessageKey, nil), catalog.Locale()
	}
	return catalog.Format(messageKey(catalog, appErr), appErr.Metadata), catalog.Locale()
}

// messageKey prefers a rule-specific template ("CODE.rule") when the error
// metadata names a rule the catalog knows.
func messageKey(catalog *i18n.Catalog, e *Error) string {
	if rule := e.Rule(); rule != "" {
		key := string(e.Code) + "." + rule
		if catalog.Has(key) {
			return key
		}
	}
	return string(e.Code)
}

// HandleError converts domain errors to gRPC status for client responses.
// It formats the user-facing message using the i18n catalog for the given locale,
// defaulting to pt-BR if the locale is empty.
func HandleError(err error, locale string) error {
	if err == nil {
		return nil
	}

	if appErr, ok := As(err); ok && appErr.Code != CodeUnknown {
		userMsg, resolved := Localize(appErr, locale)
		return appErr.ToGRPCStatus(resolved, userMsg)
	}

	// Unknown error - return internal with generic message
	return status.Error(codes.Internal, "an unexpected error occurred")
}

// GetMetadata extracts metadata from an error if present.
// Returns nil if the error is not a domain error or has no metadata.
func GetMetadata(err error) map[string]string {
	if e, ok := As(err); ok {
		return e.Metadata
	}
	return nil
}

// ToGRPCStatus builds the status returned to gRPC callers. The status
// message keeps the log text; ErrorInfo carries code and metadata so the
// caller can rebuild the error, and LocalizedMessage holds userMessage.
func (e *Error) ToGRPCStatus(locale string, userMessage string) error {
	st := status.New(e.Code.GRPCCode(), e.Message)
	detailed, err := st.WithDetails(
		&errdetails.ErrorInfo{Reason: string(e.Code), Domain: Domain, Metadata: e.Metadata},
		&errdetails.LocalizedMessage{Locale: locale, Message: userMessage},
	)
	if err != nil {
		return st.Err()
	}
	return detailed.Err()
}

// FromGRPCStatus rebuilds the domain error carried by a status produced by
// HandleError. ok is false when err is not a status or has no ErrorInfo from
// this domain.
func FromGRPCStatus(err error) (*Error, bool) {
	st, isStatus := status.FromError(err)
	if !isStatus || st == nil {
		return nil, false
	}
	for _, detail := range st.Details() {
		info, isInfo := detail.(*errdetails.ErrorInfo)
		if !isInfo || info.GetDomain() != Domain {
			continue
		}
		return &Error{
			Code:     Code(info.GetReason()),
			Message:  st.Message(),
			Metadata: info.GetMetadata(),
			Cause:    err,
		}, true
	}
	return nil, false
}

// FromError returns the domain error in err's chain, or the one carried by a
// gRPC status when err came from a remote call.
func FromError(err error) (*Error, bool) {
	if e, ok := As(err); ok {
		return e, true
	}
	return FromGRPCStatus(err)
}
