package httpapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strings"

	apperrors "github.com/Estagiarius/simulajuls/internal/platform/errors"
	"github.com/Estagiarius/simulajuls/internal/platform/errors/i18n"
	"github.com/Estagiarius/simulajuls/internal/platform/requestctx"
	"go.uber.org/zap"
)

// LangParam is the query parameter that overrides Accept-Language.
const LangParam = "lang"

// errorBody is the JSON shape of every error response.
type errorBody struct {
	Detail string `json:"detail"`
}

// ResolveLocale picks the error message locale for r: the lang query
// parameter first, then Accept-Language, then fallback. An empty fallback
// selects the base locale.
func ResolveLocale(r *http.Request, fallback string) string {
	if r != nil {
		if lang := strings.TrimSpace(r.URL.Query().Get(LangParam)); lang != "" {
			return i18n.GetCatalog(lang).Locale()
		}
		if accept := strings.TrimSpace(r.Header.Get("Accept-Language")); accept != "" {
			return i18n.MatchAcceptLanguage(accept)
		}
	}
	return i18n.GetCatalog(fallback).Locale()
}

// Locale resolves the request locale once and stores it in the request
// context for error rendering.
func Locale(fallback string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := requestctx.WithLocale(r.Context(), ResolveLocale(r, fallback))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// LocaleFrom returns the locale stored by Locale, resolving it from r when
// the middleware did not run.
func LocaleFrom(r *http.Request) string {
	if locale, ok := requestctx.LocaleFromContext(r.Context()); ok {
		return locale
	}
	return ResolveLocale(r, "")
}

// StatusFor maps err to an HTTP status. Errors outside the domain taxonomy
// are internal failures.
func StatusFor(err error) int {
	if e, ok := apperrors.As(err); ok {
		return e.Code.HTTPStatus()
	}
	return http.StatusInternalServerError
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	message, locale := apperrors.Localize(err, LocaleFrom(r))
	w.Header().Set("Content-Language", locale)
	_ = writeJSON(w, StatusFor(err), errorBody{Detail: message})
}

// writeJSON encodes payload before touching w, so an encoding failure leaves
// the response unwritten and is returned. Write errors mean the client went
// away and are dropped.
func writeJSON(w http.ResponseWriter, status int, payload any) error {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(payload); err != nil {
		return err
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
	return nil
}

// respond writes a 200 with payload, or a localized 500 when payload cannot
// be encoded.
func (h *handler) respond(w http.ResponseWriter, r *http.Request, payload any) {
	err := writeJSON(w, http.StatusOK, payload)
	if err == nil {
		return
	}
	h.logger.Error("encode response",
		zap.String("path", r.URL.Path),
		zap.String("request_id", r.Header.Get(RequestIDHeader)),
		zap.Error(err),
	)
	writeError(w, r, apperrors.Wrap(apperrors.CodeUnknown, "encode response", err, nil))
}
