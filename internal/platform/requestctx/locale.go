// Package requestctx carries request-scoped values between transport layers
// and the code they call.
package requestctx

import "context"

type localeContextKey struct{}

// WithLocale stores the resolved message locale in context.
func WithLocale(ctx context.Context, locale string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, localeContextKey{}, locale)
}

// LocaleFromContext returns the locale stored by WithLocale. ok is false when
// none was stored.
func LocaleFromContext(ctx context.Context) (locale string, ok bool) {
	if ctx == nil {
		return "", false
	}
	locale, ok = ctx.Value(localeContextKey{}).(string)
	return locale, ok
}
