package goAuthClient

import "context"

type localeContextKey struct{}
type currencyContextKey struct{}

// WithLocale attaches a locale override to ctx. It takes precedence over
// the configured PreferenceStore for the requests dispatched under ctx.
func WithLocale(ctx context.Context, locale string) context.Context {
	return context.WithValue(ctx, localeContextKey{}, locale)
}

// WithCurrency attaches a currency override to ctx. It takes precedence
// over the configured PreferenceStore for the requests dispatched under ctx.
func WithCurrency(ctx context.Context, currency string) context.Context {
	return context.WithValue(ctx, currencyContextKey{}, currency)
}

func localeFromContext(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}

	locale, _ := ctx.Value(localeContextKey{}).(string)
	if locale == "" {
		return "", false
	}

	return locale, true
}

func currencyFromContext(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}

	currency, _ := ctx.Value(currencyContextKey{}).(string)
	if currency == "" {
		return "", false
	}

	return currency, true
}
