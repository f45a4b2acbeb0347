package middleware

import (
	"context"
	"net/http"

	"github.com/seojoohe-netizen/ai-survey/internal/utils"
)

type ctxKey int

const localeKey ctxKey = 1

// Locale resolves the request locale from the lang query param or the
// Accept-Language header and stores it in the request context.
func Locale(supported []string, def string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			locale := utils.DetermineLocale(r.URL.Query().Get("lang"), r.Header.Get("Accept-Language"), supported, def)
			ctx := context.WithValue(r.Context(), localeKey, locale)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// LocaleFromContext retrieves the locale stored by Locale.
func LocaleFromContext(ctx context.Context) string {
	if s, ok := ctx.Value(localeKey).(string); ok {
		return s
	}
	return "ko"
}
