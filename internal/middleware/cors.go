package middleware

import (
	"net/http"
	"strings"

	"github.com/go-chi/cors"
)

// CORS habilita CORS para una allow-list ("*" permite todo).
// Sin orígenes configurados no agrega headers.
func CORS(allowedOrigins []string) func(http.Handler) http.Handler {
	origins := make([]string, 0, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	// cors.Handler con lista vacía permite cualquier origen.
	if len(origins) == 0 {
		return func(next http.Handler) http.Handler { return next }
	}

	return cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "Authorization", DebugUserHeader},
		ExposedHeaders: []string{"X-Request-Id"},
		MaxAge:         300,
	})
}
