package middleware

import (
	"net/http"
	"os"
)

// allowed origins for browser clients. FRONTEND_URL extends the list for the
// deployed dashboard without a code change.
var allowed = map[string]struct{}{
	"http://localhost:3000": {},
	"http://localhost:5173": {},
	"http://127.0.0.1:3000": {},
}

func init() {
	if origin := os.Getenv("FRONTEND_URL"); origin != "" {
		allowed[origin] = struct{}{}
	}
}

func CORSMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")

		// Echo the origin back only if it's on our allow-list
		if _, ok := allowed[origin]; ok {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Vary", "Origin") // important for caches
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods",
				"GET, POST, PUT, PATCH, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers",
				"Content-Type, Authorization, Accept")
		}

		w.Header().Set("Access-Control-Expose-Headers", "Retry-After, Cache-Control")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
