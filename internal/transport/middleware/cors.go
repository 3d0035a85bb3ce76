package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/heartmarshall/inventory-backend/internal/config"
)

// OriginPolicy decides which browser origins may call the API or open /ws.
type OriginPolicy struct {
	any     bool
	origins map[string]struct{}
}

// NewOriginPolicy parses the comma-separated allow-list. "*" allows every origin.
func NewOriginPolicy(allowed string) OriginPolicy {
	p := OriginPolicy{origins: make(map[string]struct{})}
	for _, o := range strings.Split(allowed, ",") {
		o = strings.ToLower(strings.TrimSpace(o))
		switch o {
		case "":
		case "*":
			p.any = true
		default:
			p.origins[o] = struct{}{}
		}
	}
	return p
}

// Allows reports whether origin is on the list. Origins compare case-insensitively.
func (p OriginPolicy) Allows(origin string) bool {
	if p.any {
		return true
	}
	_, ok := p.origins[strings.ToLower(origin)]
	return ok
}

// CORS answers preflight requests and echoes allowed origins. The request ID
// header is exposed so browser clients can quote it in bug reports.
func CORS(cfg config.CORSConfig) Middleware {
	policy := NewOriginPolicy(cfg.AllowedOrigins)
	maxAge := strconv.Itoa(cfg.MaxAge)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin != "" {
				w.Header().Add("Vary", "Origin")
				if policy.Allows(origin) {
					w.Header().Set("Access-Control-Allow-Origin", origin)
					w.Header().Set("Access-Control-Expose-Headers", RequestIDHeader)
					if cfg.AllowCredentials {
						w.Header().Set("Access-Control-Allow-Credentials", "true")
					}
				}
			}

			if r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != "" {
				w.Header().Set("Access-Control-Allow-Methods", cfg.AllowedMethods)
				w.Header().Set("Access-Control-Allow-Headers", cfg.AllowedHeaders)
				w.Header().Set("Access-Control-Max-Age", maxAge)
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
