package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func tracing(name string, trail *[]string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			*trail = append(*trail, name+">")
			next.ServeHTTP(w, r)
			*trail = append(*trail, "<"+name)
		})
	}
}

func TestChain_OutermostFirst(t *testing.T) {
	t.Parallel()

	var trail []string
	h := Chain(tracing("recovery", &trail), tracing("auth", &trail))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		trail = append(trail, "handler")
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/items", nil))

	assert.Equal(t, []string{"recovery>", "auth>", "handler", "<auth", "<recovery"}, trail)
}

func TestChain_SkipsNil(t *testing.T) {
	t.Parallel()

	var trail []string
	var limiter Middleware // disabled
	h := Chain(tracing("cors", &trail), limiter, tracing("auth", &trail))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		trail = append(trail, "handler")
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/items", nil))

	assert.Equal(t, []string{"cors>", "auth>", "handler", "<auth", "<cors"}, trail)
}

func TestChain_Empty(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	Chain()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusTeapot, rec.Code)
}
