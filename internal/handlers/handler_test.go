package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/asmrapi/backend/internal/auth"
	"github.com/asmrapi/backend/internal/middleware"
	"github.com/asmrapi/backend/internal/models"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var (
	userIdentity  = &auth.Identity{UserID: 2, Username: "mika", Role: models.RoleUser}
	adminIdentity = &auth.Identity{UserID: 1, Username: "root", Role: models.RoleAdmin}
)

// testGate authenticates every request as identity, or rejects it when identity is nil
func testGate(identity *auth.Identity) Gate {
	return Gate{
		Auth: func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if identity == nil {
					w.WriteHeader(http.StatusUnauthorized)
					return
				}
				next.ServeHTTP(w, r.WithContext(middleware.WithIdentity(r.Context(), identity)))
			})
		},
		Admin: middleware.RoleMiddleware(models.RoleAdmin),
	}
}

func newTestRouter(t *testing.T, table RouteTable, identity *auth.Identity) http.Handler {
	t.Helper()
	r := chi.NewRouter()
	require.NoError(t, Mount(r, table, testGate(identity)))
	return r
}

func doRequest(h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		switch b := body.(type) {
		case string:
			reader = bytes.NewBufferString(b)
		default:
			data, _ := json.Marshal(b)
			reader = bytes.NewReader(data)
		}
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func testLogger() *zap.Logger {
	return zap.NewNop()
}
