package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-wallet-payments/internal/jwt"
	"github.com/sbilibin2017/gw-wallet-payments/internal/models"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Success       bool            `json:"success"`
	Data          json.RawMessage `json:"data"`
	Message       string          `json:"message"`
	Code          string          `json:"code"`
	CurrentStatus string          `json:"current_status"`
	Balance       string          `json:"balance"`
	Required      string          `json:"required"`
}

func newRequest(method, target string, body any, userID uuid.UUID, role string) *http.Request {
	var reader io.Reader
	switch v := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(v)
	default:
		b, _ := json.Marshal(v)
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, target, reader)
	if userID != uuid.Nil {
		req = req.WithContext(jwt.WithClaims(req.Context(), &jwt.Claims{UserID: userID, Role: role}))
	}
	return req
}

// serve routes req through a chi router so path parameters resolve.
func serve(register func(chi.Router, http.HandlerFunc), h http.HandlerFunc, req *http.Request) *httptest.ResponseRecorder {
	r := chi.NewRouter()
	register(r, h)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func decodeData(t *testing.T, env envelope, v any) {
	t.Helper()
	require.True(t, env.Success)
	require.NoError(t, json.Unmarshal(env.Data, v))
}

var (
	userRole  = models.RoleUser
	adminRole = models.RoleAdmin
)
