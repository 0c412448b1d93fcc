package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ucin-dev/workload-tracker/backend/internal/config"
	"github.com/ucin-dev/workload-tracker/backend/internal/domain"
)

func newTestHandler(t *testing.T) *Handler {
	t.Helper()

	h, err := NewHandler(&config.Config{}, nil, nil, nil)
	require.NoError(t, err)

	return h
}

// authedRequest stamps the caller identity the auth middleware would have
// attached.
func authedRequest(method, target, body string, role domain.Role) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	ctx := context.WithValue(req.Context(), RoleCtxKey, string(role))
	ctx = context.WithValue(ctx, SubCtxKey, "7")
	return req.WithContext(ctx)
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) Response {
	t.Helper()

	var resp Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	return resp
}

func TestCreateSessionRejectsNonSessionedLine(t *testing.T) {
	h := newTestHandler(t)

	body := `{
		"serviceLine": "kinesiology",
		"shiftKind": "24h",
		"serviceDate": "2026-05-12",
		"entries": [{"name": "equipment maintenance", "duration": "00:30"}]
	}`
	rec := httptest.NewRecorder()
	h.CreateSession(rec, authedRequest(http.MethodPost, "/shift-sessions", body, domain.RoleKinesiologist))

	resp := decodeResponse(t, rec)
	assert.False(t, resp.Success)
	assert.Contains(t, resp.Message, "appended by shift")
}

func TestAppendEntriesByShiftRejectsSessionedLine(t *testing.T) {
	h := newTestHandler(t)

	body := `{
		"serviceLine": "nursing",
		"shiftKind": "day",
		"serviceDate": "2026-05-12",
		"entries": [{"name": "shift handover", "duration": "00:30"}]
	}`
	rec := httptest.NewRecorder()
	h.AppendEntriesByShift(rec, authedRequest(http.MethodPost, "/shift-sessions/entries", body, domain.RoleNurse))

	resp := decodeResponse(t, rec)
	assert.False(t, resp.Success)
	assert.Contains(t, resp.Message, "created explicitly")
}
