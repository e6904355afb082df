package handlers_test

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"hexa_access/internal/access"
	"hexa_access/internal/events"
	httpserver "hexa_access/internal/http"
	"hexa_access/internal/models"
	"hexa_access/internal/store/memory"
)

type nopDispatcher struct {
	mu    sync.Mutex
	count int
}

func (d *nopDispatcher) Send(string, string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.count++
	return nil
}

type testServer struct {
	router     *gin.Engine
	characters *memory.CharacterStore
	logs       *memory.LogStore
	rules      *memory.AlertRuleStore
}

func newTestServer(t *testing.T, chars ...models.Character) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	ts := &testServer{
		characters: memory.NewCharacterStore(chars...),
		logs:       memory.NewLogStore(),
		rules:      memory.NewAlertRuleStore(),
	}
	logger := log.New(os.Stderr, "", 0)
	recorder := events.NewRecorder(ts.logs, nil, logger)
	engine := access.NewEngine(ts.characters, recorder, logger)

	ts.router = httpserver.NewRouter(httpserver.Dependencies{
		Characters: ts.characters,
		Logs:       ts.logs,
		Rules:      ts.rules,
		Recorder:   recorder,
		Access:     engine,
		Dispatch:   &nopDispatcher{},
		JWTSecret:  "test-secret",
		Logger:     logger,
	})
	return ts
}

func (ts *testServer) post(t *testing.T, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func mustHash(t *testing.T, secret string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

func TestRequestAccess_UnknownRFID(t *testing.T) {
	ts := newTestServer(t)

	w := ts.post(t, "/api/access/request", gin.H{"rfidCode": "AA11", "doorId": 1})
	assert.Equal(t, http.StatusNotFound, w.Code)

	body := decode(t, w)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, true, body["unknown"])

	entries := ts.logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, models.LogAccessDenied, entries[0].Type)
	assert.Contains(t, entries[0].Text, "AA11")
}

func TestRequestAccess_MissingInput(t *testing.T) {
	ts := newTestServer(t)

	w := ts.post(t, "/api/access/request", gin.H{"rfidCode": "AA11"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, ts.logs.All())
}

func TestRequestAccess_UnknownDoor(t *testing.T) {
	ts := newTestServer(t, models.Character{
		ID: 2, Name: "Jia Li", Role: models.RoleEngineer, RFIDCode: "E6 FF",
	})

	w := ts.post(t, "/api/access/request", gin.H{"rfidCode": "E6 FF", "doorId": 42})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Invalid Door ID", decode(t, w)["message"])
}

func TestRequestAccess_InsufficientClearance(t *testing.T) {
	ts := newTestServer(t, models.Character{
		ID: 5, Name: "Guest User", Role: models.RoleVisitor, RFIDCode: "BB22",
	})

	w := ts.post(t, "/api/access/request", gin.H{"rfidCode": "BB22", "doorId": 3})
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, decode(t, w)["message"], "Insufficient Clearance")
}

func TestRequestAccess_PasswordFlow(t *testing.T) {
	ts := newTestServer(t, models.Character{
		ID: 1, Name: "Salman Miya", Role: models.RoleAdmin, RFIDCode: "D4 C6",
		PasswordHash: mustHash(t, "hunter22"),
	})

	// First call without the factor: a challenge, not a denial.
	w := ts.post(t, "/api/access/request", gin.H{"rfidCode": "D4 C6", "doorId": 1})
	assert.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, true, body["requirePassword"])
	assert.Empty(t, ts.logs.All())

	// Wrong factor.
	w = ts.post(t, "/api/access/request", gin.H{"rfidCode": "D4 C6", "doorId": 1, "password": "nope"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Correct factor.
	w = ts.post(t, "/api/access/request", gin.H{"rfidCode": "D4 C6", "doorId": 1, "password": "hunter22"})
	assert.Equal(t, http.StatusOK, w.Code)
	body = decode(t, w)
	assert.Equal(t, true, body["success"])
	user, ok := body["user"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, true, user["isRegistered"], "entrance grant completes registration")
}
