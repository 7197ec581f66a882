package api

import (
	"bytes"
	"encoding/json/v2"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cardvault/cardvault-server/internal/auth"
	"github.com/cardvault/cardvault-server/internal/config"
	"github.com/cardvault/cardvault-server/internal/http/response"
	"github.com/cardvault/cardvault-server/internal/logger"
	"github.com/cardvault/cardvault-server/internal/service"
	"github.com/cardvault/cardvault-server/internal/store"
)

const (
	testAdminUser     = "admin"
	testAdminPassword = "test-password"
)

// setupTestServer builds a server over a real badger store in a temp
// directory.
func setupTestServer(t *testing.T) *Server {
	t.Helper()

	log := logger.New(logger.Config{Writer: io.Discard, Format: "json"})

	st, err := store.Open(t.TempDir(), log.Logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	keyHex, err := auth.LoadOrGenerateKey(t.TempDir())
	require.NoError(t, err)
	tokens, err := auth.NewTokenService(keyHex, time.Hour)
	require.NoError(t, err)

	adminHash, err := auth.HashPassword(testAdminPassword)
	require.NoError(t, err)

	cfg := &config.Config{}
	cfg.Server.Name = "CardVault Test"
	cfg.Auth.AdminUser = testAdminUser

	svc := service.NewSeriesService(st, log)
	return NewServer(cfg, svc, tokens, nil, adminHash, log.Logger)
}

// loginForToken performs a login request and returns the access token.
func loginForToken(t *testing.T, server *Server) string {
	t.Helper()

	body, err := json.Marshal(LoginRequest{Username: testAdminUser, Password: testAdminPassword})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	server.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var result struct {
		Data LoginResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	require.NotEmpty(t, result.Data.AccessToken)
	return result.Data.AccessToken
}

// doJSON performs a request with an optional body and bearer token.
func doJSON(t *testing.T, server *Server, method, path, token string, payload any) *httptest.ResponseRecorder {
	t.Helper()

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()

	server.ServeHTTP(w, req)
	return w
}

func createTestSeries(t *testing.T, server *Server, token, code, name string) map[string]any {
	t.Helper()

	w := doJSON(t, server, http.MethodPost, "/api/v1/series", token, SeriesRequest{
		Code:        code,
		Name:        name,
		ReleaseYear: 2023,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var result response.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	data, ok := result.Data.(map[string]any)
	require.True(t, ok)
	return data
}

func TestHealthCheck(t *testing.T) {
	server := setupTestServer(t)

	w := doJSON(t, server, http.MethodGet, "/health", "", nil)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	server := setupTestServer(t)

	w := doJSON(t, server, http.MethodPost, "/api/v1/auth/login", "", LoginRequest{
		Username: testAdminUser,
		Password: "wrong",
	})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCreateSeries_RequiresAuth(t *testing.T) {
	server := setupTestServer(t)

	w := doJSON(t, server, http.MethodPost, "/api/v1/series", "", SeriesRequest{
		Code: "SV01", Name: "Scarlet & Violet", ReleaseYear: 2023,
	})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCreateSeries_Success(t *testing.T) {
	server := setupTestServer(t)
	token := loginForToken(t, server)

	data := createTestSeries(t, server, token, "SV01", "Scarlet & Violet")
	assert.NotEmpty(t, data["id"])
	assert.Equal(t, "SV01", data["code"])
}

func TestCreateSeries_ValidationError(t *testing.T) {
	server := setupTestServer(t)
	token := loginForToken(t, server)

	w := doJSON(t, server, http.MethodPost, "/api/v1/series", token, SeriesRequest{
		Code: "SV01", Name: "Scarlet & Violet", ReleaseYear: 1998,
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var result response.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.False(t, result.Success)
	assert.NotNil(t, result.Details)
}

func TestCreateSeries_DuplicateCode(t *testing.T) {
	server := setupTestServer(t)
	token := loginForToken(t, server)
	createTestSeries(t, server, token, "SV01", "Scarlet & Violet")

	w := doJSON(t, server, http.MethodPost, "/api/v1/series", token, SeriesRequest{
		Code: "SV01", Name: "A Different Name", ReleaseYear: 2024,
	})

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestGetSeries(t *testing.T) {
	server := setupTestServer(t)
	token := loginForToken(t, server)
	created := createTestSeries(t, server, token, "SV01", "Scarlet & Violet")
	id, _ := created["id"].(string)

	// Reads do not need a token.
	w := doJSON(t, server, http.MethodGet, "/api/v1/series/"+id, "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, server, http.MethodGet, "/api/v1/series/series-missing", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetSeriesByCode(t *testing.T) {
	server := setupTestServer(t)
	token := loginForToken(t, server)
	createTestSeries(t, server, token, "SV01", "Scarlet & Violet")

	w := doJSON(t, server, http.MethodGet, "/api/v1/series/code/SV01", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, server, http.MethodGet, "/api/v1/series/code/NOPE", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListSeries_OneBasedPaging(t *testing.T) {
	server := setupTestServer(t)
	token := loginForToken(t, server)
	createTestSeries(t, server, token, "SV01", "Scarlet & Violet")
	createTestSeries(t, server, token, "SV02", "Paldea Evolved")
	createTestSeries(t, server, token, "SV03", "Obsidian Flames")

	w := doJSON(t, server, http.MethodGet, "/api/v1/series?page=2&page_size=2", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var result struct {
		Data store.Page[map[string]any] `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Len(t, result.Data.Items, 1)
	assert.Equal(t, 1, result.Data.Number)
	assert.Equal(t, 3, result.Data.Total)
	assert.False(t, result.Data.HasMore)
}

func TestUpdateSeries(t *testing.T) {
	server := setupTestServer(t)
	token := loginForToken(t, server)
	created := createTestSeries(t, server, token, "SV01", "Scarlet & Violet")
	id, _ := created["id"].(string)

	w := doJSON(t, server, http.MethodPut, "/api/v1/series/"+id, token, SeriesRequest{
		Code: "SV01", Name: "Scarlet & Violet 151", ReleaseYear: 2023,
	})
	require.Equal(t, http.StatusOK, w.Code)

	var result response.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	data, ok := result.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Scarlet & Violet 151", data["name"])
}

func TestUpdateSeries_NotFound(t *testing.T) {
	server := setupTestServer(t)
	token := loginForToken(t, server)

	w := doJSON(t, server, http.MethodPut, "/api/v1/series/series-missing", token, SeriesRequest{
		Code: "SV01", Name: "Scarlet & Violet", ReleaseYear: 2023,
	})

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteSeries(t *testing.T) {
	server := setupTestServer(t)
	token := loginForToken(t, server)
	created := createTestSeries(t, server, token, "SV01", "Scarlet & Violet")
	id, _ := created["id"].(string)

	w := doJSON(t, server, http.MethodDelete, "/api/v1/series/"+id, token, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(t, server, http.MethodDelete, "/api/v1/series/"+id, token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRequireAuth_RejectsBadHeader(t *testing.T) {
	server := setupTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/series", nil)
	req.Header.Set("Authorization", "Basic abc")
	w := httptest.NewRecorder()

	server.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
