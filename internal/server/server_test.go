package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"modjsx/internal/config"
	"modjsx/internal/engine"
)

func newTestServer() *Server {
	return New(engine.New(config.Default()))
}

func postModularize(t *testing.T, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/modularize", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	newTestServer().Handler().ServeHTTP(rec, req)
	return rec
}

func TestModularize(t *testing.T) {
	source := `import React from 'react';

function Header() {
  return <header>Top</header>;
}

function App() {
  return <Header />;
}

export default App;
`
	body, err := json.Marshal(map[string]string{"code": source})
	require.NoError(t, err)

	rec := postModularize(t, string(body))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		UpdatedApp     string             `json:"updatedApp"`
		Components     []engine.Component `json:"components"`
		ProcessingTime int64              `json:"processingTime"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	require.Len(t, resp.Components, 1)
	assert.Equal(t, "Header", resp.Components[0].Name)
	assert.Equal(t, "Header.jsx", resp.Components[0].Filename)
	assert.Contains(t, resp.UpdatedApp, "import Header from './components/Header';")
	assert.GreaterOrEqual(t, resp.ProcessingTime, int64(0))
}

func TestModularize_BadInput(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"Missing Code", `{}`},
		{"Non String Code", `{"code": 42}`},
		{"Empty Code", `{"code": ""}`},
		{"Invalid JSON", `{"code": `},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postModularize(t, tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)

			var resp map[string]any
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.NotEmpty(t, resp["error"])
		})
	}
}

func TestModularize_ParseFailure(t *testing.T) {
	rec := postModularize(t, `{"code": "const A = ;"}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "failed to parse input", resp["error"])
	assert.Contains(t, resp["message"], "syntax error")
}

func TestModularize_MethodNotAllowed(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/modularize", strings.NewReader(""))
	rec := httptest.NewRecorder()
	newTestServer().Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestHealthz(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	newTestServer().Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}
