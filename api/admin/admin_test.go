// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package admin

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/mnreg/chain"
	"github.com/vechain/mnreg/health"
	"github.com/vechain/mnreg/lvldb"
)

func newHandler(t *testing.T, logLevel *slog.LevelVar, genesisTime uint64) http.Handler {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo, err := chain.NewRepository(db, genesisTime)
	require.NoError(t, err)
	return HTTPHandler(logLevel, health.New(repo, time.Minute))
}

func serve(handler http.Handler, method, path string, body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr
}

func TestPostLogLevel(t *testing.T) {
	var logLevel slog.LevelVar
	logLevel.Set(slog.LevelInfo)
	handler := newHandler(t, &logLevel, uint64(time.Now().Unix()))

	rr := serve(handler, http.MethodPost, "/admin/loglevel", []byte(`{"level":"debug"}`))
	require.Equal(t, http.StatusOK, rr.Code)

	var res logLevelResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&res))
	assert.Equal(t, "DEBUG", res.CurrentLevel)
	assert.Equal(t, slog.LevelDebug, logLevel.Level())
}

func TestPostLogLevelInvalid(t *testing.T) {
	var logLevel slog.LevelVar
	logLevel.Set(slog.LevelInfo)
	handler := newHandler(t, &logLevel, uint64(time.Now().Unix()))

	tests := []struct {
		name string
		body string
	}{
		{"unknown level", `{"level":"loud"}`},
		{"unknown field", `{"verbosity":"debug"}`},
		{"malformed", `{"level":`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := serve(handler, http.MethodPost, "/admin/loglevel", []byte(tt.body))
			assert.Equal(t, http.StatusBadRequest, rr.Code)
			assert.Equal(t, slog.LevelInfo, logLevel.Level())
		})
	}
}

func TestGetLogLevel(t *testing.T) {
	var logLevel slog.LevelVar
	handler := newHandler(t, &logLevel, uint64(time.Now().Unix()))

	rr := serve(handler, http.MethodGet, "/admin/loglevel", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var res logLevelResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&res))
	assert.Equal(t, "INFO", res.CurrentLevel)
}

func TestHealth(t *testing.T) {
	var logLevel slog.LevelVar

	rr := serve(newHandler(t, &logLevel, uint64(time.Now().Unix())), http.MethodGet, "/admin/health", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, strings.Contains(rr.Body.String(), `"healthy":true`))

	stale := uint64(time.Now().Add(-time.Hour).Unix())
	rr = serve(newHandler(t, &logLevel, stale), http.MethodGet, "/admin/health", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
	assert.True(t, strings.Contains(rr.Body.String(), `"healthy":false`))
}
