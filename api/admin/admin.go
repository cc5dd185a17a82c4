// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package admin

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/vechain/mnreg/health"
)

func HTTPHandler(logLevel *slog.LevelVar, h *health.Health) http.Handler {
	router := mux.NewRouter()
	sub := router.PathPrefix("/admin").Subrouter()
	sub.Path("/loglevel").
		Methods(http.MethodGet).
		Name("get-log-level").
		HandlerFunc(getLogLevelHandler(logLevel))
	sub.Path("/loglevel").
		Methods(http.MethodPost).
		Name("post-log-level").
		HandlerFunc(postLogLevelHandler(logLevel))
	sub.Path("/health").
		Methods(http.MethodGet).
		Name("health").
		HandlerFunc(healthHandler(h))
	return handlers.CompressHandler(router)
}
