// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/vechain/mnreg/api/accounts"
	"github.com/vechain/mnreg/api/blocks"
	"github.com/vechain/mnreg/api/masternodes"
	"github.com/vechain/mnreg/api/middleware"
	"github.com/vechain/mnreg/api/subscriptions"
	"github.com/vechain/mnreg/log"
	"github.com/vechain/mnreg/runtime"
)

var logger = log.WithContext("pkg", "api")

type Options struct {
	AllowedOrigins       string
	EnableWrites         bool
	EnableMetrics        bool
	EnableReqLogger      bool
	SlowQueriesThreshold time.Duration
}

// New return api router
func New(rt *runtime.Runtime, opts Options) (http.HandlerFunc, func()) {
	origins := strings.Split(strings.TrimSpace(opts.AllowedOrigins), ",")
	for i, o := range origins {
		origins[i] = strings.ToLower(strings.TrimSpace(o))
	}

	router := mux.NewRouter()

	masternodes.New(rt, opts.EnableWrites).
		Mount(router, "/masternodes")
	accounts.New(rt, opts.EnableWrites).
		Mount(router, "/accounts")
	blocks.New(rt.Chain(), rt.Schedule()).
		Mount(router, "/blocks")
	subs := subscriptions.New(rt, origins)
	subs.Mount(router, "/subscriptions")

	if opts.EnableMetrics {
		router.Use(metricsMiddleware)
	}

	handler := handlers.CompressHandler(router)
	handler = handlers.CORS(
		handlers.AllowedOrigins(origins),
		handlers.AllowedHeaders([]string{"content-type"}),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodOptions}),
	)(handler)

	if opts.EnableReqLogger || opts.SlowQueriesThreshold > 0 {
		handler = middleware.RequestLogger(logger, opts.EnableReqLogger, opts.SlowQueriesThreshold)(handler)
	}

	return handler.ServeHTTP, subs.Close // subscriptions handles hijacked conns, which need to be closed
}
