// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package middleware

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/vechain/mnreg/log"
)

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	h, ok := r.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errors.New("hijack not supported")
	}
	return h.Hijack()
}

// RequestLogger returns a middleware logging requests slower than slowThreshold, and every
// request when logAll is set. Write calls are logged with their body.
func RequestLogger(logger log.Logger, logAll bool, slowThreshold time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !logAll && slowThreshold == 0 {
				next.ServeHTTP(w, r)
				return
			}

			var bodyBytes []byte
			if r.Body != nil && r.Method == http.MethodPost {
				var err error
				bodyBytes, err = io.ReadAll(r.Body)
				if err != nil {
					logger.Warn("unexpected body read error", "err", err)
					http.Error(w, "failed to read body", http.StatusBadRequest)
					return
				}
				r.Body = io.NopCloser(bytes.NewReader(bodyBytes))
			}

			start := time.Now()
			rec := &statusRecorder{w, http.StatusOK}
			next.ServeHTTP(rec, r)

			duration := time.Since(start)
			if logAll || (slowThreshold > 0 && duration > slowThreshold) {
				logger.Info("API Request",
					"DurationMs", duration.Milliseconds(),
					"URI", r.URL.String(),
					"Method", r.Method,
					"Status", rec.status,
					"Body", string(bodyBytes),
				)
			}
		})
	}
}
