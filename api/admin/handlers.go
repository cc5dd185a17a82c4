// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package admin

import (
	"log/slog"
	"net/http"

	"github.com/pkg/errors"

	"github.com/vechain/mnreg/api/utils"
	"github.com/vechain/mnreg/health"
	"github.com/vechain/mnreg/log"
)

type logLevelRequest struct {
	Level string `json:"level"`
}

type logLevelResponse struct {
	CurrentLevel string `json:"currentLevel"`
}

var levels = map[string]slog.Level{
	"trace": log.LevelTrace,
	"debug": log.LevelDebug,
	"info":  log.LevelInfo,
	"warn":  log.LevelWarn,
	"error": log.LevelError,
	"crit":  log.LevelCrit,
}

func getLogLevelHandler(logLevel *slog.LevelVar) http.HandlerFunc {
	return utils.WrapHandlerFunc(func(w http.ResponseWriter, _ *http.Request) error {
		return utils.WriteJSON(w, &logLevelResponse{
			CurrentLevel: logLevel.Level().String(),
		})
	})
}

func postLogLevelHandler(logLevel *slog.LevelVar) http.HandlerFunc {
	return utils.WrapHandlerFunc(func(w http.ResponseWriter, r *http.Request) error {
		var req logLevelRequest
		if err := utils.ParseJSON(r.Body, &req); err != nil {
			return utils.BadRequest(errors.WithMessage(err, "body"))
		}

		level, ok := levels[req.Level]
		if !ok {
			return utils.BadRequest(errors.New("invalid verbosity level"))
		}
		logLevel.Set(level)

		return utils.WriteJSON(w, &logLevelResponse{
			CurrentLevel: logLevel.Level().String(),
		})
	})
}

func healthHandler(h *health.Health) http.HandlerFunc {
	return utils.WrapHandlerFunc(func(w http.ResponseWriter, _ *http.Request) error {
		status := h.Status()
		if !status.Healthy {
			w.Header().Set("Content-Type", utils.JSONContentType)
			w.WriteHeader(http.StatusServiceUnavailable)
		}
		return utils.WriteJSON(w, status)
	})
}
