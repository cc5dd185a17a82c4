// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package httpserver

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/pkg/errors"

	"github.com/vechain/mnreg/api/admin"
	"github.com/vechain/mnreg/co"
	"github.com/vechain/mnreg/health"
)

func StartAdminServer(addr string, logLevel *slog.LevelVar, h *health.Health) (string, func(), error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return "", nil, errors.Wrapf(err, "listen admin API addr [%v]", addr)
	}

	srv := &http.Server{Handler: admin.HTTPHandler(logLevel, h), ReadHeaderTimeout: time.Second, ReadTimeout: 5 * time.Second}
	goes := co.NewGoes(context.Background())
	goes.Go(func(context.Context) {
		srv.Serve(listener)
	})
	return "http://" + listener.Addr().String() + "/admin", func() {
		srv.Close()
		goes.Stop()
	}, nil
}
