// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/big"
	"reflect"
	"time"

	ethlog "github.com/ethereum/go-ethereum/log"
	"github.com/holiman/uint256"
)

const timeFormat = "2006-01-02T15:04:05-0700"

// TerminalHandler prints human readable records. The level is read from lvl on every
// record, so changing lvl takes effect immediately.
//
//	[LEVEL] [TIME] MESSAGE key=value key=value ...
type TerminalHandler struct {
	inner slog.Handler
	lvl   *slog.LevelVar
}

// NewTerminalHandlerWithLevel returns a terminal handler dropping records below lvl.
func NewTerminalHandlerWithLevel(wr io.Writer, lvl *slog.LevelVar, useColor bool) *TerminalHandler {
	return &TerminalHandler{
		inner: ethlog.NewTerminalHandler(wr, useColor),
		lvl:   lvl,
	}
}

func (h *TerminalHandler) Handle(ctx context.Context, r slog.Record) error {
	return h.inner.Handle(ctx, r)
}

func (h *TerminalHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.lvl.Level()
}

func (h *TerminalHandler) WithGroup(name string) slog.Handler {
	return &TerminalHandler{inner: h.inner.WithGroup(name), lvl: h.lvl}
}

func (h *TerminalHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &TerminalHandler{inner: h.inner.WithAttrs(attrs), lvl: h.lvl}
}

type leveler struct{ minLevel *slog.LevelVar }

func (l *leveler) Level() slog.Level {
	return l.minLevel.Level()
}

// JSONHandlerWithLevel returns a handler printing one JSON object per record, dropping
// records below level.
func JSONHandlerWithLevel(wr io.Writer, level *slog.LevelVar) slog.Handler {
	return slog.NewJSONHandler(wr, &slog.HandlerOptions{
		ReplaceAttr: replaceJSON,
		Level:       &leveler{level},
	})
}

func replaceJSON(_ []string, attr slog.Attr) slog.Attr {
	switch attr.Key {
	case slog.TimeKey:
		if attr.Value.Kind() == slog.KindTime {
			return slog.String("t", attr.Value.Time().Format(timeFormat))
		}
	case slog.LevelKey:
		if l, ok := attr.Value.Any().(slog.Level); ok {
			return slog.String("lvl", ethlog.LevelString(l))
		}
	}

	// amounts and addresses print as strings rather than as byte arrays
	switch v := attr.Value.Any().(type) {
	case *big.Int:
		if v == nil {
			attr.Value = slog.StringValue("<nil>")
		} else {
			attr.Value = slog.StringValue(v.String())
		}
	case *uint256.Int:
		if v == nil {
			attr.Value = slog.StringValue("<nil>")
		} else {
			attr.Value = slog.StringValue(v.Dec())
		}
	case time.Duration:
		attr.Value = slog.StringValue(v.String())
	case fmt.Stringer:
		if v == nil || (reflect.ValueOf(v).Kind() == reflect.Pointer && reflect.ValueOf(v).IsNil()) {
			attr.Value = slog.StringValue("<nil>")
		} else {
			attr.Value = slog.StringValue(v.String())
		}
	}
	return attr
}
