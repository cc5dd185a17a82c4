// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package log is a thin layer over go-ethereum's structured logger.
// Package level loggers resolve the root logger on every call, so they can be
// declared as package variables before the root handler is configured.
package log

import (
	"io"
	"log/slog"

	ethlog "github.com/ethereum/go-ethereum/log"
)

// Levels re-exported for callers configuring handlers.
const (
	LevelTrace = ethlog.LevelTrace
	LevelDebug = ethlog.LevelDebug
	LevelInfo  = ethlog.LevelInfo
	LevelWarn  = ethlog.LevelWarn
	LevelError = ethlog.LevelError
	LevelCrit  = ethlog.LevelCrit
)

// Logger writes key/value pairs.
type Logger interface {
	With(ctx ...any) Logger
	Trace(msg string, ctx ...any)
	Debug(msg string, ctx ...any)
	Info(msg string, ctx ...any)
	Warn(msg string, ctx ...any)
	Error(msg string, ctx ...any)
	Crit(msg string, ctx ...any)
}

// WithContext returns a logger that prefixes ctx to every record written
// through the current root logger.
func WithContext(ctx ...any) Logger {
	return &lazyLogger{ctx: ctx}
}

// Root returns the root logger.
func Root() Logger {
	return &lazyLogger{}
}

// SetDefault replaces the root logger with one writing to h.
func SetDefault(h slog.Handler) {
	ethlog.SetDefault(ethlog.NewLogger(h))
}

// NewTerminalHandler returns a human readable handler filtering records
// below the legacy verbosity (0=crit .. 5=trace).
func NewTerminalHandler(w io.Writer, verbosity int, useColor bool) slog.Handler {
	h := ethlog.NewGlogHandler(ethlog.NewTerminalHandler(w, useColor))
	h.Verbosity(ethlog.FromLegacyLevel(verbosity))
	return h
}

// FromLegacyLevel converts a legacy verbosity (0=crit .. 5=trace) into a level.
func FromLegacyLevel(verbosity int) slog.Level {
	return ethlog.FromLegacyLevel(verbosity)
}

// DiscardHandler drops every record.
func DiscardHandler() slog.Handler {
	return ethlog.DiscardHandler()
}

type lazyLogger struct {
	ctx []any
}

func (l *lazyLogger) get() ethlog.Logger {
	if len(l.ctx) == 0 {
		return ethlog.Root()
	}
	return ethlog.Root().With(l.ctx...)
}

func (l *lazyLogger) With(ctx ...any) Logger {
	merged := make([]any, 0, len(l.ctx)+len(ctx))
	merged = append(append(merged, l.ctx...), ctx...)
	return &lazyLogger{ctx: merged}
}

func (l *lazyLogger) Trace(msg string, ctx ...any) { l.get().Trace(msg, ctx...) }
func (l *lazyLogger) Debug(msg string, ctx ...any) { l.get().Debug(msg, ctx...) }
func (l *lazyLogger) Info(msg string, ctx ...any)  { l.get().Info(msg, ctx...) }
func (l *lazyLogger) Warn(msg string, ctx ...any)  { l.get().Warn(msg, ctx...) }
func (l *lazyLogger) Error(msg string, ctx ...any) { l.get().Error(msg, ctx...) }
func (l *lazyLogger) Crit(msg string, ctx ...any)  { l.get().Crit(msg, ctx...) }
