// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package common

import (
	"errors"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrNot200Status  = errors.New("not 200 status code")
	ErrUnexpectedMsg = errors.New("unexpected message format")
)

// EventWrapper carries either a decoded message or the error that ended the stream.
type EventWrapper[T any] struct {
	Data  T
	Error error
}
