// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package mn

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"strings"
)

var (
	errInvalidPrefix = errors.New("invalid prefix")
	errInvalidLength = errors.New("invalid length")
)

// decodeFixedHex fills dst from s, which holds exactly len(dst) bytes in hex,
// optionally 0x prefixed.
func decodeFixedHex(dst []byte, s string) error {
	switch len(s) {
	case len(dst) * 2:
	case len(dst)*2 + 2:
		if !strings.EqualFold(s[:2], "0x") {
			return errInvalidPrefix
		}
		s = s[2:]
	default:
		return errInvalidLength
	}
	_, err := hex.Decode(dst, []byte(s))
	return err
}

// unquoteHex decodes a JSON string holding a fixed size hex value into dst.
func unquoteHex(dst []byte, data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	return decodeFixedHex(dst, s)
}

func encodeHex(b []byte) string {
	return "0x" + hex.EncodeToString(b)
}
