// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package mn

import (
	"encoding/json"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

// Bytes32 is a hash, a block id or a storage slot.
type Bytes32 [32]byte

var (
	_ json.Marshaler   = (*Bytes32)(nil)
	_ json.Unmarshaler = (*Bytes32)(nil)
)

func (b Bytes32) String() string {
	return encodeHex(b[:])
}

// AbbrevString returns abbrev string presentation.
func (b Bytes32) AbbrevString() string {
	return fmt.Sprintf("0x%x…%x", b[:4], b[28:])
}

func (b Bytes32) Bytes() []byte {
	return b[:]
}

// IsZero reports the unset value.
func (b Bytes32) IsZero() bool {
	return b == Bytes32{}
}

// MarshalJSON implements json.Marshaler.
func (b *Bytes32) MarshalJSON() ([]byte, error) {
	if b == nil {
		return json.Marshal(nil)
	}
	return json.Marshal(b.String())
}

// UnmarshalJSON implements json.Unmarshaler.
func (b *Bytes32) UnmarshalJSON(data []byte) error {
	var parsed Bytes32
	if err := unquoteHex(parsed[:], data); err != nil {
		return err
	}
	*b = parsed
	return nil
}

// ParseBytes32 parses 32 bytes of hex, 0x prefix optional.
func ParseBytes32(s string) (Bytes32, error) {
	var b Bytes32
	if err := decodeFixedHex(b[:], s); err != nil {
		return Bytes32{}, err
	}
	return b, nil
}

// MustParseBytes32 is ParseBytes32 panicking on malformed input.
func MustParseBytes32(s string) Bytes32 {
	b32, err := ParseBytes32(s)
	if err != nil {
		panic(err)
	}
	return b32
}

// BytesToBytes32 left pads b with zeros, or keeps its last 32 bytes when longer.
func BytesToBytes32(b []byte) Bytes32 {
	return Bytes32(common.BytesToHash(b))
}
