// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package chain

import (
	"fmt"
	"io"
	"sync/atomic"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/vechain/mnreg/mn"
)

// Header is the header of a block produced by the solo chain.
type Header struct {
	body headerBody

	cache struct {
		id atomic.Pointer[mn.Bytes32]
	}
}

type headerBody struct {
	ParentID mn.Bytes32
	Number   uint32
	Time     uint64
}

// NewHeader creates a header extending parentID.
func NewHeader(parentID mn.Bytes32, number uint32, time uint64) *Header {
	return &Header{body: headerBody{ParentID: parentID, Number: number, Time: time}}
}

// ParentID returns id of the parent block.
func (h *Header) ParentID() mn.Bytes32 { return h.body.ParentID }

// Number returns the block number.
func (h *Header) Number() uint32 { return h.body.Number }

// Time returns the block timestamp in unix seconds.
func (h *Header) Time() uint64 { return h.body.Time }

// ID computes id of the block, the blake2b hash of its rlp encoded header.
func (h *Header) ID() mn.Bytes32 {
	if cached := h.cache.id.Load(); cached != nil {
		return *cached
	}
	id := mn.Blake2bFn(func(w io.Writer) {
		rlp.Encode(w, &h.body)
	})
	h.cache.id.Store(&id)
	return id
}

// EncodeRLP implements rlp.Encoder.
func (h *Header) EncodeRLP(w io.Writer) error {
	return rlp.Encode(w, &h.body)
}

// DecodeRLP implements rlp.Decoder.
func (h *Header) DecodeRLP(s *rlp.Stream) error {
	var body headerBody
	if err := s.Decode(&body); err != nil {
		return err
	}
	*h = Header{body: body}
	return nil
}

func (h *Header) String() string {
	return fmt.Sprintf("Header(%v): Number %v, Time %v, Parent %v", h.ID(), h.Number(), h.Time(), h.ParentID())
}
