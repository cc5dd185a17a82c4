// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package blocks

import (
	"github.com/ethereum/go-ethereum/common/math"

	"github.com/vechain/mnreg/chain"
	"github.com/vechain/mnreg/mn"
)

// Block is the JSON form of a block header, with the reward scheduled for it.
type Block struct {
	Number     uint32                `json:"number"`
	ID         mn.Bytes32            `json:"id"`
	ParentID   mn.Bytes32            `json:"parentID"`
	Timestamp  uint64                `json:"timestamp"`
	Superblock bool                  `json:"superblock"`
	Reward     *math.HexOrDecimal256 `json:"reward"`
}

func convertBlock(header *chain.Header, superblock bool, reward *math.HexOrDecimal256) *Block {
	return &Block{
		Number:     header.Number(),
		ID:         header.ID(),
		ParentID:   header.ParentID(),
		Timestamp:  header.Time(),
		Superblock: superblock,
		Reward:     reward,
	}
}
