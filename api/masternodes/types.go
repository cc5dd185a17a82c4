// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package masternodes

import (
	"github.com/ethereum/go-ethereum/common/math"

	"github.com/vechain/mnreg/builtin/registry"
	"github.com/vechain/mnreg/mn"
)

// Masternode is the JSON form of a masternode record.
type Masternode struct {
	Node           mn.Address            `json:"node"`
	Owner          mn.Address            `json:"owner"`
	IP             string                `json:"ip"`
	Enode          []mn.Bytes32          `json:"enode"`
	Collateral     *math.HexOrDecimal256 `json:"collateral"`
	AnnouncedBlock uint32                `json:"announcedBlock"`
	AnnouncedTime  uint64                `json:"announcedTime"`
	LastHeartbeat  uint64                `json:"lastHeartbeat"`
	SwFeatures     *math.HexOrDecimal256 `json:"swFeatures"`
	SeqPayouts     uint64                `json:"seqPayouts"`
}

func convertMasternode(node mn.Address, entry *registry.Masternode) *Masternode {
	enode := entry.Enode
	return &Masternode{
		Node:           node,
		Owner:          entry.Owner,
		IP:             registry.IPv4(entry.IPv4).String(),
		Enode:          enode[:],
		Collateral:     (*math.HexOrDecimal256)(entry.Collateral),
		AnnouncedBlock: entry.AnnouncedBlock,
		AnnouncedTime:  entry.AnnouncedTime,
		LastHeartbeat:  entry.LastHeartbeat,
		SwFeatures:     (*math.HexOrDecimal256)(entry.SwFeatures),
		SeqPayouts:     entry.SeqPayouts,
	}
}

// Count is the JSON form of the registry aggregates.
type Count struct {
	Active           uint64                `json:"active"`
	Total            uint64                `json:"total"`
	ActiveCollateral *math.HexOrDecimal256 `json:"activeCollateral"`
	TotalCollateral  *math.HexOrDecimal256 `json:"totalCollateral"`
	MaxOfAllTimes    *math.HexOrDecimal256 `json:"maxOfAllTimes"`
}

// Validity reports whether a node is valid.
type Validity struct {
	Valid bool `json:"valid"`
}

// AnnounceRequest announces a node on behalf of its owner.
type AnnounceRequest struct {
	Owner mn.Address    `json:"owner"`
	Node  mn.Address    `json:"node"`
	IP    string        `json:"ip"`
	Enode [2]mn.Bytes32 `json:"enode"`
}

// DenounceRequest removes a node on behalf of its owner.
type DenounceRequest struct {
	Owner mn.Address `json:"owner"`
	Node  mn.Address `json:"node"`
}

// HeartbeatRequest carries a liveness proof of a node.
type HeartbeatRequest struct {
	Node        mn.Address            `json:"node"`
	BlockNumber uint32                `json:"blockNumber"`
	BlockID     mn.Bytes32            `json:"blockID"`
	SwFeatures  *math.HexOrDecimal256 `json:"swFeatures,omitempty"`
}

// ValidateRequest casts a vote of voter for subject.
type ValidateRequest struct {
	Voter   mn.Address `json:"voter"`
	Subject mn.Address `json:"subject"`
}
