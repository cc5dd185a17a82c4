// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package registry

import (
	"math/big"

	"github.com/vechain/mnreg/builtin/registry/globalstats"
	"github.com/vechain/mnreg/mn"
)

// Enode holds the two halves of a node's peer identity.
type Enode [2]mn.Bytes32

// Masternode is the record of an active masternode.
type Masternode struct {
	Owner          mn.Address
	IPv4           uint32
	Enode          Enode
	Collateral     *big.Int // snapshot taken at announce time
	AnnouncedBlock uint32
	AnnouncedTime  uint64
	LastHeartbeat  uint64 // zero until the first accepted heartbeat
	SwFeatures     *big.Int
	SeqPayouts     uint64 // consecutive payouts per turn in the queue
}

// IsEmpty returns whether the entry is absent.
func (m *Masternode) IsEmpty() bool {
	return m == nil || m.Owner.IsZero()
}

// LivenessRef returns the time liveness windows are measured from.
func (m *Masternode) LivenessRef() uint64 {
	if m.LastHeartbeat > m.AnnouncedTime {
		return m.LastHeartbeat
	}
	return m.AnnouncedTime
}

// Stats are the registry wide aggregates returned by Count.
type Stats = globalstats.Stats

// voteSet lists distinct voters attesting a node since its last evaluation.
type voteSet struct {
	Voters []mn.Address
}

func (v *voteSet) has(voter mn.Address) bool {
	for _, addr := range v.Voters {
		if addr == voter {
			return true
		}
	}
	return false
}

// AnnouncedEvent is emitted when a node enters the active set.
type AnnouncedEvent struct {
	Node       mn.Address
	Owner      mn.Address
	IPv4       uint32
	Enode      Enode
	Collateral *big.Int
}

// DenouncedEvent is emitted when a node leaves the active set.
type DenouncedEvent struct {
	Node  mn.Address
	Owner mn.Address
}

// HeartbeatEvent is emitted on every accepted heartbeat.
type HeartbeatEvent struct {
	Node mn.Address
}

func (*AnnouncedEvent) EventName() string { return "Announced" }
func (*DenouncedEvent) EventName() string { return "Denounced" }
func (*HeartbeatEvent) EventName() string { return "Heartbeat" }

// CollateralOracle reports an owner's live collateral and the required minimum.
type CollateralOracle interface {
	BalanceInfo(owner mn.Address) (amount, minimum *big.Int, err error)
}

// Treasury receives reward amounts that can not be paid to a masternode owner.
type Treasury interface {
	Contribute(amount *big.Int) error
}
