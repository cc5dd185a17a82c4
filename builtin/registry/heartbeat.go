// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package registry

import (
	"math/big"

	"github.com/vechain/mnreg/builtin/reverts"
	"github.com/vechain/mnreg/mn"
)

func (r *Registry) minInterval() uint64 {
	return uint64(r.cfg.HeartbeatMinInterval.Seconds())
}

func (r *Registry) maxAge() uint64 {
	return uint64(r.cfg.HeartbeatMaxAge.Seconds())
}

// isStale reports whether the node stayed silent beyond the staleness bound at time now.
func (r *Registry) isStale(entry *Masternode, now uint64) bool {
	return now > entry.LivenessRef()+r.maxAge()
}

// Heartbeat records a liveness proof of node referencing a recent block.
// A node found stale is evicted and ErrTooLate is returned; the eviction is kept.
func (r *Registry) Heartbeat(node mn.Address, height uint32, hash mn.Bytes32, features *big.Int) error {
	blockCtx := r.env.BlockContext()

	if uint64(height)+uint64(r.cfg.HeartbeatPastBlocks) < uint64(blockCtx.Number) {
		return reverts.ErrTooOld
	}
	if height >= blockCtx.Number {
		return reverts.ErrHashMismatch
	}
	id, err := r.env.Seeker().GetBlockID(height)
	if err != nil || id != hash {
		return reverts.ErrHashMismatch
	}

	entry, err := r.storage.getMasternode(node)
	if err != nil {
		return err
	}
	if entry.IsEmpty() {
		return reverts.ErrNotActive
	}

	now := blockCtx.Time
	if now < entry.LivenessRef()+r.minInterval() {
		return reverts.ErrTooEarly
	}
	if r.isStale(entry, now) {
		if err := r.denounce(node); err != nil {
			return err
		}
		logger.Debug("evicted on late heartbeat", "node", node)
		return reverts.ErrTooLate
	}

	entry.LastHeartbeat = now
	if features != nil {
		entry.SwFeatures = new(big.Int).Set(features)
	}
	if err := r.storage.setMasternode(node, entry); err != nil {
		return err
	}
	r.env.Log(&HeartbeatEvent{Node: node})
	return nil
}

// Validate adds voter's attestation to subject's vote set.
func (r *Registry) Validate(voter, subject mn.Address) error {
	if voter == subject {
		return reverts.ErrSelfVote
	}
	active, err := r.IsActive(voter)
	if err != nil {
		return err
	}
	if !active {
		return reverts.ErrNotActiveCaller
	}
	if active, err = r.IsActive(subject); err != nil {
		return err
	}
	if !active {
		return reverts.ErrNotActiveSubject
	}
	return r.storage.addVote(subject, voter)
}

// IsValid reports whether node is active and its last heartbeat is within the staleness bound.
func (r *Registry) IsValid(node mn.Address) (bool, error) {
	entry, err := r.storage.getMasternode(node)
	if err != nil {
		return false, err
	}
	if entry.IsEmpty() {
		return false, nil
	}
	return !r.isStale(entry, r.env.BlockContext().Time), nil
}

// Votes returns the number of active voters currently attesting node.
func (r *Registry) Votes(node mn.Address) (uint64, error) {
	votes, err := r.storage.getVotes(node)
	if err != nil {
		return 0, err
	}
	var n uint64
	for _, voter := range votes.Voters {
		if voter == node {
			continue
		}
		active, err := r.IsActive(voter)
		if err != nil {
			return 0, err
		}
		if active {
			n++
		}
	}
	return n, nil
}
