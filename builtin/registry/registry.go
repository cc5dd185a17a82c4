// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package registry

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/vechain/mnreg/builtin/registry/globalstats"
	"github.com/vechain/mnreg/builtin/reverts"
	"github.com/vechain/mnreg/builtin/solidity"
	"github.com/vechain/mnreg/log"
	"github.com/vechain/mnreg/mn"
	"github.com/vechain/mnreg/xenv"
)

var logger = log.WithContext("pkg", "registry")

// Registry implements the masternode registry built-in contract.
type Registry struct {
	env        *xenv.Environment
	cfg        *mn.Config
	collateral CollateralOracle
	treasury   Treasury

	storage            *storage
	globalStatsService *globalstats.Service
}

// New create a new instance bound to the env of the executing call.
func New(
	addr mn.Address,
	env *xenv.Environment,
	cfg *mn.Config,
	collateral CollateralOracle,
	treasury Treasury,
) *Registry {
	sctx := solidity.NewContext(addr, env.State())
	return &Registry{
		env:                env,
		cfg:                cfg,
		collateral:         collateral,
		treasury:           treasury,
		storage:            newStorage(sctx),
		globalStatsService: globalstats.New(sctx),
	}
}

// SeqPayouts returns how many consecutive payouts a node with the given collateral receives per turn.
func (r *Registry) SeqPayouts(collateral *big.Int) uint64 {
	n := new(big.Int).Div(collateral, r.cfg.Unit())
	if n.Sign() <= 0 {
		return 1
	}
	return n.Uint64()
}

// Announce admits node to the active set on behalf of owner.
func (r *Registry) Announce(owner, node mn.Address, ipv4 uint32, enode Enode) error {
	balance, minimum, err := r.collateral.BalanceInfo(owner)
	if err != nil {
		return errors.Wrap(err, "collateral balance")
	}
	if balance.Sign() <= 0 || balance.Cmp(minimum) < 0 {
		return reverts.ErrInsufficientCollateral
	}
	if !IsRoutable(ipv4) {
		return reverts.ErrInvalidAddress
	}
	if node.IsZero() {
		return reverts.ErrInvalidOwner
	}

	existing, err := r.storage.getMasternode(node)
	if err != nil {
		return err
	}
	if !existing.IsEmpty() && existing.Owner != owner {
		return reverts.ErrInvalidOwner
	}

	// one active node per owner
	owned, err := r.storage.getOwnedNode(owner)
	if err != nil {
		return err
	}
	if !owned.IsZero() && owned != node {
		if err := r.denounce(owned); err != nil {
			return err
		}
	}

	blockCtx := r.env.BlockContext()
	entry := &Masternode{
		Owner:          owner,
		IPv4:           ipv4,
		Enode:          enode,
		Collateral:     balance,
		AnnouncedBlock: blockCtx.Number,
		AnnouncedTime:  blockCtx.Time,
		SwFeatures:     new(big.Int),
		SeqPayouts:     r.SeqPayouts(balance),
	}

	if existing.IsEmpty() {
		if err := r.storage.active.Add(node); err != nil {
			return err
		}
		if err := r.storage.owners.Set(owner, node); err != nil {
			return errors.Wrap(err, "failed to set owner")
		}
	} else {
		// re-announce in place: the queue position is kept
		r.env.Log(&DenouncedEvent{Node: node, Owner: owner})
		if err := r.globalStatsService.RemoveActive(existing.Collateral); err != nil {
			return err
		}
		r.storage.votes.Delete(node)
	}

	if err := r.storage.setMasternode(node, entry); err != nil {
		return err
	}
	if err := r.globalStatsService.AddActive(balance); err != nil {
		return err
	}

	r.env.Log(&AnnouncedEvent{
		Node:       node,
		Owner:      owner,
		IPv4:       ipv4,
		Enode:      enode,
		Collateral: new(big.Int).Set(balance),
	})
	logger.Debug("announced", "node", node, "owner", owner, "collateral", balance, "reannounce", !existing.IsEmpty())
	return nil
}

// Denounce removes node from the active set. Denouncing an inactive node is a no-op.
func (r *Registry) Denounce(owner, node mn.Address) error {
	entry, err := r.storage.getMasternode(node)
	if err != nil {
		return err
	}
	if entry.IsEmpty() {
		return nil
	}
	if entry.Owner != owner {
		return reverts.ErrInvalidOwner
	}
	return r.denounce(node)
}

// OnCollateralUpdate evicts the owner's node when its live collateral no longer matches the
// snapshot taken at announce time. The owner announces again to register the new amount.
func (r *Registry) OnCollateralUpdate(owner mn.Address) error {
	node, err := r.storage.getOwnedNode(owner)
	if err != nil {
		return err
	}
	if node.IsZero() {
		return nil
	}
	entry, err := r.storage.getMasternode(node)
	if err != nil {
		return err
	}
	if entry.IsEmpty() {
		return nil
	}
	balance, _, err := r.collateral.BalanceInfo(owner)
	if err != nil {
		return errors.Wrap(err, "collateral balance")
	}
	if balance.Cmp(entry.Collateral) == 0 {
		return nil
	}
	logger.Debug("collateral changed", "owner", owner, "node", node, "announced", entry.Collateral, "balance", balance)
	return r.denounce(node)
}

// denounce removes an active node, moving the reward cursor off it when it is the current payee.
func (r *Registry) denounce(node mn.Address) error {
	entry, err := r.storage.getMasternode(node)
	if err != nil {
		return err
	}
	if entry.IsEmpty() {
		return nil
	}

	cursor, err := r.storage.cursor.Get()
	if err != nil {
		return err
	}
	if cursor == node {
		prev, err := r.storage.active.Prev(node)
		if err != nil {
			return err
		}
		if prev.IsZero() {
			r.storage.cursor.Set(nil)
		} else {
			r.storage.cursor.Set(&prev)
		}
		if err := r.storage.payouts.Set(new(big.Int)); err != nil {
			return err
		}
	}

	if _, err := r.storage.active.Remove(node); err != nil {
		return err
	}
	if err := r.globalStatsService.RemoveActive(entry.Collateral); err != nil {
		return err
	}
	r.storage.purge(node, entry.Owner)

	r.env.Log(&DenouncedEvent{Node: node, Owner: entry.Owner})
	logger.Debug("denounced", "node", node, "owner", entry.Owner)
	return nil
}

// Count returns the registry wide aggregates.
func (r *Registry) Count() (*Stats, error) {
	return r.globalStatsService.Get()
}

// Info returns the record of an active node.
func (r *Registry) Info(node mn.Address) (*Masternode, error) {
	entry, err := r.storage.getMasternode(node)
	if err != nil {
		return nil, err
	}
	if entry.IsEmpty() {
		return nil, reverts.ErrUnknownMasternode
	}
	return entry, nil
}

// OwnerInfo returns the node controlled by owner and its record.
func (r *Registry) OwnerInfo(owner mn.Address) (mn.Address, *Masternode, error) {
	node, err := r.storage.getOwnedNode(owner)
	if err != nil {
		return mn.Address{}, nil, err
	}
	if node.IsZero() {
		return mn.Address{}, nil, reverts.ErrUnknownOwner
	}
	entry, err := r.storage.getMasternode(node)
	if err != nil {
		return mn.Address{}, nil, err
	}
	if entry.IsEmpty() {
		return mn.Address{}, nil, reverts.ErrUnknownOwner
	}
	return node, entry, nil
}

// Enumerate returns the active set in queue order.
func (r *Registry) Enumerate() ([]mn.Address, error) {
	nodes := make([]mn.Address, 0)
	err := r.storage.active.Iter(func(node mn.Address) error {
		nodes = append(nodes, node)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return nodes, nil
}

// IsActive reports whether node is in the active set.
func (r *Registry) IsActive(node mn.Address) (bool, error) {
	return r.storage.active.Contains(node)
}
