// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package runtime

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/vechain/mnreg/builtin"
	"github.com/vechain/mnreg/builtin/registry"
	"github.com/vechain/mnreg/chain"
	"github.com/vechain/mnreg/mn"
	"github.com/vechain/mnreg/xenv"
)

// Announce admits node on behalf of owner.
func (rt *Runtime) Announce(owner, node mn.Address, ipv4 uint32, enode registry.Enode) ([]*Event, error) {
	return rt.execute("announce", owner, func(env *xenv.Environment) error {
		return rt.registry(env).Announce(owner, node, ipv4, enode)
	})
}

// Denounce removes node on behalf of owner.
func (rt *Runtime) Denounce(owner, node mn.Address) ([]*Event, error) {
	return rt.execute("denounce", owner, func(env *xenv.Environment) error {
		return rt.registry(env).Denounce(owner, node)
	})
}

// Heartbeat submits a liveness proof of node.
func (rt *Runtime) Heartbeat(node mn.Address, height uint32, hash mn.Bytes32, features *big.Int) ([]*Event, error) {
	return rt.execute("heartbeat", node, func(env *xenv.Environment) error {
		return rt.registry(env).Heartbeat(node, height, hash, features)
	})
}

// Validate casts the vote of voter for subject.
func (rt *Runtime) Validate(voter, subject mn.Address) ([]*Event, error) {
	return rt.execute("validate", voter, func(env *xenv.Environment) error {
		return rt.registry(env).Validate(voter, subject)
	})
}

// Deposit locks collateral of owner.
func (rt *Runtime) Deposit(owner mn.Address, amount *big.Int) ([]*Event, error) {
	return rt.execute("deposit", owner, func(env *xenv.Environment) error {
		if err := builtin.Collateral.WithState(env.State(), rt.cfg).Deposit(owner, amount); err != nil {
			return err
		}
		return rt.registry(env).OnCollateralUpdate(owner)
	})
}

// Withdraw releases collateral of owner, evicting its node when it falls below the minimum.
func (rt *Runtime) Withdraw(owner mn.Address, amount *big.Int) ([]*Event, error) {
	return rt.execute("withdraw", owner, func(env *xenv.Environment) error {
		if err := builtin.Collateral.WithState(env.State(), rt.cfg).Withdraw(owner, amount); err != nil {
			return err
		}
		return rt.registry(env).OnCollateralUpdate(owner)
	})
}

// Credit adds amount to the free balance of addr, funding development accounts.
func (rt *Runtime) Credit(addr mn.Address, amount *big.Int) error {
	_, err := rt.execute("credit", addr, func(env *xenv.Environment) error {
		return env.State().AddBalance(addr, amount)
	})
	return err
}

// ProduceBlock pays the reward of the pending block and appends it to the chain.
func (rt *Runtime) ProduceBlock(now uint64) (*chain.Header, *registry.Payout, error) {
	rt.mu.Lock()
	defer rt.mu.Unlock()

	best := rt.repo.BestBlock()
	if now <= best.Time() {
		now = best.Time() + 1
	}
	blockCtx := &xenv.BlockContext{Number: best.Number() + 1, Time: now}

	var (
		payout *registry.Payout
		header *chain.Header
	)
	// the payout is committed only once the block carrying it is appended
	if _, err := rt.executeLocked("reward", mn.Address{}, blockCtx, func(env *xenv.Environment) (err error) {
		if payout, err = rt.registry(env).Reward(rt.schedule.Payable(blockCtx.Number)); err != nil {
			return errors.Wrap(err, "reward")
		}
		if header, err = rt.repo.NewBlock(now); err != nil {
			return errors.Wrap(err, "new block")
		}
		return nil
	}); err != nil {
		return nil, nil, err
	}

	target := "owner"
	if payout.ToTreasury() {
		target = "treasury"
	}
	metricPayouts().AddWithLabel(1, map[string]string{"target": target})
	logger.Debug("block produced", "number", header.Number(), "payee", payout.Node, "amount", payout.Amount, "target", target)
	return header, payout, nil
}

// IsValid reports whether node is active and live.
func (rt *Runtime) IsValid(node mn.Address) (valid bool, err error) {
	err = rt.view(func(env *xenv.Environment) error {
		valid, err = rt.registry(env).IsValid(node)
		return err
	})
	return
}

// Count returns the registry aggregates.
func (rt *Runtime) Count() (stats *registry.Stats, err error) {
	err = rt.view(func(env *xenv.Environment) error {
		stats, err = rt.registry(env).Count()
		return err
	})
	return
}

// Info returns the record of node.
func (rt *Runtime) Info(node mn.Address) (entry *registry.Masternode, err error) {
	err = rt.view(func(env *xenv.Environment) error {
		entry, err = rt.registry(env).Info(node)
		return err
	})
	return
}

// OwnerInfo returns the node owned by owner and its record.
func (rt *Runtime) OwnerInfo(owner mn.Address) (node mn.Address, entry *registry.Masternode, err error) {
	err = rt.view(func(env *xenv.Environment) error {
		node, entry, err = rt.registry(env).OwnerInfo(owner)
		return err
	})
	return
}

// Enumerate returns the active set in queue order.
func (rt *Runtime) Enumerate() (nodes []mn.Address, err error) {
	err = rt.view(func(env *xenv.Environment) error {
		nodes, err = rt.registry(env).Enumerate()
		return err
	})
	return
}

// Collateral returns the collateral locked by owner and the required minimum.
func (rt *Runtime) Collateral(owner mn.Address) (amount, minimum *big.Int, err error) {
	err = rt.view(func(env *xenv.Environment) error {
		amount, minimum, err = builtin.Collateral.WithState(env.State(), rt.cfg).BalanceInfo(owner)
		return err
	})
	return
}

// Balance returns the free balance of addr.
func (rt *Runtime) Balance(addr mn.Address) (balance *big.Int, err error) {
	err = rt.view(func(env *xenv.Environment) error {
		balance, err = env.State().GetBalance(addr)
		return err
	})
	return
}

// Treasury returns the treasury balance and its cumulative contributions.
func (rt *Runtime) Treasury() (balance, contributions *big.Int, err error) {
	err = rt.view(func(env *xenv.Environment) error {
		t := builtin.Treasury.WithState(env.State())
		if balance, err = t.Balance(); err != nil {
			return err
		}
		contributions, err = t.Contributions()
		return err
	})
	return
}
