// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package registry

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/vechain/mnreg/mn"
)

// Payout describes where a reward went.
type Payout struct {
	Node      mn.Address // zero when the queue was empty
	Recipient mn.Address // owner, or zero when routed to the treasury
	Amount    *big.Int
}

// ToTreasury reports whether the amount was routed to the treasury.
func (p *Payout) ToTreasury() bool {
	return p.Recipient.IsZero()
}

// Reward routes amount to the owner of the current payee, or to the treasury when the
// active set is empty or the payee lacks quorum. The payee is checked for staleness on
// every call. The rotation advances once per call, whatever the amount.
func (r *Registry) Reward(amount *big.Int) (*Payout, error) {
	if amount == nil {
		amount = new(big.Int)
	}
	payout := &Payout{Amount: new(big.Int).Set(amount)}

	count, err := r.storage.active.Len()
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return payout, r.toTreasury(amount)
	}

	current, err := r.storage.cursor.Get()
	if err != nil {
		return nil, err
	}
	payouts, err := r.storage.payouts.Get()
	if err != nil {
		return nil, err
	}
	valid, err := r.storage.active.Contains(current)
	if err != nil {
		return nil, err
	}

	// a payee going silent mid-turn loses the rest of its turn
	if payouts.Sign() > 0 && valid {
		entry, err := r.storage.getMasternode(current)
		if err != nil {
			return nil, err
		}
		if r.isStale(entry, r.env.BlockContext().Time) {
			logger.Debug("evicting stale payee", "node", current, "last", entry.LivenessRef())
			if err := r.denounce(current); err != nil {
				return nil, err
			}
			// the cursor now rests on the predecessor, if any
			if current, err = r.storage.cursor.Get(); err != nil {
				return nil, err
			}
			payouts = new(big.Int)
		}
	}

	if payouts.Sign() == 0 || !valid {
		if !valid {
			current = mn.Address{}
		}
		if current, err = r.selectPayee(current); err != nil {
			return nil, err
		}
		if current.IsZero() {
			// every candidate was stale and got evicted
			return payout, r.toTreasury(amount)
		}
	}

	entry, err := r.storage.getMasternode(current)
	if err != nil {
		return nil, err
	}
	eligible, err := r.storage.eligible.Get()
	if err != nil {
		return nil, err
	}
	if err := r.storage.payouts.Sub(big.NewInt(1)); err != nil {
		return nil, errors.Wrap(err, "payouts")
	}

	payout.Node = current
	if eligible.Sign() == 0 {
		return payout, r.toTreasury(amount)
	}
	payout.Recipient = entry.Owner
	if amount.Sign() > 0 {
		if err := r.env.State().AddBalance(entry.Owner, amount); err != nil {
			return nil, err
		}
	}
	return payout, nil
}

func (r *Registry) toTreasury(amount *big.Int) error {
	if amount.Sign() == 0 {
		return nil
	}
	return r.treasury.Contribute(amount)
}

// successor returns the node after from in rotation order, wrapping to the head.
// A zero from yields the head.
func (r *Registry) successor(from mn.Address) (mn.Address, error) {
	if !from.IsZero() {
		next, err := r.storage.active.Next(from)
		if err != nil {
			return mn.Address{}, err
		}
		if !next.IsZero() {
			return next, nil
		}
	}
	return r.storage.active.Head()
}

// selectPayee starts the turn of the node following from: stale candidates are evicted,
// the first live one has its quorum evaluated and its votes consumed.
func (r *Registry) selectPayee(from mn.Address) (mn.Address, error) {
	now := r.env.BlockContext().Time

	candidate, err := r.successor(from)
	if err != nil {
		return mn.Address{}, err
	}
	for !candidate.IsZero() {
		entry, err := r.storage.getMasternode(candidate)
		if err != nil {
			return mn.Address{}, err
		}
		if !r.isStale(entry, now) {
			break
		}

		next, err := r.storage.active.Next(candidate)
		if err != nil {
			return mn.Address{}, err
		}
		logger.Debug("evicting stale masternode", "node", candidate, "last", entry.LivenessRef())
		if err := r.denounce(candidate); err != nil {
			return mn.Address{}, err
		}
		if next.IsZero() {
			if next, err = r.storage.active.Head(); err != nil {
				return mn.Address{}, err
			}
		}
		candidate = next
	}
	if candidate.IsZero() {
		r.storage.cursor.Set(nil)
		return candidate, r.storage.payouts.Set(new(big.Int))
	}

	eligible, err := r.quorumMet(candidate)
	if err != nil {
		return mn.Address{}, err
	}
	r.storage.votes.Delete(candidate)

	entry, err := r.storage.getMasternode(candidate)
	if err != nil {
		return mn.Address{}, err
	}
	r.storage.cursor.Set(&candidate)
	if err := r.storage.payouts.Set(new(big.Int).SetUint64(entry.SeqPayouts)); err != nil {
		return mn.Address{}, err
	}
	flag := new(big.Int)
	if eligible {
		flag.SetUint64(1)
	}
	if err := r.storage.eligible.Set(flag); err != nil {
		return mn.Address{}, err
	}
	return candidate, nil
}

// quorumMet evaluates the votes collected by node against the current active set.
func (r *Registry) quorumMet(node mn.Address) (bool, error) {
	count, err := r.globalStatsService.ActiveCount()
	if err != nil {
		return false, err
	}
	if count <= r.cfg.QuorumMinNodes {
		return true, nil
	}
	required := (count - 1) * r.cfg.QuorumPercent / 100
	if required < 1 {
		required = 1
	}
	votes, err := r.Votes(node)
	if err != nil {
		return false, err
	}
	return votes >= required, nil
}
