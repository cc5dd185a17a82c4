// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package collateral

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/vechain/mnreg/builtin/reverts"
	"github.com/vechain/mnreg/builtin/solidity"
	"github.com/vechain/mnreg/log"
	"github.com/vechain/mnreg/mn"
	"github.com/vechain/mnreg/state"
)

var (
	logger = log.WithContext("pkg", "collateral")

	slotBalances = mn.BytesToBytes32([]byte("balances"))
	slotTotal    = mn.BytesToBytes32([]byte("total-supply"))
)

// Collateral binder of the collateral ledger. Locked funds are held in the balance of the
// contract address and accounted per owner.
type Collateral struct {
	addr     mn.Address
	state    *state.State
	cfg      *mn.Config
	balances *solidity.Mapping[mn.Address, *big.Int]
	total    *solidity.Uint256
}

func New(addr mn.Address, state *state.State, cfg *mn.Config) *Collateral {
	sctx := solidity.NewContext(addr, state)
	return &Collateral{
		addr:     addr,
		state:    state,
		cfg:      cfg,
		balances: solidity.NewMapping[mn.Address, *big.Int](sctx, slotBalances),
		total:    solidity.NewUint256(sctx, slotTotal),
	}
}

// Address returns the address holding the locked funds.
func (c *Collateral) Address() mn.Address {
	return c.addr
}

// BalanceOf returns the collateral locked by owner.
func (c *Collateral) BalanceOf(owner mn.Address) (*big.Int, error) {
	bal, err := c.balances.Get(owner)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get collateral")
	}
	return bal, nil
}

// BalanceInfo returns the collateral locked by owner and the minimum a masternode requires.
func (c *Collateral) BalanceInfo(owner mn.Address) (*big.Int, *big.Int, error) {
	bal, err := c.BalanceOf(owner)
	if err != nil {
		return nil, nil, err
	}
	return bal, c.cfg.Min(), nil
}

// TotalSupply returns the collateral locked by all owners.
func (c *Collateral) TotalSupply() (*big.Int, error) {
	return c.total.Get()
}

func (c *Collateral) checkAmount(amount *big.Int) error {
	if amount == nil || amount.Sign() <= 0 {
		return reverts.ErrInvalidAmount
	}
	if new(big.Int).Mod(amount, c.cfg.Unit()).Sign() != 0 {
		return reverts.ErrInvalidAmount
	}
	return nil
}

func (c *Collateral) setBalance(owner mn.Address, bal *big.Int) error {
	if bal.Sign() == 0 {
		c.balances.Delete(owner)
		return nil
	}
	if err := c.balances.Set(owner, bal); err != nil {
		return errors.Wrap(err, "failed to set collateral")
	}
	return nil
}

// Deposit locks amount from the balance of owner.
func (c *Collateral) Deposit(owner mn.Address, amount *big.Int) error {
	if err := c.checkAmount(amount); err != nil {
		return err
	}
	bal, err := c.BalanceOf(owner)
	if err != nil {
		return err
	}
	bal.Add(bal, amount)
	if bal.Cmp(c.cfg.Max()) > 0 {
		return reverts.ErrCollateralLimit
	}

	if err := c.state.SubBalance(owner, amount); err != nil {
		if errors.Is(err, state.ErrInsufficientBalance) {
			return reverts.ErrInsufficientBalance
		}
		return err
	}
	if err := c.state.AddBalance(c.addr, amount); err != nil {
		return err
	}
	if err := c.setBalance(owner, bal); err != nil {
		return err
	}
	if err := c.total.Add(amount); err != nil {
		return errors.Wrap(err, "total supply")
	}
	logger.Debug("collateral deposited", "owner", owner, "amount", amount, "balance", bal)
	return nil
}

// Withdraw releases amount of the collateral locked by owner back to its balance.
func (c *Collateral) Withdraw(owner mn.Address, amount *big.Int) error {
	if err := c.checkAmount(amount); err != nil {
		return err
	}
	bal, err := c.BalanceOf(owner)
	if err != nil {
		return err
	}
	if bal.Cmp(amount) < 0 {
		return reverts.ErrInsufficientBalance
	}
	bal.Sub(bal, amount)

	if err := c.state.SubBalance(c.addr, amount); err != nil {
		return errors.Wrap(err, "collateral funds")
	}
	if err := c.state.AddBalance(owner, amount); err != nil {
		return err
	}
	if err := c.setBalance(owner, bal); err != nil {
		return err
	}
	if err := c.total.Sub(amount); err != nil {
		return errors.Wrap(err, "total supply")
	}
	logger.Debug("collateral withdrawn", "owner", owner, "amount", amount, "balance", bal)
	return nil
}
