// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package treasury

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/vechain/mnreg/builtin/solidity"
	"github.com/vechain/mnreg/mn"
	"github.com/vechain/mnreg/state"
)

var slotContributions = mn.BytesToBytes32([]byte("contributions"))

// Treasury binder of the treasury contract, the sink of rewards no masternode qualifies for.
type Treasury struct {
	addr          mn.Address
	state         *state.State
	contributions *solidity.Uint256
}

func New(addr mn.Address, state *state.State) *Treasury {
	return &Treasury{
		addr:          addr,
		state:         state,
		contributions: solidity.NewUint256(solidity.NewContext(addr, state), slotContributions),
	}
}

// Contribute credits amount to the treasury.
func (t *Treasury) Contribute(amount *big.Int) error {
	if amount.Sign() < 0 {
		return errors.New("negative contribution")
	}
	if amount.Sign() == 0 {
		return nil
	}
	if err := t.state.AddBalance(t.addr, amount); err != nil {
		return err
	}
	if err := t.contributions.Add(amount); err != nil {
		return errors.Wrap(err, "contributions")
	}
	return nil
}

// Balance returns the funds held by the treasury.
func (t *Treasury) Balance() (*big.Int, error) {
	return t.state.GetBalance(t.addr)
}

// Contributions returns the sum of all amounts ever contributed.
func (t *Treasury) Contributions() (*big.Int, error) {
	return t.contributions.Get()
}
