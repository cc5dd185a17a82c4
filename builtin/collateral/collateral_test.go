// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package collateral

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/mnreg/builtin/reverts"
	"github.com/vechain/mnreg/lvldb"
	"github.com/vechain/mnreg/mn"
	"github.com/vechain/mnreg/state"
)

func newCollateral(t *testing.T) (*Collateral, *state.State) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	st := state.New(db)
	return New(mn.BytesToAddress([]byte("col")), st, mn.DefaultConfig()), st
}

func TestDeposit(t *testing.T) {
	c, st := newCollateral(t)
	owner := mn.BytesToAddress([]byte("owner"))
	require.NoError(t, st.SetBalance(owner, mn.Coins(200000)))

	tests := []struct {
		name   string
		amount *big.Int
		err    error
	}{
		{"zero", new(big.Int), reverts.ErrInvalidAmount},
		{"negative", big.NewInt(-1), reverts.ErrInvalidAmount},
		{"not a multiple", mn.Coins(15000), reverts.ErrInvalidAmount},
		{"first", mn.Coins(10000), nil},
		{"second", mn.Coins(30000), nil},
		{"above maximum", mn.Coins(70000), reverts.ErrCollateralLimit},
		{"up to maximum", mn.Coins(60000), nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := c.Deposit(owner, tt.amount)
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
			} else {
				assert.NoError(t, err)
			}
		})
	}

	bal, amount, err := c.BalanceInfo(owner)
	require.NoError(t, err)
	assert.Equal(t, mn.Coins(100000), bal)
	assert.Equal(t, mn.Coins(10000), amount)

	locked, err := st.GetBalance(c.Address())
	require.NoError(t, err)
	assert.Equal(t, mn.Coins(100000), locked)

	free, err := st.GetBalance(owner)
	require.NoError(t, err)
	assert.Equal(t, mn.Coins(100000), free)

	total, err := c.TotalSupply()
	require.NoError(t, err)
	assert.Equal(t, mn.Coins(100000), total)
}

func TestDepositInsufficientBalance(t *testing.T) {
	c, st := newCollateral(t)
	owner := mn.BytesToAddress([]byte("owner"))
	require.NoError(t, st.SetBalance(owner, mn.Coins(5000)))

	assert.ErrorIs(t, c.Deposit(owner, mn.Coins(10000)), reverts.ErrInsufficientBalance)

	bal, err := c.BalanceOf(owner)
	require.NoError(t, err)
	assert.Equal(t, 0, bal.Sign())
}

func TestWithdraw(t *testing.T) {
	c, st := newCollateral(t)
	owner := mn.BytesToAddress([]byte("owner"))
	require.NoError(t, st.SetBalance(owner, mn.Coins(30000)))
	require.NoError(t, c.Deposit(owner, mn.Coins(30000)))

	assert.ErrorIs(t, c.Withdraw(owner, mn.Coins(40000)), reverts.ErrInsufficientBalance)
	assert.ErrorIs(t, c.Withdraw(owner, mn.Coins(1)), reverts.ErrInvalidAmount)

	require.NoError(t, c.Withdraw(owner, mn.Coins(20000)))
	bal, _ := c.BalanceOf(owner)
	assert.Equal(t, mn.Coins(10000), bal)

	require.NoError(t, c.Withdraw(owner, mn.Coins(10000)))
	bal, _ = c.BalanceOf(owner)
	assert.Equal(t, 0, bal.Sign())

	free, _ := st.GetBalance(owner)
	assert.Equal(t, mn.Coins(30000), free)
	locked, _ := st.GetBalance(c.Address())
	assert.Equal(t, 0, locked.Sign())
	total, _ := c.TotalSupply()
	assert.Equal(t, 0, total.Sign())
}
