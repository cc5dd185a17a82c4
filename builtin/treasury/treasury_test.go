// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package treasury

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/mnreg/lvldb"
	"github.com/vechain/mnreg/mn"
	"github.com/vechain/mnreg/state"
)

func TestContribute(t *testing.T) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	defer db.Close()

	st := state.New(db)
	tr := New(mn.BytesToAddress([]byte("tre")), st)

	require.NoError(t, tr.Contribute(big.NewInt(10)))
	require.NoError(t, tr.Contribute(new(big.Int)))
	require.NoError(t, tr.Contribute(big.NewInt(5)))
	assert.Error(t, tr.Contribute(big.NewInt(-1)))

	bal, err := tr.Balance()
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(15), bal)

	contributions, err := tr.Contributions()
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(15), contributions)

	// survives a commit
	require.NoError(t, st.Commit())
	bal, err = New(mn.BytesToAddress([]byte("tre")), st).Balance()
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(15), bal)
}
