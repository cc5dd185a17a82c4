// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package chain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/vechain/mnreg/chain"
	"github.com/vechain/mnreg/lvldb"
	"github.com/vechain/mnreg/mn"
)

func TestRepository(t *testing.T) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	defer db.Close()

	repo, err := NewRepository(db, 1000)
	require.NoError(t, err)

	g := repo.GenesisBlock()
	assert.Equal(t, uint32(0), g.Number())
	assert.Equal(t, uint64(1000), g.Time())
	assert.Equal(t, g.ID(), repo.BestBlock().ID())

	tick := repo.NewTicker()

	_, err = repo.NewBlock(1000)
	assert.Error(t, err)

	b1, err := repo.NewBlock(1010)
	require.NoError(t, err)
	<-tick

	b2, err := repo.NewBlock(1020)
	require.NoError(t, err)
	assert.Equal(t, uint32(2), b2.Number())
	assert.Equal(t, b1.ID(), b2.ParentID())
	assert.Equal(t, b2.ID(), repo.BestBlock().ID())

	id, err := repo.GetBlockID(1)
	require.NoError(t, err)
	assert.Equal(t, b1.ID(), id)

	_, err = repo.GetBlockID(3)
	assert.True(t, repo.IsNotFound(err))

	// reopen
	repo, err = NewRepository(db, 5000)
	require.NoError(t, err)
	assert.Equal(t, g.ID(), repo.GenesisBlock().ID())
	assert.Equal(t, b2.ID(), repo.BestBlock().ID())
	id, err = repo.GetBlockID(2)
	require.NoError(t, err)
	assert.Equal(t, b2.ID(), id)
}

func TestHeaderID(t *testing.T) {
	a := NewHeader(mn.Bytes32{}, 1, 10)
	b := NewHeader(mn.Bytes32{}, 1, 11)
	c := NewHeader(mn.Bytes32{1}, 1, 10)

	assert.NotEqual(t, a.ID(), b.ID())
	assert.NotEqual(t, a.ID(), c.ID())
	assert.Equal(t, a.ID(), NewHeader(mn.Bytes32{}, 1, 10).ID())
}
