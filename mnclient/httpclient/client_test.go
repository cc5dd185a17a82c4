// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package httpclient

import (
	"errors"
	"math/big"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/mnreg/api"
	"github.com/vechain/mnreg/api/masternodes"
	"github.com/vechain/mnreg/chain"
	"github.com/vechain/mnreg/lvldb"
	"github.com/vechain/mnreg/mn"
	"github.com/vechain/mnreg/mnclient/common"
	"github.com/vechain/mnreg/runtime"
	"github.com/vechain/mnreg/state"
)

var (
	owner = mn.BytesToAddress([]byte("owner"))
	node  = mn.BytesToAddress([]byte("node"))
)

func newTestClient(t *testing.T) (*Client, *runtime.Runtime) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	repo, err := chain.NewRepository(db, uint64(time.Now().Unix())-100)
	require.NoError(t, err)
	rt := runtime.New(repo, state.New(db), mn.DefaultConfig())

	handler, closeSubs := api.New(rt, api.Options{AllowedOrigins: "*", EnableWrites: true})
	ts := httptest.NewServer(handler)
	t.Cleanup(func() {
		ts.Close()
		closeSubs()
		rt.Close()
		db.Close()
	})
	return New(ts.URL), rt
}

func TestClient(t *testing.T) {
	c, rt := newTestClient(t)
	require.NoError(t, rt.Credit(owner, mn.Coins(40000)))

	events, err := c.Deposit(owner, mn.Coins(20000))
	require.NoError(t, err)
	assert.Empty(t, events)

	acc, err := c.GetAccount(owner)
	require.NoError(t, err)
	assert.Equal(t, mn.Coins(20000), (*big.Int)(acc.Balance))
	assert.Equal(t, mn.Coins(20000), (*big.Int)(acc.Collateral))

	_, err = c.GetMasternode(node)
	assert.True(t, errors.Is(err, common.ErrNotFound))

	events, err = c.Announce(&masternodes.AnnounceRequest{
		Owner: owner,
		Node:  node,
		IP:    "18.52.86.120",
		Enode: [2]mn.Bytes32{{1}, {2}},
	})
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "Announced", events[0].Name)

	nodes, err := c.GetMasternodes()
	require.NoError(t, err)
	assert.Equal(t, []mn.Address{node}, nodes)

	count, err := c.GetCount()
	require.NoError(t, err)
	assert.Equal(t, uint64(1), count.Active)

	info, err := c.GetMasternode(node)
	require.NoError(t, err)
	assert.Equal(t, owner, info.Owner)
	assert.Equal(t, uint64(2), info.SeqPayouts)

	info, err = c.GetOwner(owner)
	require.NoError(t, err)
	assert.Equal(t, node, info.Node)

	valid, err := c.IsValid(node)
	require.NoError(t, err)
	assert.True(t, valid)

	_, err = c.Validate(node, node)
	assert.True(t, errors.Is(err, common.ErrNot200Status))

	best, err := c.GetBlock(BestRevision)
	require.NoError(t, err)
	_, err = c.Heartbeat(&masternodes.HeartbeatRequest{Node: node, BlockNumber: best.Number, BlockID: best.ID})
	assert.ErrorContains(t, err, "Too early")

	events, err = c.Withdraw(owner, mn.Coins(20000))
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "Denounced", events[0].Name)

	valid, err = c.IsValid(node)
	require.NoError(t, err)
	assert.False(t, valid)
}

func TestClientBlocksAndTreasury(t *testing.T) {
	c, rt := newTestClient(t)

	_, _, err := rt.ProduceBlock(uint64(time.Now().Unix()))
	require.NoError(t, err)

	b, err := c.GetBlockByNumber(1)
	require.NoError(t, err)
	assert.Equal(t, uint32(1), b.Number)

	_, err = c.GetBlockByNumber(2)
	assert.True(t, errors.Is(err, common.ErrNotFound))

	// nobody is active so the reward went to the treasury
	tr, err := c.GetTreasury()
	require.NoError(t, err)
	assert.Equal(t, mn.DefaultConfig().Reward(), (*big.Int)(tr.Balance))
	assert.Equal(t, mn.DefaultConfig().Reward(), (*big.Int)(tr.Contributions))
}
