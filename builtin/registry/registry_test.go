// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package registry

import (
	"encoding/binary"
	"math/big"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/mnreg/builtin/reverts"
	"github.com/vechain/mnreg/lvldb"
	"github.com/vechain/mnreg/mn"
	"github.com/vechain/mnreg/state"
	"github.com/vechain/mnreg/xenv"
)

var (
	registryAddr = mn.BytesToAddress([]byte("MasternodeRegistry"))

	owner1 = mn.BytesToAddress([]byte("owner1"))
	owner2 = mn.BytesToAddress([]byte("owner2"))
	owner3 = mn.BytesToAddress([]byte("owner3"))

	node1 = mn.BytesToAddress([]byte("masternode1"))
	node2 = mn.BytesToAddress([]byte("masternode2"))
	node3 = mn.BytesToAddress([]byte("masternode3"))

	ip1 = uint32(0x12345678)
	ip2 = uint32(0x87654321)
	ip3 = uint32(0x43218765)

	enode1 = Enode{mn.BytesToBytes32([]byte("enode-11")), mn.BytesToBytes32([]byte("enode-11"))}
	enode2 = Enode{mn.BytesToBytes32([]byte("enode-11")), mn.BytesToBytes32([]byte("enode-22"))}
	enode3 = Enode{mn.BytesToBytes32([]byte("enode-11")), mn.BytesToBytes32([]byte("enode-33"))}
)

type testChain struct {
	head uint32
}

func blockID(num uint32) mn.Bytes32 {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], num)
	return mn.Blake2b([]byte("block"), b[:])
}

func (c *testChain) GetBlockID(num uint32) (mn.Bytes32, error) {
	if num > c.head {
		return mn.Bytes32{}, errors.New("not found")
	}
	return blockID(num), nil
}

type testCollateral struct {
	cfg      *mn.Config
	balances map[mn.Address]*big.Int
}

func (c *testCollateral) BalanceInfo(owner mn.Address) (*big.Int, *big.Int, error) {
	bal, ok := c.balances[owner]
	if !ok {
		bal = new(big.Int)
	}
	return new(big.Int).Set(bal), c.cfg.Min(), nil
}

type testTreasury struct {
	received *big.Int
}

func (t *testTreasury) Contribute(amount *big.Int) error {
	t.received.Add(t.received, amount)
	return nil
}

// testEnv drives the registry through successive blocks over a single state.
type testEnv struct {
	t          *testing.T
	cfg        *mn.Config
	st         *state.State
	chain      *testChain
	collateral *testCollateral
	treasury   *testTreasury
	time       uint64
	env        *xenv.Environment
}

func newTestEnv(t *testing.T) *testEnv {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	cfg := mn.DefaultConfig()
	return &testEnv{
		t:          t,
		cfg:        cfg,
		st:         state.New(db),
		chain:      &testChain{head: 100},
		collateral: &testCollateral{cfg: cfg, balances: make(map[mn.Address]*big.Int)},
		treasury:   &testTreasury{received: new(big.Int)},
		time:       1_700_000_000,
	}
}

// registry returns an instance bound to the pending block, with a fresh event log.
func (e *testEnv) registry() *Registry {
	e.env = xenv.New(e.chain, e.st, &xenv.BlockContext{Number: e.chain.head + 1, Time: e.time}, mn.Address{})
	return New(registryAddr, e.env, e.cfg, e.collateral, e.treasury)
}

// mine advances the chain by one block and the clock by secs.
func (e *testEnv) mine(secs uint64) {
	e.chain.head++
	e.time += secs
}

func (e *testEnv) deposit(owner mn.Address, coins uint64) {
	e.collateral.balances[owner] = mn.Coins(coins)
}

func (e *testEnv) events() []string {
	var names []string
	for _, ev := range e.env.Events() {
		names = append(names, ev.EventName())
	}
	return names
}

func (e *testEnv) balance(addr mn.Address) *big.Int {
	bal, err := e.st.GetBalance(addr)
	require.NoError(e.t, err)
	return bal
}

func (e *testEnv) announceAll() {
	e.deposit(owner1, 30000)
	e.deposit(owner2, 20000)
	e.deposit(owner3, 10000)
	require.NoError(e.t, e.registry().Announce(owner1, node1, ip1, enode1))
	require.NoError(e.t, e.registry().Announce(owner2, node2, ip2, enode2))
	require.NoError(e.t, e.registry().Announce(owner3, node3, ip3, enode3))
}

func TestAnnounce(t *testing.T) {
	e := newTestEnv(t)

	// no collateral yet
	assert.ErrorIs(t, e.registry().Announce(owner1, node1, ip1, enode1), reverts.ErrInsufficientCollateral)

	e.deposit(owner1, 30000)
	for _, ip := range []uint32{0x7F000001, 0x0A000001, 0xC0A80001, 0xAC100001, 0xAC1F0001} {
		assert.ErrorIs(t, e.registry().Announce(owner1, node1, ip, enode1), reverts.ErrInvalidAddress)
	}

	r := e.registry()
	require.NoError(t, r.Announce(owner1, node1, ip1, enode1))
	assert.Equal(t, []string{"Announced"}, e.events())
	ev := e.env.Events()[0].(*AnnouncedEvent)
	assert.Equal(t, &AnnouncedEvent{Node: node1, Owner: owner1, IPv4: ip1, Enode: enode1, Collateral: mn.Coins(30000)}, ev)

	info, err := e.registry().Info(node1)
	require.NoError(t, err)
	assert.Equal(t, owner1, info.Owner)
	assert.Equal(t, ip1, info.IPv4)
	assert.Equal(t, enode1, info.Enode)
	assert.Equal(t, mn.Coins(30000), info.Collateral)
	assert.Equal(t, e.chain.head+1, info.AnnouncedBlock)
	assert.Equal(t, uint64(0), info.LastHeartbeat)
	assert.Equal(t, uint64(3), info.SeqPayouts)

	node, info, err := e.registry().OwnerInfo(owner1)
	require.NoError(t, err)
	assert.Equal(t, node1, node)
	assert.Equal(t, ip1, info.IPv4)

	// another owner can not take the node over
	e.deposit(owner2, 20000)
	assert.ErrorIs(t, e.registry().Announce(owner2, node1, ip2, enode2), reverts.ErrInvalidOwner)
	assert.ErrorIs(t, e.registry().Denounce(owner2, node1), reverts.ErrInvalidOwner)

	nodes, err := e.registry().Enumerate()
	require.NoError(t, err)
	assert.Equal(t, []mn.Address{node1}, nodes)
}

func TestReannounce(t *testing.T) {
	e := newTestEnv(t)
	e.announceAll()

	// same owner, same node: replaced in place
	e.mine(10)
	e.deposit(owner1, 40000)
	require.NoError(t, e.registry().Announce(owner1, node1, ip2, enode2))
	assert.Equal(t, []string{"Denounced", "Announced"}, e.events())

	nodes, _ := e.registry().Enumerate()
	assert.Equal(t, []mn.Address{node1, node2, node3}, nodes)

	info, _ := e.registry().Info(node1)
	assert.Equal(t, ip2, info.IPv4)
	assert.Equal(t, uint64(4), info.SeqPayouts)
	assert.Equal(t, e.chain.head+1, info.AnnouncedBlock)

	stats, _ := e.registry().Count()
	assert.Equal(t, uint64(3), stats.Active)
	assert.Equal(t, mn.Coins(70000), stats.ActiveCollateral)

	// same owner, another node: the previous one is released first
	other := mn.BytesToAddress([]byte("masternode4"))
	require.NoError(t, e.registry().Announce(owner1, other, ip1, enode1))
	assert.Equal(t, []string{"Denounced", "Announced"}, e.events())
	assert.Equal(t, node1, e.env.Events()[0].(*DenouncedEvent).Node)

	nodes, _ = e.registry().Enumerate()
	assert.Equal(t, []mn.Address{node2, node3, other}, nodes)

	_, err := e.registry().Info(node1)
	assert.ErrorIs(t, err, reverts.ErrUnknownMasternode)
	owned, _, err := e.registry().OwnerInfo(owner1)
	require.NoError(t, err)
	assert.Equal(t, other, owned)
}

func TestDenounce(t *testing.T) {
	e := newTestEnv(t)

	// unknown node: silent no-op
	r := e.registry()
	require.NoError(t, r.Denounce(owner1, node1))
	assert.Empty(t, e.events())

	e.announceAll()

	r = e.registry()
	require.NoError(t, r.Denounce(owner1, node1))
	assert.Equal(t, []string{"Denounced"}, e.events())

	// idempotent
	r = e.registry()
	require.NoError(t, r.Denounce(owner1, node1))
	assert.Empty(t, e.events())

	_, err := e.registry().Info(node1)
	assert.ErrorIs(t, err, reverts.ErrUnknownMasternode)
	_, _, err = e.registry().OwnerInfo(owner1)
	assert.ErrorIs(t, err, reverts.ErrUnknownOwner)

	// a released node identity can be claimed by another owner
	e.deposit(owner1, 0)
	other := mn.BytesToAddress([]byte("owner4"))
	e.deposit(other, 10000)
	require.NoError(t, e.registry().Announce(other, node1, ip1, enode1))
}

func TestCount(t *testing.T) {
	e := newTestEnv(t)

	stats, err := e.registry().Count()
	require.NoError(t, err)
	assert.Equal(t, uint64(0), stats.Active)
	assert.Equal(t, uint64(0), stats.Total)

	e.announceAll()

	stats, err = e.registry().Count()
	require.NoError(t, err)
	assert.Equal(t, uint64(3), stats.Active)
	assert.Equal(t, uint64(3), stats.Total)
	assert.Equal(t, mn.Coins(60000), stats.ActiveCollateral)
	assert.Equal(t, mn.Coins(60000), stats.TotalCollateral)
	assert.Equal(t, mn.Coins(60000), stats.MaxOfAllTimes)

	require.NoError(t, e.registry().Denounce(owner1, node1))
	require.NoError(t, e.registry().Denounce(owner2, node2))
	require.NoError(t, e.registry().Denounce(owner3, node3))

	stats, err = e.registry().Count()
	require.NoError(t, err)
	assert.Equal(t, uint64(0), stats.Active)
	assert.Equal(t, 0, stats.ActiveCollateral.Sign())
	assert.Equal(t, mn.Coins(60000), stats.MaxOfAllTimes)

	nodes, err := e.registry().Enumerate()
	require.NoError(t, err)
	assert.Empty(t, nodes)
}

func TestHeartbeat(t *testing.T) {
	e := newTestEnv(t)

	head := e.chain.head
	assert.ErrorIs(t, e.registry().Heartbeat(node1, head-10, blockID(head-10), nil), reverts.ErrTooOld)
	assert.ErrorIs(t, e.registry().Heartbeat(node1, head-9, blockID(head), nil), reverts.ErrHashMismatch)
	assert.ErrorIs(t, e.registry().Heartbeat(node1, head+1, blockID(head+1), nil), reverts.ErrHashMismatch)
	assert.ErrorIs(t, e.registry().Heartbeat(node1, head, blockID(head), nil), reverts.ErrNotActive)

	e.announceAll()

	assert.ErrorIs(t, e.registry().Heartbeat(node1, e.chain.head, blockID(e.chain.head), nil), reverts.ErrTooEarly)

	e.mine(30*60 - 1)
	assert.ErrorIs(t, e.registry().Heartbeat(node1, e.chain.head, blockID(e.chain.head), nil), reverts.ErrTooEarly)

	e.mine(1)
	r := e.registry()
	require.NoError(t, r.Heartbeat(node1, e.chain.head, blockID(e.chain.head), big.NewInt(12)))
	assert.Equal(t, []string{"Heartbeat"}, e.events())

	info, _ := e.registry().Info(node1)
	assert.Equal(t, e.time, info.LastHeartbeat)
	assert.Equal(t, big.NewInt(12), info.SwFeatures)

	valid, err := e.registry().IsValid(node1)
	require.NoError(t, err)
	assert.True(t, valid)

	// silent for more than two hours
	e.mine(2*60*60 + 1)
	valid, _ = e.registry().IsValid(node1)
	assert.False(t, valid)

	r = e.registry()
	err = r.Heartbeat(node1, e.chain.head, blockID(e.chain.head), nil)
	assert.ErrorIs(t, err, reverts.ErrTooLate)
	assert.True(t, reverts.KeepsState(err))
	assert.Equal(t, []string{"Denounced"}, e.events())

	active, _ := e.registry().IsActive(node1)
	assert.False(t, active)
	valid, _ = e.registry().IsValid(node1)
	assert.False(t, valid)
}

func TestValidate(t *testing.T) {
	e := newTestEnv(t)

	assert.ErrorIs(t, e.registry().Validate(node1, node1), reverts.ErrSelfVote)
	assert.ErrorIs(t, e.registry().Validate(node1, node2), reverts.ErrNotActiveCaller)

	e.deposit(owner1, 10000)
	require.NoError(t, e.registry().Announce(owner1, node1, ip1, enode1))
	assert.ErrorIs(t, e.registry().Validate(node1, node2), reverts.ErrNotActiveSubject)

	e.deposit(owner2, 10000)
	require.NoError(t, e.registry().Announce(owner2, node2, ip2, enode2))

	require.NoError(t, e.registry().Validate(node1, node2))
	require.NoError(t, e.registry().Validate(node1, node2))
	votes, err := e.registry().Votes(node2)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), votes)

	// votes of nodes that left the active set no longer count
	require.NoError(t, e.registry().Denounce(owner1, node1))
	votes, _ = e.registry().Votes(node2)
	assert.Equal(t, uint64(0), votes)
}

func TestOnCollateralUpdate(t *testing.T) {
	e := newTestEnv(t)

	// no node: no-op
	r := e.registry()
	require.NoError(t, r.OnCollateralUpdate(owner1))
	assert.Empty(t, e.events())

	e.announceAll()

	// unchanged balance
	r = e.registry()
	require.NoError(t, r.OnCollateralUpdate(owner1))
	assert.Empty(t, e.events())

	// a partial withdrawal still above the minimum drops the 30000 snapshot
	e.deposit(owner1, 10000)
	r = e.registry()
	require.NoError(t, r.OnCollateralUpdate(owner1))
	assert.Equal(t, []string{"Denounced"}, e.events())
	_, err := e.registry().Info(node1)
	assert.ErrorIs(t, err, reverts.ErrUnknownMasternode)

	// so does a deposit
	e.deposit(owner2, 40000)
	r = e.registry()
	require.NoError(t, r.OnCollateralUpdate(owner2))
	assert.Equal(t, []string{"Denounced"}, e.events())
	assert.Equal(t, node2, e.env.Events()[0].(*DenouncedEvent).Node)

	// and a withdrawal below the minimum
	e.deposit(owner3, 0)
	r = e.registry()
	require.NoError(t, r.OnCollateralUpdate(owner3))
	assert.Equal(t, []string{"Denounced"}, e.events())

	stats, err := e.registry().Count()
	require.NoError(t, err)
	assert.Equal(t, uint64(0), stats.Active)
	assert.Equal(t, 0, stats.ActiveCollateral.Sign())
	nodes, _ := e.registry().Enumerate()
	assert.Empty(t, nodes)

	// announcing again registers the live amount
	require.NoError(t, e.registry().Announce(owner2, node2, ip2, enode2))
	info, err := e.registry().Info(node2)
	require.NoError(t, err)
	assert.Equal(t, mn.Coins(40000), info.Collateral)
	assert.Equal(t, uint64(4), info.SeqPayouts)
	r = e.registry()
	require.NoError(t, r.OnCollateralUpdate(owner2))
	assert.Empty(t, e.events())

	// re-announce appends at the tail
	e.deposit(owner1, 30000)
	require.NoError(t, e.registry().Announce(owner1, node1, ip1, enode1))
	nodes, _ = e.registry().Enumerate()
	assert.Equal(t, []mn.Address{node2, node1}, nodes)
}

func TestRewardEmpty(t *testing.T) {
	e := newTestEnv(t)

	reward := e.cfg.Reward()
	payout, err := e.registry().Reward(reward)
	require.NoError(t, err)
	assert.True(t, payout.ToTreasury())
	assert.True(t, payout.Node.IsZero())
	assert.Equal(t, reward, e.treasury.received)
}

func TestRewardSingleNode(t *testing.T) {
	e := newTestEnv(t)
	e.deposit(owner1, 30000)
	require.NoError(t, e.registry().Announce(owner1, node1, ip1, enode1))

	reward := e.cfg.Reward()
	for range 3 {
		payout, err := e.registry().Reward(reward)
		require.NoError(t, err)
		assert.Equal(t, node1, payout.Node)
		assert.Equal(t, owner1, payout.Recipient)
	}
	assert.Equal(t, new(big.Int).Mul(reward, big.NewInt(3)), e.balance(owner1))
	assert.Equal(t, 0, e.treasury.received.Sign())
}

func TestRewardTwoNodes(t *testing.T) {
	e := newTestEnv(t)
	e.deposit(owner1, 30000)
	e.deposit(owner2, 20000)
	require.NoError(t, e.registry().Announce(owner1, node1, ip1, enode1))
	require.NoError(t, e.registry().Announce(owner2, node2, ip2, enode2))

	reward := e.cfg.Reward()
	var order []mn.Address
	for range 10 {
		payout, err := e.registry().Reward(reward)
		require.NoError(t, err)
		order = append(order, payout.Node)
	}

	// quorum is waived with two nodes
	assert.Equal(t, 0, e.treasury.received.Sign())
	assert.Equal(t, new(big.Int).Mul(reward, big.NewInt(6)), e.balance(owner1))
	assert.Equal(t, new(big.Int).Mul(reward, big.NewInt(4)), e.balance(owner2))
	assert.Equal(t, []mn.Address{node1, node1, node1, node2, node2, node1, node1, node1, node2, node2}, order)
}

func TestRewardQuorum(t *testing.T) {
	e := newTestEnv(t)
	e.cfg.SuperblockCycle = 100
	e.announceAll()

	schedule := NewSchedule(e.cfg)
	reward := e.cfg.Reward()

	voteAll := func() {
		for _, pair := range [][2]mn.Address{
			{node1, node2}, {node1, node3},
			{node2, node1}, {node2, node3},
			{node3, node1}, {node3, node2},
		} {
			require.NoError(t, e.registry().Validate(pair[0], pair[1]))
		}
	}

	for i := uint32(1); i <= 18; i++ {
		if i == 7 || i == 13 {
			voteAll()
		}
		amount := schedule.Payable(i)
		assert.Equal(t, reward, amount)
		_, err := e.registry().Reward(amount)
		require.NoError(t, err)
	}

	// the first cycle goes to the treasury for lack of votes
	assert.Equal(t, new(big.Int).Mul(reward, big.NewInt(6)), e.treasury.received)
	assert.Equal(t, new(big.Int).Mul(reward, big.NewInt(6)), e.balance(owner1))
	assert.Equal(t, new(big.Int).Mul(reward, big.NewInt(4)), e.balance(owner2))
	assert.Equal(t, new(big.Int).Mul(reward, big.NewInt(2)), e.balance(owner3))

	// votes were consumed
	for _, node := range []mn.Address{node1, node2, node3} {
		votes, _ := e.registry().Votes(node)
		assert.Equal(t, uint64(0), votes)
	}
}

func TestRewardZeroAmountRotates(t *testing.T) {
	e := newTestEnv(t)
	e.deposit(owner1, 10000)
	e.deposit(owner2, 10000)
	require.NoError(t, e.registry().Announce(owner1, node1, ip1, enode1))
	require.NoError(t, e.registry().Announce(owner2, node2, ip2, enode2))

	payout, err := e.registry().Reward(nil)
	require.NoError(t, err)
	assert.Equal(t, node1, payout.Node)

	payout, err = e.registry().Reward(e.cfg.Reward())
	require.NoError(t, err)
	assert.Equal(t, node2, payout.Node)
	assert.Equal(t, 0, e.balance(owner1).Sign())
	assert.Equal(t, e.cfg.Reward(), e.balance(owner2))
}

func TestRewardEvictsStale(t *testing.T) {
	e := newTestEnv(t)
	e.announceAll()

	// only node2 keeps heartbeating
	e.mine(90 * 60)
	require.NoError(t, e.registry().Heartbeat(node2, e.chain.head, blockID(e.chain.head), nil))
	e.mine(40 * 60)

	r := e.registry()
	payout, err := r.Reward(e.cfg.Reward())
	require.NoError(t, err)
	assert.Equal(t, node2, payout.Node)
	assert.Equal(t, []string{"Denounced"}, e.events())
	assert.Equal(t, node1, e.env.Events()[0].(*DenouncedEvent).Node)

	nodes, _ := e.registry().Enumerate()
	assert.Equal(t, []mn.Address{node2, node3}, nodes)

	// node2 pays twice, then node3 is found stale and evicted, wrapping back to node2
	_, err = e.registry().Reward(e.cfg.Reward())
	require.NoError(t, err)
	r = e.registry()
	payout, err = r.Reward(e.cfg.Reward())
	require.NoError(t, err)
	assert.Equal(t, node2, payout.Node)
	assert.Equal(t, []string{"Denounced"}, e.events())

	nodes, _ = e.registry().Enumerate()
	assert.Equal(t, []mn.Address{node2}, nodes)
	assert.Equal(t, new(big.Int).Mul(e.cfg.Reward(), big.NewInt(3)), e.balance(owner2))

	stats, _ := e.registry().Count()
	assert.Equal(t, uint64(1), stats.Active)
	assert.Equal(t, mn.Coins(20000), stats.ActiveCollateral)

	// node2 goes silent mid-turn: the next reward evicts it and the active set runs empty
	e.mine(3 * 60 * 60)
	r = e.registry()
	payout, err = r.Reward(e.cfg.Reward())
	require.NoError(t, err)
	assert.True(t, payout.ToTreasury())
	assert.True(t, payout.Node.IsZero())
	assert.Equal(t, []string{"Denounced"}, e.events())
	nodes, _ = e.registry().Enumerate()
	assert.Empty(t, nodes)
	assert.Equal(t, e.cfg.Reward(), e.treasury.received)
	assert.Equal(t, new(big.Int).Mul(e.cfg.Reward(), big.NewInt(3)), e.balance(owner2))
}

func TestRewardEvictsPayeeSilentMidTurn(t *testing.T) {
	e := newTestEnv(t)
	e.deposit(owner1, 30000)
	e.deposit(owner2, 10000)
	require.NoError(t, e.registry().Announce(owner1, node1, ip1, enode1))
	require.NoError(t, e.registry().Announce(owner2, node2, ip2, enode2))

	reward := e.cfg.Reward()
	payout, err := e.registry().Reward(reward)
	require.NoError(t, err)
	require.Equal(t, node1, payout.Node)
	require.Equal(t, reward, e.balance(owner1))

	// node2 keeps heartbeating while node1 stays silent
	for range 5 {
		e.mine(60 * 60)
		require.NoError(t, e.registry().Heartbeat(node2, e.chain.head, blockID(e.chain.head), nil))
	}

	r := e.registry()
	payout, err = r.Reward(reward)
	require.NoError(t, err)
	assert.Equal(t, node2, payout.Node)
	assert.Equal(t, owner2, payout.Recipient)
	assert.Equal(t, []string{"Denounced"}, e.events())
	assert.Equal(t, node1, e.env.Events()[0].(*DenouncedEvent).Node)

	// node1 got nothing more out of its turn
	assert.Equal(t, reward, e.balance(owner1))
	assert.Equal(t, reward, e.balance(owner2))
	valid, err := e.registry().IsValid(node1)
	require.NoError(t, err)
	assert.False(t, valid)
	nodes, _ := e.registry().Enumerate()
	assert.Equal(t, []mn.Address{node2}, nodes)
}

func TestDenounceCurrentPayee(t *testing.T) {
	e := newTestEnv(t)
	e.announceAll()

	reward := e.cfg.Reward()
	// disable quorum for the rotation check
	e.cfg.QuorumMinNodes = 3

	payout, err := e.registry().Reward(reward)
	require.NoError(t, err)
	require.Equal(t, node1, payout.Node)

	// node1 had two more payouts pending; its successor takes over
	require.NoError(t, e.registry().Denounce(owner1, node1))
	payout, err = e.registry().Reward(reward)
	require.NoError(t, err)
	assert.Equal(t, node2, payout.Node)

	// removing the tail payee wraps to the head
	_, err = e.registry().Reward(reward)
	require.NoError(t, err)
	_, err = e.registry().Reward(reward)
	require.NoError(t, err) // node3's turn
	require.NoError(t, e.registry().Denounce(owner3, node3))
	payout, err = e.registry().Reward(reward)
	require.NoError(t, err)
	assert.Equal(t, node2, payout.Node)
}

func TestAggregateConsistency(t *testing.T) {
	e := newTestEnv(t)
	e.announceAll()

	check := func() {
		stats, err := e.registry().Count()
		require.NoError(t, err)
		nodes, err := e.registry().Enumerate()
		require.NoError(t, err)

		sum := new(big.Int)
		for _, node := range nodes {
			info, err := e.registry().Info(node)
			require.NoError(t, err)
			sum.Add(sum, info.Collateral)
		}
		assert.Equal(t, uint64(len(nodes)), stats.Active)
		assert.Equal(t, 0, sum.Cmp(stats.ActiveCollateral))
		assert.True(t, stats.MaxOfAllTimes.Cmp(stats.ActiveCollateral) >= 0)
	}

	check()
	e.deposit(owner2, 50000)
	require.NoError(t, e.registry().Announce(owner2, node2, ip2, enode2))
	check()
	require.NoError(t, e.registry().Denounce(owner3, node3))
	check()
	e.deposit(owner1, 0)
	require.NoError(t, e.registry().OnCollateralUpdate(owner1))
	check()

	stats, _ := e.registry().Count()
	assert.Equal(t, mn.Coins(90000), stats.MaxOfAllTimes)
}
