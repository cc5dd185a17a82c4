// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package api_test

import (
	"bytes"
	"encoding/json"
	"io"
	"math/big"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/mnreg/api"
	"github.com/vechain/mnreg/api/accounts"
	"github.com/vechain/mnreg/api/blocks"
	"github.com/vechain/mnreg/api/masternodes"
	"github.com/vechain/mnreg/api/utils"
	"github.com/vechain/mnreg/chain"
	"github.com/vechain/mnreg/lvldb"
	"github.com/vechain/mnreg/mn"
	"github.com/vechain/mnreg/runtime"
	"github.com/vechain/mnreg/state"
)

var (
	owner = mn.BytesToAddress([]byte("owner"))
	node  = mn.BytesToAddress([]byte("node"))
)

func newTestServer(t *testing.T, writes bool) (*httptest.Server, *runtime.Runtime) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	repo, err := chain.NewRepository(db, uint64(time.Now().Unix())-100)
	require.NoError(t, err)

	rt := runtime.New(repo, state.New(db), mn.DefaultConfig())
	require.NoError(t, rt.Credit(owner, mn.Coins(50000)))
	_, err = rt.Deposit(owner, mn.Coins(30000))
	require.NoError(t, err)

	handler, closeSubs := api.New(rt, api.Options{
		AllowedOrigins: "*",
		EnableWrites:   writes,
		EnableMetrics:  true,
	})
	ts := httptest.NewServer(handler)
	t.Cleanup(func() {
		ts.Close()
		closeSubs()
		rt.Close()
		db.Close()
	})
	return ts, rt
}

func httpGet(t *testing.T, url string) ([]byte, int) {
	res, err := http.Get(url) //#nosec G107
	require.NoError(t, err)
	defer res.Body.Close()
	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return body, res.StatusCode
}

func httpPost(t *testing.T, url string, obj any) ([]byte, int) {
	data, err := json.Marshal(obj)
	require.NoError(t, err)
	res, err := http.Post(url, "application/json", bytes.NewReader(data)) //#nosec G107
	require.NoError(t, err)
	defer res.Body.Close()
	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return body, res.StatusCode
}

func announce(t *testing.T, ts *httptest.Server, ip string) ([]byte, int) {
	return httpPost(t, ts.URL+"/masternodes/announce", utils.M{
		"owner": owner.String(),
		"node":  node.String(),
		"ip":    ip,
		"enode": []string{mn.Bytes32{1}.String(), mn.Bytes32{2}.String()},
	})
}

func TestMasternodes(t *testing.T) {
	ts, _ := newTestServer(t, true)

	body, status := announce(t, ts, "127.0.0.1")
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Wrong IP", strings.TrimSpace(string(body)))

	body, status = announce(t, ts, "18.52.86.120")
	require.Equal(t, http.StatusOK, status, string(body))
	var receipt utils.Receipt
	require.NoError(t, json.Unmarshal(body, &receipt))
	require.Len(t, receipt.Events, 1)
	assert.Equal(t, "Announced", receipt.Events[0].Name)
	assert.Equal(t, node, receipt.Events[0].Node)
	assert.Equal(t, "18.52.86.120", receipt.Events[0].IP)

	body, status = httpGet(t, ts.URL+"/masternodes")
	require.Equal(t, http.StatusOK, status)
	var nodes []mn.Address
	require.NoError(t, json.Unmarshal(body, &nodes))
	assert.Equal(t, []mn.Address{node}, nodes)

	body, status = httpGet(t, ts.URL+"/masternodes/count")
	require.Equal(t, http.StatusOK, status)
	var count masternodes.Count
	require.NoError(t, json.Unmarshal(body, &count))
	assert.Equal(t, uint64(1), count.Active)
	assert.Equal(t, mn.Coins(30000), (*big.Int)(count.ActiveCollateral))

	body, status = httpGet(t, ts.URL+"/masternodes/"+node.String())
	require.Equal(t, http.StatusOK, status)
	var info masternodes.Masternode
	require.NoError(t, json.Unmarshal(body, &info))
	assert.Equal(t, owner, info.Owner)
	assert.Equal(t, "18.52.86.120", info.IP)
	assert.Equal(t, []mn.Bytes32{{1}, {2}}, info.Enode)
	assert.Equal(t, uint64(3), info.SeqPayouts)

	body, status = httpGet(t, ts.URL+"/masternodes/"+node.String()+"/valid")
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"valid":true}`, string(body))

	body, status = httpGet(t, ts.URL+"/masternodes/owners/"+owner.String())
	require.Equal(t, http.StatusOK, status)
	require.NoError(t, json.Unmarshal(body, &info))
	assert.Equal(t, node, info.Node)

	_, status = httpGet(t, ts.URL+"/masternodes/"+mn.BytesToAddress([]byte("other")).String())
	assert.Equal(t, http.StatusNotFound, status)
	_, status = httpGet(t, ts.URL+"/masternodes/owners/"+node.String())
	assert.Equal(t, http.StatusNotFound, status)
	_, status = httpGet(t, ts.URL+"/masternodes/0xbad")
	assert.Equal(t, http.StatusBadRequest, status)

	// a fresh node can not beat yet
	body, status = httpGet(t, ts.URL+"/blocks/best")
	require.Equal(t, http.StatusOK, status)
	var best blocks.Block
	require.NoError(t, json.Unmarshal(body, &best))
	body, status = httpPost(t, ts.URL+"/masternodes/heartbeat", utils.M{
		"node":        node.String(),
		"blockNumber": best.Number,
		"blockID":     best.ID.String(),
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Too early", strings.TrimSpace(string(body)))

	body, status = httpPost(t, ts.URL+"/masternodes/validate", utils.M{
		"voter":   node.String(),
		"subject": node.String(),
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Vote for self", strings.TrimSpace(string(body)))

	body, status = httpPost(t, ts.URL+"/masternodes/denounce", utils.M{
		"owner": owner.String(),
		"node":  node.String(),
	})
	require.Equal(t, http.StatusOK, status)
	require.NoError(t, json.Unmarshal(body, &receipt))
	require.Len(t, receipt.Events, 1)
	assert.Equal(t, "Denounced", receipt.Events[0].Name)

	_, status = httpPost(t, ts.URL+"/masternodes/announce", utils.M{"unknown": 1})
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestAccounts(t *testing.T) {
	ts, _ := newTestServer(t, true)
	_, status := announce(t, ts, "18.52.86.120")
	require.Equal(t, http.StatusOK, status)

	body, status := httpGet(t, ts.URL+"/accounts/"+owner.String())
	require.Equal(t, http.StatusOK, status)
	var acc accounts.Account
	require.NoError(t, json.Unmarshal(body, &acc))
	assert.Equal(t, mn.Coins(20000), (*big.Int)(acc.Balance))
	assert.Equal(t, mn.Coins(30000), (*big.Int)(acc.Collateral))
	assert.Equal(t, mn.Coins(10000), (*big.Int)(acc.MinimumCollateral))

	_, status = httpPost(t, ts.URL+"/accounts/"+owner.String()+"/withdraw", utils.M{"amount": "0"})
	assert.Equal(t, http.StatusBadRequest, status)

	body, status = httpPost(t, ts.URL+"/accounts/"+owner.String()+"/withdraw", utils.M{
		"amount": "30000000000000000000000",
	})
	require.Equal(t, http.StatusOK, status, string(body))
	var receipt utils.Receipt
	require.NoError(t, json.Unmarshal(body, &receipt))
	require.Len(t, receipt.Events, 1)
	assert.Equal(t, "Denounced", receipt.Events[0].Name)

	body, status = httpPost(t, ts.URL+"/accounts/"+owner.String()+"/deposit", utils.M{
		"amount": "0x21e19e0c9bab2400000", // 10000 coins
	})
	require.Equal(t, http.StatusOK, status, string(body))

	body, status = httpGet(t, ts.URL+"/accounts/treasury")
	require.Equal(t, http.StatusOK, status)
	var tr accounts.Treasury
	require.NoError(t, json.Unmarshal(body, &tr))
	assert.Equal(t, 0, (*big.Int)(tr.Balance).Sign())
}

func TestBlocks(t *testing.T) {
	ts, rt := newTestServer(t, false)

	_, _, err := rt.ProduceBlock(uint64(time.Now().Unix()))
	require.NoError(t, err)

	body, status := httpGet(t, ts.URL+"/blocks/1")
	require.Equal(t, http.StatusOK, status)
	var b blocks.Block
	require.NoError(t, json.Unmarshal(body, &b))
	assert.Equal(t, uint32(1), b.Number)
	assert.Equal(t, rt.Chain().GenesisBlock().ID(), b.ParentID)
	assert.False(t, b.Superblock)
	assert.Equal(t, mn.DefaultConfig().Reward(), (*big.Int)(b.Reward))

	body, status = httpGet(t, ts.URL+"/blocks/0")
	require.Equal(t, http.StatusOK, status)
	require.NoError(t, json.Unmarshal(body, &b))
	assert.True(t, b.Superblock)

	_, status = httpGet(t, ts.URL+"/blocks/2")
	assert.Equal(t, http.StatusNotFound, status)
	_, status = httpGet(t, ts.URL+"/blocks/abc")
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestWritesDisabled(t *testing.T) {
	ts, _ := newTestServer(t, false)

	_, status := announce(t, ts, "18.52.86.120")
	assert.Equal(t, http.StatusMethodNotAllowed, status)
	_, status = httpPost(t, ts.URL+"/accounts/"+owner.String()+"/deposit", utils.M{"amount": "1"})
	assert.Equal(t, http.StatusMethodNotAllowed, status)
	_, status = httpPost(t, ts.URL+"/accounts/"+owner.String()+"/withdraw", utils.M{"amount": "1"})
	assert.Equal(t, http.StatusMethodNotAllowed, status)
	_, status = httpPost(t, ts.URL+"/masternodes/heartbeat", utils.M{})
	assert.Equal(t, http.StatusMethodNotAllowed, status)

	// reads stay available
	_, status = httpGet(t, ts.URL+"/masternodes/count")
	assert.Equal(t, http.StatusOK, status)
}

func TestSubscribeEvents(t *testing.T) {
	ts, _ := newTestServer(t, true)

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/subscriptions/event?node=" + node.String()
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	// wait until the subscription is registered server side
	time.Sleep(50 * time.Millisecond)

	_, status := announce(t, ts, "18.52.86.120")
	require.Equal(t, http.StatusOK, status)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	var ev utils.Event
	require.NoError(t, conn.ReadJSON(&ev))
	assert.Equal(t, "Announced", ev.Name)
	assert.Equal(t, node, ev.Node)
	assert.Equal(t, owner, *ev.Owner)
}
