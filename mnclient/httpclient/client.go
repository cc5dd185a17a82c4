// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package httpclient provides an HTTP client to interact with a masternode registry node.
// It offers methods to read masternodes, accounts and blocks, and to submit registry
// operations when the node has write endpoints enabled.
package httpclient

import (
	"encoding/json"
	"fmt"
	"math/big"
	"net/http"
	"strconv"

	"github.com/ethereum/go-ethereum/common/math"

	"github.com/vechain/mnreg/api/accounts"
	"github.com/vechain/mnreg/api/blocks"
	"github.com/vechain/mnreg/api/masternodes"
	"github.com/vechain/mnreg/api/utils"
	"github.com/vechain/mnreg/mn"
)

const BestRevision = "best"

// Client represents the HTTP client of a registry node.
type Client struct {
	url string
	c   *http.Client
}

// New creates a new Client with the provided URL.
func New(url string) *Client {
	return NewWithHTTP(url, http.DefaultClient)
}

func NewWithHTTP(url string, c *http.Client) *Client {
	return &Client{
		url: url,
		c:   c,
	}
}

func decode[T any](body []byte, what string) (*T, error) {
	var v T
	if err := json.Unmarshal(body, &v); err != nil {
		return nil, fmt.Errorf("unable to unmarshal %s - %w", what, err)
	}
	return &v, nil
}

// GetMasternodes lists the active masternodes in queue order.
func (c *Client) GetMasternodes() ([]mn.Address, error) {
	body, err := c.httpGET(c.url + "/masternodes")
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve masternodes - %w", err)
	}
	nodes, err := decode[[]mn.Address](body, "masternodes")
	if err != nil {
		return nil, err
	}
	return *nodes, nil
}

// GetCount retrieves the registry aggregates.
func (c *Client) GetCount() (*masternodes.Count, error) {
	body, err := c.httpGET(c.url + "/masternodes/count")
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve count - %w", err)
	}
	return decode[masternodes.Count](body, "count")
}

// GetMasternode retrieves the record of an active masternode.
func (c *Client) GetMasternode(node mn.Address) (*masternodes.Masternode, error) {
	body, err := c.httpGET(c.url + "/masternodes/" + node.String())
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve masternode - %w", err)
	}
	return decode[masternodes.Masternode](body, "masternode")
}

// IsValid reports whether the masternode is active and live.
func (c *Client) IsValid(node mn.Address) (bool, error) {
	body, err := c.httpGET(c.url + "/masternodes/" + node.String() + "/valid")
	if err != nil {
		return false, fmt.Errorf("unable to retrieve validity - %w", err)
	}
	res, err := decode[masternodes.Validity](body, "validity")
	if err != nil {
		return false, err
	}
	return res.Valid, nil
}

// GetOwner retrieves the masternode announced by owner.
func (c *Client) GetOwner(owner mn.Address) (*masternodes.Masternode, error) {
	body, err := c.httpGET(c.url + "/masternodes/owners/" + owner.String())
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve owner - %w", err)
	}
	return decode[masternodes.Masternode](body, "masternode")
}

// GetAccount retrieves the free balance and collateral of addr.
func (c *Client) GetAccount(addr mn.Address) (*accounts.Account, error) {
	body, err := c.httpGET(c.url + "/accounts/" + addr.String())
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve account - %w", err)
	}
	return decode[accounts.Account](body, "account")
}

// GetTreasury retrieves the treasury funds.
func (c *Client) GetTreasury() (*accounts.Treasury, error) {
	body, err := c.httpGET(c.url + "/accounts/treasury")
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve treasury - %w", err)
	}
	return decode[accounts.Treasury](body, "treasury")
}

// GetBlock retrieves a block by number, or the best block with BestRevision.
func (c *Client) GetBlock(revision string) (*blocks.Block, error) {
	body, err := c.httpGET(c.url + "/blocks/" + revision)
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve block - %w", err)
	}
	return decode[blocks.Block](body, "block")
}

// GetBlockByNumber retrieves a block by number.
func (c *Client) GetBlockByNumber(num uint32) (*blocks.Block, error) {
	return c.GetBlock(strconv.FormatUint(uint64(num), 10))
}

func (c *Client) post(path string, payload any, what string) ([]*utils.Event, error) {
	body, err := c.httpPOST(c.url+path, payload)
	if err != nil {
		return nil, fmt.Errorf("unable to %s - %w", what, err)
	}
	receipt, err := decode[utils.Receipt](body, "receipt")
	if err != nil {
		return nil, err
	}
	return receipt.Events, nil
}

// Announce announces node on behalf of its owner.
func (c *Client) Announce(req *masternodes.AnnounceRequest) ([]*utils.Event, error) {
	return c.post("/masternodes/announce", req, "announce")
}

// Denounce removes node on behalf of its owner.
func (c *Client) Denounce(owner, node mn.Address) ([]*utils.Event, error) {
	return c.post("/masternodes/denounce", &masternodes.DenounceRequest{Owner: owner, Node: node}, "denounce")
}

// Heartbeat submits a liveness proof of node.
func (c *Client) Heartbeat(req *masternodes.HeartbeatRequest) ([]*utils.Event, error) {
	return c.post("/masternodes/heartbeat", req, "heartbeat")
}

// Validate casts a vote of voter for subject.
func (c *Client) Validate(voter, subject mn.Address) ([]*utils.Event, error) {
	return c.post("/masternodes/validate", &masternodes.ValidateRequest{Voter: voter, Subject: subject}, "validate")
}

// Deposit locks amount of collateral for addr.
func (c *Client) Deposit(addr mn.Address, amount *big.Int) ([]*utils.Event, error) {
	req := &accounts.AmountRequest{Amount: (*math.HexOrDecimal256)(amount)}
	return c.post("/accounts/"+addr.String()+"/deposit", req, "deposit")
}

// Withdraw releases amount of collateral of addr.
func (c *Client) Withdraw(addr mn.Address, amount *big.Int) ([]*utils.Event, error) {
	req := &accounts.AmountRequest{Amount: (*math.HexOrDecimal256)(amount)}
	return c.post("/accounts/"+addr.String()+"/withdraw", req, "withdraw")
}
