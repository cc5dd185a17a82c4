// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package solidity lays typed values out in the storage of a built-in account,
// one 32-byte slot per value, mappings hashed off a base slot.
package solidity

import (
	"github.com/vechain/mnreg/mn"
	"github.com/vechain/mnreg/state"
)

// Context is the storage of one built-in account.
type Context struct {
	address mn.Address
	state   *state.State
}

func NewContext(address mn.Address, state *state.State) *Context {
	return &Context{address, state}
}

func (c *Context) Address() mn.Address { return c.address }

func (c *Context) State() *state.State { return c.state }

func (c *Context) load(slot mn.Bytes32) (mn.Bytes32, error) {
	return c.state.GetStorage(c.address, slot)
}

func (c *Context) store(slot, value mn.Bytes32) {
	c.state.SetStorage(c.address, slot, value)
}

// loadRaw reads a variable length value. Empty means unset.
func (c *Context) loadRaw(slot mn.Bytes32) ([]byte, error) {
	return c.state.GetRawStorage(c.address, slot)
}

func (c *Context) decode(slot mn.Bytes32, dec func([]byte) error) error {
	return c.state.DecodeStorage(c.address, slot, dec)
}

func (c *Context) encode(slot mn.Bytes32, enc func() ([]byte, error)) error {
	return c.state.EncodeStorage(c.address, slot, enc)
}

func (c *Context) clear(slot mn.Bytes32) {
	c.state.SetRawStorage(c.address, slot, nil)
}
