// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package solidity

import (
	"github.com/vechain/mnreg/mn"
)

// Address is a wrapper for storage and retrieval of an address, similar to an address
// state variable of a smart contract.
type Address struct {
	context *Context
	pos     mn.Bytes32
}

func NewAddress(context *Context, pos mn.Bytes32) *Address {
	return &Address{context: context, pos: pos}
}

func (a *Address) Get() (mn.Address, error) {
	storage, err := a.context.load(a.pos)
	if err != nil {
		return mn.Address{}, err
	}
	return mn.BytesToAddress(storage.Bytes()), nil
}

// Set stores addr, a nil addr clears the slot.
func (a *Address) Set(addr *mn.Address) {
	var storage mn.Bytes32
	if addr != nil {
		storage = mn.BytesToBytes32(addr.Bytes())
	}
	a.context.store(a.pos, storage)
}
