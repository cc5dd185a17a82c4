// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package solidity

import (
	"math/big"

	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/vechain/mnreg/mn"
)

var (
	ErrOverflow  = errors.New("uint256 overflow")
	ErrUnderflow = errors.New("uint256 underflow")
)

// Uint256 is a wrapper for storage and retrieval of an uint256, similar to an uint256 state
// variable of a smart contract. Arithmetic is checked: results leaving the uint256 range are rejected
// and the slot is left untouched.
type Uint256 struct {
	context *Context
	pos     mn.Bytes32
}

func NewUint256(context *Context, pos mn.Bytes32) *Uint256 {
	return &Uint256{context: context, pos: pos}
}

func (u *Uint256) get() (*uint256.Int, error) {
	storage, err := u.context.load(u.pos)
	if err != nil {
		return nil, err
	}
	return new(uint256.Int).SetBytes32(storage[:]), nil
}

func (u *Uint256) set(value *uint256.Int) {
	u.context.store(u.pos, value.Bytes32())
}

func (u *Uint256) Get() (*big.Int, error) {
	value, err := u.get()
	if err != nil {
		return nil, err
	}
	return value.ToBig(), nil
}

func (u *Uint256) Set(value *big.Int) error {
	v, overflow := uint256.FromBig(value)
	if overflow || value.Sign() < 0 {
		return ErrOverflow
	}
	u.set(v)
	return nil
}

func (u *Uint256) Add(value *big.Int) error {
	return u.apply(value, func(cur, delta *uint256.Int) (*uint256.Int, error) {
		res, overflow := new(uint256.Int).AddOverflow(cur, delta)
		if overflow {
			return nil, ErrOverflow
		}
		return res, nil
	})
}

func (u *Uint256) Sub(value *big.Int) error {
	return u.apply(value, func(cur, delta *uint256.Int) (*uint256.Int, error) {
		res, underflow := new(uint256.Int).SubOverflow(cur, delta)
		if underflow {
			return nil, ErrUnderflow
		}
		return res, nil
	})
}

func (u *Uint256) apply(value *big.Int, op func(cur, delta *uint256.Int) (*uint256.Int, error)) error {
	delta, overflow := uint256.FromBig(value)
	if overflow || value.Sign() < 0 {
		return ErrOverflow
	}
	cur, err := u.get()
	if err != nil {
		return err
	}
	res, err := op(cur, delta)
	if err != nil {
		return err
	}
	u.set(res)
	return nil
}
