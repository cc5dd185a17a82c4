// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"bytes"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"

	"github.com/vechain/mnreg/kv"
	"github.com/vechain/mnreg/mn"
	"github.com/vechain/mnreg/stackedmap"
)

const (
	storagePrefix = byte('s')
	balancePrefix = byte('b')
)

// Error is the error caused by state access failure.
type Error struct {
	cause error
}

func (e *Error) Error() string {
	return fmt.Sprintf("state: %v", e.cause)
}

func (e *Error) Unwrap() error {
	return e.cause
}

// ErrInsufficientBalance is returned by SubBalance when the account can not cover the amount.
var ErrInsufficientBalance = errors.New("insufficient balance")

type (
	storageKey struct {
		addr mn.Address
		key  mn.Bytes32
	}
	balanceKey mn.Address
)

// State manages account balances and contract storage on top of a kv store.
// Every change is journaled and only reaches the store on Commit.
type State struct {
	store kv.Store
	sm    *stackedmap.StackedMap
}

// New create state object.
func New(store kv.Store) *State {
	s := &State{store: store}
	s.reset()
	return s
}

func (s *State) reset() {
	s.sm = stackedmap.New(s.storeGetter)
}

// storeGetter implements stackedmap.MapGetter.
func (s *State) storeGetter(key any) (value any, exist bool, err error) {
	switch k := key.(type) {
	case storageKey:
		raw, err := s.load(k.dbKey())
		if err != nil {
			return nil, false, err
		}
		return rlp.RawValue(raw), len(raw) > 0, nil
	case balanceKey:
		raw, err := s.load(k.dbKey())
		if err != nil {
			return nil, false, err
		}
		return new(big.Int).SetBytes(raw), len(raw) > 0, nil
	}
	panic(fmt.Errorf("unexpected key type %T", key))
}

func (s *State) load(key []byte) ([]byte, error) {
	raw, err := s.store.Get(key)
	if err != nil {
		if s.store.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return raw, nil
}

func (k storageKey) dbKey() []byte {
	b := make([]byte, 0, 1+mn.AddressLength+32)
	b = append(b, storagePrefix)
	b = append(b, k.addr[:]...)
	return append(b, k.key[:]...)
}

func (k balanceKey) dbKey() []byte {
	return append([]byte{balancePrefix}, k[:]...)
}

// GetBalance returns balance for the given address.
func (s *State) GetBalance(addr mn.Address) (*big.Int, error) {
	v, _, err := s.sm.Get(balanceKey(addr))
	if err != nil {
		return nil, &Error{err}
	}
	return new(big.Int).Set(v.(*big.Int)), nil
}

// SetBalance set balance for the given address.
func (s *State) SetBalance(addr mn.Address, balance *big.Int) error {
	if balance.Sign() < 0 {
		return &Error{errors.New("negative balance")}
	}
	s.sm.Put(balanceKey(addr), new(big.Int).Set(balance))
	return nil
}

// AddBalance credits amount to the given address.
func (s *State) AddBalance(addr mn.Address, amount *big.Int) error {
	bal, err := s.GetBalance(addr)
	if err != nil {
		return err
	}
	return s.SetBalance(addr, bal.Add(bal, amount))
}

// SubBalance debits amount from the given address.
func (s *State) SubBalance(addr mn.Address, amount *big.Int) error {
	bal, err := s.GetBalance(addr)
	if err != nil {
		return err
	}
	if bal.Cmp(amount) < 0 {
		return ErrInsufficientBalance
	}
	return s.SetBalance(addr, bal.Sub(bal, amount))
}

// GetStorage returns storage value for the given address and key.
func (s *State) GetStorage(addr mn.Address, key mn.Bytes32) (mn.Bytes32, error) {
	raw, err := s.GetRawStorage(addr, key)
	if err != nil {
		return mn.Bytes32{}, err
	}
	if len(raw) == 0 {
		return mn.Bytes32{}, nil
	}
	kind, content, _, err := rlp.Split(raw)
	if err != nil {
		return mn.Bytes32{}, &Error{err}
	}
	if kind == rlp.List {
		// customized storage value, return hash of raw data
		return mn.Blake2b(raw), nil
	}
	return mn.BytesToBytes32(content), nil
}

// SetStorage set storage value for the given address and key.
func (s *State) SetStorage(addr mn.Address, key, value mn.Bytes32) {
	if value.IsZero() {
		s.SetRawStorage(addr, key, nil)
		return
	}
	v, _ := rlp.EncodeToBytes(bytes.TrimLeft(value[:], "\x00"))
	s.SetRawStorage(addr, key, v)
}

// GetRawStorage returns storage value in rlp raw for given address and key.
func (s *State) GetRawStorage(addr mn.Address, key mn.Bytes32) (rlp.RawValue, error) {
	data, _, err := s.sm.Get(storageKey{addr, key})
	if err != nil {
		return nil, &Error{err}
	}
	return data.(rlp.RawValue), nil
}

// SetRawStorage set storage value in rlp raw.
func (s *State) SetRawStorage(addr mn.Address, key mn.Bytes32, raw rlp.RawValue) {
	s.sm.Put(storageKey{addr, key}, raw)
}

// EncodeStorage set storage value encoded by given enc method.
// Error returned by enc will be absorbed by State instance.
func (s *State) EncodeStorage(addr mn.Address, key mn.Bytes32, enc func() ([]byte, error)) error {
	raw, err := enc()
	if err != nil {
		return &Error{err}
	}
	s.SetRawStorage(addr, key, raw)
	return nil
}

// DecodeStorage get and decode storage value.
// Error returned by dec will be absorbed by State instance.
func (s *State) DecodeStorage(addr mn.Address, key mn.Bytes32, dec func([]byte) error) error {
	raw, err := s.GetRawStorage(addr, key)
	if err != nil {
		return err
	}
	if err := dec(raw); err != nil {
		return &Error{err}
	}
	return nil
}

// NewCheckpoint makes a checkpoint of current state.
// It returns revision of the checkpoint.
func (s *State) NewCheckpoint() int {
	return s.sm.Push()
}

// RevertTo revert to checkpoint specified by revision.
func (s *State) RevertTo(revision int) {
	s.sm.PopTo(revision)
	if s.sm.Depth() == 0 {
		s.sm.Push()
	}
}

// Changes returns the number of distinct keys modified since the last commit.
func (s *State) Changes() int {
	seen := make(map[any]struct{})
	s.sm.Journal(func(k, _ any) bool {
		seen[k] = struct{}{}
		return true
	})
	return len(seen)
}

// Commit writes all journaled changes into the store in one atomic bulk,
// then starts a fresh journal.
func (s *State) Commit() error {
	latest := make(map[any]any)
	var order []any
	s.sm.Journal(func(k, v any) bool {
		if _, ok := latest[k]; !ok {
			order = append(order, k)
		}
		latest[k] = v
		return true
	})
	if len(order) == 0 {
		return nil
	}

	bulk := s.store.Bulk()
	for _, k := range order {
		var err error
		switch key := k.(type) {
		case storageKey:
			raw := latest[k].(rlp.RawValue)
			if len(raw) == 0 {
				err = bulk.Delete(key.dbKey())
			} else {
				err = bulk.Put(key.dbKey(), raw)
			}
		case balanceKey:
			bal := latest[k].(*big.Int)
			if bal.Sign() == 0 {
				err = bulk.Delete(key.dbKey())
			} else {
				err = bulk.Put(key.dbKey(), bal.Bytes())
			}
		}
		if err != nil {
			return &Error{err}
		}
	}
	if err := bulk.Write(); err != nil {
		return &Error{errors.Wrap(err, "commit")}
	}
	s.reset()
	return nil
}
