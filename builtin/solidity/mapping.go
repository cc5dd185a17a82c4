// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package solidity

import (
	"reflect"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/vechain/mnreg/mn"
)

type Key interface {
	Bytes() []byte
}

// Mapping is a key/value storage abstraction for built-in contracts, similar to the mapping in Solidity.
// Values are rlp encoded, an absent key decodes to the zero value of V.
type Mapping[K Key, V any] struct {
	context *Context
	basePos mn.Bytes32
}

func NewMapping[K Key, V any](context *Context, pos mn.Bytes32) *Mapping[K, V] {
	return &Mapping[K, V]{context: context, basePos: pos}
}

func (m *Mapping[K, V]) position(key K) mn.Bytes32 {
	return mn.Blake2b(key.Bytes(), m.basePos.Bytes())
}

func (m *Mapping[K, V]) Get(key K) (value V, err error) {
	err = m.context.decode(m.position(key), func(raw []byte) error {
		if reflect.ValueOf(value).Kind() == reflect.Ptr {
			value = reflect.New(reflect.TypeOf(value).Elem()).Interface().(V)
		}
		if len(raw) == 0 {
			return nil
		}
		return rlp.DecodeBytes(raw, &value)
	})
	return
}

// Exists reports whether a value is stored under key.
func (m *Mapping[K, V]) Exists(key K) (bool, error) {
	raw, err := m.context.loadRaw(m.position(key))
	if err != nil {
		return false, err
	}
	return len(raw) > 0, nil
}

func (m *Mapping[K, V]) Set(key K, value V) error {
	return m.context.encode(m.position(key), func() ([]byte, error) {
		return rlp.EncodeToBytes(value)
	})
}

// Delete clears the value stored under key.
func (m *Mapping[K, V]) Delete(key K) {
	m.context.clear(m.position(key))
}
