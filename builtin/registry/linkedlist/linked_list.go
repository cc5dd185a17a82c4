// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package linkedlist

import (
	"math/big"

	"github.com/vechain/mnreg/builtin/solidity"
	"github.com/vechain/mnreg/mn"
)

// LinkedList is a persistent doubly linked list of addresses.
// The zero address terminates the list and can not be a member.
type LinkedList struct {
	head  *solidity.Address
	tail  *solidity.Address
	count *solidity.Uint256
	next  *solidity.Mapping[mn.Address, mn.Address]
	prev  *solidity.Mapping[mn.Address, mn.Address]
}

// NewLinkedList creates a list whose pointers live under the given slots.
func NewLinkedList(sctx *solidity.Context, headPos, tailPos, countPos mn.Bytes32) *LinkedList {
	return &LinkedList{
		head:  solidity.NewAddress(sctx, headPos),
		tail:  solidity.NewAddress(sctx, tailPos),
		count: solidity.NewUint256(sctx, countPos),
		next:  solidity.NewMapping[mn.Address, mn.Address](sctx, headPos),
		prev:  solidity.NewMapping[mn.Address, mn.Address](sctx, tailPos),
	}
}

// Add appends an address to the end of the list.
// Callers must not add an address that is already a member.
func (l *LinkedList) Add(address mn.Address) error {
	oldTail, err := l.tail.Get()
	if err != nil {
		return err
	}

	if oldTail.IsZero() {
		// the list is currently empty, set this entry to head & tail
		l.head.Set(&address)
		l.tail.Set(&address)
		return l.count.Add(big.NewInt(1))
	}

	if err := l.next.Set(oldTail, address); err != nil {
		return err
	}
	if err := l.prev.Set(address, oldTail); err != nil {
		return err
	}
	l.tail.Set(&address)

	return l.count.Add(big.NewInt(1))
}

// Remove unlinks an address from anywhere in the list, reconnecting its neighbours.
// It returns false if the address is not a member.
func (l *LinkedList) Remove(address mn.Address) (bool, error) {
	if address.IsZero() {
		return false, nil
	}

	contains, err := l.Contains(address)
	if err != nil || !contains {
		return false, err
	}

	prev, err := l.prev.Get(address)
	if err != nil {
		return false, err
	}
	next, err := l.next.Get(address)
	if err != nil {
		return false, err
	}

	if !prev.IsZero() {
		if err := l.next.Set(prev, next); err != nil {
			return false, err
		}
	} else {
		l.head.Set(&next)
	}

	if !next.IsZero() {
		if err := l.prev.Set(next, prev); err != nil {
			return false, err
		}
	} else {
		l.tail.Set(&prev)
	}

	// clear the removed node's pointers
	l.next.Delete(address)
	l.prev.Delete(address)

	return true, l.count.Sub(big.NewInt(1))
}

// Contains reports whether address is a member of the list.
func (l *LinkedList) Contains(address mn.Address) (bool, error) {
	if address.IsZero() {
		return false, nil
	}
	prev, err := l.prev.Get(address)
	if err != nil {
		return false, err
	}
	if !prev.IsZero() {
		return true, nil
	}
	head, err := l.head.Get()
	if err != nil {
		return false, err
	}
	return head == address, nil
}

// Len returns the number of members.
func (l *LinkedList) Len() (uint64, error) {
	count, err := l.count.Get()
	if err != nil {
		return 0, err
	}
	return count.Uint64(), nil
}

// Iter traverses the list from head to tail, calling callback for each address until completion or error.
// The callback may remove the address it is visiting.
func (l *LinkedList) Iter(callback func(mn.Address) error) error {
	ptr, err := l.head.Get()
	if err != nil {
		return err
	}

	for !ptr.IsZero() {
		next, err := l.next.Get(ptr)
		if err != nil {
			return err
		}
		if err := callback(ptr); err != nil {
			return err
		}
		ptr = next
	}
	return nil
}

// Next returns the successor address, or zero address at the tail.
func (l *LinkedList) Next(address mn.Address) (mn.Address, error) {
	return l.next.Get(address)
}

// Prev returns the predecessor address, or zero address at the head.
func (l *LinkedList) Prev(address mn.Address) (mn.Address, error) {
	return l.prev.Get(address)
}

// Head returns the oldest member.
func (l *LinkedList) Head() (mn.Address, error) {
	return l.head.Get()
}

// Tail returns the newest member.
func (l *LinkedList) Tail() (mn.Address, error) {
	return l.tail.Get()
}
