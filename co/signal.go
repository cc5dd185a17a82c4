// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package co

import (
	"sync"
)

// Signal broadcasts the occurrence of an event to any number of waiters.
// Unlike sync.Cond it is channel based, so waiting can be combined with select.
type Signal struct {
	l  sync.Mutex
	ch chan struct{}
}

// Broadcast wakes all goroutines waiting on s.
func (s *Signal) Broadcast() {
	s.l.Lock()
	defer s.l.Unlock()

	if s.ch != nil {
		close(s.ch)
	}
	s.ch = make(chan struct{})
}

// C returns a channel closed on the next broadcast.
func (s *Signal) C() <-chan struct{} {
	s.l.Lock()
	defer s.l.Unlock()

	if s.ch == nil {
		s.ch = make(chan struct{})
	}
	return s.ch
}
