// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package co

import (
	"context"
	"sync"
)

// Goes runs goroutines sharing a cancelable context and manages their life-cycle.
type Goes struct {
	wg     sync.WaitGroup
	ctx    context.Context
	cancel context.CancelFunc
}

// NewGoes creates a Goes whose goroutines observe ctx.
func NewGoes(ctx context.Context) *Goes {
	ctx, cancel := context.WithCancel(ctx)
	return &Goes{ctx: ctx, cancel: cancel}
}

// Go run f in go routine.
func (g *Goes) Go(f func(ctx context.Context)) {
	g.wg.Add(1)
	go func() {
		defer g.wg.Done()
		f(g.ctx)
	}()
}

// Stop cancels the shared context and waits for all go routines to return.
func (g *Goes) Stop() {
	g.cancel()
	g.wg.Wait()
}

// Done return the done channel for exiting of all go routines.
func (g *Goes) Done() <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		g.wg.Wait()
	}()
	return done
}
