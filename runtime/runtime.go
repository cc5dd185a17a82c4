// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package runtime

import (
	"context"
	"math/big"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/event"
	"github.com/pkg/errors"

	"github.com/vechain/mnreg/builtin"
	"github.com/vechain/mnreg/builtin/registry"
	"github.com/vechain/mnreg/builtin/reverts"
	"github.com/vechain/mnreg/chain"
	"github.com/vechain/mnreg/co"
	"github.com/vechain/mnreg/log"
	"github.com/vechain/mnreg/mn"
	"github.com/vechain/mnreg/state"
	"github.com/vechain/mnreg/xenv"
)

var logger = log.WithContext("pkg", "runtime")

// Event is a registry event along with the block it was emitted in.
type Event struct {
	BlockNumber uint32
	BlockTime   uint64
	Name        string
	Payload     xenv.Event
}

// Runtime executes registry operations one at a time against the pending block
// on top of the best block of the chain.
type Runtime struct {
	repo     *chain.Repository
	state    *state.State
	cfg      *mn.Config
	schedule *registry.Schedule
	now      func() uint64

	mu      sync.Mutex
	feed    event.Feed
	scope   event.SubscriptionScope
	pending chan []*Event
	goes    *co.Goes
}

// New creates a runtime and starts its event dispatcher.
func New(repo *chain.Repository, st *state.State, cfg *mn.Config) *Runtime {
	rt := &Runtime{
		repo:     repo,
		state:    st,
		cfg:      cfg,
		schedule: registry.NewSchedule(cfg),
		now:      func() uint64 { return uint64(time.Now().Unix()) },
		pending:  make(chan []*Event, 256),
		goes:     co.NewGoes(context.Background()),
	}
	rt.goes.Go(rt.dispatchLoop)
	return rt
}

// SetClock replaces the wall clock used to time pending blocks.
func (rt *Runtime) SetClock(now func() uint64) {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	rt.now = now
}

// Close stops event delivery and releases subscriptions.
func (rt *Runtime) Close() {
	rt.goes.Stop()
	rt.scope.Close()
}

// SubscribeEvent delivers events of successful operations to ch, in execution order.
func (rt *Runtime) SubscribeEvent(ch chan *Event) event.Subscription {
	return rt.scope.Track(rt.feed.Subscribe(ch))
}

// Chain returns the underlying chain.
func (rt *Runtime) Chain() *chain.Repository {
	return rt.repo
}

// Schedule returns the reward schedule.
func (rt *Runtime) Schedule() *registry.Schedule {
	return rt.schedule
}

func (rt *Runtime) dispatchLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case events := <-rt.pending:
			for _, ev := range events {
				rt.feed.Send(ev)
			}
		}
	}
}

// pendingContext returns the block context operations execute in.
func (rt *Runtime) pendingContext() *xenv.BlockContext {
	best := rt.repo.BestBlock()
	now := rt.now()
	if now <= best.Time() {
		now = best.Time() + 1
	}
	return &xenv.BlockContext{Number: best.Number() + 1, Time: now}
}

// execute runs fn atomically: state changes are reverted on error, unless the error demands
// them to be kept, and committed otherwise.
func (rt *Runtime) execute(op string, caller mn.Address, fn func(env *xenv.Environment) error) (events []*Event, err error) {
	start := time.Now()
	defer func() {
		status := "success"
		if err != nil {
			status = "reverted"
		}
		metricOpCount().AddWithLabel(1, map[string]string{"op": op, "status": status})
		metricOpDuration().ObserveWithLabels(time.Since(start).Milliseconds(), map[string]string{"op": op})
	}()

	rt.mu.Lock()
	defer rt.mu.Unlock()

	return rt.executeLocked(op, caller, rt.pendingContext(), fn)
}

func (rt *Runtime) executeLocked(op string, caller mn.Address, blockCtx *xenv.BlockContext, fn func(env *xenv.Environment) error) ([]*Event, error) {
	env := xenv.New(rt.repo, rt.state, blockCtx, caller)
	checkpoint := rt.state.NewCheckpoint()

	opErr := fn(env)
	if opErr != nil && !reverts.KeepsState(opErr) {
		rt.state.RevertTo(checkpoint)
		logger.Debug("operation reverted", "op", op, "caller", caller, "err", opErr)
		return nil, opErr
	}
	if err := rt.state.Commit(); err != nil {
		return nil, errors.Wrap(err, "commit state")
	}

	events := make([]*Event, 0, len(env.Events()))
	for _, ev := range env.Events() {
		events = append(events, &Event{
			BlockNumber: blockCtx.Number,
			BlockTime:   blockCtx.Time,
			Name:        ev.EventName(),
			Payload:     ev,
		})
	}
	if len(events) > 0 {
		rt.pending <- events
		rt.updateGauges()
	}
	return events, opErr
}

func (rt *Runtime) updateGauges() {
	env := xenv.New(rt.repo, rt.state, rt.pendingContext(), mn.Address{})
	stats, err := builtin.Registry.WithEnv(env, rt.cfg).Count()
	if err != nil {
		logger.Warn("failed to read stats", "err", err)
		return
	}
	metricActiveNodes().Set(int64(stats.Active))
	metricActiveCollateral().Set(new(big.Int).Div(stats.ActiveCollateral, mn.Ether).Int64())
}

// view runs a read-only fn against the pending block.
func (rt *Runtime) view(fn func(env *xenv.Environment) error) error {
	rt.mu.Lock()
	defer rt.mu.Unlock()

	env := xenv.New(rt.repo, rt.state, rt.pendingContext(), mn.Address{})
	checkpoint := rt.state.NewCheckpoint()
	defer rt.state.RevertTo(checkpoint)
	return fn(env)
}

func (rt *Runtime) registry(env *xenv.Environment) *registry.Registry {
	return builtin.Registry.WithEnv(env, rt.cfg)
}
