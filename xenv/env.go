// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package xenv

import (
	"github.com/vechain/mnreg/mn"
	"github.com/vechain/mnreg/state"
)

// BlockContext block context.
type BlockContext struct {
	Number uint32
	Time   uint64
}

// Seeker looks up ids of past blocks.
type Seeker interface {
	GetBlockID(num uint32) (mn.Bytes32, error)
}

// Event is a record emitted by a built-in contract.
type Event interface {
	EventName() string
}

// Environment an env to execute native method.
type Environment struct {
	seeker   Seeker
	state    *state.State
	blockCtx *BlockContext
	caller   mn.Address
	events   []Event
}

// New create a new env.
func New(
	seeker Seeker,
	state *state.State,
	blockCtx *BlockContext,
	caller mn.Address,
) *Environment {
	return &Environment{
		seeker:   seeker,
		state:    state,
		blockCtx: blockCtx,
		caller:   caller,
	}
}

func (env *Environment) Seeker() Seeker              { return env.seeker }
func (env *Environment) State() *state.State         { return env.state }
func (env *Environment) BlockContext() *BlockContext { return env.blockCtx }
func (env *Environment) Caller() mn.Address          { return env.caller }

// Log appends an event to the env.
func (env *Environment) Log(ev Event) {
	env.events = append(env.events, ev)
}

// Events returns events in emission order.
func (env *Environment) Events() []Event {
	return env.events
}
