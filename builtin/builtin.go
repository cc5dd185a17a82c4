// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package builtin

import (
	"github.com/vechain/mnreg/builtin/collateral"
	"github.com/vechain/mnreg/builtin/registry"
	"github.com/vechain/mnreg/builtin/treasury"
	"github.com/vechain/mnreg/mn"
	"github.com/vechain/mnreg/state"
	"github.com/vechain/mnreg/xenv"
)

// Builtin contracts binding.
var (
	Registry   = &registryContract{newContract("MasternodeRegistry")}
	Collateral = &collateralContract{newContract("MasternodeToken")}
	Treasury   = &treasuryContract{newContract("Treasury")}
)

type (
	registryContract   struct{ *contract }
	collateralContract struct{ *contract }
	treasuryContract   struct{ *contract }
)

func (c *collateralContract) WithState(state *state.State, cfg *mn.Config) *collateral.Collateral {
	return collateral.New(c.Address, state, cfg)
}

func (t *treasuryContract) WithState(state *state.State) *treasury.Treasury {
	return treasury.New(t.Address, state)
}

// WithEnv binds the registry to the env of the executing call, wired to the
// collateral ledger and the treasury over the same state.
func (r *registryContract) WithEnv(env *xenv.Environment, cfg *mn.Config) *registry.Registry {
	return registry.New(
		r.Address,
		env,
		cfg,
		Collateral.WithState(env.State(), cfg),
		Treasury.WithState(env.State()),
	)
}
