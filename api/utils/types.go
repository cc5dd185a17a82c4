// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package utils

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common/math"
	"github.com/pkg/errors"

	"github.com/vechain/mnreg/builtin/registry"
	"github.com/vechain/mnreg/mn"
	"github.com/vechain/mnreg/runtime"
)

// Event is the JSON form of a registry event.
type Event struct {
	Name        string                `json:"name"`
	BlockNumber uint32                `json:"blockNumber"`
	BlockTime   uint64                `json:"blockTime"`
	Node        mn.Address            `json:"node"`
	Owner       *mn.Address           `json:"owner,omitempty"`
	IP          string                `json:"ip,omitempty"`
	Enode       []mn.Bytes32          `json:"enode,omitempty"`
	Collateral  *math.HexOrDecimal256 `json:"collateral,omitempty"`
}

// ConvertEvent converts a runtime event into its JSON form.
func ConvertEvent(ev *runtime.Event) *Event {
	out := &Event{
		Name:        ev.Name,
		BlockNumber: ev.BlockNumber,
		BlockTime:   ev.BlockTime,
	}
	switch payload := ev.Payload.(type) {
	case *registry.AnnouncedEvent:
		owner := payload.Owner
		out.Node = payload.Node
		out.Owner = &owner
		out.IP = registry.IPv4(payload.IPv4).String()
		out.Enode = payload.Enode[:]
		out.Collateral = (*math.HexOrDecimal256)(payload.Collateral)
	case *registry.DenouncedEvent:
		owner := payload.Owner
		out.Node = payload.Node
		out.Owner = &owner
	case *registry.HeartbeatEvent:
		out.Node = payload.Node
	}
	return out
}

// ConvertEvents converts a list of runtime events.
func ConvertEvents(events []*runtime.Event) []*Event {
	out := make([]*Event, 0, len(events))
	for _, ev := range events {
		out = append(out, ConvertEvent(ev))
	}
	return out
}

// Receipt is the outcome of a write call.
type Receipt struct {
	Events []*Event `json:"events"`
}

// ParseAmount validates an amount given in a request body.
func ParseAmount(v *math.HexOrDecimal256, field string) (*big.Int, error) {
	if v == nil {
		return nil, BadRequest(errors.New(field + ": required"))
	}
	amount := (*big.Int)(v)
	if amount.Sign() <= 0 {
		return nil, BadRequest(errors.New(field + ": must be positive"))
	}
	return new(big.Int).Set(amount), nil
}

// ParseAddress parses an address from a path variable or a body field.
func ParseAddress(s string, field string) (mn.Address, error) {
	addr, err := mn.ParseAddress(s)
	if err != nil {
		return mn.Address{}, BadRequest(errors.WithMessage(err, field))
	}
	return *addr, nil
}
