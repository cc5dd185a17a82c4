// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package masternodes

import (
	"math/big"
	"net"
	"net/http"

	"github.com/ethereum/go-ethereum/common/math"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/vechain/mnreg/api/utils"
	"github.com/vechain/mnreg/builtin/registry"
	"github.com/vechain/mnreg/runtime"
)

type Masternodes struct {
	rt     *runtime.Runtime
	writes bool
}

// New creates the masternodes API. Write endpoints refuse requests unless writes is set.
func New(rt *runtime.Runtime, writes bool) *Masternodes {
	return &Masternodes{
		rt,
		writes,
	}
}

func (m *Masternodes) handleEnumerate(w http.ResponseWriter, _ *http.Request) error {
	nodes, err := m.rt.Enumerate()
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, nodes)
}

func (m *Masternodes) handleCount(w http.ResponseWriter, _ *http.Request) error {
	stats, err := m.rt.Count()
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, &Count{
		Active:           stats.Active,
		Total:            stats.Total,
		ActiveCollateral: (*math.HexOrDecimal256)(stats.ActiveCollateral),
		TotalCollateral:  (*math.HexOrDecimal256)(stats.TotalCollateral),
		MaxOfAllTimes:    (*math.HexOrDecimal256)(stats.MaxOfAllTimes),
	})
}

func (m *Masternodes) handleGetMasternode(w http.ResponseWriter, req *http.Request) error {
	node, err := utils.ParseAddress(mux.Vars(req)["node"], "node")
	if err != nil {
		return err
	}
	entry, err := m.rt.Info(node)
	if err != nil {
		return utils.HandleRevert(err)
	}
	return utils.WriteJSON(w, convertMasternode(node, entry))
}

func (m *Masternodes) handleIsValid(w http.ResponseWriter, req *http.Request) error {
	node, err := utils.ParseAddress(mux.Vars(req)["node"], "node")
	if err != nil {
		return err
	}
	valid, err := m.rt.IsValid(node)
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, &Validity{valid})
}

func (m *Masternodes) handleGetOwner(w http.ResponseWriter, req *http.Request) error {
	owner, err := utils.ParseAddress(mux.Vars(req)["owner"], "owner")
	if err != nil {
		return err
	}
	node, entry, err := m.rt.OwnerInfo(owner)
	if err != nil {
		return utils.HandleRevert(err)
	}
	return utils.WriteJSON(w, convertMasternode(node, entry))
}

func writeReceipt(w http.ResponseWriter, events []*runtime.Event, err error) error {
	if err != nil {
		return utils.HandleRevert(err)
	}
	return utils.WriteJSON(w, &utils.Receipt{Events: utils.ConvertEvents(events)})
}

func (m *Masternodes) handleAnnounce(w http.ResponseWriter, req *http.Request) error {
	var body AnnounceRequest
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	ip := net.ParseIP(body.IP)
	if ip == nil {
		return utils.BadRequest(errors.New("ip: invalid format"))
	}
	packed, ok := registry.PackIPv4(ip)
	if !ok {
		return utils.BadRequest(errors.New("ip: not an IPv4 address"))
	}
	events, err := m.rt.Announce(body.Owner, body.Node, packed, registry.Enode(body.Enode))
	return writeReceipt(w, events, err)
}

func (m *Masternodes) handleDenounce(w http.ResponseWriter, req *http.Request) error {
	var body DenounceRequest
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	events, err := m.rt.Denounce(body.Owner, body.Node)
	return writeReceipt(w, events, err)
}

func (m *Masternodes) handleHeartbeat(w http.ResponseWriter, req *http.Request) error {
	var body HeartbeatRequest
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	events, err := m.rt.Heartbeat(body.Node, body.BlockNumber, body.BlockID, (*big.Int)(body.SwFeatures))
	return writeReceipt(w, events, err)
}

func (m *Masternodes) handleValidate(w http.ResponseWriter, req *http.Request) error {
	var body ValidateRequest
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	events, err := m.rt.Validate(body.Voter, body.Subject)
	return writeReceipt(w, events, err)
}

func (m *Masternodes) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("").
		Methods(http.MethodGet).
		Name("GET /masternodes").
		HandlerFunc(utils.WrapHandlerFunc(m.handleEnumerate))
	sub.Path("/count").
		Methods(http.MethodGet).
		Name("GET /masternodes/count").
		HandlerFunc(utils.WrapHandlerFunc(m.handleCount))
	sub.Path("/owners/{owner}").
		Methods(http.MethodGet).
		Name("GET /masternodes/owners/{owner}").
		HandlerFunc(utils.WrapHandlerFunc(m.handleGetOwner))

	sub.Path("/announce").
		Methods(http.MethodPost).
		Name("POST /masternodes/announce").
		HandlerFunc(utils.WrapHandlerFunc(utils.WritesGuard(m.writes, m.handleAnnounce)))
	sub.Path("/denounce").
		Methods(http.MethodPost).
		Name("POST /masternodes/denounce").
		HandlerFunc(utils.WrapHandlerFunc(utils.WritesGuard(m.writes, m.handleDenounce)))
	sub.Path("/heartbeat").
		Methods(http.MethodPost).
		Name("POST /masternodes/heartbeat").
		HandlerFunc(utils.WrapHandlerFunc(utils.WritesGuard(m.writes, m.handleHeartbeat)))
	sub.Path("/validate").
		Methods(http.MethodPost).
		Name("POST /masternodes/validate").
		HandlerFunc(utils.WrapHandlerFunc(utils.WritesGuard(m.writes, m.handleValidate)))

	sub.Path("/{node}").
		Methods(http.MethodGet).
		Name("GET /masternodes/{node}").
		HandlerFunc(utils.WrapHandlerFunc(m.handleGetMasternode))
	sub.Path("/{node}/valid").
		Methods(http.MethodGet).
		Name("GET /masternodes/{node}/valid").
		HandlerFunc(utils.WrapHandlerFunc(m.handleIsValid))
}
