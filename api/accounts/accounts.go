// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package accounts

import (
	"math/big"
	"net/http"

	"github.com/ethereum/go-ethereum/common/math"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/vechain/mnreg/api/utils"
	"github.com/vechain/mnreg/mn"
	"github.com/vechain/mnreg/runtime"
)

type Accounts struct {
	rt     *runtime.Runtime
	writes bool
}

// New creates the accounts API. Write endpoints refuse requests unless writes is set.
func New(rt *runtime.Runtime, writes bool) *Accounts {
	return &Accounts{
		rt,
		writes,
	}
}

func (a *Accounts) handleGetAccount(w http.ResponseWriter, req *http.Request) error {
	addr, err := utils.ParseAddress(mux.Vars(req)["address"], "address")
	if err != nil {
		return err
	}
	balance, err := a.rt.Balance(addr)
	if err != nil {
		return err
	}
	collateral, minimum, err := a.rt.Collateral(addr)
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, &Account{
		Balance:           (*math.HexOrDecimal256)(balance),
		Collateral:        (*math.HexOrDecimal256)(collateral),
		MinimumCollateral: (*math.HexOrDecimal256)(minimum),
	})
}

func (a *Accounts) handleGetTreasury(w http.ResponseWriter, _ *http.Request) error {
	balance, contributions, err := a.rt.Treasury()
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, &Treasury{
		Balance:       (*math.HexOrDecimal256)(balance),
		Contributions: (*math.HexOrDecimal256)(contributions),
	})
}

func (a *Accounts) parseCollateralCall(req *http.Request) (mn.Address, *big.Int, error) {
	addr, err := utils.ParseAddress(mux.Vars(req)["address"], "address")
	if err != nil {
		return mn.Address{}, nil, err
	}
	var body AmountRequest
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return mn.Address{}, nil, utils.BadRequest(errors.WithMessage(err, "body"))
	}
	amount, err := utils.ParseAmount(body.Amount, "amount")
	if err != nil {
		return mn.Address{}, nil, err
	}
	return addr, amount, nil
}

func (a *Accounts) handleDeposit(w http.ResponseWriter, req *http.Request) error {
	addr, amount, err := a.parseCollateralCall(req)
	if err != nil {
		return err
	}
	events, err := a.rt.Deposit(addr, amount)
	if err != nil {
		return utils.HandleRevert(err)
	}
	return utils.WriteJSON(w, &utils.Receipt{Events: utils.ConvertEvents(events)})
}

func (a *Accounts) handleWithdraw(w http.ResponseWriter, req *http.Request) error {
	addr, amount, err := a.parseCollateralCall(req)
	if err != nil {
		return err
	}
	events, err := a.rt.Withdraw(addr, amount)
	if err != nil {
		return utils.HandleRevert(err)
	}
	return utils.WriteJSON(w, &utils.Receipt{Events: utils.ConvertEvents(events)})
}

func (a *Accounts) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/treasury").
		Methods(http.MethodGet).
		Name("GET /accounts/treasury").
		HandlerFunc(utils.WrapHandlerFunc(a.handleGetTreasury))
	sub.Path("/{address}").
		Methods(http.MethodGet).
		Name("GET /accounts/{address}").
		HandlerFunc(utils.WrapHandlerFunc(a.handleGetAccount))

	sub.Path("/{address}/deposit").
		Methods(http.MethodPost).
		Name("POST /accounts/{address}/deposit").
		HandlerFunc(utils.WrapHandlerFunc(utils.WritesGuard(a.writes, a.handleDeposit)))
	sub.Path("/{address}/withdraw").
		Methods(http.MethodPost).
		Name("POST /accounts/{address}/withdraw").
		HandlerFunc(utils.WrapHandlerFunc(utils.WritesGuard(a.writes, a.handleWithdraw)))
}
