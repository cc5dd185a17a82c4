// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package blocks

import (
	"net/http"
	"strconv"

	"github.com/ethereum/go-ethereum/common/math"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/vechain/mnreg/api/utils"
	"github.com/vechain/mnreg/builtin/registry"
	"github.com/vechain/mnreg/chain"
)

type Blocks struct {
	repo     *chain.Repository
	schedule *registry.Schedule
}

func New(repo *chain.Repository, schedule *registry.Schedule) *Blocks {
	return &Blocks{
		repo,
		schedule,
	}
}

func (b *Blocks) parseRevision(rev string) (*chain.Header, error) {
	if rev == "" || rev == "best" {
		return b.repo.BestBlock(), nil
	}
	n, err := strconv.ParseUint(rev, 0, 32)
	if err != nil {
		return nil, utils.BadRequest(errors.WithMessage(err, "revision"))
	}
	header, err := b.repo.GetBlock(uint32(n))
	if err != nil {
		if b.repo.IsNotFound(err) {
			return nil, utils.NotFound(errors.New("block not found"))
		}
		return nil, err
	}
	return header, nil
}

func (b *Blocks) handleGetBlock(w http.ResponseWriter, req *http.Request) error {
	header, err := b.parseRevision(mux.Vars(req)["revision"])
	if err != nil {
		return err
	}
	num := header.Number()
	return utils.WriteJSON(w, convertBlock(
		header,
		b.schedule.IsSuperblock(num),
		(*math.HexOrDecimal256)(b.schedule.At(num)),
	))
}

func (b *Blocks) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/{revision}").
		Methods(http.MethodGet).
		Name("GET /blocks/{revision}").
		HandlerFunc(utils.WrapHandlerFunc(b.handleGetBlock))
}
