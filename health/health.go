// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package health

import (
	"time"

	"github.com/vechain/mnreg/chain"
	"github.com/vechain/mnreg/mn"
)

type BestBlock struct {
	ID        mn.Bytes32 `json:"id"`
	Number    uint32     `json:"number"`
	Timestamp uint64     `json:"timestamp"`
}

type Status struct {
	Healthy   bool       `json:"healthy"`
	BestBlock *BestBlock `json:"bestBlock"`
	Lag       string     `json:"lag"`
}

// Health judges the node by the age of its best block. A node that stopped producing
// blocks also stops routing rewards and accepting fresh heartbeats.
type Health struct {
	repo   *chain.Repository
	maxLag time.Duration
	now    func() time.Time
}

// New creates a Health tolerating up to three block intervals without a new block.
func New(repo *chain.Repository, blockInterval time.Duration) *Health {
	return &Health{
		repo:   repo,
		maxLag: 3 * blockInterval,
		now:    time.Now,
	}
}

func (h *Health) Status() *Status {
	best := h.repo.BestBlock()

	lag := h.now().Sub(time.Unix(int64(best.Time()), 0))
	if lag < 0 {
		lag = 0
	}
	return &Status{
		Healthy: lag <= h.maxLag,
		BestBlock: &BestBlock{
			ID:        best.ID(),
			Number:    best.Number(),
			Timestamp: best.Time(),
		},
		Lag: lag.Truncate(time.Second).String(),
	}
}
