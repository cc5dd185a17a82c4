// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/vechain/mnreg/runtime"
)

// producer appends a block every interval, routing the block reward through the registry.
type producer struct {
	rt       *runtime.Runtime
	interval time.Duration
	now      func() time.Time
}

func newProducer(rt *runtime.Runtime, interval time.Duration) *producer {
	return &producer{
		rt:       rt,
		interval: interval,
		now:      time.Now,
	}
}

func (p *producer) run(ctx context.Context) error {
	logger.Debug("enter block producer", "interval", p.interval)
	defer logger.Debug("leave block producer")

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := p.produce(); err != nil {
				return err
			}
		}
	}
}

func (p *producer) produce() error {
	startTime := time.Now()
	header, payout, err := p.rt.ProduceBlock(uint64(p.now().Unix()))
	if err != nil {
		return errors.WithMessage(err, "produce block")
	}

	if payout.ToTreasury() {
		logger.Info("📦 new block",
			"number", header.Number(),
			"id", header.ID().AbbrevString(),
			"treasury", payout.Amount,
			"elapsed", time.Since(startTime),
		)
		return nil
	}
	logger.Info("📦 new block",
		"number", header.Number(),
		"id", header.ID().AbbrevString(),
		"payee", payout.Node,
		"amount", payout.Amount,
		"elapsed", time.Since(startTime),
	)
	return nil
}
