// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package registry

import (
	"math/big"

	"github.com/vechain/mnreg/mn"
)

// Schedule yields the masternode reward carried by each block.
// Every SuperblockCycle-th block is a superblock whose masternode share is zero.
type Schedule struct {
	reward *big.Int
	cycle  uint32
}

func NewSchedule(cfg *mn.Config) *Schedule {
	return &Schedule{reward: cfg.Reward(), cycle: cfg.SuperblockCycle}
}

// IsSuperblock reports whether num is a superblock.
func (s *Schedule) IsSuperblock(num uint32) bool {
	return num%s.cycle == 0
}

// At returns the base reward of block num.
func (s *Schedule) At(num uint32) *big.Int {
	if s.IsSuperblock(num) {
		return new(big.Int)
	}
	return new(big.Int).Set(s.reward)
}

// Payable returns the amount to route for block num. A superblock pays the
// value of the following block so payout cadence stays aligned with rotation.
func (s *Schedule) Payable(num uint32) *big.Int {
	if r := s.At(num); r.Sign() > 0 {
		return r
	}
	return s.At(num + 1)
}
