// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package globalstats

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/vechain/mnreg/builtin/solidity"
	"github.com/vechain/mnreg/mn"
)

var (
	slotActiveCount      = mn.BytesToBytes32([]byte("active-count"))
	slotActiveCollateral = mn.BytesToBytes32([]byte("active-collateral"))
	slotMaxCollateral    = mn.BytesToBytes32([]byte("max-collateral"))
)

// Stats is a snapshot of the registry wide aggregates.
// Removed records are purged, so total figures equal active ones.
type Stats struct {
	Active           uint64
	Total            uint64
	ActiveCollateral *big.Int
	TotalCollateral  *big.Int
	MaxOfAllTimes    *big.Int
}

// Service maintains registry wide aggregates incrementally.
type Service struct {
	activeCount      *solidity.Uint256
	activeCollateral *solidity.Uint256
	maxCollateral    *solidity.Uint256
}

func New(sctx *solidity.Context) *Service {
	return &Service{
		activeCount:      solidity.NewUint256(sctx, slotActiveCount),
		activeCollateral: solidity.NewUint256(sctx, slotActiveCollateral),
		maxCollateral:    solidity.NewUint256(sctx, slotMaxCollateral),
	}
}

// AddActive accounts for a node entering the active set, raising the all time maximum if needed.
func (s *Service) AddActive(collateral *big.Int) error {
	if err := s.activeCount.Add(big.NewInt(1)); err != nil {
		return errors.Wrap(err, "active count")
	}
	if err := s.activeCollateral.Add(collateral); err != nil {
		return errors.Wrap(err, "active collateral")
	}

	active, err := s.activeCollateral.Get()
	if err != nil {
		return err
	}
	max, err := s.maxCollateral.Get()
	if err != nil {
		return err
	}
	if active.Cmp(max) > 0 {
		return s.maxCollateral.Set(active)
	}
	return nil
}

// RemoveActive accounts for a node leaving the active set.
func (s *Service) RemoveActive(collateral *big.Int) error {
	if err := s.activeCount.Sub(big.NewInt(1)); err != nil {
		return errors.Wrap(err, "active count")
	}
	if err := s.activeCollateral.Sub(collateral); err != nil {
		return errors.Wrap(err, "active collateral")
	}
	return nil
}

// ActiveCount returns the number of active nodes.
func (s *Service) ActiveCount() (uint64, error) {
	count, err := s.activeCount.Get()
	if err != nil {
		return 0, err
	}
	return count.Uint64(), nil
}

// Get returns the current aggregates.
func (s *Service) Get() (*Stats, error) {
	count, err := s.activeCount.Get()
	if err != nil {
		return nil, err
	}
	collateral, err := s.activeCollateral.Get()
	if err != nil {
		return nil, err
	}
	max, err := s.maxCollateral.Get()
	if err != nil {
		return nil, err
	}
	return &Stats{
		Active:           count.Uint64(),
		Total:            count.Uint64(),
		ActiveCollateral: collateral,
		TotalCollateral:  new(big.Int).Set(collateral),
		MaxOfAllTimes:    max,
	}, nil
}
