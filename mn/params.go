// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package mn

import (
	"math/big"
	"time"
)

// Ether is the number of wei in one coin.
var Ether = big.NewInt(1e18)

// Coins returns n whole coins expressed in wei.
func Coins(n uint64) *big.Int {
	return new(big.Int).Mul(new(big.Int).SetUint64(n), Ether)
}

// default network parameters
const (
	CollateralUnitCoins = 10000
	CollateralMinCoins  = 10000
	CollateralMaxCoins  = 100000

	HeartbeatPastBlocks  = 10 // claimed heartbeat heights this far back are rejected
	HeartbeatMinInterval = 30 * time.Minute
	HeartbeatMaxAge      = 2 * time.Hour

	QuorumPercent  = 51
	QuorumMinNodes = 2

	SuperblockCycle = 20160
	BlockInterval   = 60 * time.Second
)

// BlockReward is the default masternode share of each block, 9.14 coins.
var BlockReward = new(big.Int).Mul(big.NewInt(914), big.NewInt(1e16))
