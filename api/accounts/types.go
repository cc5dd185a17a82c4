// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package accounts

import (
	"github.com/ethereum/go-ethereum/common/math"
)

// Account is the JSON form of an account's funds.
type Account struct {
	Balance           *math.HexOrDecimal256 `json:"balance"`
	Collateral        *math.HexOrDecimal256 `json:"collateral"`
	MinimumCollateral *math.HexOrDecimal256 `json:"minimumCollateral"`
}

// Treasury is the JSON form of the treasury funds.
type Treasury struct {
	Balance       *math.HexOrDecimal256 `json:"balance"`
	Contributions *math.HexOrDecimal256 `json:"contributions"`
}

// AmountRequest carries the amount of a collateral operation.
type AmountRequest struct {
	Amount *math.HexOrDecimal256 `json:"amount"`
}
