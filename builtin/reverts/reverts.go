// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package reverts

import (
	"errors"
)

// ErrRevert is a business-rule rejection raised by a built-in contract.
// Unless created with NewKeepState, the state changes of the failing call are discarded.
type ErrRevert struct {
	message   string
	keepState bool
}

func New(message string) *ErrRevert {
	return &ErrRevert{
		message: message,
	}
}

// NewKeepState creates a revert whose side effects are committed even though the call fails.
func NewKeepState(message string) *ErrRevert {
	return &ErrRevert{
		message:   message,
		keepState: true,
	}
}

func (e *ErrRevert) Error() string {
	return e.message
}

func IsRevertErr(err any) bool {
	if err == nil {
		return false
	}
	e, ok := err.(error)
	if !ok {
		return false
	}
	var ve *ErrRevert
	return errors.As(e, &ve)
}

// KeepsState reports whether the state changes made before err was raised must be kept.
func KeepsState(err error) bool {
	var ve *ErrRevert
	if errors.As(err, &ve) {
		return ve.keepState
	}
	return false
}

// masternode registry
var (
	ErrInsufficientCollateral = New("Invalid collateral")
	ErrInvalidAddress         = New("Wrong IP")
	ErrInvalidOwner           = New("Invalid owner")
	ErrTooOld                 = New("Too old")
	ErrHashMismatch           = New("Block mismatch")
	ErrNotActive              = New("Not active")
	ErrTooEarly               = New("Too early")
	ErrTooLate                = NewKeepState("Too late")
	ErrSelfVote               = New("Vote for self")
	ErrNotActiveCaller        = New("Not active caller")
	ErrNotActiveSubject       = New("Not active target")
	ErrUnknownMasternode      = New("Unknown masternode")
	ErrUnknownOwner           = New("Unknown owner")
)

// collateral ledger
var (
	ErrInvalidAmount       = New("Invalid amount")
	ErrInsufficientBalance = New("Not enough")
	ErrCollateralLimit     = New("Too much collateral")
)
