// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package builtin

import (
	"github.com/vechain/mnreg/mn"
)

type contract struct {
	Name    string
	Address mn.Address
}

// newContract places the named contract at the low 20 bytes of keccak256(name).
func newContract(name string) *contract {
	return &contract{
		name,
		mn.BytesToAddress(mn.Keccak256([]byte(name)).Bytes()),
	}
}
