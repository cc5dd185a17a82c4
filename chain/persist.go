// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package chain

import (
	"encoding/binary"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/vechain/mnreg/kv"
)

func numberKey(num uint32) []byte {
	return binary.BigEndian.AppendUint32(nil, num)
}

func saveRLP(w kv.Putter, key []byte, val any) error {
	data, err := rlp.EncodeToBytes(val)
	if err != nil {
		return err
	}
	return w.Put(key, data)
}

func loadRLP(r kv.Getter, key []byte, val any) error {
	data, err := r.Get(key)
	if err != nil {
		return err
	}
	return rlp.DecodeBytes(data, val)
}

func saveHeader(w kv.Putter, header *Header) error {
	return saveRLP(w, numberKey(header.Number()), header)
}

func loadHeader(r kv.Getter, num uint32) (*Header, error) {
	var header Header
	if err := loadRLP(r, numberKey(num), &header); err != nil {
		return nil, err
	}
	return &header, nil
}
