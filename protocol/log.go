// Copyright (c) 2024 XNS
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package protocol

import (
	"github.com/ethereum/go-ethereum/common"
)

// Log is a notification emitted by an operation. Logs are observable to the host ledger's
// clients but are not part of the registry state.
type Log struct {
	// Address is the registry's own address
	Address common.Address
	// Topics carry the event name hash followed by the indexed values
	Topics [][]byte
	// Data carries the non-indexed payload
	Data []byte
	// BlockHeight is the height of the block containing the action
	BlockHeight uint64
	// ActionHash is the hash of the action that produced this log
	ActionHash common.Hash
}
