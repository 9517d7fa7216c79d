// Copyright (c) 2024 XNS
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package registry

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/Walodja1987/xns-sub003/protocol"
)

// Event names. The first topic of every emitted log is the keccak hash of one of these, so
// callers can reconcile exactly which entries of a batch succeeded.
const (
	EventNameRegistered            = "nameRegistered"
	EventNamespaceRegistered       = "namespaceRegistered"
	EventFeesClaimed               = "feesClaimed"
	EventNamespaceTransferStarted  = "namespaceOwnershipTransferStarted"
	EventNamespaceTransferAccepted = "namespaceOwnershipTransferAccepted"
	EventAdminTransferStarted      = "adminTransferStarted"
	EventAdminTransferAccepted     = "adminTransferAccepted"
)

// EventTopic returns the first topic identifying the given event.
func EventTopic(event string) []byte {
	return crypto.Keccak256([]byte(event))
}

type receiptLog struct {
	addr   common.Address
	topics [][]byte
	data   []byte
}

func newReceiptLog(addr common.Address, event string) *receiptLog {
	return &receiptLog{
		addr:   addr,
		topics: [][]byte{EventTopic(event)},
	}
}

func (r *receiptLog) AddTopics(topics ...[]byte) {
	r.topics = append(r.topics, topics...)
}

func (r *receiptLog) SetData(data []byte) {
	r.data = data
}

func (r *receiptLog) Build(ctx context.Context) *protocol.Log {
	blkCtx := protocol.MustGetBlockCtx(ctx)
	actionCtx := protocol.MustGetActionCtx(ctx)
	return &protocol.Log{
		Address:     r.addr,
		Topics:      r.topics,
		Data:        r.data,
		BlockHeight: blkCtx.BlockHeight,
		ActionHash:  actionCtx.ActionHash,
	}
}
