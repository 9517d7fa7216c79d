// Copyright (c) 2024 XNS
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package protocol

import (
	"context"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"github.com/Walodja1987/xns-sub003/pkg/log"
)

type (
	actionCtxKey struct{}

	blockCtxKey struct{}

	chainCtxKey struct{}

	// ActionCtx provides the auxiliary information of the action being executed.
	ActionCtx struct {
		// Caller is the account the host ledger authenticated as the transaction sender
		Caller common.Address
		// ActionHash is the hash of the enclosing transaction
		ActionHash common.Hash
	}

	// BlockCtx provides the auxiliary information of the enclosing block.
	BlockCtx struct {
		// BlockHeight is the height of the block containing the action
		BlockHeight uint64
		// BlockTimeStamp is the timestamp of the block containing the action
		BlockTimeStamp time.Time
	}

	// ChainCtx provides chain-wide information.
	ChainCtx struct {
		// ChainID identifies the host chain
		ChainID uint64
		// GenesisTimestamp is the timestamp of the genesis block
		GenesisTimestamp time.Time
	}
)

// WithActionCtx adds ActionCtx into context.
func WithActionCtx(ctx context.Context, ac ActionCtx) context.Context {
	return context.WithValue(ctx, actionCtxKey{}, ac)
}

// GetActionCtx gets ActionCtx.
func GetActionCtx(ctx context.Context) (ActionCtx, bool) {
	ac, ok := ctx.Value(actionCtxKey{}).(ActionCtx)
	return ac, ok
}

// MustGetActionCtx must get ActionCtx. If context doesn't exist, this function panics.
func MustGetActionCtx(ctx context.Context) ActionCtx {
	ac, ok := GetActionCtx(ctx)
	if !ok {
		log.S().Panic("Miss action context")
	}
	return ac
}

// WithBlockCtx adds BlockCtx into context.
func WithBlockCtx(ctx context.Context, blk BlockCtx) context.Context {
	return context.WithValue(ctx, blockCtxKey{}, blk)
}

// GetBlockCtx gets BlockCtx.
func GetBlockCtx(ctx context.Context) (BlockCtx, bool) {
	blk, ok := ctx.Value(blockCtxKey{}).(BlockCtx)
	return blk, ok
}

// MustGetBlockCtx must get BlockCtx. If context doesn't exist, this function panics.
func MustGetBlockCtx(ctx context.Context) BlockCtx {
	blk, ok := GetBlockCtx(ctx)
	if !ok {
		log.S().Panic("Miss block context")
	}
	return blk
}

// WithChainCtx adds ChainCtx into context.
func WithChainCtx(ctx context.Context, cc ChainCtx) context.Context {
	return context.WithValue(ctx, chainCtxKey{}, cc)
}

// GetChainCtx gets ChainCtx.
func GetChainCtx(ctx context.Context) (ChainCtx, bool) {
	cc, ok := ctx.Value(chainCtxKey{}).(ChainCtx)
	return cc, ok
}

// MustGetChainCtx must get ChainCtx. If context doesn't exist, this function panics.
func MustGetChainCtx(ctx context.Context) ChainCtx {
	cc, ok := ctx.Value(chainCtxKey{}).(ChainCtx)
	if !ok {
		log.S().Panic("Miss chain context")
	}
	return cc
}
