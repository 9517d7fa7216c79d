// Copyright (c) 2024 XNS
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package registry

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"

	"github.com/Walodja1987/xns-sub003/protocol"
	"github.com/Walodja1987/xns-sub003/protocol/account"
	"github.com/Walodja1987/xns-sub003/state"
)

// feeAccount stores the claimable fee balance of an account.
type feeAccount struct {
	Balance *big.Int
}

// Serialize serializes a fee account into bytes
func (f *feeAccount) Serialize() ([]byte, error) {
	return rlp.EncodeToBytes(f)
}

// Deserialize deserializes bytes into a fee account
func (f *feeAccount) Deserialize(data []byte) error {
	if err := rlp.DecodeBytes(data, f); err != nil {
		return errors.Wrap(state.ErrStateDeserialization, err.Error())
	}
	return nil
}

// creditFees accrues a fee share. Only payment processing calls this.
func (p *Protocol) creditFees(sm protocol.StateManager, addr common.Address, amount *big.Int) error {
	if amount.Sign() == 0 {
		return nil
	}
	fees := feeAccount{Balance: big.NewInt(0)}
	switch err := p.state(sm, _feeKeyPrefix, addr.Bytes(), &fees); errors.Cause(err) {
	case nil, state.ErrStateNotExist:
	default:
		return err
	}
	fees.Balance = new(big.Int).Add(fees.Balance, amount)
	return p.putState(sm, _feeKeyPrefix, addr.Bytes(), &fees)
}

// ClaimFees pays the caller's entire accrued fee balance out to recipient. There is no
// partial claim: the balance is read in full, zeroed, and transferred.
func (p *Protocol) ClaimFees(ctx context.Context, sm protocol.StateManager, recipient common.Address) (*big.Int, []*protocol.Log, error) {
	var claimed *big.Int
	logs, err := p.run(sm, func() ([]*protocol.Log, error) {
		actionCtx := protocol.MustGetActionCtx(ctx)

		if recipient == (common.Address{}) {
			return nil, errors.Wrap(ErrNilRecipient, "claim recipient")
		}
		fees := feeAccount{}
		switch err := p.state(sm, _feeKeyPrefix, actionCtx.Caller.Bytes(), &fees); errors.Cause(err) {
		case nil:
		case state.ErrStateNotExist:
			return nil, errors.Wrapf(ErrNoClaimableFees, "account %s", actionCtx.Caller)
		default:
			return nil, err
		}
		if fees.Balance == nil || fees.Balance.Sign() == 0 {
			return nil, errors.Wrapf(ErrNoClaimableFees, "account %s", actionCtx.Caller)
		}
		if err := p.delState(sm, _feeKeyPrefix, actionCtx.Caller.Bytes()); err != nil {
			return nil, err
		}
		rLog := newReceiptLog(p.addr, EventFeesClaimed)
		rLog.AddTopics(recipient.Bytes())
		rLog.SetData(fees.Balance.Bytes())
		// the outbound transfer comes after every internal mutation
		if err := account.AddBalanceTo(sm, recipient, fees.Balance); err != nil {
			return nil, errors.Wrap(err, "failed to pay out claimed fees")
		}
		claimed = fees.Balance
		_feesClaimedMtc.Inc()
		return []*protocol.Log{rLog.Build(ctx)}, nil
	})
	if err != nil {
		return nil, nil, err
	}
	return claimed, logs, nil
}
