// Copyright (c) 2024 XNS
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package registry

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"

	"github.com/Walodja1987/xns-sub003/protocol"
	"github.com/Walodja1987/xns-sub003/protocol/account"
)

// processPayment collects required out of the attached value: the burn share is destroyed
// through the Burn Sink (credited to the payer), the owner share goes to ownerBeneficiary's
// fee balance, the admin share (plus any integer-division remainder, so the split always sums
// to required exactly) goes to the admin's fee balance. attached - required never leaves the
// payer. The Burn Sink call comes after every internal mutation; if it fails the enclosing
// operation reverts in full.
func (p *Protocol) processPayment(
	ctx context.Context,
	sm protocol.StateManager,
	payer common.Address,
	attached, required *big.Int,
	ownerBeneficiary common.Address,
) error {
	if attached == nil {
		attached = big.NewInt(0)
	}
	if attached.Cmp(required) < 0 {
		return errors.Wrapf(ErrInsufficientFunds, "attached %s, required %s", attached, required)
	}
	if required.Sign() == 0 {
		return nil
	}
	payerAcc, err := account.LoadAccount(sm, payer)
	if err != nil {
		return err
	}
	if payerAcc.Balance.Cmp(attached) < 0 {
		return errors.Wrapf(ErrInsufficientFunds, "balance %s cannot back attached value %s", payerAcc.Balance, attached)
	}
	hundred := big.NewInt(100)
	burnShare := new(big.Int).Div(new(big.Int).Mul(required, new(big.Int).SetUint64(p.cfg.BurnPercentage)), hundred)
	ownerShare := new(big.Int).Div(new(big.Int).Mul(required, new(big.Int).SetUint64(p.cfg.OwnerFeePercentage)), hundred)
	adminShare := new(big.Int).Sub(required, new(big.Int).Add(burnShare, ownerShare))

	if err := account.SubBalanceFrom(sm, payer, new(big.Int).Sub(required, burnShare)); err != nil {
		return errors.Wrap(ErrInsufficientFunds, err.Error())
	}
	admin, err := p.admin(sm)
	if err != nil {
		return err
	}
	if ownerBeneficiary == admin.Admin {
		adminShare = new(big.Int).Add(adminShare, ownerShare)
		ownerShare = big.NewInt(0)
	}
	if err := p.creditFees(sm, ownerBeneficiary, ownerShare); err != nil {
		return err
	}
	if err := p.creditFees(sm, admin.Admin, adminShare); err != nil {
		return err
	}
	if err := p.burner.Burn(ctx, sm, payer, burnShare); err != nil {
		return errors.Wrap(err, "burn sink rejected the burn")
	}
	_burnsMtc.Inc()
	return nil
}
