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
	"github.com/Walodja1987/xns-sub003/state"
)

// namespaceRecord is created exactly once per namespace and is immutable afterwards except
// for Owner/PendingOwner, which only the two-phase transfer touches.
type namespaceRecord struct {
	Price        *big.Int
	Owner        common.Address
	CreatedAt    uint64
	Private      bool
	PendingOwner common.Address
}

// Serialize serializes a namespace record into bytes
func (n *namespaceRecord) Serialize() ([]byte, error) {
	return rlp.EncodeToBytes(n)
}

// Deserialize deserializes bytes into a namespace record
func (n *namespaceRecord) Deserialize(data []byte) error {
	if err := rlp.DecodeBytes(data, n); err != nil {
		return errors.Wrap(state.ErrStateDeserialization, err.Error())
	}
	return nil
}

// priceIndex maps a price back to its namespace; it must stay one-to-one with the records.
type priceIndex struct {
	Namespace string
}

// Serialize serializes a price index entry into bytes
func (x *priceIndex) Serialize() ([]byte, error) {
	return rlp.EncodeToBytes(x)
}

// Deserialize deserializes bytes into a price index entry
func (x *priceIndex) Deserialize(data []byte) error {
	if err := rlp.DecodeBytes(data, x); err != nil {
		return errors.Wrap(state.ErrStateDeserialization, err.Error())
	}
	return nil
}

// RegisterNamespace creates a priced namespace owned by the caller. The one-time fee depends
// on visibility; payment is the value attached by the caller, and anything beyond the fee
// stays untouched in the caller's account.
func (p *Protocol) RegisterNamespace(
	ctx context.Context,
	sm protocol.StateManager,
	namespace string,
	price *big.Int,
	private bool,
	payment *big.Int,
) ([]*protocol.Log, error) {
	return p.run(sm, func() ([]*protocol.Log, error) {
		actionCtx := protocol.MustGetActionCtx(ctx)
		blkCtx := protocol.MustGetBlockCtx(ctx)

		rLog, err := p.createNamespace(ctx, sm, namespace, price, private, actionCtx.Caller, uint64(blkCtx.BlockTimeStamp.Unix()))
		if err != nil {
			return nil, err
		}
		fee := p.cfg.PublicNamespaceFee()
		if private {
			fee = p.cfg.PrivateNamespaceFee()
		}
		admin, err := p.admin(sm)
		if err != nil {
			return nil, err
		}
		// the creator pays the fee, so both fee shares go to the admin
		if err := p.processPayment(ctx, sm, actionCtx.Caller, payment, fee, admin.Admin); err != nil {
			return nil, err
		}
		_namespacesRegisteredMtc.WithLabelValues(visibilityLabel(private)).Inc()
		return []*protocol.Log{rLog.Build(ctx)}, nil
	})
}

// RegisterNamespaceFor is the privileged onboarding entry point: the admin creates a
// namespace on behalf of owner at zero fee, only while the onboarding window is open. No
// value is collected, so any attached value stays with the caller in full.
func (p *Protocol) RegisterNamespaceFor(
	ctx context.Context,
	sm protocol.StateManager,
	namespace string,
	price *big.Int,
	private bool,
	owner common.Address,
) ([]*protocol.Log, error) {
	return p.run(sm, func() ([]*protocol.Log, error) {
		actionCtx := protocol.MustGetActionCtx(ctx)
		blkCtx := protocol.MustGetBlockCtx(ctx)
		chainCtx := protocol.MustGetChainCtx(ctx)

		admin, err := p.admin(sm)
		if err != nil {
			return nil, err
		}
		if actionCtx.Caller != admin.Admin {
			return nil, errors.Wrap(ErrUnauthorized, "only the admin may use the onboarding entry point")
		}
		if !blkCtx.BlockTimeStamp.Before(chainCtx.GenesisTimestamp.Add(p.cfg.OnboardingWindow)) {
			return nil, errors.Wrap(ErrUnauthorized, "onboarding window has closed")
		}
		if owner == (common.Address{}) {
			return nil, errors.Wrap(ErrNilRecipient, "namespace owner")
		}
		rLog, err := p.createNamespace(ctx, sm, namespace, price, private, owner, uint64(blkCtx.BlockTimeStamp.Unix()))
		if err != nil {
			return nil, err
		}
		_namespacesRegisteredMtc.WithLabelValues(visibilityLabel(private)).Inc()
		return []*protocol.Log{rLog.Build(ctx)}, nil
	})
}

// createNamespace validates the preconditions and writes the record plus its price index.
func (p *Protocol) createNamespace(
	_ context.Context,
	sm protocol.StateManager,
	namespace string,
	price *big.Int,
	private bool,
	owner common.Address,
	createdAt uint64,
) (*receiptLog, error) {
	if !isValidSlug(namespace, p.cfg.MaxNamespaceLength) {
		return nil, errors.Wrapf(ErrInvalidSlug, "namespace %q", namespace)
	}
	if namespace == p.cfg.ForbiddenNamespace {
		return nil, errors.Wrapf(ErrForbiddenNamespace, "namespace %q", namespace)
	}
	if price == nil || price.Sign() <= 0 {
		return nil, errors.Wrap(ErrInvalidPrice, "price must be positive")
	}
	if new(big.Int).Mod(price, p.cfg.PriceStep()).Sign() != 0 {
		return nil, errors.Wrapf(ErrInvalidPrice, "price must be a multiple of %s", p.cfg.PriceStepStr)
	}
	var taken priceIndex
	switch err := p.state(sm, _priceKeyPrefix, price.Bytes(), &taken); errors.Cause(err) {
	case state.ErrStateNotExist:
	case nil:
		return nil, errors.Wrapf(ErrPriceInUse, "by namespace %q", taken.Namespace)
	default:
		return nil, err
	}
	var existing namespaceRecord
	switch err := p.state(sm, _namespaceKeyPrefix, []byte(namespace), &existing); errors.Cause(err) {
	case state.ErrStateNotExist:
	case nil:
		return nil, errors.Wrapf(ErrNamespaceExists, "namespace %q", namespace)
	default:
		return nil, err
	}
	rec := namespaceRecord{
		Price:     price,
		Owner:     owner,
		CreatedAt: createdAt,
		Private:   private,
	}
	if err := p.putState(sm, _namespaceKeyPrefix, []byte(namespace), &rec); err != nil {
		return nil, err
	}
	if err := p.putState(sm, _priceKeyPrefix, price.Bytes(), &priceIndex{Namespace: namespace}); err != nil {
		return nil, err
	}
	rLog := newReceiptLog(p.addr, EventNamespaceRegistered)
	rLog.AddTopics([]byte(namespace), owner.Bytes(), price.Bytes(), []byte{visibilityByte(private)})
	return rLog, nil
}

func visibilityByte(private bool) byte {
	if private {
		return 1
	}
	return 0
}

func visibilityLabel(private bool) string {
	if private {
		return "private"
	}
	return "public"
}
