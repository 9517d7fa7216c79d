// Copyright (c) 2024 XNS
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package registry

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"

	"github.com/Walodja1987/xns-sub003/protocol"
)

// TransferNamespaceOwnership proposes newOwner as the namespace's next owner. Re-proposing
// overwrites the pending target; proposing the null account cancels a pending transfer.
// Ownership does not move until the target accepts. Accrued fee balances stay where they
// were earned.
func (p *Protocol) TransferNamespaceOwnership(
	ctx context.Context,
	sm protocol.StateManager,
	namespace string,
	newOwner common.Address,
) ([]*protocol.Log, error) {
	return p.run(sm, func() ([]*protocol.Log, error) {
		actionCtx := protocol.MustGetActionCtx(ctx)

		namespace = p.normalizeNamespace(namespace)
		nsRec, err := p.namespaceRecord(sm, namespace)
		if err != nil {
			return nil, err
		}
		if actionCtx.Caller != nsRec.Owner {
			return nil, errors.Wrap(ErrUnauthorized, "only the namespace owner may start a transfer")
		}
		nsRec.PendingOwner = newOwner
		if err := p.putState(sm, _namespaceKeyPrefix, []byte(namespace), nsRec); err != nil {
			return nil, err
		}
		rLog := newReceiptLog(p.addr, EventNamespaceTransferStarted)
		rLog.AddTopics([]byte(namespace), nsRec.Owner.Bytes(), newOwner.Bytes())
		return []*protocol.Log{rLog.Build(ctx)}, nil
	})
}

// AcceptNamespaceOwnership completes a pending transfer; only the most recently proposed
// pending owner may call it.
func (p *Protocol) AcceptNamespaceOwnership(
	ctx context.Context,
	sm protocol.StateManager,
	namespace string,
) ([]*protocol.Log, error) {
	return p.run(sm, func() ([]*protocol.Log, error) {
		actionCtx := protocol.MustGetActionCtx(ctx)

		namespace = p.normalizeNamespace(namespace)
		nsRec, err := p.namespaceRecord(sm, namespace)
		if err != nil {
			return nil, err
		}
		if nsRec.PendingOwner == (common.Address{}) || actionCtx.Caller != nsRec.PendingOwner {
			return nil, errors.Wrap(ErrUnauthorized, "caller is not the pending owner")
		}
		nsRec.Owner = nsRec.PendingOwner
		nsRec.PendingOwner = common.Address{}
		if err := p.putState(sm, _namespaceKeyPrefix, []byte(namespace), nsRec); err != nil {
			return nil, err
		}
		rLog := newReceiptLog(p.addr, EventNamespaceTransferAccepted)
		rLog.AddTopics([]byte(namespace), nsRec.Owner.Bytes())
		return []*protocol.Log{rLog.Build(ctx)}, nil
	})
}

// TransferAdmin proposes a new privileged system account with the same propose/accept
// handshake namespaces use; the null account cancels.
func (p *Protocol) TransferAdmin(
	ctx context.Context,
	sm protocol.StateManager,
	newAdmin common.Address,
) ([]*protocol.Log, error) {
	return p.run(sm, func() ([]*protocol.Log, error) {
		actionCtx := protocol.MustGetActionCtx(ctx)

		admin, err := p.admin(sm)
		if err != nil {
			return nil, err
		}
		if actionCtx.Caller != admin.Admin {
			return nil, errors.Wrap(ErrUnauthorized, "only the admin may start a transfer")
		}
		admin.PendingAdmin = newAdmin
		if err := p.putState(sm, _adminKey, nil, admin); err != nil {
			return nil, err
		}
		rLog := newReceiptLog(p.addr, EventAdminTransferStarted)
		rLog.AddTopics(admin.Admin.Bytes(), newAdmin.Bytes())
		return []*protocol.Log{rLog.Build(ctx)}, nil
	})
}

// AcceptAdmin completes a pending admin transfer.
func (p *Protocol) AcceptAdmin(ctx context.Context, sm protocol.StateManager) ([]*protocol.Log, error) {
	return p.run(sm, func() ([]*protocol.Log, error) {
		actionCtx := protocol.MustGetActionCtx(ctx)

		admin, err := p.admin(sm)
		if err != nil {
			return nil, err
		}
		if admin.PendingAdmin == (common.Address{}) || actionCtx.Caller != admin.PendingAdmin {
			return nil, errors.Wrap(ErrUnauthorized, "caller is not the pending admin")
		}
		admin.Admin = admin.PendingAdmin
		admin.PendingAdmin = common.Address{}
		if err := p.putState(sm, _adminKey, nil, admin); err != nil {
			return nil, err
		}
		rLog := newReceiptLog(p.addr, EventAdminTransferAccepted)
		rLog.AddTopics(admin.Admin.Bytes())
		return []*protocol.Log{rLog.Build(ctx)}, nil
	})
}
