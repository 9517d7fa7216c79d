// Copyright (c) 2024 XNS
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package registry

import (
	"context"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"

	"github.com/Walodja1987/xns-sub003/protocol"
	"github.com/Walodja1987/xns-sub003/state"
)

// nameRecord maps a canonical name key to its owner. Written exactly once; there is no code
// path anywhere that updates or deletes one.
type nameRecord struct {
	Owner common.Address
}

// Serialize serializes a name record into bytes
func (n *nameRecord) Serialize() ([]byte, error) {
	return rlp.EncodeToBytes(n)
}

// Deserialize deserializes bytes into a name record
func (n *nameRecord) Deserialize(data []byte) error {
	if err := rlp.DecodeBytes(data, n); err != nil {
		return errors.Wrap(state.ErrStateDeserialization, err.Error())
	}
	return nil
}

// reverseRecord maps an account back to its single name.
type reverseRecord struct {
	Label     string
	Namespace string
}

// Serialize serializes a reverse record into bytes
func (r *reverseRecord) Serialize() ([]byte, error) {
	return rlp.EncodeToBytes(r)
}

// Deserialize deserializes bytes into a reverse record
func (r *reverseRecord) Deserialize(data []byte) error {
	if err := rlp.DecodeBytes(data, r); err != nil {
		return errors.Wrap(state.ErrStateDeserialization, err.Error())
	}
	return nil
}

func canonicalKey(label, namespace string) string {
	return label + "." + namespace
}

// RegisterName claims label under namespace for the caller. An empty namespace denotes the
// reserved bare-name namespace.
func (p *Protocol) RegisterName(
	ctx context.Context,
	sm protocol.StateManager,
	label, namespace string,
	payment *big.Int,
) ([]*protocol.Log, error) {
	return p.run(sm, func() ([]*protocol.Log, error) {
		actionCtx := protocol.MustGetActionCtx(ctx)

		namespace = p.normalizeNamespace(namespace)
		nsRec, err := p.validateRegistration(ctx, sm, label, namespace, actionCtx.Caller, actionCtx.Caller, false)
		if err != nil {
			return nil, err
		}
		rLog, err := p.putName(sm, label, namespace, actionCtx.Caller)
		if err != nil {
			return nil, err
		}
		if err := p.payRegistration(ctx, sm, actionCtx.Caller, payment, nsRec.Price, nsRec); err != nil {
			return nil, err
		}
		_namesRegisteredMtc.WithLabelValues("self").Inc()
		return []*protocol.Log{rLog.Build(ctx)}, nil
	})
}

// RegisterNameFor claims the name described by auth for auth.Recipient, paid for by the
// caller (the sponsor). The recipient's consent is the signature over the authorization
// digest; it has no nonce and no expiry, and is consumed by the recipient's first successful
// registration since an account can never register twice.
func (p *Protocol) RegisterNameFor(
	ctx context.Context,
	sm protocol.StateManager,
	auth Authorization,
	sig []byte,
	payment *big.Int,
) ([]*protocol.Log, error) {
	return p.run(sm, func() ([]*protocol.Log, error) {
		actionCtx := protocol.MustGetActionCtx(ctx)

		if auth.Recipient == (common.Address{}) {
			return nil, errors.Wrap(ErrNilRecipient, "authorization recipient")
		}
		auth.Namespace = p.normalizeNamespace(auth.Namespace)
		nsRec, err := p.validateRegistration(ctx, sm, auth.Label, auth.Namespace, auth.Recipient, actionCtx.Caller, true)
		if err != nil {
			return nil, err
		}
		if err := p.verifyAuthorization(ctx, sm, auth, sig); err != nil {
			return nil, err
		}
		rLog, err := p.putName(sm, auth.Label, auth.Namespace, auth.Recipient)
		if err != nil {
			return nil, err
		}
		if err := p.payRegistration(ctx, sm, actionCtx.Caller, payment, nsRec.Price, nsRec); err != nil {
			return nil, err
		}
		_namesRegisteredMtc.WithLabelValues("delegated").Inc()
		return []*protocol.Log{rLog.Build(ctx)}, nil
	})
}

func (p *Protocol) normalizeNamespace(namespace string) string {
	if namespace == "" {
		return p.cfg.ReservedNamespace
	}
	return namespace
}

// validateRegistration runs steps 1-5 of the registration algorithm: slugs, namespace
// existence, visibility/exclusivity policy, one-name-per-account, name uniqueness.
func (p *Protocol) validateRegistration(
	ctx context.Context,
	sr protocol.StateReader,
	label, namespace string,
	recipient, sponsor common.Address,
	delegated bool,
) (*namespaceRecord, error) {
	if !isValidSlug(label, p.cfg.MaxLabelLength) {
		return nil, errors.Wrapf(ErrInvalidSlug, "label %q", label)
	}
	if !isValidSlug(namespace, p.cfg.MaxNamespaceLength) {
		return nil, errors.Wrapf(ErrInvalidSlug, "namespace %q", namespace)
	}
	nsRec, err := p.namespaceRecord(sr, namespace)
	if err != nil {
		return nil, err
	}
	if err := p.checkRegistrationPolicy(ctx, nsRec, sponsor, delegated); err != nil {
		return nil, err
	}
	if err := p.assertNameAvailable(sr, label, namespace, recipient); err != nil {
		return nil, err
	}
	return nsRec, nil
}

// checkRegistrationPolicy enforces visibility and exclusivity: a private namespace accepts
// delegated registrations sponsored by its owner, forever and nothing else; a public one is
// owner-only (as self-registrant or sponsor) until its exclusivity window elapses.
func (p *Protocol) checkRegistrationPolicy(ctx context.Context, nsRec *namespaceRecord, sponsor common.Address, delegated bool) error {
	if nsRec.Private {
		if !delegated {
			return errors.Wrap(ErrUnauthorized, "private namespace accepts only delegated registrations")
		}
		if sponsor != nsRec.Owner {
			return errors.Wrap(ErrUnauthorized, "private namespace registrations must be sponsored by the owner")
		}
		return nil
	}
	blkCtx := protocol.MustGetBlockCtx(ctx)
	if p.insideExclusivityWindow(nsRec, blkCtx.BlockTimeStamp) && sponsor != nsRec.Owner {
		return errors.Wrap(ErrUnauthorized, "namespace is inside its exclusivity window")
	}
	return nil
}

// insideExclusivityWindow reports whether now still falls in the owner-only period. The
// window opens to everyone at exactly createdAt + duration.
func (p *Protocol) insideExclusivityWindow(nsRec *namespaceRecord, now time.Time) bool {
	return now.Before(time.Unix(int64(nsRec.CreatedAt), 0).Add(p.cfg.ExclusivityWindow))
}

// assertNameAvailable enforces one-name-per-account and global name uniqueness.
func (p *Protocol) assertNameAvailable(sr protocol.StateReader, label, namespace string, recipient common.Address) error {
	var rev reverseRecord
	switch err := p.state(sr, _reverseKeyPrefix, recipient.Bytes(), &rev); errors.Cause(err) {
	case state.ErrStateNotExist:
	case nil:
		return errors.Wrapf(ErrAccountHasName, "account %s owns %q", recipient, canonicalKey(rev.Label, rev.Namespace))
	default:
		return err
	}
	var rec nameRecord
	switch err := p.state(sr, _nameKeyPrefix, []byte(canonicalKey(label, namespace)), &rec); errors.Cause(err) {
	case state.ErrStateNotExist:
	case nil:
		return errors.Wrapf(ErrNameTaken, "name %q", canonicalKey(label, namespace))
	default:
		return err
	}
	return nil
}

// putName commits the name and reverse records and prepares the notification.
func (p *Protocol) putName(sm protocol.StateManager, label, namespace string, owner common.Address) (*receiptLog, error) {
	if err := p.putState(sm, _nameKeyPrefix, []byte(canonicalKey(label, namespace)), &nameRecord{Owner: owner}); err != nil {
		return nil, err
	}
	if err := p.putState(sm, _reverseKeyPrefix, owner.Bytes(), &reverseRecord{Label: label, Namespace: namespace}); err != nil {
		return nil, err
	}
	rLog := newReceiptLog(p.addr, EventNameRegistered)
	rLog.AddTopics([]byte(label), []byte(namespace), owner.Bytes())
	return rLog, nil
}

// payRegistration charges the per-name price, routing the owner fee share to the admin for
// private namespaces.
func (p *Protocol) payRegistration(ctx context.Context, sm protocol.StateManager, payer common.Address, attached, required *big.Int, nsRec *namespaceRecord) error {
	beneficiary := nsRec.Owner
	if nsRec.Private {
		admin, err := p.admin(sm)
		if err != nil {
			return err
		}
		beneficiary = admin.Admin
	}
	return p.processPayment(ctx, sm, payer, attached, required, beneficiary)
}

func (p *Protocol) namespaceRecord(sr protocol.StateReader, namespace string) (*namespaceRecord, error) {
	rec := namespaceRecord{}
	switch err := p.state(sr, _namespaceKeyPrefix, []byte(namespace), &rec); errors.Cause(err) {
	case nil:
		return &rec, nil
	case state.ErrStateNotExist:
		return nil, errors.Wrapf(ErrNamespaceNotExist, "namespace %q", namespace)
	default:
		return nil, err
	}
}
