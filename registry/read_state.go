// Copyright (c) 2024 XNS
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package registry

import (
	"context"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"

	"github.com/Walodja1987/xns-sub003/protocol"
	"github.com/Walodja1987/xns-sub003/state"
)

// NamespaceMeta is the read-only view of a namespace record.
type NamespaceMeta struct {
	Namespace    string
	Price        *big.Int
	Owner        common.Address
	CreatedAt    time.Time
	Private      bool
	PendingOwner common.Address
}

// Resolve returns the owner of (label, namespace); an empty namespace denotes the reserved
// bare-name namespace.
func (p *Protocol) Resolve(sr protocol.StateReader, label, namespace string) (common.Address, error) {
	namespace = p.normalizeNamespace(namespace)
	rec := nameRecord{}
	switch err := p.state(sr, _nameKeyPrefix, []byte(canonicalKey(label, namespace)), &rec); errors.Cause(err) {
	case nil:
		return rec.Owner, nil
	case state.ErrStateNotExist:
		return common.Address{}, errors.Wrapf(ErrNameNotExist, "name %q", canonicalKey(label, namespace))
	default:
		return common.Address{}, err
	}
}

// ResolveString resolves a rendered name: either a plain label (a bare name) or
// "label.namespace".
func (p *Protocol) ResolveString(sr protocol.StateReader, name string) (common.Address, error) {
	parts := strings.Split(name, ".")
	switch len(parts) {
	case 1:
		return p.Resolve(sr, parts[0], "")
	case 2:
		return p.Resolve(sr, parts[0], parts[1])
	default:
		return common.Address{}, errors.Wrapf(ErrInvalidSlug, "name %q", name)
	}
}

// ReverseResolve returns the rendered name an account owns: bare names render as the plain
// label, every other name as "label.namespace".
func (p *Protocol) ReverseResolve(sr protocol.StateReader, addr common.Address) (string, error) {
	rev := reverseRecord{}
	switch err := p.state(sr, _reverseKeyPrefix, addr.Bytes(), &rev); errors.Cause(err) {
	case nil:
	case state.ErrStateNotExist:
		return "", errors.Wrapf(ErrNameNotExist, "account %s", addr)
	default:
		return "", err
	}
	if rev.Namespace == p.cfg.ReservedNamespace {
		return rev.Label, nil
	}
	return canonicalKey(rev.Label, rev.Namespace), nil
}

// Namespace returns the metadata of a namespace.
func (p *Protocol) Namespace(sr protocol.StateReader, namespace string) (*NamespaceMeta, error) {
	namespace = p.normalizeNamespace(namespace)
	rec, err := p.namespaceRecord(sr, namespace)
	if err != nil {
		return nil, err
	}
	return &NamespaceMeta{
		Namespace:    namespace,
		Price:        rec.Price,
		Owner:        rec.Owner,
		CreatedAt:    time.Unix(int64(rec.CreatedAt), 0),
		Private:      rec.Private,
		PendingOwner: rec.PendingOwner,
	}, nil
}

// NamespaceByPrice returns the metadata of the namespace charging exactly price per name.
func (p *Protocol) NamespaceByPrice(sr protocol.StateReader, price *big.Int) (*NamespaceMeta, error) {
	if price == nil || price.Sign() <= 0 {
		return nil, errors.Wrap(ErrInvalidPrice, "price must be positive")
	}
	idx := priceIndex{}
	switch err := p.state(sr, _priceKeyPrefix, price.Bytes(), &idx); errors.Cause(err) {
	case nil:
		return p.Namespace(sr, idx.Namespace)
	case state.ErrStateNotExist:
		return nil, errors.Wrapf(ErrNamespaceNotExist, "no namespace priced at %s", price)
	default:
		return nil, err
	}
}

// PendingFees returns the claimable fee balance of addr; zero if it never accrued any.
func (p *Protocol) PendingFees(sr protocol.StateReader, addr common.Address) (*big.Int, error) {
	fees := feeAccount{Balance: big.NewInt(0)}
	switch err := p.state(sr, _feeKeyPrefix, addr.Bytes(), &fees); errors.Cause(err) {
	case nil, state.ErrStateNotExist:
		return fees.Balance, nil
	default:
		return nil, err
	}
}

// Admin returns the current privileged system account.
func (p *Protocol) Admin(sr protocol.StateReader) (common.Address, error) {
	admin, err := p.admin(sr)
	if err != nil {
		return common.Address{}, err
	}
	return admin.Admin, nil
}

// IsValidLabel reports whether s is acceptable as a label.
func (p *Protocol) IsValidLabel(s string) bool {
	return isValidSlug(s, p.cfg.MaxLabelLength)
}

// IsValidNamespace reports whether s is acceptable as a namespace slug.
func (p *Protocol) IsValidNamespace(s string) bool {
	return isValidSlug(s, p.cfg.MaxNamespaceLength)
}

// CheckAuthorization verifies an authorization signature without committing anything.
func (p *Protocol) CheckAuthorization(ctx context.Context, sr protocol.StateReader, auth Authorization, sig []byte) error {
	auth.Namespace = p.normalizeNamespace(auth.Namespace)
	return p.verifyAuthorization(ctx, sr, auth, sig)
}

// InExclusivityWindow reports whether the namespace is still owner-only at the given time.
func (p *Protocol) InExclusivityWindow(sr protocol.StateReader, namespace string, now time.Time) (bool, error) {
	namespace = p.normalizeNamespace(namespace)
	rec, err := p.namespaceRecord(sr, namespace)
	if err != nil {
		return false, err
	}
	if rec.Private {
		return false, nil
	}
	return p.insideExclusivityWindow(rec, now), nil
}
