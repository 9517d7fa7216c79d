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

	"github.com/Walodja1987/xns-sub003/pkg/log"
	"github.com/Walodja1987/xns-sub003/protocol"
)

// BatchRegisterWithAuthorization applies delegated registrations in bulk, all in one
// namespace, all sponsored by the caller. Malformed input (bad label, null recipient,
// namespace mismatch, bad signature) aborts the whole batch; items that merely lost a race
// (name taken, recipient already named) are skipped so a front-runner cannot void the rest.
// Payment is charged once, after the loop, for the items that actually registered; a batch
// where everything was skipped charges nothing and is not a failure. Callers reconcile the
// returned count against the per-item notifications.
func (p *Protocol) BatchRegisterWithAuthorization(
	ctx context.Context,
	sm protocol.StateManager,
	reqs []Authorization,
	sigs [][]byte,
	payment *big.Int,
) (uint64, []*protocol.Log, error) {
	snapshot := sm.Snapshot()
	count, logs, err := p.batchRegister(ctx, sm, reqs, sigs, payment)
	if err != nil {
		if revertErr := sm.Revert(snapshot); revertErr != nil {
			return 0, nil, errors.Wrap(revertErr, "failed to discard aborted batch")
		}
		return 0, nil, err
	}
	return count, logs, nil
}

func (p *Protocol) batchRegister(
	ctx context.Context,
	sm protocol.StateManager,
	reqs []Authorization,
	sigs [][]byte,
	payment *big.Int,
) (uint64, []*protocol.Log, error) {
	actionCtx := protocol.MustGetActionCtx(ctx)

	if len(reqs) == 0 {
		return 0, nil, errors.Wrap(ErrBatchShape, "empty batch")
	}
	if len(reqs) != len(sigs) {
		return 0, nil, errors.Wrapf(ErrBatchShape, "%d requests, %d signatures", len(reqs), len(sigs))
	}
	namespace := p.normalizeNamespace(reqs[0].Namespace)
	nsRec, err := p.namespaceRecord(sm, namespace)
	if err != nil {
		return 0, nil, err
	}
	if err := p.checkRegistrationPolicy(ctx, nsRec, actionCtx.Caller, true); err != nil {
		return 0, nil, err
	}

	var (
		count uint64
		logs  []*protocol.Log
	)
	for i := range reqs {
		auth := reqs[i]
		auth.Namespace = p.normalizeNamespace(auth.Namespace)
		if !isValidSlug(auth.Label, p.cfg.MaxLabelLength) {
			return 0, nil, errors.Wrapf(ErrInvalidSlug, "label %q at index %d", auth.Label, i)
		}
		if auth.Recipient == (common.Address{}) {
			return 0, nil, errors.Wrapf(ErrNilRecipient, "at index %d", i)
		}
		if auth.Namespace != namespace {
			return 0, nil, errors.Wrapf(ErrNamespaceMismatch, "%q at index %d", auth.Namespace, i)
		}
		if len(sigs[i]) == 0 {
			return 0, nil, errors.Wrapf(ErrInvalidSignature, "empty signature at index %d", i)
		}
		// a lost race is the front-runner's win, not the batch's loss
		switch err := p.assertNameAvailable(sm, auth.Label, namespace, auth.Recipient); errors.Cause(err) {
		case nil:
		case ErrNameTaken, ErrAccountHasName:
			log.L().Debug("Skipping conflicted batch item.")
			continue
		default:
			return 0, nil, err
		}
		// verification only for items that still stand a chance
		if err := p.verifyAuthorization(ctx, sm, auth, sigs[i]); err != nil {
			return 0, nil, errors.Wrapf(err, "at index %d", i)
		}
		rLog, err := p.putName(sm, auth.Label, namespace, auth.Recipient)
		if err != nil {
			return 0, nil, err
		}
		logs = append(logs, rLog.Build(ctx))
		count++
	}
	if count == 0 {
		// nothing registered, nothing charged; the attached value never left the caller
		return 0, nil, nil
	}
	required := new(big.Int).Mul(nsRec.Price, new(big.Int).SetUint64(count))
	if err := p.payRegistration(ctx, sm, actionCtx.Caller, payment, required, nsRec); err != nil {
		return 0, nil, err
	}
	_namesRegisteredMtc.WithLabelValues("batch").Add(float64(count))
	return count, logs, nil
}
