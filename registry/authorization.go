// Copyright (c) 2024 XNS
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package registry

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"

	"github.com/Walodja1987/xns-sub003/protocol"
	"github.com/Walodja1987/xns-sub003/protocol/account"
)

// Authorization is a recipient's consent for a sponsor to register a name on their behalf.
// It is never persisted and carries no nonce and no expiry: replaying it cannot hurt the
// recipient (the sponsor pays, and one-name-per-account caps the effect at a single name).
type Authorization struct {
	Recipient common.Address
	Label     string
	Namespace string
}

const (
	_signingDomainName    = "XNS"
	_signingDomainVersion = "1"
)

var (
	_domainTypeHash       = crypto.Keccak256([]byte("EIP712Domain(string name,string version,uint256 chainId,address verifyingContract)"))
	_registrationTypeHash = crypto.Keccak256([]byte("Registration(address recipient,string label,string namespace)"))
)

// AuthorizationDigest computes the typed, domain-separated digest the recipient signs. The
// domain binds the chain and this registry's address so a signature cannot be replayed
// against another system. The namespace must already be in its normalized form (the reserved
// namespace spelled out, not the empty string).
func (p *Protocol) AuthorizationDigest(chainID uint64, auth Authorization) common.Hash {
	domainSeparator := crypto.Keccak256(
		_domainTypeHash,
		crypto.Keccak256([]byte(_signingDomainName)),
		crypto.Keccak256([]byte(_signingDomainVersion)),
		common.BigToHash(new(big.Int).SetUint64(chainID)).Bytes(),
		common.BytesToHash(p.addr.Bytes()).Bytes(),
	)
	structHash := crypto.Keccak256(
		_registrationTypeHash,
		common.BytesToHash(auth.Recipient.Bytes()).Bytes(),
		crypto.Keccak256([]byte(auth.Label)),
		crypto.Keccak256([]byte(auth.Namespace)),
	)
	return crypto.Keccak256Hash([]byte{0x19, 0x01}, domainSeparator, structHash)
}

// verifyAuthorization dispatches on what the recipient is right now: an account carrying
// code validates through the configured smart-account validator, a plain keyholder through
// signature recovery.
func (p *Protocol) verifyAuthorization(ctx context.Context, sr protocol.StateReader, auth Authorization, sig []byte) error {
	chainCtx := protocol.MustGetChainCtx(ctx)
	digest := p.AuthorizationDigest(chainCtx.ChainID, auth)

	acc, err := account.LoadAccount(sr, auth.Recipient)
	if err != nil {
		return err
	}
	if acc.IsContract() {
		if p.validator == nil {
			return errors.Wrap(ErrInvalidSignature, "no smart-account validator configured")
		}
		valid, err := p.validator.ValidateSignature(auth.Recipient, digest, sig)
		if err != nil {
			return errors.Wrap(ErrInvalidSignature, err.Error())
		}
		if !valid {
			return errors.Wrapf(ErrInvalidSignature, "smart account %s rejected the signature", auth.Recipient)
		}
		return nil
	}
	if len(sig) != crypto.SignatureLength {
		return errors.Wrapf(ErrInvalidSignature, "malformed signature of %d bytes", len(sig))
	}
	normalized := make([]byte, crypto.SignatureLength)
	copy(normalized, sig)
	if normalized[crypto.RecoveryIDOffset] >= 27 {
		normalized[crypto.RecoveryIDOffset] -= 27
	}
	pub, err := crypto.SigToPub(digest.Bytes(), normalized)
	if err != nil {
		return errors.Wrap(ErrInvalidSignature, err.Error())
	}
	if crypto.PubkeyToAddress(*pub) != auth.Recipient {
		return errors.Wrapf(ErrInvalidSignature, "signature is not from %s", auth.Recipient)
	}
	return nil
}
