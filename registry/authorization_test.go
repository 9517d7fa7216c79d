// Copyright (c) 2024 XNS
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package registry

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/Walodja1987/xns-sub003/config"
	"github.com/Walodja1987/xns-sub003/protocol/account"
	"github.com/Walodja1987/xns-sub003/test/identityset"
)

// stubValidator decides smart-account signatures by a fixed verdict and records the digest
// it was asked about.
type stubValidator struct {
	valid  bool
	err    error
	digest common.Hash
}

func (v *stubValidator) ValidateSignature(_ common.Address, digest common.Hash, _ []byte) (bool, error) {
	v.digest = digest
	return v.valid, v.err
}

func TestAuthorizationDigest(t *testing.T) {
	testProtocol(t, func(t *testing.T, env *testEnv) {
		r := require.New(t)

		auth := Authorization{
			Recipient: identityset.Address(3),
			Label:     "carol",
			Namespace: config.Default.ReservedNamespace,
		}
		digest := env.p.AuthorizationDigest(1, auth)
		r.Equal(digest, env.p.AuthorizationDigest(1, auth))

		// every field of the struct and the domain moves the digest
		r.NotEqual(digest, env.p.AuthorizationDigest(2, auth))
		other := auth
		other.Label = "caro"
		r.NotEqual(digest, env.p.AuthorizationDigest(1, other))
		other = auth
		other.Namespace = "abc"
		r.NotEqual(digest, env.p.AuthorizationDigest(1, other))
		other = auth
		other.Recipient = identityset.Address(4)
		r.NotEqual(digest, env.p.AuthorizationDigest(1, other))
	})
}

func TestCheckAuthorization_DirectKey(t *testing.T) {
	testProtocol(t, func(t *testing.T, env *testEnv) {
		r := require.New(t)

		auth := Authorization{
			Recipient: identityset.Address(3),
			Label:     "carol",
			Namespace: config.Default.ReservedNamespace,
		}
		sig := env.sign(t, 3, auth)
		r.NoError(env.p.CheckAuthorization(env.ctx, env.sm, auth, sig))

		// both recovery id conventions are accepted
		legacy := make([]byte, len(sig))
		copy(legacy, sig)
		legacy[crypto.RecoveryIDOffset] += 27
		r.NoError(env.p.CheckAuthorization(env.ctx, env.sm, auth, legacy))

		// a signature by anyone but the recipient is rejected
		err := env.p.CheckAuthorization(env.ctx, env.sm, auth, env.sign(t, 4, auth))
		r.Equal(ErrInvalidSignature, errors.Cause(err))

		// so is a signature over different contents
		other := auth
		other.Label = "mallory"
		err = env.p.CheckAuthorization(env.ctx, env.sm, other, sig)
		r.Equal(ErrInvalidSignature, errors.Cause(err))

		for _, malformed := range [][]byte{nil, {}, sig[:64], append(append([]byte{}, sig...), 0x00)} {
			err = env.p.CheckAuthorization(env.ctx, env.sm, auth, malformed)
			r.Equal(ErrInvalidSignature, errors.Cause(err), "signature of %d bytes", len(malformed))
		}
	})
}

func markContract(t *testing.T, env *testEnv, i int) {
	acc, err := account.LoadAccount(env.sm, identityset.Address(i))
	require.NoError(t, err)
	acc.CodeHash = crypto.Keccak256([]byte("wallet code"))
	require.NoError(t, account.StoreAccount(env.sm, identityset.Address(i), acc))
}

func TestCheckAuthorization_SmartAccount(t *testing.T) {
	validator := &stubValidator{valid: true}
	testProtocol(t, func(t *testing.T, env *testEnv) {
		r := require.New(t)

		markContract(t, env, 3)
		auth := Authorization{
			Recipient: identityset.Address(3),
			Label:     "carol",
			Namespace: config.Default.ReservedNamespace,
		}

		// the validator's verdict is authoritative, whatever the bytes look like
		r.NoError(env.p.CheckAuthorization(env.ctx, env.sm, auth, []byte("opaque wallet proof")))
		r.Equal(env.p.AuthorizationDigest(config.Default.ChainID, auth), validator.digest)

		validator.valid = false
		err := env.p.CheckAuthorization(env.ctx, env.sm, auth, env.sign(t, 3, auth))
		r.Equal(ErrInvalidSignature, errors.Cause(err))

		validator.err = errors.New("wallet unreachable")
		err = env.p.CheckAuthorization(env.ctx, env.sm, auth, []byte("proof"))
		r.Equal(ErrInvalidSignature, errors.Cause(err))
	}, WithSignatureValidator(validator))
}

func TestCheckAuthorization_SmartAccountWithoutValidator(t *testing.T) {
	testProtocol(t, func(t *testing.T, env *testEnv) {
		r := require.New(t)

		markContract(t, env, 3)
		auth := Authorization{
			Recipient: identityset.Address(3),
			Label:     "carol",
			Namespace: config.Default.ReservedNamespace,
		}
		err := env.p.CheckAuthorization(env.ctx, env.sm, auth, env.sign(t, 3, auth))
		r.Equal(ErrInvalidSignature, errors.Cause(err))
	})
}

func TestRegisterNameFor_SmartAccount(t *testing.T) {
	testProtocol(t, func(t *testing.T, env *testEnv) {
		r := require.New(t)

		markContract(t, env, 3)
		auth := Authorization{Recipient: identityset.Address(3), Label: "wallet"}

		env.withCaller(1)
		_, err := env.p.RegisterNameFor(env.ctx, env.sm, auth, []byte("opaque wallet proof"), config.Default.BareNamePrice())
		r.NoError(err)

		owner, err := env.p.Resolve(env.sm, "wallet", "")
		r.NoError(err)
		r.Equal(identityset.Address(3), owner)
	}, WithSignatureValidator(&stubValidator{valid: true}))
}

func TestRegisterNameFor_NilRecipient(t *testing.T) {
	testProtocol(t, func(t *testing.T, env *testEnv) {
		r := require.New(t)

		env.withCaller(1)
		auth := Authorization{Label: "carol"}
		_, err := env.p.RegisterNameFor(env.ctx, env.sm, auth, []byte{}, big.NewInt(0))
		r.Equal(ErrNilRecipient, errors.Cause(err))
	})
}
