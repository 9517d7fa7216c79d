// Copyright (c) 2024 XNS
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package registry

import (
	"fmt"
	"math/big"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/Walodja1987/xns-sub003/config"
	"github.com/Walodja1987/xns-sub003/test/identityset"
)

// batchFor builds authorizations and matching signatures for identities first..first+n-1,
// one bare name each.
func (env *testEnv) batchFor(t *testing.T, first, n int) ([]Authorization, [][]byte) {
	reqs := make([]Authorization, n)
	sigs := make([][]byte, n)
	for i := 0; i < n; i++ {
		reqs[i] = Authorization{
			Recipient: identityset.Address(first + i),
			Label:     fmt.Sprintf("user%d", first+i),
		}
		sigs[i] = env.sign(t, first+i, reqs[i])
	}
	return reqs, sigs
}

func TestBatchRegister(t *testing.T) {
	testProtocol(t, func(t *testing.T, env *testEnv) {
		r := require.New(t)

		price := config.Default.BareNamePrice()
		reqs, sigs := env.batchFor(t, 3, 3)
		required := new(big.Int).Mul(price, big.NewInt(3))
		before := env.balance(t, 1)

		env.withCaller(1)
		count, logs, err := env.p.BatchRegisterWithAuthorization(env.ctx, env.sm, reqs, sigs, required)
		r.NoError(err)
		r.Equal(uint64(3), count)
		r.Len(logs, 3)

		for i := 3; i < 6; i++ {
			owner, err := env.p.Resolve(env.sm, fmt.Sprintf("user%d", i), "")
			r.NoError(err)
			r.Equal(identityset.Address(i), owner)
		}
		r.Equal(required, new(big.Int).Sub(before, env.balance(t, 1)))
	})
}

func TestBatchRegister_SkipsLostRaces(t *testing.T) {
	testProtocol(t, func(t *testing.T, env *testEnv) {
		r := require.New(t)

		price := config.Default.BareNamePrice()

		// a front-runner grabs one of the batch's labels first
		env.withCaller(7)
		_, err := env.p.RegisterName(env.ctx, env.sm, "user4", "", price)
		r.NoError(err)

		reqs, sigs := env.batchFor(t, 3, 3)
		before := env.balance(t, 1)

		// the rest of the batch still lands, and only the rest is charged
		env.withCaller(1)
		count, logs, err := env.p.BatchRegisterWithAuthorization(env.ctx, env.sm, reqs, sigs, new(big.Int).Mul(price, big.NewInt(3)))
		r.NoError(err)
		r.Equal(uint64(2), count)
		r.Len(logs, 2)
		r.Equal(new(big.Int).Mul(price, big.NewInt(2)), new(big.Int).Sub(before, env.balance(t, 1)))

		_, err = env.p.Resolve(env.sm, "user3", "")
		r.NoError(err)
		owner, err := env.p.Resolve(env.sm, "user4", "")
		r.NoError(err)
		r.Equal(identityset.Address(7), owner)
	})
}

func TestBatchRegister_AllSkipped(t *testing.T) {
	testProtocol(t, func(t *testing.T, env *testEnv) {
		r := require.New(t)

		price := config.Default.BareNamePrice()
		reqs, sigs := env.batchFor(t, 3, 2)

		env.withCaller(1)
		count, _, err := env.p.BatchRegisterWithAuthorization(env.ctx, env.sm, reqs, sigs, new(big.Int).Mul(price, big.NewInt(2)))
		r.NoError(err)
		r.Equal(uint64(2), count)

		// replaying the whole batch is a no-op, not a failure, and charges nothing
		before := env.balance(t, 1)
		count, logs, err := env.p.BatchRegisterWithAuthorization(env.ctx, env.sm, reqs, sigs, new(big.Int).Mul(price, big.NewInt(2)))
		r.NoError(err)
		r.Zero(count)
		r.Empty(logs)
		r.Equal(before, env.balance(t, 1))
	})
}

func TestBatchRegister_IntraBatchDuplicate(t *testing.T) {
	testProtocol(t, func(t *testing.T, env *testEnv) {
		r := require.New(t)

		price := config.Default.BareNamePrice()
		auth := Authorization{Recipient: identityset.Address(3), Label: "user3"}
		sig := env.sign(t, 3, auth)

		// the same recipient twice: the second occurrence is a skip, not an abort
		env.withCaller(1)
		count, _, err := env.p.BatchRegisterWithAuthorization(
			env.ctx, env.sm,
			[]Authorization{auth, auth},
			[][]byte{sig, sig},
			new(big.Int).Mul(price, big.NewInt(2)),
		)
		r.NoError(err)
		r.Equal(uint64(1), count)
	})
}

func TestBatchRegister_Aborts(t *testing.T) {
	testProtocol(t, func(t *testing.T, env *testEnv) {
		r := require.New(t)

		price := config.Default.BareNamePrice()
		env.withCaller(1)

		_, _, err := env.p.BatchRegisterWithAuthorization(env.ctx, env.sm, nil, nil, price)
		r.Equal(ErrBatchShape, errors.Cause(err))

		reqs, sigs := env.batchFor(t, 3, 2)
		_, _, err = env.p.BatchRegisterWithAuthorization(env.ctx, env.sm, reqs, sigs[:1], price)
		r.Equal(ErrBatchShape, errors.Cause(err))

		// a malformed item voids the whole batch
		bad := make([]Authorization, len(reqs))
		copy(bad, reqs)
		bad[1].Label = "NOPE"
		_, _, err = env.p.BatchRegisterWithAuthorization(env.ctx, env.sm, bad, sigs, price)
		r.Equal(ErrInvalidSlug, errors.Cause(err))

		copy(bad, reqs)
		bad[1].Namespace = "abc"
		_, _, err = env.p.BatchRegisterWithAuthorization(env.ctx, env.sm, bad, sigs, price)
		r.Equal(ErrNamespaceMismatch, errors.Cause(err))

		// a bad signature too, even when earlier items already registered
		forged := [][]byte{sigs[0], env.sign(t, 5, reqs[1])}
		_, _, err = env.p.BatchRegisterWithAuthorization(env.ctx, env.sm, reqs, forged, new(big.Int).Mul(price, big.NewInt(2)))
		r.Equal(ErrInvalidSignature, errors.Cause(err))

		// the abort reverted every item, including the ones before the bad one
		_, err = env.p.Resolve(env.sm, "user3", "")
		r.Equal(ErrNameNotExist, errors.Cause(err))

		_, _, err = env.p.BatchRegisterWithAuthorization(env.ctx, env.sm, reqs, [][]byte{sigs[0], nil}, price)
		r.Equal(ErrInvalidSignature, errors.Cause(err))
	})
}

func TestBatchRegister_Underfunded(t *testing.T) {
	testProtocol(t, func(t *testing.T, env *testEnv) {
		r := require.New(t)

		price := config.Default.BareNamePrice()
		reqs, sigs := env.batchFor(t, 3, 3)

		// two names' worth of value cannot pay for three registrations
		env.withCaller(1)
		_, _, err := env.p.BatchRegisterWithAuthorization(env.ctx, env.sm, reqs, sigs, new(big.Int).Mul(price, big.NewInt(2)))
		r.Equal(ErrInsufficientFunds, errors.Cause(err))

		_, err = env.p.Resolve(env.sm, "user3", "")
		r.Equal(ErrNameNotExist, errors.Cause(err))
	})
}

func TestBatchRegister_PolicyPrecheck(t *testing.T) {
	testProtocol(t, func(t *testing.T, env *testEnv) {
		r := require.New(t)

		price := env.stepPrice(5)
		env.registerNamespace(t, 1, "abc", price, false)

		reqs := []Authorization{{Recipient: identityset.Address(3), Label: "user3", Namespace: "abc"}}
		sigs := [][]byte{env.sign(t, 3, reqs[0])}

		// inside the exclusivity window only the owner may sponsor a batch
		env.withCaller(2)
		_, _, err := env.p.BatchRegisterWithAuthorization(env.ctx, env.sm, reqs, sigs, price)
		r.Equal(ErrUnauthorized, errors.Cause(err))

		env.withCaller(1)
		count, _, err := env.p.BatchRegisterWithAuthorization(env.ctx, env.sm, reqs, sigs, price)
		r.NoError(err)
		r.Equal(uint64(1), count)
	})
}
