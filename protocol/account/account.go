// Copyright (c) 2024 XNS
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

// Package account tracks the value balances the registry charges against. The host ledger owns
// the authoritative balances; this mirror exists so operations, burns and refunds stay atomic
// with the rest of an operation's state.
package account

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"

	"github.com/Walodja1987/xns-sub003/protocol"
	"github.com/Walodja1987/xns-sub003/state"
)

// StorageNamespace is the storage namespace of account records.
const StorageNamespace = "Account"

// ErrNotEnoughBalance is the error that the account does not have enough balance
var ErrNotEnoughBalance = errors.New("not enough balance")

// Account is the canonical representation of an account.
type Account struct {
	Balance *big.Int
	// CodeHash is non-empty iff the account is a smart account
	CodeHash []byte
}

type accountpb struct {
	Balance  *big.Int
	CodeHash []byte
}

// Serialize serializes account state into bytes
func (a *Account) Serialize() ([]byte, error) {
	return rlp.EncodeToBytes(&accountpb{
		Balance:  a.Balance,
		CodeHash: a.CodeHash,
	})
}

// Deserialize deserializes bytes into account state
func (a *Account) Deserialize(data []byte) error {
	gen := accountpb{}
	if err := rlp.DecodeBytes(data, &gen); err != nil {
		return errors.Wrap(state.ErrStateDeserialization, err.Error())
	}
	a.Balance = gen.Balance
	a.CodeHash = gen.CodeHash
	if a.Balance == nil {
		a.Balance = big.NewInt(0)
	}
	return nil
}

// AddBalance adds balance to the account
func (a *Account) AddBalance(amount *big.Int) error {
	if amount == nil || amount.Sign() < 0 {
		return errors.Errorf("invalid amount %v", amount)
	}
	a.Balance = new(big.Int).Add(a.Balance, amount)
	return nil
}

// SubBalance subtracts balance from the account
func (a *Account) SubBalance(amount *big.Int) error {
	if amount == nil || amount.Sign() < 0 {
		return errors.Errorf("invalid amount %v", amount)
	}
	// make sure there's enough fund to spend
	if amount.Cmp(a.Balance) == 1 {
		return ErrNotEnoughBalance
	}
	a.Balance = new(big.Int).Sub(a.Balance, amount)
	return nil
}

// IsContract reports whether the account carries smart-account code.
func (a *Account) IsContract() bool {
	return len(a.CodeHash) > 0
}

// LoadAccount loads the account of addr; a missing account reads as an empty one.
func LoadAccount(sr protocol.StateReader, addr common.Address) (*Account, error) {
	acc := Account{Balance: big.NewInt(0)}
	switch err := sr.State(&acc, protocol.NamespaceOption(StorageNamespace), protocol.KeyOption(addr.Bytes())); errors.Cause(err) {
	case nil, state.ErrStateNotExist:
		return &acc, nil
	default:
		return nil, err
	}
}

// StoreAccount stores the account of addr.
func StoreAccount(sm protocol.StateManager, addr common.Address, acc *Account) error {
	return sm.PutState(acc, protocol.NamespaceOption(StorageNamespace), protocol.KeyOption(addr.Bytes()))
}

// AddBalanceTo credits amount to the account of addr.
func AddBalanceTo(sm protocol.StateManager, addr common.Address, amount *big.Int) error {
	acc, err := LoadAccount(sm, addr)
	if err != nil {
		return err
	}
	if err := acc.AddBalance(amount); err != nil {
		return err
	}
	return StoreAccount(sm, addr, acc)
}

// SubBalanceFrom debits amount from the account of addr.
func SubBalanceFrom(sm protocol.StateManager, addr common.Address, amount *big.Int) error {
	acc, err := LoadAccount(sm, addr)
	if err != nil {
		return err
	}
	if err := acc.SubBalance(amount); err != nil {
		return err
	}
	return StoreAccount(sm, addr, acc)
}
