// Copyright (c) 2024 XNS
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

// Package burnsink destroys value irreversibly and credits the payer with a non-transferable
// record of having done so. It keeps its books in the same state store as the registry, so a
// burn reverts together with the operation that triggered it.
package burnsink

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"

	"github.com/Walodja1987/xns-sub003/protocol"
	"github.com/Walodja1987/xns-sub003/protocol/account"
	"github.com/Walodja1987/xns-sub003/state"
)

// StorageNamespace is the storage namespace of burn records.
const StorageNamespace = "BurnSink"

var _totalKey = []byte("total")

// sink tracks the total amount ever destroyed.
type sink struct {
	Burned *big.Int
}

// Serialize serializes the sink state into bytes
func (s *sink) Serialize() ([]byte, error) {
	return rlp.EncodeToBytes(s)
}

// Deserialize deserializes bytes into the sink state
func (s *sink) Deserialize(data []byte) error {
	if err := rlp.DecodeBytes(data, s); err != nil {
		return errors.Wrap(state.ErrStateDeserialization, err.Error())
	}
	return nil
}

// record stores the amount one account has burned.
type record struct {
	Burned *big.Int
}

// Serialize serializes a burn record into bytes
func (r *record) Serialize() ([]byte, error) {
	return rlp.EncodeToBytes(r)
}

// Deserialize deserializes bytes into a burn record
func (r *record) Deserialize(data []byte) error {
	if err := rlp.DecodeBytes(data, r); err != nil {
		return errors.Wrap(state.ErrStateDeserialization, err.Error())
	}
	return nil
}

// Burner is the reference Burn Sink. The difference between an account's balance before and
// after a burn is gone for good; only the credit record remains.
type Burner struct{}

// New creates a burner.
func New() *Burner {
	return &Burner{}
}

// Burn destroys amount out of payer's balance and credits payer with the burn.
func (b *Burner) Burn(_ context.Context, sm protocol.StateManager, payer common.Address, amount *big.Int) error {
	if amount == nil || amount.Sign() < 0 {
		return errors.Errorf("invalid burn amount %v", amount)
	}
	if amount.Sign() == 0 {
		return nil
	}
	if err := account.SubBalanceFrom(sm, payer, amount); err != nil {
		return errors.Wrap(err, "failed to collect burn amount")
	}
	rec := record{Burned: big.NewInt(0)}
	if err := b.state(sm, payer.Bytes(), &rec); err != nil {
		return err
	}
	rec.Burned = new(big.Int).Add(rec.Burned, amount)
	if err := sm.PutState(&rec, protocol.NamespaceOption(StorageNamespace), protocol.KeyOption(payer.Bytes())); err != nil {
		return err
	}
	total := sink{Burned: big.NewInt(0)}
	if err := b.state(sm, _totalKey, &total); err != nil {
		return err
	}
	total.Burned = new(big.Int).Add(total.Burned, amount)
	return sm.PutState(&total, protocol.NamespaceOption(StorageNamespace), protocol.KeyOption(_totalKey))
}

// Burned returns the amount the given account has burned.
func (b *Burner) Burned(sr protocol.StateReader, addr common.Address) (*big.Int, error) {
	rec := record{Burned: big.NewInt(0)}
	if err := b.readState(sr, addr.Bytes(), &rec); err != nil {
		return nil, err
	}
	return rec.Burned, nil
}

// TotalBurned returns the total amount ever destroyed.
func (b *Burner) TotalBurned(sr protocol.StateReader) (*big.Int, error) {
	total := sink{Burned: big.NewInt(0)}
	if err := b.readState(sr, _totalKey, &total); err != nil {
		return nil, err
	}
	return total.Burned, nil
}

func (b *Burner) state(sm protocol.StateManager, key []byte, value interface{}) error {
	return b.readState(sm, key, value)
}

func (b *Burner) readState(sr protocol.StateReader, key []byte, value interface{}) error {
	switch err := sr.State(value, protocol.NamespaceOption(StorageNamespace), protocol.KeyOption(key)); errors.Cause(err) {
	case nil, state.ErrStateNotExist:
		return nil
	default:
		return err
	}
}
