// Copyright (c) 2024 XNS
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

// Package registry implements the name registry protocol: priced namespaces, permanent
// burn-backed name claims, delegated and batch registration, fee accrual and two-phase
// ownership transfer.
package registry

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"

	"github.com/Walodja1987/xns-sub003/config"
	"github.com/Walodja1987/xns-sub003/pkg/log"
	"github.com/Walodja1987/xns-sub003/protocol"
	"github.com/Walodja1987/xns-sub003/state"
)

const (
	protocolID = "xns"

	// StorageNamespace is the storage namespace of registry records.
	StorageNamespace = "Registry"
)

var (
	_adminKey           = []byte("admin")
	_namespaceKeyPrefix = []byte("ns")
	_priceKeyPrefix     = []byte("price")
	_nameKeyPrefix      = []byte("name")
	_reverseKeyPrefix   = []byte("rev")
	_feeKeyPrefix       = []byte("fee")
)

type (
	// BurnSink is the external value-destruction collaborator. The registry always credits
	// the paying account, never the name recipient.
	BurnSink interface {
		Burn(ctx context.Context, sm protocol.StateManager, payer common.Address, amount *big.Int) error
		Burned(sr protocol.StateReader, addr common.Address) (*big.Int, error)
		TotalBurned(sr protocol.StateReader) (*big.Int, error)
	}

	// SignatureValidator validates an authorization digest on behalf of a smart account, the
	// way ERC-1271 lets contract wallets define their own signature scheme.
	SignatureValidator interface {
		ValidateSignature(recipient common.Address, digest common.Hash, sig []byte) (bool, error)
	}

	// Option sets an optional collaborator on the protocol.
	Option func(*Protocol)

	// Protocol defines the name registry protocol.
	Protocol struct {
		cfg       config.Registry
		addr      common.Address
		keyPrefix []byte
		burner    BurnSink
		validator SignatureValidator
	}
)

// WithSignatureValidator wires the smart-account signature validator.
func WithSignatureValidator(v SignatureValidator) Option {
	return func(p *Protocol) {
		p.validator = v
	}
}

// NewProtocol instantiates a registry protocol instance.
func NewProtocol(cfg config.Registry, burner BurnSink, opts ...Option) (*Protocol, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid registry config")
	}
	if burner == nil {
		return nil, errors.New("burn sink is required")
	}
	h := crypto.Keccak256([]byte(protocolID))
	p := &Protocol{
		cfg:       cfg,
		addr:      common.BytesToAddress(h[12:]),
		keyPrefix: h,
		burner:    burner,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Address returns the address of this protocol.
func (p *Protocol) Address() common.Address {
	return p.addr
}

// adminRecord holds the privileged system account and its pending two-phase successor.
type adminRecord struct {
	Admin        common.Address
	PendingAdmin common.Address
}

// Serialize serializes the admin record into bytes
func (a *adminRecord) Serialize() ([]byte, error) {
	return rlp.EncodeToBytes(a)
}

// Deserialize deserializes bytes into the admin record
func (a *adminRecord) Deserialize(data []byte) error {
	if err := rlp.DecodeBytes(data, a); err != nil {
		return errors.Wrap(state.ErrStateDeserialization, err.Error())
	}
	return nil
}

// CreateGenesisStates installs the privileged account and the reserved bare-name namespace.
func (p *Protocol) CreateGenesisStates(ctx context.Context, sm protocol.StateManager) error {
	admin := common.HexToAddress(p.cfg.Admin)
	if admin == (common.Address{}) {
		return errors.New("genesis admin account is not configured")
	}
	if err := p.putState(sm, _adminKey, nil, &adminRecord{Admin: admin}); err != nil {
		return err
	}
	// the reserved namespace is born public and already outside its exclusivity window, so
	// bare names are open to everyone from the first block
	reserved := &namespaceRecord{
		Price:     p.cfg.BareNamePrice(),
		Owner:     admin,
		CreatedAt: 0,
		Private:   false,
	}
	if err := p.putState(sm, _namespaceKeyPrefix, []byte(p.cfg.ReservedNamespace), reserved); err != nil {
		return err
	}
	if err := p.putState(sm, _priceKeyPrefix, reserved.Price.Bytes(), &priceIndex{Namespace: p.cfg.ReservedNamespace}); err != nil {
		return err
	}
	log.L().Debug("Created registry genesis states.")
	return nil
}

// run executes fn inside the operation's all-or-nothing boundary.
func (p *Protocol) run(sm protocol.StateManager, fn func() ([]*protocol.Log, error)) ([]*protocol.Log, error) {
	snapshot := sm.Snapshot()
	logs, err := fn()
	if err != nil {
		if revertErr := sm.Revert(snapshot); revertErr != nil {
			return nil, errors.Wrap(revertErr, "failed to discard aborted operation")
		}
		return nil, err
	}
	return logs, nil
}

func (p *Protocol) state(sr protocol.StateReader, prefix, key []byte, value interface{}) error {
	return sr.State(value, protocol.NamespaceOption(StorageNamespace), protocol.KeyOption(p.keyHash(prefix, key)))
}

func (p *Protocol) putState(sm protocol.StateManager, prefix, key []byte, value interface{}) error {
	return sm.PutState(value, protocol.NamespaceOption(StorageNamespace), protocol.KeyOption(p.keyHash(prefix, key)))
}

func (p *Protocol) delState(sm protocol.StateManager, prefix, key []byte) error {
	return sm.DelState(protocol.NamespaceOption(StorageNamespace), protocol.KeyOption(p.keyHash(prefix, key)))
}

func (p *Protocol) keyHash(prefix, key []byte) []byte {
	return crypto.Keccak256(p.keyPrefix, prefix, key)
}

func (p *Protocol) admin(sr protocol.StateReader) (*adminRecord, error) {
	rec := adminRecord{}
	if err := p.state(sr, _adminKey, nil, &rec); err != nil {
		return nil, errors.Wrap(err, "failed to load admin record")
	}
	return &rec, nil
}
