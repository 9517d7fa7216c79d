// Copyright (c) 2024 XNS
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package protocol

import (
	"github.com/pkg/errors"
)

// SystemNamespace is the storage namespace used when no NamespaceOption is given.
const SystemNamespace = "System"

type (
	// StateConfig is the config for accessing the state store
	StateConfig struct {
		Namespace string // namespace used by state's storage
		Key       []byte
	}

	// StateOption sets parameter for accessing state
	StateOption func(*StateConfig) error

	// StateReader defines an interface to read the state store
	StateReader interface {
		State(interface{}, ...StateOption) error
	}

	// StateManager defines the stateful store an operation mutates; the host commits or
	// discards it as a whole
	StateManager interface {
		StateReader
		Snapshot() int
		Revert(int) error
		PutState(interface{}, ...StateOption) error
		DelState(...StateOption) error
	}
)

// NamespaceOption creates an option for the given namespace
func NamespaceOption(ns string) StateOption {
	return func(sc *StateConfig) error {
		sc.Namespace = ns
		return nil
	}
}

// KeyOption sets the key for call
func KeyOption(key []byte) StateOption {
	return func(cfg *StateConfig) error {
		cfg.Key = make([]byte, len(key))
		copy(cfg.Key, key)
		return nil
	}
}

// CreateStateConfig creates a config for accessing the state store
func CreateStateConfig(opts ...StateOption) (*StateConfig, error) {
	cfg := StateConfig{Namespace: SystemNamespace}
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return nil, errors.Wrap(err, "failed to execute state option")
		}
	}
	return &cfg, nil
}
