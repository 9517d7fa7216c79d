// Copyright (c) 2024 XNS
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package state

import (
	"github.com/pkg/errors"

	"github.com/Walodja1987/xns-sub003/protocol"
)

// WorkingSet is an in-memory state store with snapshot/revert semantics. It is the staging
// copy an operation mutates; the host ledger commits it as a whole, or an aborted operation
// rolls it back to the snapshot taken on entry.
type WorkingSet struct {
	store     map[string][]byte
	snapshots []map[string][]byte
}

// NewWorkingSet creates an empty working set.
func NewWorkingSet() *WorkingSet {
	return &WorkingSet{
		store: make(map[string][]byte),
	}
}

// State reads a state record into s.
func (ws *WorkingSet) State(s interface{}, opts ...protocol.StateOption) error {
	cfg, err := protocol.CreateStateConfig(opts...)
	if err != nil {
		return err
	}
	value, ok := ws.store[storeKey(cfg)]
	if !ok {
		return errors.Wrapf(ErrStateNotExist, "namespace %s", cfg.Namespace)
	}
	return Deserialize(s, value)
}

// PutState writes a state record.
func (ws *WorkingSet) PutState(s interface{}, opts ...protocol.StateOption) error {
	cfg, err := protocol.CreateStateConfig(opts...)
	if err != nil {
		return err
	}
	value, err := Serialize(s)
	if err != nil {
		return err
	}
	ws.store[storeKey(cfg)] = value
	return nil
}

// DelState deletes a state record.
func (ws *WorkingSet) DelState(opts ...protocol.StateOption) error {
	cfg, err := protocol.CreateStateConfig(opts...)
	if err != nil {
		return err
	}
	delete(ws.store, storeKey(cfg))
	return nil
}

// Snapshot records the current state and returns a handle Revert accepts.
func (ws *WorkingSet) Snapshot() int {
	copied := make(map[string][]byte, len(ws.store))
	for k, v := range ws.store {
		copied[k] = v
	}
	ws.snapshots = append(ws.snapshots, copied)
	return len(ws.snapshots) - 1
}

// Revert restores the state recorded by the given snapshot and drops it and every later one.
func (ws *WorkingSet) Revert(snapshot int) error {
	if snapshot < 0 || snapshot >= len(ws.snapshots) {
		return errors.Errorf("invalid state snapshot number = %d", snapshot)
	}
	ws.store = ws.snapshots[snapshot]
	ws.snapshots = ws.snapshots[:snapshot]
	return nil
}

func storeKey(cfg *protocol.StateConfig) string {
	return cfg.Namespace + "." + string(cfg.Key)
}
