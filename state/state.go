// Copyright (c) 2024 XNS
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package state

import (
	"github.com/pkg/errors"
)

var (
	// ErrStateNotExist defines an error that the state does not exist
	ErrStateNotExist = errors.New("state does not exist")
	// ErrStateSerialization defines an error when marshaling a state fails
	ErrStateSerialization = errors.New("failed to marshal state")
	// ErrStateDeserialization defines an error when unmarshaling a state fails
	ErrStateDeserialization = errors.New("failed to unmarshal state")
)

// State is the interface, which defines the common methods for state struct to be handled by
// the state store. Records encode themselves (RLP throughout this repo).
type State interface {
	Serialize() ([]byte, error)
	Deserialize(data []byte) error
}

// Serialize serializes a state into bytes
func Serialize(d interface{}) ([]byte, error) {
	if s, ok := d.(State); ok {
		return s.Serialize()
	}
	return nil, errors.Wrapf(ErrStateSerialization, "state is of type %T", d)
}

// Deserialize deserializes bytes into a state
func Deserialize(x interface{}, data []byte) error {
	if s, ok := x.(State); ok {
		return s.Deserialize(data)
	}
	return errors.Wrapf(ErrStateDeserialization, "state is of type %T", x)
}
