// Copyright (c) 2024 XNS
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package state

import (
	"testing"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/Walodja1987/xns-sub003/protocol"
)

type testState struct {
	Value string
}

func (s *testState) Serialize() ([]byte, error) {
	return rlp.EncodeToBytes(s)
}

func (s *testState) Deserialize(data []byte) error {
	return rlp.DecodeBytes(data, s)
}

func TestWorkingSet(t *testing.T) {
	r := require.New(t)
	ws := NewWorkingSet()

	opts := []protocol.StateOption{protocol.NamespaceOption("Test"), protocol.KeyOption([]byte("k1"))}

	s := testState{}
	r.Equal(ErrStateNotExist, errors.Cause(ws.State(&s, opts...)))

	r.NoError(ws.PutState(&testState{Value: "v1"}, opts...))
	r.NoError(ws.State(&s, opts...))
	r.Equal("v1", s.Value)

	// the same key in a different namespace is a different record
	other := []protocol.StateOption{protocol.NamespaceOption("Other"), protocol.KeyOption([]byte("k1"))}
	r.Equal(ErrStateNotExist, errors.Cause(ws.State(&s, other...)))

	r.NoError(ws.DelState(opts...))
	r.Equal(ErrStateNotExist, errors.Cause(ws.State(&s, opts...)))
}

func TestWorkingSet_SnapshotRevert(t *testing.T) {
	r := require.New(t)
	ws := NewWorkingSet()

	key := func(k string) []protocol.StateOption {
		return []protocol.StateOption{protocol.NamespaceOption("Test"), protocol.KeyOption([]byte(k))}
	}
	r.NoError(ws.PutState(&testState{Value: "v1"}, key("k1")...))

	s0 := ws.Snapshot()
	r.NoError(ws.PutState(&testState{Value: "v2"}, key("k1")...))
	r.NoError(ws.PutState(&testState{Value: "w"}, key("k2")...))

	s1 := ws.Snapshot()
	r.NoError(ws.DelState(key("k1")...))

	r.NoError(ws.Revert(s1))
	s := testState{}
	r.NoError(ws.State(&s, key("k1")...))
	r.Equal("v2", s.Value)

	// reverting to an earlier snapshot drops the later one too
	r.NoError(ws.Revert(s0))
	r.NoError(ws.State(&s, key("k1")...))
	r.Equal("v1", s.Value)
	r.Equal(ErrStateNotExist, errors.Cause(ws.State(&s, key("k2")...)))
	r.Error(ws.Revert(s1))
	r.Error(ws.Revert(-1))

	// snapshot numbering restarts where the stack was truncated
	r.Equal(s0, ws.Snapshot())
}

func TestSerializeRejectsUnsupported(t *testing.T) {
	r := require.New(t)
	_, err := Serialize(42)
	r.Equal(ErrStateSerialization, errors.Cause(err))
	r.Equal(ErrStateDeserialization, errors.Cause(Deserialize(42, []byte{0x80})))
}
