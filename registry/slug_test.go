// Copyright (c) 2024 XNS
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package registry

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidSlug(t *testing.T) {
	for _, valid := range []string{
		"a",
		"0",
		"abc",
		"alice99",
		"007",
		strings.Repeat("a", 20),
	} {
		assert.True(t, isValidSlug(valid, 20), valid)
	}
	for _, invalid := range []string{
		"",
		"Alice",
		"al ice",
		"al-ice",
		"al_ice",
		"al.ice",
		"älice",
		"名前",
		strings.Repeat("a", 21),
	} {
		assert.False(t, isValidSlug(invalid, 20), invalid)
	}
	// the bound is a parameter, not a constant
	assert.True(t, isValidSlug("abcd", 4))
	assert.False(t, isValidSlug("abcde", 4))
}
