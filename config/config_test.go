// Copyright (c) 2024 XNS
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package config

import (
	"math/big"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	r := require.New(t)

	r.NoError(Default.Validate())
	r.Equal(big.NewInt(1e15), Default.PriceStep())
	r.Equal(big.NewInt(1e16), Default.BareNamePrice())
	r.Equal(big.NewInt(1e18), Default.PublicNamespaceFee())
	r.Equal(big.NewInt(1e17), Default.PrivateNamespaceFee())
	r.Zero(new(big.Int).Mod(Default.BareNamePrice(), Default.PriceStep()).Sign())
}

func TestNew(t *testing.T) {
	r := require.New(t)

	cfg, err := New([]byte(`
chainID: 4689
admin: "0x0000000000000000000000000000000000000001"
maxLabelLength: 32
exclusivityWindow: 720h
`))
	r.NoError(err)
	r.Equal(uint64(4689), cfg.ChainID)
	r.Equal(32, cfg.MaxLabelLength)
	r.Equal(30*24*time.Hour, cfg.ExclusivityWindow)
	// unset fields keep their defaults
	r.Equal(Default.ReservedNamespace, cfg.ReservedNamespace)
	r.Equal(Default.BurnPercentage, cfg.BurnPercentage)

	_, err = New([]byte(`burnPercentage: 90`))
	r.Error(err)
	_, err = New([]byte(`{`))
	r.Error(err)
}

func TestValidate(t *testing.T) {
	r := require.New(t)

	cfg := Default
	cfg.OwnerFeePercentage = 30
	r.Error(cfg.Validate())

	cfg = Default
	cfg.MaxNamespaceLength = 0
	r.Error(cfg.Validate())

	cfg = Default
	cfg.MaxNamespaceLength = cfg.MaxLabelLength + 1
	r.Error(cfg.Validate())

	cfg = Default
	cfg.ReservedNamespace = cfg.ForbiddenNamespace
	r.Error(cfg.Validate())

	cfg = Default
	cfg.PriceStepStr = "0"
	r.Error(cfg.Validate())
}

func TestAmountPanicsOnGarbage(t *testing.T) {
	cfg := Default
	cfg.PriceStepStr = "not a number"
	require.Panics(t, func() { cfg.PriceStep() })
}
