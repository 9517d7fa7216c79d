// Copyright (c) 2024 XNS
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

// Package config holds the registry's protocol parameters. The numbers differ across historical
// deployments, so everything that ever changed between them is a parameter here, not a constant.
package config

import (
	"math/big"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"

	"github.com/Walodja1987/xns-sub003/pkg/log"
)

type (
	// Registry is the complete parameter set of the name registry protocol.
	Registry struct {
		// ChainID is bound into authorization digests to prevent cross-chain replay
		ChainID uint64 `yaml:"chainID"`
		// Admin is the hex address of the privileged system account installed at genesis
		Admin string `yaml:"admin"`
		// ReservedNamespace is the namespace bare names are registered under
		ReservedNamespace string `yaml:"reservedNamespace"`
		// ForbiddenNamespace can never be registered
		ForbiddenNamespace string `yaml:"forbiddenNamespace"`
		// MaxLabelLength caps label slugs; MaxNamespaceLength caps namespace slugs
		MaxLabelLength     int `yaml:"maxLabelLength"`
		MaxNamespaceLength int `yaml:"maxNamespaceLength"`
		// PriceStepStr is the quantum every per-name price must be a multiple of
		PriceStepStr string `yaml:"priceStep"`
		// BareNamePriceStr prices names in the reserved namespace
		BareNamePriceStr string `yaml:"bareNamePrice"`
		// PublicNamespaceFeeStr and PrivateNamespaceFeeStr are the one-time namespace creation fees
		PublicNamespaceFeeStr  string `yaml:"publicNamespaceFee"`
		PrivateNamespaceFeeStr string `yaml:"privateNamespaceFee"`
		// BurnPercentage, OwnerFeePercentage and AdminFeePercentage split every required payment;
		// they must sum to 100
		BurnPercentage     uint64 `yaml:"burnPercentage"`
		OwnerFeePercentage uint64 `yaml:"ownerFeePercentage"`
		AdminFeePercentage uint64 `yaml:"adminFeePercentage"`
		// ExclusivityWindow keeps a fresh public namespace owner-only for this long
		ExclusivityWindow time.Duration `yaml:"exclusivityWindow"`
		// OnboardingWindow is how long after genesis the admin may create namespaces for free
		OnboardingWindow time.Duration `yaml:"onboardingWindow"`
	}
)

// Default is the registry config with the canonical parameter values.
var Default = Registry{
	ChainID:                1,
	ReservedNamespace:      "xns",
	ForbiddenNamespace:     "eth",
	MaxLabelLength:         20,
	MaxNamespaceLength:     4,
	PriceStepStr:           "1000000000000000",
	BareNamePriceStr:       "10000000000000000",
	PublicNamespaceFeeStr:  "1000000000000000000",
	PrivateNamespaceFeeStr: "100000000000000000",
	BurnPercentage:         80,
	OwnerFeePercentage:     10,
	AdminFeePercentage:     10,
	ExclusivityWindow:      90 * 24 * time.Hour,
	OnboardingWindow:       30 * 24 * time.Hour,
}

// New constructs a config from yaml content layered on top of Default.
func New(content []byte) (Registry, error) {
	cfg := Default
	if err := yaml.Unmarshal(content, &cfg); err != nil {
		return Registry{}, errors.Wrap(err, "failed to unmarshal registry config")
	}
	if err := cfg.Validate(); err != nil {
		return Registry{}, err
	}
	return cfg, nil
}

// Validate checks the config for internal consistency.
func (r *Registry) Validate() error {
	if r.BurnPercentage+r.OwnerFeePercentage+r.AdminFeePercentage != 100 {
		return errors.New("burn, owner fee and admin fee percentages must sum to 100")
	}
	if r.PriceStep().Sign() <= 0 {
		return errors.New("price step must be positive")
	}
	if r.MaxLabelLength <= 0 || r.MaxNamespaceLength <= 0 {
		return errors.New("slug length caps must be positive")
	}
	if r.MaxNamespaceLength > r.MaxLabelLength {
		return errors.New("namespace cap cannot exceed label cap")
	}
	if r.ReservedNamespace == "" || r.ReservedNamespace == r.ForbiddenNamespace {
		return errors.New("reserved namespace must be set and distinct from the forbidden one")
	}
	return nil
}

// PriceStep returns the price quantum.
func (r *Registry) PriceStep() *big.Int {
	return r.amount(r.PriceStepStr)
}

// BareNamePrice returns the per-name price of the reserved namespace.
func (r *Registry) BareNamePrice() *big.Int {
	return r.amount(r.BareNamePriceStr)
}

// PublicNamespaceFee returns the creation fee of a public namespace.
func (r *Registry) PublicNamespaceFee() *big.Int {
	return r.amount(r.PublicNamespaceFeeStr)
}

// PrivateNamespaceFee returns the creation fee of a private namespace.
func (r *Registry) PrivateNamespaceFee() *big.Int {
	return r.amount(r.PrivateNamespaceFeeStr)
}

func (r *Registry) amount(s string) *big.Int {
	val, ok := new(big.Int).SetString(s, 10)
	if !ok {
		log.S().Panicf("Error when casting amount string %s into big int", s)
	}
	return val
}
