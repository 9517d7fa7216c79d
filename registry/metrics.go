// Copyright (c) 2024 XNS
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package registry

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	_namesRegisteredMtc = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "xns_names_registered_total",
			Help: "Names registered, by registration path",
		},
		[]string{"path"},
	)
	_namespacesRegisteredMtc = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "xns_namespaces_registered_total",
			Help: "Namespaces registered, by visibility",
		},
		[]string{"visibility"},
	)
	_feesClaimedMtc = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "xns_fee_claims_total",
			Help: "Completed fee claims",
		},
	)
	_burnsMtc = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "xns_burns_total",
			Help: "Completed burn-sink invocations",
		},
	)
)

func init() {
	prometheus.MustRegister(_namesRegisteredMtc)
	prometheus.MustRegister(_namespacesRegisteredMtc)
	prometheus.MustRegister(_feesClaimedMtc)
	prometheus.MustRegister(_burnsMtc)
}
