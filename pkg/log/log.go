// Copyright (c) 2024 XNS
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

// Package log provides the global loggers for the registry. By default logging is off; the host
// process decides whether and how to turn it on via InitLogger.
package log

import (
	"sync"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// GlobalConfig defines the global logger configurations.
type GlobalConfig struct {
	Zap *zap.Config `json:"zap" yaml:"zap"`
}

var (
	_globalMu sync.RWMutex
	_logger   = zap.NewNop()
	_sugar    = _logger.Sugar()
)

// L wraps the global logger.
func L() *zap.Logger {
	_globalMu.RLock()
	l := _logger
	_globalMu.RUnlock()
	return l
}

// S wraps the global sugared logger.
func S() *zap.SugaredLogger {
	_globalMu.RLock()
	s := _sugar
	_globalMu.RUnlock()
	return s
}

// InitLogger initializes the global logger from the given config.
func InitLogger(cfg GlobalConfig) error {
	zapCfg := cfg.Zap
	if zapCfg == nil {
		c := zap.NewProductionConfig()
		zapCfg = &c
	}
	logger, err := zapCfg.Build()
	if err != nil {
		return errors.Wrap(err, "failed to build zap logger")
	}
	_globalMu.Lock()
	_logger = logger
	_sugar = logger.Sugar()
	_globalMu.Unlock()
	return nil
}
