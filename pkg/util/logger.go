/*
Copyright 2022 Hiroki Shirokura.
Copyright 2022 Keio University.
Copyright 2022 Wide Project.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package util

import (
	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const LogLevelUsage = "-1:Debug, 0:Info, 1:Warn: 2:Error"

// NewLogger builds the production zap logger at the given level and the
// logr view of it handed to library packages. Call sync before exit.
func NewLogger(level int) (logr.Logger, func(), error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.Level(level))
	logger, err := cfg.Build()
	if err != nil {
		return logr.Discard(), func() {}, err
	}
	sync := func() {
		_ = logger.Sync()
	}
	return zapr.NewLogger(logger), sync, nil
}
