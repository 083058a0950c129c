// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package logger

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/op/go-logging"
)

const defaultFormat = `%{time:15:04:05.000} %{level:.4s} [%{module}] %{message}`

var (
	setupOnce sync.Once
	leveled   logging.LeveledBackend
)

// NewLogger returns the logger of the given module. Loggers obtained before
// Setup is called log warnings and errors to stderr.
func NewLogger(module string) *logging.Logger {
	setupOnce.Do(func() { install(os.Stderr, logging.WARNING) })
	return logging.MustGetLogger(module)
}

// Setup directs all module loggers to the given writer and filters messages
// below the given level. Valid levels are critical, error, warning, notice,
// info and debug.
func Setup(out io.Writer, level string) error {
	lvl, err := logging.LogLevel(level)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}
	setupOnce.Do(func() {})
	install(out, lvl)
	return nil
}

func install(out io.Writer, level logging.Level) {
	backend := logging.NewLogBackend(out, "", 0)
	formatted := logging.NewBackendFormatter(backend, logging.MustStringFormatter(defaultFormat))
	leveled = logging.AddModuleLevel(formatted)
	leveled.SetLevel(level, "")
	logging.SetBackend(leveled)
}

// Level returns the level currently applied to all modules.
func Level() logging.Level {
	if leveled == nil {
		return logging.WARNING
	}
	return leveled.GetLevel("")
}
