// Copyright ©2026 The duallagrange Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package dlog provides the one configurable logger shared by the driver
// and CLI entrypoint. It uses github.com/rs/zerolog with a console writer
// by default, the same setup the rest of this module's ambient stack
// follows.
package dlog

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

var logger zerolog.Logger

func init() {
	output := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: "15:04:05"}
	logger = zerolog.New(output).With().Timestamp().Logger()
}

// SetOutput redirects the logger's output, e.g. to a log file under the
// solver's output directory.
func SetOutput(w io.Writer) {
	logger = logger.Output(w)
}

// SetLevel adjusts verbosity; --driver.verbosity maps 0→Warn,
// 1→Info, 2→Debug.
func SetLevel(verbosity int) {
	switch {
	case verbosity <= 0:
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case verbosity == 1:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
}

// Logger returns the shared logger.
func Logger() zerolog.Logger {
	return logger
}
