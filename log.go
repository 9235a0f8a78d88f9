package polyjson

import (
	logpkg "github.com/echa/log"
)

var log logpkg.Logger = logpkg.Log

func init() {
	DisableLog()
}

// DisableLog silences all library output. This is the default.
func DisableLog() {
	log = logpkg.Disabled
}

// UseLogger routes library output through the given logger.
func UseLogger(logger logpkg.Logger) {
	log = logger
}
