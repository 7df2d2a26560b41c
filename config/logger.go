package config

import (
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"io"
)

// NewLogger returns a logfmt logger writing to w, filtered to the configured level
func (l LoggerConfig) NewLogger(w io.Writer) log.Logger {
	logger := log.NewLogfmtLogger(log.NewSyncWriter(w))
	logger = log.With(logger, "ts", log.DefaultTimestampUTC, "caller", log.DefaultCaller)
	return level.NewFilter(logger, l.option())
}

func (l LoggerConfig) option() level.Option {
	switch l.Level {
	case "debug":
		return level.AllowDebug()
	case "warn":
		return level.AllowWarn()
	case "error":
		return level.AllowError()
	default:
		return level.AllowInfo()
	}
}
