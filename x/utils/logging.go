package utils

import (
	"time"

	"github.com/iov-one/vault"
)

// Logging runs fn and writes information about the time and result of the
// named operation to the context logger.
func Logging(ctx vault.Context, name string, fn func() error) error {
	start := time.Now()
	err := fn()
	logDuration(ctx, start, name, err)
	return err
}

// logDuration writes information about the time and result to the logger
func logDuration(ctx vault.Context, start time.Time, msg string, err error) {
	delta := time.Now().Sub(start)
	logger := vault.GetLogger(ctx).With("duration", delta/time.Microsecond)

	if err != nil {
		logger = logger.With("err", err)
		logger.Error(msg)
		return
	}
	logger.Info(msg)
}
