package ringvrf

import (
	"io"

	kitlog "github.com/go-kit/log"
	kitlevel "github.com/go-kit/log/level"
	"github.com/pkg/errors"
)

const msgKey = "_msg"

// Logger is the structured logger used by the verifier.
type Logger interface {
	Debug(msg string, keyvals ...interface{})
	Info(msg string, keyvals ...interface{})
	Error(msg string, keyvals ...interface{})

	With(keyvals ...interface{}) Logger
}

type kitLogger struct {
	srcLogger kitlog.Logger
}

var _ Logger = (*kitLogger)(nil)

// NewLogger returns a logfmt logger writing to w that drops records below
// level, one of "debug", "info", "error" or "none".
func NewLogger(w io.Writer, level string) (Logger, error) {
	var option kitlevel.Option
	switch level {
	case "debug":
		option = kitlevel.AllowDebug()
	case "info", "":
		option = kitlevel.AllowInfo()
	case "error":
		option = kitlevel.AllowError()
	case "none":
		option = kitlevel.AllowNone()
	default:
		return nil, errors.Errorf("unknown log level %q", level)
	}
	logger := kitlog.NewLogfmtLogger(kitlog.NewSyncWriter(w))
	logger = kitlog.With(logger, "ts", kitlog.DefaultTimestampUTC)
	return &kitLogger{kitlevel.NewFilter(logger, option)}, nil
}

// NewNopLogger returns a logger that discards everything.
func NewNopLogger() Logger {
	return &kitLogger{kitlog.NewNopLogger()}
}

func (l *kitLogger) Debug(msg string, keyvals ...interface{}) {
	l.log(kitlevel.Debug(l.srcLogger), msg, keyvals)
}

func (l *kitLogger) Info(msg string, keyvals ...interface{}) {
	l.log(kitlevel.Info(l.srcLogger), msg, keyvals)
}

func (l *kitLogger) Error(msg string, keyvals ...interface{}) {
	l.log(kitlevel.Error(l.srcLogger), msg, keyvals)
}

func (l *kitLogger) log(lWithLevel kitlog.Logger, msg string, keyvals []interface{}) {
	if err := kitlog.With(lWithLevel, msgKey, msg).Log(keyvals...); err != nil {
		errLogger := kitlevel.Error(l.srcLogger)
		kitlog.With(errLogger, msgKey, msg).Log("err", err) //nolint:errcheck
	}
}

func (l *kitLogger) With(keyvals ...interface{}) Logger {
	return &kitLogger{kitlog.With(l.srcLogger, keyvals...)}
}
