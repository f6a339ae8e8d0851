package logging

import (
	"context"
	"strings"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
)

var (
	defaultLogger = log.NewNopLogger()

	callerKey    interface{} = "caller"
	messageKey   interface{} = "msg"
	errorKey     interface{} = "error"
	timestampKey interface{} = "ts"
)

// CallerKey returns the logging key to be used for the stack location of the logging call
func CallerKey() interface{} {
	return callerKey
}

// MessageKey returns the logging key to be used for the textual message of the log entry
func MessageKey() interface{} {
	return messageKey
}

// ErrorKey returns the logging key to be used for error instances
func ErrorKey() interface{} {
	return errorKey
}

// TimestampKey returns the logging key to be used for the timestamp
func TimestampKey() interface{} {
	return timestampKey
}

// DefaultLogger returns a global singleton NOP logger.
// This returned instance is safe for concurrent access.
func DefaultLogger() log.Logger {
	return defaultLogger
}

// New creates a go-kit Logger from a set of options.  The options object can be nil,
// in which case a default logger that logs to os.Stdout is returned.  The returned logger
// includes the timestamp in UTC format and will filter according to the Level field.
//
// In order to allow arbitrary decoration, this function does not insert the caller information.
// Use either DefaultCaller in this package or the go-kit/kit/log API to add a Caller to the
// returned Logger.
func New(o *Options) log.Logger {
	return NewFilter(
		log.WithPrefix(
			o.loggerFactory()(o.output()),
			TimestampKey(), log.DefaultTimestampUTC,
		),
		o,
	)
}

// NewFilter applies the Options filtering rules in the package to an arbitrary go-kit Logger.
func NewFilter(next log.Logger, o *Options) log.Logger {
	switch strings.ToUpper(o.level()) {
	case "DEBUG":
		return level.NewFilter(next, level.AllowDebug())

	case "INFO":
		return level.NewFilter(next, level.AllowInfo())

	case "WARN":
		return level.NewFilter(next, level.AllowWarn())

	default:
		return level.NewFilter(next, level.AllowError())
	}
}

// DefaultCaller produces a contextual logger as with log.With, but automatically prepends the
// caller under the CallerKey.
func DefaultCaller(next log.Logger, keyvals ...interface{}) log.Logger {
	return log.WithPrefix(
		next,
		append([]interface{}{CallerKey(), log.DefaultCaller}, keyvals...)...,
	)
}

// Error places both the caller and a constant error level into the prefix of the returned logger.
// Additional keyvals, if supplied, are also added.
func Error(next log.Logger, keyvals ...interface{}) log.Logger {
	return log.WithPrefix(
		next,
		append([]interface{}{level.Key(), level.ErrorValue(), CallerKey(), log.DefaultCaller}, keyvals...)...,
	)
}

// Info places both the caller and a constant info level into the prefix of the returned logger.
// Additional keyvals, if supplied, are also added.
func Info(next log.Logger, keyvals ...interface{}) log.Logger {
	return log.WithPrefix(
		next,
		append([]interface{}{level.Key(), level.InfoValue(), CallerKey(), log.DefaultCaller}, keyvals...)...,
	)
}

// Warn places both the caller and a constant warn level into the prefix of the returned logger.
// Additional keyvals, if supplied, are also added.
func Warn(next log.Logger, keyvals ...interface{}) log.Logger {
	return log.WithPrefix(
		next,
		append([]interface{}{level.Key(), level.WarnValue(), CallerKey(), log.DefaultCaller}, keyvals...)...,
	)
}

// Debug places both the caller and a constant debug level into the prefix of the returned logger.
// Additional keyvals, if supplied, are also added.
func Debug(next log.Logger, keyvals ...interface{}) log.Logger {
	return log.WithPrefix(
		next,
		append([]interface{}{level.Key(), level.DebugValue(), CallerKey(), log.DefaultCaller}, keyvals...)...,
	)
}

type contextKey uint32

const loggerKey contextKey = 1

// WithLogger adds the given Logger to the context so that it can be retrieved with GetLogger
func WithLogger(parent context.Context, logger log.Logger) context.Context {
	return context.WithValue(parent, loggerKey, logger)
}

// GetLogger retrieves the go-kit logger associated with the context.  If no logger is
// present in the context, DefaultLogger is returned instead.
func GetLogger(ctx context.Context) log.Logger {
	if logger, ok := ctx.Value(loggerKey).(log.Logger); ok {
		return logger
	}

	return DefaultLogger()
}
