package logging

import (
	"github.com/go-kit/kit/log"
)

// testSink is the subset of testing.T and testing.B this package needs
type testSink interface {
	Log(...interface{})
}

// testWriter adapts a testSink to io.Writer so that go-kit output lands in
// the test log
type testWriter struct {
	testSink
}

func (t testWriter) Write(data []byte) (int, error) {
	t.testSink.Log(string(data))
	return len(data), nil
}

// NewTestLogger produces a go-kit Logger which delegates to the supplied
// testing log.  A nil options means everything at DEBUG and above is logged,
// which is usually what a test wants.
func NewTestLogger(o *Options, t testSink) log.Logger {
	if o == nil {
		o = &Options{Level: "DEBUG"}
	}

	return NewFilter(
		log.With(
			o.loggerFactory()(testWriter{t}),
			TimestampKey(), log.DefaultTimestampUTC,
		),
		o,
	)
}
