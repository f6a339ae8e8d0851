package liveness

import (
	stdlog "log"
	"net"
	"net/http"
	"sync"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
	"github.com/xmidt-org/vigil/logging"
)

// NewServerLogger adapts a go-kit Logger onto a golang Logger in a way that is appropriate
// for http.Server.ErrorLog.
func NewServerLogger(logger log.Logger) *stdlog.Logger {
	if logger == nil {
		logger = logging.DefaultLogger()
	}

	return stdlog.New(
		log.NewStdlibAdapter(logger),
		"", // having a prefix gives the adapter trouble
		stdlog.LstdFlags|stdlog.LUTC,
	)
}

// Server is a concurrent.Runnable that drives an http.Server.  The listener is
// created synchronously inside Run so that a bind failure surfaces as a startup
// error instead of being lost inside a goroutine.  Bind failure is the only
// fatal condition this type recognizes.
type Server struct {
	name            string
	logger          log.Logger
	server          *http.Server
	certificateFile string
	keyFile         string
	once            sync.Once
}

// New constructs a Server from a set of options and the handler that will
// receive all traffic.  The options object may be nil, in which case all
// defaults apply.  The logger may be nil, in which case the default NOP
// logger is used.
func New(o *Options, logger log.Logger, handler http.Handler) *Server {
	if logger == nil {
		logger = logging.DefaultLogger()
	}

	var (
		name    = o.name()
		address = o.address()
	)

	s := &Server{
		name:   name,
		logger: log.With(logger, "server", name, "address", address),
		server: &http.Server{
			Addr:     address,
			Handler:  handler,
			ErrorLog: NewServerLogger(logger),
		},
	}

	if o != nil {
		s.server.ReadTimeout = o.ReadTimeout
		s.server.ReadHeaderTimeout = o.ReadHeaderTimeout
		s.server.WriteTimeout = o.WriteTimeout
		s.server.IdleTimeout = o.IdleTimeout
		s.server.MaxHeaderBytes = o.MaxHeaderBytes
		s.server.SetKeepAlivesEnabled(!o.DisableKeepAlives)
		s.certificateFile = o.CertificateFile
		s.keyFile = o.KeyFile
	}

	return s
}

// Name returns the human-readable identifier for this server
func (s *Server) Name() string {
	return s.name
}

// Https tests if this server is configured to serve TLS
func (s *Server) Https() bool {
	return len(s.certificateFile) > 0 && len(s.keyFile) > 0
}

// Run binds the listener and spawns the goroutines that serve traffic and
// honor shutdown.  A bind failure is returned synchronously.  Run is
// idempotent:  subsequent invocations have no effect.
func (s *Server) Run(waitGroup *sync.WaitGroup, shutdown <-chan struct{}) (err error) {
	s.once.Do(func() {
		var listener net.Listener
		listener, err = net.Listen("tcp", s.server.Addr)
		if err != nil {
			s.logger.Log(level.Key(), level.ErrorValue(), logging.MessageKey(), "unable to bind listener", logging.ErrorKey(), err)
			return
		}

		s.logger.Log(level.Key(), level.InfoValue(), logging.MessageKey(), "starting server")

		waitGroup.Add(2)
		go func() {
			defer waitGroup.Done()
			<-shutdown
			s.server.Close()
		}()

		go func() {
			defer waitGroup.Done()
			var serveErr error
			if s.Https() {
				serveErr = s.server.ServeTLS(listener, s.certificateFile, s.keyFile)
			} else {
				serveErr = s.server.Serve(listener)
			}

			if serveErr == http.ErrServerClosed {
				s.logger.Log(level.Key(), level.InfoValue(), logging.MessageKey(), "server closed")
			} else {
				s.logger.Log(level.Key(), level.ErrorValue(), logging.MessageKey(), "server exited", logging.ErrorKey(), serveErr)
			}
		}()
	})

	return
}
