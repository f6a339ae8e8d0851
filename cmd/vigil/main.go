package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-kit/kit/log/level"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cast"
	"github.com/spf13/pflag"
	"github.com/xmidt-org/vigil/concurrent"
	"github.com/xmidt-org/vigil/liveness"
	"github.com/xmidt-org/vigil/logging"
	"github.com/xmidt-org/vigil/vitals"
	"github.com/xmidt-org/vigil/xviper"
)

const (
	applicationName = "vigil"

	// vitalsDumpInterval is how often vitals are refreshed and dispatched to listeners
	vitalsDumpInterval = time.Minute
)

func vigil(arguments []string) int {
	// a .env file, if present, seeds the environment before viper sees it
	godotenv.Load()

	var (
		v       = xviper.New(applicationName)
		flagSet = pflag.NewFlagSet(applicationName, pflag.ContinueOnError)
	)

	flagSet.String("server.address", "", "listen address, e.g. :5000")
	flagSet.String("server.greeting", "", "fixed response body for the liveness endpoint")

	if err := xviper.ParseAndBind(v, flagSet, arguments); err != nil {
		fmt.Fprintf(os.Stderr, "Unable to parse arguments: %s\n", err)
		return 1
	}

	if err := xviper.ReadInConfig(v); err != nil {
		fmt.Fprintf(os.Stderr, "Unable to read configuration: %s\n", err)
		return 1
	}

	loggingOptions, err := logging.FromViper(logging.Sub(v))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Unable to read logging configuration: %s\n", err)
		return 1
	}

	logger := logging.New(loggingOptions)

	serverOptions, err := liveness.FromViper(liveness.Sub(v))
	if err != nil {
		logger.Log(level.Key(), level.ErrorValue(), logging.MessageKey(), "unable to read server configuration", logging.ErrorKey(), err)
		return 1
	}

	// viper.Sub does not see pflag bindings, so flag-bound keys are read
	// off the root viper, which honors flag > env > file precedence
	if address := v.GetString("server.address"); len(address) > 0 {
		serverOptions.Address = address
	}

	if greeting := v.GetString("server.greeting"); len(greeting) > 0 {
		serverOptions.Greeting = greeting
	}

	// the conventional PORT variable wins over configured addresses, so that
	// container runtimes can remap the listen port without a config file
	if port := cast.ToInt(os.Getenv("PORT")); port > 0 {
		serverOptions.Address = fmt.Sprintf(":%d", port)
	}

	var (
		registry = prometheus.NewRegistry()
		monitor  = vitals.New(vitalsDumpInterval, logger)
		router   = newRouter(serverOptions, logger, registry, monitor)

		server  = liveness.New(serverOptions, logger, router)
		signals = make(chan os.Signal, 1)
	)

	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)

	// a bind failure is the only fatal startup condition
	if err := concurrent.Await(concurrent.RunnableSet{monitor, server}, signals); err != nil {
		logger.Log(level.Key(), level.ErrorValue(), logging.MessageKey(), "unable to start", logging.ErrorKey(), err)
		return 1
	}

	logger.Log(level.Key(), level.InfoValue(), logging.MessageKey(), "exiting")
	return 0
}

func main() {
	os.Exit(vigil(os.Args[1:]))
}
