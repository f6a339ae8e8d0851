package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/xmidt-org/vigil/concurrent"
	"github.com/xmidt-org/vigil/liveness"
	"github.com/xmidt-org/vigil/logging"
	"github.com/xmidt-org/vigil/probe"
	"github.com/xmidt-org/vigil/xviper"
)

const applicationName = "vigilprobe"

// onceCheck performs a single probe and maps the outcome to an exit code,
// which lets a container runtime use this binary as its healthcheck command.
func onceCheck(options *probe.Options) int {
	checker := probe.NewChecker(nil, options)
	if result := checker.Check(context.Background()); result.Outcome != probe.OutcomeSuccess {
		return 1
	}

	return 0
}

// unhealthyAlarm surfaces unhealthy transitions at error level, where an
// operator is watching.  The prober logs every transition at info level; this
// listener exists so the one transition that demands action stands out.
func unhealthyAlarm(logger log.Logger) probe.StatusListener {
	return probe.StatusListenerFunc(func(from, to probe.Status, state probe.HealthState) {
		if to == probe.StatusUnhealthy {
			logger.Log(level.Key(), level.ErrorValue(), logging.MessageKey(), "monitored process is unhealthy",
				"from", from, "failingStreak", state.FailingStreak, "lastOutcome", state.LastOutcome)
		}
	})
}

func parseConfiguration(arguments []string) (*viper.Viper, *pflag.FlagSet, error) {
	var (
		v       = xviper.New(applicationName)
		flagSet = pflag.NewFlagSet(applicationName, pflag.ContinueOnError)
	)

	flagSet.String("probe.url", "", "the liveness endpoint to probe")
	flagSet.Duration("probe.interval", 0, "time between probes")
	flagSet.Duration("probe.timeout", 0, "hard limit on a single probe attempt")
	flagSet.Duration("probe.startPeriod", 0, "grace window after launch")
	flagSet.Int("probe.retries", 0, "consecutive failures before unhealthy")
	flagSet.String("metrics.address", "", "optional listen address for prometheus exposition")
	flagSet.Bool("once", false, "perform a single probe and exit 0 on success, 1 otherwise")

	if err := xviper.ParseAndBind(v, flagSet, arguments); err != nil {
		return nil, nil, err
	}

	if err := xviper.ReadInConfig(v); err != nil {
		return nil, nil, err
	}

	return v, flagSet, nil
}

func vigilprobe(arguments []string) int {
	godotenv.Load()

	v, flagSet, err := parseConfiguration(arguments)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Unable to parse configuration: %s\n", err)
		return 1
	}

	probeOptions, err := probe.FromViper(probe.Sub(v))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Unable to read probe configuration: %s\n", err)
		return 1
	}

	// viper.Sub does not see pflag bindings, so flag-bound keys are read
	// off the root viper, which honors flag > env > file precedence
	if url := v.GetString("probe.url"); len(url) > 0 {
		probeOptions.URL = url
	}

	if interval := v.GetDuration("probe.interval"); interval > 0 {
		probeOptions.Interval = interval
	}

	if timeout := v.GetDuration("probe.timeout"); timeout > 0 {
		probeOptions.Timeout = timeout
	}

	if startPeriod := v.GetDuration("probe.startPeriod"); startPeriod > 0 {
		probeOptions.StartPeriod = startPeriod
	}

	if retries := v.GetInt("probe.retries"); retries > 0 {
		probeOptions.Retries = retries
	}

	if once, _ := flagSet.GetBool("once"); once {
		return onceCheck(probeOptions)
	}

	loggingOptions, err := logging.FromViper(logging.Sub(v))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Unable to read logging configuration: %s\n", err)
		return 1
	}

	var (
		logger   = logging.New(loggingOptions)
		registry = prometheus.NewRegistry()

		prober = probe.New(
			probeOptions,
			logger,
			probe.WithMetrics(probe.NewMetrics(registry)),
			probe.WithStatusListeners(unhealthyAlarm(logger)),
		)

		runnables = concurrent.RunnableSet{prober}
	)

	// exposition is optional: the prober is useful with nothing but its logs
	if metricsAddress := v.GetString("metrics.address"); len(metricsAddress) > 0 {
		runnables = append(runnables, liveness.New(
			&liveness.Options{Name: applicationName + ".metrics", Address: metricsAddress},
			logger,
			promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		))
	}

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)

	if err := concurrent.Await(runnables, signals); err != nil {
		logger.Log(level.Key(), level.ErrorValue(), logging.MessageKey(), "unable to start", logging.ErrorKey(), err)
		return 1
	}

	logger.Log(level.Key(), level.InfoValue(), logging.MessageKey(), "exiting")
	return 0
}

func main() {
	os.Exit(vigilprobe(os.Args[1:]))
}
