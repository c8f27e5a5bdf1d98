package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	logging "github.com/KonishchevDmitry/go-easy-logging"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/samber/mo"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sys/unix"

	"github.com/KonishchevDmitry/diskstats-metrics/internal/config"
	"github.com/KonishchevDmitry/diskstats-metrics/internal/diagnostics"
	"github.com/KonishchevDmitry/diskstats-metrics/internal/diskstats"
	"github.com/KonishchevDmitry/diskstats-metrics/internal/exporter"
	"github.com/KonishchevDmitry/diskstats-metrics/internal/poller"
	"github.com/KonishchevDmitry/diskstats-metrics/internal/server"
	"github.com/KonishchevDmitry/diskstats-metrics/internal/util"
)

func run() error {
	return newCommand().Execute()
}

func newCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   fmt.Sprintf("%s [flags]", os.Args[0]),
		Short: "Block device statistics metrics daemon",
		Args:  cobra.NoArgs,

		SilenceUsage:          true,
		SilenceErrors:         true,
		DisableFlagsInUseLine: true,

		Run: func(cmd *cobra.Command, args []string) {
			if err := execute(cmd); err != nil {
				_, _ = fmt.Fprintf(os.Stderr, "Error: %s.\n", err)
				os.Exit(1)
			}
		},
	}

	flags := cmd.Flags()
	flags.String("config", "", "configuration file path")
	flags.StringArray("disk", nil, "disk to monitor (may be specified multiple times)")
	flags.Bool("delta-per-second", false, "expose raw counters instead of per-interval deltas")
	flags.String("source", diskstats.DefaultSource, "disk statistics source")
	flags.Duration("interval", 10*time.Second, "poll interval")
	flags.String("listen", server.DefaultAddress, "address to serve metrics on")
	flags.Bool("devel", false, "print collected metrics and exit")

	return cmd
}

func execute(cmd *cobra.Command) error {
	flags := cmd.Flags()

	develMode, err := flags.GetBool("devel")
	if err != nil {
		return err
	}

	logger, err := diagnostics.Configure(develMode)
	if err != nil {
		return err
	}
	defer func() {
		_ = logger.Sync() // Always fails to sync stderr
	}()
	ctx := logging.WithLogger(context.Background(), logger)

	source, err := flags.GetString("source")
	if err != nil {
		return err
	}

	interval, err := flags.GetDuration("interval")
	if err != nil {
		return err
	} else if interval <= 0 {
		return fmt.Errorf("invalid poll interval: %s", interval)
	}

	address, err := flags.GetString("listen")
	if err != nil {
		return err
	}

	directives, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	engine := diskstats.NewEngine(source)
	if err := engine.Configure(directives...); err != nil {
		return err
	}

	mode := "per-interval"
	if engine.DeltaPerSecond() {
		mode = "per-second"
	}

	if disks := engine.Disks(); len(disks) == 0 {
		logging.L(ctx).Infof("No disks are configured. Nothing to monitor.")
	} else {
		logging.L(ctx).Infof("Monitoring %s (%s mode).", util.FormatList(disks, true), mode)
	}

	if develMode {
		return develPoll(ctx, engine)
	}

	snapshot := exporter.NewSnapshot()
	prometheus.MustRegister(snapshot)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, unix.SIGTERM)
	defer stop()

	group, ctx := errgroup.WithContext(ctx)

	group.Go(func() error {
		poller.Run(ctx, interval, func(ctx context.Context) error {
			snapshot.Begin()
			if err := engine.Poll(ctx, snapshot); err != nil {
				return err
			}
			snapshot.Commit()
			return nil
		})
		return nil
	})

	group.Go(func() error {
		return server.Start(ctx, address, prometheus.DefaultGatherer)
	})

	return group.Wait()
}

func loadConfig(cmd *cobra.Command) ([]config.Directive, error) {
	flags := cmd.Flags()

	var directives []config.Directive

	configPath, err := flags.GetString("config")
	if err != nil {
		return nil, err
	} else if configPath != "" {
		directives, err = config.Load(configPath)
		if err != nil {
			return nil, err
		}
	}

	disks, err := flags.GetStringArray("disk")
	if err != nil {
		return nil, err
	}

	var deltaPerSecond mo.Option[bool]
	if flags.Changed("delta-per-second") {
		enabled, err := flags.GetBool("delta-per-second")
		if err != nil {
			return nil, err
		}
		deltaPerSecond = mo.Some(enabled)
	}

	flagDirectives, err := config.FromFlags(disks, deltaPerSecond)
	if err != nil {
		return nil, err
	}

	return append(directives, flagDirectives...), nil
}

func develPoll(ctx context.Context, engine *diskstats.Engine) error {
	emitter := diskstats.EmitterFunc(func(reading diskstats.Reading) {
		logging.L(ctx).Infof("* %s: %s %s: %d", reading.Device, util.Title(reading.Kind.String()), reading.Field, reading.Value)
	})

	logging.L(ctx).Info("Running in test mode.")
	if err := engine.Poll(ctx, emitter); err != nil {
		return err
	}

	logging.L(ctx).Info("Sleeping...")
	time.Sleep(5 * time.Second)

	return engine.Poll(ctx, emitter)
}

func main() {
	if err := run(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Command line arguments parsing error: %s.\n", err)
		os.Exit(1)
	}
}
