// Package main defines the simulator command line entry point.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/prysmaticlabs/threeslot/cmd"
	"github.com/prysmaticlabs/threeslot/config/params"
	"github.com/prysmaticlabs/threeslot/io/logs"
	"github.com/prysmaticlabs/threeslot/runtime/version"
	"github.com/prysmaticlabs/threeslot/simulator"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"
)

var log = logrus.WithField("prefix", "main")

var appFlags = []cli.Flag{
	cmd.VerbosityFlag,
	cmd.LogFileName,
	cmd.LogFormat,
	cmd.ConfigFileFlag,
	cmd.MonitoringHostFlag,
	cmd.MonitoringPortFlag,
	cmd.EnableMonitoringFlag,
	slotCountFlag,
	numValidatorsFlag,
	validatorWeightFlag,
	voteExpiryFlag,
	finalityWindowFlag,
	offlineValidatorsFlag,
	equivocatorsFlag,
	treeDotFileFlag,
}

func main() {
	app := cli.App{
		Name:    "simulator",
		Usage:   "this is a 3-slot finality protocol simulator: RLMD-GHOST fork choice with a compressed FFG finality gadget",
		Action:  run,
		Version: version.GetVersion(),
		Flags:   appFlags,
		Before: func(ctx *cli.Context) error {
			format := ctx.String(cmd.LogFormat.Name)
			switch format {
			case "text":
				formatter := new(prefixed.TextFormatter)
				formatter.TimestampFormat = "2006-01-02 15:04:05"
				formatter.FullTimestamp = true
				logrus.SetFormatter(formatter)
			case "json":
				logrus.SetFormatter(&logrus.JSONFormatter{})
			case "fluentd":
				// The file hook handles fluentd output; terminal stays text.
			default:
				return fmt.Errorf("unknown log format %s", format)
			}

			level, err := logrus.ParseLevel(ctx.String(cmd.VerbosityFlag.Name))
			if err != nil {
				return err
			}
			logrus.SetLevel(level)

			if logFileName := ctx.String(cmd.LogFileName.Name); logFileName != "" {
				if err := logs.ConfigurePersistentLogging(logFileName, format); err != nil {
					log.WithError(err).Error("Failed to configuring logging to disk.")
				}
			}
			if configFile := ctx.String(cmd.ConfigFileFlag.Name); configFile != "" {
				if err := params.LoadProtocolConfigFile(configFile); err != nil {
					return err
				}
			}
			return nil
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Error(err.Error())
		os.Exit(1)
	}
}

func run(ctx *cli.Context) error {
	log.WithField("version", version.GetVersion()).Info("Starting simulator")

	if ctx.Bool(cmd.EnableMonitoringFlag.Name) {
		addr := fmt.Sprintf("%s:%d", ctx.String(cmd.MonitoringHostFlag.Name), ctx.Int(cmd.MonitoringPortFlag.Name))
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.Handler())
			log.WithField("address", addr).Info("Starting prometheus listener")
			if err := http.ListenAndServe(addr, mux); err != nil {
				log.WithError(err).Error("Monitoring listener failed")
			}
		}()
	}

	// Start from the active protocol config so that a --config-file run is
	// not clobbered by flag defaults; explicit flags still win.
	cfg := params.ThreeSlotConfig()
	p := simulator.DefaultParameters()
	p.NumValidators = cfg.NumValidators
	p.ValidatorWeight = cfg.ValidatorWeight
	p.VoteExpirySlots = cfg.VoteExpirySlots
	p.FinalityWindow = cfg.FinalityWindow
	p.SlotCount = ctx.Uint64(slotCountFlag.Name)
	if ctx.IsSet(numValidatorsFlag.Name) {
		p.NumValidators = ctx.Uint64(numValidatorsFlag.Name)
	}
	if ctx.IsSet(validatorWeightFlag.Name) {
		p.ValidatorWeight = ctx.Uint64(validatorWeightFlag.Name)
	}
	if ctx.IsSet(voteExpiryFlag.Name) {
		p.VoteExpirySlots = ctx.Uint64(voteExpiryFlag.Name)
	}
	if ctx.IsSet(finalityWindowFlag.Name) {
		p.FinalityWindow = ctx.Uint64(finalityWindowFlag.Name)
	}
	p.OfflineIndices = toUint64s(ctx.Int64Slice(offlineValidatorsFlag.Name))
	p.EquivocatorIndices = toUint64s(ctx.Int64Slice(equivocatorsFlag.Name))
	p.DotFilePath = ctx.String(treeDotFileFlag.Name)

	return simulator.NewService(p).Run(context.Background())
}

func toUint64s(indices []int64) []uint64 {
	out := make([]uint64, 0, len(indices))
	for _, i := range indices {
		if i < 0 {
			continue
		}
		out = append(out, uint64(i))
	}
	return out
}
