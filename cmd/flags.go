// Package cmd defines the command line flags shared by the simulation
// binaries.
package cmd

import (
	"github.com/urfave/cli/v2"
)

var (
	// VerbosityFlag defines the logrus configuration.
	VerbosityFlag = &cli.StringFlag{
		Name:  "verbosity",
		Usage: "Logging verbosity (trace, debug, info, warn, error, fatal, panic)",
		Value: "info",
	}
	// LogFileName specifies the log output file name.
	LogFileName = &cli.StringFlag{
		Name:  "log-file",
		Usage: "Specify log file name, relative or absolute",
	}
	// LogFormat specifies the log output format.
	LogFormat = &cli.StringFlag{
		Name:  "log-format",
		Usage: "Specify log formatting. Supports: text, json, fluentd",
		Value: "text",
	}
	// ConfigFileFlag specifies the filepath to load protocol parameters.
	ConfigFileFlag = &cli.StringFlag{
		Name:  "config-file",
		Usage: "The filepath to a yaml file with protocol parameter overrides",
	}
	// MonitoringHostFlag defines the host used to serve prometheus metrics.
	MonitoringHostFlag = &cli.StringFlag{
		Name:  "monitoring-host",
		Usage: "Host used for listening and responding metrics for prometheus",
		Value: "127.0.0.1",
	}
	// MonitoringPortFlag defines the port used to serve prometheus metrics.
	MonitoringPortFlag = &cli.IntFlag{
		Name:  "monitoring-port",
		Usage: "Port used to listening and respond metrics for prometheus",
		Value: 8080,
	}
	// EnableMonitoringFlag turns on the metrics listener. Off by default
	// since a simulation run is short lived.
	EnableMonitoringFlag = &cli.BoolFlag{
		Name:  "enable-monitoring",
		Usage: "Serve prometheus metrics while the simulation runs",
	}
)
