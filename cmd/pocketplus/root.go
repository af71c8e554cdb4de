package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/tanagraspace/pocketplus-go/internal/config"
	"github.com/tanagraspace/pocketplus-go/internal/telemetrylog"
	"github.com/tanagraspace/pocketplus-go/pocketplus"
)

func pocketplusVersion() string {
	return pocketplus.Version
}

const banner = `  ____   ___   ____ _  _______ _____     _
 |  _ \ / _ \ / ___| |/ / ____|_   _|  _| |_
 | |_) | | | | |   | ' /|  _|   | |   |_   _|
 |  __/| |_| | |___| . \| |___  | |     |_|
 |_|    \___/ \____|_|\_\_____| |_|

         by  T A N A G R A  S P A C E`

const longDescription = banner + `

CCSDS 124.0-B-1 Lossless Compression
=====================================

References:
  CCSDS 124.0-B-1: https://ccsds.org/Pubs/124x0b1.pdf
  ESA POCKET+: https://opssat.esa.int/pocket-plus/

Citation:
  D. Evans, G. Labreche, D. Marszk, S. Bammens, M. Hernandez-Cabronero,
  V. Zelenevskiy, V. Shiradhonkar, M. Starcik, and M. Henkel. 2022.
  "Implementing the New CCSDS Housekeeping Data Compression Standard
  124.0-B-1 (based on POCKET+) on OPS-SAT-1," Proceedings of the
  Small Satellite Conference, Communications, SSC22-XII-03.
  https://digitalcommons.usu.edu/smallsat/2022/all2022/133/`

// rootFlags holds the persistent flags shared by every subcommand.
type rootFlags struct {
	logLevel   string
	logJSON    bool
	configPath string
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}
	var logger *slog.Logger

	cmd := &cobra.Command{
		Use:           "pocketplus",
		Short:         "CCSDS 124.0-B-1 (POCKET+) lossless telemetry compression",
		Long:          longDescription,
		Version:       pocketplusVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger = telemetrylog.New(telemetrylog.ParseLevel(flags.logLevel), flags.logJSON, os.Stderr)
		},
	}

	cmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "info", "log level: debug, info, warn, error")
	cmd.PersistentFlags().BoolVar(&flags.logJSON, "log-json", false, "emit logs as line-delimited JSON")
	cmd.PersistentFlags().StringVar(&flags.configPath, "config", "", "path to a profile TOML file")

	getLogger := func() *slog.Logger { return logger }
	loadProfile := func(name string) (config.Profile, bool, error) {
		if flags.configPath == "" || name == "" {
			return config.Profile{}, false, nil
		}
		reg, err := config.Load(flags.configPath)
		if err != nil {
			return config.Profile{}, false, err
		}
		p, err := reg.Get(name)
		if err != nil {
			return config.Profile{}, false, err
		}
		return p, true, nil
	}

	cmd.AddCommand(newCompressCmd(getLogger, loadProfile))
	cmd.AddCommand(newDecompressCmd(getLogger, loadProfile))
	cmd.AddCommand(newBenchCmd(getLogger, loadProfile))

	return cmd
}
