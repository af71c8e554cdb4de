package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/tanagraspace/pocketplus-go/internal/bench"
	"github.com/tanagraspace/pocketplus-go/internal/config"
)

func newBenchCmd(getLogger func() *slog.Logger, loadProfile profileLoader) *cobra.Command {
	var (
		packetSize  int
		robustness  int
		pt, ft, rt  int
		profileName string
	)

	cmd := &cobra.Command{
		Use:   "bench <input>",
		Short: "Compare POCKET+ against a flate baseline and verify round-trip integrity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			inputPath := args[0]
			profile := config.Profile{PacketBytes: packetSize, Robustness: robustness, PtLimit: pt, FtLimit: ft, RtLimit: rt}

			if profileName != "" {
				p, ok, err := loadProfile(profileName)
				if err != nil {
					return err
				}
				if ok {
					profile = p
				}
			}

			if profile.PacketBytes <= 0 {
				return fmt.Errorf("--packet-size (or --profile) must be positive")
			}

			data, err := os.ReadFile(inputPath)
			if err != nil {
				return fmt.Errorf("read input: %w", err)
			}

			report, err := bench.Compare(data, profile)
			if err != nil {
				return fmt.Errorf("bench: %w", err)
			}

			logger := getLogger()
			logger.Info("bench complete",
				"input", inputPath,
				"pocketplus_ratio", report.PocketPlusRatio,
				"flate_ratio", report.FlateRatio,
				"round_trip_ok", report.RoundTripOK)

			fmt.Printf("Input:           %s (%d bytes)\n", inputPath, report.InputBytes)
			fmt.Printf("POCKET+:         %d bytes, %.2fx, %s\n", report.PocketPlusBytes, report.PocketPlusRatio, report.PocketPlusDuration)
			fmt.Printf("flate baseline:  %d bytes, %.2fx, %s\n", report.FlateBytes, report.FlateRatio, report.FlateDuration)
			fmt.Printf("Round trip:      %v (xxhash64 %x == %x)\n", report.RoundTripOK, report.InputDigest, report.RoundTripDigest)

			if !report.RoundTripOK {
				return fmt.Errorf("round-trip digest mismatch")
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&packetSize, "packet-size", 0, "packet size in bytes")
	cmd.Flags().IntVar(&robustness, "robustness", 0, "robustness level")
	cmd.Flags().IntVar(&pt, "pt", 10, "new-mask period")
	cmd.Flags().IntVar(&ft, "ft", 20, "send-mask period")
	cmd.Flags().IntVar(&rt, "rt", 50, "uncompressed-packet period")
	cmd.Flags().StringVar(&profileName, "profile", "", "named profile from --config, overrides the numeric flags")

	return cmd
}
