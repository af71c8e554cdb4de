package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tanagraspace/pocketplus-go/pocketplus"
)

func newDecompressCmd(getLogger func() *slog.Logger, loadProfile profileLoader) *cobra.Command {
	var (
		packetSize  int
		robustness  int
		profileName string
		output      string
	)

	cmd := &cobra.Command{
		Use:   "decompress <input.pkt>",
		Short: "Decompress a POCKET+ stream",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			inputPath := args[0]

			if profileName != "" {
				p, ok, err := loadProfile(profileName)
				if err != nil {
					return err
				}
				if ok {
					packetSize, robustness = p.PacketBytes, p.Robustness
				}
			}

			if packetSize <= 0 {
				return fmt.Errorf("--packet-size (or --profile) must be positive")
			}

			data, err := os.ReadFile(inputPath)
			if err != nil {
				return fmt.Errorf("read input: %w", err)
			}

			decompressed, err := pocketplus.Decompress(data, packetSize, robustness)
			if err != nil {
				return fmt.Errorf("decompress: %w", err)
			}

			if output == "" {
				output = defaultDecompressOutput(inputPath)
			}
			if err := os.WriteFile(output, decompressed, 0o644); err != nil {
				return fmt.Errorf("write output: %w", err)
			}

			logger := getLogger()
			logger.Info("decompressed stream",
				"input", inputPath, "input_bytes", len(data),
				"output", output, "output_bytes", len(decompressed),
				"robustness", robustness)
			fmt.Printf("Input:       %s (%d bytes)\n", inputPath, len(data))
			fmt.Printf("Output:      %s (%d bytes)\n", output, len(decompressed))
			return nil
		},
	}

	cmd.Flags().IntVar(&packetSize, "packet-size", 0, "original packet size in bytes")
	cmd.Flags().IntVar(&robustness, "robustness", 0, "robustness level, must match compression")
	cmd.Flags().StringVar(&profileName, "profile", "", "named profile from --config, overrides the numeric flags")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output path, defaults to <base>.depkt")

	return cmd
}

func defaultDecompressOutput(input string) string {
	if strings.HasSuffix(input, ".pkt") {
		return strings.TrimSuffix(input, ".pkt") + ".depkt"
	}
	return input + ".depkt"
}
