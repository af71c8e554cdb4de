package main

import (
	"encoding/hex"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/tanagraspace/pocketplus-go/internal/config"
	"github.com/tanagraspace/pocketplus-go/internal/packetstream"
	"github.com/tanagraspace/pocketplus-go/pocketplus"
)

type profileLoader func(name string) (config.Profile, bool, error)

func newCompressCmd(getLogger func() *slog.Logger, loadProfile profileLoader) *cobra.Command {
	var (
		packetSize  int
		robustness  int
		pt, ft, rt  int
		profileName string
		maskHex     string
		output      string
	)

	cmd := &cobra.Command{
		Use:   "compress <input>",
		Short: "Compress a fixed-length telemetry stream",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			inputPath := args[0]

			if profileName != "" {
				p, ok, err := loadProfile(profileName)
				if err != nil {
					return err
				}
				if ok {
					packetSize, robustness, pt, ft, rt = p.PacketBytes, p.Robustness, p.PtLimit, p.FtLimit, p.RtLimit
					if p.InitialMaskHex != "" && maskHex == "" {
						maskHex = p.InitialMaskHex
					}
				}
			}

			if packetSize <= 0 {
				return fmt.Errorf("--packet-size (or --profile) must be positive")
			}

			data, err := os.ReadFile(inputPath)
			if err != nil {
				return fmt.Errorf("read input: %w", err)
			}

			var initialMask []byte
			if maskHex != "" {
				initialMask, err = hex.DecodeString(maskHex)
				if err != nil {
					return fmt.Errorf("invalid --initial-mask-hex: %w", err)
				}
			}

			compressed, err := compressWithMask(data, packetSize, robustness, pt, ft, rt, initialMask)
			if err != nil {
				return fmt.Errorf("compress: %w", err)
			}

			if output == "" {
				output = inputPath + ".pkt"
			}
			if err := os.WriteFile(output, compressed, 0o644); err != nil {
				return fmt.Errorf("write output: %w", err)
			}

			logger := getLogger()
			ratio := 0.0
			if len(compressed) > 0 {
				ratio = float64(len(data)) / float64(len(compressed))
			}
			logger.Info("compressed stream",
				"input", inputPath, "input_bytes", len(data),
				"output", output, "output_bytes", len(compressed),
				"ratio", ratio, "robustness", robustness)
			fmt.Printf("Input:       %s (%d bytes)\n", inputPath, len(data))
			fmt.Printf("Output:      %s (%d bytes)\n", output, len(compressed))
			fmt.Printf("Ratio:       %.2fx\n", ratio)
			return nil
		},
	}

	cmd.Flags().IntVar(&packetSize, "packet-size", 0, "packet size in bytes")
	cmd.Flags().IntVar(&robustness, "robustness", 0, "robustness level (0-7, clamps above 7)")
	cmd.Flags().IntVar(&pt, "pt", 10, "new-mask period (0 disables automatic scheduling)")
	cmd.Flags().IntVar(&ft, "ft", 20, "send-mask period")
	cmd.Flags().IntVar(&rt, "rt", 50, "uncompressed-packet period")
	cmd.Flags().StringVar(&profileName, "profile", "", "named profile from --config, overrides the numeric flags")
	cmd.Flags().StringVar(&maskHex, "initial-mask-hex", "", "hex-encoded initial mask, defaults to all-zero")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output path, defaults to <input>.pkt")

	return cmd
}

// compressWithMask is Compress plus an optional non-zero initial mask,
// which the package-level pocketplus.Compress does not expose.
func compressWithMask(data []byte, packetSize, robustness, pt, ft, rt int, initialMask []byte) ([]byte, error) {
	if packetSize <= 0 {
		return nil, fmt.Errorf("packetSize must be positive")
	}
	if len(data) == 0 {
		return nil, nil
	}
	records, err := packetstream.Chunks(data, packetSize)
	if err != nil {
		return nil, fmt.Errorf("input length (%d) not a multiple of packet size (%d)", len(data), packetSize)
	}

	f := packetSize * 8
	var mask *pocketplus.BitVector
	if initialMask != nil {
		m, err := pocketplus.NewBitVector(f)
		if err != nil {
			return nil, err
		}
		m.FromBytes(initialMask)
		mask = m
	}

	comp, err := pocketplus.NewCompressor(f, mask, robustness, pt, ft, rt)
	if err != nil {
		return nil, err
	}

	input, err := pocketplus.NewBitVector(f)
	if err != nil {
		return nil, err
	}

	packets := make([][]byte, len(records))
	for i, record := range records {
		input.FromBytes(record)
		packet, err := comp.CompressPacket(input, nil)
		if err != nil {
			return nil, err
		}
		packets[i] = packet
	}
	return packetstream.Join(packets), nil
}
