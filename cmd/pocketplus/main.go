// Command pocketplus is the POCKET+ command line interface: compress and
// decompress fixed-length telemetry streams per CCSDS 124.0-B-1, and
// compare the result against a general-purpose baseline.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
