// Command irwindow windows a measured impulse response and prints the
// re-transformed spectrum.
//
// Usage:
//
//	irwindow apply [flags] <file>
//	irwindow modes
//	irwindow windows [-size n]
//	irwindow config
//
// Input files ending in .wav are decoded as PCM; anything else is read as
// text with one sample per line (the last field of each line is used, so
// "time value" pairs work too).
//
// Examples:
//
//	irwindow apply --mode FFT12 --window hann --wide 5 room.wav
//	irwindow apply --domain frequency --min-frequency 100 --format csv ir.txt
//	irwindow apply --mode LTW2 --impulse --format yaml room.wav
//	IRWINDOW_WINDOWING_MODE=FFT14 irwindow apply room.wav
//	irwindow windows -size 4096
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
