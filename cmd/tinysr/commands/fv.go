package commands

import (
	"encoding/binary"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/haivivi/tinysr/pkg/tinysr"
)

const readSamples = 512

var fvCmd = &cobra.Command{
	Use:   "fv <sample-rate> <input-file>",
	Short: "Stream raw PCM16 from a file and print feature vectors as CSV",
	Long: `Expects the input file to be raw 16-bit signed little-endian audio at
the given sample rate. Computes feature vectors and prints them as
CSV: "log_energy,c0,c1,...,c12" one line per frame.`,
	Args: cobra.ExactArgs(2),
	RunE: runFV,
}

func init() {
	rootCmd.AddCommand(fvCmd)
}

func runFV(cmd *cobra.Command, args []string) error {
	rate, err := strconv.Atoi(args[0])
	if err != nil {
		return &tinysr.UsageError{Op: "fv", Msg: fmt.Sprintf("bad sample rate %q", args[0])}
	}

	slog.Info("allocating context")
	ctx := tinysr.NewContext()
	if err := ctx.Configure(tinysr.Config{InputSampleRate: rate, Mode: tinysr.FreeRunning}); err != nil {
		return err
	}

	f, err := os.Open(args[1])
	if err != nil {
		return wrapIOError(err)
	}
	defer f.Close()

	out := cmd.OutOrStdout()
	buf := make([]int16, readSamples)
	raw := make([]byte, readSamples*2)
	for {
		n, readErr := io.ReadFull(f, raw)
		if n == 0 {
			break
		}
		samples := n / 2
		for i := 0; i < samples; i++ {
			buf[i] = int16(binary.LittleEndian.Uint16(raw[2*i:]))
		}
		if err := ctx.FeedInput(buf[:samples]); err != nil {
			return err
		}
		for _, fv := range ctx.DrainFeatureVectors() {
			if err := writeFVLine(out, fv); err != nil {
				return wrapIOError(err)
			}
		}
		if readErr == io.ErrUnexpectedEOF || readErr == io.EOF {
			break
		}
	}

	slog.Info("done", "processed_samples", ctx.ProcessedSamples)
	return nil
}

func writeFVLine(w io.Writer, fv tinysr.FeatureVector) error {
	if _, err := fmt.Fprintf(w, "%f", fv.LogEnergy); err != nil {
		return err
	}
	for _, c := range fv.Cepstrum {
		if _, err := fmt.Fprintf(w, ",%f", c); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w)
	return err
}
