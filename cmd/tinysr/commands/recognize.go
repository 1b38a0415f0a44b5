package commands

import (
	"encoding/binary"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/haivivi/tinysr/pkg/tinysr"
)

const recognizeReadSamples = 128

var recognizeCmd = &cobra.Command{
	Use:   "recognize <model-file>",
	Short: "Recognize isolated words from 16 kHz mono PCM16 on stdin",
	Long: `Loads a model file, then reads 16000 Hz mono 16-bit signed
little-endian raw audio from stdin, printing utterance transitions and
"=== <word> (<score>)" for each result. Stops cleanly on SIGINT.`,
	Args: cobra.ExactArgs(1),
	RunE: runRecognize,
}

func init() {
	rootCmd.AddCommand(recognizeCmd)
}

func runRecognize(cmd *cobra.Command, args []string) error {
	ctx := tinysr.NewContext()
	if err := ctx.Configure(tinysr.Config{InputSampleRate: tinysr.InternalSampleRate, Mode: tinysr.FreeRunning}); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	count, err := ctx.LoadModel(args[0])
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Loaded up %d words.\n", count)

	sigCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	buf := make([]int16, recognizeReadSamples)
	raw := make([]byte, recognizeReadSamples*2)
	prevState := tinysr.Idle
	for {
		select {
		case <-sigCtx.Done():
			fmt.Fprintln(out, "SIGINT caught, stopping.")
			slog.Info("done", "processed_samples", ctx.ProcessedSamples)
			return nil
		default:
		}

		n, readErr := io.ReadFull(os.Stdin, raw)
		if n == 0 {
			break
		}
		samples := n / 2
		for i := 0; i < samples; i++ {
			buf[i] = int16(binary.LittleEndian.Uint16(raw[2*i:]))
		}
		if _, err := ctx.Recognize(buf[:samples]); err != nil {
			return err
		}

		if prevState == tinysr.Idle && ctx.UtteranceState == tinysr.InUtterance {
			fmt.Fprintln(out, "Utterance detected.")
		}
		if prevState == tinysr.InUtterance && ctx.UtteranceState == tinysr.Idle {
			fmt.Fprintln(out, "Utterance over.")
		}
		prevState = ctx.UtteranceState

		for {
			result, ok := ctx.GetResult()
			if !ok {
				break
			}
			fmt.Fprintf(out, "=== %s (%.3f)\n", ctx.WordNames[result.WordIndex], result.Score)
		}

		if readErr == io.ErrUnexpectedEOF || readErr == io.EOF {
			break
		}
	}

	slog.Info("done", "processed_samples", ctx.ProcessedSamples)
	return nil
}
