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

const detectReadSamples = 128

var detectCmd = &cobra.Command{
	Use:   "detect",
	Short: "Run utterance detection on 16 kHz mono PCM16 from stdin",
	Long: `Reads 16000 Hz mono 16-bit signed little-endian raw audio from stdin
and prints "Utterance detected." / "Utterance over." as the free-running
VAD transitions. Stops cleanly on SIGINT.

Example producers:
  arecord -r 16000 -c 1 -f S16_LE
  ffmpeg -y -f alsa -ac 1 -i default -ar 16000 -f s16le -acodec pcm_s16le /dev/stdout`,
	Args: cobra.NoArgs,
	RunE: runDetect,
}

func init() {
	rootCmd.AddCommand(detectCmd)
}

func runDetect(cmd *cobra.Command, args []string) error {
	ctx := tinysr.NewContext()
	if err := ctx.Configure(tinysr.Config{InputSampleRate: tinysr.InternalSampleRate, Mode: tinysr.FreeRunning}); err != nil {
		return err
	}

	sigCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	out := cmd.OutOrStdout()
	buf := make([]int16, detectReadSamples)
	raw := make([]byte, detectReadSamples*2)
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
		if err := ctx.FeedInput(buf[:samples]); err != nil {
			return err
		}
		ctx.DetectUtterances()

		if prevState == tinysr.Idle && ctx.UtteranceState == tinysr.InUtterance {
			fmt.Fprintln(out, "Utterance detected.")
		}
		if prevState == tinysr.InUtterance && ctx.UtteranceState == tinysr.Idle {
			fmt.Fprintln(out, "Utterance over.")
		}
		prevState = ctx.UtteranceState

		if readErr == io.ErrUnexpectedEOF || readErr == io.EOF {
			break
		}
	}

	slog.Info("done", "processed_samples", ctx.ProcessedSamples)
	return nil
}
