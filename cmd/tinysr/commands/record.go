package commands

import (
	"encoding/binary"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/haivivi/tinysr/pkg/tinysr"
)

const recordReadSamples = 128

var recordCmd = &cobra.Command{
	Use:   "record <output-dir>",
	Short: "Detect utterances from stdin and save them for training",
	Long: `Reads 16000 Hz mono 16-bit signed little-endian raw audio from stdin,
runs utterance detection, and writes each detected utterance to
<output-dir>/utter-<uuid>.csv plus a manifest.yaml sidecar mapping
each file to a (blank) word label for a human trainer to fill in.`,
	Args: cobra.ExactArgs(1),
	RunE: runRecord,
}

func init() {
	rootCmd.AddCommand(recordCmd)
}

// manifestEntry is one row of manifest.yaml: a saved utterance file
// and the word label a human trainer assigns it, left blank at record
// time. This replaces the original store_utters program's access()
// probing loop for free filenames with collision-free UUIDs plus an
// explicit label sidecar (see DESIGN.md).
type manifestEntry struct {
	File  string `yaml:"file"`
	Label string `yaml:"label"`
}

func runRecord(cmd *cobra.Command, args []string) error {
	outDir := args[0]
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return wrapIOError(err)
	}

	ctx := tinysr.NewContext()
	if err := ctx.Configure(tinysr.Config{InputSampleRate: tinysr.InternalSampleRate, Mode: tinysr.FreeRunning}); err != nil {
		return err
	}

	sigCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	out := cmd.OutOrStdout()
	var manifest []manifestEntry

	buf := make([]int16, recordReadSamples)
	raw := make([]byte, recordReadSamples*2)
	for {
		select {
		case <-sigCtx.Done():
			fmt.Fprintln(out, "SIGINT caught, stopping.")
			return finishRecording(outDir, manifest, ctx)
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

		for {
			utt, ok := ctx.PopPendingUtterance()
			if !ok {
				break
			}
			name := fmt.Sprintf("utter-%s.csv", uuid.NewString())
			path := filepath.Join(outDir, name)
			slog.Info("writing utterance", "path", path)
			if err := tinysr.WriteFeatureVectorCSV(path, utt.FeatureVectors); err != nil {
				return err
			}
			manifest = append(manifest, manifestEntry{File: name})
		}

		if readErr == io.ErrUnexpectedEOF || readErr == io.EOF {
			break
		}
	}

	return finishRecording(outDir, manifest, ctx)
}

func finishRecording(outDir string, manifest []manifestEntry, ctx *tinysr.Context) error {
	if len(manifest) > 0 {
		manifestPath := filepath.Join(outDir, "manifest.yaml")
		data, err := yaml.Marshal(manifest)
		if err != nil {
			return err
		}
		if err := os.WriteFile(manifestPath, data, 0o644); err != nil {
			return wrapIOError(err)
		}
	}
	slog.Info("done", "processed_samples", ctx.ProcessedSamples, "utterances", len(manifest))
	return nil
}
