// Package commands implements the tinysr CLI command tree.
package commands

import "github.com/spf13/cobra"

var rootCmd = &cobra.Command{
	Use:   "tinysr",
	Short: "Isolated-word speech recognizer",
	Long: `tinysr - a small, embeddable isolated-word speech recognizer.

Subcommands:
  fv         stream raw PCM from a file, print feature vectors as CSV
  detect     utterance detection over stdin PCM16, free-running
  recognize  load a model and recognize utterances from stdin PCM16
  record     detect utterances from stdin and save them for training

All PCM input is 16-bit signed little-endian, mono unless noted.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// IOError wraps a file I/O failure so main can map it to exit code 2,
// matching the original apps' "IOError -> exit 2" convention, for
// errors that occur outside of the tinysr package itself (e.g.
// opening the input file).
type IOError struct {
	err error
}

func (e *IOError) Error() string { return e.err.Error() }
func (e *IOError) Unwrap() error { return e.err }

func wrapIOError(err error) error {
	if err == nil {
		return nil
	}
	return &IOError{err: err}
}
