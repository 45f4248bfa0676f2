// Package main provides the vobject command, a formatter and inspector for
// vCard and iCalendar files.
package main

import (
	"fmt"
	"io"
	"os"

	logging "github.com/ipfs/go-log/v2"
	"github.com/spf13/cobra"

	"github.com/luxifer/vobject"
	"github.com/luxifer/vobject/internal/config"
)

var log = logging.Logger("vobject")

var rootCmd = &cobra.Command{
	Use:   "vobject",
	Short: "Format and inspect vCard and iCalendar files",
	Long: `vobject parses vCard (.vcf) and iCalendar (.ics) files and writes them
back in a normalized, folded and escaped form.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if debug {
			logging.SetAllLoggers(logging.LevelDebug)
		} else {
			logging.SetAllLoggers(logging.LevelInfo)
		}

		c, err := config.Load(configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg = c
		log.Debugf("config: line_ending=%s qr.size=%d qr.level=%s", cfg.LineEnding, cfg.QR.Size, cfg.QR.Level)
		return nil
	},
}

var (
	configPath string
	debug      bool
	cfg        *config.Config
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug logging")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// readFile parses a file, or standard input when path is "-".
func readFile(cmd *cobra.Command, path string) ([]*vobject.Component, error) {
	var r io.Reader = cmd.InOrStdin()
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}

	comps, err := vobject.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	log.Debugf("%s: %d top-level components", path, len(comps))
	return comps, nil
}

// inputs returns the file arguments, defaulting to standard input.
func inputs(args []string) []string {
	if len(args) == 0 {
		return []string{"-"}
	}
	return args
}

func newEncoder(w io.Writer) (*vobject.Encoder, error) {
	eol, err := cfg.EOL()
	if err != nil {
		return nil, err
	}
	enc := vobject.NewEncoder(w)
	enc.LineEnding = eol
	return enc, nil
}
