package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var fmtCmd = &cobra.Command{
	Use:   "fmt [files...]",
	Short: "Rewrite files in normalized form",
	Long: `Parses each file and writes it back with escaped values and lines folded
at 75 octets. Output goes to stdout unless -w is given.`,
	RunE: runFmt,
}

var fmtWrite bool

func init() {
	fmtCmd.Flags().BoolVarP(&fmtWrite, "write", "w", false, "write result to (source) file instead of stdout")

	rootCmd.AddCommand(fmtCmd)
}

func runFmt(cmd *cobra.Command, args []string) error {
	for _, path := range inputs(args) {
		comps, err := readFile(cmd, path)
		if err != nil {
			return err
		}

		var buf bytes.Buffer
		enc, err := newEncoder(&buf)
		if err != nil {
			return err
		}
		if err := enc.Encode(comps...); err != nil {
			return err
		}

		if !fmtWrite || path == "-" {
			if _, err := buf.WriteTo(cmd.OutOrStdout()); err != nil {
				return err
			}
			continue
		}

		info, err := os.Stat(path)
		if err != nil {
			return err
		}
		if err := os.WriteFile(path, buf.Bytes(), info.Mode().Perm()); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
		log.Infof("formatted %s", path)
	}
	return nil
}
