package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check [files...]",
	Short: "Report syntax errors",
	Long:  `Parses each file and reports the first syntax error found in it.`,
	RunE:  runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	failed := 0
	for _, path := range inputs(args) {
		if _, err := readFile(cmd, path); err != nil {
			log.Errorf("%v", err)
			failed++
			continue
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: ok\n", path)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(inputs(args)))
	}
	return nil
}
