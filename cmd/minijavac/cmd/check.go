package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check [file]",
	Short: "Parse and semantically analyze a MiniJava file without generating C",
	Args:  cobra.ExactArgs(1),
	RunE:  runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(_ *cobra.Command, args []string) error {
	filename := args[0]

	source, err := readSource(filename)
	if err != nil {
		return err
	}

	project, err := parseSource(source, filename)
	if err != nil {
		return err
	}

	if _, err := analyzeProject(project, source, filename); err != nil {
		return err
	}

	fmt.Printf("%s: OK\n", filename)
	return nil
}
