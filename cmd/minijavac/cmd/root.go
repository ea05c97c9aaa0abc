// Package cmd implements the minijavac cobra CLI: a thin shell around
// internal/lexer, internal/parser, internal/semantic, internal/codegen,
// and internal/emit (SPEC_FULL.md §14).
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Version information, set by build flags.
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "minijavac",
	Short: "MiniJava-to-C source-to-source compiler",
	Long: `minijavac compiles a small, statically-typed MiniJava subset
(single-inheritance classes, int/boolean/int[] fields, static main) to
portable C99 source plus a CMake build manifest.`,
	Version: Version,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

func exitWithError(msg string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+msg+"\n", args...)
	os.Exit(1)
}
