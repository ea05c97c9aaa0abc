package cmd

import (
	"fmt"
	"os"

	"github.com/cwbudde/minijavac/internal/codegen"
	"github.com/cwbudde/minijavac/internal/emit"
	"github.com/spf13/cobra"
)

var (
	compileOutDir   string
	compileManifest string
)

var compileCmd = &cobra.Command{
	Use:   "compile [file]",
	Short: "Compile a MiniJava file to C",
	Long: `Run the full pipeline (parse -> analyze -> generate -> emit) and
write the resulting C source and build manifest to an output directory.

Examples:
  minijavac compile Main.mj
  minijavac compile Main.mj --out build/`,
	Args: cobra.ExactArgs(1),
	RunE: runCompile,
}

func init() {
	rootCmd.AddCommand(compileCmd)

	compileCmd.Flags().StringVarP(&compileOutDir, "out", "o", "compile", "output directory for generated C source")
	compileCmd.Flags().StringVar(&compileManifest, "manifest", "cmake", "build manifest format: cmake or ninja-stub")
}

func runCompile(_ *cobra.Command, args []string) error {
	filename := args[0]

	if compileManifest != "cmake" && compileManifest != "ninja-stub" {
		return fmt.Errorf("unknown --manifest value %q (want cmake or ninja-stub)", compileManifest)
	}

	source, err := readSource(filename)
	if err != nil {
		return err
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Parsing %s...\n", filename)
	}
	project, err := parseSource(source, filename)
	if err != nil {
		return err
	}

	if verbose {
		fmt.Fprintln(os.Stderr, "Running semantic analysis...")
	}
	registry, err := analyzeProject(project, source, filename)
	if err != nil {
		return err
	}

	if verbose {
		fmt.Fprintln(os.Stderr, "Generating C source...")
	}
	files, err := codegen.NewGenerator(project, registry).GenerateAll()
	if err != nil {
		reportDiagnostic(err, source, filename)
		return fmt.Errorf("code generation failed")
	}

	// ninja-stub is a documented Open Question placeholder (spec.md §6
	// only commits to "e.g. a CMake script"); emit it as a TODO file
	// rather than silently falling back to CMake.
	if compileManifest == "ninja-stub" {
		delete(files, "CMakeLists.txt")
		files["build.ninja"] = "# ninja manifest generation is not yet implemented; use --manifest=cmake\n"
	}

	writer, err := emit.NewWriter(compileOutDir)
	if err != nil {
		return err
	}
	if err := writer.WriteAll(files); err != nil {
		return err
	}

	fmt.Printf("Compiled %s -> %s (%d files)\n", filename, compileOutDir, len(files))
	return nil
}
