package cmd

import (
	"fmt"

	"github.com/cwbudde/minijavac/internal/ast"
	"github.com/spf13/cobra"
)

var parseDumpAST bool

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse a MiniJava file and print its classes",
	Long: `Run the parser only and print either a one-line summary of the parsed
classes or, with --dump-ast, each class with its fields and method
signatures. Method bodies (statements and expressions) are not printed.`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)

	parseCmd.Flags().BoolVar(&parseDumpAST, "dump-ast", false, "list each class's fields and method signatures")
}

func runParse(_ *cobra.Command, args []string) error {
	filename := args[0]

	source, err := readSource(filename)
	if err != nil {
		return err
	}

	project, err := parseSource(source, filename)
	if err != nil {
		return err
	}

	if parseDumpAST {
		for _, class := range project.Classes {
			dumpClass(class, 0)
		}
		return nil
	}

	fmt.Printf("Parsed %d class(es): %v\n", len(project.ClassName), project.ClassName)
	return nil
}

func dumpClass(class *ast.Class, indent int) {
	pad := indentString(indent)
	extends := ""
	if class.Extends != "" {
		extends = " extends " + class.Extends
	}
	fmt.Printf("%sClass %s%s\n", pad, class.Name, extends)

	for _, field := range class.Fields {
		fmt.Printf("%s  Field %s %s\n", pad, field.TypeLexeme, field.Name)
	}
	for _, method := range class.Methods {
		fmt.Printf("%s  Method %s %s(%d params)\n", pad, method.ReturnLex, method.Name, len(method.Params))
	}
}

func indentString(n int) string {
	s := ""
	for i := 0; i < n; i++ {
		s += "  "
	}
	return s
}
