// Command lensgen generates lens accessors for data structs.
//
// Pointed at a package directory, it emits a <package>_lens.go file with
// one lens.Field variable per exported struct field and a Same method for
// every struct that lacks one, so application state types can be composed
// with LensWrap without hand-written boilerplate:
//
//	lensgen ./internal/state
//	lensgen --type AppState --type Settings ./internal/state
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/mod/modfile"
	"golang.org/x/mod/module"

	"github.com/go-quill/quill/cmd/lensgen/internal/gen"
)

var opts struct {
	output string
	types  []string
	stdout bool
}

var rootCmd = &cobra.Command{
	Use:   "lensgen [package-dir]",
	Short: "Generate lens accessors and Same methods for data structs",
	Long: `lensgen scans a Go package for struct types and generates the lens
boilerplate needed to bind widgets to parts of the application data:
a lens.Field accessor per exported field and a data.SameStruct-backed
Same method per struct that does not define its own.

Fields tagged ` + "`data:\"ignore\"`" + ` are skipped. The target package must
live inside a Go module.`,
	Args: cobra.MaximumNArgs(1),
	RunE: run,

	SilenceUsage: true,
}

func init() {
	rootCmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default <package>_lens.go in the package directory)")
	rootCmd.Flags().StringArrayVarP(&opts.types, "type", "t", nil, "only generate for the named struct (repeatable)")
	rootCmd.Flags().BoolVar(&opts.stdout, "stdout", false, "print the generated file instead of writing it")
}

func run(cmd *cobra.Command, args []string) error {
	dir := "."
	if len(args) == 1 {
		dir = args[0]
	}

	importPath, err := packageImportPath(dir)
	if err != nil {
		return err
	}

	pkg, err := gen.ScanDir(dir)
	if err != nil {
		return err
	}
	pkg.SourcePath = importPath
	if err := gen.Filter(pkg, opts.types); err != nil {
		return err
	}
	src, err := gen.Render(pkg)
	if err != nil {
		return err
	}

	if opts.stdout {
		_, err = cmd.OutOrStdout().Write(src)
		return err
	}

	output := opts.output
	if output == "" {
		output = filepath.Join(dir, pkg.Name+"_lens.go")
	}
	if err := os.WriteFile(output, src, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", output)
	return nil
}

// packageImportPath resolves the import path of dir from the enclosing
// module's go.mod.
func packageImportPath(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	root := abs
	for {
		if _, err := os.Stat(filepath.Join(root, "go.mod")); err == nil {
			break
		}
		parent := filepath.Dir(root)
		if parent == root {
			return "", fmt.Errorf("%s is not inside a Go module (no go.mod found)", dir)
		}
		root = parent
	}

	data, err := os.ReadFile(filepath.Join(root, "go.mod"))
	if err != nil {
		return "", fmt.Errorf("read go.mod: %w", err)
	}
	modPath := modfile.ModulePath(data)
	if modPath == "" {
		return "", fmt.Errorf("no module path in %s", filepath.Join(root, "go.mod"))
	}

	rel, err := filepath.Rel(root, abs)
	if err != nil {
		return "", err
	}
	importPath := modPath
	if rel != "." {
		importPath = modPath + "/" + filepath.ToSlash(rel)
	}
	if err := module.CheckImportPath(importPath); err != nil {
		return "", fmt.Errorf("bad import path %q: %w", importPath, err)
	}
	return importPath, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "lensgen:", err)
		os.Exit(1)
	}
}
