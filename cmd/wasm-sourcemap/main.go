package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/wippyai/wasm-sourcemap/errors"
	"github.com/wippyai/wasm-sourcemap/sourcemap"
)

type options struct {
	compact     bool
	pretty      bool
	output      string
	watch       bool
	interactive bool
	verbose     bool
}

func main() {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "wasm-sourcemap [module.wasm]",
		Short: "Extract a source map from a WebAssembly module's DWARF sections",
		Long: `wasm-sourcemap reads a WebAssembly module, decodes the DWARF line
tables embedded in its ".debug_*" custom sections, and prints a JSON
source map relating module byte offsets to source file positions.

The module is read from the given file, or from stdin when the argument
is absent or "-".`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 && args[0] != "-" {
				path = args[0]
			}
			return run(path, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.compact, "compact", false, "emit the flat document shape")
	cmd.Flags().BoolVar(&opts.pretty, "pretty", false, "indent the JSON output")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "write the document to a file instead of stdout")
	cmd.Flags().BoolVarP(&opts.watch, "watch", "w", false, "re-extract whenever the module file changes")
	cmd.Flags().BoolVarP(&opts.interactive, "interactive", "i", false, "browse the source map in a TUI")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")

	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(path string, opts *options) error {
	if opts.verbose {
		logger, err := zap.NewDevelopment()
		if err != nil {
			return err
		}
		defer logger.Sync()
		sourcemap.SetLogger(logger)
	}

	switch {
	case opts.interactive:
		if path == "" {
			return fmt.Errorf("interactive mode needs a module file argument")
		}
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			return fmt.Errorf("interactive mode needs a terminal")
		}
		return runInteractive(path)

	case opts.watch:
		if path == "" {
			return fmt.Errorf("watch mode needs a module file argument")
		}
		return runWatch(path, opts)

	default:
		return extractOnce(path, opts)
	}
}

// extractOnce performs one full read-extract-emit pass. Extraction failures
// still produce output: the document is replaced by {"error": ...} so
// downstream consumers always get valid JSON.
func extractOnce(path string, opts *options) error {
	data, err := readInput(path)
	if err != nil {
		return err
	}

	out := io.Writer(os.Stdout)
	if opts.output != "" {
		f, err := os.Create(opts.output)
		if err != nil {
			return errors.IO("create output file", err)
		}
		defer f.Close()
		out = f
	}

	m, err := sourcemap.Extract(data)
	if err != nil {
		emitJSON(out, &sourcemap.ErrorDocument{Error: err.Error()}, opts.pretty)
		return err
	}

	if opts.compact {
		doc, err := m.Compact()
		if err != nil {
			emitJSON(out, &sourcemap.ErrorDocument{Error: err.Error()}, opts.pretty)
			return err
		}
		return emitJSON(out, doc, opts.pretty)
	}
	return emitJSON(out, m.Document(), opts.pretty)
}

func readInput(path string) ([]byte, error) {
	if path == "" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, errors.IO("read stdin", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.IO("read module file", err)
	}
	return data, nil
}

func emitJSON(w io.Writer, doc any, pretty bool) error {
	enc := json.NewEncoder(w)
	if pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(doc); err != nil {
		return errors.IO("encode document", err)
	}
	return nil
}
