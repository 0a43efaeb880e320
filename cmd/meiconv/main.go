package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"runtime"
	"runtime/pprof"

	"go.uber.org/zap"

	tusk "github.com/sonovice/tusk-go"
	tuskerrors "github.com/sonovice/tusk-go/errors"
)

func main() {
	os.Exit(run())
}

func run() int {
	return runWithArgs(os.Args[1:], os.Stdout, os.Stderr)
}

func runWithArgs(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("meiconv", flag.ContinueOnError)
	fs.SetOutput(stderr)
	validate := fs.Bool("validate", false, "validate the document and report findings")
	assignIDs := fs.Bool("assign-ids", false, "assign xml:id to elements missing one")
	header := fs.Bool("header", false, "print the derived LilyPond \\header block")
	outPath := fs.String("o", "", "write the re-serialized MEI document to file")
	verbose := fs.Bool("v", false, "log skipped unknown tags and attributes")
	cpuProfilePath := fs.String("cpuprofile", "", "write CPU profile to file")
	memProfilePath := fs.String("memprofile", "", "write memory profile to file")
	var usageErr error
	fs.Usage = func() {
		usageErr = errors.Join(
			usageErr,
			writef(stderr, "Usage: %s [options] <document.mei>\n\n", os.Args[0]),
			writeln(stderr, "Parses an MEI document (gzip-compressed files are detected automatically)."),
			writeln(stderr),
			writeln(stderr, "Options:"),
		)
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return 2
	}

	remaining := fs.Args()
	if len(remaining) != 1 {
		if err := writeln(stderr, "error: exactly one MEI file argument is required"); err != nil {
			return 1
		}
		fs.Usage()
		if usageErr != nil {
			return 1
		}
		return 2
	}
	meiPath := remaining[0]

	if *cpuProfilePath != "" {
		stopCPUProfile, err := startCPUProfile(*cpuProfilePath)
		if err != nil {
			if writeErr := writef(stderr, "error starting CPU profile: %v\n", err); writeErr != nil {
				return 1
			}
			return 1
		}
		defer func() {
			if err := stopCPUProfile(); err != nil {
				_ = writef(stderr, "error stopping CPU profile: %v\n", err)
			}
		}()
	}

	if *memProfilePath != "" {
		defer func() {
			if err := writeMemProfile(*memProfilePath); err != nil {
				_ = writef(stderr, "error writing memory profile: %v\n", err)
			}
		}()
	}

	opts := tusk.NewOptions()
	if *verbose {
		logger, err := zap.NewDevelopment()
		if err != nil {
			if writeErr := writef(stderr, "error creating logger: %v\n", err); writeErr != nil {
				return 1
			}
			return 1
		}
		defer func() {
			_ = logger.Sync()
		}()
		opts = opts.WithLogger(logger)
	}

	doc, err := tusk.ParseFileWithOptions(meiPath, opts)
	if err != nil {
		if writeErr := writef(stderr, "error parsing: %v\n", err); writeErr != nil {
			return 1
		}
		return 1
	}

	if *assignIDs {
		assigned := doc.EnsureIDs()
		if writeErr := writef(stderr, "assigned %d identifiers\n", assigned); writeErr != nil {
			return 1
		}
	}

	if *validate {
		if err := doc.Validate(); err != nil {
			if diags, ok := tuskerrors.AsDiagnostics(err); ok {
				for _, d := range diags {
					if writeErr := writeln(stderr, d.Error()); writeErr != nil {
						return 1
					}
				}
				if writeErr := writef(stderr, "%s fails to validate\n", meiPath); writeErr != nil {
					return 1
				}
				return 1
			}
			if writeErr := writef(stderr, "error validating: %v\n", err); writeErr != nil {
				return 1
			}
			return 1
		}
		if writeErr := writef(stdout, "%s validates\n", meiPath); writeErr != nil {
			return 1
		}
	}

	if *header {
		def := doc.Header()
		if def == nil {
			if writeErr := writef(stderr, "%s has no metadata header\n", meiPath); writeErr != nil {
				return 1
			}
			return 1
		}
		if writeErr := writef(stdout, "%s", def.String()); writeErr != nil {
			return 1
		}
	}

	if *outPath != "" {
		if err := writeDocument(doc, *outPath); err != nil {
			if writeErr := writef(stderr, "error writing: %v\n", err); writeErr != nil {
				return 1
			}
			return 1
		}
	}

	return 0
}

func writeDocument(doc *tusk.Document, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output %s: %w", path, err)
	}
	if err := doc.WriteXML(f); err != nil {
		if closeErr := f.Close(); closeErr != nil {
			return fmt.Errorf("write output %s: %w (close failed: %w)", path, err, closeErr)
		}
		return fmt.Errorf("write output %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close output %s: %w", path, err)
	}
	return nil
}

func writef(w io.Writer, format string, args ...any) error {
	_, err := fmt.Fprintf(w, format, args...)
	return err
}

func writeln(w io.Writer, args ...any) error {
	_, err := fmt.Fprintln(w, args...)
	return err
}

func startCPUProfile(path string) (func() error, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create cpu profile %s: %w", path, err)
	}
	if err := pprof.StartCPUProfile(f); err != nil {
		if closeErr := f.Close(); closeErr != nil {
			return nil, fmt.Errorf("start cpu profile %s: %w (close failed: %w)", path, err, closeErr)
		}
		return nil, fmt.Errorf("start cpu profile %s: %w", path, err)
	}
	return func() error {
		pprof.StopCPUProfile()
		if err := f.Close(); err != nil {
			return fmt.Errorf("close cpu profile %s: %w", path, err)
		}
		return nil
	}, nil
}

func writeMemProfile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create mem profile %s: %w", path, err)
	}
	runtime.GC()
	if err := pprof.WriteHeapProfile(f); err != nil {
		if closeErr := f.Close(); closeErr != nil {
			return fmt.Errorf("write mem profile %s: %w (close failed: %w)", path, err, closeErr)
		}
		return fmt.Errorf("write mem profile %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close mem profile %s: %w", path, err)
	}
	return nil
}
