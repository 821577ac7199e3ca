package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/LegacyCodeHQ/headerscan/cmd/scanopts"
	"github.com/LegacyCodeHQ/headerscan/cmd/watch"
	"github.com/LegacyCodeHQ/headerscan/depgraph"
	"github.com/LegacyCodeHQ/headerscan/internal/diag"

	"github.com/spf13/cobra"
)

// version is set via build-time ldflags
var version = "dev"

// buildDate is set via build-time ldflags
var buildDate = "unknown"

// commit is set via build-time ldflags
var commit = "unknown"

// NewCommand returns the root command, which scans seed files for their
// transitive includes.
func NewCommand() *cobra.Command {
	opts := &scanopts.Options{}

	cmd := &cobra.Command{
		Use:   "headerscan [flags] files...",
		Short: "List the files transitively included by source files",
		Long: `Scan source files for #include directives and print every file they
transitively include, one per line, relative to the current directory.

Relative include names are searched in the -I directories in order, then in
the directory of the including file. Includes that cannot be found (such as
system headers) are skipped.

A bare "watch" argument runs the watch subcommand; name a seed file called
watch as ./watch.

Examples:
  headerscan -I include src/main.c
  headerscan -I "include third_party/include" -I gen main.c
  headerscan -D -I . index.h                  # trace resolution on stderr
  headerscan -f make --target out/main.o -I . main.c
  headerscan watch -I include main.c          # rescan on change
  headerscan -I . ./watch                     # scan a file named watch`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScan(cmd, opts, args)
		},
	}

	opts.AddFlags(cmd.Flags())
	cmd.AddCommand(watch.NewCommand())

	if cmd.Annotations == nil {
		cmd.Annotations = make(map[string]string)
	}
	cmd.Annotations["buildDate"] = buildDate
	cmd.Annotations["commit"] = commit

	cmd.SetVersionTemplate(`{{with .Name}}{{printf "%s " .}}{{end}}{{printf "version %s" .Version}}
Build date: {{printf "%s" (index .Annotations "buildDate")}}
Commit: {{printf "%s" (index .Annotations "commit")}}
`)

	return cmd
}

func runScan(cmd *cobra.Command, opts *scanopts.Options, seeds []string) error {
	settings, err := opts.Resolve(cmd.Flags())
	if err != nil {
		return err
	}

	logger := diag.New(cmd.ErrOrStderr(), settings.Debug)
	if settings.ConfigFile != "" {
		logger.Debug("Using config", "file", settings.ConfigFile)
	}

	result, err := depgraph.Scan(seeds, depgraph.ScanOptions{
		IncludeDirs: settings.IncludeDirs,
		Extractor:   settings.Extractor,
		Logger:      logger,
	})
	if err != nil {
		return err
	}

	output, err := settings.Formatter.Format(result.Files, settings.FormatOptions)
	if err != nil {
		return fmt.Errorf("failed to format dependencies: %w", err)
	}

	_, err = io.WriteString(cmd.OutOrStdout(), output)
	return err
}

// Execute runs the root command and exits non-zero on failure. The error is
// reported once on stderr.
func Execute() {
	if err := NewCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
