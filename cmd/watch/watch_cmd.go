package watch

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/LegacyCodeHQ/headerscan/cmd/formatters"
	"github.com/LegacyCodeHQ/headerscan/cmd/scanopts"
	"github.com/LegacyCodeHQ/headerscan/depgraph"
	"github.com/LegacyCodeHQ/headerscan/internal/diag"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

// NewCommand returns a new watch command instance.
func NewCommand() *cobra.Command {
	opts := &scanopts.Options{}

	cmd := &cobra.Command{
		Use:   "watch [flags] files...",
		Short: "Rescan and reprint the include list whenever it changes",
		Long: `Scan the given files like the root command, print the result, then watch
the search directories and the directories of every discovered file. After
each change the scan is repeated and the output is printed again if the set of
files changed. Stop with Ctrl+C.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd, opts, args)
		},
	}

	opts.AddFlags(cmd.Flags())
	return cmd
}

func runWatch(cmd *cobra.Command, opts *scanopts.Options, seeds []string) error {
	settings, err := opts.Resolve(cmd.Flags())
	if err != nil {
		return err
	}

	logger := diag.New(cmd.ErrOrStderr(), settings.Debug)
	out := cmd.OutOrStdout()

	scan := func() (depgraph.ScanResult, error) {
		return depgraph.Scan(seeds, depgraph.ScanOptions{
			IncludeDirs: settings.IncludeDirs,
			Extractor:   settings.Extractor,
			Logger:      logger,
		})
	}

	loop, err := newRescanLoop(scan, newPublisher(out, settings.Formatter, settings.FormatOptions, logger), logger)
	if err != nil {
		return err
	}
	defer loop.close()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	return loop.run(ctx)
}

// newPublisher returns a publish func that writes each file list to out.
// Format failures are logged so one bad rescan does not stop the watch.
func newPublisher(out io.Writer, formatter formatters.Formatter, opts formatters.FormatOptions, logger *log.Logger) func([]string) {
	return func(files []string) {
		output, err := formatter.Format(files, opts)
		if err != nil {
			logger.Error("Failed to format dependencies", "err", err)
			return
		}
		if _, err := io.WriteString(out, output); err != nil {
			logger.Error("Failed to write dependencies", "err", err)
		}
	}
}
