package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/mattn/go-isatty"
	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/handiism/langpack/internal/config"
	"github.com/handiism/langpack/internal/conflict"
	"github.com/handiism/langpack/internal/processor"
	"github.com/handiism/langpack/internal/report"
	"github.com/handiism/langpack/internal/tui"
)

// Set with -ldflags "-X main.version=... -X main.commit=...".
var (
	version = "1.0.0"
	commit  = "dev"
)

// Exit codes.
const (
	exitOK          = 0
	exitFailure     = 1
	exitCancelled   = 2
	exitInterrupted = 130
)

// configEnv names the environment variable holding the config path.
const configEnv = "LANGPACK_CONFIG"

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	flags := flag.NewFlagSet("langpack", flag.ContinueOnError)
	flags.SetOutput(stderr)

	var (
		configFlag      string
		versionFlag     bool
		verboseFlag     = flags.Bool("verbose", false, "Show verbose output and debug logs")
		reportFlag      = flags.String("report", "", "Print a plain result report instead of the summary: text or json")
		onConflictFlag  = flags.String("on-conflict", "ask", "When the output exists: ask, overwrite, counter or cancel")
		writeConfigFlag = flags.String("write-config", "", "Write the default configuration to this path and exit")
	)
	flags.StringVar(&configFlag, "config", "", "Path to config file (JSON, YAML or TOML)")
	flags.StringVar(&configFlag, "c", "", "Shorthand for -config")
	flags.BoolVar(&versionFlag, "version", false, "Print version and exit")
	flags.BoolVar(&versionFlag, "V", false, "Shorthand for -version")

	flags.Usage = func() {
		fmt.Fprintln(stderr, "langpack - Rename language files in a localization export")
		fmt.Fprintln(stderr)
		fmt.Fprintln(stderr, "Usage:")
		fmt.Fprintln(stderr, "  langpack [options] <archive.zip>")
		fmt.Fprintln(stderr)
		flags.PrintDefaults()
	}

	if err := flags.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitFailure
	}

	if versionFlag {
		fmt.Fprintf(stdout, "langpack v%s (%s)\n", version, commit)
		return exitOK
	}

	fs := afero.NewOsFs()

	if *writeConfigFlag != "" {
		if err := config.DefaultSettings().Save(fs, *writeConfigFlag); err != nil {
			fmt.Fprintf(stderr, "Error writing config: %v\n", err)
			return exitFailure
		}
		fmt.Fprintf(stdout, "Wrote default configuration to %s\n", *writeConfigFlag)
		return exitOK
	}

	if flags.NArg() != 1 {
		flags.Usage()
		return exitFailure
	}
	input := flags.Arg(0)

	var reporter *report.Reporter
	format, err := report.ParseFormat(*reportFlag)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitFailure
	}
	if *reportFlag != "" {
		reporter = report.NewReporter(format)
	}

	// Keep stdout clean for machine-readable reports.
	ui := stdout
	if format == report.FormatJSON {
		ui = stderr
	}

	logger := zap.NewNop()
	if *verboseFlag {
		if logger, err = zap.NewDevelopment(); err != nil {
			fmt.Fprintf(stderr, "Error creating logger: %v\n", err)
			return exitFailure
		}
	}
	defer logger.Sync()

	// A missing .env file is not an error.
	_ = godotenv.Load()

	configPath := configFlag
	if configPath == "" {
		configPath = os.Getenv(configEnv)
	}
	if configPath == "" {
		configPath = config.DefaultPath()
	}

	settings, warn := config.LoadOrDefault(fs, configPath)
	if warn != nil {
		fmt.Fprintln(ui, tui.RenderEvent(processor.ProgressEvent{
			Message: fmt.Sprintf("%v; using default language mappings", warn),
			Level:   processor.LevelWarning,
		}))
	}
	logger.Debug("configuration loaded", zap.String("path", configPath), zap.Strings("codes", settings.LanguageMappings.Codes()))

	provider, err := decisionProvider(*onConflictFlag, stdin, ui)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitFailure
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	p := processor.New(settings,
		processor.WithFs(fs),
		processor.WithDecisionProvider(provider),
		processor.WithLogger(logger),
		processor.WithProgress(func(event processor.ProgressEvent) {
			if event.Level == processor.LevelVerbose && !*verboseFlag {
				return
			}
			fmt.Fprintln(ui, tui.RenderEvent(event))
		}),
	)

	result := p.Process(ctx, input)

	switch {
	case reporter != nil:
		out, err := reporter.Render(result)
		if err != nil {
			fmt.Fprintf(stderr, "Error rendering report: %v\n", err)
			return exitFailure
		}
		fmt.Fprint(stdout, out)
	case result.Success:
		fmt.Fprintln(stdout)
		fmt.Fprintln(stdout, tui.RenderSummary(result))
	}

	switch {
	case result.Success:
		return exitOK
	case result.Cancelled():
		return exitCancelled
	case ctx.Err() != nil:
		return exitInterrupted
	default:
		return exitFailure
	}
}

// decisionProvider picks how output name conflicts are resolved. "ask"
// uses the interactive prompt on a terminal and a line prompt otherwise.
func decisionProvider(policy string, stdin io.Reader, ui io.Writer) (conflict.DecisionProvider, error) {
	if policy == "ask" {
		if f, ok := stdin.(*os.File); ok && isTerminal(f) {
			return tui.NewPrompt(stdin, ui), nil
		}
		return conflict.NewLineProvider(stdin, ui), nil
	}

	r, err := conflict.ParseResolution(policy)
	if err != nil {
		return nil, err
	}
	return conflict.FixedProvider(r), nil
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
