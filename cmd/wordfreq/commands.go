package main

import (
	"context"
	"fmt"
	"time"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/kbukum/lazyflow/bootstrap"
	"github.com/kbukum/lazyflow/logger"
	"github.com/kbukum/lazyflow/observability"
	"github.com/kbukum/lazyflow/pipeline"
	"github.com/kbukum/lazyflow/sink"
	"github.com/kbukum/lazyflow/validation"
	"github.com/kbukum/lazyflow/version"
)

const (
	countCmdShort   = "print the frequency of every word in a directory tree"
	countCmdExample = `# Count words in all Markdown and text files under docs/
	wordfreq count docs --ext .md --ext .txt

	# The ten most frequent words of at least four letters
	wordfreq count src --top 10 --min-length 4`

	compareCmdShort   = "compare the word frequencies of two directory trees"
	compareCmdLong    = `Count words in both directories and print, for every word of the first,
	its count there and its count in the second, or "-" when the second
	directory never uses it.`
	compareCmdExample = `# Which of the most frequent words of v1 survived into v2
	wordfreq compare docs/v1 docs/v2 --top 20`

	versionCmdShort = "print the wordfreq version"
)

// countFlags override the count section of the configuration.
type countFlags struct {
	extensions []string
	recursive  bool
	foldCase   bool
	minLength  int
	top        int
	sort       string
	index      string
}

func (f *countFlags) addFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringSliceVar(&f.extensions, "ext", nil, "only read files with these extensions (repeatable, e.g. --ext .txt)")
	flags.BoolVarP(&f.recursive, "recursive", "r", true, "descend into subdirectories")
	flags.BoolVar(&f.foldCase, "fold-case", true, "count words case-insensitively")
	flags.IntVar(&f.minLength, "min-length", 1, "ignore words shorter than this many characters")
	flags.IntVar(&f.top, "top", 0, "print only the first N words (0 prints all)")
	flags.StringVar(&f.sort, "sort", "count", "output order: count, word or first")
	flags.StringVar(&f.index, "index", "hashed", "word index: hashed, ordered or linear")
}

// apply copies the flags the user set onto cfg.
func (f *countFlags) apply(cmd *cobra.Command, cfg *CountConfig) {
	flags := cmd.Flags()
	if flags.Changed("ext") {
		cfg.Extensions = f.extensions
	}
	if flags.Changed("recursive") {
		cfg.Recursive = f.recursive
	}
	if flags.Changed("fold-case") {
		cfg.FoldCase = f.foldCase
	}
	if flags.Changed("min-length") {
		cfg.MinLength = f.minLength
	}
	if flags.Changed("top") {
		cfg.Top = f.top
	}
	if flags.Changed("sort") {
		cfg.Sort = f.sort
	}
	if flags.Changed("index") {
		cfg.Index = f.index
	}
}

func countCmd(root *rootFlags) *cobra.Command {
	flags := &countFlags{}
	cmd := &cobra.Command{
		Use:     "count <dir>",
		Short:   heredoc.Doc(countCmdShort),
		Example: heredoc.Doc(countCmdExample),
		Args:    printingArgs(cobra.ExactArgs(1)),

		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validation.New().Required("dir", args[0]).Validate(); err != nil {
				return handleError(cmd, err)
			}
			r, err := newRun(cmd, root, flags, "count")
			if err != nil {
				return handleError(cmd, err)
			}
			err = r.execute(cmd.Context(), func(obs pipeline.Observer) error {
				counts, err := countWords(args[0], r.cfg.Count, obs)
				if err != nil {
					return err
				}
				ranked := pipeline.Pipe(counts, rank(r.cfg.Count.Sort, r.cfg.Count.Top))
				lines := pipeline.Pipe(ranked, pipeline.Map(formatCount, pipeline.Named("format")))
				return sink.Out(lines, cmd.OutOrStdout())
			})
			return handleError(cmd, err)
		},
	}
	flags.addFlags(cmd)
	return cmd
}

func compareCmd(root *rootFlags) *cobra.Command {
	flags := &countFlags{}
	cmd := &cobra.Command{
		Use:     "compare <dir> <other-dir>",
		Short:   heredoc.Doc(compareCmdShort),
		Long:    heredoc.Doc(compareCmdLong),
		Example: heredoc.Doc(compareCmdExample),
		Args:    printingArgs(cobra.ExactArgs(2)),

		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validation.New().
				Required("dir", args[0]).
				Required("other-dir", args[1]).
				Distinct("dirs", args[0], args[1]).
				Validate(); err != nil {
				return handleError(cmd, err)
			}
			r, err := newRun(cmd, root, flags, "compare")
			if err != nil {
				return handleError(cmd, err)
			}
			err = r.execute(cmd.Context(), func(obs pipeline.Observer) error {
				left, err := countWords(args[0], r.cfg.Count, obs)
				if err != nil {
					return err
				}
				right, err := countWords(args[1], r.cfg.Count, obs)
				if err != nil {
					return err
				}
				joined, err := compareWords(left, right, r.cfg.Count)
				if err != nil {
					return err
				}
				lines := pipeline.Pipe(joined, pipeline.Map(formatComparison, pipeline.Named("format")))
				return sink.Out(lines, cmd.OutOrStdout())
			})
			return handleError(cmd, err)
		},
	}
	flags.addFlags(cmd)
	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: heredoc.Doc(versionCmdShort),
		Args:  printingArgs(cobra.NoArgs),

		ValidArgsFunction: cobra.NoFileCompletions,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), appName, version.Get().String())
		},
	}
}

// printingArgs reports argument errors with the usage text, since the root
// command silences cobra's own error output.
func printingArgs(check cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := check(cmd, args); err != nil {
			cmd.PrintErrln("Error:", err)
			_ = cmd.Usage()
			return err
		}
		return nil
	}
}

// handleError prints err on the command's error stream and returns it.
func handleError(cmd *cobra.Command, err error) error {
	if err != nil {
		cmd.PrintErrln("Error:", err)
	}
	return err
}

// run is one invocation of a pipeline command.
type run struct {
	command string
	runID   string
	cfg     *Config
	app     *bootstrap.App[*Config]
}

// newRun loads and validates the configuration, applies flag overrides and
// builds the application around a logger writing to the command's error
// stream.
func newRun(cmd *cobra.Command, root *rootFlags, flags *countFlags, command string) (*run, error) {
	if err := validation.New().OptionalUUID(runIDFlagName, root.runID).Validate(); err != nil {
		return nil, err
	}

	cfg, err := loadConfig(root.configPath)
	if err != nil {
		return nil, err
	}
	if root.logLevel != "" {
		cfg.Logging.Level = root.logLevel
	}
	if root.logFormat != "" {
		cfg.Logging.Format = root.logFormat
	}
	flags.apply(cmd, &cfg.Count)

	cfg.ApplyDefaults()
	log := logger.NewWithWriter(&cfg.Logging, cfg.Name, cmd.ErrOrStderr()).WithComponent(logger.ComponentPipeline)
	app, err := bootstrap.NewApp(cfg, bootstrap.WithLogger(log))
	if err != nil {
		return nil, err
	}
	return &run{command: command, runID: root.runID, cfg: cfg, app: app}, nil
}

// execute sets up telemetry, then runs build inside the application
// lifecycle. build receives the observer every stage should report to.
func (r *run) execute(ctx context.Context, build func(obs pipeline.Observer) error) error {
	metrics, shutdown, err := observability.Setup(ctx, r.cfg.Observability, r.cfg.Name, r.cfg.Version, r.cfg.Environment)
	if err != nil {
		return err
	}
	r.app.OnStop(shutdown)
	r.cfg.Count.Open.OnRetry = func(attempt int, err error, wait time.Duration) {
		r.app.Logger.Warn("retrying file open", logger.MergeWithError(map[string]interface{}{
			"attempt": attempt,
			"wait_ms": wait.Milliseconds(),
		}, err))
	}

	return r.app.RunTask(ctx, func(ctx context.Context) (err error) {
		rc := observability.NewRunContext(r.command, metrics)
		if r.runID != "" {
			rc.RunID = r.runID
		}
		ctx, span := rc.StartRun(ctx)
		defer func() { rc.EndRun(ctx, span, err) }()

		obs := pipeline.Chain(
			pipeline.RegistryObserver(r.app.Summary.Stages()),
			pipeline.LoggingObserver(r.app.Logger.WithContext(ctx)),
			pipeline.MetricsObserver(metrics),
			pipeline.TracingObserver(ctx, observability.SpanStagePrefix),
		)
		return build(obs)
	})
}
