package main

import (
	"context"
	"os"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/kbukum/lazyflow/errors"
)

const (
	appShort = "wordfreq counts word frequencies across the files of a directory tree"
	appLong  = `wordfreq reads every file under a directory, splits it into words and
	prints each distinct word with the number of times it occurs.

	Settings are read from a config.yml (see --config), from a .env file and
	from WORDFREQ_* environment variables, in increasing order of precedence.
	Command line flags override all of them.`

	configFlagName    = "config"
	logLevelFlagName  = "log-level"
	logFormatFlagName = "log-format"
	runIDFlagName     = "run-id"
)

// rootFlags holds the persistent flags shared by every command.
type rootFlags struct {
	configPath string
	logLevel   string
	logFormat  string
	runID      string
}

func (f *rootFlags) addFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()
	flags.StringVar(&f.configPath, configFlagName, "", "path to a config file (default: search wordfreq.yml, config.yml, ~/.config/wordfreq/config.yml)")
	flags.StringVarP(&f.logLevel, logLevelFlagName, "v", "", "log level: trace, debug, info, warn, error")
	flags.StringVar(&f.logFormat, logFormatFlagName, "", "log format: console or json")
	flags.StringVar(&f.runID, runIDFlagName, "", "UUID to tag logs and traces of this run (default: generated)")
}

func main() {
	if err := rootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(exitCode(err))
	}
}

// exitCode is 2 for errors in what the user asked for and 1 otherwise.
func exitCode(err error) int {
	appErr, ok := errors.AsAppError(err)
	if !ok {
		return 1
	}
	switch appErr.Code {
	case errors.ErrCodeInvalidInput, errors.ErrCodeConfiguration, errors.ErrCodeNotADirectory:
		return 2
	default:
		return 1
	}
}

func rootCmd() *cobra.Command {
	flags := &rootFlags{}
	cmd := &cobra.Command{
		Use:   appName,
		Short: heredoc.Doc(appShort),
		Long:  heredoc.Doc(appLong),

		SilenceErrors: true,
		SilenceUsage:  true,

		ValidArgsFunction: cobra.NoFileCompletions,
	}

	cmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		c.PrintErrln(err)
		_ = c.Usage()
		return err
	})

	flags.addFlags(cmd)
	cmd.AddCommand(
		countCmd(flags),
		compareCmd(flags),
		versionCmd(),
	)
	return cmd
}
