package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sarthakjha889/go-aho-corasick/pkg/logger"
)

var (
	configFile string
	logLevel   string
)

// errNoMatch makes the process exit with status 1 without printing, like grep.
var errNoMatch = errors.New("no match")

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "acgrep",
	Short: "Multi-pattern text search with Aho-Corasick automata",
	Long: `acgrep searches text for every pattern of a dictionary in a single pass.

Dictionary files hold one pattern per line, optionally followed by a tab and a
label. Blank lines and lines starting with '#' are ignored.

Use 'acgrep scan' to search files and 'acgrep serve' to expose dictionaries
over HTTP.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errNoMatch) {
			fmt.Fprintf(os.Stderr, "acgrep: %v\n", err)
			os.Exit(2)
		}
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "acgrep.json", "Configuration file (JSON)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (trace, debug, info, warn, error)")
}

func newLogger(level, file string) *logger.SlogLogger {
	if logLevel != "" {
		level = logLevel
	}
	return logger.New(logger.Options{Level: level, Console: os.Stderr, File: file})
}
