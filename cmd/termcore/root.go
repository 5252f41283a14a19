package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/dshills/termcore/internal/config"
	"github.com/dshills/termcore/internal/config/loader"
	"github.com/dshills/termcore/internal/logging"
)

// globalFlags holds the persistent flags shared by every command.
type globalFlags struct {
	configPath string
	logLevel   string
	logFormat  string
}

func newRootCmd() *cobra.Command {
	g := &globalFlags{}
	root := &cobra.Command{
		Use:           "termcore",
		Short:         "Terminal emulator configuration tool",
		Version:       fmt.Sprintf("%s (%s)", version, commit),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&g.configPath, "config", "c", loader.GetEnvOrDefault(loader.EnvConfig, ""),
		"path to configuration file (default "+config.DefaultPath()+", env "+loader.EnvConfig+")")
	pf.StringVar(&g.logLevel, "log-level", loader.GetEnvOrDefault(loader.EnvLogLevel, "warn"),
		"log level (debug, info, warn, error; env "+loader.EnvLogLevel+")")
	pf.StringVar(&g.logFormat, "log-format", loader.GetEnvOrDefault(loader.EnvLogFormat, "text"),
		"log format (text, json; env "+loader.EnvLogFormat+")")

	root.AddCommand(
		newGenerateConfigCmd(g),
		newShowConfigCmd(g),
		newProfilesCmd(g),
		newResolveCmd(g),
		newWatchCmd(g),
	)
	return root
}

func (g *globalFlags) logger(cmd *cobra.Command) *slog.Logger {
	return logging.New(logging.Config{
		Level:  logging.ParseLevel(g.logLevel),
		Format: logging.ParseFormat(g.logFormat),
		Output: cmd.ErrOrStderr(),
	})
}

func (g *globalFlags) path() string {
	if g.configPath != "" {
		return g.configPath
	}
	return config.DefaultPath()
}

// options returns the loading options shared by every command. TERMCORE_
// variables in the environment override document fields.
func (g *globalFlags) options(logger *slog.Logger) []config.Option {
	return []config.Option{config.WithLogger(logger), config.WithEnv(os.Environ())}
}

// load reads the configuration file. A missing or broken file yields
// the default document; the reason is logged.
func (g *globalFlags) load(cmd *cobra.Command) *config.Document {
	r := config.NewReader(g.options(g.logger(cmd))...)
	return r.LoadFile(g.path())
}
