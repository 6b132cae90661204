package main

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/jacoelho/spb"
	"github.com/jacoelho/spb/catalog"
	"github.com/jacoelho/spb/internal/config"
)

type app struct {
	environ    []string
	configPath string

	cfg      config.Config
	logger   zerolog.Logger
	registry *spb.Registry
}

func (a *app) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "spbmsg",
		Short: "Validate, format, and inspect SPB message documents",
		Long: `spbmsg works with the DOC/BCMSG/SISMSG documents of the catalog built
into this binary. Documents are recognised by their message element.

Settings come from --config (YAML or TOML) and SPBMSG_LOG_LEVEL,
SPBMSG_LOG_FORMAT, SPBMSG_INDENT, and SPBMSG_VERSION.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "path to a YAML or TOML config file")
	root.AddCommand(
		a.validateCommand(),
		a.fmtCommand(),
		a.listCommand(),
		a.skeletonCommand(),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.configPath, a.environ)
	if err != nil {
		return fail(err)
	}
	a.cfg = cfg
	a.logger = newLogger(cfg, cmd.ErrOrStderr())

	r, err := catalog.NewRegistry(a.logger)
	if err != nil {
		return fail(err)
	}
	a.registry = r
	return nil
}

func newLogger(cfg config.Config, w io.Writer) zerolog.Logger {
	if cfg.LogFormat == config.FormatConsole {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339, NoColor: w != os.Stderr}
	}
	return zerolog.New(w).Level(cfg.Level()).With().Timestamp().Logger()
}

// readInput reads path, or standard input when path is "-".
func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	return os.ReadFile(path)
}
