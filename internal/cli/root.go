package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"ovlink/internal/config"
	"ovlink/internal/finder"
	"ovlink/internal/linking"
	"ovlink/pkg/ovsys"
)

// Seams for tests.
var (
	newLoader = linking.SystemLoader
	getenv    = os.Getenv
)

// app carries what every subcommand needs once flags are parsed.
type app struct {
	out, errOut io.Writer
	cfg         config.Config
	log         zerolog.Logger
	jsonOut     bool
}

// flagValues mirrors the persistent flags.
type flagValues struct {
	configPath  string
	logLevel    string
	platform    string
	linkMode    string
	libraryPath string
	skipLink    bool
	jsonOut     bool
}

// Execute runs the command tree with args and returns the command error.
func Execute(args []string, stdout, stderr io.Writer) error {
	root := buildRootCmd(stdout, stderr)
	root.SetArgs(args)
	return root.Execute()
}

func buildRootCmd(stdout, stderr io.Writer) *cobra.Command {
	a := &app{out: stdout, errOut: stderr, log: zerolog.Nop()}
	fv := &flagValues{}

	root := &cobra.Command{
		Use:           "ovfind",
		Short:         "Locate and bind the OpenVINO C API libraries",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	pf := root.PersistentFlags()
	pf.StringVar(&fv.configPath, "config", "", "Config file (.yaml|.json|.toml); defaults to $OVLINK_CONFIG")
	pf.StringVar(&fv.logLevel, "log-level", "", "Log level: debug|info|warn|error (defaults OVLINK_LOG_LEVEL or warn)")
	pf.StringVar(&fv.platform, "platform", "", "Platform conventions: linux|darwin|windows (defaults to the host)")
	pf.StringVar(&fv.linkMode, "link-mode", "", "Link mode: runtime|build")
	pf.StringVar(&fv.libraryPath, "library-path", "", "Explicit library file; bypasses the search")
	pf.BoolVar(&fv.skipLink, "skip-link", false, "Disable native linking")
	pf.BoolVar(&fv.jsonOut, "json", false, "Print machine-readable JSON")

	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		// Precedence: flags, then OVLINK_* variables, then the config file.
		env := getenv
		if fv.configPath != "" {
			env = func(k string) string {
				if k == config.EnvConfigFile {
					return fv.configPath
				}
				return getenv(k)
			}
		}
		cfg, err := config.FromEnv(env)
		if err != nil {
			return err
		}
		a.cfg = config.Merge(cfg, config.Config{
			LogLevel:    fv.logLevel,
			Platform:    fv.platform,
			LinkMode:    fv.linkMode,
			LibraryPath: fv.libraryPath,
			SkipLink:    fv.skipLink,
		})
		a.jsonOut = fv.jsonOut
		a.log = newLogger(stderr, a.cfg.LogLevel)
		return nil
	}

	root.AddCommand(
		newFindCmd(a),
		newPluginsCmd(a),
		newBindCmd(a),
		newEnvCmd(a),
		newServeCmd(a),
	)
	return root
}

// newLogger builds a console logger on w. Unknown levels fall back to warn.
func newLogger(w io.Writer, level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || level == "" {
		lvl = zerolog.WarnLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: w, NoColor: true}).Level(lvl).With().Timestamp().Logger()
}

// setup resolves binder options and the finder cache from the parsed config.
func (a *app) setup() (linking.Options, *finder.Cache, error) {
	opts, cache, err := ovsys.Setup(a.cfg, getenv, a.log)
	if err != nil {
		return opts, nil, err
	}
	opts.Loader = newLoader()
	return opts, cache, nil
}

// ExitCode maps an error from Execute to a process exit status.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case linking.IsNotFound(err), errors.Is(err, finder.ErrPluginsXMLNotFound):
		return 2
	case linking.IsLoadFailed(err):
		return 3
	case linking.IsSymbolNotFound(err):
		return 4
	case errors.Is(err, linking.ErrLinkSkipped):
		return 5
	default:
		return 1
	}
}

func (a *app) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}
