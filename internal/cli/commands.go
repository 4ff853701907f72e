package cli

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"ovlink/internal/finder"
	"ovlink/internal/httpapi"
	"ovlink/internal/linking"
	"ovlink/pkg/ovsys"
	"ovlink/pkg/types"
)

func (a *app) writeJSON(v any) error {
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newFindCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "find [library...]",
		Short:   "Search for libraries by logical name (default openvino_c)",
		Example: "  ovfind find\n  ovfind find openvino_c openvino_intel_cpu_plugin --json",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				args = []string{finder.LibraryC}
			}
			_, cache, err := a.setup()
			if err != nil {
				return err
			}
			var firstErr error
			var reports []types.FindResponse
			for _, name := range args {
				r, err := httpapi.FindReport(cache.Finder(), name)
				reports = append(reports, r)
				if err != nil && firstErr == nil {
					firstErr = err
				}
			}
			if a.jsonOut {
				if err := a.writeJSON(reports); err != nil {
					return err
				}
				return firstErr
			}
			for _, r := range reports {
				if r.Found {
					a.printf("%s\t%s\n", r.Library, r.Path)
				}
			}
			return firstErr
		},
	}
}

func newPluginsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "plugins-xml",
		Short: "Locate the OpenVINO device plugin registry (plugins.xml)",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, cache, err := a.setup()
			if err != nil {
				return err
			}
			p, err := cache.FindPluginsXML()
			if err != nil {
				return err
			}
			if a.jsonOut {
				return a.writeJSON(map[string]string{"plugins_xml": p})
			}
			a.printf("%s\n", p)
			return nil
		},
	}
}

func newBindCmd(a *app) *cobra.Command {
	var listSymbols bool
	cmd := &cobra.Command{
		Use:   "bind",
		Short: "Load the library, resolve every required symbol and report",
		Long: "bind performs the same load a program would on first use: locate (unless a path\n" +
			"is fixed), load the image and resolve every entry point in the manifest.",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, _, err := a.setup()
			if err != nil {
				return err
			}
			b := linking.NewBinder(opts)
			lib, bindErr := b.Bind()
			report := ovsys.Report(b, bindErr == nil)
			var symbols []string
			if bindErr == nil && listSymbols {
				symbols = lib.Symbols()
			}
			defer func() { _ = b.Unbind() }()

			if a.jsonOut {
				out := struct {
					types.BindStatus
					SymbolNames []string `json:"symbol_names,omitempty"`
				}{report, symbols}
				if err := a.writeJSON(out); err != nil {
					return err
				}
				return bindErr
			}
			if bindErr != nil {
				return bindErr
			}
			a.printf("bound %s (%s mode, %d symbols)\n", report.Path, report.Mode, report.Symbols)
			if report.Version != "" {
				a.printf("version %s\n", report.Version)
			}
			for _, s := range symbols {
				a.printf("  %s\n", s)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&listSymbols, "symbols", false, "List resolved symbols")
	return cmd
}

func newEnvCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "env",
		Short: "Show the search environment and every directory a search would probe",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, cache, err := a.setup()
			if err != nil {
				return err
			}
			rep := httpapi.EnvReport(cache.Finder(), a.cfg.Getenv(getenv))
			if a.jsonOut {
				return a.writeJSON(rep)
			}
			a.printf("platform: %s\n", rep.Platform)
			keys := make([]string, 0, len(rep.Vars))
			for k := range rep.Vars {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				a.printf("%s=%s\n", k, rep.Vars[k])
			}
			a.printf("candidates:\n")
			for _, c := range rep.Candidates {
				a.printf("  %-13s %s\n", c.Source, c.Dir)
			}
			if len(rep.Candidates) == 0 {
				a.printf("  (none; set %s)\n", strings.Join([]string{finder.EnvInstallDir, finder.EnvIntelDir}, " or "))
			}
			return nil
		},
	}
}

// errorf wraps command failures; main adds the program prefix.
func errorf(format string, args ...any) error { return fmt.Errorf(format, args...) }
