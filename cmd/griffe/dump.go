package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mkdocstrings/griffe-sub003/internal/docstring"
	"github.com/mkdocstrings/griffe-sub003/internal/extensions"
	"github.com/mkdocstrings/griffe-sub003/internal/loader"
	"github.com/mkdocstrings/griffe-sub003/internal/serialize"
	"github.com/mkdocstrings/griffe-sub003/internal/visitor"
)

// dumpOptions backs the `dump` subcommand's flags, named after their
// long forms so -h output and the flag names agree.
type dumpOptions struct {
	search            []string
	sysPath           bool
	findStubsPackages bool
	extensionNames    []string
	noInspection      bool
	forceInspection   bool
	full              bool
	output            string
	docstyle          string
	docopts           []string
	resolveAliases    bool
	resolveImplicit   bool
	resolveExternal   bool
	stats             bool
	targetVersion     string
}

func newDumpCommand() *cobra.Command {
	opts := &dumpOptions{}
	cmd := &cobra.Command{
		Use:   "dump <packages...>",
		Short: "Load one or more packages and emit their object tree as JSON",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDump(opts, args)
		},
	}
	f := cmd.Flags()
	f.StringSliceVarP(&opts.search, "search", "s", nil, "additional search path (repeatable)")
	f.BoolVarP(&opts.sysPath, "sys-path", "y", false, "also search PYTHONPATH")
	f.BoolVarP(&opts.findStubsPackages, "find-stubs-packages", "B", false, "also look for <name>-stubs packages")
	f.StringSliceVarP(&opts.extensionNames, "extensions", "e", nil, "comma-separated extension names to load")
	f.BoolVarP(&opts.noInspection, "no-inspection", "X", false, "forbid dynamic-inspection fallback")
	f.BoolVarP(&opts.forceInspection, "force-inspection", "x", false, "always use dynamic-inspection fallback")
	f.BoolVarP(&opts.full, "full", "f", false, "include all fields (otherwise a minimal shape)")
	f.StringVarP(&opts.output, "output", "o", "-", "output file ({package} is replaced with the package name); - for stdout")
	f.StringVarP(&opts.docstyle, "docstyle", "d", "auto", "docstring style: google, numpy, sphinx, auto")
	f.StringSliceVarP(&opts.docopts, "docopts", "D", nil, "comma-separated k=v docstring parser options (accepted but not applied)")
	f.BoolVarP(&opts.resolveAliases, "resolve-aliases", "r", false, "resolve aliases after loading")
	f.BoolVarP(&opts.resolveImplicit, "resolve-implicit", "I", false, "eagerly resolve aliases not listed in __all__")
	f.BoolVarP(&opts.resolveExternal, "resolve-external", "U", false, "load external packages to resolve aliases into them")
	f.BoolVarP(&opts.stats, "stats", "S", false, "print a warnings summary to stderr")
	f.StringVar(&opts.targetVersion, "target-version", "3.12", "Python version for sys.version_info guard evaluation")
	return cmd
}

func runDump(opts *dumpOptions, packages []string) error {
	exts, err := resolveExtensions(opts.extensionNames)
	if err != nil {
		return err
	}

	fileCfg, err := loadFileConfig()
	if err != nil {
		return fmt.Errorf("reading .griffe.yaml: %w", err)
	}
	if opts.docstyle == "auto" && fileCfg.Docstyle != "" {
		opts.docstyle = fileCfg.Docstyle
	}

	cfg := loader.Config{
		SearchPaths:       mergeSearchPaths(fileCfg, opts.search),
		AppendSysPath:     opts.sysPath,
		FindStubsPackages: opts.findStubsPackages,
		TargetVersion:     parseTargetVersion(opts.targetVersion),
		ResolveAliases:    opts.resolveAliases,
		ResolveImplicit:   opts.resolveImplicit,
		ResolveExternal:   opts.resolveExternal,
		Extensions:        exts,
	}
	if opts.forceInspection {
		// Dynamic inspection is out of scope for the static loader
		// this CLI drives; -x has no fallback to force into, so it
		// is accepted but reported as inert.
		fmt.Fprintln(os.Stderr, yellow("--force-inspection has no effect: no dynamic inspector is wired"))
	}

	style := docstring.Style(strings.ToLower(opts.docstyle))
	switch style {
	case docstring.StyleAuto, docstring.StyleGoogle, docstring.StyleNumpy, docstring.StyleSphinx:
	default:
		return fmt.Errorf("unknown docstyle %q", opts.docstyle)
	}

	serOpts := serialize.Options{Full: opts.full, Docstyle: style}

	exitCode := 0
	for _, name := range packages {
		l := loader.New(cfg)
		root, err := l.LoadPackage(name)
		if err != nil {
			fmt.Fprintln(os.Stderr, red(fmt.Sprintf("failed to load %s: %v", name, err)))
			exitCode = 1
			continue
		}

		data, err := serialize.Marshal(root, serOpts)
		if err != nil {
			fmt.Fprintln(os.Stderr, red(fmt.Sprintf("failed to serialize %s: %v", name, err)))
			exitCode = 1
			continue
		}
		var pretty []byte
		if pretty, err = prettyJSON(data); err != nil {
			pretty = data
		}

		if err := writeOutput(opts.output, name, pretty); err != nil {
			fmt.Fprintln(os.Stderr, red(err.Error()))
			exitCode = 1
			continue
		}

		if opts.stats {
			printStats(name, l)
		}
	}

	if exitCode != 0 {
		os.Exit(exitCode)
	}
	return nil
}

func resolveExtensions(names []string) (*extensions.Registry, error) {
	reg := extensions.NewRegistry()
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		ext, ok := extensions.ByName(n)
		if !ok {
			return nil, fmt.Errorf("unknown extension %q", n)
		}
		reg.Add(ext)
	}
	return reg, nil
}

func parseTargetVersion(s string) visitor.TargetVersion {
	parts := strings.SplitN(s, ".", 2)
	if len(parts) != 2 {
		return visitor.TargetVersion{Major: 3, Minor: 12}
	}
	major, errA := strconv.Atoi(parts[0])
	minor, errB := strconv.Atoi(parts[1])
	if errA != nil || errB != nil {
		return visitor.TargetVersion{Major: 3, Minor: 12}
	}
	return visitor.TargetVersion{Major: major, Minor: minor}
}

func prettyJSON(data []byte) ([]byte, error) {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	return json.MarshalIndent(v, "", "  ")
}

func writeOutput(output, pkgName string, data []byte) error {
	if output == "" || output == "-" {
		fmt.Println(string(data))
		return nil
	}
	path := strings.ReplaceAll(output, "{package}", pkgName)
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

func printStats(pkgName string, l *loader.Loader) {
	counts := l.Warnings.CountByPhase()
	fmt.Fprintln(os.Stderr, bold(fmt.Sprintf("%s: %d warning(s)", pkgName, l.Warnings.Len())))
	for phase, n := range counts {
		fmt.Fprintln(os.Stderr, fmt.Sprintf("  %s: %d", phase, n))
	}
}
