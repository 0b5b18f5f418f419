package main

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/mkdocstrings/griffe-sub003/internal/diffcheck"
	"github.com/mkdocstrings/griffe-sub003/internal/loader"
	"github.com/mkdocstrings/griffe-sub003/internal/objects"
)

// checkOptions backs the `check` subcommand. Git checkout/ref handling
// is out of scope here (a collaborator's job): --base-ref and
// --against each name a search-path root that already holds the
// revision to load, rather than a git ref this tool would check out
// itself.
type checkOptions struct {
	against string
	baseRef string
	color   string
	verbose bool
	format  string
}

func newCheckCommand() *cobra.Command {
	opts := &checkOptions{color: "auto", format: "text"}
	cmd := &cobra.Command{
		Use:   "check <package>",
		Short: "Compare two loaded revisions of a package for breaking API changes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(opts, args[0])
		},
	}
	f := cmd.Flags()
	f.StringVarP(&opts.against, "against", "a", ".", "search-path root holding the revision under test")
	f.StringVarP(&opts.baseRef, "base-ref", "b", "", "search-path root holding the base revision (required)")
	f.StringVar(&opts.color, "color", "auto", "colorize output: auto, always, never")
	f.BoolVarP(&opts.verbose, "verbose", "v", false, "print non-breaking changes too")
	f.StringVarP(&opts.format, "format", "f", "text", "output format (the report is always printed as text)")
	_ = cmd.MarkFlagRequired("base-ref")
	return cmd
}

func runCheck(opts *checkOptions, pkgName string) error {
	useColor := shouldColor(opts.color)

	base, err := loadRevision(opts.baseRef, pkgName)
	if err != nil {
		return fmt.Errorf("loading base revision: %w", err)
	}
	against, err := loadRevision(opts.against, pkgName)
	if err != nil {
		return fmt.Errorf("loading revision under test: %w", err)
	}

	breakages := diffcheck.Compare(base, against)
	printBreakages(breakages, opts.verbose, useColor)

	if diffcheck.HasBreaking(breakages) {
		os.Exit(1)
	}
	return nil
}

func loadRevision(searchRoot, pkgName string) (*objects.Module, error) {
	l := loader.New(loader.Config{
		SearchPaths:    []string{searchRoot},
		ResolveAliases: true,
	})
	return l.LoadPackage(pkgName)
}

func printBreakages(breakages []diffcheck.Breakage, verbose bool, useColor bool) {
	breakingColor := red
	okColor := green
	if !useColor {
		breakingColor = func(s string) string { return s }
		okColor = func(s string) string { return s }
	}
	count := 0
	for _, b := range breakages {
		if b.Severity != "breaking" && !verbose {
			continue
		}
		count++
		paint := okColor
		if b.Severity == "breaking" {
			paint = breakingColor
		}
		fmt.Println(paint(fmt.Sprintf("%s: %s (%s)", b.Path, b.Message, b.Kind)))
	}
	if count == 0 {
		fmt.Println(okColor("no breaking changes detected"))
	}
}

func shouldColor(mode string) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	default:
		return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	}
}
