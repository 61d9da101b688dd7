// chlang — rewrites quoted string literals in a source tree into
// localization calls, using a msgid/msgstr translation file.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/minios-linux/chlang/config"
	"github.com/minios-linux/chlang/i18n"
	"github.com/minios-linux/chlang/jsonstr"
	"github.com/minios-linux/chlang/pofile"
	"github.com/minios-linux/chlang/rewrite"
	"github.com/minios-linux/chlang/sources"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// Version information (set via -ldflags during build)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// ANSI colors, cleared by setupColors when stderr is not a terminal.
var (
	colorReset  = "\033[0m"
	colorRed    = "\033[0;31m"
	colorGreen  = "\033[0;32m"
	colorYellow = "\033[1;33m"
	colorBlue   = "\033[0;34m"
)

func setupColors() {
	if os.Getenv("NO_COLOR") != "" || !term.IsTerminal(int(os.Stderr.Fd())) {
		colorReset, colorRed, colorGreen, colorYellow, colorBlue = "", "", "", "", ""
	}
}

func logInfo(format string, args ...any) {
	fmt.Fprintf(os.Stderr, colorBlue+"[INFO]"+colorReset+" "+format+"\n", args...)
}

func logSuccess(format string, args ...any) {
	fmt.Fprintf(os.Stderr, colorGreen+"[OK]"+colorReset+" "+format+"\n", args...)
}

func logWarning(format string, args ...any) {
	fmt.Fprintf(os.Stderr, colorYellow+"[WARN]"+colorReset+" "+format+"\n", args...)
}

func logError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, colorRed+"[ERROR]"+colorReset+" "+format+"\n", args...)
}

// ---------------------------------------------------------------------------
// Root command
// ---------------------------------------------------------------------------

type rootOptions struct {
	verbose    bool
	dryRun     bool
	configPath string
	extensions []string
}

func newRootCmd() *cobra.Command {
	var opts rootOptions

	root := &cobra.Command{
		Use:   "chlang [flags] <translationFile> <rootDirectory>",
		Short: "Replace string literals with localization calls",
		Long: `chlang reads msgid/msgstr pairs from a translation file and walks a
source tree, replacing every quoted string that has a translation with
_("<translation>").

Lines containing an exclusion marker (#include, logging macros, style and
layout calls, resource ids, file names, "_") are never touched. Files are
only written when at least one line changed.`,
		Args:          cobra.RangeArgs(0, 2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			switch len(args) {
			case 0:
				printUsage(cmd.OutOrStdout())
				return nil
			case 1:
				return fmt.Errorf("missing root directory (see 'chlang -h')")
			}
			return runRewrite(cmd.OutOrStdout(), args[0], args[1], opts)
		},
	}

	root.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "Also print strings with no translation")
	root.Flags().BoolVar(&opts.dryRun, "dry-run", false, "Report what would change without writing files")
	root.Flags().StringVar(&opts.configPath, "config", "", "Config file (default: <rootDirectory>/"+config.FileName+")")
	root.Flags().StringSliceVar(&opts.extensions, "ext", nil, "File extensions to rewrite (overrides config)")

	// -h prints the short usage block, subcommands keep cobra's help.
	defaultHelp := root.HelpFunc()
	root.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		if cmd == root {
			printUsage(cmd.OutOrStdout())
			return
		}
		defaultHelp(cmd, args)
	})

	root.AddCommand(
		newJSON2StringCmd(),
		newVersionCmd(),
	)

	return root
}

func printUsage(w io.Writer) {
	prog := filepath.Base(os.Args[0])
	fmt.Fprintf(w, i18n.T("usage: %s ./location/of/en.po ./directory/to/translate")+"\n", prog)
	fmt.Fprintf(w, i18n.T("e.g.: %s ../res/locale/en.po ../services")+"\n", prog)
	fmt.Fprintln(w, i18n.T("add -v for verbose (untranslated strings will be printed)"))
}

func main() {
	setupColors()
	i18n.Init("")

	if err := newRootCmd().Execute(); err != nil {
		logError("%v", err)
		os.Exit(1)
	}
}

// ---------------------------------------------------------------------------
// rewrite (default action)
// ---------------------------------------------------------------------------

func runRewrite(out io.Writer, poPath, rootDir string, opts rootOptions) error {
	// The table is loaded before anything else so a bad file never
	// leaves a half-processed tree behind.
	table, err := pofile.Load(poPath)
	if err != nil {
		if errors.Is(err, pofile.ErrMalformed) {
			return err
		}
		return fmt.Errorf("%w: %w", rewrite.ErrFileAccess, err)
	}
	if opts.verbose {
		logInfo("Loaded %d translations from %s", table.Len(), poPath)
	}

	var cfg *config.File
	if opts.configPath != "" {
		cfg, err = config.Load(opts.configPath)
	} else {
		cfg, err = config.LoadDir(rootDir)
	}
	if err != nil {
		return err
	}
	if cfg.Path() != "" && opts.verbose {
		logInfo("Using config %s", cfg.Path())
	}

	exts := cfg.Extensions
	if len(opts.extensions) > 0 {
		exts = opts.extensions
	}

	rw := &rewrite.Rewriter{
		Translator: &rewrite.Translator{
			Table:   table,
			Wrapper: cfg.Wrapper,
			Verbose: opts.verbose,
			OnHit: func(original, translated string) {
				fmt.Fprintf(out, "%s \t ===> \t %s\n", original, translated)
			},
			OnMiss: func(text string) {
				fmt.Fprintf(out, "not found: \"%s\"\n", text)
			},
		},
		Filter:     cfg.Filter(),
		Extensions: exts,
		SkipDirs:   cfg.SkipDirs,
		DryRun:     opts.dryRun,
		OnStart: func(root string, files []string) {
			if len(files) > 0 {
				logInfo("Scanning %s: %s", root, sources.Describe(files, exts))
			}
			fmt.Fprintln(out, i18n.T("Translated files:"))
		},
		OnFile: func(res *rewrite.Result) {
			if res.Changed || opts.verbose {
				fmt.Fprintln(out, res.Path)
				fmt.Fprintln(out)
			}
		},
	}
	if opts.verbose {
		rw.OnExcluded = func(line, marker string) {
			fmt.Fprintf(out, "excluded by %q: %s\n", marker, strings.TrimSpace(line))
		}
	}

	sum, err := rw.RewriteTree(rootDir)
	if err != nil {
		return err
	}

	if sum.Scanned == 0 {
		logWarning("No %v files found under %s", exts, rootDir)
		return nil
	}
	msg := fmt.Sprintf(i18n.N("%d of %d file rewritten", "%d of %d files rewritten", sum.Scanned), sum.Rewritten, sum.Scanned)
	if opts.dryRun {
		msg += " (dry run)"
	}
	logSuccess("%s, %d lines translated", msg, sum.Lines)
	return nil
}

// ---------------------------------------------------------------------------
// json2string
// ---------------------------------------------------------------------------

func newJSON2StringCmd() *cobra.Command {
	var input, output, name string

	cmd := &cobra.Command{
		Use:   "json2string",
		Short: "Convert a JSON file into a std::string header",
		Long: `Write a generated header holding the input JSON, compacted and with its
double quotes escaped, as a single std::string assignment.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := jsonstr.ConvertFile(input, output, name); err != nil {
				return err
			}
			logSuccess("Wrote %s", output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "Input JSON file")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output header file")
	cmd.Flags().StringVar(&name, "name", jsonstr.DefaultName, "Variable name")
	_ = cmd.MarkFlagRequired("input")
	_ = cmd.MarkFlagRequired("output")

	return cmd
}

// ---------------------------------------------------------------------------
// version (display version information)
// ---------------------------------------------------------------------------

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Display version, commit hash, and build date.`,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "chlang version %s\n", version)
			fmt.Fprintf(cmd.OutOrStdout(), "  commit:    %s\n", commit)
			fmt.Fprintf(cmd.OutOrStdout(), "  built:     %s\n", date)
			fmt.Fprintf(cmd.OutOrStdout(), "  language:  %s\n", i18n.Language())
		},
	}
}
