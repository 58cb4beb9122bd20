package cmd

import (
	"fmt"
	"io"

	"megasrc/pkg/combine"
	"megasrc/pkg/logging"
	"megasrc/pkg/version"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	successColor    = color.New(color.FgGreen)
	warnColor       = color.New(color.FgYellow)
	identifierColor = color.New(color.FgCyan)
)

type rootOptions struct {
	root        string
	output      string
	excludeDirs []string
	extensions  []string
	configPath  string
	debug       bool
}

// NewRootCommand creates the megasrc command. Running it without arguments
// combines the sources under the current directory with the defaults.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "megasrc",
		Short: "megasrc concatenates a source tree into one file",
		Long: `megasrc walks a directory tree, keeps the files whose extension is selected,
skips excluded directories, and writes every file into a single text file with
"--- <relative-path> ---" markers, ending with "--- END OF FILE ---".

The result is one pasteable artifact for sharing a multi-file project.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := logging.Setup(opts.debug, "megasrc", version.Version); err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			combineArgs, err := opts.arguments(cmd)
			if err != nil {
				return err
			}

			summary, err := combine.RunCombine(combineArgs, logging.Logger)
			if err != nil {
				return err
			}

			printSummary(cmd.OutOrStdout(), summary)
			return nil
		},
	}

	defaults := combine.DefaultArguments()
	flags := cmd.Flags()
	flags.StringVarP(&opts.root, "root", "r", "", "directory to scan (default: current directory)")
	flags.StringVarP(&opts.output, "output", "o", defaults.Output, "output file, relative to the root unless absolute")
	flags.StringSliceVarP(&opts.excludeDirs, "exclude-dir", "x", defaults.ExcludeDirs, "directory names to skip anywhere in the tree")
	flags.StringSliceVarP(&opts.extensions, "ext", "e", defaults.Extensions, "file extensions to include, with the leading dot")
	flags.StringVarP(&opts.configPath, "config", "c", "", "YAML config file with root, output, exclude_dirs and extensions")
	cmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "enable debug logging")

	cmd.AddCommand(newVersionCmd())
	return cmd
}

// arguments layers the config file and then explicitly set flags over the defaults.
func (o *rootOptions) arguments(cmd *cobra.Command) (*combine.Arguments, error) {
	args := combine.DefaultArguments()

	if o.configPath != "" {
		if err := combine.LoadConfigFile(o.configPath, args); err != nil {
			return nil, err
		}
	}

	flags := cmd.Flags()
	if flags.Changed("root") {
		args.Root = o.root
	}
	if flags.Changed("output") {
		args.Output = o.output
	}
	if flags.Changed("exclude-dir") {
		args.ExcludeDirs = o.excludeDirs
	}
	if flags.Changed("ext") {
		args.Extensions = o.extensions
	}
	return args, nil
}

func printSummary(w io.Writer, summary *combine.Summary) {
	successColor.Fprintf(w, "Wrote %d files into %s\n", summary.Files, identifierColor.Sprint(summary.Output))
	if summary.Fallbacks > 0 {
		warnColor.Fprintf(w, "%d files were not valid UTF-8 and were decoded as Latin-1\n", summary.Fallbacks)
	}
	if summary.Skipped > 0 {
		warnColor.Fprintf(w, "%d directories could not be read and were skipped\n", summary.Skipped)
	}
}

// Execute runs the root command.
func Execute() error {
	return NewRootCommand().Execute()
}
