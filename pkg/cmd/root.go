package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/siyuan-infoblox/impsort/pkg/classifier"
	"github.com/siyuan-infoblox/impsort/pkg/errors"
	"github.com/siyuan-infoblox/impsort/pkg/formatter"
	"github.com/siyuan-infoblox/impsort/pkg/utils"
	"github.com/siyuan-infoblox/impsort/pkg/version"
)

const (
	UseDescription   = "impsort [flags] [INFILE] [OUTFILE]"
	ShortDescription = "Python import sorter - A tool to group and sort Python imports"
	LongDescription  = `impsort reads a Python source file and prints its top-level imports as one
canonical block, grouped and sorted:

1. __future__ imports
2. Standard library modules
3. Third-party modules found on the interpreter's search path
4. Local and relative imports

Groups are separated by a blank line. Plain imports are split to one module per
line; from-imports of the same module are merged into a single statement.
Imports nested in functions, classes or conditional blocks are left out.

INFILE defaults to standard input and OUTFILE to standard output; "-" selects
them explicitly. The standard library and search path are read from the Python
interpreter given by --python; when it cannot be run, a built-in standard
library table and PYTHONPATH are used instead.`
)

const (
	colorAuto = "auto"
	colorOn   = "on"
	colorOff  = "off"
)

var (
	pythonBin   string
	verbose     bool
	colorMode   string
	showVersion bool
	versionStr  string
)

var errorColor = color.New(color.FgRed, color.Bold)
var warnColor = color.New(color.FgYellow)

var rootCmd = &cobra.Command{
	Use:           UseDescription,
	Short:         ShortDescription,
	Long:          LongDescription,
	Args:          validateArgs,
	RunE:          run,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&pythonBin, "python", classifier.DefaultPython, "Python interpreter used to discover the standard library and search path (empty to skip)")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Print the environment and classification details to stderr")
	rootCmd.PersistentFlags().StringVar(&colorMode, "color", colorAuto, "Colorize messages (auto|on|off)")
	rootCmd.PersistentFlags().BoolVarP(&showVersion, "version", "v", false, "Show version information")
}

func validateArgs(cmd *cobra.Command, args []string) error {
	// If version flag is set, we don't need file arguments
	if showVersion {
		return nil
	}
	return cobra.MaximumNArgs(2)(cmd, args)
}

func run(cmd *cobra.Command, args []string) error {
	if err := configureColor(cmd.ErrOrStderr()); err != nil {
		return err
	}

	// Handle version flag
	if showVersion {
		fmt.Fprintln(cmd.OutOrStdout(), version.Get(versionStr))
		return nil
	}

	var infile, outfile string
	if len(args) > 0 {
		infile = args[0]
	}
	if len(args) > 1 {
		outfile = args[1]
	}

	var logw io.Writer
	if verbose {
		logw = cmd.ErrOrStderr()
	}

	// stdin to stdout streams through the formatter; otherwise the input is
	// read up front so a bad path fails before the interpreter probe
	stream := utils.IsStdio(infile) && utils.IsStdio(outfile)
	var src []byte
	if !stream {
		var err error
		if src, err = readSource(cmd, infile); err != nil {
			return err
		}
	}

	env := classifier.Discover(cmd.Context(), classifier.Options{
		Python:     pythonBin,
		PythonPath: os.Getenv("PYTHONPATH"),
	})
	logEnvironment(logw, env)

	filePath := infile
	if utils.IsStdio(infile) {
		filePath = ""
	}
	f := formatter.New(formatter.FormatterConfig{
		FilePath: filePath,
		Verbose:  logw,
	}, classifier.New(env))

	if stream {
		return f.Process(cmd.InOrStdin(), cmd.OutOrStdout())
	}
	out, err := f.Format(src)
	if err != nil {
		return err
	}
	return writeResult(cmd, outfile, out)
}

func readSource(cmd *cobra.Command, infile string) ([]byte, error) {
	if !utils.IsStdio(infile) {
		if isDir, err := utils.IsDirectory(infile); err == nil && isDir {
			return nil, fmt.Errorf(errors.ErrMsgIsDirectory, errors.ErrMsgFailedToReadFile, infile)
		}
		if verbose && !utils.IsPythonFile(infile) {
			warnColor.Fprintf(cmd.ErrOrStderr(), errors.WarnMsgNotPythonFile+"\n", infile)
		}
	}
	src, err := utils.ReadInput(infile, cmd.InOrStdin())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errors.ErrMsgFailedToReadFile, err)
	}
	return src, nil
}

func writeResult(cmd *cobra.Command, outfile string, out []byte) error {
	if utils.IsStdio(outfile) {
		if _, err := cmd.OutOrStdout().Write(out); err != nil {
			return fmt.Errorf("%s: %w", errors.ErrMsgFailedToWriteFile, err)
		}
		return nil
	}
	if err := utils.WriteFileAtomic(outfile, out); err != nil {
		return fmt.Errorf("%s: %w", errors.ErrMsgFailedToWriteFile, err)
	}
	return nil
}

// logEnvironment reports where classification data came from
func logEnvironment(logw io.Writer, env *classifier.Environment) {
	if logw == nil {
		return
	}
	if err := env.ProbeError(); err != nil {
		warnColor.Fprintf(logw, errors.WarnMsgProbeFailed+"\n", err)
	}
	fmt.Fprintf(logw, errors.InfoMsgEnvironmentOrigin+"\n", env.Origin())
	fmt.Fprintf(logw, errors.InfoMsgStdlibModules+"\n", len(env.StdlibModules()))
	fmt.Fprintln(logw, errors.InfoMsgSearchPath)
	for _, p := range env.SearchPath() {
		fmt.Fprintf(logw, errors.InfoMsgSearchPathEntry+"\n", p)
	}
}

func configureColor(w io.Writer) error {
	switch colorMode {
	case colorOn:
		color.NoColor = false
	case colorOff:
		color.NoColor = true
	case colorAuto:
		f, ok := w.(*os.File)
		color.NoColor = !ok || !term.IsTerminal(int(f.Fd()))
	default:
		return fmt.Errorf(errors.ErrMsgInvalidColorMode, colorMode)
	}
	return nil
}

// PrintError writes err to w the way the command line reports failures.
func PrintError(w io.Writer, err error) {
	errorColor.Fprintf(w, "Error: %v\n", err)
}

func Execute(version string) error {
	versionStr = version
	return rootCmd.Execute()
}
