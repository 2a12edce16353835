package formatter

import (
	"fmt"
	"io"

	"github.com/siyuan-infoblox/impsort/pkg/errors"
	"github.com/siyuan-infoblox/impsort/pkg/pyast"
)

// FormatterConfig holds the per-file settings of a formatter.
type FormatterConfig struct {
	FilePath string    // name of the input in error messages; empty for stdin
	Verbose  io.Writer // receives progress messages; nil to stay quiet
}

// formatter sorts the module-level imports of one Python file
type formatter struct {
	config     FormatterConfig
	classifier Classifier
}

// New creates a formatter that groups imports with the given classifier
func New(config FormatterConfig, c Classifier) *formatter {
	return &formatter{
		config:     config,
		classifier: c,
	}
}

func (f *formatter) getFilePath() string {
	return f.config.FilePath
}

func (f *formatter) logf(format string, args ...any) {
	if f.config.Verbose != nil {
		fmt.Fprintf(f.config.Verbose, format+"\n", args...)
	}
}

// Sort collects the module-level imports of mod and returns them ordered.
func (f *formatter) Sort(mod *pyast.Module) ([]Entry, error) {
	collector := NewCollector()
	collector.Visit(mod)

	plain, from := collector.Counts()
	f.logf(errors.InfoMsgImportsFound, plain, from)

	decls := collector.Declarations()
	entries := make([]Entry, 0, len(decls))
	for _, decl := range decls {
		key, err := KeyOf(f.classifier, decl)
		if err != nil {
			return nil, err
		}
		entries = append(entries, Entry{Key: key, Decl: decl})
	}
	SortEntries(entries)

	if f.config.Verbose != nil && len(entries) > 0 {
		f.logf(errors.InfoMsgClassificationHead)
		for _, entry := range entries {
			f.logf(errors.InfoMsgClassifiedModule, modulePath(entry.Decl), entry.Key.Provenance())
		}
	}
	return entries, nil
}

func modulePath(decl Declaration) string {
	switch d := decl.(type) {
	case *PlainImport:
		return d.Name
	case *FromImport:
		return d.Path()
	default:
		return fmt.Sprintf("%T", decl)
	}
}

// Format parses src and returns its canonical import block. Nothing is
// returned unless every step succeeds.
func (f *formatter) Format(src []byte) ([]byte, error) {
	mod, err := pyast.Parse(f.getFilePath(), src)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errors.ErrMsgFailedToParseFile, err)
	}

	entries, err := f.Sort(mod)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errors.ErrMsgFailedToSortFile, err)
	}
	if len(entries) == 0 {
		name := f.getFilePath()
		if name == "" {
			name = "<stdin>"
		}
		f.logf(errors.InfoMsgNoImportsFound, name)
	}

	out, err := Render(entries)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errors.ErrMsgFailedToRenderFile, err)
	}
	return out, nil
}

// Process reads all of in, sorts it and writes the import block to out.
// out is not written to when reading, parsing or sorting fails.
func (f *formatter) Process(in io.Reader, out io.Writer) error {
	src, err := io.ReadAll(in)
	if err != nil {
		return fmt.Errorf("%s: %w", errors.ErrMsgFailedToReadFile, err)
	}
	result, err := f.Format(src)
	if err != nil {
		return err
	}
	if _, err := out.Write(result); err != nil {
		return fmt.Errorf("%s: %w", errors.ErrMsgFailedToWriteFile, err)
	}
	return nil
}
