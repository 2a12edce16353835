package errors

// Error message constants for the impsort application
const (
	// File processing errors
	ErrMsgFailedToReadFile   = "failed to read file"
	ErrMsgFailedToParseFile  = "failed to parse file"
	ErrMsgFailedToSortFile   = "failed to sort imports"
	ErrMsgFailedToWriteFile  = "failed to write file"
	ErrMsgFailedToRenderFile = "failed to render imports"
	ErrMsgIsDirectory        = "%s: %s is a directory"

	// Command line errors
	ErrMsgInvalidColorMode = "invalid color mode %q (want auto, on or off)"

	// Environment discovery errors
	ErrMsgFailedToProbePython = "failed to probe python interpreter"
	ErrMsgFailedToDecodeProbe = "failed to decode python interpreter report"

	// Internal errors
	ErrMsgMalformedDeclaration = "malformed import declaration"

	// Info/warning messages
	WarnMsgProbeFailed        = "Warning: %v; falling back to the built-in standard library table"
	WarnMsgNotPythonFile      = "Warning: %s does not look like a Python file"
	InfoMsgEnvironmentOrigin  = "Environment: %s"
	InfoMsgStdlibModules      = "Standard library modules: %d"
	InfoMsgSearchPath         = "Search path:"
	InfoMsgSearchPathEntry    = "  %s"
	InfoMsgImportsFound       = "Imports found: %d plain, %d from"
	InfoMsgNoImportsFound     = "No top-level imports found in %s"
	InfoMsgClassifiedModule   = "  %-30s %s"
	InfoMsgClassificationHead = "Classification:"
)
