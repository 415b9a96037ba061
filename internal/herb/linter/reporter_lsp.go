package linter

import (
	"io"
	"path/filepath"

	"go.lsp.dev/protocol"
)

// LSPReporter outputs one publishDiagnostics payload per file so editors
// and language-server wrappers can consume the results directly.
type LSPReporter struct{}

// NewLSPReporter creates a new LSP reporter.
func NewLSPReporter() *LSPReporter {
	return &LSPReporter{}
}

// Report implements the Reporter interface for LSP output. Files without
// offenses are included with an empty list so stale diagnostics get cleared.
func (r *LSPReporter) Report(w io.Writer, result *RunResult) error {
	out := make([]protocol.PublishDiagnosticsParams, 0, len(result.Files))
	for _, f := range result.Files {
		params := protocol.PublishDiagnosticsParams{
			URI:         fileURI(f.Path),
			Diagnostics: []protocol.Diagnostic{},
		}
		if f.Lint != nil {
			for _, o := range f.Lint.Offenses {
				params.Diagnostics = append(params.Diagnostics, OffenseToDiagnostic(o))
			}
		}
		out = append(out, params)
	}
	return encode(w, out)
}

// OffenseToDiagnostic converts an offense to an LSP diagnostic. LSP lines
// are 0-based; columns are already 0-based.
func OffenseToDiagnostic(o Offense) protocol.Diagnostic {
	startLine := uint32(0)
	if o.Location.Start.Line > 0 {
		startLine = uint32(o.Location.Start.Line - 1)
	}
	startChar := uint32(max(o.Location.Start.Column, 0))
	endLine := startLine
	endChar := startChar + 1 // Default to single character
	if o.Location.End.Line > 0 {
		endLine = uint32(o.Location.End.Line - 1)
		endChar = uint32(max(o.Location.End.Column, 0))
	}

	return protocol.Diagnostic{
		Range: protocol.Range{
			Start: protocol.Position{Line: startLine, Character: startChar},
			End:   protocol.Position{Line: endLine, Character: endChar},
		},
		Severity: severityToLSP(o.Severity),
		Code:     o.Code,
		Source:   o.Source,
		Message:  o.Message,
	}
}

func severityToLSP(s Severity) protocol.DiagnosticSeverity {
	switch s {
	case SeverityError:
		return protocol.DiagnosticSeverityError
	case SeverityWarning:
		return protocol.DiagnosticSeverityWarning
	case SeverityInfo:
		return protocol.DiagnosticSeverityInformation
	default:
		return protocol.DiagnosticSeverityHint
	}
}

func fileURI(path string) protocol.DocumentURI {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	return protocol.DocumentURI("file://" + filepath.ToSlash(abs))
}
