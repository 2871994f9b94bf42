package diag

import "encoding/json"

// exportedDiagnostic is the wire shape for --diagnostics-json. Kept
// separate from Diagnostic so internal field renames never silently
// change the wire contract checked by diagnostics.schema.json.
type exportedDiagnostic struct {
	Category   string `json:"category"`
	Message    string `json:"message"`
	Line       int    `json:"line"`
	Col        int    `json:"col"`
	File       string `json:"file"`
	Suggestion string `json:"suggestion,omitempty"`
}

type exportedReport struct {
	Diagnostics []exportedDiagnostic `json:"diagnostics"`
}

// ExportJSON renders every recorded diagnostic as the JSON document
// described by diagnostics.schema.json (spec_full §4.1).
func (s *Sink) ExportJSON() ([]byte, error) {
	report := exportedReport{Diagnostics: make([]exportedDiagnostic, 0, len(s.recorded))}
	for _, d := range s.recorded {
		report.Diagnostics = append(report.Diagnostics, exportedDiagnostic{
			Category:   string(d.Category),
			Message:    d.Message,
			Line:       d.Span.Line,
			Col:        d.Span.Col,
			File:       d.Span.File,
			Suggestion: d.Suggestion,
		})
	}
	return json.MarshalIndent(report, "", "  ")
}
