// Package report turns a classification into the summary shown to the person
// who took the photo.
package report

import (
	"errors"

	"github.com/ironsheep/strip-reader-mcp/internal/strip"
)

// Title heads every glucose report.
const Title = "Urine Glucose"

// Severity groups result labels for display.
type Severity string

const (
	SeverityNormal  Severity = "normal"
	SeverityCaution Severity = "caution"
	SeverityHigh    Severity = "high"
)

// Display colors per severity.
const (
	ColorNormal  = "#06C755"
	ColorCaution = "#F1C40F"
	ColorHigh    = "#EF4444"
)

// Retake messages returned with failed reports.
const (
	MessageNoStrip = "Could not analyze the photo. Please retake it with the test strip clear and straight."
	MessageNoMatch = "The pad color does not match any reference level. Please retake the photo in even lighting."
	MessageFailed  = "The photo could not be analyzed."
)

// Report is a displayable result. A failed report has OK false, an empty
// Label, and a Message explaining what to do.
type Report struct {
	Title    string   `json:"title"`
	OK       bool     `json:"ok"`
	Label    string   `json:"label,omitempty"`
	Severity Severity `json:"severity,omitempty"`
	Color    string   `json:"color,omitempty"`
	DeltaE   float64  `json:"delta_e,omitempty"`
	Message  string   `json:"message,omitempty"`
	// ErrorKind is strip.ErrorKind of the failure.
	ErrorKind string `json:"error_kind,omitempty"`
}

// SeverityOf maps a label to its severity. Negative is normal, Trace and 1+
// call for caution, everything else is high, including labels from custom
// calibration tables.
func SeverityOf(label string) Severity {
	switch label {
	case strip.LabelNegative:
		return SeverityNormal
	case strip.LabelTrace, strip.LabelOnePlus:
		return SeverityCaution
	default:
		return SeverityHigh
	}
}

// Color returns the display color for a severity.
func (s Severity) Color() string {
	switch s {
	case SeverityNormal:
		return ColorNormal
	case SeverityCaution:
		return ColorCaution
	default:
		return ColorHigh
	}
}

// Build reports a successful match.
func Build(m strip.Match) Report {
	sev := SeverityOf(m.Label)
	return Report{
		Title:    Title,
		OK:       true,
		Label:    m.Label,
		Severity: sev,
		Color:    sev.Color(),
		DeltaE:   m.Distance,
	}
}

// Failure reports an analysis error.
func Failure(err error) Report {
	r := Report{Title: Title, ErrorKind: strip.ErrorKind(err)}
	switch {
	case errors.Is(err, strip.ErrNoStripDetected):
		r.Message = MessageNoStrip
	case errors.Is(err, strip.ErrNoTemplateMatch):
		r.Message = MessageNoMatch
	default:
		r.Message = MessageFailed
	}
	return r
}
