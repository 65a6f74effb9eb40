package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/pankaj-dahiya-devops/gcp-sentinel/internal/models"
)

// ANSI color codes for severity output (used when Colored=true).
const (
	ansiReset   = "\033[0m"
	ansiBoldRed = "\033[1;31m"
	ansiRed     = "\033[0;31m"
	ansiYellow  = "\033[0;33m"
	ansiBlue    = "\033[0;34m"
	ansiGray    = "\033[0;37m"
)

// TableOptions controls which columns RenderTable renders and how severity is coloured.
type TableOptions struct {
	// Colored wraps severity labels with ANSI codes. Default false (CI-safe).
	Colored bool

	// IncludeProject adds a PROJECT column (useful for multi-project scans).
	IncludeProject bool
}

// ColorSeverity wraps a severity string with ANSI codes when colored is true.
// When colored is false the string is returned unchanged (CI-safe default).
func ColorSeverity(sev models.Severity, colored bool) string {
	s := string(sev)
	if !colored {
		return s
	}
	switch sev {
	case models.SeverityCritical:
		return ansiBoldRed + s + ansiReset
	case models.SeverityHigh:
		return ansiRed + s + ansiReset
	case models.SeverityMedium:
		return ansiYellow + s + ansiReset
	case models.SeverityLow:
		return ansiBlue + s + ansiReset
	case models.SeverityInfo:
		return ansiGray + s + ansiReset
	default:
		return s
	}
}

// ShortenMessage truncates msg to at most max runes, appending "..." when truncated.
// max is treated as at least 4 to guarantee space for the ellipsis.
func ShortenMessage(msg string, max int) string {
	if max < 4 {
		max = 4
	}
	runes := []rune(msg)
	if len(runes) <= max {
		return msg
	}
	return string(runes[:max-3]) + "..."
}

// ResourceDisplayName returns the trailing path segment of a canonical
// resource name, which is the human-facing identifier:
// //storage.googleapis.com/projects/_/buckets/assets -> assets.
func ResourceDisplayName(resource string) string {
	if i := strings.LastIndexByte(resource, '/'); i >= 0 {
		return resource[i+1:]
	}
	return resource
}

// shortResourceType strips the service prefix from a resource type:
// compute.googleapis.com/Instance -> Instance.
func shortResourceType(t models.ResourceType) string {
	return ResourceDisplayName(string(t))
}

// severityCell returns the severity padded to width characters.
// When colored, ANSI codes wrap only the text; trailing padding spaces are plain
// so subsequent columns stay visually aligned regardless of terminal ANSI support.
func severityCell(sev models.Severity, width int, colored bool) string {
	text := string(sev)
	if !colored {
		return fmt.Sprintf("%-*s", width, text)
	}
	var code string
	switch sev {
	case models.SeverityCritical:
		code = ansiBoldRed
	case models.SeverityHigh:
		code = ansiRed
	case models.SeverityMedium:
		code = ansiYellow
	case models.SeverityLow:
		code = ansiBlue
	case models.SeverityInfo:
		code = ansiGray
	default:
		return fmt.Sprintf("%-*s", width, text)
	}
	spaces := width - len(text)
	if spaces < 0 {
		spaces = 0
	}
	return code + text + ansiReset + strings.Repeat(" ", spaces)
}

// truncateField shortens s to at most max bytes for ID/label columns.
// A single-char ellipsis replaces the last byte when truncation occurs.
func truncateField(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-1] + "…"
}

// RenderTable writes a formatted findings table to w.
// Columns are dynamically selected based on opts; the separator line width is
// derived from the header row so all rows align correctly.
//
// Column order:
//
//	RESOURCE  [PROJECT]  LOCATION  SEVERITY  TYPE  CATEGORY  MESSAGE
func RenderTable(w io.Writer, findings []models.Finding, opts TableOptions) {
	if len(findings) == 0 {
		fmt.Fprintln(w, "No findings.")
		return
	}

	// Fixed column display widths.
	const (
		wResource = 30
		wProject  = 20
		wLocation = 15
		wSeverity = 10
		wType     = 10
		wCategory = 38
		wMessage  = 55
	)

	// Build the header row.
	var hb strings.Builder
	hb.WriteString(fmt.Sprintf("%-*s", wResource, "RESOURCE"))
	if opts.IncludeProject {
		hb.WriteString(fmt.Sprintf("  %-*s", wProject, "PROJECT"))
	}
	hb.WriteString(fmt.Sprintf("  %-*s", wLocation, "LOCATION"))
	hb.WriteString(fmt.Sprintf("  %-*s", wSeverity, "SEVERITY"))
	hb.WriteString(fmt.Sprintf("  %-*s", wType, "TYPE"))
	hb.WriteString(fmt.Sprintf("  %-*s", wCategory, "CATEGORY"))
	hb.WriteString(fmt.Sprintf("  %-*s", wMessage, "MESSAGE"))
	header := hb.String()

	fmt.Fprintln(w, header)
	fmt.Fprintln(w, strings.Repeat("-", len(header)))

	for _, f := range findings {
		var rb strings.Builder
		rb.WriteString(fmt.Sprintf("%-*s", wResource, truncateField(ResourceDisplayName(f.ResourceName), wResource)))
		if opts.IncludeProject {
			rb.WriteString(fmt.Sprintf("  %-*s", wProject, truncateField(f.ResourceProject, wProject)))
		}
		rb.WriteString(fmt.Sprintf("  %-*s", wLocation, truncateField(f.ResourceLocation, wLocation)))
		rb.WriteString("  " + severityCell(f.Severity, wSeverity, opts.Colored))
		rb.WriteString(fmt.Sprintf("  %-*s", wType, truncateField(shortResourceType(f.ResourceType), wType)))
		rb.WriteString(fmt.Sprintf("  %-*s", wCategory, truncateField(f.Category, wCategory)))
		rb.WriteString(fmt.Sprintf("  %-*s", wMessage, ShortenMessage(f.Description, wMessage)))
		fmt.Fprintln(w, rb.String())
	}
}
