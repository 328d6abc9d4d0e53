package sheet

import (
	"strings"

	"resume-review/internal/domain/profile"

	"github.com/google/uuid"
)

const delimiter = ","

// sentinel replaces the delimiter inside quoted spans during splitting.
// The unit separator does not occur in spreadsheet exports.
const sentinel = "\x1f"

// ParseLine splits one CSV line into fields. A delimiter inside a quoted
// span does not split; surrounding quotes are left in place for the caller.
// The parse never fails: malformed rows produce best-effort splits. An empty
// line yields a single empty field, so callers must drop blank lines first.
func ParseLine(line string) []string {
	if strings.Contains(line, `"`) {
		var b strings.Builder
		b.Grow(len(line))
		inQuotes := false
		for _, r := range line {
			switch {
			case r == '"':
				inQuotes = !inQuotes
				b.WriteRune(r)
			case inQuotes && string(r) == delimiter:
				b.WriteString(sentinel)
			default:
				b.WriteRune(r)
			}
		}
		line = b.String()
	}

	fields := strings.Split(line, delimiter)
	for i, f := range fields {
		fields[i] = strings.ReplaceAll(f, sentinel, delimiter)
	}
	return fields
}

// Unquote strips one pair of surrounding quotes, if present.
func Unquote(field string) string {
	field = strings.TrimSpace(field)
	if len(field) >= 2 && strings.HasPrefix(field, `"`) && strings.HasSuffix(field, `"`) {
		return field[1 : len(field)-1]
	}
	return field
}

// Spreadsheet column order: job_id, name, email, status, pdf_url.
const (
	colJobID = iota
	colName
	colEmail
	colStatus
	colPDFURL
	columnCount
)

// ParseProfiles turns the raw CSV export into profiles for one job. The
// export holds rows for every job; the jobID filter is applied here. The
// first line is the header and is skipped, as are blank lines. Rows get
// locally generated IDs; the hosted-table import reuses them so later status
// updates address the same key.
func ParseProfiles(raw string, jobID string) []profile.Profile {
	lines := strings.Split(strings.ReplaceAll(raw, "\r\n", "\n"), "\n")

	out := make([]profile.Profile, 0, len(lines))
	for i, line := range lines {
		if i == 0 {
			continue
		}
		if strings.TrimSpace(line) == "" {
			continue
		}

		fields := ParseLine(line)
		row := make([]string, columnCount)
		for j := 0; j < columnCount && j < len(fields); j++ {
			row[j] = Unquote(fields[j])
		}

		if row[colJobID] != jobID {
			continue
		}

		out = append(out, profile.Profile{
			ID:     uuid.NewString(),
			JobID:  row[colJobID],
			Name:   row[colName],
			Email:  row[colEmail],
			Status: profile.ParseStatus(row[colStatus]),
			PDFURL: row[colPDFURL],
		})
	}
	return out
}
