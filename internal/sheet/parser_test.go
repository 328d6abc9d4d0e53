package sheet

import (
	"reflect"
	"testing"

	"resume-review/internal/domain/profile"
)

func TestParseLine(t *testing.T) {
	tests := []struct {
		name string
		line string
		want []string
	}{
		{
			name: "plain fields",
			line: "42,John,john@x.com",
			want: []string{"42", "John", "john@x.com"},
		},
		{
			name: "quoted field containing delimiter",
			line: `"Doe, John",john@x.com,Shortlisted`,
			want: []string{`"Doe, John"`, "john@x.com", "Shortlisted"},
		},
		{
			name: "multiple quoted fields",
			line: `"a,b","c,d"`,
			want: []string{`"a,b"`, `"c,d"`},
		},
		{
			name: "empty line yields one empty field",
			line: "",
			want: []string{""},
		},
		{
			name: "trailing empty field",
			line: "a,b,",
			want: []string{"a", "b", ""},
		},
		{
			name: "unquoted delimiter splits",
			line: "Doe, John,x@y.com",
			want: []string{"Doe", " John", "x@y.com"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseLine(tt.line)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("ParseLine(%q) = %#v, want %#v", tt.line, got, tt.want)
			}
		})
	}
}

func TestParseLineQuotingRoundTrip(t *testing.T) {
	fields := ParseLine(`"Doe, John",john@x.com,Shortlisted`)
	unquoted := make([]string, 0, len(fields))
	for _, f := range fields {
		unquoted = append(unquoted, Unquote(f))
	}
	want := []string{"Doe, John", "john@x.com", "Shortlisted"}
	if !reflect.DeepEqual(unquoted, want) {
		t.Fatalf("got %#v, want %#v", unquoted, want)
	}
}

func TestUnquote(t *testing.T) {
	if got := Unquote(`"a,b"`); got != "a,b" {
		t.Fatalf("got %q", got)
	}
	if got := Unquote("plain"); got != "plain" {
		t.Fatalf("got %q", got)
	}
	if got := Unquote(`"`); got != `"` {
		t.Fatalf("lone quote should be untouched, got %q", got)
	}
}

func TestParseProfiles(t *testing.T) {
	raw := "job_id,name,email,status,pdf_url\n" +
		`42,"Doe, John",john@x.com,Shortlisted,https://x.test/a.pdf` + "\n" +
		"\n" +
		"42,Jane Roe,jane@x.com,,https://x.test/b.pdf\n" +
		"7,Other Job,other@x.com,New,https://x.test/c.pdf\n"

	got := ParseProfiles(raw, "42")
	if len(got) != 2 {
		t.Fatalf("expected 2 profiles, got %d", len(got))
	}

	if got[0].Name != "Doe, John" {
		t.Fatalf("unexpected name: %q", got[0].Name)
	}
	if got[0].Status != profile.StatusShortlisted {
		t.Fatalf("unexpected status: %q", got[0].Status)
	}
	if got[1].Status != profile.StatusNew {
		t.Fatalf("empty status should default to New, got %q", got[1].Status)
	}
	if got[0].ID == "" || got[1].ID == "" {
		t.Fatalf("expected generated IDs")
	}
	if got[0].ID == got[1].ID {
		t.Fatalf("IDs must be unique per fetch")
	}
	for _, p := range got {
		if p.JobID != "42" {
			t.Fatalf("job filter leaked row for job %q", p.JobID)
		}
	}
}

func TestParseProfilesHeaderOnly(t *testing.T) {
	got := ParseProfiles("job_id,name,email,status,pdf_url\n", "42")
	if len(got) != 0 {
		t.Fatalf("expected no profiles, got %d", len(got))
	}
}

func TestParseProfilesShortRow(t *testing.T) {
	raw := "job_id,name,email,status,pdf_url\n42,Only Name\n"
	got := ParseProfiles(raw, "42")
	if len(got) != 1 {
		t.Fatalf("expected 1 profile, got %d", len(got))
	}
	if got[0].Email != "" || got[0].PDFURL != "" {
		t.Fatalf("missing columns should stay empty: %#v", got[0])
	}
	if got[0].Status != profile.StatusNew {
		t.Fatalf("missing status should default to New")
	}
}
