package docurl

import "testing"

func TestDownloadURL(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "edit link",
			in:   "https://docs.google.com/document/d/abc123/edit?usp=sharing",
			want: "https://docs.google.com/document/d/abc123/export?format=pdf",
		},
		{
			name: "preview link",
			in:   "https://docs.google.com/document/d/abc123/preview",
			want: "https://docs.google.com/document/d/abc123/export?format=pdf",
		},
		{
			name: "bare document link",
			in:   "https://docs.google.com/document/d/abc123",
			want: "https://docs.google.com/document/d/abc123/export?format=pdf",
		},
		{
			name: "non google url untouched",
			in:   "https://cdn.example.com/resumes/jane.pdf",
			want: "https://cdn.example.com/resumes/jane.pdf",
		},
		{
			name: "empty",
			in:   "",
			want: "",
		},
	}

	for _, tt := range tests {
		if got := DownloadURL(tt.in); got != tt.want {
			t.Fatalf("%s: got %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestEmbedURL(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{
			in:   "https://docs.google.com/document/d/abc123/edit",
			want: "https://docs.google.com/document/d/abc123/preview",
		},
		{
			in:   "https://docs.google.com/document/d/abc123/preview",
			want: "https://docs.google.com/document/d/abc123/preview",
		},
		{
			in:   "https://cdn.example.com/resumes/jane.pdf",
			want: "https://cdn.example.com/resumes/jane.pdf",
		},
	}

	for _, tt := range tests {
		if got := EmbedURL(tt.in); got != tt.want {
			t.Fatalf("EmbedURL(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
