package resume

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/yashi-star/InterviewManagementSystem/internal/domain"
)

func TestHasValidContent(t *testing.T) {
	filler := strings.Repeat("lorem ipsum dolor sit amet ", 10)

	tests := []struct {
		name string
		text string
		want bool
	}{
		{"too short", "experience with email@x.com", false},
		{"long but no resume tokens", filler, false},
		{"email token", filler + " reach me at jane@example.com", true},
		{"experience token", filler + " five years of experience in backend", true},
		{"work token", filler + " previous work includes services", true},
		{"education token", filler + " education: computer science", true},
		{"degree token", filler + " holds a degree in mathematics", true},
		{"university token", filler + " studied at a state university", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HasValidContent(tt.text); got != tt.want {
				t.Errorf("HasValidContent = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCleanText(t *testing.T) {
	in := "Jane\tDoe\n\njane@example.com   (555) 123-4567 • C++/C# développeur"
	got := cleanText(in)

	if strings.Contains(got, "\n") || strings.Contains(got, "\t") {
		t.Errorf("whitespace not collapsed: %q", got)
	}
	if strings.Contains(got, "•") {
		t.Errorf("junk characters not stripped: %q", got)
	}
	if !strings.Contains(got, "jane@example.com") {
		t.Errorf("email mangled: %q", got)
	}
	if !strings.Contains(got, "(555) 123-4567") {
		t.Errorf("phone mangled: %q", got)
	}
	if !strings.Contains(got, "C++/C#") {
		t.Errorf("technical symbols stripped: %q", got)
	}
}

func TestExtractTextPlainFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "resume.txt")
	content := "Jane Doe\njane@example.com\n\nExperience:  backend   services"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	parser := NewParser(zerolog.Nop())
	got, err := parser.ExtractText(path)
	if err != nil {
		t.Fatalf("ExtractText returned error: %v", err)
	}
	if got != "Jane Doe jane@example.com Experience backend services" {
		t.Errorf("ExtractText = %q", got)
	}
}

func TestExtractTextMissingFile(t *testing.T) {
	parser := NewParser(zerolog.Nop())
	_, err := parser.ExtractText(filepath.Join(t.TempDir(), "nope.txt"))

	var vErr *domain.ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError, got %T: %v", err, err)
	}
}

func TestExtractTextLegacyDoc(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "resume.doc")
	if err := os.WriteFile(path, []byte("old format"), 0o644); err != nil {
		t.Fatal(err)
	}

	parser := NewParser(zerolog.Nop())
	_, err := parser.ExtractText(path)

	var vErr *domain.ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError for .doc, got %T: %v", err, err)
	}
	if !strings.Contains(vErr.Message, ".docx or .pdf") {
		t.Errorf("message = %q", vErr.Message)
	}
}

func TestExtractTextUnknownExtension(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "resume.png")
	if err := os.WriteFile(path, []byte("bytes"), 0o644); err != nil {
		t.Fatal(err)
	}

	parser := NewParser(zerolog.Nop())
	_, err := parser.ExtractText(path)

	var vErr *domain.ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError for unknown extension, got %T: %v", err, err)
	}
}
