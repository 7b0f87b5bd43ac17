package resume

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"code.sajari.com/docconv"
	"github.com/rs/zerolog"

	"github.com/yashi-star/InterviewManagementSystem/internal/domain"
)

// minContentChars is the shortest resume text accepted for screening.
const minContentChars = 100

// Parser extracts plain text from stored resume files.
type Parser struct {
	logger zerolog.Logger
}

func NewParser(logger zerolog.Logger) *Parser {
	return &Parser{logger: logger.With().Str("component", "resume_parser").Logger()}
}

// ExtractText reads the resume at path and returns its cleaned plain
// text. PDF and DOCX go through docconv; plain text is read directly.
// Legacy .doc is rejected.
func (p *Parser) ExtractText(path string) (string, error) {
	if _, err := os.Stat(path); err != nil {
		return "", &domain.ValidationError{Field: "resume", Message: fmt.Sprintf("resume file not found: %s", path)}
	}

	ext := strings.ToLower(filepath.Ext(path))
	var text string
	switch ext {
	case ".pdf", ".docx":
		res, err := docconv.ConvertPath(path)
		if err != nil {
			return "", fmt.Errorf("parse resume %s: %w", path, err)
		}
		text = res.Body
	case ".txt":
		content, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("read resume %s: %w", path, err)
		}
		text = string(content)
	case ".doc":
		return "", &domain.ValidationError{Field: "resume", Message: "Legacy .doc format not supported. Please use .docx or .pdf"}
	default:
		return "", &domain.ValidationError{Field: "resume", Message: fmt.Sprintf("unsupported file format: %s", ext)}
	}

	text = cleanText(text)
	p.logger.Debug().Str("path", path).Int("chars", len(text)).Msg("resume text extracted")
	return text, nil
}

var (
	whitespacePattern = regexp.MustCompile(`\s+`)
	// keep periods, commas, @, hyphens, parentheses and a few symbols;
	// everything else tends to confuse the model.
	junkPattern = regexp.MustCompile(`[^a-zA-Z0-9\s.,@()\-+/#]`)
)

func cleanText(text string) string {
	text = whitespacePattern.ReplaceAllString(text, " ")
	text = junkPattern.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}

// HasValidContent reports whether the extracted text is long enough and
// contains at least one section a real resume would have.
func HasValidContent(text string) bool {
	if len(text) < minContentChars {
		return false
	}
	lower := strings.ToLower(text)
	hasEmail := strings.Contains(lower, "@") || strings.Contains(lower, "email")
	hasExperience := strings.Contains(lower, "experience") ||
		strings.Contains(lower, "work") ||
		strings.Contains(lower, "project")
	hasEducation := strings.Contains(lower, "education") ||
		strings.Contains(lower, "degree") ||
		strings.Contains(lower, "university")
	return hasEmail || hasExperience || hasEducation
}
