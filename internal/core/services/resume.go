package services

import (
	"strings"

	"github.com/custodia-labs/parley-cli/internal/core/domain"
)

// skillKeywords is the keyword list scanned for in resume text.
var skillKeywords = []string{
	"python", "java", "javascript", "react", "node", "sql", "aws",
	"docker", "kubernetes", "machine learning", "ai", "data science",
	"go", "golang", "rust", "terraform", "postgresql", "redis", "grpc",
}

// ParseResume performs a lightweight keyword and section scan of resume
// text. It is advisory output for the caller; retrieval works off the
// vector index, not this profile.
func ParseResume(text string) *domain.ResumeProfile {
	profile := &domain.ResumeProfile{
		Skills:     []string{},
		Experience: []string{},
		Education:  []string{},
	}

	textLower := strings.ToLower(text)
	for _, skill := range skillKeywords {
		if strings.Contains(textLower, skill) {
			profile.Skills = append(profile.Skills, titleCase(skill))
		}
	}

	var summary strings.Builder
	section := ""
	for _, line := range strings.Split(text, "\n") {
		lineLower := strings.ToLower(strings.TrimSpace(line))
		trimmed := strings.TrimSpace(line)

		switch {
		case containsAny(lineLower, "experience", "work history"):
			section = "experience"
		case containsAny(lineLower, "education", "academic"):
			section = "education"
		case containsAny(lineLower, "summary", "objective"):
			section = "summary"
		case section != "" && trimmed != "":
			switch section {
			case "summary":
				summary.WriteString(line)
				summary.WriteString(" ")
			case "experience":
				profile.Experience = append(profile.Experience, trimmed)
			case "education":
				profile.Education = append(profile.Education, trimmed)
			}
		}
	}
	profile.Summary = strings.TrimSpace(summary.String())

	return profile
}

// titleCase capitalises the first letter of each word. The keyword list
// is plain ASCII so a byte-level transform suffices.
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}

func containsAny(s string, substrings ...string) bool {
	for _, sub := range substrings {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
