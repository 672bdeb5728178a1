package scoring

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/yoockh/resumecraft/internal/models"
)

const maxMissingKeywords = 5

var keywordToken = regexp.MustCompile(`[a-z]{4,}`)

// MissingKeywords lists job-description words (four letters or more) that do
// not occur anywhere in the serialized resume, in order of first appearance.
func MissingKeywords(jobDescription string, r models.Resume) []string {
	haystack := strings.ToLower(serialize(r))

	out := make([]string, 0, maxMissingKeywords)
	seen := map[string]bool{}
	for _, tok := range keywordToken.FindAllString(strings.ToLower(jobDescription), -1) {
		if seen[tok] {
			continue
		}
		seen[tok] = true
		if strings.Contains(haystack, tok) {
			continue
		}
		out = append(out, tok)
		if len(out) == maxMissingKeywords {
			break
		}
	}
	return out
}

func serialize(r models.Resume) string {
	b, err := json.Marshal(models.Normalize(r))
	if err != nil {
		return ""
	}
	return string(b)
}
