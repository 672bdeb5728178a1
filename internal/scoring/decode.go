package scoring

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

var (
	firstInteger = regexp.MustCompile(`-?\d+`)
	codeFence    = regexp.MustCompile("(?m)^\\s*```[a-zA-Z]*\\s*$")
)

// stripFences drops markdown code-fence lines the model likes to wrap JSON in.
func stripFences(s string) string {
	s = codeFence.ReplaceAllString(s, "")
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}

// extractJSON cuts the outermost span between open and close, so chatter
// around the payload is ignored.
func extractJSON(s string, open, close byte) (string, bool) {
	s = stripFences(s)
	i := strings.IndexByte(s, open)
	j := strings.LastIndexByte(s, close)
	if i < 0 || j <= i {
		return "", false
	}
	return s[i : j+1], true
}

// analysisSchema only pins what the report cannot be built without. The
// keyword and suggestion lists are checked field by field afterwards.
const analysisSchema = `{
  "type": "object",
  "required": ["detailedScores"],
  "properties": {
    "overallScore": {"type": "number"},
    "detailedScores": {
      "type": "array",
      "minItems": 1,
      "items": {
        "type": "object",
        "required": ["score"],
        "properties": {
          "category": {"type": "string"},
          "score": {"type": "number"}
        }
      }
    }
  }
}`

var analysisSchemaLoader = gojsonschema.NewStringLoader(analysisSchema)

type rawAnalysis struct {
	DetailedScores []struct {
		Category string  `json:"category"`
		Score    float64 `json:"score"`
	} `json:"detailedScores"`
	MissingKeywords json.RawMessage `json:"missingKeywords"`
	Suggestions     json.RawMessage `json:"suggestions"`
}

// decodeAnalysis reports ok=false for anything that does not fit the shape;
// callers fall back instead of failing.
func decodeAnalysis(text string) (rawAnalysis, bool) {
	var out rawAnalysis
	payload, ok := extractJSON(text, '{', '}')
	if !ok {
		return out, false
	}
	res, err := gojsonschema.Validate(analysisSchemaLoader, gojsonschema.NewStringLoader(payload))
	if err != nil || !res.Valid() {
		return out, false
	}
	if err := json.Unmarshal([]byte(payload), &out); err != nil {
		return out, false
	}
	return out, true
}

// stringList decodes a JSON array made only of strings.
func stringList(raw json.RawMessage) ([]string, bool) {
	if len(raw) == 0 {
		return nil, false
	}
	var out []string
	if err := json.Unmarshal(raw, &out); err != nil || out == nil {
		return nil, false
	}
	return out, true
}
