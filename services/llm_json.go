package services

import (
	"encoding/json"
	"errors"
	"regexp"
	"strings"
)

// ErrLLMMalformed is returned when a model response contains no parseable
// JSON payload. Callers must treat this as a hard failure, never substitute
// a default assessment.
var ErrLLMMalformed = errors.New("model response contains no parseable JSON")

var fencedJSONPattern = regexp.MustCompile("(?s)```(?:json)?\\s*(\\{.*?\\})\\s*```")

// AIAssessment is the JSON schema the model is instructed to return
type AIAssessment struct {
	MeritScore     int      `json:"merit_score"`
	Strengths      []string `json:"strengths"`
	Weaknesses     []string `json:"weaknesses"`
	SimilarCases   []string `json:"similar_cases"`
	StrategySteps  []string `json:"strategy_steps"`
	RelevantLaws   []string `json:"relevant_laws"`
	EvidenceNeeded []string `json:"evidence_needed"`
	Timeline       string   `json:"timeline"`
	EstimatedCost  string   `json:"estimated_cost"`
	RiskFactors    []string `json:"risk_factors"`
	Summary        string   `json:"summary"`
}

// ExtractJSONPayload pulls the JSON object out of a model response. Models
// sometimes wrap output in a fenced code block and sometimes return bare
// JSON with surrounding prose; both shapes are accepted. Returns
// ErrLLMMalformed when neither yields a JSON object.
func ExtractJSONPayload(response string) ([]byte, error) {
	if m := fencedJSONPattern.FindStringSubmatch(response); m != nil {
		return []byte(m[1]), nil
	}

	// Fall back to the first balanced {...} span
	start := strings.Index(response, "{")
	if start == -1 {
		return nil, ErrLLMMalformed
	}
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(response); i++ {
		ch := response[i]
		if escaped {
			escaped = false
			continue
		}
		switch ch {
		case '\\':
			if inString {
				escaped = true
			}
		case '"':
			inString = !inString
		case '{':
			if !inString {
				depth++
			}
		case '}':
			if !inString {
				depth--
				if depth == 0 {
					return []byte(response[start : i+1]), nil
				}
			}
		}
	}
	return nil, ErrLLMMalformed
}

// ParseAIAssessment extracts and decodes the assessment JSON from a model
// response, validating the score range
func ParseAIAssessment(response string) (*AIAssessment, error) {
	payload, err := ExtractJSONPayload(response)
	if err != nil {
		return nil, err
	}

	var assessment AIAssessment
	if err := json.Unmarshal(payload, &assessment); err != nil {
		return nil, ErrLLMMalformed
	}

	// Clamp the model's score into the published range
	if assessment.MeritScore < 0 {
		assessment.MeritScore = 0
	}
	if assessment.MeritScore > 100 {
		assessment.MeritScore = 100
	}

	return &assessment, nil
}
