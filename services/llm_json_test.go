package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractJSONPayloadFencedBlock(t *testing.T) {
	response := "Here is my assessment:\n```json\n{\"merit_score\": 72}\n```\nLet me know if you need more."
	payload, err := ExtractJSONPayload(response)
	assert.NoError(t, err)
	assert.JSONEq(t, `{"merit_score": 72}`, string(payload))
}

func TestExtractJSONPayloadFencedBlockNoLanguageTag(t *testing.T) {
	response := "```\n{\"merit_score\": 55}\n```"
	payload, err := ExtractJSONPayload(response)
	assert.NoError(t, err)
	assert.JSONEq(t, `{"merit_score": 55}`, string(payload))
}

func TestExtractJSONPayloadBareJSONWithProse(t *testing.T) {
	response := `Based on the facts provided, {"merit_score": 61, "summary": "A fair case."} is my view.`
	payload, err := ExtractJSONPayload(response)
	assert.NoError(t, err)
	assert.JSONEq(t, `{"merit_score": 61, "summary": "A fair case."}`, string(payload))
}

func TestExtractJSONPayloadNestedBraces(t *testing.T) {
	response := `{"outer": {"inner": "value"}, "n": 1}`
	payload, err := ExtractJSONPayload(response)
	assert.NoError(t, err)
	assert.JSONEq(t, response, string(payload))
}

func TestExtractJSONPayloadBracesInsideStrings(t *testing.T) {
	response := `{"summary": "tenant said \"fix {the unit}\" twice", "merit_score": 40}`
	payload, err := ExtractJSONPayload(response)
	assert.NoError(t, err)
	assert.JSONEq(t, response, string(payload))
}

func TestExtractJSONPayloadNoJSON(t *testing.T) {
	_, err := ExtractJSONPayload("I cannot assess this case.")
	assert.ErrorIs(t, err, ErrLLMMalformed)
}

func TestExtractJSONPayloadUnbalanced(t *testing.T) {
	_, err := ExtractJSONPayload(`{"merit_score": 50`)
	assert.ErrorIs(t, err, ErrLLMMalformed)
}

func TestParseAIAssessment(t *testing.T) {
	response := "```json\n" + `{
		"merit_score": 68,
		"strengths": ["Documented incidents"],
		"weaknesses": ["No witnesses"],
		"strategy_steps": ["File HRTO Form 1"],
		"relevant_laws": ["Human Rights Code"],
		"timeline": "12-18 months",
		"summary": "A reasonably strong claim."
	}` + "\n```"

	assessment, err := ParseAIAssessment(response)
	assert.NoError(t, err)
	assert.Equal(t, 68, assessment.MeritScore)
	assert.Equal(t, []string{"Documented incidents"}, assessment.Strengths)
	assert.Equal(t, []string{"File HRTO Form 1"}, assessment.StrategySteps)
	assert.Equal(t, "A reasonably strong claim.", assessment.Summary)
}

func TestParseAIAssessmentClampsScore(t *testing.T) {
	high, err := ParseAIAssessment(`{"merit_score": 250}`)
	assert.NoError(t, err)
	assert.Equal(t, 100, high.MeritScore)

	low, err := ParseAIAssessment(`{"merit_score": -10}`)
	assert.NoError(t, err)
	assert.Equal(t, 0, low.MeritScore)
}

func TestParseAIAssessmentMalformedIsHardError(t *testing.T) {
	// A response with no JSON must never turn into a default assessment
	assessment, err := ParseAIAssessment("The case looks strong, around 70 out of 100.")
	assert.ErrorIs(t, err, ErrLLMMalformed)
	assert.Nil(t, assessment)

	assessment, err = ParseAIAssessment("```json\nnot json at all\n```")
	assert.ErrorIs(t, err, ErrLLMMalformed)
	assert.Nil(t, assessment)
}
