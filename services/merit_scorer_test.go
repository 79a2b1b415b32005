package services

import (
	"fmt"
	"strings"
	"testing"

	"justice_bot_go/models"

	"github.com/stretchr/testify/assert"
)

func TestScoreMeritWithinBounds(t *testing.T) {
	// Sweep a range of inputs; every score must land in the published range
	for i := 0; i < 50; i++ {
		result := ScoreMerit(MeritInput{
			CaseID:        fmt.Sprintf("case-%d", i),
			Description:   strings.Repeat("detail ", i*10),
			EvidenceCount: i % 5,
			LawSection:    "s. 20",
			Province:      "ON",
			PathwayType:   models.PathwayLandlordTenant,
		})
		assert.GreaterOrEqual(t, result.Score, models.MeritScoreMin)
		assert.LessOrEqual(t, result.Score, models.MeritScoreMax)
	}
}

func TestScoreMeritDeterministic(t *testing.T) {
	input := MeritInput{
		CaseID:        "11111111-2222-3333-4444-555555555555",
		Description:   "My landlord has ignored repeated maintenance requests since January.",
		EvidenceCount: 2,
		Province:      "ON",
		PathwayType:   models.PathwayLandlordTenant,
	}

	first := ScoreMerit(input)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first.Score, ScoreMerit(input).Score)
	}
}

func TestScoreMeritEvidenceMonotonic(t *testing.T) {
	base := MeritInput{
		CaseID:      "monotonic-case",
		Description: "Dispute over an unpaid invoice for contract work completed last spring.",
		Province:    "ON",
		PathwayType: models.PathwayCivil,
	}

	// Same case, more evidence never lowers the score
	none := base
	none.EvidenceCount = 0
	some := base
	some.EvidenceCount = 2
	many := base
	many.EvidenceCount = 5

	assert.GreaterOrEqual(t, ScoreMerit(some).Score, ScoreMerit(none).Score)
	assert.GreaterOrEqual(t, ScoreMerit(many).Score, ScoreMerit(some).Score)
}

func TestScoreMeritNoEvidenceIsWeakness(t *testing.T) {
	result := ScoreMerit(MeritInput{
		CaseID:      "weak-case",
		Description: "Short description.",
		Province:    "ON",
		PathwayType: models.PathwayCivil,
	})

	assert.NotEmpty(t, result.Weaknesses)
	joined := strings.Join(result.Weaknesses, " ")
	assert.Contains(t, joined, "evidence")
	assert.Contains(t, joined, "brief")
}

func TestScoreMeritEvidenceIsStrength(t *testing.T) {
	result := ScoreMerit(MeritInput{
		CaseID:        "strong-case",
		Description:   strings.Repeat("The landlord failed to repair the unit. ", 10),
		EvidenceCount: 4,
		LawSection:    "RTA s. 20",
		Province:      "ON",
		PathwayType:   models.PathwayLandlordTenant,
	})

	joined := strings.Join(result.Strengths, " ")
	assert.Contains(t, joined, "evidence")
	assert.Contains(t, joined, "section of the law")
	assert.Empty(t, result.Weaknesses)
}

func TestScoreMeritCriminalKeywordCap(t *testing.T) {
	// Every criminal strength keyword present; the bonus must stay capped
	description := "witness alibi self-defence charter disclosure no prior first offence"
	capped := ScoreMerit(MeritInput{
		CaseID:      "criminal-capped",
		Description: description,
		Province:    "ON",
		PathwayType: models.PathwayCriminal,
	})
	assert.LessOrEqual(t, capped.Score, models.MeritScoreMax)

	// Criminal matters always carry the complexity caution
	joined := strings.Join(capped.Weaknesses, " ")
	assert.Contains(t, joined, "duty counsel")
}

func TestPerturbationStableAndBounded(t *testing.T) {
	for _, id := range []string{"a", "b", "case-123", "11111111-2222-3333-4444-555555555555"} {
		p := perturbation(id)
		assert.GreaterOrEqual(t, p, -perturbationRange)
		assert.LessOrEqual(t, p, perturbationRange)
		assert.Equal(t, p, perturbation(id))
	}
	assert.Equal(t, 0, perturbation(""))
}
