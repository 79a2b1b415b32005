package services

import (
	"hash/fnv"
	"strings"

	"justice_bot_go/models"
)

// Merit scoring constants
const (
	MeritBaseScore = 50

	evidenceBonusSome = 15 // 1-2 files
	evidenceBonusMany = 25 // more than 2 files
	lawSectionBonus   = 10
	longDescBonus     = 10 // description over 200 chars
	longDescThreshold = 200
	weakDescThreshold = 100

	ltbOntarioBonus   = 5
	humanRightsBonus  = 8
	criminalBonusEach = 6
	criminalBonusCap  = 30

	perturbationRange = 7 // deterministic adjustment in [-7, +7]
)

// criminalStrengthKeywords are description signals that strengthen a
// criminal matter; each hit adds criminalBonusEach, capped at criminalBonusCap.
var criminalStrengthKeywords = []string{
	"witness", "alibi", "self-defence", "self defense", "charter",
	"disclosure", "no prior", "first offence",
}

// MeritInput is everything the scorer reads about a case
type MeritInput struct {
	CaseID        string
	Description   string
	EvidenceCount int
	LawSection    string
	Province      string
	PathwayType   string
}

// MeritResult is the scored assessment with its narrative
type MeritResult struct {
	Score      int
	Strengths  []string
	Weaknesses []string
}

// scoreRule evaluates one scoring condition. Each rule yields both the point
// delta and the user-facing narrative from the same predicate, so the score
// and the strengths/weaknesses lists cannot drift apart.
type scoreRule struct {
	delta    int
	strength string
	weakness string
	applies  func(in MeritInput) bool
}

func meritRules() []scoreRule {
	return []scoreRule{
		{
			delta:    evidenceBonusSome,
			strength: "You have supporting evidence on file",
			applies: func(in MeritInput) bool {
				return in.EvidenceCount >= 1 && in.EvidenceCount <= 2
			},
		},
		{
			delta:    evidenceBonusMany,
			strength: "You have substantial supporting evidence on file",
			applies: func(in MeritInput) bool {
				return in.EvidenceCount > 2
			},
		},
		{
			delta:    0,
			weakness: "No evidence has been uploaded yet; documents, photos or messages would strengthen your case",
			applies: func(in MeritInput) bool {
				return in.EvidenceCount == 0
			},
		},
		{
			delta:    lawSectionBonus,
			strength: "Your case references a specific section of the law",
			applies: func(in MeritInput) bool {
				return strings.TrimSpace(in.LawSection) != ""
			},
		},
		{
			delta:    longDescBonus,
			strength: "Your description is detailed, which helps establish the facts",
			applies: func(in MeritInput) bool {
				return len(in.Description) > longDescThreshold
			},
		},
		{
			// No point penalty, narrative only
			delta:    0,
			weakness: "Your description is brief; adding dates, names and details would strengthen your case",
			applies: func(in MeritInput) bool {
				return len(in.Description) < weakDescThreshold
			},
		},
		{
			delta:    ltbOntarioBonus,
			strength: "Ontario's Residential Tenancies Act provides strong tenant protections",
			applies: func(in MeritInput) bool {
				return in.PathwayType == models.PathwayLandlordTenant && in.Province == "ON"
			},
		},
		{
			delta:    humanRightsBonus,
			strength: "Human rights claims are assessed under the Ontario Human Rights Code's broad protections",
			applies: func(in MeritInput) bool {
				return in.PathwayType == models.PathwayHumanRights ||
					in.PathwayType == models.PathwayHumanRightsWorkplace
			},
		},
	}
}

// ScoreMerit computes the merit score and its narrative for a case.
// The result is always in [MeritScoreMin, MeritScoreMax] and is deterministic:
// the per-case adjustment is derived from an FNV hash of the case ID rather
// than a random source, so identical input always produces the same score.
func ScoreMerit(in MeritInput) MeritResult {
	score := MeritBaseScore
	var strengths, weaknesses []string

	for _, rule := range meritRules() {
		if !rule.applies(in) {
			continue
		}
		score += rule.delta
		if rule.strength != "" {
			strengths = append(strengths, rule.strength)
		}
		if rule.weakness != "" {
			weaknesses = append(weaknesses, rule.weakness)
		}
	}

	// Criminal matters get cumulative bonuses for favourable signals
	if in.PathwayType == models.PathwayCriminal {
		bonus := criminalKeywordBonus(in.Description)
		score += bonus
		if bonus > 0 {
			strengths = append(strengths, "Your description mentions factors that often help criminal defences")
		}
		weaknesses = append(weaknesses, "Criminal matters are complex; consider duty counsel or legal aid")
	}

	score += perturbation(in.CaseID)

	if score < models.MeritScoreMin {
		score = models.MeritScoreMin
	}
	if score > models.MeritScoreMax {
		score = models.MeritScoreMax
	}

	return MeritResult{Score: score, Strengths: strengths, Weaknesses: weaknesses}
}

// criminalKeywordBonus sums per-keyword bonuses, capped
func criminalKeywordBonus(description string) int {
	text := strings.ToLower(description)
	bonus := 0
	for _, kw := range criminalStrengthKeywords {
		if strings.Contains(text, kw) {
			bonus += criminalBonusEach
		}
	}
	if bonus > criminalBonusCap {
		bonus = criminalBonusCap
	}
	return bonus
}

// perturbation maps the case ID to a stable adjustment in
// [-perturbationRange, +perturbationRange]. Scores keep the spread users
// expect without being random: re-scoring the same case never moves the number.
func perturbation(caseID string) int {
	if caseID == "" {
		return 0
	}
	h := fnv.New32a()
	h.Write([]byte(caseID))
	span := 2*perturbationRange + 1
	return int(h.Sum32()%uint32(span)) - perturbationRange
}
