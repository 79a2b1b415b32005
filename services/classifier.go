package services

import (
	"strings"

	"justice_bot_go/models"
)

// Keyword sets for pathway classification. Matching is plain lower-cased
// substring search; stems like "discriminat" cover discriminated/discrimination.
var (
	criminalKeywords = []string{
		"criminal", "charge", "arrest", "police", "assault", "theft",
		"fraud", "dui", "impaired driving", "bail",
	}
	landlordTenantKeywords = []string{
		"landlord", "tenant", "evict", "rent", "lease", "rental unit",
		"n4", "n5", "n12", "l1", "l2", "maintenance request",
	}
	humanRightsKeywords = []string{
		"discriminat", "harass", "human rights", "racial", "disability",
		"accommodat", "creed", "gender identity",
	}
	workplaceKeywords = []string{
		"work", "job", "employer", "workplace", "coworker", "supervisor",
	}
	employmentKeywords = []string{
		"fired", "terminated", "dismissal", "severance", "unpaid wages",
		"overtime", "layoff", "constructive dismissal",
	}
)

// ClassifyPathway assigns a pathway tag to a free-text case description.
// Classification is deterministic: identical text always yields the same tag.
// Precedence order: criminal, landlord-tenant, workplace human rights,
// human rights, employment, with civil as the fallback.
func ClassifyPathway(description string) string {
	text := strings.ToLower(description)

	if containsAny(text, criminalKeywords) {
		return models.PathwayCriminal
	}
	if containsAny(text, landlordTenantKeywords) {
		return models.PathwayLandlordTenant
	}
	if containsAny(text, humanRightsKeywords) {
		if containsAny(text, workplaceKeywords) {
			return models.PathwayHumanRightsWorkplace
		}
		return models.PathwayHumanRights
	}
	if containsAny(text, employmentKeywords) {
		return models.PathwayEmployment
	}
	return models.PathwayCivil
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
