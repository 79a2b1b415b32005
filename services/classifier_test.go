package services

import (
	"testing"

	"justice_bot_go/models"

	"github.com/stretchr/testify/assert"
)

func TestClassifyPathwayLandlordTenant(t *testing.T) {
	description := "My landlord refuses to fix the heating in my apartment and is threatening eviction"
	assert.Equal(t, models.PathwayLandlordTenant, ClassifyPathway(description))
}

func TestClassifyPathwayCriminalTakesPrecedence(t *testing.T) {
	// Criminal keywords outrank everything else, even with tenancy words present
	description := "I was arrested and charged after a dispute with my landlord about rent"
	assert.Equal(t, models.PathwayCriminal, ClassifyPathway(description))
}

func TestClassifyPathwayWorkplaceHumanRights(t *testing.T) {
	// Discrimination plus an employment context yields the combined tag
	description := "I faced discrimination at work because of my religion and was then fired"
	assert.Equal(t, models.PathwayHumanRightsWorkplace, ClassifyPathway(description))
}

func TestClassifyPathwayHumanRightsAlone(t *testing.T) {
	description := "A restaurant refused to serve me because of my disability, clear discrimination"
	assert.Equal(t, models.PathwayHumanRights, ClassifyPathway(description))
}

func TestClassifyPathwayEmployment(t *testing.T) {
	description := "My employer terminated me without notice and owes me severance pay"
	assert.Equal(t, models.PathwayEmployment, ClassifyPathway(description))
}

func TestClassifyPathwayDefaultsToCivil(t *testing.T) {
	description := "My neighbour borrowed my lawnmower and never returned it"
	assert.Equal(t, models.PathwayCivil, ClassifyPathway(description))
}

func TestClassifyPathwayCaseInsensitive(t *testing.T) {
	upper := ClassifyPathway("MY LANDLORD WILL NOT RETURN MY DEPOSIT")
	lower := ClassifyPathway("my landlord will not return my deposit")
	assert.Equal(t, lower, upper)
}

func TestClassifyPathwayDeterministic(t *testing.T) {
	description := "Wrongful dismissal after years of harassment at work"
	first := ClassifyPathway(description)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, ClassifyPathway(description))
	}
}
