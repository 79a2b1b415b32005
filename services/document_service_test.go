package services

import (
	"testing"

	"justice_bot_go/models"

	"github.com/stretchr/testify/assert"
)

func TestRenderFormHTML(t *testing.T) {
	form := &models.Form{
		Code:         "LTB-T2",
		Title:        "Application About Tenant Rights",
		TribunalName: "Landlord and Tenant Board",
	}
	prefill := &models.FormPrefillData{}
	err := prefill.SetFields(map[string]string{
		"applicant_name":  "Dana Tenant",
		"applicant_email": "dana@example.com",
		"municipality":    "Hamilton",
		"province":        "ON",
		"description":     "The landlord shut off the heat in January.",
		"filing_date":     "2026-02-01",
	})
	assert.NoError(t, err)

	html, err := RenderFormHTML(form, prefill)
	assert.NoError(t, err)
	assert.Contains(t, html, "LTB-T2")
	assert.Contains(t, html, "Application About Tenant Rights")
	assert.Contains(t, html, "Landlord and Tenant Board")
	assert.Contains(t, html, "Dana Tenant")
	assert.Contains(t, html, "Hamilton")
	assert.Contains(t, html, "The landlord shut off the heat in January.")
}

func TestRenderFormHTMLOmitsEmptyOptionalRows(t *testing.T) {
	form := &models.Form{Code: "SCC-7A", Title: "Plaintiff's Claim", TribunalName: "Small Claims Court"}
	prefill := &models.FormPrefillData{}
	prefill.SetFields(map[string]string{
		"applicant_name":  "Sam Claimant",
		"applicant_email": "sam@example.com",
		"province":        "ON",
		"description":     "Unpaid invoice.",
		"filing_date":     "2026-02-01",
	})

	html, err := RenderFormHTML(form, prefill)
	assert.NoError(t, err)
	assert.NotContains(t, html, "Municipality")
	assert.NotContains(t, html, "Law section cited")
}

func TestRenderFormHTMLEscapesFieldValues(t *testing.T) {
	form := &models.Form{Code: "HRTO-F1", Title: "Application", TribunalName: "Human Rights Tribunal of Ontario"}
	prefill := &models.FormPrefillData{}
	prefill.SetFields(map[string]string{
		"applicant_name":  "<script>alert(1)</script>",
		"applicant_email": "x@example.com",
		"province":        "ON",
		"description":     "d",
		"filing_date":     "2026-02-01",
	})

	html, err := RenderFormHTML(form, prefill)
	assert.NoError(t, err)
	assert.NotContains(t, html, "<script>alert(1)</script>")
}
