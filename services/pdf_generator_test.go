package services

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultPDFOptions(t *testing.T) {
	opts := DefaultPDFOptions()
	assert.Equal(t, "portrait", opts.PageOrientation)
	assert.Equal(t, "letter", opts.PageSize)
	assert.Equal(t, 72, opts.MarginTop)
	assert.Equal(t, 72, opts.MarginBottom)
	assert.Equal(t, 72, opts.MarginLeft)
	assert.Equal(t, 72, opts.MarginRight)
}

func TestGeneratePDFSmoke(t *testing.T) {
	chromePath := os.Getenv("CHROME_PATH")
	if chromePath == "" {
		// Skip the heavy test in environments without a browser
		t.Skip("Skipping PDF generation test: CHROME_PATH not set")
	}

	html := "<h1>Hello World</h1>"
	opts := DefaultPDFOptions()

	pdf, err := GeneratePDF(html, opts)
	if err != nil {
		if os.IsNotExist(err) {
			t.Skipf("Skipping: Chrome not found at %s", chromePath)
		}
		t.Errorf("GeneratePDF failed: %v", err)
		return
	}

	assert.NotNil(t, pdf)
	assert.True(t, len(pdf) > 0)
	// PDF header
	assert.Contains(t, string(pdf[:5]), "%PDF-")
}
