package services

import (
	"bytes"
	"fmt"
	"html/template"

	"justice_bot_go/models"
)

// formDocumentTemplate lays out a prefilled tribunal form as a printable
// document. Field escaping is handled by html/template; the prefill values
// are plain text extracted at intake.
const formDocumentTemplate = `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <style>
        @page {
            margin: 1in;
        }
        body {
            font-family: "Times New Roman", Times, serif;
            font-size: 12pt;
            line-height: 1.5;
            color: #000;
        }
        h1 {
            font-size: 16pt;
            font-weight: bold;
            text-align: center;
            margin-bottom: 6pt;
        }
        .tribunal {
            text-align: center;
            font-size: 13pt;
            margin-bottom: 24pt;
        }
        .form-code {
            text-align: right;
            font-size: 10pt;
            color: #444;
        }
        table {
            width: 100%;
            border-collapse: collapse;
            margin-bottom: 18pt;
        }
        th, td {
            border: 1px solid #000;
            padding: 6pt;
            text-align: left;
            vertical-align: top;
        }
        th {
            background-color: #f0f0f0;
            font-weight: bold;
            width: 2.2in;
        }
        .description {
            white-space: pre-wrap;
        }
        .disclaimer {
            margin-top: 36pt;
            font-size: 9pt;
            color: #444;
            border-top: 1px solid #000;
            padding-top: 6pt;
        }
        .signature-line {
            border-top: 1px solid #000;
            width: 3in;
            margin-top: 48pt;
            padding-top: 6pt;
        }
    </style>
</head>
<body>
    <div class="form-code">{{.Form.Code}}</div>
    <h1>{{.Form.Title}}</h1>
    <div class="tribunal">{{.Form.TribunalName}}</div>

    <table>
        <tr><th>Applicant name</th><td>{{index .Fields "applicant_name"}}</td></tr>
        <tr><th>Email</th><td>{{index .Fields "applicant_email"}}</td></tr>
        {{if index .Fields "municipality"}}<tr><th>Municipality</th><td>{{index .Fields "municipality"}}</td></tr>{{end}}
        <tr><th>Province</th><td>{{index .Fields "province"}}</td></tr>
        {{if index .Fields "matter_title"}}<tr><th>Matter</th><td>{{index .Fields "matter_title"}}</td></tr>{{end}}
        {{if index .Fields "law_section"}}<tr><th>Law section cited</th><td>{{index .Fields "law_section"}}</td></tr>{{end}}
        <tr><th>Date prepared</th><td>{{index .Fields "filing_date"}}</td></tr>
    </table>

    <h1 style="font-size: 13pt; text-align: left;">Details of the application</h1>
    <p class="description">{{index .Fields "description"}}</p>

    <div class="signature-line">Signature of applicant</div>

    <div class="disclaimer">
        This document was prepared with Justice-Bot, a legal information tool.
        It is not legal advice. Review all fields before filing with the
        {{.Form.TribunalName}}.
    </div>
</body>
</html>`

var formTemplate = template.Must(template.New("form").Parse(formDocumentTemplate))

type formDocumentData struct {
	Form   *models.Form
	Fields map[string]string
}

// RenderFormHTML fills the form document template with a case's prefill data
func RenderFormHTML(form *models.Form, prefill *models.FormPrefillData) (string, error) {
	var buf bytes.Buffer
	err := formTemplate.Execute(&buf, formDocumentData{
		Form:   form,
		Fields: prefill.GetFields(),
	})
	if err != nil {
		return "", fmt.Errorf("failed to render form document: %w", err)
	}
	return buf.String(), nil
}
