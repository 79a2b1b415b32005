package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"justice_bot_go/models"

	sdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"gorm.io/gorm"
)

// ErrAINotConfigured is returned when no LLM API key is configured
var ErrAINotConfigured = errors.New("AI analysis is not configured")

const aiSystemPrompt = `You are a legal information assistant for self-represented litigants in Ontario, Canada. You do not provide legal advice; you provide legal information and an assessment of case strength.

Respond with ONLY a JSON object matching exactly this schema:
{
  "merit_score": <integer 0-100>,
  "strengths": [<strings>],
  "weaknesses": [<strings>],
  "similar_cases": [<strings, case names with citations>],
  "strategy_steps": [<strings, in order>],
  "relevant_laws": [<strings, statute names with sections>],
  "evidence_needed": [<strings>],
  "timeline": <string, expected duration>,
  "estimated_cost": <string, filing fees and costs>,
  "risk_factors": [<strings>],
  "summary": <string, 2-3 sentences in plain language>
}`

// LLMClient is the minimal completion interface the analyzer needs
type LLMClient interface {
	Complete(ctx context.Context, system, prompt string) (string, error)
}

// anthropicClient implements LLMClient with the official SDK
type anthropicClient struct {
	client sdk.Client
	model  string
}

// NewAnthropicClient creates an LLM client backed by the Anthropic API
func NewAnthropicClient(apiKey, model string) LLMClient {
	return &anthropicClient{
		client: sdk.NewClient(option.WithAPIKey(apiKey)),
		model:  model,
	}
}

func (c *anthropicClient) Complete(ctx context.Context, system, prompt string) (string, error) {
	msg, err := c.client.Messages.New(ctx, sdk.MessageNewParams{
		Model:     sdk.Model(c.model),
		MaxTokens: 2048,
		System: []sdk.TextBlockParam{
			{Text: system},
		},
		Messages: []sdk.MessageParam{
			sdk.NewUserMessage(sdk.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("anthropic request failed: %w", err)
	}

	var sb strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	return sb.String(), nil
}

// AIAnalyzer runs the LLM-augmented analysis variant
type AIAnalyzer struct {
	LLM     LLMClient
	Primary CaseLawSearcher
	// Licensed is nil unless a CanLII API key is configured
	Licensed CaseLawSearcher
}

// NewAIAnalyzer wires the analyzer from its collaborators. licensed may be nil.
func NewAIAnalyzer(llm LLMClient, primary, licensed CaseLawSearcher) *AIAnalyzer {
	return &AIAnalyzer{LLM: llm, Primary: primary, Licensed: licensed}
}

// AnalyzeCaseAI runs the AI-augmented analysis: case-law search enrichment
// followed by one model call, persisted the same way as the heuristic run
// but with source=ai. Search failures degrade to empty result sets; a
// malformed model response is a hard error.
func (a *AIAnalyzer) AnalyzeCaseAI(ctx context.Context, db *gorm.DB, caseID string) (*AnalysisResult, error) {
	if a.LLM == nil {
		return nil, ErrAINotConfigured
	}

	var kase models.Case
	if err := db.First(&kase, "id = ?", caseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCaseNotFound
		}
		return nil, fmt.Errorf("failed to load case: %w", err)
	}
	if kase.IsClosed() {
		return nil, ErrCaseClosed
	}

	pathwayType := ClassifyPathway(kase.Description)
	query := searchQueryFor(pathwayType, kase.Description)

	// Both searches are best-effort: a failed provider contributes nothing
	var caseLaw []CaseLawResult
	if a.Primary != nil {
		results, err := a.Primary.Search(ctx, query, 5)
		if err != nil {
			log.Printf("Primary case-law search failed, continuing without: %v", err)
		} else {
			caseLaw = append(caseLaw, results...)
		}
	}
	if a.Licensed != nil {
		results, err := a.Licensed.Search(ctx, query, 5)
		if err != nil {
			log.Printf("Licensed case-law search failed, continuing without: %v", err)
		} else {
			caseLaw = append(caseLaw, results...)
		}
	}

	prompt := buildAIPrompt(&kase, pathwayType, caseLaw)
	response, err := a.LLM.Complete(ctx, aiSystemPrompt, prompt)
	if err != nil {
		return nil, err
	}

	assessment, err := ParseAIAssessment(response)
	if err != nil {
		return nil, err
	}

	score := assessment.MeritScore
	if score < models.MeritScoreMin {
		score = models.MeritScoreMin
	}
	if score > models.MeritScoreMax {
		score = models.MeritScoreMax
	}

	pathway := &models.LegalPathway{
		CaseID:          kase.ID,
		PathwayType:     pathwayType,
		Recommendation:  assessment.Summary,
		ConfidenceScore: float64(score) / 100.0,
		Source:          models.PathwaySourceAI,
	}
	if err := pathway.SetNextSteps(assessment.StrategySteps); err != nil {
		return nil, fmt.Errorf("failed to encode strategy steps: %w", err)
	}
	if err := pathway.SetRelevantLaws(assessment.RelevantLaws); err != nil {
		return nil, fmt.Errorf("failed to encode relevant laws: %w", err)
	}

	if err := persistAnalysis(db, &kase, pathway, score); err != nil {
		return nil, err
	}

	return &AnalysisResult{
		Case:       &kase,
		Pathway:    pathway,
		Strengths:  assessment.Strengths,
		Weaknesses: assessment.Weaknesses,
	}, nil
}

// searchQueryFor builds a short case-law query from the pathway and the
// first words of the description
func searchQueryFor(pathwayType, description string) string {
	words := strings.Fields(description)
	if len(words) > 12 {
		words = words[:12]
	}
	return strings.ReplaceAll(pathwayType, "-", " ") + " " + strings.Join(words, " ")
}

func buildAIPrompt(kase *models.Case, pathwayType string, caseLaw []CaseLawResult) string {
	var sb strings.Builder
	sb.WriteString("Case description:\n")
	sb.WriteString(kase.Description)
	sb.WriteString(fmt.Sprintf("\n\nJurisdiction: %s", kase.Province))
	if kase.Municipality != "" {
		sb.WriteString(fmt.Sprintf(", %s", kase.Municipality))
	}
	sb.WriteString(fmt.Sprintf("\nClassified pathway: %s\n", pathwayType))
	if kase.LawSection != "" {
		sb.WriteString(fmt.Sprintf("Cited law section: %s\n", kase.LawSection))
	}

	if len(caseLaw) > 0 {
		sb.WriteString("\nPotentially similar cases from case-law search:\n")
		for _, r := range caseLaw {
			sb.WriteString(fmt.Sprintf("- %s", r.Title))
			if r.Citation != "" {
				sb.WriteString(fmt.Sprintf(", %s", r.Citation))
			}
			if r.Snippet != "" {
				sb.WriteString(fmt.Sprintf(": %s", r.Snippet))
			}
			sb.WriteString("\n")
		}
	}

	sb.WriteString("\nAssess this case and respond with the JSON object only.")
	return sb.String()
}
