package handlers

import (
	"net/http"

	"justice_bot_go/db"
	"justice_bot_go/middleware"
	"justice_bot_go/models"
	"justice_bot_go/services"

	"github.com/labstack/echo/v4"
	"github.com/microcosm-cc/bluemonday"
)

// AI is the LLM-backed analyzer, wired at startup. Nil when no API key is
// configured; the AI analysis endpoint then returns 503.
var AI *services.AIAnalyzer

// intake text is plain text; strip any markup outright
var intakePolicy = bluemonday.StrictPolicy()

type caseIntakeRequest struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	Province     string `json:"province"`
	Municipality string `json:"municipality"`
	LawSection   string `json:"law_section"`
}

// CreateCaseHandler records a new case from the intake form
func CreateCaseHandler(c echo.Context) error {
	user := middleware.GetCurrentUser(c)

	var req caseIntakeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	kase, err := services.CreateCase(db.DB, user.ID, services.CaseIntake{
		Title:        intakePolicy.Sanitize(req.Title),
		Description:  intakePolicy.Sanitize(req.Description),
		Province:     req.Province,
		Municipality: intakePolicy.Sanitize(req.Municipality),
		LawSection:   intakePolicy.Sanitize(req.LawSection),
	})
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusCreated, kase)
}

// ListCasesHandler returns the user's cases
func ListCasesHandler(c echo.Context) error {
	user := middleware.GetCurrentUser(c)

	cases, err := services.ListUserCases(db.DB, user.ID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, cases)
}

// GetCaseHandler returns one case with evidence and pathways
func GetCaseHandler(c echo.Context) error {
	user := middleware.GetCurrentUser(c)

	kase, err := services.GetUserCase(db.DB, user.ID, c.Param("id"))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, kase)
}

type caseStatusRequest struct {
	Status string `json:"status"`
}

// UpdateCaseStatusHandler transitions a case's lifecycle status
func UpdateCaseStatusHandler(c echo.Context) error {
	user := middleware.GetCurrentUser(c)

	var req caseStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	kase, err := services.UpdateCaseStatus(db.DB, user.ID, c.Param("id"), req.Status)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, kase)
}

// analysisResponse is the JSON shape for both analysis variants
type analysisResponse struct {
	Case       *models.Case   `json:"case"`
	Pathway    pathwayPayload `json:"pathway"`
	Strengths  []string       `json:"strengths"`
	Weaknesses []string       `json:"weaknesses"`
}

type pathwayPayload struct {
	PathwayType     string   `json:"pathway_type"`
	Recommendation  string   `json:"recommendation"`
	ConfidenceScore float64  `json:"confidence_score"`
	NextSteps       []string `json:"next_steps"`
	RelevantLaws    []string `json:"relevant_laws"`
	Source          string   `json:"source"`
	TribunalType    string   `json:"tribunal_type"`
}

func toAnalysisResponse(result *services.AnalysisResult) analysisResponse {
	return analysisResponse{
		Case: result.Case,
		Pathway: pathwayPayload{
			PathwayType:     result.Pathway.PathwayType,
			Recommendation:  result.Pathway.Recommendation,
			ConfidenceScore: result.Pathway.ConfidenceScore,
			NextSteps:       result.Pathway.GetNextSteps(),
			RelevantLaws:    result.Pathway.GetRelevantLaws(),
			Source:          result.Pathway.Source,
			TribunalType:    models.TribunalTypeForPathway(result.Pathway.PathwayType),
		},
		Strengths:  result.Strengths,
		Weaknesses: result.Weaknesses,
	}
}

// AnalyzeCaseHandler runs the heuristic analysis pipeline
func AnalyzeCaseHandler(c echo.Context) error {
	user := middleware.GetCurrentUser(c)
	caseID := c.Param("id")

	// Ownership check before any work
	if _, err := services.GetUserCase(db.DB, user.ID, caseID); err != nil {
		return serviceError(c, err)
	}

	result, err := services.AnalyzeCase(db.DB, caseID)
	if err != nil {
		return serviceError(c, err)
	}

	notifyAnalysisReady(c, user.ID, result)

	return c.JSON(http.StatusOK, toAnalysisResponse(result))
}

// AnalyzeCaseAIHandler runs the AI-augmented analysis. Requires the
// full-analysis entitlement.
func AnalyzeCaseAIHandler(c echo.Context) error {
	user := middleware.GetCurrentUser(c)
	caseID := c.Param("id")

	if _, err := services.GetUserCase(db.DB, user.ID, caseID); err != nil {
		return serviceError(c, err)
	}

	entitled, err := services.HasEntitlement(db.DB, user.ID, models.ProductFullAnalysis)
	if err != nil {
		return serviceError(c, err)
	}
	if !entitled {
		return echo.NewHTTPError(http.StatusPaymentRequired, "AI analysis requires the full-analysis product")
	}

	if AI == nil {
		return serviceError(c, services.ErrAINotConfigured)
	}

	result, err := AI.AnalyzeCaseAI(c.Request().Context(), db.DB, caseID)
	if err != nil {
		return serviceError(c, err)
	}

	notifyAnalysisReady(c, user.ID, result)

	return c.JSON(http.StatusOK, toAnalysisResponse(result))
}

// GetCasePathwaysHandler returns the pathway rows from the latest analysis
func GetCasePathwaysHandler(c echo.Context) error {
	user := middleware.GetCurrentUser(c)

	pathways, err := services.GetCasePathways(db.DB, user.ID, c.Param("id"))
	if err != nil {
		return serviceError(c, err)
	}

	payloads := make([]pathwayPayload, 0, len(pathways))
	for i := range pathways {
		p := &pathways[i]
		payloads = append(payloads, pathwayPayload{
			PathwayType:     p.PathwayType,
			Recommendation:  p.Recommendation,
			ConfidenceScore: p.ConfidenceScore,
			NextSteps:       p.GetNextSteps(),
			RelevantLaws:    p.GetRelevantLaws(),
			Source:          p.Source,
			TribunalType:    models.TribunalTypeForPathway(p.PathwayType),
		})
	}
	return c.JSON(http.StatusOK, payloads)
}

// notifyAnalysisReady records the in-app notification and mirrors it by email
func notifyAnalysisReady(c echo.Context, userID string, result *services.AnalysisResult) {
	score := 0
	if result.Case.MeritScore != nil {
		score = *result.Case.MeritScore
	}

	notifications := services.NewNotificationService(db.DB)
	if err := notifications.NotifyAnalysisReady(userID, result.Case.ID, score); err != nil {
		c.Logger().Errorf("failed to create analysis notification: %v", err)
	}

	if cfg := getConfig(c); cfg != nil {
		user := middleware.GetCurrentUser(c)
		services.SendEmailAsync(cfg, services.BuildAnalysisReadyEmail(user.Email, user.FirstName, result.Case.ID, score))
	}
}
