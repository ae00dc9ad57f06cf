package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/CrossCheckCME/case_service/internal/apperr"
	"github.com/CrossCheckCME/case_service/internal/domain"
	"github.com/CrossCheckCME/case_service/internal/dto"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubCaseService returns canned results per method; handler tests only
// check the HTTP mapping, not the business rules.
type stubCaseService struct {
	cases    []domain.Case
	caseOut  *domain.Case
	terms    *domain.TermsOfService
	settings *domain.AdminSettings
	err      error

	gotUserID  string
	gotCaseID  string
	gotTermsID string
	gotAgreed  bool
}

func (s *stubCaseService) ListCases(userID string) ([]domain.Case, error) {
	s.gotUserID = userID
	return s.cases, s.err
}

func (s *stubCaseService) GetCase(userID, caseID string) (*domain.Case, error) {
	s.gotUserID, s.gotCaseID = userID, caseID
	return s.caseOut, s.err
}

func (s *stubCaseService) CreateCase(userID string, input dto.CreateCaseRequest) (*domain.Case, error) {
	s.gotUserID = userID
	return s.caseOut, s.err
}

func (s *stubCaseService) DeleteCase(userID, caseID string) error {
	s.gotUserID, s.gotCaseID = userID, caseID
	return s.err
}

func (s *stubCaseService) UpdateInstructions(userID, caseID, instructions string) (*domain.Case, error) {
	s.gotUserID, s.gotCaseID = userID, caseID
	return s.caseOut, s.err
}

func (s *stubCaseService) SetCurrentStep(userID, caseID, stepID string) (*domain.Case, error) {
	s.gotUserID, s.gotCaseID = userID, caseID
	return s.caseOut, s.err
}

func (s *stubCaseService) AgreeToTerms(userID, caseID, termsID string, agreed bool) (*domain.Case, error) {
	s.gotUserID, s.gotCaseID = userID, caseID
	s.gotTermsID, s.gotAgreed = termsID, agreed
	return s.caseOut, s.err
}

func (s *stubCaseService) LatestTerms() (*domain.TermsOfService, error) {
	return s.terms, s.err
}

func (s *stubCaseService) Availability() (*domain.AdminSettings, error) {
	return s.settings, s.err
}

// newCaseApp wires the handler behind a middleware that injects a fixed
// session user, the way the auth middleware would.
func newCaseApp(svc *stubCaseService, userID string) *fiber.App {
	app := fiber.New()
	api := app.Group("/api", func(ctx *fiber.Ctx) error {
		if userID != "" {
			ctx.Locals("userID", userID)
		}
		return ctx.Next()
	})
	NewCaseHandler(svc).SetupRoutes(api)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path, body string) (*http.Response, map[string]any) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	res, err := app.Test(req, -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	var decoded map[string]any
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(t, json.Unmarshal(raw, &decoded))
	}
	return res, decoded
}

func TestDeleteCase_HTTPMapping(t *testing.T) {
	svc := &stubCaseService{}
	app := newCaseApp(svc, "u1")

	res, body := doJSON(t, app, http.MethodDelete, "/api/cases/c1", "")
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "Case deleted successfully", body["message"])
	assert.Equal(t, "u1", svc.gotUserID)
	assert.Equal(t, "c1", svc.gotCaseID)

	svc.err = apperr.NotFound("Case not found, or not in draft status. Only draft cases can be deleted.")
	res, body = doJSON(t, app, http.MethodDelete, "/api/cases/c1", "")
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
	assert.Contains(t, body["error"], "draft")
}

func TestUpdateInstructions_HTTPMapping(t *testing.T) {
	instructions := "do the thing"
	svc := &stubCaseService{caseOut: &domain.Case{ID: "c1", UserID: "u1", CustomInstructions: &instructions}}
	app := newCaseApp(svc, "u1")

	res, body := doJSON(t, app, http.MethodPut, "/api/cases/c1/instructions",
		`{"instructions":"do the thing"}`)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "do the thing", body["custom_instructions"])

	svc.err = apperr.Partial("Instructions updated, but failed to return updated case data.")
	res, body = doJSON(t, app, http.MethodPut, "/api/cases/c1/instructions",
		`{"instructions":"do the thing"}`)
	assert.Equal(t, http.StatusMultiStatus, res.StatusCode)
	assert.Contains(t, body["message"], "Instructions updated")
}

func TestAgreeTerms_RequiresBooleanAgreed(t *testing.T) {
	svc := &stubCaseService{caseOut: &domain.Case{ID: "c1", UserID: "u1"}}
	app := newCaseApp(svc, "u1")

	// missing field
	res, body := doJSON(t, app, http.MethodPost, "/api/cases/c1/agree-terms",
		`{"termsId":"t1"}`)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Contains(t, body["error"], "'agreed' must be a boolean")

	// wrong type
	res, _ = doJSON(t, app, http.MethodPost, "/api/cases/c1/agree-terms",
		`{"termsId":"t1","agreed":"yes"}`)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)

	// explicit false is a valid retraction, not a missing field
	res, _ = doJSON(t, app, http.MethodPost, "/api/cases/c1/agree-terms",
		`{"agreed":false}`)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.False(t, svc.gotAgreed)

	res, _ = doJSON(t, app, http.MethodPost, "/api/cases/c1/agree-terms",
		`{"termsId":"t1","agreed":true}`)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.True(t, svc.gotAgreed)
	assert.Equal(t, "t1", svc.gotTermsID)
}

func TestGetCase_NotFoundMapping(t *testing.T) {
	svc := &stubCaseService{err: apperr.NotFound("Case not found or access denied.")}
	app := newCaseApp(svc, "u1")

	res, body := doJSON(t, app, http.MethodGet, "/api/cases/someone-elses", "")
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
	assert.Equal(t, "Case not found or access denied.", body["error"])
}

func TestCreateCase_EmptyBodyAllowed(t *testing.T) {
	svc := &stubCaseService{caseOut: &domain.Case{ID: "c1", UserID: "u1", Status: domain.CaseStatusDraft}}
	app := newCaseApp(svc, "u1")

	res, body := doJSON(t, app, http.MethodPost, "/api/cases/", "")
	assert.Equal(t, http.StatusCreated, res.StatusCode)
	assert.Equal(t, "draft", body["status"])
}

func TestCaseRoutes_RequireSession(t *testing.T) {
	svc := &stubCaseService{}
	app := newCaseApp(svc, "")

	res, body := doJSON(t, app, http.MethodGet, "/api/cases/", "")
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
	assert.Equal(t, "Unauthorized", body["error"])
}

func TestLatestTermsAndAvailability(t *testing.T) {
	svc := &stubCaseService{
		terms:    &domain.TermsOfService{ID: "tos-1", Version: "3.0", IsLatest: true},
		settings: &domain.AdminSettings{SingletonID: true, IsAvailable: true},
	}
	app := newCaseApp(svc, "u1")

	res, body := doJSON(t, app, http.MethodGet, "/api/terms/latest", "")
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "3.0", body["version"])

	res, _ = doJSON(t, app, http.MethodGet, "/api/availability", "")
	assert.Equal(t, http.StatusOK, res.StatusCode)
}
