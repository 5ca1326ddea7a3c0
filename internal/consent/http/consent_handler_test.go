package http

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	consentDomain "github.com/pitchside/medvault/internal/consent/domain"
	"github.com/pitchside/medvault/internal/consent/http/dto"
	"github.com/pitchside/medvault/internal/consent/usecase/mocks"
	vaultHTTP "github.com/pitchside/medvault/internal/vault/http"
)

// setupTestHandler creates a test handler with mocked dependencies.
func setupTestHandler(t *testing.T) (*ConsentHandler, *mocks.MockConsentUseCase) {
	t.Helper()

	gin.SetMode(gin.TestMode)

	mockUseCase := new(mocks.MockConsentUseCase)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return NewConsentHandler(mockUseCase, logger), mockUseCase
}

func createTestContext(method, path string, body interface{}) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	var bodyReader io.Reader
	if body != nil {
		bodyBytes, _ := json.Marshal(body)
		bodyReader = bytes.NewReader(bodyBytes)
	}

	req := httptest.NewRequest(method, path, bodyReader)
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	return c, w
}

func withTestActor(c *gin.Context, actor *vaultHTTP.Actor) {
	c.Request = c.Request.WithContext(vaultHTTP.WithActor(c.Request.Context(), actor))
}

func TestConsentHandler_CreateHandler(t *testing.T) {
	actor := &vaultHTTP.Actor{
		UserID:   "user-1",
		TenantID: "tenant-1",
		Roles:    []string{vaultHTTP.RoleMedical},
	}

	t.Run("Success_ValidRequest", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)

		now := time.Now().UTC()
		consent := &consentDomain.Consent{
			ID:          uuid.Must(uuid.NewV7()),
			TenantID:    "tenant-1",
			SubjectID:   "player-9",
			ConsentType: consentDomain.TypeTreatment,
			LawfulBasis: consentDomain.LawfulBasisConsent,
			Status:      consentDomain.StatusGranted,
			GrantedBy:   "user-1",
			GrantedAt:   now,
		}

		mockUseCase.On("Create", mock.Anything, mock.AnythingOfType("*usecase.CreateConsentInput")).
			Return(consent, nil).Once()

		c, w := createTestContext(http.MethodPost, "/v1/consents", dto.CreateConsentRequest{
			SubjectID:       "player-9",
			ConsentType:     consentDomain.TypeTreatment,
			ConsentFormText: "I consent to treatment of injury data.",
		})
		withTestActor(c, actor)

		handler.CreateHandler(c)

		assert.Equal(t, http.StatusCreated, w.Code)

		var response dto.ConsentResponse
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, consent.ID.String(), response.ID)
		assert.Equal(t, "GRANTED", response.Status)
	})

	t.Run("Error_UnknownConsentType", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)

		c, w := createTestContext(http.MethodPost, "/v1/consents", dto.CreateConsentRequest{
			SubjectID:   "player-9",
			ConsentType: "marketing",
		})
		withTestActor(c, actor)

		handler.CreateHandler(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockUseCase.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Error_MissingSubject", func(t *testing.T) {
		handler, _ := setupTestHandler(t)

		c, w := createTestContext(http.MethodPost, "/v1/consents", dto.CreateConsentRequest{
			ConsentType: consentDomain.TypeTreatment,
		})
		withTestActor(c, actor)

		handler.CreateHandler(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Error_NoActor", func(t *testing.T) {
		handler, _ := setupTestHandler(t)

		c, w := createTestContext(http.MethodPost, "/v1/consents", dto.CreateConsentRequest{
			SubjectID:   "player-9",
			ConsentType: consentDomain.TypeTreatment,
		})

		handler.CreateHandler(c)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
