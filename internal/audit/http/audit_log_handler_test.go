package http

import (
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

	auditDomain "github.com/pitchside/medvault/internal/audit/domain"
	"github.com/pitchside/medvault/internal/audit/http/dto"
	"github.com/pitchside/medvault/internal/audit/usecase/mocks"
	vaultHTTP "github.com/pitchside/medvault/internal/vault/http"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func setupAuditLogHandler(t *testing.T) (*AuditLogHandler, *mocks.MockAuditLogUseCase) {
	t.Helper()

	gin.SetMode(gin.TestMode)

	mockUseCase := new(mocks.MockAuditLogUseCase)
	return NewAuditLogHandler(mockUseCase, testLogger()), mockUseCase
}

func createListContext(target string) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, target, nil)
	return c, w
}

func withAdminActor(c *gin.Context) {
	actor := &vaultHTTP.Actor{
		UserID:   "admin-1",
		TenantID: "tenant-1",
		Roles:    []string{vaultHTTP.RoleMedicalAdmin},
	}
	c.Request = c.Request.WithContext(vaultHTTP.WithActor(c.Request.Context(), actor))
}

func TestAuditLogHandler_ListHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		handler, mockUseCase := setupAuditLogHandler(t)

		auditLogs := []*auditDomain.AuditLog{
			{
				ID:            uuid.Must(uuid.NewV7()),
				TenantID:      "tenant-1",
				UserID:        "user-1",
				ResourceType:  auditDomain.ResourceTypeCase,
				ResourceID:    "MC-A1B2C3",
				Action:        auditDomain.ActionCreate,
				LawfulBasis:   auditDomain.LawfulBasisConsent,
				WasSuccessful: true,
				CreatedAt:     time.Now().UTC(),
			},
		}
		mockUseCase.On("List", mock.Anything, "tenant-1", 0, 50, (*time.Time)(nil), (*time.Time)(nil)).
			Return(auditLogs, nil).Once()

		c, w := createListContext("/v1/audit-logs")
		withAdminActor(c)

		handler.ListHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)

		var response dto.ListAuditLogsResponse
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Len(t, response.AuditLogs, 1)
		assert.Equal(t, "MC-A1B2C3", response.AuditLogs[0].ResourceID)
		mockUseCase.AssertExpectations(t)
	})

	t.Run("Success_TimeWindow", func(t *testing.T) {
		handler, mockUseCase := setupAuditLogHandler(t)

		from := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
		to := time.Date(2026, 8, 31, 23, 59, 59, 0, time.UTC)
		mockUseCase.On("List", mock.Anything, "tenant-1", 0, 50, &from, &to).
			Return([]*auditDomain.AuditLog{}, nil).Once()

		c, w := createListContext(
			"/v1/audit-logs?created_at_from=2026-08-01T00:00:00Z&created_at_to=2026-08-31T23:59:59Z",
		)
		withAdminActor(c)

		handler.ListHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)
		mockUseCase.AssertExpectations(t)
	})

	t.Run("Error_InvalidTimeFormat", func(t *testing.T) {
		handler, mockUseCase := setupAuditLogHandler(t)

		c, w := createListContext("/v1/audit-logs?created_at_from=yesterday")
		withAdminActor(c)

		handler.ListHandler(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockUseCase.AssertNotCalled(t, "List",
			mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Error_InvertedTimeWindow", func(t *testing.T) {
		handler, _ := setupAuditLogHandler(t)

		c, w := createListContext(
			"/v1/audit-logs?created_at_from=2026-08-31T00:00:00Z&created_at_to=2026-08-01T00:00:00Z",
		)
		withAdminActor(c)

		handler.ListHandler(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Error_MissingActor", func(t *testing.T) {
		handler, _ := setupAuditLogHandler(t)

		c, w := createListContext("/v1/audit-logs")

		handler.ListHandler(c)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
