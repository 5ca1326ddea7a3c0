// Package integration provides end-to-end integration tests for the medical
// vault API. Tests the full protected write and read flows against both
// PostgreSQL and MySQL databases.
package integration

import (
	"bytes"
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pitchside/medvault/internal/app"
	"github.com/pitchside/medvault/internal/config"
	"github.com/pitchside/medvault/internal/testutil"
)

const (
	testTenant     = "tenant-integration"
	testAdmin      = "user-admin"
	testClinician  = "user-clinician"
	testPassphrase = "long memorable passphrase"
	testSecondAuth = "123456"
)

// integrationTestContext holds all dependencies and state for integration testing.
type integrationTestContext struct {
	container *app.Container
	db        *sql.DB
	server    *httptest.Server
	cancel    context.CancelFunc
	dbDriver  string
}

// request describes one API call made through the test server.
type request struct {
	method string
	path   string
	body   interface{}
	userID string
	roles  string
	second bool
}

// makeRequest performs an HTTP request and returns the response and body.
func (ctx *integrationTestContext) makeRequest(t *testing.T, r request) (*http.Response, []byte) {
	t.Helper()

	var bodyReader io.Reader
	if r.body != nil {
		bodyBytes, err := json.Marshal(r.body)
		require.NoError(t, err, "failed to marshal request body")
		bodyReader = bytes.NewReader(bodyBytes)
	}

	req, err := http.NewRequest(r.method, ctx.server.URL+r.path, bodyReader)
	require.NoError(t, err, "failed to create request")

	if r.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if r.userID != "" {
		req.Header.Set("X-User-Id", r.userID)
		req.Header.Set("X-Tenant-Id", testTenant)
		req.Header.Set("X-Roles", r.roles)
	}
	if r.second {
		req.Header.Set("X-2FA-Code", testSecondAuth)
	}

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(req)
	require.NoError(t, err, "failed to perform request")

	respBody, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "failed to read response body")
	if closeErr := resp.Body.Close(); closeErr != nil {
		t.Logf("Warning: failed to close response body: %v", closeErr)
	}

	return resp, respBody
}

// asAdmin builds a request authenticated as a medical admin with a second factor.
func asAdmin(method, path string, body interface{}) request {
	return request{method: method, path: path, body: body, userID: testAdmin, roles: "MEDICAL_ADMIN", second: true}
}

// asClinician builds a request authenticated as a regular medical user with a second factor.
func asClinician(method, path string, body interface{}) request {
	return request{method: method, path: path, body: body, userID: testClinician, roles: "MEDICAL", second: true}
}

// generateTestMasterKey creates a base64-encoded 32-byte master key for testing.
func generateTestMasterKey(t *testing.T) string {
	t.Helper()
	key := make([]byte, 32)
	_, err := rand.Read(key)
	require.NoError(t, err, "failed to generate master key")
	return base64.StdEncoding.EncodeToString(key)
}

// setupIntegrationTest initializes all components for integration testing.
func setupIntegrationTest(t *testing.T, dbDriver string) *integrationTestContext {
	t.Helper()

	// Set Gin to test mode
	gin.SetMode(gin.TestMode)

	// Setup database
	var db *sql.DB
	var dsn string
	if dbDriver == "postgres" {
		testutil.SkipIfNoPostgres(t)
		db = testutil.SetupPostgresDB(t)
		dsn = testutil.GetPostgresTestDSN()
	} else {
		testutil.SkipIfNoMySQL(t)
		db = testutil.SetupMySQLDB(t)
		dsn = testutil.GetMySQLTestDSN()
	}

	// Create configuration with an ephemeral master key
	cfg := &config.Config{
		DBDriver:             dbDriver,
		DBConnectionString:   dsn,
		DBMaxOpenConnections: 10,
		DBMaxIdleConnections: 5,
		DBConnMaxLifetime:    time.Hour,
		ServerHost:           "localhost",
		ServerPort:           8080,
		LogLevel:             "error",
		MasterKey:            generateTestMasterKey(t),
		VaultAlgorithm:       "aes-gcm",
		VaultSessionTTL:      15 * time.Minute,
		Require2FA:           true,
		SeverityBuckets:      "minimal:LOW,mild:LOW,moderate:MEDIUM,severe:HIGH,career_ending:HIGH",
	}

	// Create DI container
	container := app.NewContainer(cfg)

	// Setup HTTP server; the context drives the readiness endpoint
	serverCtx, cancel := context.WithCancel(context.Background())
	httpSrv, err := container.HTTPServer(serverCtx)
	require.NoError(t, err, "failed to get HTTP server")

	handler := httpSrv.GetHandler()
	require.NotNil(t, handler, "handler should not be nil")

	testServer := httptest.NewServer(handler)

	return &integrationTestContext{
		container: container,
		db:        db,
		server:    testServer,
		cancel:    cancel,
		dbDriver:  dbDriver,
	}
}

// teardownIntegrationTest cleans up all resources.
func teardownIntegrationTest(t *testing.T, ctx *integrationTestContext) {
	t.Helper()

	if ctx.server != nil {
		ctx.server.Close()
	}
	ctx.cancel()

	if ctx.container != nil {
		if err := ctx.container.Shutdown(context.Background()); err != nil {
			t.Logf("Warning: container shutdown error: %v", err)
		}
	}

	// The container closed its own connection; this one belongs to the test
	if ctx.db != nil {
		testutil.TeardownDB(t, ctx.db)
	}
}

// driverTestCases lists the database backends every integration test runs against.
var driverTestCases = []struct {
	name     string
	dbDriver string
}{
	{"PostgreSQL", "postgres"},
	{"MySQL", "mysql"},
}

// TestIntegration_Health validates infrastructure health and readiness endpoints.
func TestIntegration_Health(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	for _, tc := range driverTestCases {
		t.Run(tc.name, func(t *testing.T) {
			ctx := setupIntegrationTest(t, tc.dbDriver)
			defer teardownIntegrationTest(t, ctx)

			resp, body := ctx.makeRequest(t, request{method: http.MethodGet, path: "/health"})
			assert.Equal(t, http.StatusOK, resp.StatusCode)

			var response map[string]string
			require.NoError(t, json.Unmarshal(body, &response))
			assert.Equal(t, "healthy", response["status"])

			resp, _ = ctx.makeRequest(t, request{method: http.MethodGet, path: "/ready"})
			assert.Equal(t, http.StatusOK, resp.StatusCode)
		})
	}
}

// TestIntegration_ProtectedWriteFlow exercises the full lifecycle: enable the
// vault, unlock it, record consent, create and read back a medical case, and
// verify every attempt landed in the audit trail.
func TestIntegration_ProtectedWriteFlow(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	for _, tc := range driverTestCases {
		t.Run(tc.name, func(t *testing.T) {
			ctx := setupIntegrationTest(t, tc.dbDriver)
			defer teardownIntegrationTest(t, ctx)

			subjectID := "player-42"

			t.Run("01_EnableVault", func(t *testing.T) {
				resp, _ := ctx.makeRequest(t, asAdmin(http.MethodPost, "/v1/vault/enable", map[string]string{
					"passphrase": testPassphrase,
					"hint":       "the usual one",
				}))
				assert.Equal(t, http.StatusNoContent, resp.StatusCode)
			})

			t.Run("02_CaseCreationBlockedWhileLocked", func(t *testing.T) {
				resp, _ := ctx.makeRequest(t, asClinician(http.MethodPost, "/v1/cases", map[string]interface{}{
					"subject_id": subjectID,
					"type":       "injury",
					"onset_date": time.Now().UTC().Format(time.RFC3339),
				}))
				assert.Equal(t, http.StatusLocked, resp.StatusCode)
			})

			t.Run("03_UnlockWithWrongPassphrase", func(t *testing.T) {
				resp, _ := ctx.makeRequest(t, asClinician(http.MethodPost, "/v1/vault/unlock", map[string]string{
					"passphrase": "definitely not it",
					"reason":     "pre-season screening",
				}))
				assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
			})

			t.Run("04_Unlock", func(t *testing.T) {
				resp, body := ctx.makeRequest(t, asClinician(http.MethodPost, "/v1/vault/unlock", map[string]string{
					"passphrase": testPassphrase,
					"reason":     "pre-season screening",
				}))
				require.Equal(t, http.StatusCreated, resp.StatusCode)

				var grant map[string]interface{}
				require.NoError(t, json.Unmarshal(body, &grant))
				assert.Equal(t, testTenant, grant["tenant_id"])
				assert.Equal(t, testClinician, grant["user_id"])
				assert.Equal(t, "pre-season screening", grant["reason"])
			})

			t.Run("05_CaseCreationBlockedWithoutConsent", func(t *testing.T) {
				resp, _ := ctx.makeRequest(t, asClinician(http.MethodPost, "/v1/cases", map[string]interface{}{
					"subject_id": subjectID,
					"type":       "injury",
					"onset_date": time.Now().UTC().Format(time.RFC3339),
				}))
				assert.Equal(t, http.StatusForbidden, resp.StatusCode)
			})

			t.Run("06_RecordConsent", func(t *testing.T) {
				resp, _ := ctx.makeRequest(t, asClinician(http.MethodPost, "/v1/consents", map[string]string{
					"subject_id":        subjectID,
					"consent_type":      "treatment",
					"consent_form_text": "I consent to treatment data processing.",
				}))
				assert.Equal(t, http.StatusCreated, resp.StatusCode)
			})

			var caseID, caseNumber string
			t.Run("07_CreateCase", func(t *testing.T) {
				resp, body := ctx.makeRequest(t, asClinician(http.MethodPost, "/v1/cases", map[string]interface{}{
					"subject_id":   subjectID,
					"type":         "injury",
					"onset_date":   time.Now().UTC().Format(time.RFC3339),
					"severity":     "moderate",
					"body_area":    "knee",
					"is_available": false,
					"details": map[string]interface{}{
						"diagnosis": "MCL sprain grade II",
						"notes":     "out 4-6 weeks",
					},
				}))
				require.Equal(t, http.StatusCreated, resp.StatusCode)

				var created map[string]string
				require.NoError(t, json.Unmarshal(body, &created))
				caseID = created["case_id"]
				caseNumber = created["case_number"]
				require.NotEmpty(t, caseID)
				require.Regexp(t, `^MC-[A-Z0-9]{6}$`, caseNumber)

				// The clinical payload must never appear in the response
				assert.NotContains(t, string(body), "MCL sprain")
			})

			t.Run("08_ReadCaseMetadataOnly", func(t *testing.T) {
				resp, body := ctx.makeRequest(t, asClinician(http.MethodGet, "/v1/cases/"+caseID, nil))
				require.Equal(t, http.StatusOK, resp.StatusCode)

				var metadata map[string]interface{}
				require.NoError(t, json.Unmarshal(body, &metadata))
				assert.Equal(t, caseNumber, metadata["case_number"])
				assert.Equal(t, "MEDIUM", metadata["severity_bucket"])

				// Coarse metadata only: no payload, no raw severity, no raw body area
				assert.NotContains(t, string(body), "MCL sprain")
				assert.NotContains(t, string(body), "moderate")
				assert.NotContains(t, string(body), "knee")
			})

			t.Run("09_ListCases", func(t *testing.T) {
				resp, body := ctx.makeRequest(t, asClinician(http.MethodGet, "/v1/cases", nil))
				require.Equal(t, http.StatusOK, resp.StatusCode)

				var list struct {
					Cases []map[string]interface{} `json:"cases"`
				}
				require.NoError(t, json.Unmarshal(body, &list))
				require.Len(t, list.Cases, 1)
				assert.Equal(t, caseNumber, list.Cases[0]["case_number"])
			})

			t.Run("10_EncryptedAtRest", func(t *testing.T) {
				var payload string
				var query string
				if ctx.dbDriver == "postgres" {
					query = "SELECT encrypted_payload FROM medical_cases WHERE id = $1"
				} else {
					query = "SELECT encrypted_payload FROM medical_cases WHERE id = ?"
				}
				require.NoError(t, ctx.db.QueryRow(query, caseID).Scan(&payload))
				assert.NotContains(t, payload, "MCL sprain")
				assert.NotContains(t, payload, "knee")
			})

			t.Run("11_Lock", func(t *testing.T) {
				resp, _ := ctx.makeRequest(t, asClinician(http.MethodPost, "/v1/vault/lock", nil))
				assert.Equal(t, http.StatusNoContent, resp.StatusCode)

				resp, _ = ctx.makeRequest(t, asClinician(http.MethodGet, "/v1/cases/"+caseID, nil))
				assert.Equal(t, http.StatusLocked, resp.StatusCode)
			})

			t.Run("12_AuditTrail", func(t *testing.T) {
				resp, body := ctx.makeRequest(t, asAdmin(http.MethodGet, "/v1/audit-logs?limit=100", nil))
				require.Equal(t, http.StatusOK, resp.StatusCode)

				var trail struct {
					AuditLogs []struct {
						ResourceType  string `json:"resource_type"`
						Action        string `json:"action"`
						WasSuccessful bool   `json:"was_successful"`
					} `json:"audit_logs"`
				}
				require.NoError(t, json.Unmarshal(body, &trail))

				counts := map[string]int{}
				failures := 0
				for _, entry := range trail.AuditLogs {
					counts[entry.ResourceType+"/"+entry.Action]++
					if !entry.WasSuccessful {
						failures++
					}
				}

				// Every attempt is recorded, including the rejected ones
				assert.GreaterOrEqual(t, counts["vault/CREATE"], 1, "vault enable recorded")
				assert.GreaterOrEqual(t, counts["vault/UNLOCK"], 2, "both unlock attempts recorded")
				assert.GreaterOrEqual(t, counts["vault/LOCK"], 1, "lock recorded")
				assert.GreaterOrEqual(t, counts["case/CREATE"], 3, "all case creation attempts recorded")
				assert.GreaterOrEqual(t, counts["consent/CREATE"], 1, "consent recorded")
				assert.GreaterOrEqual(t, failures, 3, "failed attempts recorded as failures")
			})
		})
	}
}

// TestIntegration_TenantIsolation verifies that one tenant's unlock never
// opens another tenant's data.
func TestIntegration_TenantIsolation(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	for _, tc := range driverTestCases {
		t.Run(tc.name, func(t *testing.T) {
			ctx := setupIntegrationTest(t, tc.dbDriver)
			defer teardownIntegrationTest(t, ctx)

			// Enable and unlock for the primary tenant
			resp, _ := ctx.makeRequest(t, asAdmin(http.MethodPost, "/v1/vault/enable", map[string]string{
				"passphrase": testPassphrase,
			}))
			require.Equal(t, http.StatusNoContent, resp.StatusCode)

			resp, _ = ctx.makeRequest(t, asClinician(http.MethodPost, "/v1/vault/unlock", map[string]string{
				"passphrase": testPassphrase,
				"reason":     "rehab review",
			}))
			require.Equal(t, http.StatusCreated, resp.StatusCode)

			// The same user acting under a different tenant hits a locked vault
			req, err := http.NewRequest(http.MethodGet, ctx.server.URL+"/v1/cases", nil)
			require.NoError(t, err)
			req.Header.Set("X-User-Id", testClinician)
			req.Header.Set("X-Tenant-Id", "tenant-other")
			req.Header.Set("X-Roles", "MEDICAL")

			client := &http.Client{Timeout: 10 * time.Second}
			otherResp, err := client.Do(req)
			require.NoError(t, err)
			defer func() { _ = otherResp.Body.Close() }()

			assert.Equal(t, http.StatusLocked, otherResp.StatusCode)
		})
	}
}

// TestIntegration_SecondFactorRequired verifies mutating requests are refused
// without the second-factor header while reads stay open.
func TestIntegration_SecondFactorRequired(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	for _, tc := range driverTestCases {
		t.Run(tc.name, func(t *testing.T) {
			ctx := setupIntegrationTest(t, tc.dbDriver)
			defer teardownIntegrationTest(t, ctx)

			resp, _ := ctx.makeRequest(t, asAdmin(http.MethodPost, "/v1/vault/enable", map[string]string{
				"passphrase": testPassphrase,
			}))
			require.Equal(t, http.StatusNoContent, resp.StatusCode)

			resp, _ = ctx.makeRequest(t, asClinician(http.MethodPost, "/v1/vault/unlock", map[string]string{
				"passphrase": testPassphrase,
				"reason":     "match-day assessment",
			}))
			require.Equal(t, http.StatusCreated, resp.StatusCode)

			// Mutating request without the second factor
			noSecond := asClinician(http.MethodPost, "/v1/cases", map[string]interface{}{
				"subject_id": "player-7",
				"type":       "injury",
				"onset_date": time.Now().UTC().Format(time.RFC3339),
			})
			noSecond.second = false

			resp, _ = ctx.makeRequest(t, noSecond)
			assert.Equal(t, http.StatusPreconditionRequired, resp.StatusCode)

			// Reads require no second factor
			read := asClinician(http.MethodGet, "/v1/cases", nil)
			read.second = false

			resp, _ = ctx.makeRequest(t, read)
			assert.Equal(t, http.StatusOK, resp.StatusCode)
		})
	}
}

// TestIntegration_GrantExpiry verifies an expired grant closes the gate again.
func TestIntegration_GrantExpiry(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	for _, tc := range driverTestCases {
		t.Run(tc.name, func(t *testing.T) {
			ctx := setupIntegrationTest(t, tc.dbDriver)
			defer teardownIntegrationTest(t, ctx)

			resp, _ := ctx.makeRequest(t, asAdmin(http.MethodPost, "/v1/vault/enable", map[string]string{
				"passphrase": testPassphrase,
			}))
			require.Equal(t, http.StatusNoContent, resp.StatusCode)

			resp, _ = ctx.makeRequest(t, asClinician(http.MethodPost, "/v1/vault/unlock", map[string]string{
				"passphrase": testPassphrase,
				"reason":     "records audit",
			}))
			require.Equal(t, http.StatusCreated, resp.StatusCode)

			// Force the grant past its expiry directly in the database
			var query string
			if ctx.dbDriver == "postgres" {
				query = "UPDATE access_grants SET expires_at = $1 WHERE tenant_id = $2"
			} else {
				query = "UPDATE access_grants SET expires_at = ? WHERE tenant_id = ?"
			}
			_, err := ctx.db.Exec(query, time.Now().UTC().Add(-time.Minute), testTenant)
			require.NoError(t, err)

			resp, _ = ctx.makeRequest(t, asClinician(http.MethodGet, "/v1/cases", nil))
			assert.Equal(t, http.StatusLocked, resp.StatusCode)
		})
	}
}
