package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/time/rate"

	_ "liyu1981.xyz/tpms-service/pkg/testing"
	"liyu1981.xyz/tpms-service/pkg/tpms/mocks"

	"liyu1981.xyz/tpms-service/pkg/auth"
	"liyu1981.xyz/tpms-service/pkg/common"
	"liyu1981.xyz/tpms-service/pkg/db"
	"liyu1981.xyz/tpms-service/pkg/models"
	"liyu1981.xyz/tpms-service/pkg/observability"
	"liyu1981.xyz/tpms-service/pkg/tpms"
)

func setupTestServer(t *testing.T) *RestfulServer {
	return setupTestServerWithLimiter(t, nil)
}

func setupTestServerWithLimiter(t *testing.T, limiter *tpms.RateLimiterStore) *RestfulServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	tp := tpms.New(*db.GetInstance(db.UseMemorySqliteDialector())).
		WithMetrics(observability.NewMetricsForTesting())
	require.NoError(t, tp.LoadCatalog(t.Context()))

	rs := &RestfulServer{
		Server:           gin.New(),
		Tpms:             tp,
		Tokens:           auth.NewTokenIssuer("test-secret", time.Hour),
		RateLimiterStore: limiter,
	}

	rs.Setup()

	return rs
}

func do(rs *RestfulServer, method, path, token string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		payload, _ := json.Marshal(body)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	rs.Server.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func errorKind(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	body := decode(t, w)
	errBody, ok := body["error"].(map[string]any)
	require.True(t, ok, w.Body.String())
	return errBody["kind"].(string)
}

type account struct {
	Email    string
	Password string
	Token    string
}

func registerAndLogin(t *testing.T, rs *RestfulServer) account {
	t.Helper()
	acc := account{Email: uuid.NewString() + "@example.com", Password: "password123"}

	w := do(rs, http.MethodPost, "/auth/register", "", gin.H{
		"name": "Test Driver", "email": acc.Email, "password": acc.Password,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = do(rs, http.MethodPost, "/auth/login", "", gin.H{"email": acc.Email, "password": acc.Password})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	acc.Token = decode(t, w)["token"].(string)
	return acc
}

// createTire adds a vehicle and a 2.2 bar tire for acc and returns their ids.
func createTire(t *testing.T, rs *RestfulServer, acc account) (string, string) {
	t.Helper()
	w := do(rs, http.MethodPost, "/api/vehicles", acc.Token, gin.H{"make": "Skoda", "model": "Octavia", "year": 2019})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	vehicleID := decode(t, w)["vehicle_id"].(string)

	w = do(rs, http.MethodPost, "/api/tires", acc.Token, gin.H{
		"vehicle_id": vehicleID, "label": "Front Left", "optimal_pressure": 2.2, "pressure_unit": "bar",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return vehicleID, decode(t, w)["tire_id"].(string)
}

func TestHealthCheck(t *testing.T) {
	rs := setupTestServer(t)

	w := do(rs, http.MethodGet, "/healthz", "", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestRegisterAndLogin(t *testing.T) {
	common.SetTestLoggerNop()
	rs := setupTestServer(t)

	acc := registerAndLogin(t, rs)
	assert.NotEmpty(t, acc.Token)

	// same email again
	w := do(rs, http.MethodPost, "/auth/register", "", gin.H{
		"name": "Test Driver", "email": acc.Email, "password": acc.Password,
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = do(rs, http.MethodPost, "/auth/login", "", gin.H{"email": acc.Email, "password": "wrong-password"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, string(tpms.KindUnauthorized), errorKind(t, w))

	w = do(rs, http.MethodPost, "/auth/register", "", gin.H{"name": "X", "email": "not-an-email", "password": "short"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, string(tpms.KindValidation), errorKind(t, w))
}

func TestRequireToken(t *testing.T) {
	common.SetTestLoggerNop()
	rs := setupTestServer(t)

	w := do(rs, http.MethodGet, "/api/vehicles", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = do(rs, http.MethodGet, "/api/vehicles", "garbage", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	foreign, err := auth.NewTokenIssuer("other-secret", time.Hour).Issue(uuid.NewString(), models.RoleCustomer)
	require.NoError(t, err)
	w = do(rs, http.MethodGet, "/api/vehicles", foreign, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGetAlertTypes(t *testing.T) {
	common.SetTestLoggerNop()
	rs := setupTestServer(t)
	acc := registerAndLogin(t, rs)

	w := do(rs, http.MethodGet, "/api/alert-types", acc.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	entries := decode(t, w)["alert_types"].([]any)
	assert.Len(t, entries, len(db.DefaultAlertTypes))
}

func TestReadingFlow(t *testing.T) {
	common.SetTestLoggerNop()
	rs := setupTestServer(t)
	acc := registerAndLogin(t, rs)
	vehicleID, tireID := createTire(t, rs, acc)

	w := do(rs, http.MethodPost, "/api/tires/"+tireID+"/readings", acc.Token, gin.H{"pressure_value": 2.2, "pressure_unit": "bar"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	first := decode(t, w)
	assert.Equal(t, models.AlertTypeNormal, first["alert_type"])
	assert.Equal(t, true, first["transitioned"])

	w = do(rs, http.MethodPost, "/api/tires/"+tireID+"/readings", acc.Token, gin.H{"pressure_value": 1.7, "pressure_unit": "bar"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	second := decode(t, w)
	assert.Equal(t, models.AlertTypeLowPressureCritical, second["alert_type"])
	assert.NotEmpty(t, second["notification_id"])
	assert.Equal(t, false, second["notification_failed"])

	w = do(rs, http.MethodPost, "/api/tires/"+tireID+"/readings", acc.Token, gin.H{"pressure_value": 1.69, "pressure_unit": "bar"})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, false, decode(t, w)["transitioned"])

	w = do(rs, http.MethodGet, "/api/tires/"+tireID+"/readings", acc.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	readings := decode(t, w)
	assert.Equal(t, float64(3), readings["count"])
	assert.Equal(t, "all time", readings["timeframe"])

	w = do(rs, http.MethodGet, "/api/tires/"+tireID+"/readings?days=7", acc.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "last 7 days", decode(t, w)["timeframe"])

	w = do(rs, http.MethodGet, "/api/notifications", acc.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["notifications"].([]any), 2)

	w = do(rs, http.MethodGet, "/api/vehicles/"+vehicleID+"/notifications?limit=1", acc.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	notifications := decode(t, w)["notifications"].([]any)
	require.Len(t, notifications, 1)
	assert.Equal(t, models.AlertTypeLowPressureCritical, notifications[0].(map[string]any)["new_alert_type"])

	w = do(rs, http.MethodGet, "/api/tires/"+tireID, acc.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	tire := decode(t, w)
	assert.Equal(t, models.AlertTypeLowPressureCritical, tire["current_alert_type"])
	assert.NotNil(t, tire["current_pressure"])
}

func TestReadingFlow_EdgeCases(t *testing.T) {
	common.SetTestLoggerNop()
	rs := setupTestServer(t)
	acc := registerAndLogin(t, rs)
	_, tireID := createTire(t, rs, acc)

	// empty payload should be rejected
	w := do(rs, http.MethodPost, "/api/tires/"+tireID+"/readings", acc.Token, gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(rs, http.MethodPost, "/api/tires/"+tireID+"/readings", acc.Token, gin.H{"pressure_value": 2.2, "pressure_unit": "atm"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, string(tpms.KindValidation), errorKind(t, w))

	w = do(rs, http.MethodPost, "/api/tires/"+uuid.NewString()+"/readings", acc.Token, gin.H{"pressure_value": 2.2, "pressure_unit": "bar"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(rs, http.MethodPost, "/api/tires/not-a-uuid/readings", acc.Token, gin.H{"pressure_value": 2.2, "pressure_unit": "bar"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, string(tpms.KindValidation), errorKind(t, w))

	// numeric strings are accepted, anything else is not
	w = do(rs, http.MethodPost, "/api/tires/"+tireID+"/readings", acc.Token, gin.H{"pressure_value": "2.2", "pressure_unit": "bar"})
	assert.Equal(t, http.StatusCreated, w.Code)

	w = do(rs, http.MethodPost, "/api/tires/"+tireID+"/readings", acc.Token, gin.H{"pressure_value": "abc", "pressure_unit": "bar"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(rs, http.MethodPost, "/api/tires/"+tireID+"/readings", acc.Token, gin.H{"pressure_unit": "bar"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(rs, http.MethodGet, "/api/tires/"+tireID+"/readings?days=abc", acc.Token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(rs, http.MethodGet, "/api/tires/"+tireID+"/readings?days=0", acc.Token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(rs, http.MethodGet, "/api/notifications?limit=0", acc.Token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// a second account must not see or write the first one's tire
	other := registerAndLogin(t, rs)
	w = do(rs, http.MethodPost, "/api/tires/"+tireID+"/readings", other.Token, gin.H{"pressure_value": 2.2, "pressure_unit": "bar"})
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, string(tpms.KindForbidden), errorKind(t, w))

	w = do(rs, http.MethodGet, "/api/tires/"+tireID+"/readings", other.Token, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestReadingFlow_ServiceFailure(t *testing.T) {
	common.SetTestLoggerNop()
	rs := setupTestServer(t)
	acc := registerAndLogin(t, rs)
	tireID := uuid.NewString()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockIReading := mocks.NewMockIReading(ctrl)
	rs.Tpms.Reading = mockIReading

	mockIReading.EXPECT().
		AddReading(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, fmt.Errorf("just causing error")).
		Times(1)

	w := do(rs, http.MethodPost, "/api/tires/"+tireID+"/readings", acc.Token, gin.H{"pressure_value": 2.2, "pressure_unit": "bar"})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":{"kind":"persistence","message":"Internal server error"}}`, w.Body.String())
}

func TestSensorReading(t *testing.T) {
	common.SetTestLoggerNop()
	rs := setupTestServer(t)
	acc := registerAndLogin(t, rs)
	_, tireID := createTire(t, rs, acc)

	w := do(rs, http.MethodPost, "/iot/readings", "", gin.H{
		"email": acc.Email, "password": acc.Password,
		"tire_id": tireID, "pressure_value": 31.9, "pressure_unit": "psi",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.InDelta(t, 2.2, decode(t, w)["pressure_value"], 0.01)

	w = do(rs, http.MethodPost, "/iot/readings", "", gin.H{
		"email": acc.Email, "password": "wrong-password",
		"tire_id": tireID, "pressure_value": 2.2, "pressure_unit": "bar",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = do(rs, http.MethodPost, "/iot/readings", "", gin.H{"email": acc.Email})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestVehicleAndTireLifecycle(t *testing.T) {
	common.SetTestLoggerNop()
	rs := setupTestServer(t)
	acc := registerAndLogin(t, rs)
	vehicleID, tireID := createTire(t, rs, acc)

	w := do(rs, http.MethodGet, "/api/vehicles", acc.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["vehicles"].([]any), 1)

	w = do(rs, http.MethodGet, "/api/vehicles/"+vehicleID+"/tires", acc.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["tires"].([]any), 1)

	w = do(rs, http.MethodPatch, "/api/tires/"+tireID, acc.Token, gin.H{"label": "Rear Right"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "Rear Right", decode(t, w)["label"])

	w = do(rs, http.MethodPatch, "/api/tires/"+tireID, acc.Token, gin.H{"optimal_pressure": 32.0, "pressure_unit": "psi"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	patched := decode(t, w)
	assert.Equal(t, "psi", patched["pressure_unit"])
	assert.InDelta(t, 32.0, patched["optimal_pressure"], 1e-9)

	w = do(rs, http.MethodPatch, "/api/tires/"+tireID, acc.Token, gin.H{"label": ""})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	other := registerAndLogin(t, rs)
	w = do(rs, http.MethodGet, "/api/vehicles/"+vehicleID, other.Token, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	w = do(rs, http.MethodDelete, "/api/tires/"+tireID, other.Token, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = do(rs, http.MethodDelete, "/api/tires/"+tireID, acc.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	w = do(rs, http.MethodGet, "/api/tires/"+tireID, acc.Token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(rs, http.MethodDelete, "/api/vehicles/"+vehicleID, acc.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	w = do(rs, http.MethodGet, "/api/vehicles/"+vehicleID, acc.Token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPatchVehicle(t *testing.T) {
	common.SetTestLoggerNop()
	rs := setupTestServer(t)
	acc := registerAndLogin(t, rs)
	vehicleID, _ := createTire(t, rs, acc)

	w := do(rs, http.MethodPatch, "/api/vehicles/"+vehicleID, acc.Token, gin.H{"model": "Superb", "year": 2021})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	patched := decode(t, w)
	assert.Equal(t, "Skoda", patched["make"])
	assert.Equal(t, "Superb", patched["model"])
	assert.Equal(t, float64(2021), patched["year"])

	w = do(rs, http.MethodPatch, "/api/vehicles/"+vehicleID, acc.Token, gin.H{"year": 1800})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, string(tpms.KindValidation), errorKind(t, w))

	w = do(rs, http.MethodPatch, "/api/vehicles/"+vehicleID, acc.Token, gin.H{"year": "soon"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	other := registerAndLogin(t, rs)
	w = do(rs, http.MethodPatch, "/api/vehicles/"+vehicleID, other.Token, gin.H{"model": "Fabia"})
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, string(tpms.KindForbidden), errorKind(t, w))

	w = do(rs, http.MethodGet, "/api/vehicles/"+vehicleID, acc.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	stored := decode(t, w)
	assert.Equal(t, "Superb", stored["model"])
	assert.Equal(t, float64(2021), stored["year"])
}

func TestPostTire_EdgeCases(t *testing.T) {
	common.SetTestLoggerNop()
	rs := setupTestServer(t)
	acc := registerAndLogin(t, rs)
	vehicleID, _ := createTire(t, rs, acc)

	w := do(rs, http.MethodPost, "/api/tires", acc.Token, gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(rs, http.MethodPost, "/api/tires", acc.Token, gin.H{
		"vehicle_id": vehicleID, "label": "Spare", "optimal_pressure": 2.2, "pressure_unit": "atm",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(rs, http.MethodPost, "/api/tires", acc.Token, gin.H{
		"vehicle_id": uuid.NewString(), "label": "Spare", "optimal_pressure": 2.2, "pressure_unit": "bar",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPostReadingWithLimiter(t *testing.T) {
	common.SetTestLoggerNop()
	rs := setupTestServerWithLimiter(t, tpms.NewRateLimiterStore(2, 2)) // 2 req/sec, burst 2
	acc := registerAndLogin(t, rs)
	_, tireID := createTire(t, rs, acc)

	reading := gin.H{"pressure_value": 2.2, "pressure_unit": "bar"}

	// 3 requests in quick succession, only 2 should be allowed
	for i := range 3 {
		w := do(rs, http.MethodPost, "/api/tires/"+tireID+"/readings", acc.Token, reading)
		if i < 2 {
			require.Equal(t, http.StatusCreated, w.Code, "request %d should be allowed", i+1)
		} else {
			require.Equal(t, http.StatusTooManyRequests, w.Code, "request %d should be rate limited", i+1)
			assert.Equal(t, kindRateLimited, errorKind(t, w))
		}
	}

	w := do(rs, http.MethodPost, "/api/tires/"+tireID+"/limiter", acc.Token, LimiterRequest{Rate: 2, Burst: 2})
	require.Equal(t, http.StatusOK, w.Code, "limiter request should be allowed")

	w = do(rs, http.MethodPost, "/api/tires/"+tireID+"/readings", acc.Token, reading)
	require.Equal(t, http.StatusCreated, w.Code, "request after reset should be allowed")

	// other tires keep their own bucket
	_, otherTireID := createTire(t, rs, acc)
	w = do(rs, http.MethodPost, "/api/tires/"+otherTireID+"/readings", acc.Token, reading)
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestPostLimiter_EdgeCases(t *testing.T) {
	common.SetTestLoggerNop()
	rs := setupTestServerWithLimiter(t, tpms.NewRateLimiterStore(rate.Limit(2), 2))
	acc := registerAndLogin(t, rs)
	_, tireID := createTire(t, rs, acc)

	// empty payload should be rejected
	w := do(rs, http.MethodPost, "/api/tires/"+tireID+"/limiter", acc.Token, gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(rs, http.MethodPost, "/api/tires/"+tireID+"/limiter", acc.Token, gin.H{"rate": -1, "burst": 2})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	other := registerAndLogin(t, rs)
	w = do(rs, http.MethodPost, "/api/tires/"+tireID+"/limiter", other.Token, LimiterRequest{Rate: 1, Burst: 1})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestLimiter(t *testing.T) {
	common.SetTestLoggerNop()
	rs := setupTestServerWithLimiter(t, tpms.NewRateLimiterStore(0, 0)) // nothing passes
	acc := registerAndLogin(t, rs)
	_, tireID := createTire(t, rs, acc)

	w := do(rs, http.MethodPost, "/api/tires/"+tireID+"/readings", acc.Token, gin.H{"pressure_value": 2.2, "pressure_unit": "bar"})
	assert.Equal(t, http.StatusTooManyRequests, w.Code)

	w = do(rs, http.MethodPost, "/iot/readings", "", gin.H{
		"email": acc.Email, "password": acc.Password,
		"tire_id": tireID, "pressure_value": 2.2, "pressure_unit": "bar",
	})
	assert.Equal(t, http.StatusTooManyRequests, w.Code)

	// reads are never limited
	w = do(rs, http.MethodGet, "/api/tires/"+tireID+"/readings", acc.Token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSetLimiter_EdgeCases(t *testing.T) {
	common.SetTestLoggerNop()
	rs := setupTestServer(t) // default without limiter store
	acc := registerAndLogin(t, rs)
	_, tireID := createTire(t, rs, acc)

	// without limiter store setting a limiter is accepted but has no effect
	w := do(rs, http.MethodPost, "/api/tires/"+tireID+"/limiter", acc.Token, LimiterRequest{Rate: 1, Burst: 1})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, rs.GetLimiter(tireID))

	for range 3 {
		w = do(rs, http.MethodPost, "/api/tires/"+tireID+"/readings", acc.Token, gin.H{"pressure_value": 2.2, "pressure_unit": "bar"})
		assert.Equal(t, http.StatusCreated, w.Code)
	}
}
