package tpms

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"liyu1981.xyz/tpms-service/pkg/db"
	"liyu1981.xyz/tpms-service/pkg/models"
	"liyu1981.xyz/tpms-service/pkg/observability"
	"liyu1981.xyz/tpms-service/pkg/tpms/mocks"
)

func GetMockTPMSWithMemorySqliteDialector(t *testing.T, useMockINotification bool) (
	*gomock.Controller,
	*TPMS,
	*mocks.MockINotification,
) {
	ctrl := gomock.NewController(t)

	mockINotification := mocks.NewMockINotification(ctrl)
	dialector := db.UseMemorySqliteDialector()
	dbInstance := db.GetInstance(dialector) // ensure migrations and seed
	tpmsInstance := New(*dbInstance).WithMetrics(observability.NewMetricsForTesting())

	require.NoError(t, tpmsInstance.LoadCatalog(context.Background()))

	if useMockINotification {
		tpmsInstance.WithServices(ServiceOpts{Notification: mockINotification})
	}

	return ctrl, tpmsInstance, mockINotification
}

// fixture is one user owning one vehicle with one tire.
type fixture struct {
	User    *models.User
	Vehicle *models.Vehicle
	Tire    *models.Tire
}

func newFixture(t *testing.T, tp *TPMS, optimal float64, unit string) fixture {
	t.Helper()
	ctx := context.Background()

	user, err := tp.User.Register(ctx, &models.UserInput{
		Name:     "Test Driver",
		Email:    uuid.NewString() + "@example.com",
		Password: "password123",
	})
	require.NoError(t, err)

	vehicle, err := tp.Vehicle.AddVehicle(ctx, user.ID, &models.VehicleInput{Make: "Skoda", Model: "Octavia", Year: 2019})
	require.NoError(t, err)

	tire, err := tp.Tire.AddTire(ctx, user.ID, &models.TireInput{
		VehicleID:       vehicle.ID,
		Label:           "Front Left",
		OptimalPressure: optimal,
		PressureUnit:    unit,
	})
	require.NoError(t, err)

	return fixture{User: user, Vehicle: vehicle, Tire: tire}
}

func countRows(t *testing.T, tp *TPMS, model any, tireID string) int64 {
	t.Helper()
	var count int64
	require.NoError(t, tp.Db.Conn.Model(model).Where("tire_id = ?", tireID).Count(&count).Error)
	return count
}

func ParseLogs(r io.Reader) []any {
	scanner := bufio.NewScanner(r)
	var logs []any

	for scanner.Scan() {
		line := scanner.Text()
		var j any
		if err := json.Unmarshal([]byte(line), &j); err == nil {
			logs = append(logs, j)
		}
	}
	return logs
}

// findLog returns the first log entry with msg.
func findLog(logs []any, msg string) map[string]any {
	for _, l := range logs {
		entry, ok := l.(map[string]any)
		if ok && entry["msg"] == msg {
			return entry
		}
	}
	return nil
}
