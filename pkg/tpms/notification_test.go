package tpms

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"liyu1981.xyz/tpms-service/pkg/common"
	"liyu1981.xyz/tpms-service/pkg/dispatch"
	"liyu1981.xyz/tpms-service/pkg/models"
	_ "liyu1981.xyz/tpms-service/pkg/testing"
)

type recordingDispatcher struct {
	events []dispatch.Event
	err    error
}

func (r *recordingDispatcher) Dispatch(_ context.Context, event dispatch.Event) error {
	r.events = append(r.events, event)
	return r.err
}

func (r *recordingDispatcher) Close() error { return nil }

func TestEmitComposesAndDispatches(t *testing.T) {
	common.SetTestLoggerNop()
	useFakeClock(t)

	_, tp, _ := GetMockTPMSWithMemorySqliteDialector(t, false)
	fx := newFixture(t, tp, 2.20, "bar")
	recorder := &recordingDispatcher{}
	tp.WithDispatcher(recorder)

	old := models.AlertTypeNormal
	n, err := tp.Notification.Emit(context.Background(), fx.Tire.ID, &old, models.AlertTypeHighPressureWarning)
	require.NoError(t, err)

	assert.NotEmpty(t, n.ID)
	assert.Equal(t, "Tire status changed to high_pressure_warning", n.Title)
	assert.Equal(t, "Your tire 'Front Left' status changed to high_pressure_warning, Slight increase in pressure (10-20%).", n.Body)

	require.Len(t, recorder.events, 1)
	event := recorder.events[0]
	assert.Equal(t, n.ID, event.NotificationID)
	assert.Equal(t, fx.Vehicle.ID, event.VehicleID)
	assert.Equal(t, "Front Left", event.TireLabel)
	assert.Equal(t, 1, event.SeverityLevel)
	assert.Equal(t, &old, event.OldAlertType)
}

func TestEmitDispatchFailureIsLogged(t *testing.T) {
	var buf bytes.Buffer
	common.SetTestCaptureLogger(&buf, zapcore.InfoLevel)

	_, tp, _ := GetMockTPMSWithMemorySqliteDialector(t, false)
	fx := newFixture(t, tp, 2.20, "bar")
	tp.WithDispatcher(&recordingDispatcher{err: errors.New("kafka unavailable")})

	n, err := tp.Notification.Emit(context.Background(), fx.Tire.ID, nil, models.AlertTypeNormal)
	require.NoError(t, err)
	assert.Len(t, tireNotifications(t, tp, fx.Tire.ID), 1)

	entry := findLog(ParseLogs(&buf), "Notification dispatch failed")
	require.NotNil(t, entry)
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "dispatch", entry["logger"])
	assert.Equal(t, n.ID, entry["notification_id"])
}

func TestEmitErrors(t *testing.T) {
	common.SetTestLoggerNop()

	_, tp, _ := GetMockTPMSWithMemorySqliteDialector(t, false)
	fx := newFixture(t, tp, 2.20, "bar")
	ctx := context.Background()

	_, err := tp.Notification.Emit(ctx, fx.Tire.ID, nil, "flat_tire")
	assert.ErrorIs(t, err, ErrNotFound)

	unknown := "flat_tire"
	_, err = tp.Notification.Emit(ctx, fx.Tire.ID, &unknown, models.AlertTypeNormal)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = tp.Notification.Emit(ctx, uuid.NewString(), nil, models.AlertTypeNormal)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.Empty(t, tireNotifications(t, tp, fx.Tire.ID))
}

func TestNotificationHistory(t *testing.T) {
	common.SetTestLoggerNop()
	fake := useFakeClock(t)

	_, tp, _ := GetMockTPMSWithMemorySqliteDialector(t, false)
	fx := newFixture(t, tp, 2.20, "bar")
	stranger := newFixture(t, tp, 2.20, "bar")
	ctx := context.Background()

	// a second vehicle of the same user
	other, err := tp.Vehicle.AddVehicle(ctx, fx.User.ID, &models.VehicleInput{Make: "Fiat", Model: "Panda"})
	require.NoError(t, err)
	otherTire, err := tp.Tire.AddTire(ctx, fx.User.ID, &models.TireInput{
		VehicleID: other.ID, Label: "Rear Right", OptimalPressure: 2.0, PressureUnit: "bar",
	})
	require.NoError(t, err)

	// 12 transitions on the first tire, alternating normal and critical
	for i := range 12 {
		value := 2.20
		if i%2 == 1 {
			value = 1.50
		}
		fake.Advance(time.Minute)
		_, err := tp.Reading.AddReading(ctx, fx.User.ID, &models.ReadingInput{TireID: fx.Tire.ID, PressureValue: value, PressureUnit: "bar"})
		require.NoError(t, err)
	}
	fake.Advance(time.Minute)
	_, err = tp.Reading.AddReading(ctx, fx.User.ID, &models.ReadingInput{TireID: otherTire.ID, PressureValue: 2.0, PressureUnit: "bar"})
	require.NoError(t, err)

	latest, err := tp.Notification.GetUserNotifications(ctx, fx.User.ID, 0)
	require.NoError(t, err)
	require.Len(t, latest, DefaultNotificationLimit)
	assert.Equal(t, otherTire.ID, latest[0].TireID)
	assert.Equal(t, other.ID, latest[0].VehicleID)
	assert.Equal(t, fx.Vehicle.ID, latest[1].VehicleID)
	assert.True(t, latest[0].SentAt.After(latest[1].SentAt))

	three, err := tp.Notification.GetUserNotifications(ctx, fx.User.ID, 3)
	require.NoError(t, err)
	assert.Len(t, three, 3)

	all, err := tp.Notification.GetUserNotifications(ctx, fx.User.ID, 100)
	require.NoError(t, err)
	assert.Len(t, all, 13)

	perVehicle, err := tp.Notification.GetVehicleNotifications(ctx, fx.User.ID, other.ID, 0)
	require.NoError(t, err)
	require.Len(t, perVehicle, 1)
	assert.Nil(t, perVehicle[0].OldAlertType)
	assert.Equal(t, models.AlertTypeNormal, perVehicle[0].NewAlertType)

	_, err = tp.Notification.GetUserNotifications(ctx, fx.User.ID, -1)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = tp.Notification.GetVehicleNotifications(ctx, stranger.User.ID, other.ID, 10)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = tp.Notification.GetVehicleNotifications(ctx, fx.User.ID, uuid.NewString(), 10)
	assert.ErrorIs(t, err, ErrNotFound)

	empty, err := tp.Notification.GetUserNotifications(ctx, stranger.User.ID, 10)
	require.NoError(t, err)
	assert.Empty(t, empty)
}
