package grpc

import (
	"context"
	"fmt"

	z "github.com/Oudwins/zog"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"liyu1981.xyz/tpms-service/pkg/common"
	"liyu1981.xyz/tpms-service/pkg/models"
	"liyu1981.xyz/tpms-service/pkg/tpms"
)

func validateTireID(tireID *string) z.ZogIssueList {
	var tireIDValidator = z.String().Min(1).Required()
	return tireIDValidator.Validate(tireID)
}

func okStatus() *StatusResponse {
	return &StatusResponse{Success: true, Message: "OK"}
}

func validationStatus(issues any) *StatusResponse {
	return &StatusResponse{
		Success: false,
		Kind:    string(tpms.KindValidation),
		Message: fmt.Sprintf("validation error: %v", issues),
	}
}

// errorStatus carries the kind and caller-safe message of err; the cause is
// only logged.
func errorStatus(method string, err error) *StatusResponse {
	kind := tpms.KindOf(err)
	if kind == tpms.KindPersistence {
		common.GetLoggerWith(common.LoggerNameGrpcServer).Error("Call failed",
			zap.String("method", method),
			zap.Error(err))
	}
	return &StatusResponse{Success: false, Kind: string(kind), Message: tpms.MessageOf(err)}
}

func (s *TPMSServer) AddReading(ctx context.Context, req *AddReadingRequest) (*AddReadingResponse, error) {
	if err := validateTireID(&req.TireID); err != nil {
		return &AddReadingResponse{Status: validationStatus(err)}, nil
	}

	value, err := tpms.ParsePressureValue(req.PressureValue.String())
	if err != nil {
		return &AddReadingResponse{Status: errorStatus("AddReading", err)}, nil
	}

	result, err := s.Tpms.Reading.AddReading(ctx, userIDFrom(ctx), &models.ReadingInput{
		TireID:        req.TireID,
		PressureValue: value,
		PressureUnit:  req.PressureUnit,
	})
	if err != nil {
		return &AddReadingResponse{Status: errorStatus("AddReading", err)}, nil
	}

	return &AddReadingResponse{Status: okStatus(), Reading: result}, nil
}

func (s *TPMSServer) GetReadings(ctx context.Context, req *GetReadingsRequest) (*GetReadingsResponse, error) {
	if err := validateTireID(&req.TireID); err != nil {
		return &GetReadingsResponse{Status: validationStatus(err)}, nil
	}

	readings, err := s.Tpms.Reading.GetTireReadings(ctx, userIDFrom(ctx), req.TireID, req.Days)
	if err != nil {
		return &GetReadingsResponse{Status: errorStatus("GetReadings", err)}, nil
	}

	return &GetReadingsResponse{Status: okStatus(), Readings: readings}, nil
}

func (s *TPMSServer) GetNotifications(ctx context.Context, req *GetNotificationsRequest) (*GetNotificationsResponse, error) {
	var (
		notifications []models.NotificationView
		err           error
	)
	if req.VehicleID == "" {
		notifications, err = s.Tpms.Notification.GetUserNotifications(ctx, userIDFrom(ctx), req.Limit)
	} else {
		notifications, err = s.Tpms.Notification.GetVehicleNotifications(ctx, userIDFrom(ctx), req.VehicleID, req.Limit)
	}
	if err != nil {
		return &GetNotificationsResponse{Status: errorStatus("GetNotifications", err)}, nil
	}

	return &GetNotificationsResponse{Status: okStatus(), Notifications: notifications}, nil
}

func (s *TPMSServer) PostLimiter(ctx context.Context, req *PostLimiterRequest) (*PostLimiterResponse, error) {
	if err := validateTireID(&req.TireID); err != nil {
		return &PostLimiterResponse{Status: validationStatus(err)}, nil
	}

	var rateValidator = z.Float64().Required().GT(0)
	if err := rateValidator.Validate(&req.TireRate); err != nil {
		return &PostLimiterResponse{Status: validationStatus(err)}, nil
	}

	var burstValidator = z.Int().Required().GT(0)
	if err := burstValidator.Validate(&req.TireBurst); err != nil {
		return &PostLimiterResponse{Status: validationStatus(err)}, nil
	}

	if _, err := s.Tpms.Tire.GetTire(ctx, userIDFrom(ctx), req.TireID); err != nil {
		return &PostLimiterResponse{Status: errorStatus("PostLimiter", err)}, nil
	}

	if s.RateLimiterStore == nil {
		return &PostLimiterResponse{
			Status: &StatusResponse{
				Success: false,
				Message: "RateLimiterStore is not used. No effect.",
			},
		}, nil
	}

	s.RateLimiterStore.SetLimiter(req.TireID, rate.Limit(req.TireRate), req.TireBurst)
	return &PostLimiterResponse{Status: okStatus()}, nil
}
