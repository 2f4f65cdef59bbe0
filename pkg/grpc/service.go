package grpc

import (
	"context"
	"encoding/json"

	"google.golang.org/grpc"
	"liyu1981.xyz/tpms-service/pkg/models"
)

const (
	ServiceName = "tpms.TPMSService"

	methodAddReading       = "/" + ServiceName + "/AddReading"
	methodGetReadings      = "/" + ServiceName + "/GetReadings"
	methodGetNotifications = "/" + ServiceName + "/GetNotifications"
	methodPostLimiter      = "/" + ServiceName + "/PostLimiter"
)

type StatusResponse struct {
	Success bool   `json:"success"`
	Kind    string `json:"kind,omitempty"`
	Message string `json:"message"`
}

// AddReadingRequest takes the value as a JSON number or a numeric string.
type AddReadingRequest struct {
	TireID        string      `json:"tire_id"`
	PressureValue json.Number `json:"pressure_value"`
	PressureUnit  string      `json:"pressure_unit"`
}

func (r *AddReadingRequest) GetTireID() string { return r.TireID }

type AddReadingResponse struct {
	Status  *StatusResponse       `json:"status"`
	Reading *models.ReadingResult `json:"reading,omitempty"`
}

type GetReadingsRequest struct {
	TireID string `json:"tire_id"`
	Days   int    `json:"days"`
}

type GetReadingsResponse struct {
	Status   *StatusResponse          `json:"status"`
	Readings []models.PressureReading `json:"readings,omitempty"`
}

// GetNotificationsRequest lists the caller's notifications, or one vehicle's
// when VehicleID is set.
type GetNotificationsRequest struct {
	VehicleID string `json:"vehicle_id,omitempty"`
	Limit     int    `json:"limit"`
}

type GetNotificationsResponse struct {
	Status        *StatusResponse           `json:"status"`
	Notifications []models.NotificationView `json:"notifications,omitempty"`
}

type PostLimiterRequest struct {
	TireID    string  `json:"tire_id"`
	TireRate  float64 `json:"tire_rate"`
	TireBurst int     `json:"tire_burst"`
}

type PostLimiterResponse struct {
	Status *StatusResponse `json:"status"`
}

type TPMSServiceServer interface {
	AddReading(context.Context, *AddReadingRequest) (*AddReadingResponse, error)
	GetReadings(context.Context, *GetReadingsRequest) (*GetReadingsResponse, error)
	GetNotifications(context.Context, *GetNotificationsRequest) (*GetNotificationsResponse, error)
	PostLimiter(context.Context, *PostLimiterRequest) (*PostLimiterResponse, error)
}

func unaryHandler[Req any, Resp any](
	fullMethod string,
	call func(TPMSServiceServer, context.Context, *Req) (*Resp, error),
) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(TPMSServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(TPMSServiceServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*TPMSServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "AddReading",
			Handler:    unaryHandler(methodAddReading, TPMSServiceServer.AddReading),
		},
		{
			MethodName: "GetReadings",
			Handler:    unaryHandler(methodGetReadings, TPMSServiceServer.GetReadings),
		},
		{
			MethodName: "GetNotifications",
			Handler:    unaryHandler(methodGetNotifications, TPMSServiceServer.GetNotifications),
		},
		{
			MethodName: "PostLimiter",
			Handler:    unaryHandler(methodPostLimiter, TPMSServiceServer.PostLimiter),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "tpms",
}

func RegisterTPMSServiceServer(s grpc.ServiceRegistrar, srv TPMSServiceServer) {
	s.RegisterService(&ServiceDesc, srv)
}

type TPMSServiceClient interface {
	AddReading(ctx context.Context, in *AddReadingRequest, opts ...grpc.CallOption) (*AddReadingResponse, error)
	GetReadings(ctx context.Context, in *GetReadingsRequest, opts ...grpc.CallOption) (*GetReadingsResponse, error)
	GetNotifications(ctx context.Context, in *GetNotificationsRequest, opts ...grpc.CallOption) (*GetNotificationsResponse, error)
	PostLimiter(ctx context.Context, in *PostLimiterRequest, opts ...grpc.CallOption) (*PostLimiterResponse, error)
}

type tpmsServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewTPMSServiceClient(cc grpc.ClientConnInterface) TPMSServiceClient {
	return &tpmsServiceClient{cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *tpmsServiceClient) AddReading(ctx context.Context, in *AddReadingRequest, opts ...grpc.CallOption) (*AddReadingResponse, error) {
	return invoke[AddReadingResponse](ctx, c.cc, methodAddReading, in, opts)
}

func (c *tpmsServiceClient) GetReadings(ctx context.Context, in *GetReadingsRequest, opts ...grpc.CallOption) (*GetReadingsResponse, error) {
	return invoke[GetReadingsResponse](ctx, c.cc, methodGetReadings, in, opts)
}

func (c *tpmsServiceClient) GetNotifications(ctx context.Context, in *GetNotificationsRequest, opts ...grpc.CallOption) (*GetNotificationsResponse, error) {
	return invoke[GetNotificationsResponse](ctx, c.cc, methodGetNotifications, in, opts)
}

func (c *tpmsServiceClient) PostLimiter(ctx context.Context, in *PostLimiterRequest, opts ...grpc.CallOption) (*PostLimiterResponse, error) {
	return invoke[PostLimiterResponse](ctx, c.cc, methodPostLimiter, in, opts)
}
