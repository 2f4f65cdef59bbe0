package http

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"
	"liyu1981.xyz/tpms-service/pkg/auth"
	"liyu1981.xyz/tpms-service/pkg/tpms"
)

type RestfulServer struct {
	Server           *gin.Engine
	Tpms             *tpms.TPMS
	Tokens           *auth.TokenIssuer
	RateLimiterStore *tpms.RateLimiterStore
}

func (rs *RestfulServer) GetLimiter(tireID string) *rate.Limiter {
	if rs.RateLimiterStore == nil {
		return nil
	} else {
		return rs.RateLimiterStore.GetLimiter(tireID)
	}
}

func (rs *RestfulServer) CheckTireLimiter(tireID string) bool {
	return rs.RateLimiterStore.Allow(tireID)
}

func (rs *RestfulServer) SetLimiter(tireID string, tireRate float64, tireBurst int) {
	if rs.RateLimiterStore == nil {
		return
	}
	rs.RateLimiterStore.SetLimiter(tireID, rate.Limit(tireRate), tireBurst)
}

func (rs *RestfulServer) Setup() {
	rs.Server.GET("/healthz", rs.HealthCheck)
	rs.Server.GET("/metrics", gin.WrapH(promhttp.Handler()))

	authRoutes := rs.Server.Group("/auth")
	{
		authRoutes.POST("/register", rs.Register)
		authRoutes.POST("/login", rs.Login)
	}

	// sensors authenticate with the owner's credentials in the body
	rs.Server.POST("/iot/readings", rs.PostSensorReading)

	api := rs.Server.Group("/api", rs.RequireToken())
	{
		api.GET("/alert-types", rs.GetAlertTypes)
		api.GET("/notifications", rs.GetUserNotifications)

		api.POST("/vehicles", rs.PostVehicle)
		api.GET("/vehicles", rs.GetVehicles)
		api.GET("/vehicles/:vehicle_id", rs.GetVehicle)
		api.PATCH("/vehicles/:vehicle_id", rs.PatchVehicle)
		api.DELETE("/vehicles/:vehicle_id", rs.DeleteVehicle)
		api.GET("/vehicles/:vehicle_id/tires", rs.GetVehicleTires)
		api.GET("/vehicles/:vehicle_id/notifications", rs.GetVehicleNotifications)

		api.POST("/tires", rs.PostTire)
		api.GET("/tires/:tire_id", rs.GetTire)
		api.PATCH("/tires/:tire_id", rs.PatchTire)
		api.DELETE("/tires/:tire_id", rs.DeleteTire)
		api.POST("/tires/:tire_id/readings", rs.PostReading)
		api.GET("/tires/:tire_id/readings", rs.GetReadings)
		api.POST("/tires/:tire_id/limiter", rs.PostLimiter)
	}
}
