package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	z "github.com/Oudwins/zog"
	"github.com/Oudwins/zog/zhttp"
	"liyu1981.xyz/tpms-service/pkg/models"
	"liyu1981.xyz/tpms-service/pkg/tpms"
)

type RegisterRequest struct {
	Name     string `json:"name" zog:"name"`
	Email    string `json:"email" zog:"email"`
	Password string `json:"password" zog:"password"`
}

var registerRequestSchema = z.Struct(z.Shape{
	"Name":     z.String().Trim().Required().Min(2).Max(100),
	"Email":    z.String().Trim().Required().Email(),
	"Password": z.String().Required().Min(8),
})

func (rs *RestfulServer) Register(c *gin.Context) {
	var req RegisterRequest
	if issues := registerRequestSchema.Parse(zhttp.Request(c.Request), &req); issues != nil {
		writeIssues(c, issues)
		return
	}

	user, err := rs.Tpms.User.Register(c.Request.Context(), &models.UserInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "User registered successfully.", "user": user})
}

type LoginRequest struct {
	Email    string `json:"email" zog:"email"`
	Password string `json:"password" zog:"password"`
}

var loginRequestSchema = z.Struct(z.Shape{
	"Email":    z.String().Trim().Required(),
	"Password": z.String().Required(),
})

func (rs *RestfulServer) Login(c *gin.Context) {
	var req LoginRequest
	if issues := loginRequestSchema.Parse(zhttp.Request(c.Request), &req); issues != nil {
		writeIssues(c, issues)
		return
	}

	user, err := rs.Tpms.User.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}

	token, err := rs.Tokens.Issue(user.ID, user.Role)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Logged in successfully.", "token": token, "user": user})
}

type SensorReadingRequest struct {
	Email         string  `json:"email" zog:"email"`
	Password      string  `json:"password" zog:"password"`
	TireID        string  `json:"tire_id" zog:"tire_id"`
	PressureValue float64 `json:"pressure_value" zog:"pressure_value"`
	PressureUnit  string  `json:"pressure_unit" zog:"pressure_unit"`
}

var sensorReadingRequestSchema = z.Struct(z.Shape{
	"Email":         z.String().Trim().Required(),
	"Password":      z.String().Required(),
	"TireID":        z.String().Trim().Required(),
	"PressureValue": z.Float64().Required(),
	"PressureUnit":  z.String().Trim().Required(),
})

// PostSensorReading is the route sensors call. Bad credentials are a 403, as
// a sensor cannot recover by logging in.
func (rs *RestfulServer) PostSensorReading(c *gin.Context) {
	var req SensorReadingRequest
	if issues := sensorReadingRequestSchema.Parse(zhttp.Request(c.Request), &req); issues != nil {
		writeIssues(c, issues)
		return
	}

	user, err := rs.Tpms.User.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if tpms.KindOf(err) == tpms.KindUnauthorized {
			c.AbortWithStatusJSON(http.StatusForbidden, errorBody(string(tpms.KindForbidden), "Invalid credentials"))
			return
		}
		writeError(c, err)
		return
	}

	if !rs.CheckTireLimiter(req.TireID) {
		writeRateLimited(c)
		return
	}

	rs.addReading(c, user.ID, &models.ReadingInput{
		TireID:        req.TireID,
		PressureValue: req.PressureValue,
		PressureUnit:  req.PressureUnit,
	})
}
