package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	z "github.com/Oudwins/zog"
	"github.com/Oudwins/zog/zhttp"
	"liyu1981.xyz/tpms-service/pkg/models"
	"liyu1981.xyz/tpms-service/pkg/tpms"
)

type VehicleRequest struct {
	Make  string `json:"make" zog:"make"`
	Model string `json:"model" zog:"model"`
	Year  int    `json:"year" zog:"year"`
}

var vehicleRequestSchema = z.Struct(z.Shape{
	"Make":  z.String().Trim().Required().Max(100),
	"Model": z.String().Trim().Required().Max(100),
	"Year":  z.Int(),
})

func (rs *RestfulServer) PostVehicle(c *gin.Context) {
	var req VehicleRequest
	if issues := vehicleRequestSchema.Parse(zhttp.Request(c.Request), &req); issues != nil {
		writeIssues(c, issues)
		return
	}

	vehicle, err := rs.Tpms.Vehicle.AddVehicle(c.Request.Context(), currentUserID(c), &models.VehicleInput{
		Make:  req.Make,
		Model: req.Model,
		Year:  req.Year,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, vehicle)
}

func (rs *RestfulServer) GetVehicles(c *gin.Context) {
	vehicles, err := rs.Tpms.Vehicle.ListUserVehicles(c.Request.Context(), currentUserID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"vehicles": vehicles})
}

func (rs *RestfulServer) GetVehicle(c *gin.Context) {
	vehicle, err := rs.Tpms.Vehicle.GetVehicle(c.Request.Context(), currentUserID(c), c.Param("vehicle_id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, vehicle)
}

// VehicleUpdateRequest is a partial update, so absent fields stay nil.
type VehicleUpdateRequest struct {
	Make  *string `json:"make"`
	Model *string `json:"model"`
	Year  *int    `json:"year"`
}

func (rs *RestfulServer) PatchVehicle(c *gin.Context) {
	var req VehicleUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, errorBody(string(tpms.KindValidation), "Invalid request body"))
		return
	}

	vehicle, err := rs.Tpms.Vehicle.UpdateVehicle(c.Request.Context(), currentUserID(c), c.Param("vehicle_id"), &models.VehicleUpdate{
		Make:  req.Make,
		Model: req.Model,
		Year:  req.Year,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, vehicle)
}

func (rs *RestfulServer) DeleteVehicle(c *gin.Context) {
	vehicleID := c.Param("vehicle_id")
	if err := rs.Tpms.Vehicle.DeleteVehicle(c.Request.Context(), currentUserID(c), vehicleID); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Vehicle " + vehicleID + " deleted successfully"})
}

func (rs *RestfulServer) GetVehicleTires(c *gin.Context) {
	tires, err := rs.Tpms.Tire.ListVehicleTires(c.Request.Context(), currentUserID(c), c.Param("vehicle_id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tires": tires})
}

type TireRequest struct {
	VehicleID       string  `json:"vehicle_id" zog:"vehicle_id"`
	Label           string  `json:"label" zog:"label"`
	OptimalPressure float64 `json:"optimal_pressure" zog:"optimal_pressure"`
	PressureUnit    string  `json:"pressure_unit" zog:"pressure_unit"`
}

var tireRequestSchema = z.Struct(z.Shape{
	"VehicleID":       z.String().Trim().Required(),
	"Label":           z.String().Trim().Required().Max(100),
	"OptimalPressure": z.Float64().Required(),
	"PressureUnit":    z.String().Trim().Required(),
})

func (rs *RestfulServer) PostTire(c *gin.Context) {
	var req TireRequest
	if issues := tireRequestSchema.Parse(zhttp.Request(c.Request), &req); issues != nil {
		writeIssues(c, issues)
		return
	}

	tire, err := rs.Tpms.Tire.AddTire(c.Request.Context(), currentUserID(c), &models.TireInput{
		VehicleID:       req.VehicleID,
		Label:           req.Label,
		OptimalPressure: req.OptimalPressure,
		PressureUnit:    req.PressureUnit,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, tire)
}

func (rs *RestfulServer) GetTire(c *gin.Context) {
	tire, err := rs.Tpms.Tire.GetTire(c.Request.Context(), currentUserID(c), c.Param("tire_id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, tire)
}

// TireUpdateRequest is a partial update, so absent fields stay nil.
type TireUpdateRequest struct {
	Label           *string  `json:"label"`
	OptimalPressure *float64 `json:"optimal_pressure"`
	PressureUnit    *string  `json:"pressure_unit"`
}

func (rs *RestfulServer) PatchTire(c *gin.Context) {
	var req TireUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, errorBody(string(tpms.KindValidation), "Invalid request body"))
		return
	}

	tire, err := rs.Tpms.Tire.UpdateTire(c.Request.Context(), currentUserID(c), c.Param("tire_id"), &models.TireUpdate{
		Label:           req.Label,
		OptimalPressure: req.OptimalPressure,
		PressureUnit:    req.PressureUnit,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, tire)
}

func (rs *RestfulServer) DeleteTire(c *gin.Context) {
	tireID := c.Param("tire_id")
	if err := rs.Tpms.Tire.DeleteTire(c.Request.Context(), currentUserID(c), tireID); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Tire " + tireID + " deleted successfully"})
}
