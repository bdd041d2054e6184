package handlers

import (
	"net/http"

	"github.com/dolevhayut/mineral-gas-sub001/config"
	"github.com/dolevhayut/mineral-gas-sub001/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm/clause"
)

type SaveDeliveryDaysRequest struct {
	Days []struct {
		DayOfWeek int      `json:"day_of_week" binding:"min=0,max=6"`
		Cities    []string `json:"cities"`
	} `json:"days" binding:"required,min=1,max=7"`
}

// AdminSaveDeliveryDays upserts the serviced cities for each working
// day and reports per-day success/failure counts. Each day is upserted
// on its own; a failed day does not stop the rest.
func AdminSaveDeliveryDays(c *gin.Context) {
	var req SaveDeliveryDaysRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	saved, failed := 0, 0
	var failedDays []int
	for _, day := range req.Days {
		cfg := models.DeliveryDayConfig{
			DayOfWeek: day.DayOfWeek,
			Cities:    models.CityList(day.Cities),
		}
		err := config.DB.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "day_of_week"}},
			DoUpdates: clause.AssignmentColumns([]string{"cities", "updated_at"}),
		}).Create(&cfg).Error
		if err != nil {
			failed++
			failedDays = append(failedDays, day.DayOfWeek)
			continue
		}
		saved++
	}

	status := http.StatusOK
	if failed > 0 {
		status = http.StatusMultiStatus
	}
	c.JSON(status, gin.H{
		"message":     "Delivery days saved",
		"saved":       saved,
		"failed":      failed,
		"failed_days": failedDays,
	})
}
