package slotControllers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/RG-basket/rgbasket-sub001/models"
	"github.com/RG-basket/rgbasket-sub001/scheduling"
)

var defaultSlots = []models.DeliverySlot{
	{Name: "Morning", StartTime: "07:00", EndTime: "10:00", Capacity: 50, CutoffHours: 1, IsActive: true},
	{Name: "Afternoon", StartTime: "12:00", EndTime: "15:00", Capacity: 50, CutoffHours: 2, IsActive: true},
	{Name: "Evening", StartTime: "17:00", EndTime: "20:00", Capacity: 50, CutoffHours: 2, IsActive: true},
}

// SeedDefaultSlots makes sure the default slot definitions exist. It runs
// synchronously in main before the server starts listening, so the first
// availability query never races it. If a prior inconsistent state left
// duplicate names behind, the duplicates (all but the earliest-created row)
// are removed and the upsert retried once.
func SeedDefaultSlots(db *gorm.DB) error {
	for _, def := range defaultSlots {
		if err := seedSlot(db, def); err == nil {
			continue
		}
		if err := dedupeSlot(db, def.Name); err != nil {
			return err
		}
		if err := seedSlot(db, def); err != nil {
			return fmt.Errorf("seed slot %q: %w", def.Name, err)
		}
	}
	return nil
}

func seedSlot(db *gorm.DB, def models.DeliverySlot) error {
	var existing models.DeliverySlot
	err := db.Where("name = ?", def.Name).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return db.Create(&def).Error
}

func dedupeSlot(db *gorm.DB, name string) error {
	var rows []models.DeliverySlot
	if err := db.Where("name = ?", name).Order("created_at ASC").Find(&rows).Error; err != nil {
		return err
	}
	if len(rows) < 2 {
		return nil
	}
	for _, dup := range rows[1:] {
		if err := db.Delete(&models.DeliverySlot{}, dup.ID).Error; err != nil {
			return err
		}
	}
	return nil
}

// ListActiveSlots returns active slot definitions ordered by start time.
func ListActiveSlots(db *gorm.DB) ([]models.DeliverySlot, error) {
	var slots []models.DeliverySlot
	err := db.Where("is_active = ?", true).Order("start_time ASC").Find(&slots).Error
	return slots, err
}

func toWindows(slots []models.DeliverySlot) []scheduling.SlotWindow {
	out := make([]scheduling.SlotWindow, 0, len(slots))
	for _, s := range slots {
		out = append(out, scheduling.SlotWindow{
			ID:          s.ID,
			Name:        s.Name,
			StartTime:   s.StartTime,
			EndTime:     s.EndTime,
			Capacity:    s.Capacity,
			CutoffHours: s.CutoffHours,
		})
	}
	return out
}

// -------- Handlers --------

// GET /slots
func ListSlotsHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		slots, err := ListActiveSlots(db)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch slots"})
			return
		}
		c.JSON(http.StatusOK, slots)
	}
}

type slotInput struct {
	Name        string `json:"name" binding:"required"`
	StartTime   string `json:"start_time" binding:"required"`
	EndTime     string `json:"end_time" binding:"required"`
	Capacity    *int   `json:"capacity" binding:"required"`
	CutoffHours *int   `json:"cutoff_hours" binding:"required"`
	IsActive    *bool  `json:"is_active"`
}

// POST /admin/slots
func CreateSlotHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in slotInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid input: " + err.Error()})
			return
		}
		if _, _, err := scheduling.ParseClock(in.StartTime); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
			return
		}
		if _, _, err := scheduling.ParseClock(in.EndTime); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
			return
		}
		if *in.Capacity < 0 || *in.CutoffHours < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "capacity and cutoff_hours must not be negative"})
			return
		}

		slot := models.DeliverySlot{
			Name:        in.Name,
			StartTime:   in.StartTime,
			EndTime:     in.EndTime,
			Capacity:    *in.Capacity,
			CutoffHours: *in.CutoffHours,
			IsActive:    true,
		}
		if in.IsActive != nil {
			slot.IsActive = *in.IsActive
		}
		if err := db.Create(&slot).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				c.JSON(http.StatusConflict, gin.H{"success": false, "message": "A slot with this name already exists"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to create slot"})
			return
		}
		c.JSON(http.StatusCreated, slot)
	}
}

// PUT /admin/slots/:id
func UpdateSlotHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var slot models.DeliverySlot
		if err := db.First(&slot, "id = ?", c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Slot not found"})
			return
		}

		var in struct {
			StartTime   *string `json:"start_time"`
			EndTime     *string `json:"end_time"`
			Capacity    *int    `json:"capacity"`
			CutoffHours *int    `json:"cutoff_hours"`
			IsActive    *bool   `json:"is_active"`
		}
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid input: " + err.Error()})
			return
		}

		updates := map[string]interface{}{}
		if in.StartTime != nil {
			if _, _, err := scheduling.ParseClock(*in.StartTime); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
				return
			}
			updates["start_time"] = *in.StartTime
		}
		if in.EndTime != nil {
			if _, _, err := scheduling.ParseClock(*in.EndTime); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
				return
			}
			updates["end_time"] = *in.EndTime
		}
		if in.Capacity != nil {
			if *in.Capacity < 0 {
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "capacity must not be negative"})
				return
			}
			updates["capacity"] = *in.Capacity
		}
		if in.CutoffHours != nil {
			updates["cutoff_hours"] = *in.CutoffHours
		}
		if in.IsActive != nil {
			updates["is_active"] = *in.IsActive
		}
		if len(updates) > 0 {
			if err := db.Model(&slot).Updates(updates).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to update slot"})
				return
			}
		}
		c.JSON(http.StatusOK, slot)
	}
}

// GET /admin/slots
func ListAllSlotsHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var slots []models.DeliverySlot
		if err := db.Order("start_time ASC").Find(&slots).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch slots"})
			return
		}
		c.JSON(http.StatusOK, slots)
	}
}
