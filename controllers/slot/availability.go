package slotControllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/RG-basket/rgbasket-sub001/models"
	"github.com/RG-basket/rgbasket-sub001/scheduling"
)

// BookedCount counts live orders for (civil day, slot name). Cancelled
// orders release their booking. Order rows store the denormalized slot
// label, so matching is by name prefix.
func BookedCount(db *gorm.DB, date time.Time, slotName string, loc *time.Location) (int, error) {
	start, end := scheduling.DayWindow(date, loc)
	var n int64
	err := db.Model(&models.Order{}).
		Where("delivery_date >= ? AND delivery_date < ?", start, end).
		Where("time_slot LIKE ?", slotName+"%").
		Where("status <> ?", models.OrderStatusCancelled).
		Count(&n).Error
	return int(n), err
}

// Constraints gathers every scheduling restriction for one product.
func Constraints(db *gorm.DB, product *models.Product) (scheduling.ProductConstraints, error) {
	pc := scheduling.ProductConstraints{AllowedSlots: product.SlotWhitelist()}

	for _, b := range product.BlackoutDates {
		pc.BlackoutDates = append(pc.BlackoutDates, b.Date)
	}
	for _, r := range product.SlotRestrictions {
		pc.DateBlocks = append(pc.DateBlocks, scheduling.DateBlock{
			Date:     r.Date,
			SlotName: r.SlotName,
			Reason:   r.Reason,
		})
	}

	rules, err := dayRulesFor(db, []uint{product.ID})
	if err != nil {
		return pc, err
	}
	pc.DayBlocks = rules[product.ID]
	return pc, nil
}

func dayRulesFor(db *gorm.DB, productIDs []uint) (map[uint][]scheduling.DayBlock, error) {
	var rules []models.SlotDayRule
	if err := db.Where("product_id IN ? AND is_active = ?", productIDs, true).Find(&rules).Error; err != nil {
		return nil, err
	}
	out := make(map[uint][]scheduling.DayBlock, len(productIDs))
	for _, r := range rules {
		out[r.ProductID] = append(out[r.ProductID], scheduling.DayBlock{
			Day:       time.Weekday(r.DayOfWeek),
			SlotNames: r.BlockedSlotNames(),
			Reason:    r.Reason,
		})
	}
	return out, nil
}

// GET /products/:id/availability?date=YYYY-MM-DD
func GetAvailabilityHandler(db *gorm.DB, loc *time.Location) gin.HandlerFunc {
	return func(c *gin.Context) {
		date, err := scheduling.ParseDate(c.Query("date"), loc)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
			return
		}

		var product models.Product
		if err := db.Preload("SlotRestrictions").Preload("BlackoutDates").
			First(&product, "id = ?", c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Product not found"})
			return
		}

		slots, err := ListActiveSlots(db)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch slots"})
			return
		}

		pc, err := Constraints(db, &product)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch availability rules"})
			return
		}

		// Count every slot up front so the response always carries booked
		// numbers, available or not.
		counts := make(map[string]int, len(slots))
		for _, s := range slots {
			n, err := BookedCount(db, date, s.Name, loc)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to count bookings"})
				return
			}
			counts[s.Name] = n
		}

		resolver := scheduling.Resolver{Loc: loc, Now: time.Now}
		statuses, err := resolver.AvailableSlotsFor(toWindows(slots), pc, date, func(_ time.Time, name string) (int, error) {
			return counts[name], nil
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to resolve availability"})
			return
		}

		out := make([]gin.H, 0, len(statuses))
		for _, st := range statuses {
			out = append(out, gin.H{
				"slotId":      st.Slot.ID,
				"name":        st.Slot.Name,
				"startTime":   st.Slot.StartTime,
				"endTime":     st.Slot.EndTime,
				"capacity":    st.Slot.Capacity,
				"booked":      counts[st.Slot.Name],
				"isAvailable": st.IsAvailable,
				"reason":      st.Reason,
			})
		}
		c.JSON(http.StatusOK, out)
	}
}

type commonSlotsRequest struct {
	ProductIDs []uint `json:"productIds" binding:"required,min=1"`
}

// POST /find-common-slots
// Answers which slots the given products could ever share per weekday;
// capacity and cutoff are deliberately out of scope here.
func FindCommonSlotsHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req commonSlotsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid input: " + err.Error()})
			return
		}

		var found int64
		if err := db.Model(&models.Product{}).Where("id IN ?", req.ProductIDs).Count(&found).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch products"})
			return
		}
		if int(found) != len(req.ProductIDs) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "One or more products not found"})
			return
		}

		slots, err := ListActiveSlots(db)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch slots"})
			return
		}

		rules, err := dayRulesFor(db, req.ProductIDs)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch availability rules"})
			return
		}
		perProduct := make([][]scheduling.DayBlock, 0, len(req.ProductIDs))
		for _, id := range req.ProductIDs {
			perProduct = append(perProduct, rules[id])
		}

		c.JSON(http.StatusOK, gin.H{
			"availability": scheduling.CommonAvailableSlots(toWindows(slots), perProduct),
		})
	}
}
