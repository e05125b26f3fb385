package productcontroller

import (
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/tealeg/xlsx"
	"gorm.io/gorm"

	"github.com/RG-basket/rgbasket-sub001/models"
)

// ImportProductsFromExcel bulk-upserts catalog products from an uploaded
// .xlsx file. Expected columns: Name, Description, Stock, Active, Weights
// (Label|Unit|Price|OfferPrice entries joined by ";"), AvailableSlots,
// Image. Rows are matched to existing products by name.
func ImportProductsFromExcel(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		fileHeader, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Excel file is required"})
			return
		}
		f, err := fileHeader.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Failed to open uploaded file"})
			return
		}
		defer f.Close()

		data, err := io.ReadAll(f)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to read uploaded file"})
			return
		}
		wb, err := xlsx.OpenBinary(data)
		if err != nil || len(wb.Sheets) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Not a valid Excel workbook"})
			return
		}

		sheet := wb.Sheets[0]
		imported, failed := 0, 0

		err = db.Transaction(func(tx *gorm.DB) error {
			for i, row := range sheet.Rows {
				if i == 0 || len(row.Cells) < 5 { // header or short row
					continue
				}
				name := strings.TrimSpace(row.Cells[0].String())
				if name == "" {
					continue
				}
				stock, _ := strconv.Atoi(strings.TrimSpace(row.Cells[2].String()))
				active := strings.EqualFold(strings.TrimSpace(row.Cells[3].String()), "true")

				weights := parseWeightCell(row.Cells[4].String())
				if len(weights) == 0 {
					failed++
					continue
				}

				product := models.Product{
					Name:        name,
					Description: row.Cells[1].String(),
					Stock:       stock,
					InStock:     stock > 0,
					Active:      active,
				}
				if len(row.Cells) > 5 {
					product.AvailableSlots = strings.TrimSpace(row.Cells[5].String())
				}
				if len(row.Cells) > 6 {
					product.Image = strings.TrimSpace(row.Cells[6].String())
				}

				var existing models.Product
				if err := tx.Where("name = ?", name).First(&existing).Error; err == nil {
					if err := tx.Model(&existing).Updates(map[string]interface{}{
						"description":     product.Description,
						"stock":           product.Stock,
						"in_stock":        product.InStock,
						"active":          product.Active,
						"available_slots": product.AvailableSlots,
					}).Error; err != nil {
						return err
					}
					if err := tx.Where("product_id = ?", existing.ID).Delete(&models.ProductWeight{}).Error; err != nil {
						return err
					}
					for j := range weights {
						weights[j].ProductID = existing.ID
						if err := tx.Create(&weights[j]).Error; err != nil {
							return err
						}
					}
				} else {
					product.Weights = weights
					if err := tx.Create(&product).Error; err != nil {
						return err
					}
				}
				imported++
			}
			return nil
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Import failed, nothing was changed"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "imported": imported, "skipped": failed})
	}
}

// parseWeightCell decodes "Label|Unit|Price|OfferPrice;..." entries.
func parseWeightCell(cell string) []models.ProductWeight {
	var out []models.ProductWeight
	for _, entry := range strings.Split(cell, ";") {
		parts := strings.Split(strings.TrimSpace(entry), "|")
		if len(parts) != 4 {
			continue
		}
		price, err1 := strconv.ParseFloat(parts[2], 64)
		offer, err2 := strconv.ParseFloat(parts[3], 64)
		if err1 != nil || err2 != nil || price <= 0 || offer <= 0 || offer > price {
			continue
		}
		out = append(out, models.ProductWeight{
			Label:      parts[0],
			Unit:       parts[1],
			Price:      price,
			OfferPrice: offer,
		})
	}
	return out
}
