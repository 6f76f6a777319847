package controllers

import (
	"bytes"
	"net/http"
	"time"

	"github.com/Govind-619/storefront/models"
	"github.com/Govind-619/storefront/utils"
	"github.com/gin-gonic/gin"
	"github.com/tealeg/xlsx"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportCoupons downloads every coupon with its usage as an Excel sheet
func (ctl *Controller) ExportCoupons(c *gin.Context) {
	utils.LogInfo("ExportCoupons called")

	coupons, err := ctl.Coupons.ListCoupons(c.Request.Context())
	if err != nil {
		utils.LogError("Failed to list coupons for export: %v", err)
		utils.RespondError(c, err)
		return
	}

	file, err := couponWorkbook(ctl.StoreName, coupons, time.Now())
	if err != nil {
		utils.LogError("Failed to create Excel sheet: %v", err)
		utils.InternalServerError(c, "Failed to create Excel sheet", err.Error())
		return
	}

	var buf bytes.Buffer
	if err := file.Write(&buf); err != nil {
		utils.LogError("Failed to write Excel file: %v", err)
		utils.InternalServerError(c, "Failed to write Excel file", nil)
		return
	}
	c.Header("Content-Disposition", "attachment; filename=coupons.xlsx")
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

func couponWorkbook(storeName string, coupons []models.Coupon, now time.Time) (*xlsx.File, error) {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Coupons")
	if err != nil {
		return nil, err
	}

	bold := xlsx.NewStyle()
	font := xlsx.DefaultFont()
	font.Bold = true
	bold.Font = *font

	title := sheet.AddRow()
	title.AddCell().SetString(storeName + " - Coupons")
	title.Cells[0].SetStyle(bold)
	sheet.AddRow().AddCell().SetString("Generated: " + now.Format("2006-01-02 15:04"))
	sheet.AddRow()

	headerRow := sheet.AddRow()
	for _, h := range []string{"ID", "Code", "Discount %", "Min Purchase", "Used", "Max Uses", "Expiry", "Active", "Valid Now"} {
		cell := headerRow.AddCell()
		cell.SetString(h)
		cell.SetStyle(bold)
	}

	for _, cp := range coupons {
		row := sheet.AddRow()
		row.AddCell().SetInt(int(cp.ID))
		row.AddCell().SetString(cp.Code)
		row.AddCell().SetInt(cp.DiscountPercent)
		row.AddCell().SetInt64(cp.MinPurchase)
		row.AddCell().SetInt(cp.UsedCount)
		row.AddCell().SetInt(cp.MaxUses)
		row.AddCell().SetString(cp.Expiry.Format("2006-01-02 15:04"))
		row.AddCell().SetBool(cp.Active)
		row.AddCell().SetBool(cp.ValidAt(now))
	}
	return file, nil
}
