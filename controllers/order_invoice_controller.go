package controllers

import (
	"bytes"
	"net/http"
	"strconv"

	"github.com/Govind-619/storefront/middleware"
	"github.com/Govind-619/storefront/models"
	"github.com/Govind-619/storefront/utils"
	"github.com/gin-gonic/gin"
	"github.com/jung-kurt/gofpdf"
)

// DownloadReceipt renders a recorded order as a PDF receipt
func (ctl *Controller) DownloadReceipt(c *gin.Context) {
	utils.LogInfo("DownloadReceipt called")

	number := c.Param("number")
	order, err := ctl.Orders.FindOrderByNumber(c.Request.Context(), number)
	if err != nil {
		utils.LogError("Receipt lookup failed for order %s: %v", number, err)
		utils.RespondError(c, err)
		return
	}
	if order.SessionID != "" && order.SessionID != c.GetString(middleware.SessionIDKey) {
		utils.NotFound(c, "Order not found")
		return
	}

	buf, err := ctl.renderReceipt(order)
	if err != nil {
		utils.LogError("Failed to render receipt for order %s: %v", number, err)
		utils.InternalServerError(c, "Failed to generate receipt", nil)
		return
	}

	c.Header("Content-Disposition", "attachment; filename=receipt-"+order.OrderNumber+".pdf")
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}

func (ctl *Controller) renderReceipt(order *models.PendingOrder) (*bytes.Buffer, error) {
	fp := ctl.formatPrice
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 18)
	pdf.Cell(100, 10, tr(ctl.StoreName))
	pdf.Ln(12)

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(100, 10, "ORDER RECEIPT")
	pdf.Ln(12)
	pdf.SetFont("Arial", "", 12)
	pdf.Cell(80, 8, "Order: #"+order.OrderNumber)
	pdf.Cell(80, 8, "Date: "+order.CreatedAt.Format("2006-01-02 15:04:05"))
	pdf.Ln(8)
	pdf.Cell(80, 8, "Status: "+order.Status)
	if order.CouponCode != "" {
		pdf.Cell(80, 8, "Coupon: "+order.CouponCode)
	}
	pdf.Ln(12)

	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(80, 8, "Product", "1", 0, "C", false, 0, "")
	pdf.CellFormat(20, 8, "Qty", "1", 0, "C", false, 0, "")
	pdf.CellFormat(40, 8, "Price", "1", 0, "C", false, 0, "")
	pdf.CellFormat(40, 8, "Subtotal", "1", 0, "C", false, 0, "")
	pdf.Ln(-1)
	pdf.SetFont("Arial", "", 12)
	for _, item := range order.Items {
		pdf.CellFormat(80, 8, tr(item.Name), "1", 0, "L", false, 0, "")
		pdf.CellFormat(20, 8, strconv.Itoa(item.Quantity), "1", 0, "C", false, 0, "")
		pdf.CellFormat(40, 8, fp(item.UnitPrice), "1", 0, "R", false, 0, "")
		pdf.CellFormat(40, 8, fp(item.Subtotal), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}

	pdf.Ln(4)
	summary := func(label, value string, bold bool) {
		style := ""
		if bold {
			style = "B"
		}
		pdf.SetFont("Arial", style, 12)
		pdf.CellFormat(140, 8, tr(label), "", 0, "L", false, 0, "")
		pdf.CellFormat(40, 8, value, "", 1, "R", false, 0, "")
	}
	summary("Subtotal:", fp(order.Subtotal), false)
	for _, d := range order.Discounts {
		summary(d.Label+" ("+strconv.Itoa(d.Percent)+"%):", "-"+fp(d.Amount), false)
	}
	shipping := "FREE"
	if order.Shipping > 0 {
		shipping = fp(order.Shipping)
	}
	summary("Shipping:", shipping, false)
	summary("Total:", fp(order.Total), true)

	pdf.Ln(10)
	pdf.SetFont("Arial", "I", 12)
	pdf.Cell(0, 10, tr("Thank you for shopping with "+ctl.StoreName+"!"))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return &buf, nil
}
