package checkout

import (
	"bytes"
	"fmt"

	"tienda/models"

	"github.com/phpdave11/gofpdf"
)

// BuildReceiptPDF renders a one-page order summary.
func BuildReceiptPDF(order models.Order, store models.Store) (*bytes.Buffer, error) {
	cur := order.Currency
	if cur == "" {
		cur = "USD"
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, store.Name)
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 6, fmt.Sprintf("Order %s", order.OrderID))
	pdf.Ln(6)
	pdf.Cell(0, 6, order.CreatedAt.Format("2006-01-02 15:04"))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Customer")
	pdf.Ln(7)
	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 6, order.Customer.Name+" - "+order.Customer.Phone)
	pdf.Ln(6)
	if order.Customer.DeliveryType == models.DeliveryPickup {
		pdf.Cell(0, 6, "Pickup at store")
	} else {
		pdf.Cell(0, 6, "Delivery: "+order.Customer.Address)
	}
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(100, 7, "Product", "B", 0, "L", false, 0, "")
	pdf.CellFormat(20, 7, "Qty", "B", 0, "R", false, 0, "")
	pdf.CellFormat(35, 7, "Unit", "B", 0, "R", false, 0, "")
	pdf.CellFormat(35, 7, "Subtotal", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 11)
	for _, it := range order.Items {
		name := it.Name
		if it.Variant != nil && it.Variant.Name != "" {
			name = fmt.Sprintf("%s (%s)", it.Name, it.Variant.Name)
		}
		pdf.CellFormat(100, 6, name, "", 0, "L", false, 0, "")
		pdf.CellFormat(20, 6, fmt.Sprintf("%d", it.Quantity), "", 0, "R", false, 0, "")
		pdf.CellFormat(35, 6, fmt.Sprintf("%s %.2f", cur, it.UnitPrice()), "", 0, "R", false, 0, "")
		pdf.CellFormat(35, 6, fmt.Sprintf("%s %.2f", cur, it.Subtotal()), "", 1, "R", false, 0, "")
	}

	pdf.Ln(4)
	pdf.CellFormat(155, 6, "Subtotal", "", 0, "R", false, 0, "")
	pdf.CellFormat(35, 6, fmt.Sprintf("%s %.2f", cur, order.Subtotal), "", 1, "R", false, 0, "")

	shippingText := fmt.Sprintf("%s %.2f", cur, order.ShippingCost)
	if order.ShippingLabel == ShippingToCoordinate {
		shippingText = "to coordinate"
	}
	pdf.CellFormat(155, 6, "Shipping ("+order.ShippingLabel+")", "", 0, "R", false, 0, "")
	pdf.CellFormat(35, 6, shippingText, "", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(155, 8, "Total", "T", 0, "R", false, 0, "")
	pdf.CellFormat(35, 8, fmt.Sprintf("%s %.2f", cur, order.Total), "T", 1, "R", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return &buf, nil
}
