// Package receipt renders placed orders as PDF receipts carrying a QR code
// with the order reference.
package receipt

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/chrisdamba/foodstore/internal/models"
	"github.com/phpdave11/gofpdf"
	"github.com/skip2/go-qrcode"
)

// QRPayload is the text encoded in the receipt's QR code.
func QRPayload(order models.PlacedOrder) string {
	return fmt.Sprintf("foodstore:order:%s|restaurant:%s|total:%.2f",
		order.Reference(), order.Draft.RestaurantID, order.Draft.Totals.Total)
}

// Render builds the receipt PDF for an order.
func Render(order models.PlacedOrder) ([]byte, error) {
	qrPNG, err := qrcode.Encode(QRPayload(order), qrcode.Medium, 256)
	if err != nil {
		return nil, fmt.Errorf("failed to generate QR code: %w", err)
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, "Order receipt")
	pdf.Ln(12)

	d := order.Draft
	pdf.SetFont("Arial", "", 11)
	lines := []string{
		"Order: " + order.Reference(),
		"Placed: " + order.PlacedAt.Format("2006-01-02 15:04"),
	}
	if order.Order != nil && order.Order.RestaurantName != "" {
		lines = append(lines, "Restaurant: "+order.Order.RestaurantName)
	}
	lines = append(lines,
		fmt.Sprintf("Deliver to: %s, %s %s", d.DeliveryAddress.Street, d.DeliveryAddress.PostalCode, d.DeliveryAddress.City),
		"Payment: "+d.PaymentMethod.Name,
		"Delivery: "+d.DeliveryOption.Label,
	)
	for _, line := range lines {
		pdf.Cell(0, 7, tr(line))
		pdf.Ln(7)
	}
	pdf.Ln(5)

	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(90, 8, "Item", "B", 0, "L", false, 0, "")
	pdf.CellFormat(20, 8, "Qty", "B", 0, "R", false, 0, "")
	pdf.CellFormat(30, 8, "Price", "B", 0, "R", false, 0, "")
	pdf.CellFormat(30, 8, "Total", "B", 1, "R", false, 0, "")

	pdf.SetFont("Arial", "", 11)
	for _, item := range d.Items {
		pdf.CellFormat(90, 7, tr(item.Name), "", 0, "L", false, 0, "")
		pdf.CellFormat(20, 7, fmt.Sprintf("%d", item.Quantity), "", 0, "R", false, 0, "")
		pdf.CellFormat(30, 7, money(item.Price), "", 0, "R", false, 0, "")
		pdf.CellFormat(30, 7, money(item.LineTotal()), "", 1, "R", false, 0, "")
	}
	pdf.Ln(3)

	totals := []struct {
		label  string
		amount float64
	}{
		{"Subtotal", d.Totals.Subtotal},
		{"Delivery fee", d.Totals.DeliveryFee},
		{"Service fee", d.Totals.ServiceFee},
		{"Total", d.Totals.Total},
	}
	for i, t := range totals {
		if i == len(totals)-1 {
			pdf.SetFont("Arial", "B", 12)
		}
		pdf.CellFormat(140, 7, t.label, "", 0, "R", false, 0, "")
		pdf.CellFormat(30, 7, money(t.amount), "", 1, "R", false, 0, "")
	}

	imageOpts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("qr", imageOpts, bytes.NewReader(qrPNG))
	pdf.ImageOptions("qr", 150, 20, 40, 40, false, imageOpts, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}
	return buf.Bytes(), nil
}

func money(v float64) string {
	return fmt.Sprintf("%.2f EUR", v)
}

// FileRecorder writes a receipt for every placed order into a folder.
type FileRecorder struct {
	dir    string
	logger *slog.Logger
}

func NewFileRecorder(dir string, logger *slog.Logger) *FileRecorder {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileRecorder{dir: dir, logger: logger}
}

// Path is where the receipt of an order is written.
func (r *FileRecorder) Path(order models.PlacedOrder) string {
	return filepath.Join(r.dir, "receipt-"+order.Reference()+".pdf")
}

func (r *FileRecorder) RecordOrder(_ context.Context, order models.PlacedOrder) error {
	data, err := Render(order)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create receipt folder: %w", err)
	}
	path := r.Path(order)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write receipt: %w", err)
	}
	r.logger.Info("receipt written", "order", order.Reference(), "path", path)
	return nil
}
