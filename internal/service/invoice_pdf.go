package service

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/casamia/hotel-management/internal/model"
	"github.com/casamia/hotel-management/internal/repository"
)

// DetailLevel selects the invoice layout audience. Both levels render
// the same data fields in the same order; the customer level adds
// color styling and the customer-service footer lines.
type DetailLevel int

const (
	DetailCustomer DetailLevel = iota // styled, customer-facing download
	DetailAdmin                       // plain layout for back-office use
)

const dateLayout = "02 Jan 2006"

// palette used at DetailCustomer level
var (
	colorHeading = [3]int{44, 62, 80}    // dark slate
	colorAccent  = [3]int{52, 152, 219}  // blue
	colorMuted   = [3]int{127, 140, 141} // grey
	colorTotal   = [3]int{231, 76, 60}   // red
	colorStripe  = [3]int{248, 249, 250} // table row shading
)

// RenderInvoicePDF lays out a printable invoice for a stay and returns
// the PDF bytes. Section order is fixed: title, hotel identity block,
// invoice number, customer block, stay block, the extra-services table
// when at least one service is linked, total, footer.
func RenderInvoicePDF(stay *repository.StayDetail, inv model.Invoice, level DetailLevel) ([]byte, error) {
	styled := level == DetailCustomer

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("Invoice %s", stay.HotelName), false)
	pdf.SetAuthor(stay.HotelName, false)
	pdf.SetCreator("Reservation System", false)
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	setColor := func(c [3]int) {
		if styled {
			pdf.SetTextColor(c[0], c[1], c[2])
		} else {
			pdf.SetTextColor(0, 0, 0)
		}
	}

	// Title
	setColor(colorHeading)
	pdf.SetFont("Helvetica", "B", 24)
	pdf.CellFormat(0, 12, "INVOICE", "", 1, "C", false, 0, "")

	// Hotel identity block
	setColor(colorAccent)
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 8, strings.ToUpper(stay.HotelName), "", 1, "C", false, 0, "")
	setColor(colorMuted)
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 5, stay.HotelAddress, "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 5, fmt.Sprintf("Phone: %s | Email: %s", stay.HotelPhone, stay.HotelEmail), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	divider(pdf, styled, 0.8)
	pdf.Ln(4)

	// Invoice number
	setColor(colorHeading)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 6, fmt.Sprintf("Invoice No: %s", InvoiceNumber(inv.PublicRef)), "", 1, "R", false, 0, "")
	pdf.Ln(4)

	// Customer block
	document := "not specified"
	if stay.GuestDocument != nil && *stay.GuestDocument != "" {
		document = *stay.GuestDocument
	}
	sectionHeading(pdf, styled, "CUSTOMER DETAILS")
	setColor(colorHeading)
	pdf.SetFont("Helvetica", "", 12)
	pdf.CellFormat(0, 6, fmt.Sprintf("Name: %s %s", stay.GuestName, stay.GuestSurname), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Email: %s", stay.GuestEmail), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Document: %s", document), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	// Stay block
	nights := StayNights(stay.DateEntry, stay.DepartureDate)
	sectionHeading(pdf, styled, "RESERVATION DETAILS")
	setColor(colorHeading)
	pdf.SetFont("Helvetica", "", 12)
	pdf.CellFormat(0, 6, fmt.Sprintf("Hotel: %s", stay.HotelName), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Room number: %s", stay.RoomNumber), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Room type: %s", stay.RoomType), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Price per night: $%s", formatCents(stay.RateCents)), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Check-in date: %s", stay.DateEntry.Format(dateLayout)), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Check-out date: %s", stay.DepartureDate.Format(dateLayout)), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Number of nights: %d", nights), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	// Extra services, only when linked
	if len(stay.Extras) > 0 {
		sectionHeading(pdf, styled, "EXTRA SERVICES")
		pdf.SetFont("Helvetica", "B", 12)
		if styled {
			pdf.SetFillColor(colorAccent[0], colorAccent[1], colorAccent[2])
			pdf.SetTextColor(255, 255, 255)
		} else {
			pdf.SetTextColor(0, 0, 0)
		}
		pdf.CellFormat(130, 8, "Description", "", 0, "L", styled, 0, "")
		pdf.CellFormat(50, 8, "Price", "", 1, "R", styled, 0, "")

		setColor(colorHeading)
		pdf.SetFont("Helvetica", "", 11)
		for i, e := range stay.Extras {
			fill := styled && i%2 == 0
			if fill {
				pdf.SetFillColor(colorStripe[0], colorStripe[1], colorStripe[2])
			}
			pdf.CellFormat(130, 7, e.Name, "", 0, "L", fill, 0, "")
			pdf.CellFormat(50, 7, "$"+formatCents(e.CostCents), "", 1, "R", fill, 0, "")
		}
		pdf.Ln(4)
	}

	// Total
	pdf.SetFont("Helvetica", "B", 14)
	setColor(colorTotal)
	pdf.CellFormat(0, 8, fmt.Sprintf("Total: $%s", formatCents(inv.TotalCents)), "", 1, "R", false, 0, "")
	pdf.Ln(8)

	// Footer
	setColor(colorMuted)
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 5, fmt.Sprintf("Issue date: %s", inv.IssuedAt.Format(dateLayout)), "", 1, "C", false, 0, "")
	pdf.Ln(2)
	pdf.CellFormat(0, 5, "Thank you for staying with us", "", 1, "C", false, 0, "")
	if styled {
		pdf.Ln(2)
		pdf.CellFormat(0, 5, "For any queries, please contact our customer service", "", 1, "C", false, 0, "")
	}
	pdf.Ln(4)
	divider(pdf, styled, 0.4)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteInvoiceFile renders the invoice and writes it under dir,
// finalizing through a temp file + rename so a partially written
// document is never left at the servable path. The target name is
// derived from the hotel and the guest (customer level) or the
// reservation (admin level); repeated renders for the same key
// overwrite the previous file, which is fine because the invoice
// content is frozen at first computation.
func WriteInvoiceFile(dir string, stay *repository.StayDetail, inv model.Invoice, level DetailLevel) (string, error) {
	data, err := RenderInvoicePDF(stay, inv, level)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	final := filepath.Join(dir, InvoiceFileName(stay, level))
	tmp := final + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return "", err
	}
	if err := os.Rename(tmp, final); err != nil {
		_ = os.Remove(tmp)
		return "", err
	}
	return final, nil
}

// InvoiceFileName returns the file name an invoice is stored under:
// invoice_<hotel>_<guestID>.pdf for the customer flow and
// invoice_<hotel>_<reservationID>.pdf for the admin flow.
func InvoiceFileName(stay *repository.StayDetail, level DetailLevel) string {
	suffix := stay.GuestID
	if level == DetailAdmin {
		suffix = stay.ReservationID
	}
	return fmt.Sprintf("invoice_%s_%d.pdf", sanitizeName(stay.HotelName), suffix)
}

// sanitizeName makes a hotel name safe for use in a file name.
func sanitizeName(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		default:
			return '_'
		}
	}, s)
}

// formatCents renders an integer cent amount as a 2-decimal string.
func formatCents(c int64) string {
	return fmt.Sprintf("%d.%02d", c/100, c%100)
}

func sectionHeading(pdf *gofpdf.Fpdf, styled bool, title string) {
	if styled {
		pdf.SetTextColor(colorAccent[0], colorAccent[1], colorAccent[2])
	} else {
		pdf.SetTextColor(0, 0, 0)
	}
	pdf.SetFont("Helvetica", "BU", 14)
	pdf.CellFormat(0, 8, title, "", 1, "L", false, 0, "")
	pdf.Ln(1)
}

func divider(pdf *gofpdf.Fpdf, styled bool, width float64) {
	if styled {
		pdf.SetDrawColor(colorAccent[0], colorAccent[1], colorAccent[2])
	} else {
		pdf.SetDrawColor(0, 0, 0)
	}
	pdf.SetLineWidth(width)
	y := pdf.GetY()
	pdf.Line(15, y, 195, y)
}
