package service

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/casamia/hotel-management/internal/model"
	"github.com/casamia/hotel-management/internal/repository"
)

func renderStay() *repository.StayDetail {
	return &repository.StayDetail{
		ReservationID: 7,
		DateEntry:     day("2024-01-01"),
		DepartureDate: day("2024-01-04"),
		GuestID:       42,
		GuestName:     "Ada",
		GuestSurname:  "Lovelace",
		GuestEmail:    "ada@example.com",
		RoomNumber:    "101",
		RoomType:      "suite",
		RateCents:     10000,
		HotelID:       3,
		HotelName:     "Casa Mia",
		HotelAddress:  "1 Via Roma",
		HotelPhone:    "+39 000 000",
		HotelEmail:    "info@casamia.example",
		Extras: []repository.ExtraLine{
			{Name: "Breakfast", CostCents: 2000},
		},
	}
}

func renderInvoice() model.Invoice {
	return model.Invoice{
		ID:            1,
		PublicRef:     "a1b2c3d4-0000-0000-0000-feedfacecafe",
		ReservationID: 7,
		TotalCents:    33500,
		IssuedAt:      time.Date(2024, 2, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestRenderInvoicePDFBothLevels(t *testing.T) {
	for _, level := range []DetailLevel{DetailCustomer, DetailAdmin} {
		data, err := RenderInvoicePDF(renderStay(), renderInvoice(), level)
		if err != nil {
			t.Fatalf("render level %d: %v", level, err)
		}
		if !bytes.HasPrefix(data, []byte("%PDF")) {
			t.Fatalf("level %d output is not a PDF", level)
		}
	}
}

func TestRenderInvoicePDFWithoutExtras(t *testing.T) {
	stay := renderStay()
	stay.Extras = nil
	data, err := RenderInvoicePDF(stay, renderInvoice(), DetailAdmin)
	if err != nil {
		t.Fatalf("render without extras: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Fatal("output is not a PDF")
	}
}

func TestWriteInvoiceFileFinalizesAtomically(t *testing.T) {
	dir := t.TempDir()

	path, err := WriteInvoiceFile(dir, renderStay(), renderInvoice(), DetailCustomer)
	if err != nil {
		t.Fatalf("WriteInvoiceFile: %v", err)
	}
	if filepath.Base(path) != "invoice_Casa_Mia_42.pdf" {
		t.Fatalf("customer file name = %s", filepath.Base(path))
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("final file missing: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		if filepath.Ext(e.Name()) == ".tmp" {
			t.Fatalf("leftover temp file %s", e.Name())
		}
	}
}

func TestInvoiceFileNamePerAudience(t *testing.T) {
	stay := renderStay()
	if got := InvoiceFileName(stay, DetailCustomer); got != "invoice_Casa_Mia_42.pdf" {
		t.Fatalf("customer name = %s", got)
	}
	if got := InvoiceFileName(stay, DetailAdmin); got != "invoice_Casa_Mia_7.pdf" {
		t.Fatalf("admin name = %s", got)
	}
}

func TestFormatCents(t *testing.T) {
	if got := formatCents(33500); got != "335.00" {
		t.Fatalf("formatCents(33500) = %s", got)
	}
	if got := formatCents(5); got != "0.05" {
		t.Fatalf("formatCents(5) = %s", got)
	}
}
