package pdfexport

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"
	"github.com/pkg/errors"
	"pmfin-backend/lib/export/moneyfmt"
	dbmodels "pmfin-backend/models/db"
)

const (
	dateFormat = "2006-01-02"
	fontFamily = "Helvetica"
)

// Company is printed in the document header.
type Company struct {
	Name    string
	Address string
	Email   string
}

func GenerateInvoice(company Company, rec dbmodels.Invoice) (pdfFile []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("GenerateInvoice panic recover: %v", r)
		}
	}()
	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(tr("Invoice "+rec.Number), false)
	pdf.AddPage()

	pdf.SetFont(fontFamily, "B", 18)
	pdf.CellFormat(0, 10, tr(company.Name), "", 1, "L", false, 0, "")
	pdf.SetFont(fontFamily, "", 10)
	for _, line := range []string{company.Address, company.Email} {
		if line != "" {
			pdf.CellFormat(0, 5, tr(line), "", 1, "L", false, 0, "")
		}
	}
	pdf.Ln(8)

	pdf.SetFont(fontFamily, "B", 14)
	pdf.CellFormat(0, 8, tr(fmt.Sprintf("Invoice %v", rec.Number)), "", 1, "L", false, 0, "")
	pdf.SetFont(fontFamily, "", 10)
	putField(pdf, tr, "Status", string(rec.Status))
	putField(pdf, tr, "Type", string(rec.Type))
	putField(pdf, tr, "Issue date", rec.IssueDate.Format(dateFormat))
	putField(pdf, tr, "Due date", rec.DueDate.Format(dateFormat))
	if rec.PaidAt != nil {
		putField(pdf, tr, "Paid at", rec.PaidAt.Format(dateFormat))
	}
	if rec.Project != nil {
		putField(pdf, tr, "Project", rec.Project.Name)
	}
	if rec.Vendor != nil {
		putField(pdf, tr, "Vendor", rec.Vendor.Name)
		if rec.Vendor.TaxCode != "" {
			putField(pdf, tr, "Vendor tax code", rec.Vendor.TaxCode)
		}
	}
	if rec.Category != nil {
		putField(pdf, tr, "Category", rec.Category.Name)
	}
	pdf.Ln(6)

	pdf.SetFont(fontFamily, "B", 10)
	pdf.SetFillColor(221, 235, 247)
	pdf.CellFormat(120, 8, tr("Description"), "1", 0, "L", true, 0, "")
	pdf.CellFormat(60, 8, tr("Amount"), "1", 1, "R", true, 0, "")
	pdf.SetFont(fontFamily, "", 10)
	taxLabel := "Tax"
	if rec.Tax != nil {
		taxLabel = fmt.Sprintf("%v (%v%%)", rec.Tax.Name, rec.Tax.Rate.String())
	}
	putAmountRow(pdf, tr, "Net amount", moneyfmt.Format(rec.Amount, rec.Currency), false)
	putAmountRow(pdf, tr, taxLabel, moneyfmt.Format(rec.TaxAmount, rec.Currency), false)
	putAmountRow(pdf, tr, "Total", moneyfmt.Format(rec.Total(), rec.Currency), true)

	if rec.Notes != "" {
		pdf.Ln(6)
		pdf.SetFont(fontFamily, "I", 9)
		pdf.MultiCell(0, 5, tr(rec.Notes), "", "L", false)
	}
	if pdf.Err() {
		return nil, pdf.Error()
	}
	buf := new(bytes.Buffer)
	if err = pdf.Output(buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func putField(pdf *fpdf.Fpdf, tr func(string) string, name, value string) {
	pdf.CellFormat(40, 6, tr(name+":"), "", 0, "L", false, 0, "")
	pdf.CellFormat(0, 6, tr(value), "", 1, "L", false, 0, "")
}

func putAmountRow(pdf *fpdf.Fpdf, tr func(string) string, name, value string, bold bool) {
	if bold {
		pdf.SetFont(fontFamily, "B", 10)
		defer pdf.SetFont(fontFamily, "", 10)
	}
	pdf.CellFormat(120, 8, tr(name), "1", 0, "L", false, 0, "")
	pdf.CellFormat(60, 8, tr(value), "1", 1, "R", false, 0, "")
}
