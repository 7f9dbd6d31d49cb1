package xlsexport

import (
	"bytes"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
	"pmfin-backend/lib/export/moneyfmt"
	dbmodels "pmfin-backend/models/db"
)

type Provider interface {
	ExportInvoiceList(list []dbmodels.Invoice) (*bytes.Buffer, error)
	ExportReimbursementList(list []dbmodels.Reimbursement) (*bytes.Buffer, error)
}

var Instance Provider = impl{}

func NewHandler() {
	Instance = impl{}
}

type impl struct{}

var invoiceHeaders = []string{"Number", "Type", "Status", "Project", "Vendor", "Category", "Issue date", "Due date", "Currency", "Amount", "Tax", "Total", "Paid at"}

var reimbursementHeaders = []string{"Title", "Submitted by", "Status", "Amount", "Submitted at", "Approved at", "Paid at", "Payment proof", "Rejection reason"}

const (
	invoiceSheet       = "Invoices"
	reimbursementSheet = "Reimbursements"
)

func (i impl) ExportInvoiceList(list []dbmodels.Invoice) (*bytes.Buffer, error) {
	f, err := newBook(invoiceSheet)
	if err != nil {
		return nil, err
	}
	defer closeBook(f)
	row, err := writeHeader(f, invoiceSheet, 0, invoiceHeaders)
	if err != nil {
		return nil, errors.Wrap(err, "failed to write xlsx header")
	}
	firstDataRow := row + 1
	for _, item := range list {
		row++
		err = writeRow(f, invoiceSheet, row,
			item.Number,
			string(item.Type),
			string(item.Status),
			projectName(item.Project),
			vendorName(item.Vendor),
			categoryName(item.Category),
			item.IssueDate,
			item.DueDate,
			currency(item.Currency),
			item.Amount,
			item.TaxAmount,
			item.Total(),
			item.PaidAt,
		)
		if err != nil {
			return nil, errors.Wrap(err, "failed to write invoice row")
		}
	}
	if err = applyMoneyStyle(f, invoiceSheet, firstDataRow, row, 10, 11, 12); err != nil {
		return nil, err
	}
	return f.WriteToBuffer()
}

func (i impl) ExportReimbursementList(list []dbmodels.Reimbursement) (*bytes.Buffer, error) {
	f, err := newBook(reimbursementSheet)
	if err != nil {
		return nil, err
	}
	defer closeBook(f)
	row, err := writeHeader(f, reimbursementSheet, 0, reimbursementHeaders)
	if err != nil {
		return nil, errors.Wrap(err, "failed to write xlsx header")
	}
	firstDataRow := row + 1
	for _, item := range list {
		row++
		submittedBy := item.SubmittedByID
		if item.SubmittedBy != nil {
			submittedBy = item.SubmittedBy.Name
		}
		proof := "no"
		if item.ProofCount() > 0 {
			proof = "yes"
		}
		err = writeRow(f, reimbursementSheet, row,
			item.Title,
			submittedBy,
			string(item.Status),
			item.Amount,
			item.CreatedAt,
			item.ApprovedAt,
			item.PaidAt,
			proof,
			item.RejectionReason,
		)
		if err != nil {
			return nil, errors.Wrap(err, "failed to write reimbursement row")
		}
	}
	if err = applyMoneyStyle(f, reimbursementSheet, firstDataRow, row, 4); err != nil {
		return nil, err
	}
	return f.WriteToBuffer()
}

func newBook(sheet string) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		closeBook(f)
		return nil, err
	}
	return f, nil
}

func closeBook(f *excelize.File) {
	if err := f.Close(); err != nil {
		log.WithError(err).Error("failed to close xlsx file")
	}
}

func projectName(rec *dbmodels.Project) string {
	if rec == nil {
		return ""
	}
	return rec.Name
}

func vendorName(rec *dbmodels.Vendor) string {
	if rec == nil {
		return ""
	}
	return rec.Name
}

func categoryName(rec *dbmodels.Category) string {
	if rec == nil {
		return ""
	}
	return rec.Name
}

func currency(code string) string {
	if code == "" {
		return moneyfmt.DefaultCurrency
	}
	return code
}
