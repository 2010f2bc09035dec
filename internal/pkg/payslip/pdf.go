package payslip

import (
	"bytes"
	"fmt"

	"github.com/SahejChandok/Ask-My-HR-sub000/internal/domain/employee"
	"github.com/SahejChandok/Ask-My-HR-sub000/internal/domain/payroll"
	"github.com/jung-kurt/gofpdf"
)

// RenderPDF produces a printable payslip document.
func RenderPDF(p payroll.Payslip, emp employee.Employee, run payroll.Run) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Payslip")
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Employee: %s", emp.FullName()))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Email: %s", emp.Email))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Period: %s to %s",
		run.PeriodStart.Format("2006-01-02"), run.PeriodEnd.Format("2006-01-02")))
	pdf.Ln(10)

	pdf.Cell(0, 8, fmt.Sprintf("Gross pay: %s", p.GrossPay.StringFixed(2)))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("PAYE tax (%s): %s", emp.TaxCode, p.PAYETax.StringFixed(2)))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("KiwiSaver deduction: %s", p.KiwiSaverEmployee.StringFixed(2)))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("ACC levy: %s", p.ACCLevy.StringFixed(2)))
	pdf.Ln(7)

	for _, detail := range p.LeaveDetails {
		pdf.Cell(0, 8, fmt.Sprintf("Leave (%s, %s): %s hours, %s",
			detail.Type, detail.Dates, detail.Hours.String(), detail.Amount.StringFixed(2)))
		pdf.Ln(7)
	}

	pdf.Ln(3)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Net pay: %s", p.NetPay.StringFixed(2)))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Employer KiwiSaver contribution: %s", p.KiwiSaverEmployer.StringFixed(2)))
	if p.Voided {
		pdf.Ln(8)
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 8, "VOIDED")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render payslip pdf: %w", err)
	}
	return buf.Bytes(), nil
}
