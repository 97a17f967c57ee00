package pdf

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"

	"feeportal/model"
)

// Renderer builds fixed-layout fee receipts. Now is swappable so the
// "generated on" footer can be pinned; with a fixed clock the output is
// byte-identical for identical input.
type Renderer struct {
	InstitutionName    string
	InstitutionAddress string
	BankName           string
	BankAccount        string
	BankIFSC           string
	BankBranch         string

	Now func() time.Time
}

func NewRenderer(name, address, bankName, bankAccount, bankIFSC, bankBranch string) *Renderer {
	return &Renderer{
		InstitutionName:    name,
		InstitutionAddress: address,
		BankName:           bankName,
		BankAccount:        bankAccount,
		BankIFSC:           bankIFSC,
		BankBranch:         bankBranch,
		Now:                time.Now,
	}
}

// ReceiptNumber derives a stable receipt number from the entry's
// creation year and the first 8 hex characters of its id.
func ReceiptNumber(e *model.LedgerEntry) string {
	hexID := strings.ToUpper(strings.ReplaceAll(e.ID, "-", ""))
	if len(hexID) > 8 {
		hexID = hexID[:8]
	}
	return fmt.Sprintf("FEE/%d/%s", e.CreatedAt.Year(), hexID)
}

// Filename returns the download name for a rendered receipt.
func Filename(regno, paymentID string, t time.Time) string {
	return fmt.Sprintf("FeeReceipt_%s_%s_%d.pdf", regno, paymentID, t.UnixMilli())
}

// Build renders a single-page receipt for a ledger entry.
func (r *Renderer) Build(e *model.LedgerEntry) ([]byte, error) {
	generatedAt := r.Now()

	doc := gofpdf.New("P", "mm", "A4", "")
	doc.SetCompression(false)
	doc.SetCreationDate(generatedAt)
	doc.SetTitle("Fee Receipt", false)
	doc.AddPage()

	// header
	doc.SetFont("Arial", "B", 16)
	doc.CellFormat(0, 9, r.InstitutionName, "", 1, "C", false, 0, "")
	doc.SetFont("Arial", "", 10)
	doc.CellFormat(0, 5, r.InstitutionAddress, "", 1, "C", false, 0, "")
	doc.Ln(2)
	doc.SetDrawColor(40, 40, 40)
	doc.Line(10, doc.GetY(), 200, doc.GetY())
	doc.Ln(4)

	doc.SetFont("Arial", "B", 13)
	doc.CellFormat(0, 8, "FEE RECEIPT", "", 1, "C", false, 0, "")
	doc.Ln(1)

	// receipt number and date
	doc.SetFont("Arial", "", 10)
	doc.CellFormat(95, 6, "Receipt No: "+ReceiptNumber(e), "", 0, "L", false, 0, "")
	doc.CellFormat(95, 6, "Date: "+e.CreatedAt.Format("02 Jan 2006"), "", 1, "R", false, 0, "")
	doc.Ln(3)

	r.section(doc, "Student Details", [][2]string{
		{"Name", e.Name},
		{"Registration No", e.Regno},
		{"Email", e.Email},
		{"Phone", e.Phone},
	})

	r.section(doc, "Fee Details", [][2]string{
		{"Fee Category", e.FeeType},
		{"Currency", e.Currency},
	})

	r.section(doc, "Payment Transaction Details", [][2]string{
		{"Order ID", e.OrderID},
		{"Payment ID", e.PaymentID},
		{"Payment Method", e.PaymentMethod},
		{"Status", strings.ToUpper(e.Status)},
	})

	// total amount, highlighted
	doc.Ln(2)
	doc.SetFillColor(230, 238, 250)
	doc.SetFont("Arial", "B", 12)
	doc.CellFormat(0, 10, fmt.Sprintf("Total Amount: Rs. %.2f", e.Amount), "1", 1, "L", true, 0, "")
	doc.SetFont("Arial", "I", 9)
	doc.CellFormat(0, 6, RupeesInWords(e.Amount), "", 1, "L", false, 0, "")
	doc.Ln(3)

	r.section(doc, "Bank Details", [][2]string{
		{"Bank", r.BankName},
		{"Account No", r.BankAccount},
		{"IFSC", r.BankIFSC},
		{"Branch", r.BankBranch},
	})

	if e.Status == model.StatusPaid {
		r.paidStamp(doc)
	}

	// footer
	doc.SetY(-40)
	doc.SetDrawColor(150, 150, 150)
	doc.Line(10, doc.GetY(), 200, doc.GetY())
	doc.SetFont("Arial", "I", 8)
	doc.SetTextColor(110, 110, 110)
	doc.CellFormat(0, 5, "This is a computer generated receipt and does not require a signature.", "", 1, "C", false, 0, "")
	doc.CellFormat(0, 5, "Generated on "+generatedAt.Format("02 Jan 2006 15:04:05 MST"), "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("render receipt: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *Renderer) section(doc *gofpdf.Fpdf, title string, rows [][2]string) {
	doc.SetTextColor(0, 0, 0)
	doc.SetFont("Arial", "B", 11)
	doc.CellFormat(0, 7, title, "", 1, "L", false, 0, "")
	doc.SetFont("Arial", "", 10)
	for _, row := range rows {
		doc.CellFormat(55, 6, row[0], "", 0, "L", false, 0, "")
		doc.CellFormat(0, 6, ": "+row[1], "", 1, "L", false, 0, "")
	}
	doc.Ln(2)
}

func (r *Renderer) paidStamp(doc *gofpdf.Fpdf) {
	doc.SetFont("Arial", "B", 34)
	doc.SetTextColor(0, 140, 60)
	doc.SetDrawColor(0, 140, 60)
	doc.TransformBegin()
	doc.TransformRotate(18, 160, 60)
	doc.SetXY(140, 52)
	doc.CellFormat(44, 16, "PAID", "1", 0, "C", false, 0, "")
	doc.TransformEnd()
	doc.SetTextColor(0, 0, 0)
}
