package enum

// PDFStatus tracks whether the invoice's rendered PDF artifact exists.
// Invoice rows are committed before the PDF is generated, so a crash or
// renderer failure leaves a queryable invoice with status FAILED rather
// than a silent gap.
type PDFStatus string

const (
	PDFStatusPending PDFStatus = "PENDING"
	PDFStatusReady   PDFStatus = "READY"
	PDFStatusFailed  PDFStatus = "FAILED"
)
