package models

// Summary row labels, in the order they appear on the invoice.
const (
	LabelAgentTotal   = "Agent Total"
	LabelCommission   = "0.25%"
	LabelGST          = "18%"
	LabelTotalInvoice = "Total Invoice"
)

// Summary is the commission invoice derived from a payout report.
type Summary struct {
	// Amounts (float64, written at full precision; rounding is left to the viewer)
	TotalAmount     float64 // Sum of the payable column
	CommercialValue float64 // TotalAmount * 0.25%
	GST             float64 // CommercialValue * 18%
	Invoice         float64 // CommercialValue + GST
}

// SummaryRow is one line of the Summary sheet
type SummaryRow struct {
	Description string
	Payout      float64
}

// Rows returns the four summary lines in invoice order.
// Later rows are derived from earlier ones, so the order is fixed.
func (s Summary) Rows() [4]SummaryRow {
	return [4]SummaryRow{
		{Description: LabelAgentTotal, Payout: s.TotalAmount},
		{Description: LabelCommission, Payout: s.CommercialValue},
		{Description: LabelGST, Payout: s.GST},
		{Description: LabelTotalInvoice, Payout: s.Invoice},
	}
}
