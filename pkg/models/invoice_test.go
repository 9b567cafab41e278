package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSummary_Rows(t *testing.T) {
	s := Summary{TotalAmount: 6000, CommercialValue: 15, GST: 2.7, Invoice: 17.7}

	assert.Equal(t, [4]SummaryRow{
		{Description: "Agent Total", Payout: 6000},
		{Description: "0.25%", Payout: 15},
		{Description: "18%", Payout: 2.7},
		{Description: "Total Invoice", Payout: 17.7},
	}, s.Rows())
}

func TestDataset_ColumnIndex(t *testing.T) {
	ds := &Dataset{Columns: []string{"Agent", "Net Amount Payable(CR)"}}

	assert.Equal(t, 1, ds.ColumnIndex("Net Amount Payable(CR)"))
	assert.Equal(t, -1, ds.ColumnIndex("net amount payable(cr)"))

	var empty *Dataset
	assert.Equal(t, 0, empty.Len())
}

func TestIsMissing(t *testing.T) {
	for _, v := range []string{"", "  ", "NA", "N/A", "#N/A", "nan", "NaN", "null", "NULL", "None", " NA "} {
		assert.True(t, IsMissing(v), "%q", v)
	}
	for _, v := range []string{"0", "-1.5", "na", "none", "ten", "1,000"} {
		assert.False(t, IsMissing(v), "%q", v)
	}
}
