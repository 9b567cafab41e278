package sheets

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"commission/pkg/models"
)

func TestExtractSpreadsheetID(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		want    string
		wantErr bool
	}{
		{
			name: "edit url",
			url:  "https://docs.google.com/spreadsheets/d/1AbC-dEf_123/edit#gid=0",
			want: "1AbC-dEf_123",
		},
		{
			name: "bare url",
			url:  "https://docs.google.com/spreadsheets/d/xyz789",
			want: "xyz789",
		},
		{
			name:    "not a sheets url",
			url:     "https://example.com/file.xlsx",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := extractSpreadsheetID(tt.url)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSummaryToValues(t *testing.T) {
	summary := &models.Summary{TotalAmount: 6000, CommercialValue: 15, GST: 2.7, Invoice: 17.7}
	at := time.Date(2025, 3, 31, 18, 5, 0, 0, time.UTC)

	values := summaryToValues(summary, "payouts.csv", at)

	require.Len(t, values, 4)
	assert.Equal(t, []interface{}{"31.03.2025 18:05:00", "payouts.csv", "Agent Total", 6000.0}, values[0])
	assert.Equal(t, "0.25%", values[1][2])
	assert.Equal(t, "18%", values[2][2])
	assert.Equal(t, []interface{}{"31.03.2025 18:05:00", "payouts.csv", "Total Invoice", 17.7}, values[3])
	for _, row := range values {
		assert.Len(t, row, len(summaryHeaders))
	}
}
