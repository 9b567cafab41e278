package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInvoiceTheme_Resolve(t *testing.T) {
	styles, err := InvoiceTheme().Resolve()
	require.NoError(t, err)

	// Two header cells plus four rows of two columns.
	assert.Len(t, styles, 10)

	header := CellStyle{Bold: true, FontSize: 14, Center: true, Border: true, Fill: HeaderFill}
	title := CellStyle{Bold: true, FontSize: 16, Center: true, Border: true, Fill: HeaderFill}
	total := CellStyle{Bold: true, Center: true, Border: true, Fill: TotalFill}
	plain := CellStyle{Center: true, Border: true}

	assert.Equal(t, title, styles["A1"])
	assert.Equal(t, header, styles["B1"])
	for _, cell := range []string{"A2", "B2", "A5", "B5"} {
		assert.Equal(t, total, styles[cell], cell)
	}
	for _, cell := range []string{"A3", "B3", "A4", "B4"} {
		assert.Equal(t, plain, styles[cell], cell)
	}

	_, touched := styles["A6"]
	assert.False(t, touched)
}

func TestTheme_RulesAreLayeredInOrder(t *testing.T) {
	theme := Theme{
		Rules: []StyleRule{
			{Range: "A1:C1", Style: CellStyle{FontSize: 10, Fill: "111111"}},
			{Range: "B1", Style: CellStyle{FontSize: 12}},
			{Range: "C1:A1", Style: CellStyle{Bold: true}},
		},
	}

	styles, err := theme.Resolve()
	require.NoError(t, err)

	assert.Equal(t, CellStyle{Bold: true, FontSize: 10, Fill: "111111"}, styles["A1"])
	assert.Equal(t, CellStyle{Bold: true, FontSize: 12, Fill: "111111"}, styles["B1"])
	assert.Equal(t, CellStyle{Bold: true, FontSize: 10, Fill: "111111"}, styles["C1"])
}

func TestTheme_InvalidRange(t *testing.T) {
	for _, rng := range []string{"", "1A:B2", "A1:?"} {
		theme := Theme{Rules: []StyleRule{{Range: rng, Style: CellStyle{Bold: true}}}}
		_, err := theme.Resolve()
		assert.Error(t, err, "range %q", rng)
	}
}

func TestExpandRange(t *testing.T) {
	cells, err := expandRange("A2:B3")
	require.NoError(t, err)
	assert.Equal(t, []string{"A2", "B2", "A3", "B3"}, cells)

	cells, err = expandRange("C7")
	require.NoError(t, err)
	assert.Equal(t, []string{"C7"}, cells)
}

func TestCellStyle_ToExcelize(t *testing.T) {
	style := CellStyle{Bold: true, FontSize: 14, Center: true, Border: true, Fill: HeaderFill}.toExcelize()

	require.NotNil(t, style.Font)
	assert.True(t, style.Font.Bold)
	assert.Equal(t, 14.0, style.Font.Size)
	require.NotNil(t, style.Alignment)
	assert.Equal(t, "center", style.Alignment.Horizontal)
	assert.Equal(t, "center", style.Alignment.Vertical)
	assert.Len(t, style.Border, 4)
	for _, b := range style.Border {
		assert.Equal(t, 1, b.Style, b.Type)
	}
	assert.Equal(t, "pattern", style.Fill.Type)
	assert.Equal(t, 1, style.Fill.Pattern)
	assert.Equal(t, []string{HeaderFill}, style.Fill.Color)

	empty := CellStyle{}.toExcelize()
	assert.Nil(t, empty.Font)
	assert.Nil(t, empty.Alignment)
	assert.Empty(t, empty.Border)
}
