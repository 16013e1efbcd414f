package sheet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tally/internal/common"
)

var cardGroups = []TokenGroup{
	{Name: "date", Tokens: []string{"date"}},
	{Name: "description", Tokens: []string{"description", "merchant"}},
	{Name: "amount", Tokens: []string{"amount", "converted"}},
}

func TestTokenScan(t *testing.T) {
	tests := []struct {
		name    string
		grid    Grid
		wantRow int
		wantHit bool
	}{
		{
			name: "header below title rows",
			grid: Grid{
				{"Statement 2024"},
				{},
				{"Date", "Description", "Amount"},
				{"01/02/2024", "TESCO", "12.50"},
			},
			wantRow: 2,
			wantHit: true,
		},
		{
			name: "case and whitespace insensitive",
			grid: Grid{
				{"  DATE  ", "Doing Business As", "CONVERTED £"},
			},
			wantRow: 0,
			wantHit: true,
		},
		{
			name: "sparse title row skipped",
			grid: Grid{
				{"Date of export", "", "Amounts in GBP"}, // only 2 cells
				{"Date", "Description", "Amount"},
			},
			wantRow: 1,
			wantHit: true,
		},
		{
			name: "missing group misses",
			grid: Grid{
				{"Date", "Description", "Reference"},
			},
			wantHit: false,
		},
		{
			name:    "empty grid misses",
			grid:    Grid{},
			wantHit: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row, ok := TokenScan(cardGroups, MaxScanRows).Locate(tt.grid)
			assert.Equal(t, tt.wantHit, ok)
			if tt.wantHit {
				assert.Equal(t, tt.wantRow, row)
			}
		})
	}
}

func TestTokenScan_FirstHitWins(t *testing.T) {
	// Two plausible header rows: the scan is ordered, so the earlier one
	// wins every run.
	g := Grid{
		{"Date", "Description", "Amount"},
		{"Date", "Description", "Amount", "Category"},
	}
	strat := TokenScan(cardGroups, MaxScanRows)
	for i := 0; i < 5; i++ {
		row, ok := strat.Locate(g)
		require.True(t, ok)
		assert.Equal(t, 0, row)
	}
}

func TestFirstNonBlank(t *testing.T) {
	g := Grid{
		{},
		{"", "", ""},
		{"Year", "Month"},
	}
	row, ok := FirstNonBlank().Locate(g)
	require.True(t, ok)
	assert.Equal(t, 2, row)

	_, ok = FirstNonBlank().Locate(Grid{{}, {""}})
	assert.False(t, ok)
}

func TestFixedRow(t *testing.T) {
	g := Grid{{"a"}, {"b"}}

	row, ok := FixedRow(0).Locate(g)
	require.True(t, ok)
	assert.Equal(t, 0, row)

	_, ok = FixedRow(5).Locate(g)
	assert.False(t, ok)
}

func TestLocate(t *testing.T) {
	g := Grid{
		{"Transactions for the year"},
		{"Date", "Description", "Amount", ""},
		{"01/02/2024", "TESCO", "12.50", "Grocery"},
	}

	loc, err := Locate(g, TokenScan(cardGroups, MaxScanRows), FirstNonBlank(), FixedRow(0))
	require.NoError(t, err)
	assert.Equal(t, "token-scan", loc.Strategy)
	assert.Equal(t, 1, loc.Row)
	assert.Equal(t, []string{"Date", "Description", "Amount", "col_3"}, loc.Fields)
}

func TestLocate_FallbackChain(t *testing.T) {
	// No token hit anywhere: falls through to the next strategy in order.
	g := Grid{
		{},
		{"Year", "Month", "Total"},
	}
	loc, err := Locate(g, TokenScan(cardGroups, MaxScanRows), FirstNonBlank(), FixedRow(0))
	require.NoError(t, err)
	assert.Equal(t, "first-non-blank", loc.Strategy)
	assert.Equal(t, 1, loc.Row)
}

func TestLocate_Errors(t *testing.T) {
	_, err := Locate(Grid{}, FirstNonBlank())
	assert.ErrorIs(t, err, common.ErrEmptySheet)

	_, err = Locate(Grid{{"x"}}, TokenScan(cardGroups, MaxScanRows))
	assert.ErrorIs(t, err, common.ErrHeaderNotFound)
}

func TestPromoteHeader(t *testing.T) {
	fields := PromoteHeader([]string{" Date ", "", "Amount"}, 5)
	assert.Equal(t, []string{"Date", "col_1", "Amount", "col_3", "col_4"}, fields)
}

func TestGrid_Accessors(t *testing.T) {
	g := Grid{
		{"a", "b"},
		{"c"},
	}
	assert.Equal(t, "b", g.Cell(0, 1))
	assert.Equal(t, "", g.Cell(1, 1), "ragged right edge reads as blank")
	assert.Equal(t, "", g.Cell(9, 0))
	assert.Nil(t, g.Row(7))
	assert.Equal(t, 2, g.Width())
}
