package sample

import (
	"strconv"

	"github.com/ethpandaops/fastplong-multireport/constants"
)

// TableColumns is the header of the summary table, in display order.
var TableColumns = []string{
	constants.ColumnSample,
	constants.ColumnTotalReadsBefore,
	constants.ColumnTotalReadsAfter,
	constants.ColumnRetention,
	constants.ColumnMeanLength,
	constants.ColumnQ20Rate,
	constants.ColumnQ30Rate,
	constants.ColumnGC,
	constants.ColumnLowQuality,
	constants.ColumnTooShort,
	constants.ColumnTooLong,
}

// Cells renders the row in TableColumns order with plain, lossless number formatting.
func (row SummaryRow) Cells() []string {
	return []string{
		row.Sample,
		formatInt(row.TotalReadsBefore),
		formatInt(row.TotalReadsAfter),
		formatFloat(row.RetentionPercent),
		formatFloat(row.MeanLengthBp),
		formatFloat(row.Q20RatePercent),
		formatFloat(row.Q30RatePercent),
		formatFloat(row.GCPercent),
		formatInt(row.LowQualityReads),
		formatInt(row.TooShortReads),
		formatInt(row.TooLongReads),
	}
}

func formatInt(v int64) string {
	return strconv.FormatInt(v, 10)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
