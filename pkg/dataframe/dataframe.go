// Package dataframe is a pure formatting adapter over
// pkg/datapoints.DatapointsList, playing the role the original
// source's pandas-backed get_datapoints_frame did
// (original_source/cognite/timeseries.py): aligning several series
// onto one shared timestamp axis as a wide table. It does no I/O of
// its own.
package dataframe

import (
	"encoding/csv"
	"io"
	"sort"
	"strconv"

	"github.com/industrialdata/platform-client-go/pkg/datapoints"
)

// Wide is a timestamp-indexed table with one column per series. A
// series with no datapoint at a given timestamp leaves that cell nil.
type Wide struct {
	ColumnNames []string // one per input series, in input order
	Timestamps  []int64  // sorted ascending, the union of every series' timestamps
	Cells       [][]interface{} // Cells[row][col]; row i corresponds to Timestamps[i]
}

// columnName names one series' column: its external_id if set,
// otherwise "id:<n>".
func columnName(d datapoints.Datapoints) string {
	if d.ExternalID != nil {
		return *d.ExternalID
	}
	if d.ID != nil {
		return "id:" + strconv.FormatInt(*d.ID, 10)
	}
	return ""
}

// ToWide aligns every series in list onto the union of their
// timestamps, producing one row per distinct timestamp across all
// series, sorted ascending.
func ToWide(list datapoints.DatapointsList) Wide {
	names := make([]string, len(list))
	for i, d := range list {
		names[i] = columnName(d)
	}

	tsSet := make(map[int64]struct{})
	for _, d := range list {
		for _, p := range d.Points {
			tsSet[p.TimestampMs] = struct{}{}
		}
	}
	timestamps := make([]int64, 0, len(tsSet))
	for ts := range tsSet {
		timestamps = append(timestamps, ts)
	}
	sort.Slice(timestamps, func(i, j int) bool { return timestamps[i] < timestamps[j] })

	rowIndex := make(map[int64]int, len(timestamps))
	for i, ts := range timestamps {
		rowIndex[ts] = i
	}

	cells := make([][]interface{}, len(timestamps))
	for i := range cells {
		cells[i] = make([]interface{}, len(list))
	}

	for col, d := range list {
		for _, p := range d.Points {
			row := rowIndex[p.TimestampMs]
			cells[row][col] = valueOf(p)
		}
	}

	return Wide{ColumnNames: names, Timestamps: timestamps, Cells: cells}
}

// valueOf picks the one populated field of a datapoint to represent it
// as a single table cell: the raw value if present, else the average
// if this is an aggregate read (the common case for dataframe export),
// else nil.
func valueOf(p datapoints.Datapoint) interface{} {
	if p.Value != nil {
		return p.Value
	}
	if p.Average != nil {
		return *p.Average
	}
	return nil
}

// WriteCSV renders w as CSV, with a leading "timestamp" column
// followed by one column per series.
func WriteCSV(wr io.Writer, w Wide) error {
	cw := csv.NewWriter(wr)

	header := make([]string, len(w.ColumnNames)+1)
	header[0] = "timestamp"
	copy(header[1:], w.ColumnNames)
	if err := cw.Write(header); err != nil {
		return err
	}

	record := make([]string, len(header))
	for i, ts := range w.Timestamps {
		record[0] = strconv.FormatInt(ts, 10)
		for col, v := range w.Cells[i] {
			record[col+1] = formatCell(v)
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func formatCell(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case float64:
		return strconv.FormatFloat(t, 'g', -1, 64)
	case string:
		return t
	default:
		return ""
	}
}
