package dataframe

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/industrialdata/platform-client-go/pkg/datapoints"
)

func TestToWideAlignsOnUnionOfTimestamps(t *testing.T) {
	extA := "sensor-a"
	extB := "sensor-b"
	list := datapoints.DatapointsList{
		{ExternalID: &extA, Points: []datapoints.Datapoint{
			{TimestampMs: 100, Value: 1.0},
			{TimestampMs: 200, Value: 2.0},
		}},
		{ExternalID: &extB, Points: []datapoints.Datapoint{
			{TimestampMs: 200, Value: 20.0},
			{TimestampMs: 300, Value: 30.0},
		}},
	}

	w := ToWide(list)
	require.Equal(t, []int64{100, 200, 300}, w.Timestamps)
	assert.Equal(t, []string{"sensor-a", "sensor-b"}, w.ColumnNames)

	assert.Equal(t, 1.0, w.Cells[0][0])
	assert.Nil(t, w.Cells[0][1])
	assert.Equal(t, 2.0, w.Cells[1][0])
	assert.Equal(t, 20.0, w.Cells[1][1])
	assert.Nil(t, w.Cells[2][0])
	assert.Equal(t, 30.0, w.Cells[2][1])
}

func TestWriteCSVRendersHeaderAndRows(t *testing.T) {
	extA := "sensor-a"
	list := datapoints.DatapointsList{
		{ExternalID: &extA, Points: []datapoints.Datapoint{{TimestampMs: 100, Value: 1.5}}},
	}
	w := ToWide(list)

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, w))
	assert.Equal(t, "timestamp,sensor-a\n100,1.5\n", buf.String())
}
