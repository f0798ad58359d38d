package models

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRatio_MarshalJSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		ratio Ratio
		want  string
	}{
		{name: "finite", ratio: 1.5, want: `1.5`},
		{name: "zero", ratio: 0, want: `0`},
		{name: "no negatives", ratio: Ratio(math.Inf(1)), want: `"Infinity"`},
		{name: "undefined", ratio: Ratio(math.NaN()), want: `null`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := json.Marshal(tt.ratio)
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(got))
		})
	}
}

func TestRatio_UnmarshalJSON(t *testing.T) {
	t.Parallel()

	var r Ratio
	require.NoError(t, json.Unmarshal([]byte(`"Infinity"`), &r))
	assert.True(t, r.IsInf())

	require.NoError(t, json.Unmarshal([]byte(`null`), &r))
	assert.True(t, math.IsNaN(float64(r)))

	require.NoError(t, json.Unmarshal([]byte(`0.25`), &r))
	assert.Equal(t, Ratio(0.25), r)
}

func TestMetricRow_StableShape(t *testing.T) {
	t.Parallel()

	inf := Ratio(math.Inf(1))
	ratioRow, err := json.Marshal(MetricRow{Year: 2020, Party: "Democrat", Count: 3, Positive: 3, Ratio: &inf})
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"year":2020,"party":"Democrat","count":3,"positive":3,"negative":0,"ratio":"Infinity","percentage":0}`,
		string(ratioRow))

	neg := Negative
	emptyBucket, err := json.Marshal(MetricRow{Sentiment: &neg})
	require.NoError(t, err)
	assert.Contains(t, string(emptyBucket), `"percentage":0`)
	assert.Contains(t, string(emptyBucket), `"count":0`)
}
