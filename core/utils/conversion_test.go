package utils

import (
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
)

func TestFlexString(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantInt int64
	}{
		{"String", `{"id":"abc"}`, "abc", 0},
		{"QuotedNumber", `{"id":"42"}`, "42", 42},
		{"Number", `{"id":42}`, "42", 42},
		{"Float", `{"id":1530000000.0}`, "1530000000.0", 1530000000},
		{"Null", `{"id":null}`, "", 0},
		{"Missing", `{}`, "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var v struct {
				ID FlexString `json:"id"`
			}
			assert.NoError(t, json.Unmarshal([]byte(tt.input), &v))
			assert.Equal(t, tt.want, v.ID.String())
			assert.Equal(t, tt.wantInt, v.ID.Int64())
		})
	}
}

func TestParseTime(t *testing.T) {
	want := time.Date(2018, 6, 16, 20, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		input string
		want  time.Time
	}{
		{"RFC3339", "2018-06-16T20:00:00Z", want},
		{"Offset", "2018-06-16T13:00:00-07:00", want},
		{"MillisCompactOffset", "2018-06-16T20:00:00.000+0000", want},
		{"NoZone", "2018-06-16T20:00:00", want},
		{"DateOnly", "2018-06-16", time.Date(2018, 6, 16, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTime(tt.input)
			assert.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %v", got)
		})
	}

	_, err := ParseTime("next tuesday")
	assert.Error(t, err)
}
