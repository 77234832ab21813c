package utils

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
)

// FlexString decodes a JSON string or number into its textual form. Upstream APIs are
// inconsistent about quoting ids, so every id field uses it. null decodes to "".
type FlexString string

// UnmarshalJSON implements json.Unmarshaler.
func (s *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*s = ""
	case len(data) > 0 && data[0] == '"':
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		*s = FlexString(str)
	default:
		*s = FlexString(data)
	}
	return nil
}

// String returns the raw text.
func (s FlexString) String() string {
	return string(s)
}

// Int64 parses the value as an integer, accepting float notation. Unparseable values yield 0.
func (s FlexString) Int64() int64 {
	if i, err := strconv.ParseInt(string(s), 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(string(s), 64); err == nil {
		return int64(f)
	}
	return 0
}

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.000-0700",
	"2006-01-02T15:04:05-0700",
	"2006-01-02T15:04:05.000Z",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseTime parses the timestamp formats seen in upstream payloads. Values without a zone
// are taken as UTC.
func ParseTime(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized time %q", value)
}
