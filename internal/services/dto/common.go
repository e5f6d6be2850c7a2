package dto

import (
	"encoding/json"
	"strings"
)

// StringList accepts either a JSON array of strings or a single
// comma-separated string. Multipart forms and older clients send the
// latter, so both shapes normalize to the same slice.
type StringList []string

func (l *StringList) UnmarshalJSON(data []byte) error {
	var items []string
	if err := json.Unmarshal(data, &items); err == nil {
		*l = trimAll(items)
		return nil
	}

	var joined string
	if err := json.Unmarshal(data, &joined); err != nil {
		return err
	}
	*l = SplitList(joined)
	return nil
}

// SplitList splits a comma-separated form value into trimmed items,
// dropping empties.
func SplitList(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	return trimAll(strings.Split(value, ","))
}

func trimAll(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
