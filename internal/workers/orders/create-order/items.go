package createorder

import (
	"bytes"
	"encoding/json"
	"strconv"

	apperrors "restaurant-workers/internal/common/errors"
)

// NormalizeItems accepts
//
//	["Burger", "Fries"]
//	[{"S": "Burger"}, {"S": "Fries"}]
//	{"L": [{"S": "Burger"}, {"S": "Fries"}]}
//
// and returns ["Burger", "Fries"]. A single-key object contributes its
// value; anything else is stringified as-is.
func NormalizeItems(raw json.RawMessage) ([]string, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, apperrors.NewMissingParameterError("items")
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.UseNumber()
	var v interface{}
	if err := dec.Decode(&v); err != nil {
		return nil, apperrors.NewValidationError("items: " + err.Error())
	}

	if m, ok := v.(map[string]interface{}); ok {
		if l, ok := m["L"]; ok {
			v = l
		}
	}

	list, ok := v.([]interface{})
	if !ok {
		return nil, apperrors.NewValidationError("items must be a list or DynamoDB List AttributeValue")
	}
	if len(list) == 0 {
		return nil, apperrors.NewMissingParameterError("items")
	}

	out := make([]string, 0, len(list))
	for _, item := range list {
		if m, ok := item.(map[string]interface{}); ok && len(m) == 1 {
			for _, val := range m {
				item = val
			}
		}
		out = append(out, stringify(item))
	}
	return out, nil
}

func stringify(v interface{}) string {
	switch t := v.(type) {
	case string:
		return t
	case json.Number:
		return t.String()
	case bool:
		return strconv.FormatBool(t)
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return ""
		}
		return string(b)
	}
}
