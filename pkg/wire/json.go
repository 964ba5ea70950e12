package wire

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"github.com/basebase-ai/basebase-go/pkg/errs"
)

// Tags in the order UnmarshalJSON inspects them. The first one present wins.
const (
	tagNull    = "nullValue"
	tagString  = "stringValue"
	tagInteger = "integerValue"
	tagDouble  = "doubleValue"
	tagBoolean = "booleanValue"
	tagArray   = "arrayValue"
	tagMap     = "mapValue"
)

type arrayPayload struct {
	Values []Value `json:"values"`
}

type mapPayload struct {
	Fields map[string]Value `json:"fields"`
}

// MarshalJSON implements json.Marshaler. Exactly one tag is emitted.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindNull:
		return []byte(`{"nullValue":null}`), nil
	case KindString:
		return json.Marshal(map[string]string{tagString: v.s})
	case KindInteger:
		return json.Marshal(map[string]string{tagInteger: strconv.FormatInt(v.i, 10)})
	case KindDouble:
		if s, ok := nonFiniteString(v.d); ok {
			return json.Marshal(map[string]string{tagDouble: s})
		}
		return json.Marshal(map[string]float64{tagDouble: v.d})
	case KindBoolean:
		return json.Marshal(map[string]bool{tagBoolean: v.b})
	case KindArray:
		values := v.arr
		if values == nil {
			values = []Value{}
		}
		return json.Marshal(map[string]arrayPayload{tagArray: {Values: values}})
	case KindMap:
		fields := v.m
		if fields == nil {
			fields = map[string]Value{}
		}
		return json.Marshal(map[string]mapPayload{tagMap: {Fields: fields}})
	default:
		return nil, errs.Internal("wire.Value.MarshalJSON", "unknown kind %d", v.kind)
	}
}

// UnmarshalJSON implements json.Unmarshaler. A payload with no recognised
// tag decodes to the null value.
func (v *Value) UnmarshalJSON(data []byte) error {
	var tags map[string]json.RawMessage
	if err := json.Unmarshal(data, &tags); err != nil {
		return fmt.Errorf("wire value must be a JSON object: %w", err)
	}

	if _, ok := tags[tagNull]; ok {
		*v = Null()
		return nil
	}

	if raw, ok := present(tags, tagString); ok {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return fmt.Errorf("failed to decode %s: %w", tagString, err)
		}
		*v = String(s)
		return nil
	}

	if raw, ok := present(tags, tagInteger); ok {
		i, err := parseInteger(raw)
		if err != nil {
			return err
		}
		*v = Integer(i)
		return nil
	}

	if raw, ok := present(tags, tagDouble); ok {
		d, err := parseDouble(raw)
		if err != nil {
			return err
		}
		*v = Double(d)
		return nil
	}

	if raw, ok := present(tags, tagBoolean); ok {
		var b bool
		if err := json.Unmarshal(raw, &b); err != nil {
			return fmt.Errorf("failed to decode %s: %w", tagBoolean, err)
		}
		*v = Boolean(b)
		return nil
	}

	if raw, ok := present(tags, tagArray); ok {
		var p arrayPayload
		if err := json.Unmarshal(raw, &p); err != nil {
			return fmt.Errorf("failed to decode %s: %w", tagArray, err)
		}
		*v = Array(p.Values...)
		return nil
	}

	if raw, ok := present(tags, tagMap); ok {
		var p mapPayload
		if err := json.Unmarshal(raw, &p); err != nil {
			return fmt.Errorf("failed to decode %s: %w", tagMap, err)
		}
		*v = Map(p.Fields)
		return nil
	}

	*v = Null()
	return nil
}

// present returns the raw payload of tag when the tag exists and is not
// JSON null.
func present(tags map[string]json.RawMessage, tag string) (json.RawMessage, bool) {
	raw, ok := tags[tag]
	if !ok || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return nil, false
	}
	return raw, true
}

// parseInteger accepts the canonical decimal string form as well as a bare
// JSON integer. It never goes through float64.
func parseInteger(raw json.RawMessage) (int64, error) {
	s := string(bytes.TrimSpace(raw))
	if len(s) > 0 && s[0] == '"' {
		if err := json.Unmarshal(raw, &s); err != nil {
			return 0, fmt.Errorf("failed to decode %s: %w", tagInteger, err)
		}
	}
	i, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, errs.InvalidArgument("wire.Value.UnmarshalJSON", "invalid %s %q", tagInteger, s)
	}
	return i, nil
}

func parseDouble(raw json.RawMessage) (float64, error) {
	var d float64
	if err := json.Unmarshal(raw, &d); err == nil {
		return d, nil
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return 0, errs.InvalidArgument("wire.Value.UnmarshalJSON", "invalid %s %s", tagDouble, raw)
	}
	switch s {
	case "NaN":
		return math.NaN(), nil
	case "Infinity":
		return math.Inf(1), nil
	case "-Infinity":
		return math.Inf(-1), nil
	}
	d, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, errs.InvalidArgument("wire.Value.UnmarshalJSON", "invalid %s %q", tagDouble, s)
	}
	return d, nil
}

func nonFiniteString(d float64) (string, bool) {
	switch {
	case math.IsNaN(d):
		return "NaN", true
	case math.IsInf(d, 1):
		return "Infinity", true
	case math.IsInf(d, -1):
		return "-Infinity", true
	}
	return "", false
}
