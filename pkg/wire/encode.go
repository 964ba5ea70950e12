package wire

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"strings"
	"time"

	"github.com/iancoleman/strcase"

	"github.com/basebase-ai/basebase-go/pkg/errs"
)

// TagName is the struct tag consulted when encoding structs. The tag value
// is "name[,omitempty]"; "-" skips the field. Untagged exported fields are
// named with the lowerCamelCase form of the Go field name.
const TagName = "basebase"

var (
	valueType  = reflect.TypeOf(Value{})
	numberType = reflect.TypeOf(json.Number(""))
	timeType   = reflect.TypeOf(time.Time{})
)

// Encode converts a native Go value to a wire Value.
//
// Integral numbers become integer values and all other numbers become
// double values. Slices and arrays become array values; string-keyed maps
// and structs become map values. Nil pointers, nil slices and nil maps
// encode as null. Functions, channels, complex numbers and maps with
// non-string keys are rejected with errs.ErrInvalidArgument.
func Encode(v any) (Value, error) {
	switch x := v.(type) {
	case nil:
		return Null(), nil
	case Value:
		return x, nil
	case string:
		return String(x), nil
	case bool:
		return Boolean(x), nil
	case int:
		return Integer(int64(x)), nil
	case int64:
		return Integer(x), nil
	case float64:
		return encodeFloat(x), nil
	}
	return encode(reflect.ValueOf(v), "")
}

// MustEncode is like Encode but panics on error. It is meant for fixtures.
func MustEncode(v any) Value {
	out, err := Encode(v)
	if err != nil {
		panic(fmt.Sprintf("wire.MustEncode: %v", err))
	}
	return out
}

func encode(rv reflect.Value, at string) (Value, error) {
	if !rv.IsValid() {
		return Null(), nil
	}

	switch rv.Type() {
	case valueType:
		if rv.CanInterface() {
			return rv.Interface().(Value), nil
		}
	case numberType:
		return encodeNumber(json.Number(rv.String()), at)
	case timeType:
		if rv.CanInterface() {
			return String(rv.Interface().(time.Time).Format(time.RFC3339Nano)), nil
		}
	}

	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return Null(), nil
		}
		return encode(rv.Elem(), at)

	case reflect.String:
		return String(rv.String()), nil

	case reflect.Bool:
		return Boolean(rv.Bool()), nil

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Integer(rv.Int()), nil

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u := rv.Uint()
		if u > math.MaxInt64 {
			return Value{}, errs.InvalidArgument("wire.Encode", "integer %d%s overflows int64", u, location(at))
		}
		return Integer(int64(u)), nil

	case reflect.Float32, reflect.Float64:
		return encodeFloat(rv.Float()), nil

	case reflect.Slice:
		if rv.IsNil() {
			return Null(), nil
		}
		return encodeList(rv, at)

	case reflect.Array:
		return encodeList(rv, at)

	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return Value{}, errs.InvalidArgument("wire.Encode", "unsupported map key type %s%s", rv.Type().Key(), location(at))
		}
		if rv.IsNil() {
			return Null(), nil
		}
		fields := make(map[string]Value, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			key := iter.Key().String()
			fv, err := encode(iter.Value(), join(at, key))
			if err != nil {
				return Value{}, err
			}
			fields[key] = fv
		}
		return Value{kind: KindMap, m: fields}, nil

	case reflect.Struct:
		fields := make(map[string]Value)
		if err := encodeStruct(rv, at, fields); err != nil {
			return Value{}, err
		}
		return Value{kind: KindMap, m: fields}, nil
	}

	return Value{}, errs.InvalidArgument("wire.Encode", "unsupported data type: %s%s", rv.Type(), location(at))
}

func encodeList(rv reflect.Value, at string) (Value, error) {
	values := make([]Value, rv.Len())
	for i := range values {
		ev, err := encode(rv.Index(i), fmt.Sprintf("%s[%d]", at, i))
		if err != nil {
			return Value{}, err
		}
		values[i] = ev
	}
	return Value{kind: KindArray, arr: values}, nil
}

func encodeStruct(rv reflect.Value, at string, fields map[string]Value) error {
	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		f := rt.Field(i)
		if !f.IsExported() {
			continue
		}

		name, omitEmpty, tagged := parseTag(f.Tag.Get(TagName))
		if name == "-" {
			continue
		}

		fv := rv.Field(i)

		// Untagged embedded structs are flattened into the parent.
		if f.Anonymous && !tagged {
			inner := fv
			if inner.Kind() == reflect.Pointer {
				if inner.IsNil() {
					continue
				}
				inner = inner.Elem()
			}
			if inner.Kind() == reflect.Struct && inner.Type() != timeType {
				if err := encodeStruct(inner, at, fields); err != nil {
					return err
				}
				continue
			}
		}

		if name == "" {
			name = strcase.ToLowerCamel(f.Name)
		}
		if omitEmpty && fv.IsZero() {
			continue
		}

		ev, err := encode(fv, join(at, name))
		if err != nil {
			return err
		}
		fields[name] = ev
	}
	return nil
}

func parseTag(tag string) (name string, omitEmpty, tagged bool) {
	if tag == "" {
		return "", false, false
	}
	parts := strings.Split(tag, ",")
	for _, opt := range parts[1:] {
		if opt == "omitempty" {
			omitEmpty = true
		}
	}
	return parts[0], omitEmpty, true
}

func encodeNumber(n json.Number, at string) (Value, error) {
	if i, err := n.Int64(); err == nil {
		return Integer(i), nil
	}
	f, err := n.Float64()
	if err != nil {
		return Value{}, errs.InvalidArgument("wire.Encode", "invalid number %q%s", n.String(), location(at))
	}
	return encodeFloat(f), nil
}

// encodeFloat maps numbers without a fractional part that fit in an int64
// to integer values.
func encodeFloat(f float64) Value {
	if !math.IsNaN(f) && !math.IsInf(f, 0) && f == math.Trunc(f) &&
		f >= math.MinInt64 && f < math.MaxInt64 {
		return Integer(int64(f))
	}
	return Double(f)
}

func join(at, key string) string {
	if at == "" {
		return key
	}
	return at + "." + key
}

func location(at string) string {
	if at == "" {
		return ""
	}
	return fmt.Sprintf(" at %q", at)
}
