package wire

// Decode converts a wire Value to its native Go form. See the package
// documentation for the mapping.
func Decode(v Value) any {
	switch v.kind {
	case KindString:
		return v.s
	case KindInteger:
		return v.i
	case KindDouble:
		return v.d
	case KindBoolean:
		return v.b
	case KindArray:
		out := make([]any, len(v.arr))
		for i, e := range v.arr {
			out[i] = Decode(e)
		}
		return out
	case KindMap:
		out := make(map[string]any, len(v.m))
		for k, f := range v.m {
			out[k] = Decode(f)
		}
		return out
	default:
		return nil
	}
}
