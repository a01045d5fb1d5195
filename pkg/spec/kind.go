package spec

// Kind names the drawing method of a series.
//
// The built-in kinds are always available. Any other name is a custom kind
// that the drawing surface resolves at render time; rendering fails with
// errors.ErrCodeUnsupportedKind when the surface has no method by that name.
type Kind string

// Built-in series kinds.
const (
	KindCurve      Kind = "curve"
	KindScatter    Kind = "scatter"
	KindStep       Kind = "step"
	KindFill       Kind = "fill"
	KindLinePoints Kind = "linepoints"
)

var builtinKinds = []Kind{KindCurve, KindScatter, KindStep, KindFill, KindLinePoints}

// BuiltinKinds returns the built-in kinds in a stable order.
func BuiltinKinds() []Kind {
	return append([]Kind(nil), builtinKinds...)
}

// OrDefault returns k, or KindCurve when k is empty.
func (k Kind) OrDefault() Kind {
	if k == "" {
		return KindCurve
	}
	return k
}

// Builtin reports whether k is one of the built-in kinds.
func (k Kind) Builtin() bool {
	k = k.OrDefault()
	for _, b := range builtinKinds {
		if k == b {
			return true
		}
	}
	return false
}

func (k Kind) String() string { return string(k.OrDefault()) }
