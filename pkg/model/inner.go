package model

import "fmt"

// InnerKind classifies the wrapped field's declared type. The set is closed:
// the text kind plus the fixed-width and platform-width integer kinds and the
// two floating point widths. Anything else is rejected at scan time.
type InnerKind uint8

const (
	KindInvalid InnerKind = iota
	KindString
	KindInt
	KindInt8
	KindInt16
	KindInt32
	KindInt64
	KindUint
	KindUint8
	KindUint16
	KindUint32
	KindUint64
	KindFloat32
	KindFloat64
)

var innerKinds = map[string]InnerKind{
	"string":  KindString,
	"int":     KindInt,
	"int8":    KindInt8,
	"int16":   KindInt16,
	"int32":   KindInt32,
	"int64":   KindInt64,
	"uint":    KindUint,
	"uint8":   KindUint8,
	"uint16":  KindUint16,
	"uint32":  KindUint32,
	"uint64":  KindUint64,
	"float32": KindFloat32,
	"float64": KindFloat64,
}

var innerNames = func() map[InnerKind]string {
	names := make(map[InnerKind]string, len(innerKinds))
	for name, kind := range innerKinds {
		names[kind] = name
	}
	return names
}()

// ClassifyInner maps a declared type name to its InnerKind. The caller is
// expected to attach the field's source position to the returned error.
func ClassifyInner(name string) (InnerKind, error) {
	kind, ok := innerKinds[name]
	if !ok {
		return KindInvalid, fmt.Errorf("newtype does not support %q as inner type", name)
	}
	return kind, nil
}

// GoType returns the Go spelling of the kind, e.g. "string" or "int32".
func (k InnerKind) GoType() string { return innerNames[k] }

// IsText reports whether the kind is the text family.
func (k InnerKind) IsText() bool { return k == KindString }

// IsNumeric reports whether the kind is one of the numeric families.
func (k InnerKind) IsNumeric() bool { return k >= KindInt && k <= KindFloat64 }

func (k InnerKind) String() string {
	if name, ok := innerNames[k]; ok {
		return name
	}
	return "invalid"
}
