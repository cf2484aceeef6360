package compiler

import (
	"fmt"
	"strings"
)

// Unsized marks an array dimension written as empty brackets.
const Unsized int64 = -1

// Type is the closed set of type variants used during parsing. Values are
// immutable after construction. Equality is variant-specific: nominal for
// classes and unions, structural for pointers, arrays and functions, and
// by name for primitives; cross-variant comparisons are always unequal.
type Type interface {
	typeNode()
	// Equal reports variant-specific equality with other.
	Equal(other Type) bool
	// String renders the canonical C-style spelling of the type.
	String() string
}

// PrimitiveType is one of the ten fixed built-in types. Instances are
// process-wide read-only singletons; identity is by name.
type PrimitiveType struct {
	Name     string // source spelling, e.g. "I64"
	CName    string // C rendering, e.g. "int64_t"
	Size     int    // storage size in bytes
	Signed   bool
	Floating bool
}

func (*PrimitiveType) typeNode() {}

func (t *PrimitiveType) Equal(other Type) bool {
	o, ok := other.(*PrimitiveType)
	return ok && t.Name == o.Name
}

func (t *PrimitiveType) String() string { return t.CName }

// PointerType is pointee plus a level count of at least 1. Pointer-of-
// pointer never appears; NewPointer collapses nesting into the count.
type PointerType struct {
	Pointee Type
	Levels  int
}

// NewPointer wraps pointee with levels extra indirections, merging into an
// existing PointerType rather than nesting.
func NewPointer(pointee Type, levels int) *PointerType {
	if p, ok := pointee.(*PointerType); ok {
		return &PointerType{Pointee: p.Pointee, Levels: p.Levels + levels}
	}
	return &PointerType{Pointee: pointee, Levels: levels}
}

func (*PointerType) typeNode() {}

func (t *PointerType) Equal(other Type) bool {
	o, ok := other.(*PointerType)
	return ok && t.Levels == o.Levels && t.Pointee.Equal(o.Pointee)
}

func (t *PointerType) String() string {
	return t.Pointee.String() + strings.Repeat("*", t.Levels)
}

// ArrayType is an element type plus ordered dimensions in declaration
// order; a dimension is a literal size or Unsized. Array-of-array never
// appears; NewArray collapses nesting into one dimension list.
type ArrayType struct {
	Elem Type
	Dims []int64
}

// NewArray wraps elem with dims, merging into an existing ArrayType by
// appending dims after the existing dimensions.
func NewArray(elem Type, dims []int64) *ArrayType {
	if a, ok := elem.(*ArrayType); ok {
		merged := make([]int64, 0, len(a.Dims)+len(dims))
		merged = append(merged, a.Dims...)
		merged = append(merged, dims...)
		return &ArrayType{Elem: a.Elem, Dims: merged}
	}
	return &ArrayType{Elem: elem, Dims: dims}
}

func (*ArrayType) typeNode() {}

func (t *ArrayType) Equal(other Type) bool {
	o, ok := other.(*ArrayType)
	if !ok || len(t.Dims) != len(o.Dims) || !t.Elem.Equal(o.Elem) {
		return false
	}
	for i, d := range t.Dims {
		if d != o.Dims[i] {
			return false
		}
	}
	return true
}

func (t *ArrayType) String() string {
	var b strings.Builder
	b.WriteString(t.Elem.String())
	for _, d := range t.Dims {
		if d == Unsized {
			b.WriteString("[]")
		} else {
			fmt.Fprintf(&b, "[%d]", d)
		}
	}
	return b.String()
}

// ClassType is nominal: equality is by name only. Base is unresolved
// metadata for later stages and takes no part in identity.
type ClassType struct {
	Name string
	Base string // base class name, "" when absent
}

func (*ClassType) typeNode() {}

func (t *ClassType) Equal(other Type) bool {
	o, ok := other.(*ClassType)
	return ok && t.Name == o.Name
}

func (t *ClassType) String() string { return t.Name }

// UnionType is nominal like ClassType. TagPrefix records the member
// naming convention when one is declared; it is metadata only.
type UnionType struct {
	Name      string
	TagPrefix string
}

func (*UnionType) typeNode() {}

func (t *UnionType) Equal(other Type) bool {
	o, ok := other.(*UnionType)
	return ok && t.Name == o.Name
}

func (t *UnionType) String() string { return t.Name }

// FunctionType is structural: return type plus ordered parameter types.
type FunctionType struct {
	Return Type
	Params []Type
}

func (*FunctionType) typeNode() {}

func (t *FunctionType) Equal(other Type) bool {
	o, ok := other.(*FunctionType)
	if !ok || len(t.Params) != len(o.Params) || !t.Return.Equal(o.Return) {
		return false
	}
	for i, p := range t.Params {
		if !p.Equal(o.Params[i]) {
			return false
		}
	}
	return true
}

func (t *FunctionType) String() string {
	params := make([]string, len(t.Params))
	for i, p := range t.Params {
		params[i] = p.String()
	}
	return fmt.Sprintf("%s (*)(%s)", t.Return, strings.Join(params, ", "))
}

// TypeKey returns a deterministic map key for t. Keys are variant-tagged
// so that, like Equal, types of different variants never collide.
func TypeKey(t Type) string {
	switch v := t.(type) {
	case *PrimitiveType:
		return "prim:" + v.Name
	case *PointerType:
		return fmt.Sprintf("ptr%d:%s", v.Levels, TypeKey(v.Pointee))
	case *ArrayType:
		var b strings.Builder
		b.WriteString("arr:")
		b.WriteString(TypeKey(v.Elem))
		for _, d := range v.Dims {
			fmt.Fprintf(&b, "[%d]", d)
		}
		return b.String()
	case *ClassType:
		return "class:" + v.Name
	case *UnionType:
		return "union:" + v.Name
	case *FunctionType:
		parts := make([]string, len(v.Params))
		for i, p := range v.Params {
			parts[i] = TypeKey(p)
		}
		return fmt.Sprintf("fn:%s(%s)", TypeKey(v.Return), strings.Join(parts, ","))
	default:
		panic(fmt.Sprintf("unknown type variant %T", t))
	}
}

// IsInteger reports whether t is a non-void, non-floating primitive.
func IsInteger(t Type) bool {
	p, ok := t.(*PrimitiveType)
	return ok && !p.Floating && p.Name != "U0"
}

// IsFloat reports whether t is a floating primitive.
func IsFloat(t Type) bool {
	p, ok := t.(*PrimitiveType)
	return ok && p.Floating
}

// IsPointer reports whether t is a pointer.
func IsPointer(t Type) bool {
	_, ok := t.(*PointerType)
	return ok
}

// IsVoid reports whether t is the void analog U0.
func IsVoid(t Type) bool {
	p, ok := t.(*PrimitiveType)
	return ok && p.Name == "U0"
}

// The ten primitive singletons.
var (
	TypeU0  = &PrimitiveType{Name: "U0", CName: "void", Size: 0}
	TypeI8  = &PrimitiveType{Name: "I8", CName: "int8_t", Size: 1, Signed: true}
	TypeU8  = &PrimitiveType{Name: "U8", CName: "uint8_t", Size: 1}
	TypeI16 = &PrimitiveType{Name: "I16", CName: "int16_t", Size: 2, Signed: true}
	TypeU16 = &PrimitiveType{Name: "U16", CName: "uint16_t", Size: 2}
	TypeI32 = &PrimitiveType{Name: "I32", CName: "int32_t", Size: 4, Signed: true}
	TypeU32 = &PrimitiveType{Name: "U32", CName: "uint32_t", Size: 4}
	TypeI64 = &PrimitiveType{Name: "I64", CName: "int64_t", Size: 8, Signed: true}
	TypeU64 = &PrimitiveType{Name: "U64", CName: "uint64_t", Size: 8}
	TypeF64 = &PrimitiveType{Name: "F64", CName: "double", Size: 8, Signed: true, Floating: true}
)

// primitives is the read-only registry of built-in types keyed by source
// name. It is never mutated after package init and is safe for concurrent
// reads from parallel parses.
var primitives = map[string]*PrimitiveType{
	"U0":  TypeU0,
	"I8":  TypeI8,
	"U8":  TypeU8,
	"I16": TypeI16,
	"U16": TypeU16,
	"I32": TypeI32,
	"U32": TypeU32,
	"I64": TypeI64,
	"U64": TypeU64,
	"F64": TypeF64,
}

// PrimitiveByName looks name up in the primitive registry.
func PrimitiveByName(name string) (*PrimitiveType, bool) {
	t, ok := primitives[name]
	return t, ok
}

// IsPrimitiveName reports whether name spells a built-in type.
func IsPrimitiveName(name string) bool {
	_, ok := primitives[name]
	return ok
}
