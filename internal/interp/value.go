package interp

import (
	"bytes"
	"strconv"

	"github.com/cwbudde/go-minisharp/internal/ast"
	"github.com/cwbudde/go-minisharp/internal/ir"
)

// ValueType represents the type tag for a runtime Value.
type ValueType byte

const (
	ValueNull ValueType = iota
	ValueBool
	ValueInt
	ValueString
	ValueArray
	ValueObject
)

// ValueTypeNames maps value types to their string names for debugging.
var ValueTypeNames = [...]string{
	ValueNull:   "null",
	ValueBool:   "bool",
	ValueInt:    "int",
	ValueString: "string",
	ValueArray:  "array",
	ValueObject: "object",
}

// String returns a string representation of the value type.
func (vt ValueType) String() string {
	if int(vt) < len(ValueTypeNames) {
		return ValueTypeNames[vt]
	}
	return "unknown"
}

// Value is a tagged runtime value.
type Value struct {
	Data any
	Type ValueType
}

// Object is a heap-allocated class instance. Fields are stored in
// declaration order and indexed by FieldID.
type Object struct {
	Class  ast.ClassDeclLabel
	Fields []Value
}

func NullValue() Value {
	return Value{Type: ValueNull, Data: nil}
}

func BoolValue(b bool) Value {
	return Value{Type: ValueBool, Data: b}
}

func IntValue(i int64) Value {
	return Value{Type: ValueInt, Data: i}
}

func StringValue(s string) Value {
	return Value{Type: ValueString, Data: s}
}

// ArrayValue constructs a Value holding an array of values.
func ArrayValue(elems []Value) Value {
	return Value{Type: ValueArray, Data: elems}
}

// ObjectValue constructs a Value holding an object instance.
func ObjectValue(obj *Object) Value {
	return Value{Type: ValueObject, Data: obj}
}

// AsInt returns the underlying int64, with ok reporting whether the
// value is an int.
func (v Value) AsInt() (int64, bool) {
	i, ok := v.Data.(int64)
	return i, ok && v.Type == ValueInt
}

// AsBool returns the underlying bool, with ok reporting whether the
// value is a bool.
func (v Value) AsBool() (bool, bool) {
	b, ok := v.Data.(bool)
	return b, ok && v.Type == ValueBool
}

// format appends the printed form of v. Objects print their class name
// and each field on its own line; arrays print their elements between
// brackets; null prints as "null"; primitives print in their natural
// text form.
func (v Value) format(out *bytes.Buffer, classes map[ast.ClassDeclLabel]*ir.ClassInfo) {
	switch v.Type {
	case ValueNull:
		out.WriteString("null")
	case ValueBool:
		out.WriteString(strconv.FormatBool(v.Data.(bool)))
	case ValueInt:
		out.WriteString(strconv.FormatInt(v.Data.(int64), 10))
	case ValueString:
		out.WriteString(v.Data.(string))
	case ValueArray:
		elems := v.Data.([]Value)
		out.WriteString("[")
		for i, e := range elems {
			if i > 0 {
				out.WriteString(", ")
			}
			e.format(out, classes)
		}
		out.WriteString("]")
	case ValueObject:
		obj := v.Data.(*Object)
		info := classes[obj.Class]
		out.WriteString(info.Name)
		out.WriteString(" {\n")
		for i, field := range obj.Fields {
			out.WriteString("    ")
			out.WriteString(info.FieldNames[i])
			out.WriteString(": ")
			field.format(out, classes)
			out.WriteString(",\n")
		}
		out.WriteString("}")
	}
}
