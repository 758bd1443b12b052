package ttlmemo

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
)

// encodeKey turns a positional argument tuple into the string the entry table
// is indexed by. Tuples that are pairwise == with identical dynamic types share
// a key. Slices, maps and funcs anywhere in an argument make it unhashable.
func encodeKey(args []any) (string, error) {
	var b strings.Builder
	b.WriteString(strconv.Itoa(len(args)))
	for i, arg := range args {
		b.WriteByte('|')
		switch v := arg.(type) {
		case nil:
			b.WriteString("nil")
		case string:
			b.WriteString("string:")
			b.WriteString(strconv.Quote(v))
		case int:
			b.WriteString("int:")
			b.WriteString(strconv.Itoa(v))
		case int64:
			b.WriteString("int64:")
			b.WriteString(strconv.FormatInt(v, 10))
		case bool:
			b.WriteString("bool:")
			b.WriteString(strconv.FormatBool(v))
		default:
			rv := reflect.ValueOf(arg)
			if !hashable(rv) {
				return "", fmt.Errorf("%w: argument %d has type %T", ErrUnhashableArgs, i, arg)
			}
			writeValue(&b, rv)
		}
	}
	return b.String(), nil
}

// hashable reports whether v could be compared with ==. Unlike the static
// type check it looks inside interfaces at the dynamic value.
func hashable(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Slice, reflect.Map, reflect.Func:
		return false
	case reflect.Interface:
		return v.IsNil() || hashable(v.Elem())
	case reflect.Array:
		if v.Len() == 0 {
			return v.Type().Comparable()
		}
		for i := 0; i < v.Len(); i++ {
			if !hashable(v.Index(i)) {
				return false
			}
		}
	case reflect.Struct:
		for i := 0; i < v.NumField(); i++ {
			if !hashable(v.Field(i)) {
				return false
			}
		}
	}
	return true
}

func writeValue(b *strings.Builder, v reflect.Value) {
	if !v.IsValid() {
		b.WriteString("nil")
		return
	}

	t := v.Type()
	writeType(b, t)
	b.WriteByte(':')

	switch v.Kind() {
	case reflect.Bool:
		b.WriteString(strconv.FormatBool(v.Bool()))
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		b.WriteString(strconv.FormatInt(v.Int(), 10))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		b.WriteString(strconv.FormatUint(v.Uint(), 10))
	case reflect.Float32, reflect.Float64:
		b.WriteString(formatFloat(v.Float(), t.Bits()))
	case reflect.Complex64, reflect.Complex128:
		c := v.Complex()
		bits := t.Bits() / 2
		b.WriteString(formatFloat(real(c), bits))
		b.WriteByte(',')
		b.WriteString(formatFloat(imag(c), bits))
	case reflect.String:
		b.WriteString(strconv.Quote(v.String()))
	case reflect.Pointer, reflect.Chan, reflect.UnsafePointer:
		b.WriteString("0x")
		b.WriteString(strconv.FormatUint(uint64(v.Pointer()), 16))
	case reflect.Interface:
		if v.IsNil() {
			b.WriteString("nil")
			return
		}
		writeValue(b, v.Elem())
	case reflect.Array:
		b.WriteByte('[')
		for i := 0; i < v.Len(); i++ {
			if i > 0 {
				b.WriteByte(',')
			}
			writeValue(b, v.Index(i))
		}
		b.WriteByte(']')
	case reflect.Struct:
		b.WriteByte('{')
		for i := 0; i < v.NumField(); i++ {
			if i > 0 {
				b.WriteByte(',')
			}
			writeValue(b, v.Field(i))
		}
		b.WriteByte('}')
	}
}

// writeType spells t with the import path of every named type it is built
// from, so same-named packages never collide. Type arguments of generic
// named types are spelled by package name only.
func writeType(b *strings.Builder, t reflect.Type) {
	if t.Name() != "" {
		if pkg := t.PkgPath(); pkg != "" {
			b.WriteString(pkg)
			b.WriteByte('/')
		}
		b.WriteString(t.String())
		return
	}

	switch t.Kind() {
	case reflect.Pointer:
		b.WriteByte('*')
		writeType(b, t.Elem())
	case reflect.Array:
		b.WriteByte('[')
		b.WriteString(strconv.Itoa(t.Len()))
		b.WriteByte(']')
		writeType(b, t.Elem())
	case reflect.Slice:
		b.WriteString("[]")
		writeType(b, t.Elem())
	case reflect.Map:
		b.WriteString("map[")
		writeType(b, t.Key())
		b.WriteByte(']')
		writeType(b, t.Elem())
	case reflect.Chan:
		b.WriteString(t.ChanDir().String())
		b.WriteByte(' ')
		writeType(b, t.Elem())
	case reflect.Struct:
		b.WriteString("struct{")
		for i := 0; i < t.NumField(); i++ {
			if i > 0 {
				b.WriteString("; ")
			}
			f := t.Field(i)
			if f.PkgPath != "" {
				b.WriteString(f.PkgPath)
				b.WriteByte('.')
			}
			b.WriteString(f.Name)
			b.WriteByte(' ')
			writeType(b, f.Type)
			if f.Tag != "" {
				b.WriteByte(' ')
				b.WriteString(strconv.Quote(string(f.Tag)))
			}
		}
		b.WriteByte('}')
	default:
		b.WriteString(t.String())
	}
}

// formatFloat folds -0 into 0 and every NaN into one spelling.
func formatFloat(f float64, bits int) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case f == 0:
		return "0"
	}
	return strconv.FormatFloat(f, 'g', -1, bits)
}
