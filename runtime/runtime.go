// Package runtime implements the Mython object model: runtime values, the
// nullable ObjectHolder handle around them, class and instance dispatch,
// and the built-in comparison protocol.
package runtime

import (
	"errors"
	"fmt"
	"io"
)

// ErrExecution is the kind shared by every error this package reports.
// Hosts match it with errors.Is to tell runtime failures from lexing ones.
var ErrExecution = errors.New("runtime error")

// EmptyValueError is reported when an empty holder is dereferenced.
type EmptyValueError struct{}

func (e EmptyValueError) Error() string { return "dereference of None" }

func (e EmptyValueError) Unwrap() error { return ErrExecution }

// Context carries the execution environment of a method call. The only
// service the core needs from it is the sink for the language's print
// statement.
type Context interface {
	Output() io.Writer
}

// SimpleContext sends print output to a caller-supplied writer.
type SimpleContext struct {
	out io.Writer
}

func NewSimpleContext(out io.Writer) *SimpleContext {
	return &SimpleContext{out: out}
}

func (c *SimpleContext) Output() io.Writer { return c.out }

// DummyContext discards all print output.
type DummyContext struct{}

func (DummyContext) Output() io.Writer { return io.Discard }

// Object is a runtime value.
type Object interface {
	Print(w io.Writer, ctx Context) error
}

// Closure maps local variable names to values for one method call.
type Closure map[string]ObjectHolder

// Executable is a method body. It is owned by the AST layer; the core only
// invokes it with the call's local bindings.
type Executable interface {
	Execute(closure Closure, ctx Context) (ObjectHolder, error)
}

// ObjectHolder is a nullable handle to a runtime value. The zero value is
// empty and represents the language's None.
type ObjectHolder struct {
	data Object
}

// Own wraps a newly created value.
func Own(data Object) ObjectHolder {
	return ObjectHolder{data: data}
}

// Share wraps an existing value without taking part in its lifetime. Used
// to pass self into a method call; the caller keeps the instance alive for
// the duration of the call.
func Share(data Object) ObjectHolder {
	return ObjectHolder{data: data}
}

// None returns the empty holder.
func None() ObjectHolder {
	return ObjectHolder{}
}

// Valid reports whether the holder carries a value.
func (h ObjectHolder) Valid() bool {
	return h.data != nil
}

// Get returns the held value, or nil when the holder is empty.
func (h ObjectHolder) Get() Object {
	return h.data
}

// Deref returns the held value, failing with an EmptyValueError when the
// holder is empty.
func (h ObjectHolder) Deref() (Object, error) {
	if h.data == nil {
		return nil, EmptyValueError{}
	}
	return h.data, nil
}

// As narrows the held value to a concrete kind.
func As[T Object](h ObjectHolder) (T, bool) {
	value, ok := h.data.(T)
	return value, ok
}

// IsTrue reports the truthiness of a value: a nonzero number, a nonempty
// string, or the boolean True. Everything else, including classes and
// class instances, is false.
func IsTrue(h ObjectHolder) bool {
	switch value := h.data.(type) {
	case Bool:
		return bool(value)
	case Number:
		return value != 0
	case String:
		return value != ""
	default:
		return false
	}
}

// Print renders a value to w, writing "None" for the empty holder.
func Print(h ObjectHolder, w io.Writer, ctx Context) error {
	if h.data == nil {
		_, err := io.WriteString(w, "None")
		return err
	}
	return h.data.Print(w, ctx)
}

type Number int

func (n Number) Print(w io.Writer, _ Context) error {
	_, err := fmt.Fprintf(w, "%d", int(n))
	return err
}

type String string

func (s String) Print(w io.Writer, _ Context) error {
	_, err := io.WriteString(w, string(s))
	return err
}

type Bool bool

func (b Bool) Print(w io.Writer, _ Context) error {
	text := "False"
	if b {
		text = "True"
	}
	_, err := io.WriteString(w, text)
	return err
}

var (
	_ Object = Number(0)
	_ Object = String("")
	_ Object = Bool(false)
)
