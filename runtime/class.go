package runtime

import (
	"fmt"
	"io"
)

// Protocol methods a class may define to override built-in behavior.
const (
	StrMethod  = "__str__" // string conversion, arity 0
	EqMethod   = "__eq__"  // equality, arity 1
	LessMethod = "__lt__"  // ordering, arity 1
)

// UndefinedMethodError is reported by Call when the method is missing or
// declared with a different arity.
type UndefinedMethodError struct {
	Class  string
	Method string
	Args   int
}

func (e UndefinedMethodError) Error() string {
	return fmt.Sprintf("call to undefined method %s.%s/%d", e.Class, e.Method, e.Args)
}

func (e UndefinedMethodError) Unwrap() error { return ErrExecution }

// Method is a named method of a class. Its body lives in the AST layer and
// is only invoked through the Executable contract.
type Method struct {
	Name         string
	FormalParams []string
	Body         Executable
}

// Class describes a Mython class. It is immutable after construction: the
// method set and the parent link never change, and lookups go through a
// dispatch table flattened at construction time.
type Class struct {
	name    string
	methods []Method
	parent  *Class
	vtable  map[string]*Method
}

// NewClass builds a class from its declared methods and optional parent.
// The dispatch table starts as a copy of the parent's flattened table, so
// inherited methods of any depth stay reachable; the class's own methods
// then overwrite same-named entries.
func NewClass(name string, methods []Method, parent *Class) *Class {
	cls := &Class{
		name:    name,
		methods: append([]Method(nil), methods...),
		parent:  parent,
		vtable:  make(map[string]*Method),
	}
	if parent != nil {
		for methodName, method := range parent.vtable {
			cls.vtable[methodName] = method
		}
	}
	for i := range cls.methods {
		cls.vtable[cls.methods[i].Name] = &cls.methods[i]
	}
	return cls
}

// GetMethod returns the method visible under name, or nil when the class
// and its ancestors declare none.
func (c *Class) GetMethod(name string) *Method {
	return c.vtable[name]
}

func (c *Class) GetName() string {
	return c.name
}

func (c *Class) Print(w io.Writer, _ Context) error {
	_, err := fmt.Fprintf(w, "Class %s", c.name)
	return err
}

var _ Object = (*Class)(nil)

// ClassInstance is an object of a user-defined class. The class link is a
// borrowed reference: the class table owns the Class and outlives every
// instance.
type ClassInstance struct {
	class  *Class
	fields Closure
}

func NewInstance(cls *Class) *ClassInstance {
	return &ClassInstance{
		class:  cls,
		fields: make(Closure),
	}
}

// HasMethod reports whether the instance's class declares (or inherits) a
// method of the given name taking exactly args parameters. An existing
// name with a different arity counts as no method at all.
func (inst *ClassInstance) HasMethod(name string, args int) bool {
	method := inst.class.GetMethod(name)
	return method != nil && len(method.FormalParams) == args
}

// Fields returns the instance's live field mapping. Method bodies read and
// write instance attributes through it.
func (inst *ClassInstance) Fields() Closure {
	return inst.fields
}

// Call invokes the named method with the given arguments. The method body
// runs with a fresh closure holding self plus each formal parameter bound
// positionally.
func (inst *ClassInstance) Call(name string, args []ObjectHolder, ctx Context) (ObjectHolder, error) {
	if !inst.HasMethod(name, len(args)) {
		return None(), UndefinedMethodError{
			Class:  inst.class.GetName(),
			Method: name,
			Args:   len(args),
		}
	}

	method := inst.class.GetMethod(name)
	closure := Closure{"self": Share(inst)}
	for i, param := range method.FormalParams {
		closure[param] = args[i]
	}

	return method.Body.Execute(closure, ctx)
}

// Print writes the instance through its __str__ method when one is
// declared, and an opaque identity rendering otherwise.
func (inst *ClassInstance) Print(w io.Writer, ctx Context) error {
	if inst.HasMethod(StrMethod, 0) {
		result, err := inst.Call(StrMethod, nil, ctx)
		if err != nil {
			return err
		}
		return Print(result, w, ctx)
	}
	_, err := fmt.Fprintf(w, "<%s object at %p>", inst.class.GetName(), inst)
	return err
}

var _ Object = (*ClassInstance)(nil)
