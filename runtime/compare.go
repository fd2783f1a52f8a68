package runtime

import "fmt"

// NotComparableError is reported when neither an override method nor a
// shared built-in kind applies to the operands.
type NotComparableError struct {
	Op string
}

func (e NotComparableError) Error() string {
	return fmt.Sprintf("cannot compare objects for %s", e.Op)
}

func (e NotComparableError) Unwrap() error { return ErrExecution }

// callOverride runs a comparison protocol method on lhs and interprets its
// boolean result.
func callOverride(inst *ClassInstance, method, op string, rhs ObjectHolder, ctx Context) (bool, error) {
	result, err := inst.Call(method, []ObjectHolder{rhs}, ctx)
	if err != nil {
		return false, err
	}
	value, ok := As[Bool](result)
	if !ok {
		return false, NotComparableError{Op: op}
	}
	return bool(value), nil
}

// Equal compares two values. A class instance with an __eq__ method of
// arity 1 decides for itself; otherwise both operands must be of the same
// built-in kind. Two empty values are equal; an empty value equals nothing
// else.
func Equal(lhs, rhs ObjectHolder, ctx Context) (bool, error) {
	if !lhs.Valid() || !rhs.Valid() {
		// None equals only None; no coercion across kinds.
		return lhs.Valid() == rhs.Valid(), nil
	}

	if inst, ok := As[*ClassInstance](lhs); ok && inst.HasMethod(EqMethod, 1) {
		return callOverride(inst, EqMethod, "equality", rhs, ctx)
	}

	if a, ok := As[Bool](lhs); ok {
		if b, ok := As[Bool](rhs); ok {
			return a == b, nil
		}
	}
	if a, ok := As[Number](lhs); ok {
		if b, ok := As[Number](rhs); ok {
			return a == b, nil
		}
	}
	if a, ok := As[String](lhs); ok {
		if b, ok := As[String](rhs); ok {
			return a == b, nil
		}
	}

	return false, NotComparableError{Op: "equality"}
}

// Less orders two values. A class instance with an __lt__ method of
// arity 1 decides for itself; otherwise both operands must be of the same
// built-in kind: False < True, integer order, lexicographic byte order.
func Less(lhs, rhs ObjectHolder, ctx Context) (bool, error) {
	if inst, ok := As[*ClassInstance](lhs); ok && inst.HasMethod(LessMethod, 1) {
		return callOverride(inst, LessMethod, "less", rhs, ctx)
	}

	if a, ok := As[Bool](lhs); ok {
		if b, ok := As[Bool](rhs); ok {
			return !bool(a) && bool(b), nil
		}
	}
	if a, ok := As[Number](lhs); ok {
		if b, ok := As[Number](rhs); ok {
			return a < b, nil
		}
	}
	if a, ok := As[String](lhs); ok {
		if b, ok := As[String](rhs); ok {
			return a < b, nil
		}
	}

	return false, NotComparableError{Op: "less"}
}

// The derived operators below re-invoke Equal and Less rather than caching
// their results, so a user override runs up to twice per comparison; the
// invocation counts are pinned by tests and must not change.

func NotEqual(lhs, rhs ObjectHolder, ctx Context) (bool, error) {
	equal, err := Equal(lhs, rhs, ctx)
	if err != nil {
		return false, err
	}
	return !equal, nil
}

func Greater(lhs, rhs ObjectHolder, ctx Context) (bool, error) {
	less, err := Less(lhs, rhs, ctx)
	if err != nil {
		return false, err
	}
	if less {
		return false, nil
	}
	equal, err := Equal(lhs, rhs, ctx)
	if err != nil {
		return false, err
	}
	return !equal, nil
}

func LessOrEqual(lhs, rhs ObjectHolder, ctx Context) (bool, error) {
	less, err := Less(lhs, rhs, ctx)
	if err != nil {
		return false, err
	}
	if less {
		return true, nil
	}
	return Equal(lhs, rhs, ctx)
}

func GreaterOrEqual(lhs, rhs ObjectHolder, ctx Context) (bool, error) {
	less, err := Less(lhs, rhs, ctx)
	if err != nil {
		return false, err
	}
	return !less, nil
}
