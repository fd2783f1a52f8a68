package runtime_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MegaSamuel/mython/runtime"
)

type comparison func(lhs, rhs runtime.ObjectHolder, ctx runtime.Context) (bool, error)

func Test_Compare_Builtins(t *testing.T) {
	num := func(v int) runtime.ObjectHolder { return runtime.Own(runtime.Number(v)) }
	str := func(v string) runtime.ObjectHolder { return runtime.Own(runtime.String(v)) }
	boolean := func(v bool) runtime.ObjectHolder { return runtime.Own(runtime.Bool(v)) }

	testCases := []struct {
		name     string
		op       comparison
		lhs, rhs runtime.ObjectHolder
		expect   bool
	}{
		{"none equals none", runtime.Equal, runtime.None(), runtime.None(), true},
		{"none is not zero", runtime.Equal, runtime.None(), num(0), false},
		{"zero is not none", runtime.Equal, num(0), runtime.None(), false},
		{"equal numbers", runtime.Equal, num(3), num(3), true},
		{"unequal numbers", runtime.Equal, num(3), num(4), false},
		{"equal strings", runtime.Equal, str("a"), str("a"), true},
		{"equal bools", runtime.Equal, boolean(true), boolean(true), true},
		{"number order", runtime.Less, num(3), num(4), true},
		{"number order reversed", runtime.Less, num(4), num(3), false},
		{"false before true", runtime.Less, boolean(false), boolean(true), true},
		{"true not before false", runtime.Less, boolean(true), boolean(false), false},
		{"byte order", runtime.Less, str("abc"), str("abd"), true},
		{"prefix orders first", runtime.Less, str("ab"), str("abc"), true},
		{"not equal derives", runtime.NotEqual, num(3), num(4), true},
		{"greater derives", runtime.Greater, num(4), num(3), true},
		{"greater is strict", runtime.Greater, num(3), num(3), false},
		{"less or equal on equal", runtime.LessOrEqual, num(3), num(3), true},
		{"less or equal on less", runtime.LessOrEqual, num(2), num(3), true},
		{"less or equal on greater", runtime.LessOrEqual, num(4), num(3), false},
		{"greater or equal on equal", runtime.GreaterOrEqual, num(3), num(3), true},
		{"greater or equal on less", runtime.GreaterOrEqual, num(2), num(3), false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := tc.op(tc.lhs, tc.rhs, runtime.DummyContext{})
			require.NoError(t, err)
			assert.Equal(t, tc.expect, got)
		})
	}
}

func Test_Compare_MixedKinds(t *testing.T) {
	num := runtime.Own(runtime.Number(1))
	str := runtime.Own(runtime.String("1"))
	boolean := runtime.Own(runtime.Bool(true))
	cls := runtime.Own(runtime.NewClass("Empty", nil, nil))

	testCases := []struct {
		name     string
		op       comparison
		lhs, rhs runtime.ObjectHolder
	}{
		{"number vs string", runtime.Equal, num, str},
		{"bool vs number", runtime.Equal, boolean, num},
		{"class vs class", runtime.Equal, cls, cls},
		{"number vs string order", runtime.Less, num, str},
		{"none order", runtime.Less, runtime.None(), num},
		{"derived propagates", runtime.Greater, num, str},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tc.op(tc.lhs, tc.rhs, runtime.DummyContext{})
			require.Error(t, err)
			assert.ErrorIs(t, err, runtime.ErrExecution)

			var target runtime.NotComparableError
			assert.ErrorAs(t, err, &target)
		})
	}
}

func Test_Compare_Instances(t *testing.T) {
	t.Run("no override fails", func(t *testing.T) {
		inst := runtime.Share(runtime.NewInstance(runtime.NewClass("Plain", nil, nil)))

		_, err := runtime.Less(inst, inst, runtime.DummyContext{})
		require.Error(t, err)

		var target runtime.NotComparableError
		assert.ErrorAs(t, err, &target)
	})

	t.Run("override decides", func(t *testing.T) {
		var got runtime.ObjectHolder
		cls := runtime.NewClass("Always", []runtime.Method{
			{
				Name:         runtime.LessMethod,
				FormalParams: []string{"rhs"},
				Body: bodyFunc(func(closure runtime.Closure, _ runtime.Context) (runtime.ObjectHolder, error) {
					got = closure["rhs"]
					return runtime.Own(runtime.Bool(true)), nil
				}),
			},
		}, nil)

		rhs := runtime.Own(runtime.Number(5))
		less, err := runtime.Less(runtime.Share(runtime.NewInstance(cls)), rhs, runtime.DummyContext{})
		require.NoError(t, err)
		assert.True(t, less)
		// The right operand is passed as the single argument.
		assert.Equal(t, rhs, got)
	})

	t.Run("equality override beats kind mismatch", func(t *testing.T) {
		cls := runtime.NewClass("Loose", []runtime.Method{
			{
				Name:         runtime.EqMethod,
				FormalParams: []string{"rhs"},
				Body:         constBody(runtime.Own(runtime.Bool(true))),
			},
		}, nil)

		equal, err := runtime.Equal(
			runtime.Share(runtime.NewInstance(cls)),
			runtime.Own(runtime.String("anything")),
			runtime.DummyContext{},
		)
		require.NoError(t, err)
		assert.True(t, equal)
	})

	t.Run("wrong-arity override is no override", func(t *testing.T) {
		cls := runtime.NewClass("Odd", []runtime.Method{
			{Name: runtime.EqMethod, Body: constBody(runtime.Own(runtime.Bool(true)))},
		}, nil)

		_, err := runtime.Equal(
			runtime.Share(runtime.NewInstance(cls)),
			runtime.Own(runtime.Number(1)),
			runtime.DummyContext{},
		)
		require.Error(t, err)
	})

	t.Run("non-boolean result fails", func(t *testing.T) {
		cls := runtime.NewClass("Weird", []runtime.Method{
			{
				Name:         runtime.EqMethod,
				FormalParams: []string{"rhs"},
				Body:         constBody(runtime.Own(runtime.Number(1))),
			},
		}, nil)

		_, err := runtime.Equal(
			runtime.Share(runtime.NewInstance(cls)),
			runtime.Own(runtime.Number(1)),
			runtime.DummyContext{},
		)
		require.Error(t, err)

		var target runtime.NotComparableError
		assert.ErrorAs(t, err, &target)
	})

	t.Run("only the left operand dispatches", func(t *testing.T) {
		cls := runtime.NewClass("Always", []runtime.Method{
			{
				Name:         runtime.EqMethod,
				FormalParams: []string{"rhs"},
				Body:         constBody(runtime.Own(runtime.Bool(true))),
			},
		}, nil)

		_, err := runtime.Equal(
			runtime.Own(runtime.Number(1)),
			runtime.Share(runtime.NewInstance(cls)),
			runtime.DummyContext{},
		)
		require.Error(t, err)
	})
}

// The derived operators re-invoke Less and Equal instead of caching their
// results, so user overrides run again. These counts are contractual.
func Test_Compare_ReinvokesOverrides(t *testing.T) {
	newCounted := func(less, equal bool) (runtime.ObjectHolder, *int, *int) {
		ltCalls := new(int)
		eqCalls := new(int)
		cls := runtime.NewClass("Counted", []runtime.Method{
			{
				Name:         runtime.LessMethod,
				FormalParams: []string{"rhs"},
				Body: bodyFunc(func(runtime.Closure, runtime.Context) (runtime.ObjectHolder, error) {
					*ltCalls++
					return runtime.Own(runtime.Bool(less)), nil
				}),
			},
			{
				Name:         runtime.EqMethod,
				FormalParams: []string{"rhs"},
				Body: bodyFunc(func(runtime.Closure, runtime.Context) (runtime.ObjectHolder, error) {
					*eqCalls++
					return runtime.Own(runtime.Bool(equal)), nil
				}),
			},
		}, nil)
		return runtime.Own(runtime.NewInstance(cls)), ltCalls, eqCalls
	}

	rhs := runtime.Own(runtime.Number(0))

	t.Run("greater runs both", func(t *testing.T) {
		lhs, ltCalls, eqCalls := newCounted(false, false)
		got, err := runtime.Greater(lhs, rhs, runtime.DummyContext{})
		require.NoError(t, err)
		assert.True(t, got)
		assert.Equal(t, 1, *ltCalls)
		assert.Equal(t, 1, *eqCalls)
	})

	t.Run("greater short-circuits on less", func(t *testing.T) {
		lhs, ltCalls, eqCalls := newCounted(true, false)
		got, err := runtime.Greater(lhs, rhs, runtime.DummyContext{})
		require.NoError(t, err)
		assert.False(t, got)
		assert.Equal(t, 1, *ltCalls)
		assert.Equal(t, 0, *eqCalls)
	})

	t.Run("less or equal short-circuits on less", func(t *testing.T) {
		lhs, ltCalls, eqCalls := newCounted(true, false)
		got, err := runtime.LessOrEqual(lhs, rhs, runtime.DummyContext{})
		require.NoError(t, err)
		assert.True(t, got)
		assert.Equal(t, 1, *ltCalls)
		assert.Equal(t, 0, *eqCalls)
	})

	t.Run("less or equal falls through to equal", func(t *testing.T) {
		lhs, ltCalls, eqCalls := newCounted(false, true)
		got, err := runtime.LessOrEqual(lhs, rhs, runtime.DummyContext{})
		require.NoError(t, err)
		assert.True(t, got)
		assert.Equal(t, 1, *ltCalls)
		assert.Equal(t, 1, *eqCalls)
	})

	t.Run("greater or equal never asks equal", func(t *testing.T) {
		lhs, ltCalls, eqCalls := newCounted(false, true)
		got, err := runtime.GreaterOrEqual(lhs, rhs, runtime.DummyContext{})
		require.NoError(t, err)
		assert.True(t, got)
		assert.Equal(t, 1, *ltCalls)
		assert.Equal(t, 0, *eqCalls)
	})

	t.Run("not equal negates equal", func(t *testing.T) {
		lhs, ltCalls, eqCalls := newCounted(false, true)
		got, err := runtime.NotEqual(lhs, rhs, runtime.DummyContext{})
		require.NoError(t, err)
		assert.False(t, got)
		assert.Equal(t, 0, *ltCalls)
		assert.Equal(t, 1, *eqCalls)
	})
}
