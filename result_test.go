package pave

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResultAccessors(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		res := Success(Root.Key("id"), "abc")
		assert.True(t, res.IsSuccess())
		assert.False(t, res.IsFailure())
		assert.Equal(t, "/id", res.Location().String())

		v, err := res.Get()
		require.NoError(t, err)
		assert.Equal(t, "abc", v)
		assert.Equal(t, "abc", res.MustGet())
		assert.Equal(t, "abc", res.GetOrElse("def"))

		_, failed := res.Failure()
		assert.False(t, failed)
	})

	t.Run("Failure", func(t *testing.T) {
		res := FailAt[string](Root.Key("id"), errFirst)
		assert.True(t, res.IsFailure())

		_, err := res.Get()
		assert.ErrorIs(t, err, errFirst)
		assert.Equal(t, "def", res.GetOrElse("def"))
		assert.Equal(t, "", res.GetOrZero())
		assert.Panics(t, func() { res.MustGet() })

		f, failed := res.Failure()
		require.True(t, failed)
		assert.Equal(t, "/id", f.First().Location.String())
	})
}

func TestResultOrElse(t *testing.T) {
	t.Run("ShortCircuits", func(t *testing.T) {
		res := Success(Root, 1).OrElse(func() Result[int] {
			t.Fatal("alternative must not run after a success")
			return Success(Root, 2)
		})
		assert.Equal(t, 1, res.MustGet())
	})

	t.Run("FallsBack", func(t *testing.T) {
		res := FailAt[int](Root, errFirst).OrElse(func() Result[int] {
			return Success(Root, 2)
		})
		assert.Equal(t, 2, res.MustGet())
	})

	t.Run("MergesBothFailures", func(t *testing.T) {
		res := FailAt[int](Root.Key("a"), errFirst).OrElse(func() Result[int] {
			return FailAt[int](Root.Key("b"), errSecond)
		})
		f, failed := res.Failure()
		require.True(t, failed)
		require.Equal(t, 2, f.Len())
		assert.Equal(t, "/a", f.Causes()[0].Location.String())
		assert.Equal(t, "/b", f.Causes()[1].Location.String())
	})
}

func TestResultRecover(t *testing.T) {
	res := FailAt[int](Root, errFirst).Recover(func(f Failure) Result[int] {
		return Success(Root, f.Len())
	})
	assert.Equal(t, 1, res.MustGet())

	called := false
	Success(Root, 5).Recover(func(Failure) Result[int] {
		called = true
		return Success(Root, 0)
	})
	assert.False(t, called)
}

func TestResultCombinators(t *testing.T) {
	t.Run("MapResult", func(t *testing.T) {
		res := MapResult(Success(Root.Key("n"), 2), func(i int) string { return fmt.Sprint(i * 2) })
		assert.Equal(t, "4", res.MustGet())
		assert.Equal(t, "/n", res.Location().String())

		failed := MapResult(FailAt[int](Root, errFirst), func(i int) string {
			t.Fatal("map must not run on failure")
			return ""
		})
		assert.True(t, failed.IsFailure())
	})

	t.Run("BindResult", func(t *testing.T) {
		res := BindResult(Success(Root.Key("n"), 2), func(loc Location, i int) Result[int] {
			return FailAt[int](loc, errSecond)
		})
		f, _ := res.Failure()
		assert.Equal(t, "/n", f.First().Location.String())
	})

	t.Run("Fold", func(t *testing.T) {
		onSuccess := func(_ Location, i int) string { return "ok" }
		onFailure := func(f Failure) string { return "failed" }
		assert.Equal(t, "ok", Fold(Success(Root, 1), onSuccess, onFailure))
		assert.Equal(t, "failed", Fold(FailAt[int](Root, errFirst), onSuccess, onFailure))
	})

	t.Run("FilterResult", func(t *testing.T) {
		v := 3
		even := func(_ Env, i int) bool { return i%2 == 0 }

		res := FilterResult(Env{}, Success(Root, &v), even)
		assert.Nil(t, res.MustGet())

		w := 4
		res = FilterResult(Env{}, Success(Root, &w), even)
		assert.Equal(t, 4, *res.MustGet())

		res = FilterResult(Env{}, Success[*int](Root, nil), func(Env, int) bool {
			t.Fatal("predicate must not see nil")
			return false
		})
		assert.Nil(t, res.MustGet())
	})

	t.Run("ValidateResult", func(t *testing.T) {
		res := ValidateResult(Env{}, Success(Root.Key("x"), 1), func(_ Env, _ Location, i int) error {
			return errFirst
		})
		f, failed := res.Failure()
		require.True(t, failed)
		assert.Equal(t, "/x", f.First().Location.String())
	})
}

func TestWithCatching(t *testing.T) {
	t.Run("NoHandlerPropagates", func(t *testing.T) {
		assert.PanicsWithValue(t, "boom", func() {
			WithCatching(Env{}, Root, func() Result[int] { panic("boom") })
		})
	})

	t.Run("HandlerConverts", func(t *testing.T) {
		errPanic := errors.New("panicked")
		env := NewEnv(EnvOpts{PanicHandler: func(loc Location, recovered any) error {
			return fmt.Errorf("%w: %v", errPanic, recovered)
		}})

		res := WithCatching(env, Root.Key("x"), func() Result[int] { panic("boom") })
		f, failed := res.Failure()
		require.True(t, failed)
		assert.Equal(t, "/x", f.First().Location.String())
		assert.ErrorIs(t, f, errPanic)
	})
}
