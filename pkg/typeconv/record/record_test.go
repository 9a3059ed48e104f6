package record

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type owner struct{}

func TestNew(t *testing.T) {
	r := New(strconv.Atoi, WithName("atoi"), DeclaredBy[owner](), Static())

	assert.Equal(t, reflect.TypeFor[string](), r.From())
	assert.Equal(t, reflect.TypeFor[int](), r.To())
	assert.Nil(t, r.Argument())
	assert.Equal(t, "atoi", r.Name())
	assert.Equal(t, reflect.TypeFor[owner](), r.DeclaringType())
	assert.True(t, r.IsStatic())
	assert.False(t, r.AllowsDisambiguation())
	assert.NotEqual(t, [16]byte{}, [16]byte(r.ID()))

	out, err := r.Invoke("42", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 42, out)
}

func TestNew_UniqueIDs(t *testing.T) {
	a := New(strconv.Atoi)
	b := New(strconv.Atoi)
	assert.NotEqual(t, a.ID(), b.ID())
	assert.Equal(t, a.Signature(), b.Signature())
}

func TestNew_NilFuncPanics(t *testing.T) {
	assert.PanicsWithValue(t, ErrNilFunc, func() {
		New[string, int](nil)
	})
}

func TestInvoke_SourceTypeMismatch(t *testing.T) {
	r := New(strconv.Atoi)

	_, err := r.Invoke(12, nil, nil)
	assert.ErrorIs(t, err, ErrSourceType)
}

func TestInvoke_FunctionError(t *testing.T) {
	r := New(strconv.Atoi)

	_, err := r.Invoke("abc", nil, nil)
	var numErr *strconv.NumError
	assert.ErrorAs(t, err, &numErr)
}

func TestInvoke_RecoversPanic(t *testing.T) {
	boom := errors.New("boom")
	r := New(func(string) (int, error) { panic(boom) })

	_, err := r.Invoke("x", nil, nil)
	var panicErr *PanicError
	require.ErrorAs(t, err, &panicErr)
	assert.Equal(t, boom, panicErr.Value)
	assert.NotEmpty(t, panicErr.Stack)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, "converter string -> int panicked: boom", err.Error())
}

func TestNewWithArg(t *testing.T) {
	r := NewWithArg(func(v int, base int) (string, error) {
		return strconv.FormatInt(int64(v), base), nil
	})

	assert.Equal(t, reflect.TypeFor[int](), r.Argument())

	out, err := r.Invoke(255, nil, 16)
	require.NoError(t, err)
	assert.Equal(t, "ff", out)

	_, err = r.Invoke(255, nil, "16")
	assert.ErrorIs(t, err, ErrArgumentType)
}

func TestNewWithResult(t *testing.T) {
	r := NewWithResult(func(s string, seed int) (int, error) {
		n, err := strconv.Atoi(s)
		if err != nil {
			return seed, nil
		}
		return n, nil
	})

	out, err := r.Invoke("nope", 7, nil)
	require.NoError(t, err)
	assert.Equal(t, 7, out)

	out, err = r.Invoke("nope", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, out)
}

func TestNew_NilSourceForInterface(t *testing.T) {
	r := New(func(s fmt.Stringer) (string, error) {
		if s == nil {
			return "<nil>", nil
		}
		return s.String(), nil
	})

	out, err := r.Invoke(nil, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "<nil>", out)
}

func TestNewFunc_Validation(t *testing.T) {
	fn := func(src, _, _ any) (any, error) { return src, nil }

	_, err := NewFunc(nil, reflect.TypeFor[int](), nil, fn)
	assert.ErrorIs(t, err, ErrNilType)

	_, err = NewFunc(reflect.TypeFor[int](), nil, nil, fn)
	assert.ErrorIs(t, err, ErrNilType)

	_, err = NewFunc(reflect.TypeFor[int](), reflect.TypeFor[int](), nil, nil)
	assert.ErrorIs(t, err, ErrNilFunc)

	r, err := NewFunc(reflect.TypeFor[int](), reflect.TypeFor[int](), nil, fn, AllowDisambiguation())
	require.NoError(t, err)
	assert.True(t, r.AllowsDisambiguation())
}

func TestSignature_String(t *testing.T) {
	tests := []struct {
		name string
		sig  Signature
		want string
	}{
		{
			name: "pair",
			sig:  Signature{From: reflect.TypeFor[string](), To: reflect.TypeFor[int]()},
			want: "string -> int",
		},
		{
			name: "with argument and name",
			sig: Signature{
				From:     reflect.TypeFor[int](),
				To:       reflect.TypeFor[string](),
				Argument: reflect.TypeFor[int](),
				Name:     "hex",
			},
			want: "int -> string [int] (hex)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.sig.String())
		})
	}
}

func TestTypeName(t *testing.T) {
	assert.Equal(t, "<none>", TypeName(nil))
	assert.Equal(t, "[]uint8", TypeName(reflect.TypeFor[[]byte]()))
}
