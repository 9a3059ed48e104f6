package numfmt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInvariant(t *testing.T) {
	p := Invariant()
	assert.Equal(t, "invariant", p.Name())
	assert.Equal(t, "-42", p.FormatInt(-42))
	assert.Equal(t, "1234.5", p.FormatFloat(1234.5))

	n, err := p.ParseInt(" 42 ")
	require.NoError(t, err)
	assert.Equal(t, int64(42), n)

	f, err := p.ParseFloat("1234.5")
	require.NoError(t, err)
	assert.Equal(t, 1234.5, f)

	_, err = p.ParseInt("abc")
	assert.Error(t, err)
}

func TestForCulture_Empty(t *testing.T) {
	p, err := ForCulture("")
	require.NoError(t, err)
	assert.Equal(t, Invariant(), p)
}

func TestForCulture_Invalid(t *testing.T) {
	_, err := ForCulture("not a tag!")
	assert.Error(t, err)

	assert.Panics(t, func() { MustCulture("not a tag!") })
}

func TestCulture_German(t *testing.T) {
	p := MustCulture("de-DE")

	assert.Equal(t, "1234,5", p.FormatFloat(1234.5))
	assert.Equal(t, "1234", p.FormatInt(1234))

	f, err := p.ParseFloat("1.234,5")
	require.NoError(t, err)
	assert.Equal(t, 1234.5, f)

	f, err = p.ParseFloat("-0,25")
	require.NoError(t, err)
	assert.Equal(t, -0.25, f)

	n, err := p.ParseInt("1.234.567")
	require.NoError(t, err)
	assert.Equal(t, int64(1234567), n)

	_, err = p.ParseFloat("1,2,3")
	assert.ErrorIs(t, err, ErrSyntax)
}

func TestCulture_English(t *testing.T) {
	p := MustCulture("en-US")

	assert.Equal(t, "1234.5", p.FormatFloat(1234.5))

	f, err := p.ParseFloat("1,234.5")
	require.NoError(t, err)
	assert.Equal(t, 1234.5, f)
}

func TestCulture_RoundTrip(t *testing.T) {
	for _, tag := range []string{"en-US", "de-DE", "fr-FR"} {
		t.Run(tag, func(t *testing.T) {
			p := MustCulture(tag)
			for _, v := range []float64{0, 1.5, -2.75, 1234567.125} {
				got, err := p.ParseFloat(p.FormatFloat(v))
				require.NoError(t, err)
				assert.Equal(t, v, got)
			}
		})
	}
}

func TestCulture_EmptyInput(t *testing.T) {
	_, err := MustCulture("de-DE").ParseInt("  ")
	assert.ErrorIs(t, err, ErrSyntax)
}

func TestCulture_GroupPositions(t *testing.T) {
	tests := []struct {
		tag   string
		input string
		want  float64
		ok    bool
	}{
		{"en-US", "1,234", 1234, true},
		{"en-US", "1,234,567", 1234567, true},
		{"en-US", "-12,345.25", -12345.25, true},
		{"en-US", "1,5", 0, false},
		{"en-US", "12,34", 0, false},
		{"en-US", "1,2345", 0, false},
		{"en-US", ",123", 0, false},
		{"en-US", "1234,567", 0, false},
		{"en-US", "1.23,4", 0, false},
		{"de-DE", "1.234,5", 1234.5, true},
		{"de-DE", "1.23,5", 0, false},
		{"de-DE", "1,234.5", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.tag+" "+tt.input, func(t *testing.T) {
			got, err := MustCulture(tt.tag).ParseFloat(tt.input)
			if !tt.ok {
				assert.ErrorIs(t, err, ErrSyntax)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCulture_GroupedInt(t *testing.T) {
	p := MustCulture("en-US")

	n, err := p.ParseInt("1,234")
	require.NoError(t, err)
	assert.Equal(t, int64(1234), n)

	_, err = p.ParseInt("1,5")
	assert.ErrorIs(t, err, ErrSyntax)
}
