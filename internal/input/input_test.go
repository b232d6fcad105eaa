package input

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNonEmpty(t *testing.T) {
	v := NonEmpty("Department name")

	got, err := v("  Engineering ")
	require.NoError(t, err)
	assert.Equal(t, "Engineering", got)

	for _, raw := range []string{"", "   ", "\t\n"} {
		_, err := v(raw)
		var inputErr *Error
		require.True(t, errors.As(err, &inputErr), "raw %q", raw)
		assert.Equal(t, "Department name", inputErr.Field)
		assert.Equal(t, "Department name cannot be empty.", inputErr.Error())
	}
}

func TestInt(t *testing.T) {
	v := Int("department ID")

	tests := []struct {
		raw     string
		want    int64
		wantErr bool
	}{
		{raw: "1", want: 1},
		{raw: " 42 ", want: 42},
		{raw: "-3", want: -3},
		{raw: "abc", wantErr: true},
		{raw: "", wantErr: true},
		{raw: "1.5", wantErr: true},
		{raw: "0x10", wantErr: true},
		{raw: "12abc", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := v(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, "Enter a valid department ID.", err.Error())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFloat(t *testing.T) {
	v := Float("salary")

	got, err := v("95000")
	require.NoError(t, err)
	assert.Equal(t, 95000.0, got)

	got, err = v("80000.50")
	require.NoError(t, err)
	assert.Equal(t, 80000.5, got)

	for _, raw := range []string{"", "lots", "NaN", "Inf", "1e999"} {
		_, err := v(raw)
		assert.Error(t, err, "raw %q", raw)
	}
}

func TestOptionalInt(t *testing.T) {
	v := OptionalInt("manager ID")

	got, err := v("   ")
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = v("7")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, int64(7), *got)

	_, err = v("seven")
	require.Error(t, err)
	assert.Equal(t, "Enter a valid manager ID or leave empty.", err.Error())
}

func TestCheck(t *testing.T) {
	check := Check(Int("role ID"))

	assert.NoError(t, check("3"))
	assert.EqualError(t, check("abc"), "Enter a valid role ID.")
}
