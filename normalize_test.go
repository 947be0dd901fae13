package atletiek_test

import (
	"testing"

	"github.com/fwojciec/atletiek"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseWindSpeed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want float64
		ok   bool
	}{
		{"positive", "+2.1m/s", 2.1, true},
		{"negative with space", "-1.2 m/s", -1.2, true},
		{"comma decimal separator", "6,12 (+0,8 m/s)", 0.8, true},
		{"rounds to two digits", "+1.234m/s", 1.23, true},
		{"no wind", "6,12", 0, false},
		{"sign without digits", "+m/s", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, ok := atletiek.ParseWindSpeed(tt.text)
			assert.Equal(t, tt.ok, ok)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestParseAttribute(t *testing.T) {
	t.Parallel()

	t.Run("kilograms", func(t *testing.T) {
		t.Parallel()

		attr, err := atletiek.ParseAttribute("2kg")
		require.NoError(t, err)
		assert.Equal(t, &atletiek.Attribute{Kind: atletiek.AttributeWeight, Value: 2}, attr)
	})

	t.Run("grams become kilograms", func(t *testing.T) {
		t.Parallel()

		attr, err := atletiek.ParseAttribute("600gr")
		require.NoError(t, err)
		assert.Equal(t, atletiek.AttributeWeight, attr.Kind)
		assert.InDelta(t, 0.6, attr.Value, 1e-9)
	})

	t.Run("centimeters become meters", func(t *testing.T) {
		t.Parallel()

		attr, err := atletiek.ParseAttribute("76,2 cm")
		require.NoError(t, err)
		assert.Equal(t, atletiek.AttributeHeight, attr.Kind)
		assert.InDelta(t, 0.762, attr.Value, 1e-9)
	})

	t.Run("no number is not an attribute", func(t *testing.T) {
		t.Parallel()

		attr, err := atletiek.ParseAttribute("Shot put")
		require.NoError(t, err)
		assert.Nil(t, attr)
	})

	t.Run("unknown unit fails", func(t *testing.T) {
		t.Parallel()

		_, err := atletiek.ParseAttribute("3 lbs")
		assert.Equal(t, atletiek.EINVALID, atletiek.ErrorCode(err))
	})
}

func TestParsePerformance(t *testing.T) {
	t.Parallel()

	tests := []struct {
		text string
		want float64
		hand bool
		ok   bool
	}{
		{"9,62", 9.62, false, true},
		{"5,98", 5.98, false, true},
		{"12,4h", 12.4, true, true},
		{"1:02,34", 62.34, false, true},
		{"1:02:03,4", 3723.4, false, true},
		{"3456", 3456, false, true},
		{"DNF", 0, false, false},
		{"", 0, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			t.Parallel()

			got, hand, ok := atletiek.ParsePerformance(tt.text)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.hand, hand)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestRoundFloat(t *testing.T) {
	t.Parallel()

	assert.InDelta(t, 1.23, atletiek.RoundFloat(1.2345, 2), 1e-12)
	assert.InDelta(t, 2.0, atletiek.RoundFloat(1.996, 2), 1e-12)
}
