package atletiek_test

import (
	"fmt"
	"testing"

	"github.com/fwojciec/atletiek"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := atletiek.Errorf(atletiek.ENOTFOUND, "no results table for %q", "1793090")

	assert.Equal(t, atletiek.ENOTFOUND, atletiek.ErrorCode(err))
	assert.Equal(t, "no results table for \"1793090\"", atletiek.ErrorMessage(err))
}

func TestErrorCode_WrappedError(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("get results: %w", atletiek.Errorf(atletiek.EUNSUPPORTED, "external results"))

	assert.Equal(t, atletiek.EUNSUPPORTED, atletiek.ErrorCode(err))
	assert.Equal(t, "external results", atletiek.ErrorMessage(err))
}

func TestErrorCode_NonApplicationError(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("boom")

	assert.Equal(t, atletiek.EINTERNAL, atletiek.ErrorCode(err))
	assert.Equal(t, "Internal error", atletiek.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, atletiek.ErrorCode(nil))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, atletiek.ErrorMessage(nil))
}

func TestParseCountry(t *testing.T) {
	t.Parallel()

	t.Run("defaults to NL", func(t *testing.T) {
		t.Parallel()

		c, err := atletiek.ParseCountry("")
		assert.NoError(t, err)
		assert.Equal(t, atletiek.CountryNL, c)
	})

	t.Run("is case insensitive", func(t *testing.T) {
		t.Parallel()

		c, err := atletiek.ParseCountry("be")
		assert.NoError(t, err)
		assert.Equal(t, atletiek.CountryBE, c)
	})

	t.Run("rejects unknown countries", func(t *testing.T) {
		t.Parallel()

		_, err := atletiek.ParseCountry("XX")
		assert.Equal(t, atletiek.EINVALID, atletiek.ErrorCode(err))
	})
}

func TestParseEventStatus(t *testing.T) {
	t.Parallel()

	tests := []struct {
		keyword string
		want    atletiek.EventStatus
		ok      bool
	}{
		{"Checked-in", atletiek.EventStatusCheckedIn, true},
		{"CHECKED IN", atletiek.EventStatusCheckedIn, true},
		{"Status: Accepted", atletiek.EventStatusAccepted, true},
		{"cancelled", atletiek.EventStatusCancelled, true},
		{"Afgewezen", atletiek.EventStatusRejected, true},
		{"reserve", atletiek.EventStatusReserve, true},
		{"unverified", atletiek.EventStatusUnverified, true},
		{"pending payment", atletiek.EventStatusUnknown, false},
		{"", atletiek.EventStatusUnknown, false},
	}

	for _, tt := range tests {
		t.Run(tt.keyword, func(t *testing.T) {
			t.Parallel()

			got, ok := atletiek.ParseEventStatus(tt.keyword)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.ok, ok)
		})
	}
}
