package controller

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseGrossAmount(t *testing.T) {
	t.Run("accepts whole units", func(t *testing.T) {
		n, err := parseGrossAmount("150000")
		require.NoError(t, err)
		assert.Equal(t, int64(150000), n)
	})

	t.Run("accepts zero-cent decimal", func(t *testing.T) {
		n, err := parseGrossAmount("150000.00")
		require.NoError(t, err)
		assert.Equal(t, int64(150000), n)
	})

	t.Run("rejects fractional amount", func(t *testing.T) {
		_, err := parseGrossAmount("100.50")
		assert.Error(t, err)
	})

	t.Run("rejects non-positive amount", func(t *testing.T) {
		for _, s := range []string{"0", "0.00", "-100"} {
			_, err := parseGrossAmount(s)
			assert.Error(t, err, s)
		}
	})

	t.Run("rejects garbage", func(t *testing.T) {
		for _, s := range []string{"", "abc", "100.5x"} {
			_, err := parseGrossAmount(s)
			assert.Error(t, err, s)
		}
	})
}

func TestBillIDFromOrder(t *testing.T) {
	billID := uuid.New()

	got, err := billIDFromOrder("BILL-" + billID.String())
	require.NoError(t, err)
	assert.Equal(t, billID, got)

	_, err = billIDFromOrder(billID.String())
	assert.Error(t, err)

	_, err = billIDFromOrder("BILL-not-a-uuid")
	assert.Error(t, err)
}
