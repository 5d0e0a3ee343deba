package util

import (
	"regexp"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestFormatAmount(t *testing.T) {
	testCases := []struct {
		amount int64
		want   string
	}{
		{0, "₹0"},
		{999, "₹999"},
		{2999, "₹2,999"},
		{45999, "₹45,999"},
		{125999, "₹1,25,999"},
		{1250000, "₹12,50,000"},
		{12500000, "₹1,25,00,000"},
		{-45999, "-₹45,999"},
	}

	for _, tc := range testCases {
		require.Equal(t, tc.want, FormatAmount(decimal.NewFromInt(tc.amount)))
	}
}

func TestFormatAmountRoundsFraction(t *testing.T) {
	require.Equal(t, "₹46,049", FormatAmount(decimal.NewFromFloat(46049.4)))
}

func TestGenerateOrderID(t *testing.T) {
	pattern := regexp.MustCompile(`^MRG_\d+_[0-9a-f]{9}$`)

	id := GenerateOrderID()
	require.True(t, pattern.MatchString(id), "unexpected order id format: %s", id)

	other := GenerateOrderID()
	require.NotEqual(t, id, other)
}

func TestBuildUPIURI(t *testing.T) {
	uri := BuildUPIURI("mrugaya@upi", "Mrugaya Jewelry", decimal.NewFromInt(45999), "INR", "MRG_1_a")

	require.True(t, strings.HasPrefix(uri, "upi://pay?"))
	require.Contains(t, uri, "pa=mrugaya%40upi")
	require.Contains(t, uri, "am=45999")
	require.Contains(t, uri, "cu=INR")
	require.Contains(t, uri, "tn=Payment+for+Order+MRG_1_a")
}

func TestBuildQRCodeURL(t *testing.T) {
	url := BuildQRCodeURL("upi://pay?pa=mrugaya@upi")

	require.Contains(t, url, "api.qrserver.com")
	require.Contains(t, url, "size=300x300")
	// 資料要被轉義
	require.Contains(t, url, "upi%3A%2F%2Fpay")
}

func TestIsNil(t *testing.T) {
	require.True(t, IsNil(nil))

	var p *int
	require.True(t, IsNil(p))

	v := 1
	require.False(t, IsNil(&v))
}

func TestHasImplementation(t *testing.T) {
	require.False(t, HasImplementation(nil))

	var p *int
	require.False(t, HasImplementation(p))

	v := 1
	require.True(t, HasImplementation(&v))
}
