package utils_test

import (
	"testing"

	"github.com/pseudomuto/colsweep/pkg/utils"
	"github.com/stretchr/testify/require"
)

func TestQuoteLiteral(t *testing.T) {
	require.Equal(t, "'active'", utils.QuoteLiteral("active"))
	require.Equal(t, "'O''Brien'", utils.QuoteLiteral("O'Brien"))
	require.Equal(t, "''''''", utils.QuoteLiteral("''"))
	require.Equal(t, "''", utils.QuoteLiteral(""))
}

func TestIsBooleanValue(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		{"true", true},
		{"TRUE", true},
		{"True", true},
		{"false", true},
		{"FALSE", true},
		{"1", false},
		{"0", false},
		{"yes", false},
		{"", false},
		{" true", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			require.Equal(t, tt.expected, utils.IsBooleanValue(tt.input))
		})
	}
}

func TestPtr(t *testing.T) {
	p := utils.Ptr("value")
	require.NotNil(t, p)
	require.Equal(t, "value", *p)
}
