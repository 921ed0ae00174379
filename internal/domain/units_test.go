package domain

import (
	"errors"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEther(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{input: "1.5", want: "1500000000000000000"},
		{input: "1", want: "1000000000000000000"},
		{input: "0.000000000000000001", want: "1"},
		{input: ".25", want: "250000000000000000"},
		{input: "10.", want: "10000000000000000000"},
		{input: " 2 ", want: "2000000000000000000"},
		{input: "0", want: "0"},
		{input: "", wantErr: true},
		{input: ".", wantErr: true},
		{input: "-1", wantErr: true},
		{input: "1e18", wantErr: true},
		{input: "1.2.3", wantErr: true},
		{input: "0.0000000000000000001", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseEther(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidAmount))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestFormatUnits(t *testing.T) {
	v, _ := new(big.Int).SetString("1500000000000000000", 10)
	assert.Equal(t, "1.5", FormatUnits(v, 18))
	assert.Equal(t, "0.000000000000000005", FormatUnits(big.NewInt(5), 18))
	assert.Equal(t, "0", FormatUnits(nil, 18))
	assert.Equal(t, "-2", FormatUnits(big.NewInt(-2000), 3))
}
