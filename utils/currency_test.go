package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatINR(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{91500, "91,500"},
		{100000, "1,00,000"},
		{12345678, "1,23,45,678"},
		{1499.5, "1,499.5"},
		{10.05, "10.05"},
		{-29300, "-29,300"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatINR(tt.in), "FormatINR(%v)", tt.in)
	}
}
