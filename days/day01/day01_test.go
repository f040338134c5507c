package day01

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `1000
2000
3000

4000

5000
6000

7000
8000
9000

10000
`

func TestRun(t *testing.T) {
	tests := []struct {
		name  string
		input string
		part  int
		want  string
	}{
		{"sample part 1", sample, 1, "24000"},
		{"sample part 2", sample, 2, "45000"},
		{"crlf line endings", "1\r\n2\r\n\r\n4\r\n", 1, "4"},
		{"fewer groups than part 2 needs", "5\n\n6", 2, "11"},
		{"empty input", "", 1, "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Run(tt.input, tt.part)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRun_UnknownPart(t *testing.T) {
	_, err := Run(sample, 3)
	assert.EqualError(t, err, "unknown part 3")
}

func TestRun_BadNumber(t *testing.T) {
	_, err := Run("10\nabc\n", 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
}
