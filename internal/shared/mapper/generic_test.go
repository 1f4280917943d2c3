package mapper

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapSlice(t *testing.T) {
	tests := []struct {
		name  string
		input []int
		want  []string
	}{
		{name: "nil input maps to empty slice", input: nil, want: []string{}},
		{name: "empty input", input: []int{}, want: []string{}},
		{name: "preserves order", input: []int{3, 1, 2}, want: []string{"3", "1", "2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapSlice(tt.input, strconv.Itoa)
			assert.NotNil(t, got)
			assert.Equal(t, tt.want, got)
		})
	}
}
