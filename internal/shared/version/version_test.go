package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "", want: ""},
		{in: "1.2.3", want: "v1.2.3"},
		{in: "v1.2.3", want: "v1.2.3"},
		{in: " 1.0.0 ", want: "v1.0.0"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestIsRelease(t *testing.T) {
	assert.True(t, IsRelease("1.4.0"))
	assert.True(t, IsRelease("v2.0.0-rc.1"))
	assert.False(t, IsRelease("dev"))
	assert.False(t, IsRelease(""))
}

func TestGet(t *testing.T) {
	old := Current
	t.Cleanup(func() { Current = old })

	Current = "v1.2.3"
	assert.Equal(t, Info{Version: "v1.2.3", Release: true}, Get())
}
