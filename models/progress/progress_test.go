package progress

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClampPing(t *testing.T) {
	tests := []struct {
		name string
		in   int64
		want int64
	}{
		{"negative is dropped", -10, 0},
		{"zero stays zero", 0, 0},
		{"normal heartbeat passes through", 30, 30},
		{"exact cap passes through", 300, 300},
		{"just over cap is clamped", 301, 300},
		{"fabricated hour is clamped", 3600, 300},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClampPing(tt.in))
		})
	}
}

func TestValidQuizScore(t *testing.T) {
	assert.True(t, ValidQuizScore(0))
	assert.True(t, ValidQuizScore(80))
	assert.True(t, ValidQuizScore(100))
	assert.False(t, ValidQuizScore(-1))
	assert.False(t, ValidQuizScore(101))
	assert.False(t, ValidQuizScore(150))
}
