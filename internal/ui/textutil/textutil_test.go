package textutil

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		w    int
		want string
	}{
		{"fits", "notes", 10, "notes"},
		{"exact", "notes", 5, "notes"},
		{"cut", "AI Assistant", 6, "AI As…"},
		{"zero", "x", 0, ""},
		{"wide runes", "日本語テキスト", 5, "日本…"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Truncate(tt.in, tt.w)
			assert.Equal(t, tt.want, got)
			assert.LessOrEqual(t, Width(got), tt.w)
		})
	}
}

func TestFit(t *testing.T) {
	assert.Equal(t, "ab  ", Fit("ab", 4))
	assert.Equal(t, "abc…", Fit("abcdef", 4))
	assert.Equal(t, 4, Width(Fit("日本語", 4)))
}

func TestCenter(t *testing.T) {
	assert.Equal(t, "  ab   ", Center("ab", 7))
	assert.Equal(t, "ab", Center("ab", 1+1))
}

func TestClip(t *testing.T) {
	block := "one\ntwo\nthree\nfour"
	got := Clip(block, 3, 2)
	assert.Equal(t, []string{"one", "two"}, strings.Split(got, "\n"))

	got = Clip("abcdefgh", 4, 1)
	assert.Equal(t, 4, Width(got))
	assert.Empty(t, Clip(block, 0, 2))
}
