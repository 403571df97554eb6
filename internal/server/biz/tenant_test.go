package biz

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Acme GmbH", "acme-gmbh"},
		{"  padded  ", "padded"},
		{"Already-Slugged", "already-slugged"},
		{"Dots.And/Slashes", "dots-and-slashes"},
		{"Ümlauts & Co", "mlauts-co"},
		{"123 Numbers", "123-numbers"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Slugify(tt.name))
		})
	}
}
