package weather

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLookupKnownCodes(t *testing.T) {
	tests := []struct {
		code int
		icon string
		desc string
	}{
		{1000, "☀️", "Cerah"},
		{1003, "🌤️", "Sebagian Cerah"},
		{1006, "☁️", "Berawan"},
		{1009, "☁️", "Mendung"},
		{1030, "🌫️", "Berkabut"},
		{1087, "⛈️", "Badai Petir"},
		{1195, "🌧️", "Hujan Lebat"},
		{1225, "❄️", "Salju Lebat"},
	}
	for _, tt := range tests {
		c := Lookup(tt.code, "whatever the provider says")
		assert.Equal(t, tt.icon, c.Icon, "code %d", tt.code)
		assert.Equal(t, tt.desc, c.Description, "code %d", tt.code)
	}
}

func TestLookupUnknownCodeFallsBackToText(t *testing.T) {
	c := Lookup(9999, "Volcanic ash")
	assert.Equal(t, fallbackIcon, c.Icon)
	assert.Equal(t, "Volcanic ash", c.Description)
}

func TestLookupUnknownCodeNoText(t *testing.T) {
	c := Lookup(9999, "")
	assert.Equal(t, "Tidak Diketahui", c.Description)
}
