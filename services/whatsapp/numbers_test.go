package whatsapp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractNumber(t *testing.T) {
	tests := []struct {
		text string
		want float64
		ok   bool
	}{
		{"220", 220, true},
		{"unos 220 pacientes al mes", 220, true},
		{"45,50 euros", 45.5, true},
		{"el ticket es 45.5", 45.5, true},
		{"entre 200 y 300", 200, true},
		{"veinte", 0, false},
		{"", 0, false},
		{"no lo sé", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got, ok := extractNumber(tt.text)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}
