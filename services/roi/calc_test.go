package roi

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculate(t *testing.T) {
	tests := []struct {
		name            string
		patients        float64
		ticket          float64
		loss            float64
		wantPerdida     float64
		wantRecuperada  float64
		wantROI         float64
	}{
		{
			name:           "typical clinic",
			patients:       220,
			ticket:         45,
			loss:           18,
			wantPerdida:    1782,
			wantRecuperada: 1247.4,
			wantROI:        320,
		},
		{
			name:           "small clinic below break-even",
			patients:       10,
			ticket:         20,
			loss:           5,
			wantPerdida:    10,
			wantRecuperada: 7,
			wantROI:        -98,
		},
		{
			name:           "recovered amount equals plan price",
			patients:       100,
			ticket:         42.43,
			loss:           10,
			wantPerdida:    424.3,
			wantRecuperada: 297.01,
			wantROI:        0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Calculate(tt.patients, tt.ticket, tt.loss)
			assert.InDelta(t, tt.wantPerdida, got.PerdidaMensual, 0.01)
			assert.InDelta(t, tt.wantRecuperada, got.RecuperacionEstimada, 0.01)
			assert.Equal(t, tt.wantROI, got.ROI)
		})
	}
}
