package lattice

import (
	"testing"

	"github.com/drmlgentry/Golden-Unification/domain/core"
	"github.com/stretchr/testify/assert"
)

func TestSearchBoxValidate(t *testing.T) {
	tests := []struct {
		name    string
		box     SearchBox
		wantErr bool
	}{
		{"default", DefaultSearchBox(), false},
		{"single point", SearchBox{}, false},
		{"empty a", SearchBox{AMin: 1, AMax: 0}, true},
		{"empty b", SearchBox{BMin: 2, BMax: -2}, true},
		{"empty c", SearchBox{CMin: 0, CMax: -1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.box.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, core.ErrEmptyInterval)
				assert.True(t, core.IsConfigError(err))
				assert.Equal(t, 0, tt.box.Volume())
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSearchBoxVolumeAndString(t *testing.T) {
	box := DefaultSearchBox()
	assert.Equal(t, 101*81*101, box.Volume())
	assert.Equal(t, "a[-80,20], b[-40,40], c[-40,60]", box.String())
	assert.True(t, box.Contains(-60, -16, 30))
	assert.False(t, box.Contains(21, 0, 0))
}

func TestSearchBoxForEachVisitsVolume(t *testing.T) {
	box := SearchBox{AMin: -1, AMax: 1, BMin: 0, BMax: 2, CMin: 5, CMax: 5}
	count := 0
	box.ForEach(func(a, b, c int) {
		assert.True(t, box.Contains(a, b, c))
		count++
	})
	assert.Equal(t, box.Volume(), count)
}
