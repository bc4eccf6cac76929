package vdevice_test

import (
	"testing"

	"github.com/gomlx/structinfo/types/vdevice"
	"github.com/janpfeifer/must"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		tests := []struct {
			name      string
			kind      string
			id        int
			scope     string
			wantScope string
			wantStr   string
		}{
			{"default scope", "cuda", 0, "", vdevice.GlobalScope, "cuda:0"},
			{"explicit global", "llvm", 2, "global", vdevice.GlobalScope, "llvm:2"},
			{"shared scope", "cuda", 1, "shared", "shared", "cuda:1:shared"},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				d, err := vdevice.New(tt.kind, tt.id, tt.scope)
				require.NoError(t, err)
				assert.Equal(t, tt.kind, d.Kind())
				assert.Equal(t, tt.id, d.ID())
				assert.Equal(t, tt.wantScope, d.MemoryScope())
				assert.Equal(t, tt.wantStr, d.String())
			})
		}
	})

	t.Run("Errors", func(t *testing.T) {
		tests := []struct {
			name    string
			kind    string
			id      int
			scope   string
			wantErr string
		}{
			{"empty kind", "", 0, "", "is not a valid identifier"},
			{"invalid kind", "cu-da", 0, "", `suggestion "cu_da"`},
			{"negative id", "cuda", -1, "", "must be >= 0"},
			{"invalid scope", "cuda", 0, "my scope", "memory scope"},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := vdevice.New(tt.kind, tt.id, tt.scope)
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			})
		}
	})
}

func TestEqual(t *testing.T) {
	d0 := must.M1(vdevice.New("cuda", 0, ""))
	d0b := must.M1(vdevice.New("cuda", 0, vdevice.GlobalScope))
	d1 := must.M1(vdevice.New("cuda", 1, ""))
	assert.True(t, d0.Equal(d0b))
	assert.False(t, d0.Equal(d1))
	assert.False(t, d0.Equal(nil))
	var nilDevice *vdevice.VDevice
	assert.True(t, nilDevice.Equal(nil))
	assert.Equal(t, "<nil>", nilDevice.String())
}
