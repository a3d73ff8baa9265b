package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reservat/provider-console/internal/console/detail"
)

func writeServiceYAML(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "servicio.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestReadServiceFile(t *testing.T) {
	path := writeServiceYAML(t, `
nombre: Hotel Mar Azul
descripcion: Frente al mar
precio: 250000
tipo_servicio: hotel
ciudad: Cartagena
activo: false
detalles_del_servicio:
  tipo_alojamiento: Resort
  capacidad: 4
`)
	sf, err := readServiceFile(path)
	require.NoError(t, err)
	require.NotNil(t, sf.Name)
	assert.Equal(t, "Hotel Mar Azul", *sf.Name)
	require.NotNil(t, sf.Price)
	assert.Equal(t, int64(250000), *sf.Price)
	require.NotNil(t, sf.Active)
	assert.False(t, *sf.Active)
	assert.Nil(t, sf.Region, "absent fields stay nil")
	require.NotNil(t, sf.Detail)
	assert.Equal(t, "Resort", sf.Detail["tipo_alojamiento"])
}

func TestDetailFromMap(t *testing.T) {
	d, err := detailFromMap(detail.VerticalLodging, map[string]any{
		"tipo_alojamiento": "Cabaña",
		"capacidad":        6,
		"servicios_incluidos": map[string]any{
			"wifi": true,
		},
	})
	require.NoError(t, err)
	require.NotNil(t, d)
	require.NotNil(t, d.Lodging)
	assert.Equal(t, "Cabaña", d.Lodging.AccommodationType)
	assert.Equal(t, 6, d.Lodging.Capacity)
	assert.True(t, d.Lodging.Amenities.WiFi)
	// untouched fields keep the schema defaults
	assert.Equal(t, "15:00", d.Lodging.Policy.CheckIn)
}

func TestDetailFromMapNil(t *testing.T) {
	d, err := detailFromMap(detail.VerticalLodging, nil)
	require.NoError(t, err)
	assert.Nil(t, d)
}

func TestCheckAPIVersion(t *testing.T) {
	tests := []struct {
		version    string
		compatible bool
	}{
		{"1.0.0", true},
		{"1.4.2", true},
		{"2.0.0", false},
		{"0.9.0", false},
		{"", false},
		{"not-a-version", false},
	}
	for _, tt := range tests {
		t.Run("v="+tt.version, func(t *testing.T) {
			ok, _ := checkAPIVersion(tt.version)
			assert.Equal(t, tt.compatible, ok)
		})
	}
}
