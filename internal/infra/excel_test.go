package infra

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerarExcel_SeLeeDeVuelta(t *testing.T) {
	data, err := GenerarExcel(
		HojaExcel{
			Nombre:      "Plantas",
			Encabezados: []string{"ID_Cuartel", "Nombre_Cuartel", "N_Plantas_Nuevas"},
			Filas:       [][]any{{7, "Cuartel Norte", 25}},
			Anchos:      []float64{12, 25, 18},
		},
		HojaExcel{Nombre: "Instrucciones", Filas: [][]any{{"Completar N_Plantas_Nuevas"}}},
	)
	require.NoError(t, err)

	filas, err := LeerHojaExcel(bytes.NewReader(data), "")
	require.NoError(t, err)
	require.Len(t, filas, 2)
	assert.Equal(t, []string{"ID_Cuartel", "Nombre_Cuartel", "N_Plantas_Nuevas"}, filas[0])
	assert.Equal(t, []string{"7", "Cuartel Norte", "25"}, filas[1])

	instr, err := LeerHojaExcel(bytes.NewReader(data), "Instrucciones")
	require.NoError(t, err)
	assert.Equal(t, "Completar N_Plantas_Nuevas", instr[0][0])
}

func TestGenerarExcel_SinHojas(t *testing.T) {
	_, err := GenerarExcel()
	assert.Error(t, err)
}

func TestLeerHojaExcel_ArchivoInvalido(t *testing.T) {
	_, err := LeerHojaExcel(bytes.NewReader([]byte("no soy un xlsx")), "")
	assert.Error(t, err)
}
