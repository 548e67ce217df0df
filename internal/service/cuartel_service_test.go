package service_test

import (
	"testing"

	"github.com/soporte-code/API-PORTALWEB/internal/apierror"
	"github.com/soporte-code/API-PORTALWEB/internal/dto"
	"github.com/soporte-code/API-PORTALWEB/internal/model"
	"github.com/soporte-code/API-PORTALWEB/internal/service"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCrearCuartel_GeneraHilerasNumeradas(t *testing.T) {
	e := nuevoEntorno(t)

	resp, err := e.cuartelService().Crear(ctx, usuarioCampo, dto.CrearCuartelRequest{
		Nombre: "Cuartel 7", IDSucursal: ptr(sucursalNorte),
		Superficie: decimal.RequireFromString("3.5"), NHileras: 5,
	})
	require.NoError(t, err)
	assert.Equal(t, 5, resp.NHileras)
	assert.Equal(t, sucursalNorte, resp.IDSucursal)

	hileras, err := e.cuartelService().Hileras(ctx, usuarioCampo, resp.ID)
	require.NoError(t, err)
	require.Len(t, hileras, 5)
	for i, h := range hileras {
		assert.Equal(t, service.NombreHilera(i+1), h.Hilera)
		require.NotNil(t, h.PlantasActivas)
		assert.Zero(t, *h.PlantasActivas)
	}
}

func TestCrearCuartel_SucursalFueraDelAlcance(t *testing.T) {
	e := nuevoEntorno(t)

	_, err := e.cuartelService().Crear(ctx, usuarioCampo, dto.CrearCuartelRequest{Nombre: "X", IDSucursal: ptr(sucursalSur)})
	esTipo(t, err, apierror.KindProhibido)
	assert.Empty(t, e.m.cuarteles)
}

func TestCrearCuartel_PorCeco(t *testing.T) {
	e := nuevoEntorno(t)
	e.m.cecos[9] = &model.Ceco{ID: 9, Nombre: "CC Norte", IDSucursal: sucursalNorte, IDEstado: model.EstadoActivo}

	resp, err := e.cuartelService().Crear(ctx, usuarioCampo, dto.CrearCuartelRequest{Nombre: "Legado", IDCeco: ptr(int64(9))})
	require.NoError(t, err)
	assert.Equal(t, sucursalNorte, resp.IDSucursal)
	assert.Nil(t, e.m.cuarteles[resp.ID].IDSucursal)
}

func TestCrearCuartel_VariedadInexistente(t *testing.T) {
	e := nuevoEntorno(t)

	_, err := e.cuartelService().Crear(ctx, usuarioCampo, dto.CrearCuartelRequest{
		Nombre: "X", IDSucursal: ptr(sucursalNorte), IDVariedad: ptr(int64(999)),
	})
	esTipo(t, err, apierror.KindValidacion)
}

func TestObtenerCuartel_FueraDelAlcanceEsNoEncontrado(t *testing.T) {
	e := nuevoEntorno(t)
	c := e.m.conCuartel("Sur 1", sucursalSur, 0)

	_, err := e.cuartelService().Obtener(ctx, usuarioCampo, c.ID)
	esTipo(t, err, apierror.KindNoEncontrado)

	_, err = e.cuartelService().Obtener(ctx, usuarioAjeno, c.ID)
	assert.NoError(t, err)
}

func TestListarCuarteles_SoloAlcance(t *testing.T) {
	e := nuevoEntorno(t)
	e.m.conCuartel("Norte 1", sucursalNorte, 0)
	e.m.conCuartel("Sur 1", sucursalSur, 0)

	lista, err := e.cuartelService().Listar(ctx, usuarioCampo)
	require.NoError(t, err)
	require.Len(t, lista, 1)
	assert.Equal(t, "Norte 1", lista[0].Nombre)

	e.m.miembros[usuarioCampo] = nil
	lista, err = e.cuartelService().Listar(ctx, usuarioCampo)
	require.NoError(t, err)
	assert.Empty(t, lista)
}

func TestActualizarCuartel_ParcialEIdempotente(t *testing.T) {
	e := nuevoEntorno(t)
	c := e.m.conCuartel("Norte 1", sucursalNorte, 4)
	req := dto.ActualizarCuartelRequest{AnoPlantacion: ptr(2015)}

	primero, err := e.cuartelService().Actualizar(ctx, usuarioCampo, c.ID, req)
	require.NoError(t, err)
	segundo, err := e.cuartelService().Actualizar(ctx, usuarioCampo, c.ID, req)
	require.NoError(t, err)

	assert.Equal(t, 2015, *segundo.AnoPlantacion)
	assert.Equal(t, "Norte 1", segundo.Nombre)
	assert.Equal(t, 4, segundo.NHileras)
	assert.Equal(t, primero.AnoPlantacion, segundo.AnoPlantacion)
}

func TestActualizarCuartel_SinCampos(t *testing.T) {
	e := nuevoEntorno(t)
	c := e.m.conCuartel("Norte 1", sucursalNorte, 0)

	_, err := e.cuartelService().Actualizar(ctx, usuarioCampo, c.ID, dto.ActualizarCuartelRequest{})
	esTipo(t, err, apierror.KindValidacion)
}

func TestEliminarCuartel_NoTocaHileras(t *testing.T) {
	e := nuevoEntorno(t)
	c := e.m.conCuartel("Norte 1", sucursalNorte, 1)
	h := e.m.conHilera(c.ID, "Hilera 1")

	require.NoError(t, e.cuartelService().Eliminar(ctx, usuarioCampo, c.ID))
	assert.Equal(t, model.EstadoInactivo, e.m.cuarteles[c.ID].IDEstado)
	assert.Equal(t, model.EstadoActivo, e.m.hileras[h.ID].IDEstado)

	_, err := e.cuartelService().Obtener(ctx, usuarioCampo, c.ID)
	esTipo(t, err, apierror.KindNoEncontrado)
}

func TestCambiarEstadoCatastro(t *testing.T) {
	e := nuevoEntorno(t)
	c := e.m.conCuartel("Norte 1", sucursalNorte, 0)

	resp, err := e.cuartelService().CambiarEstadoCatastro(ctx, usuarioCampo, c.ID, dto.EstadoCatastroRequest{EstadoCatastro: "completado"})
	require.NoError(t, err)
	assert.Equal(t, "completado", *resp.EstadoCatastro)
}

func TestPlantasDeHilera_HileraDeOtroCuartel(t *testing.T) {
	e := nuevoEntorno(t)
	c1 := e.m.conCuartel("Norte 1", sucursalNorte, 1)
	c2 := e.m.conCuartel("Norte 2", sucursalNorte, 1)
	h := e.m.conHilera(c2.ID, "Hilera 1")

	_, err := e.cuartelService().PlantasDeHilera(ctx, usuarioCampo, c1.ID, h.ID)
	esTipo(t, err, apierror.KindNoEncontrado)
}

func TestPlantasMasivoInfo(t *testing.T) {
	e := nuevoEntorno(t)
	c := e.m.conCuartel("Norte 1", sucursalNorte, 2)
	h1 := e.m.conHilera(c.ID, "Hilera 1")
	e.m.conHilera(c.ID, "Hilera 2")
	e.m.conPlanta(h1.ID, "1", nil)

	info, err := e.cuartelService().PlantasMasivoInfo(ctx, usuarioCampo)
	require.NoError(t, err)
	require.Len(t, info, 1)
	require.Len(t, info[0].Hileras, 2)
	assert.Equal(t, int64(1), *info[0].Hileras[0].PlantasActivas)
	assert.Equal(t, int64(0), *info[0].Hileras[1].PlantasActivas)
}
