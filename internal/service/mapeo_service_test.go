package service_test

import (
	"errors"
	"testing"

	"github.com/soporte-code/API-PORTALWEB/internal/apierror"
	"github.com/soporte-code/API-PORTALWEB/internal/dto"
	"github.com/soporte-code/API-PORTALWEB/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func campaniaReq(cuartelID int64) dto.CrearRegistroMapeoRequest {
	return dto.CrearRegistroMapeoRequest{IDCuartel: cuartelID, FechaInicio: "2024-09-01", FechaTermino: "2024-10-15"}
}

func TestCrearCampania_UnaActivaPorCuartel(t *testing.T) {
	e := nuevoEntorno(t)
	c := e.m.conCuartel("Norte 1", sucursalNorte, 0)
	svc := e.mapeoService()

	id, err := svc.CrearCampania(ctx, usuarioCampo, campaniaReq(c.ID))
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	_, err = svc.CrearCampania(ctx, usuarioCampo, campaniaReq(c.ID))
	esTipo(t, err, apierror.KindConflicto)

	_, err = svc.ActualizarCampania(ctx, usuarioCampo, id, dto.ActualizarRegistroMapeoRequest{IDEstado: ptr(model.EstadoInactivo)})
	require.NoError(t, err)
	_, err = svc.CrearCampania(ctx, usuarioCampo, campaniaReq(c.ID))
	assert.NoError(t, err)
}

func TestCrearCampania_FechasInvertidas(t *testing.T) {
	e := nuevoEntorno(t)
	c := e.m.conCuartel("Norte 1", sucursalNorte, 0)

	req := campaniaReq(c.ID)
	req.FechaInicio, req.FechaTermino = req.FechaTermino, req.FechaInicio
	_, err := e.mapeoService().CrearCampania(ctx, usuarioCampo, req)
	esTipo(t, err, apierror.KindValidacion)
}

func TestCrearCampania_CuartelFueraDelAlcance(t *testing.T) {
	e := nuevoEntorno(t)
	c := e.m.conCuartel("Sur 1", sucursalSur, 0)

	_, err := e.mapeoService().CrearCampania(ctx, usuarioCampo, campaniaReq(c.ID))
	esTipo(t, err, apierror.KindNoEncontrado)
}

func TestObtenerCampania_Alcance(t *testing.T) {
	e := nuevoEntorno(t)
	c := e.m.conCuartel("Norte 1", sucursalNorte, 0)
	id, err := e.mapeoService().CrearCampania(ctx, usuarioCampo, campaniaReq(c.ID))
	require.NoError(t, err)

	resp, err := e.mapeoService().ObtenerCampania(ctx, usuarioCampo, id)
	require.NoError(t, err)
	assert.Equal(t, "2024-09-01", resp.FechaInicio)
	assert.Equal(t, "Norte 1", resp.NombreCuartel)

	_, err = e.mapeoService().ObtenerCampania(ctx, usuarioAjeno, id)
	esTipo(t, err, apierror.KindNoEncontrado)
}

func TestActualizarCampania_RangoSobreValoresCombinados(t *testing.T) {
	e := nuevoEntorno(t)
	c := e.m.conCuartel("Norte 1", sucursalNorte, 0)
	id, err := e.mapeoService().CrearCampania(ctx, usuarioCampo, campaniaReq(c.ID))
	require.NoError(t, err)

	_, err = e.mapeoService().ActualizarCampania(ctx, usuarioCampo, id, dto.ActualizarRegistroMapeoRequest{FechaInicio: ptr("2024-11-01")})
	esTipo(t, err, apierror.KindValidacion)

	_, err = e.mapeoService().ActualizarCampania(ctx, usuarioCampo, id, dto.ActualizarRegistroMapeoRequest{})
	esTipo(t, err, apierror.KindValidacion)
}

func TestEstadoHilera_UpsertUnicoPorPar(t *testing.T) {
	e := nuevoEntorno(t)
	c := e.m.conCuartel("Norte 1", sucursalNorte, 1)
	h := e.m.conHilera(c.ID, "Hilera 1")
	svc := e.mapeoService()
	id, err := svc.CrearCampania(ctx, usuarioCampo, campaniaReq(c.ID))
	require.NoError(t, err)

	primero, err := svc.ActualizarEstadoHilera(ctx, usuarioCampo, id, dto.EstadoHileraRequest{IDHilera: h.ID, Estado: model.EstadoHileraEnProgreso})
	require.NoError(t, err)
	segundo, err := svc.ActualizarEstadoHilera(ctx, usuarioCampo, id, dto.EstadoHileraRequest{IDHilera: h.ID, Estado: model.EstadoHileraPendiente})
	require.NoError(t, err)

	assert.Equal(t, primero.ID, segundo.ID)
	assert.Equal(t, model.EstadoHileraPendiente, segundo.Estado)

	estados, err := svc.EstadosHileras(ctx, usuarioCampo, id)
	require.NoError(t, err)
	require.Len(t, estados, 1)
	assert.Equal(t, usuarioCampo, estados[0].IDUsuario)
}

func TestEstadoHilera_HileraDeOtroCuartel(t *testing.T) {
	e := nuevoEntorno(t)
	c := e.m.conCuartel("Norte 1", sucursalNorte, 0)
	otro := e.m.conCuartel("Norte 2", sucursalNorte, 1)
	h := e.m.conHilera(otro.ID, "Hilera 1")
	id, err := e.mapeoService().CrearCampania(ctx, usuarioCampo, campaniaReq(c.ID))
	require.NoError(t, err)

	_, err = e.mapeoService().ActualizarEstadoHilera(ctx, usuarioCampo, id, dto.EstadoHileraRequest{IDHilera: h.ID, Estado: model.EstadoHileraCompletado})
	esTipo(t, err, apierror.KindValidacion)
	assert.Empty(t, e.m.estados)
}

func TestCrearRegistro_ImagenSeBorraSiFallaInsert(t *testing.T) {
	e := nuevoEntorno(t)
	e.m.tipos = []model.TipoPlanta{{ID: 1, Nombre: "Productiva", IDEmpresa: 1, IDEstado: model.EstadoActivo}}
	c := e.m.conCuartel("Norte 1", sucursalNorte, 1)
	p := e.m.conPlanta(e.m.conHilera(c.ID, "Hilera 1").ID, "1", nil)
	blob := nuevoBlob()
	e.blob = blob
	svc := e.mapeoService()
	foto := "data:image/jpeg;base64,aGVsbG8="

	reg, err := svc.CrearRegistro(ctx, usuarioCampo, dto.RegistroRequest{IDPlanta: p.ID, IDTipoPlanta: 1, Imagen: &foto})
	require.NoError(t, err)
	assert.Equal(t, "https://firmada/s3://fotos/registros/"+reg.ID+".jpeg", *reg.Imagen)
	require.Len(t, blob.objetos, 1)

	e.mapeo.errInsert = errors.New("conexion perdida")
	_, err = svc.CrearRegistro(ctx, usuarioCampo, dto.RegistroRequest{IDPlanta: p.ID, IDTipoPlanta: 1, Imagen: &foto})
	require.Error(t, err)
	assert.Len(t, blob.objetos, 1)
	assert.Len(t, e.m.registros, 1)
}

func TestCrearRegistro(t *testing.T) {
	e := nuevoEntorno(t)
	e.m.tipos = []model.TipoPlanta{{ID: 1, Nombre: "Productiva", IDEmpresa: 1, IDEstado: model.EstadoActivo}}
	c := e.m.conCuartel("Norte 1", sucursalNorte, 1)
	p := e.m.conPlanta(e.m.conHilera(c.ID, "Hilera 1").ID, "1", nil)
	svc := e.mapeoService()

	reg, err := svc.CrearRegistro(ctx, usuarioCampo, dto.RegistroRequest{IDPlanta: p.ID, IDTipoPlanta: 1, Imagen: ptr("https://img/1.jpg")})
	require.NoError(t, err)
	assert.Equal(t, usuarioCampo, reg.IDEvaluador)
	assert.Equal(t, "https://img/1.jpg", *reg.Imagen)
	assert.False(t, reg.HoraRegistro.IsZero())

	_, err = svc.CrearRegistro(ctx, usuarioCampo, dto.RegistroRequest{IDPlanta: p.ID, IDTipoPlanta: 9})
	esTipo(t, err, apierror.KindValidacion)

	_, err = svc.CrearRegistro(ctx, usuarioAjeno, dto.RegistroRequest{IDPlanta: p.ID, IDTipoPlanta: 1})
	esTipo(t, err, apierror.KindNoEncontrado)

	lista, err := svc.ListarRegistros(ctx, usuarioCampo, dto.RegistroFilter{PlantaID: ptr(p.ID)})
	require.NoError(t, err)
	assert.Len(t, lista, 1)

	_, err = svc.ObtenerRegistro(ctx, usuarioAjeno, reg.ID)
	esTipo(t, err, apierror.KindNoEncontrado)
}

func TestTiposPlanta_PorEmpresaDeLaSucursalActiva(t *testing.T) {
	e := nuevoEntorno(t)
	e.m.tipos = []model.TipoPlanta{
		{ID: 1, Nombre: "Productiva", IDEmpresa: 1, IDEstado: model.EstadoActivo},
		{ID: 2, Nombre: "Muerta", IDEmpresa: 2, IDEstado: model.EstadoActivo},
		{ID: 3, Nombre: "Baja", IDEmpresa: 1, IDEstado: model.EstadoInactivo},
	}

	tipos, err := e.mapeoService().TiposPlanta(ctx, usuarioCampo)
	require.NoError(t, err)
	require.Len(t, tipos, 1)
	assert.Equal(t, "Productiva", tipos[0].Nombre)
}
