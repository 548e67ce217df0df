package service

import (
	"context"
	"time"

	"github.com/soporte-code/API-PORTALWEB/internal/apierror"
	"github.com/soporte-code/API-PORTALWEB/internal/dto"
	"github.com/soporte-code/API-PORTALWEB/internal/infra"
	"github.com/soporte-code/API-PORTALWEB/internal/model"
	"github.com/soporte-code/API-PORTALWEB/internal/repository"

	"github.com/google/uuid"
)

const (
	msgCampaniaNoEncontrada = "Registro de mapeo no encontrado"
	msgRegistroNoEncontrado = "Registro no encontrado"
)

// MapeoService covers mapping campaigns, per-row progress inside a campaign
// and the inspection records taken on plants.
type MapeoService interface {
	ListarCampanias(ctx context.Context, usuarioID string) ([]dto.RegistroMapeoResponse, error)
	ObtenerCampania(ctx context.Context, usuarioID, id string) (*dto.RegistroMapeoResponse, error)
	CrearCampania(ctx context.Context, usuarioID string, req dto.CrearRegistroMapeoRequest) (string, error)
	ActualizarCampania(ctx context.Context, usuarioID, id string, req dto.ActualizarRegistroMapeoRequest) (*dto.RegistroMapeoResponse, error)

	EstadosHileras(ctx context.Context, usuarioID, campaniaID string) ([]dto.EstadoHileraResponse, error)
	ActualizarEstadoHilera(ctx context.Context, usuarioID, campaniaID string, req dto.EstadoHileraRequest) (*dto.EstadoHileraResponse, error)

	ListarRegistros(ctx context.Context, usuarioID string, f dto.RegistroFilter) ([]dto.RegistroResponse, error)
	ObtenerRegistro(ctx context.Context, usuarioID, id string) (*dto.RegistroResponse, error)
	CrearRegistro(ctx context.Context, usuarioID string, req dto.RegistroRequest) (*dto.RegistroResponse, error)

	TiposPlanta(ctx context.Context, usuarioID string) ([]dto.TipoPlantaResponse, error)
}

type mapeoService struct {
	mapeo      repository.MapeoRepository
	cuarteles  repository.CuartelRepository
	hileras    repository.HileraRepository
	plantas    repository.PlantaRepository
	usuarios   repository.UsuarioRepository
	sucursales repository.SucursalRepository
	alcance    AlcanceService
	blob       infra.BlobStore
}

// NewMapeoService wires the service. blob may be nil; images are then stored
// as sent.
func NewMapeoService(
	mapeo repository.MapeoRepository,
	cuarteles repository.CuartelRepository,
	hileras repository.HileraRepository,
	plantas repository.PlantaRepository,
	usuarios repository.UsuarioRepository,
	sucursales repository.SucursalRepository,
	alcance AlcanceService,
	blob infra.BlobStore,
) MapeoService {
	return &mapeoService{
		mapeo: mapeo, cuarteles: cuarteles, hileras: hileras, plantas: plantas,
		usuarios: usuarios, sucursales: sucursales, alcance: alcance, blob: blob,
	}
}

func (s *mapeoService) campania(ctx context.Context, usuarioID, id string) (*model.RegistroMapeoDetalle, error) {
	sucursales, err := s.alcance.Sucursales(ctx, usuarioID)
	if err != nil {
		return nil, err
	}
	rm, err := s.mapeo.FindRegistroMapeo(ctx, id, sucursales)
	if err != nil {
		return nil, siNoExiste(err, msgCampaniaNoEncontrada)
	}
	return rm, nil
}

func (s *mapeoService) ListarCampanias(ctx context.Context, usuarioID string) ([]dto.RegistroMapeoResponse, error) {
	sucursales, err := s.alcance.Sucursales(ctx, usuarioID)
	if err != nil {
		return nil, err
	}
	lista, err := s.mapeo.ListRegistrosMapeo(ctx, sucursales)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.RegistroMapeoResponse, len(lista))
	for i := range lista {
		resp[i] = registroMapeoResponse(&lista[i])
	}
	return resp, nil
}

func (s *mapeoService) ObtenerCampania(ctx context.Context, usuarioID, id string) (*dto.RegistroMapeoResponse, error) {
	rm, err := s.campania(ctx, usuarioID, id)
	if err != nil {
		return nil, err
	}
	resp := registroMapeoResponse(rm)
	return &resp, nil
}

func (s *mapeoService) CrearCampania(ctx context.Context, usuarioID string, req dto.CrearRegistroMapeoRequest) (string, error) {
	inicio, termino, err := rangoFechas(req.FechaInicio, req.FechaTermino)
	if err != nil {
		return "", err
	}
	sucursales, err := s.alcance.Sucursales(ctx, usuarioID)
	if err != nil {
		return "", err
	}
	if _, err := s.cuarteles.FindEnAlcance(ctx, req.IDCuartel, sucursales); err != nil {
		return "", siNoExiste(err, msgCuartelNoEncontrado)
	}
	activo, err := s.mapeo.ExisteActivoPorCuartel(ctx, req.IDCuartel)
	if err != nil {
		return "", err
	}
	if activo {
		return "", apierror.Conflicto("El cuartel ya tiene un registro de mapeo activo")
	}

	ahora := time.Now()
	rm := &model.RegistroMapeo{
		ID:            uuid.NewString(),
		IDTemporada:   req.IDTemporada,
		IDCuartel:     req.IDCuartel,
		FechaInicio:   inicio,
		FechaTermino:  termino,
		IDEstado:      model.EstadoActivo,
		FechaCreacion: &ahora,
	}
	if err := s.mapeo.CreateRegistroMapeo(ctx, rm); err != nil {
		return "", err
	}
	return rm.ID, nil
}

func (s *mapeoService) ActualizarCampania(ctx context.Context, usuarioID, id string, req dto.ActualizarRegistroMapeoRequest) (*dto.RegistroMapeoResponse, error) {
	rm, err := s.campania(ctx, usuarioID, id)
	if err != nil {
		return nil, err
	}

	cambios := map[string]interface{}{}
	inicio, termino := rm.FechaInicio, rm.FechaTermino
	if req.FechaInicio != nil {
		if inicio, err = time.Parse(formatoFecha, *req.FechaInicio); err != nil {
			return nil, apierror.Validacion("fecha_inicio debe tener formato YYYY-MM-DD")
		}
		cambios["fecha_inicio"] = inicio
	}
	if req.FechaTermino != nil {
		if termino, err = time.Parse(formatoFecha, *req.FechaTermino); err != nil {
			return nil, apierror.Validacion("fecha_termino debe tener formato YYYY-MM-DD")
		}
		cambios["fecha_termino"] = termino
	}
	if termino.Before(inicio) {
		return nil, apierror.Validacion("fecha_inicio no puede ser posterior a fecha_termino")
	}
	if req.IDTemporada != nil {
		cambios["id_temporada"] = *req.IDTemporada
	}
	if req.IDEstado != nil {
		cambios["id_estado"] = *req.IDEstado
	}
	if len(cambios) == 0 {
		return nil, apierror.Validacion("No hay campos para actualizar")
	}
	if err := s.mapeo.UpdateRegistroMapeo(ctx, id, cambios); err != nil {
		return nil, err
	}
	return s.ObtenerCampania(ctx, usuarioID, id)
}

func (s *mapeoService) EstadosHileras(ctx context.Context, usuarioID, campaniaID string) ([]dto.EstadoHileraResponse, error) {
	if _, err := s.campania(ctx, usuarioID, campaniaID); err != nil {
		return nil, err
	}
	estados, err := s.mapeo.ListEstadosHileras(ctx, campaniaID)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.EstadoHileraResponse, len(estados))
	for i := range estados {
		resp[i] = estadoHileraResponse(&estados[i])
	}
	return resp, nil
}

// ActualizarEstadoHilera records the latest progress of a row. Any state may
// follow any other.
func (s *mapeoService) ActualizarEstadoHilera(ctx context.Context, usuarioID, campaniaID string, req dto.EstadoHileraRequest) (*dto.EstadoHileraResponse, error) {
	rm, err := s.campania(ctx, usuarioID, campaniaID)
	if err != nil {
		return nil, err
	}
	sucursales, err := s.alcance.Sucursales(ctx, usuarioID)
	if err != nil {
		return nil, err
	}
	h, err := s.hileras.FindEnAlcance(ctx, req.IDHilera, sucursales)
	if err != nil {
		return nil, siNoExiste(err, msgHileraNoEncontrada)
	}
	if h.IDCuartel != rm.IDCuartel {
		return nil, apierror.Validacion("La hilera no pertenece al cuartel del registro de mapeo")
	}

	ahora := time.Now()
	e := &model.EstadoHilera{
		ID:                 uuid.NewString(),
		IDRegistroMapeo:    campaniaID,
		IDHilera:           req.IDHilera,
		Estado:             req.Estado,
		IDUsuario:          usuarioID,
		Observaciones:      req.Observaciones,
		FechaCreacion:      &ahora,
		FechaActualizacion: &ahora,
	}
	if err := s.mapeo.UpsertEstadoHilera(ctx, e); err != nil {
		return nil, err
	}
	actual, err := s.mapeo.FindEstadoHilera(ctx, campaniaID, req.IDHilera)
	if err != nil {
		return nil, err
	}
	resp := estadoHileraResponse(actual)
	return &resp, nil
}

func (s *mapeoService) ListarRegistros(ctx context.Context, usuarioID string, f dto.RegistroFilter) ([]dto.RegistroResponse, error) {
	sucursales, err := s.alcance.Sucursales(ctx, usuarioID)
	if err != nil {
		return nil, err
	}
	registros, err := s.mapeo.ListRegistros(ctx, f, sucursales)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.RegistroResponse, len(registros))
	for i := range registros {
		resp[i] = registroResponse(&registros[i])
		resp[i].Imagen = urlImagen(ctx, s.blob, resp[i].Imagen)
	}
	return resp, nil
}

func (s *mapeoService) ObtenerRegistro(ctx context.Context, usuarioID, id string) (*dto.RegistroResponse, error) {
	sucursales, err := s.alcance.Sucursales(ctx, usuarioID)
	if err != nil {
		return nil, err
	}
	reg, err := s.mapeo.FindRegistro(ctx, id, sucursales)
	if err != nil {
		return nil, siNoExiste(err, msgRegistroNoEncontrado)
	}
	resp := registroResponse(reg)
	resp.Imagen = urlImagen(ctx, s.blob, resp.Imagen)
	return &resp, nil
}

func (s *mapeoService) CrearRegistro(ctx context.Context, usuarioID string, req dto.RegistroRequest) (*dto.RegistroResponse, error) {
	sucursales, err := s.alcance.Sucursales(ctx, usuarioID)
	if err != nil {
		return nil, err
	}
	if _, err := s.plantas.FindEnAlcance(ctx, req.IDPlanta, sucursales); err != nil {
		return nil, siNoExiste(err, msgPlantaNoEncontrada)
	}
	tipos, err := tiposPlantaActivos(ctx, s.mapeo)
	if err != nil {
		return nil, err
	}
	if !tipos[req.IDTipoPlanta] {
		return nil, apierror.Validacion("El tipo de planta no existe")
	}

	reg := &model.Registro{
		ID:           uuid.NewString(),
		IDEvaluador:  usuarioID,
		HoraRegistro: time.Now(),
		IDPlanta:     req.IDPlanta,
		IDTipoPlanta: req.IDTipoPlanta,
	}
	if reg.Imagen, err = guardarImagen(ctx, s.blob, reg.ID, req.Imagen); err != nil {
		return nil, apierror.Validacion("La imagen no es valida")
	}
	if err := s.mapeo.CreateRegistro(ctx, reg); err != nil {
		if imagenSubida(req.Imagen, reg.Imagen) {
			descartarImagenes(ctx, s.blob, []string{*reg.Imagen})
		}
		return nil, err
	}
	resp := registroResponse(reg)
	resp.Imagen = urlImagen(ctx, s.blob, resp.Imagen)
	return &resp, nil
}

// TiposPlanta lists the plant types of the company owning the caller's
// active branch. Users without an active branch get the full catalogue.
func (s *mapeoService) TiposPlanta(ctx context.Context, usuarioID string) ([]dto.TipoPlantaResponse, error) {
	u, err := s.usuarios.FindByID(ctx, usuarioID)
	if err != nil {
		return nil, siNoExiste(err, "Usuario no encontrado")
	}
	var empresaID *int64
	if u.IDSucursalActiva != nil {
		suc, err := s.sucursales.FindByID(ctx, *u.IDSucursalActiva)
		if err != nil && errorDeBusqueda(err) {
			return nil, err
		}
		if suc != nil {
			empresaID = suc.IDEmpresa
		}
	}
	tipos, err := s.mapeo.ListTiposPlanta(ctx, empresaID)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.TipoPlantaResponse, len(tipos))
	for i, t := range tipos {
		resp[i] = dto.TipoPlantaResponse{
			ID: t.ID, Nombre: t.Nombre, FactorProductivo: t.FactorProductivo,
			IDEmpresa: t.IDEmpresa, Descripcion: t.Descripcion,
		}
	}
	return resp, nil
}

func tiposPlantaActivos(ctx context.Context, repo repository.MapeoRepository) (map[int64]bool, error) {
	tipos, err := repo.ListTiposPlanta(ctx, nil)
	if err != nil {
		return nil, err
	}
	ids := make(map[int64]bool, len(tipos))
	for _, t := range tipos {
		ids[t.ID] = true
	}
	return ids, nil
}

func rangoFechas(desde, hasta string) (time.Time, time.Time, error) {
	inicio, err := time.Parse(formatoFecha, desde)
	if err != nil {
		return time.Time{}, time.Time{}, apierror.Validacion("fecha_inicio debe tener formato YYYY-MM-DD")
	}
	termino, err := time.Parse(formatoFecha, hasta)
	if err != nil {
		return time.Time{}, time.Time{}, apierror.Validacion("fecha_termino debe tener formato YYYY-MM-DD")
	}
	if termino.Before(inicio) {
		return time.Time{}, time.Time{}, apierror.Validacion("fecha_inicio no puede ser posterior a fecha_termino")
	}
	return inicio, termino, nil
}
