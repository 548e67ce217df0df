package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/soporte-code/API-PORTALWEB/internal/apierror"
	"github.com/soporte-code/API-PORTALWEB/internal/dto"
	"github.com/soporte-code/API-PORTALWEB/internal/model"
	"github.com/soporte-code/API-PORTALWEB/internal/repository"

	"gorm.io/gorm"
)

const msgCuartelNoEncontrado = "Cuartel no encontrado"

type CuartelService interface {
	Listar(ctx context.Context, usuarioID string) ([]dto.CuartelResponse, error)
	Obtener(ctx context.Context, usuarioID string, id int64) (*dto.CuartelResponse, error)
	Crear(ctx context.Context, usuarioID string, req dto.CrearCuartelRequest) (*dto.CuartelResponse, error)
	Actualizar(ctx context.Context, usuarioID string, id int64, req dto.ActualizarCuartelRequest) (*dto.CuartelResponse, error)
	Eliminar(ctx context.Context, usuarioID string, id int64) error
	CambiarEstadoCatastro(ctx context.Context, usuarioID string, id int64, req dto.EstadoCatastroRequest) (*dto.CuartelResponse, error)
	Hileras(ctx context.Context, usuarioID string, id int64) ([]dto.HileraResponse, error)
	Plantas(ctx context.Context, usuarioID string, id int64) ([]dto.PlantaResponse, error)
	PlantasDeHilera(ctx context.Context, usuarioID string, id, hileraID int64) ([]dto.PlantaResponse, error)
	PlantasMasivoInfo(ctx context.Context, usuarioID string) ([]dto.CuartelPlantasInfo, error)
}

type cuartelService struct {
	cuarteles  repository.CuartelRepository
	hileras    repository.HileraRepository
	plantas    repository.PlantaRepository
	sucursales repository.SucursalRepository
	especies   repository.EspecieRepository
	alcance    AlcanceService
}

func NewCuartelService(
	cuarteles repository.CuartelRepository,
	hileras repository.HileraRepository,
	plantas repository.PlantaRepository,
	sucursales repository.SucursalRepository,
	especies repository.EspecieRepository,
	alcance AlcanceService,
) CuartelService {
	return &cuartelService{
		cuarteles: cuarteles, hileras: hileras, plantas: plantas,
		sucursales: sucursales, especies: especies, alcance: alcance,
	}
}

// buscar loads a field inside the caller's scope; anything else is a 404.
func (s *cuartelService) buscar(ctx context.Context, usuarioID string, id int64) (*model.CuartelDetalle, error) {
	sucursales, err := s.alcance.Sucursales(ctx, usuarioID)
	if err != nil {
		return nil, err
	}
	c, err := s.cuarteles.FindEnAlcance(ctx, id, sucursales)
	if err != nil {
		return nil, siNoExiste(err, msgCuartelNoEncontrado)
	}
	return c, nil
}

func (s *cuartelService) Listar(ctx context.Context, usuarioID string) ([]dto.CuartelResponse, error) {
	sucursales, err := s.alcance.Sucursales(ctx, usuarioID)
	if err != nil {
		return nil, err
	}
	cuarteles, err := s.cuarteles.List(ctx, sucursales)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.CuartelResponse, len(cuarteles))
	for i := range cuarteles {
		resp[i] = cuartelResponse(&cuarteles[i])
	}
	return resp, nil
}

func (s *cuartelService) Obtener(ctx context.Context, usuarioID string, id int64) (*dto.CuartelResponse, error) {
	c, err := s.buscar(ctx, usuarioID, id)
	if err != nil {
		return nil, err
	}
	resp := cuartelResponse(c)
	return &resp, nil
}

func (s *cuartelService) Crear(ctx context.Context, usuarioID string, req dto.CrearCuartelRequest) (*dto.CuartelResponse, error) {
	nombre := strings.TrimSpace(req.Nombre)
	if nombre == "" {
		return nil, apierror.Validacion("El nombre es requerido")
	}

	var sucursalID int64
	switch {
	case req.IDCeco != nil:
		ceco, err := s.sucursales.FindCeco(ctx, *req.IDCeco)
		if err != nil {
			if errorDeBusqueda(err) {
				return nil, err
			}
			return nil, apierror.Validacion("El centro de costo no existe")
		}
		sucursalID = ceco.IDSucursal
	case req.IDSucursal != nil:
		sucursalID = *req.IDSucursal
	default:
		return nil, apierror.Validacion("Se requiere id_sucursal o id_ceco")
	}

	ok, err := s.alcance.TieneAcceso(ctx, usuarioID, sucursalID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apierror.Prohibido("No tienes acceso a esta sucursal")
	}
	if err := s.verificarVariedad(ctx, req.IDVariedad); err != nil {
		return nil, err
	}

	ahora := time.Now()
	c := &model.Cuartel{
		IDCeco:             req.IDCeco,
		Nombre:             nombre,
		IDVariedad:         req.IDVariedad,
		Superficie:         req.Superficie,
		AnoPlantacion:      req.AnoPlantacion,
		DSH:                req.DSH,
		DEH:                req.DEH,
		IDPropiedad:        req.IDPropiedad,
		IDPortainjerto:     req.IDPortainjerto,
		BrazosEjes:         req.BrazosEjes,
		IDEstadoProductivo: req.IDEstadoProductivo,
		NHileras:           req.NHileras,
		IDEstado:           model.EstadoActivo,
		FechaCreacion:      &ahora,
	}
	if req.IDCeco == nil {
		c.IDSucursal = &sucursalID
	}

	err = runTx(ctx, s.cuarteles.DB(), func(tx *gorm.DB) error {
		if err := s.cuarteles.CreateTx(tx, c); err != nil {
			return err
		}
		return s.hileras.CreateTx(tx, hilerasNumeradas(c.ID, 1, req.NHileras, nil, ahora))
	})
	if err != nil {
		return nil, siDuplicado(err, "Hilera duplicada en el cuartel")
	}
	return s.Obtener(ctx, usuarioID, c.ID)
}

func (s *cuartelService) Actualizar(ctx context.Context, usuarioID string, id int64, req dto.ActualizarCuartelRequest) (*dto.CuartelResponse, error) {
	if _, err := s.buscar(ctx, usuarioID, id); err != nil {
		return nil, err
	}

	// Only whitelisted columns reach the UPDATE; absent keys are left untouched.
	cambios := map[string]interface{}{}
	if req.Nombre != nil {
		nombre := strings.TrimSpace(*req.Nombre)
		if nombre == "" {
			return nil, apierror.Validacion("El nombre no puede estar vacio")
		}
		cambios["nombre"] = nombre
	}
	if req.IDVariedad != nil {
		if err := s.verificarVariedad(ctx, req.IDVariedad); err != nil {
			return nil, err
		}
		cambios["id_variedad"] = *req.IDVariedad
	}
	if req.Superficie != nil {
		cambios["superficie"] = *req.Superficie
	}
	if req.AnoPlantacion != nil {
		cambios["ano_plantacion"] = *req.AnoPlantacion
	}
	if req.DSH != nil {
		cambios["dsh"] = *req.DSH
	}
	if req.DEH != nil {
		cambios["deh"] = *req.DEH
	}
	if req.IDPropiedad != nil {
		cambios["id_propiedad"] = *req.IDPropiedad
	}
	if req.IDPortainjerto != nil {
		cambios["id_portainjerto"] = *req.IDPortainjerto
	}
	if req.BrazosEjes != nil {
		cambios["brazos_ejes"] = *req.BrazosEjes
	}
	if req.IDEstadoProductivo != nil {
		cambios["id_estadoproductivo"] = *req.IDEstadoProductivo
	}
	if req.NHileras != nil {
		cambios["n_hileras"] = *req.NHileras
	}
	if req.IDEstadoCatastro != nil {
		cambios["id_estadocatastro"] = *req.IDEstadoCatastro
	}
	if len(cambios) == 0 {
		return nil, apierror.Validacion("No hay campos para actualizar")
	}

	if err := s.cuarteles.Update(ctx, id, cambios); err != nil {
		return nil, err
	}
	return s.Obtener(ctx, usuarioID, id)
}

// Eliminar soft-deletes the field only; its rows and plants keep their state.
func (s *cuartelService) Eliminar(ctx context.Context, usuarioID string, id int64) error {
	if _, err := s.buscar(ctx, usuarioID, id); err != nil {
		return err
	}
	return s.cuarteles.SoftDelete(ctx, id)
}

func (s *cuartelService) CambiarEstadoCatastro(ctx context.Context, usuarioID string, id int64, req dto.EstadoCatastroRequest) (*dto.CuartelResponse, error) {
	if _, err := s.buscar(ctx, usuarioID, id); err != nil {
		return nil, err
	}
	if err := s.cuarteles.Update(ctx, id, map[string]interface{}{"estado_catastro": req.EstadoCatastro}); err != nil {
		return nil, err
	}
	return s.Obtener(ctx, usuarioID, id)
}

func (s *cuartelService) Hileras(ctx context.Context, usuarioID string, id int64) ([]dto.HileraResponse, error) {
	if _, err := s.buscar(ctx, usuarioID, id); err != nil {
		return nil, err
	}
	hileras, err := s.hileras.ListPorCuarteles(ctx, id)
	if err != nil {
		return nil, err
	}
	return hilerasConteo(hileras), nil
}

func (s *cuartelService) Plantas(ctx context.Context, usuarioID string, id int64) ([]dto.PlantaResponse, error) {
	if _, err := s.buscar(ctx, usuarioID, id); err != nil {
		return nil, err
	}
	plantas, err := s.plantas.ListPorCuartel(ctx, id)
	if err != nil {
		return nil, err
	}
	return plantasDetalleResponse(plantas), nil
}

func (s *cuartelService) PlantasDeHilera(ctx context.Context, usuarioID string, id, hileraID int64) ([]dto.PlantaResponse, error) {
	sucursales, err := s.alcance.Sucursales(ctx, usuarioID)
	if err != nil {
		return nil, err
	}
	h, err := s.hileras.FindEnAlcance(ctx, hileraID, sucursales)
	if err != nil {
		return nil, siNoExiste(err, "Hilera no encontrada")
	}
	if h.IDCuartel != id {
		return nil, apierror.NoEncontrado("Hilera no encontrada")
	}
	plantas, err := s.plantas.ListPorHilera(ctx, hileraID)
	if err != nil {
		return nil, err
	}
	return plantasResponse(plantas), nil
}

// PlantasMasivoInfo lists every field in scope with its rows and plant counts.
func (s *cuartelService) PlantasMasivoInfo(ctx context.Context, usuarioID string) ([]dto.CuartelPlantasInfo, error) {
	sucursales, err := s.alcance.Sucursales(ctx, usuarioID)
	if err != nil {
		return nil, err
	}
	cuarteles, err := s.cuarteles.List(ctx, sucursales)
	if err != nil {
		return nil, err
	}
	ids := make([]int64, len(cuarteles))
	for i, c := range cuarteles {
		ids[i] = c.ID
	}
	hileras, err := s.hileras.ListPorCuarteles(ctx, ids...)
	if err != nil {
		return nil, err
	}

	porCuartel := make(map[int64][]model.HileraConteo, len(cuarteles))
	for _, h := range hileras {
		porCuartel[h.IDCuartel] = append(porCuartel[h.IDCuartel], h)
	}
	resp := make([]dto.CuartelPlantasInfo, len(cuarteles))
	for i, c := range cuarteles {
		resp[i] = dto.CuartelPlantasInfo{ID: c.ID, Nombre: c.Nombre, Hileras: hilerasConteo(porCuartel[c.ID])}
	}
	return resp, nil
}

func (s *cuartelService) verificarVariedad(ctx context.Context, id *int64) error {
	if id == nil {
		return nil
	}
	if _, err := s.especies.FindVariedad(ctx, *id); err != nil {
		if errorDeBusqueda(err) {
			return err
		}
		return apierror.Validacion(fmt.Sprintf("La variedad %d no existe", *id))
	}
	return nil
}
