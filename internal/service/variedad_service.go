package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/soporte-code/API-PORTALWEB/internal/apierror"
	"github.com/soporte-code/API-PORTALWEB/internal/dto"
	"github.com/soporte-code/API-PORTALWEB/internal/model"
	"github.com/soporte-code/API-PORTALWEB/internal/repository"
)

// VariedadService manages species and varieties. Deletes are soft and guarded
// by active dependents: a species with varieties, a variety with fields.
type VariedadService interface {
	ListarEspecies(ctx context.Context) ([]dto.EspecieResponse, error)
	ObtenerEspecie(ctx context.Context, id int64) (*dto.EspecieResponse, error)
	CrearEspecie(ctx context.Context, req dto.EspecieRequest) (*dto.EspecieResponse, error)
	ActualizarEspecie(ctx context.Context, id int64, req dto.ActualizarEspecieRequest) (*dto.EspecieResponse, error)
	EliminarEspecie(ctx context.Context, id int64) error

	ListarVariedades(ctx context.Context, especieID *int64) ([]dto.VariedadResponse, error)
	ObtenerVariedad(ctx context.Context, id int64) (*dto.VariedadResponse, error)
	CrearVariedad(ctx context.Context, req dto.VariedadRequest) (*dto.VariedadResponse, error)
	ActualizarVariedad(ctx context.Context, id int64, req dto.ActualizarVariedadRequest) (*dto.VariedadResponse, error)
	EliminarVariedad(ctx context.Context, id int64) error
}

type variedadService struct {
	repo repository.EspecieRepository
}

func NewVariedadService(repo repository.EspecieRepository) VariedadService {
	return &variedadService{repo: repo}
}

func especieResponse(e *model.Especie) dto.EspecieResponse {
	return dto.EspecieResponse{ID: e.ID, Nombre: e.Nombre, CajaEquivalente: e.CajaEquivalente, IDEstado: e.IDEstado}
}

func variedadResponse(v *model.Variedad, especie *string) dto.VariedadResponse {
	return dto.VariedadResponse{ID: v.ID, Nombre: v.Nombre, IDEspecie: v.IDEspecie, NombreEspecie: especie, IDEstado: v.IDEstado}
}

func (s *variedadService) ListarEspecies(ctx context.Context) ([]dto.EspecieResponse, error) {
	especies, err := s.repo.ListEspecies(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.EspecieResponse, len(especies))
	for i := range especies {
		resp[i] = especieResponse(&especies[i])
	}
	return resp, nil
}

func (s *variedadService) ObtenerEspecie(ctx context.Context, id int64) (*dto.EspecieResponse, error) {
	e, err := s.repo.FindEspecie(ctx, id)
	if err != nil {
		return nil, siNoExiste(err, "Especie no encontrada")
	}
	resp := especieResponse(e)
	return &resp, nil
}

func (s *variedadService) CrearEspecie(ctx context.Context, req dto.EspecieRequest) (*dto.EspecieResponse, error) {
	nombre := strings.TrimSpace(req.Nombre)
	if err := s.especieUnica(ctx, nombre, 0); err != nil {
		return nil, err
	}
	e := &model.Especie{Nombre: nombre, CajaEquivalente: req.CajaEquivalente, IDEstado: model.EstadoActivo}
	if err := s.repo.CreateEspecie(ctx, e); err != nil {
		return nil, err
	}
	resp := especieResponse(e)
	return &resp, nil
}

func (s *variedadService) ActualizarEspecie(ctx context.Context, id int64, req dto.ActualizarEspecieRequest) (*dto.EspecieResponse, error) {
	if _, err := s.repo.FindEspecie(ctx, id); err != nil {
		return nil, siNoExiste(err, "Especie no encontrada")
	}
	cambios := map[string]interface{}{}
	if req.Nombre != nil {
		nombre := strings.TrimSpace(*req.Nombre)
		if err := s.especieUnica(ctx, nombre, id); err != nil {
			return nil, err
		}
		cambios["nombre"] = nombre
	}
	if req.CajaEquivalente != nil {
		cambios["caja_equivalente"] = *req.CajaEquivalente
	}
	if len(cambios) == 0 {
		return nil, apierror.Validacion("No hay campos para actualizar")
	}
	if err := s.repo.UpdateEspecie(ctx, id, cambios); err != nil {
		return nil, err
	}
	return s.ObtenerEspecie(ctx, id)
}

func (s *variedadService) EliminarEspecie(ctx context.Context, id int64) error {
	if _, err := s.repo.FindEspecie(ctx, id); err != nil {
		return siNoExiste(err, "Especie no encontrada")
	}
	n, err := s.repo.CountVariedadesActivas(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return apierror.Validacion(fmt.Sprintf("No se puede eliminar la especie: tiene %d variedades activas", n))
	}
	return s.repo.SoftDeleteEspecie(ctx, id)
}

func (s *variedadService) ListarVariedades(ctx context.Context, especieID *int64) ([]dto.VariedadResponse, error) {
	if especieID != nil {
		if _, err := s.repo.FindEspecie(ctx, *especieID); err != nil {
			return nil, siNoExiste(err, "Especie no encontrada")
		}
	}
	variedades, err := s.repo.ListVariedades(ctx, especieID)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.VariedadResponse, len(variedades))
	for i := range variedades {
		resp[i] = variedadResponse(&variedades[i].Variedad, variedades[i].NombreEspecie)
	}
	return resp, nil
}

func (s *variedadService) ObtenerVariedad(ctx context.Context, id int64) (*dto.VariedadResponse, error) {
	v, err := s.repo.FindVariedad(ctx, id)
	if err != nil {
		return nil, siNoExiste(err, "Variedad no encontrada")
	}
	resp := variedadResponse(v, nil)
	return &resp, nil
}

func (s *variedadService) CrearVariedad(ctx context.Context, req dto.VariedadRequest) (*dto.VariedadResponse, error) {
	especie, err := s.repo.FindEspecie(ctx, req.IDEspecie)
	if err != nil {
		if errorDeBusqueda(err) {
			return nil, err
		}
		return nil, apierror.Validacion("La especie no existe")
	}
	nombre := strings.TrimSpace(req.Nombre)
	if err := s.variedadUnica(ctx, req.IDEspecie, nombre, 0); err != nil {
		return nil, err
	}
	v := &model.Variedad{Nombre: nombre, IDEspecie: req.IDEspecie, IDEstado: model.EstadoActivo}
	if err := s.repo.CreateVariedad(ctx, v); err != nil {
		return nil, err
	}
	resp := variedadResponse(v, &especie.Nombre)
	return &resp, nil
}

func (s *variedadService) ActualizarVariedad(ctx context.Context, id int64, req dto.ActualizarVariedadRequest) (*dto.VariedadResponse, error) {
	actual, err := s.repo.FindVariedad(ctx, id)
	if err != nil {
		return nil, siNoExiste(err, "Variedad no encontrada")
	}

	cambios := map[string]interface{}{}
	especieID, nombre := actual.IDEspecie, actual.Nombre
	if req.IDEspecie != nil {
		if _, err := s.repo.FindEspecie(ctx, *req.IDEspecie); err != nil {
			if errorDeBusqueda(err) {
				return nil, err
			}
			return nil, apierror.Validacion("La especie no existe")
		}
		especieID = *req.IDEspecie
		cambios["id_especie"] = especieID
	}
	if req.Nombre != nil {
		nombre = strings.TrimSpace(*req.Nombre)
		cambios["nombre"] = nombre
	}
	if len(cambios) == 0 {
		return nil, apierror.Validacion("No hay campos para actualizar")
	}
	if err := s.variedadUnica(ctx, especieID, nombre, id); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateVariedad(ctx, id, cambios); err != nil {
		return nil, err
	}
	return s.ObtenerVariedad(ctx, id)
}

func (s *variedadService) EliminarVariedad(ctx context.Context, id int64) error {
	if _, err := s.repo.FindVariedad(ctx, id); err != nil {
		return siNoExiste(err, "Variedad no encontrada")
	}
	n, err := s.repo.CountCuartelesActivos(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return apierror.Validacion(fmt.Sprintf("No se puede eliminar la variedad: %d cuarteles activos la usan", n))
	}
	return s.repo.SoftDeleteVariedad(ctx, id)
}

func (s *variedadService) especieUnica(ctx context.Context, nombre string, excluirID int64) error {
	existe, err := s.repo.ExisteEspecie(ctx, nombre, excluirID)
	if err != nil {
		return err
	}
	if existe {
		return apierror.Conflicto("Ya existe una especie con ese nombre")
	}
	return nil
}

func (s *variedadService) variedadUnica(ctx context.Context, especieID int64, nombre string, excluirID int64) error {
	existe, err := s.repo.ExisteVariedad(ctx, especieID, nombre, excluirID)
	if err != nil {
		return err
	}
	if existe {
		return apierror.Conflicto("Ya existe una variedad con ese nombre para la especie")
	}
	return nil
}
