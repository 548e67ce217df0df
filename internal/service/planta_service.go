package service

import (
	"context"
	"fmt"
	"time"

	"github.com/soporte-code/API-PORTALWEB/internal/apierror"
	"github.com/soporte-code/API-PORTALWEB/internal/dto"
	"github.com/soporte-code/API-PORTALWEB/internal/model"
	"github.com/soporte-code/API-PORTALWEB/internal/repository"
)

const msgPlantaNoEncontrada = "Planta no encontrada"

type PlantaService interface {
	Listar(ctx context.Context, usuarioID string, hileraID int64) ([]dto.PlantaResponse, error)
	Obtener(ctx context.Context, usuarioID string, id int64) (*dto.PlantaResponse, error)
	Crear(ctx context.Context, usuarioID string, req dto.CrearPlantaRequest) (*dto.PlantaResponse, error)
	Actualizar(ctx context.Context, usuarioID string, id int64, req dto.ActualizarPlantaRequest) (*dto.PlantaResponse, error)
	Eliminar(ctx context.Context, usuarioID string, id int64) error
	Buscar(ctx context.Context, usuarioID string, f dto.BuscarPlantaFilter) ([]dto.PlantaResponse, error)
}

type plantaService struct {
	hileras repository.HileraRepository
	plantas repository.PlantaRepository
	alcance AlcanceService
}

func NewPlantaService(hileras repository.HileraRepository, plantas repository.PlantaRepository, alcance AlcanceService) PlantaService {
	return &plantaService{hileras: hileras, plantas: plantas, alcance: alcance}
}

func (s *plantaService) buscar(ctx context.Context, usuarioID string, id int64) (*model.PlantaDetalle, error) {
	sucursales, err := s.alcance.Sucursales(ctx, usuarioID)
	if err != nil {
		return nil, err
	}
	p, err := s.plantas.FindEnAlcance(ctx, id, sucursales)
	if err != nil {
		return nil, siNoExiste(err, msgPlantaNoEncontrada)
	}
	return p, nil
}

func (s *plantaService) hileraEnAlcance(ctx context.Context, usuarioID string, hileraID int64) error {
	sucursales, err := s.alcance.Sucursales(ctx, usuarioID)
	if err != nil {
		return err
	}
	_, err = s.hileras.FindEnAlcance(ctx, hileraID, sucursales)
	return siNoExiste(err, msgHileraNoEncontrada)
}

func (s *plantaService) Listar(ctx context.Context, usuarioID string, hileraID int64) ([]dto.PlantaResponse, error) {
	if err := s.hileraEnAlcance(ctx, usuarioID, hileraID); err != nil {
		return nil, err
	}
	plantas, err := s.plantas.ListPorHilera(ctx, hileraID)
	if err != nil {
		return nil, err
	}
	return plantasResponse(plantas), nil
}

func (s *plantaService) Obtener(ctx context.Context, usuarioID string, id int64) (*dto.PlantaResponse, error) {
	p, err := s.buscar(ctx, usuarioID, id)
	if err != nil {
		return nil, err
	}
	resp := plantaDetalleResponse(p)
	return &resp, nil
}

func (s *plantaService) Crear(ctx context.Context, usuarioID string, req dto.CrearPlantaRequest) (*dto.PlantaResponse, error) {
	if err := s.hileraEnAlcance(ctx, usuarioID, req.IDHilera); err != nil {
		return nil, err
	}
	ubicacion, err := limpiarUbicacion(req.Ubicacion)
	if err != nil {
		return nil, apierror.Validacion(err.Error())
	}
	numero := req.Planta.String()
	if err := s.verificarNumero(ctx, req.IDHilera, numero, 0); err != nil {
		return nil, err
	}

	ahora := time.Now()
	p := &model.Planta{
		Planta:        numero,
		IDHilera:      req.IDHilera,
		Ubicacion:     ubicacion,
		IDEstado:      model.EstadoActivo,
		FechaCreacion: &ahora,
	}
	if err := s.plantas.Create(ctx, p); err != nil {
		return nil, siDuplicado(err, fmt.Sprintf("Ya existe la planta %s en la hilera", numero))
	}
	resp := plantaResponse(p)
	return &resp, nil
}

func (s *plantaService) Actualizar(ctx context.Context, usuarioID string, id int64, req dto.ActualizarPlantaRequest) (*dto.PlantaResponse, error) {
	p, err := s.buscar(ctx, usuarioID, id)
	if err != nil {
		return nil, err
	}

	cambios := map[string]interface{}{}
	if req.Planta != nil {
		numero := req.Planta.String()
		if err := s.verificarNumero(ctx, p.IDHilera, numero, id); err != nil {
			return nil, err
		}
		cambios["planta"] = numero
	}
	if req.Ubicacion != nil {
		ubicacion, err := limpiarUbicacion(req.Ubicacion)
		if err != nil {
			return nil, apierror.Validacion(err.Error())
		}
		cambios["ubicacion"] = ubicacion
	}
	if len(cambios) == 0 {
		return nil, apierror.Validacion("No hay campos para actualizar")
	}
	if err := s.plantas.Update(ctx, id, cambios); err != nil {
		return nil, siDuplicado(err, "Ya existe la planta en la hilera")
	}
	return s.Obtener(ctx, usuarioID, id)
}

// Eliminar is blocked while inspection records reference the plant.
func (s *plantaService) Eliminar(ctx context.Context, usuarioID string, id int64) error {
	if _, err := s.buscar(ctx, usuarioID, id); err != nil {
		return err
	}
	tiene, err := s.plantas.TieneRegistros(ctx, id)
	if err != nil {
		return err
	}
	if tiene {
		return apierror.Validacion("No se puede eliminar la planta: tiene registros de mapeo asociados")
	}
	return s.plantas.SoftDelete(ctx, id)
}

func (s *plantaService) Buscar(ctx context.Context, usuarioID string, f dto.BuscarPlantaFilter) ([]dto.PlantaResponse, error) {
	sucursales, err := s.alcance.Sucursales(ctx, usuarioID)
	if err != nil {
		return nil, err
	}
	plantas, err := s.plantas.Buscar(ctx, f, sucursales)
	if err != nil {
		return nil, err
	}
	return plantasDetalleResponse(plantas), nil
}

func (s *plantaService) verificarNumero(ctx context.Context, hileraID int64, numero string, excluirID int64) error {
	existe, err := s.plantas.ExisteNumero(ctx, hileraID, numero, excluirID)
	if err != nil {
		return err
	}
	if existe {
		return apierror.Conflicto(fmt.Sprintf("Ya existe la planta %s en la hilera", numero))
	}
	return nil
}
