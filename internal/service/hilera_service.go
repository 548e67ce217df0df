package service

import (
	"context"
	"fmt"
	"time"

	"github.com/soporte-code/API-PORTALWEB/internal/apierror"
	"github.com/soporte-code/API-PORTALWEB/internal/dto"
	"github.com/soporte-code/API-PORTALWEB/internal/model"
	"github.com/soporte-code/API-PORTALWEB/internal/repository"

	"gorm.io/gorm"
)

const msgHileraNoEncontrada = "Hilera no encontrada"

type HileraService interface {
	Listar(ctx context.Context, usuarioID string, cuartelID int64) ([]dto.HileraResponse, error)
	Obtener(ctx context.Context, usuarioID string, id int64) (*dto.HileraResponse, error)
	Crear(ctx context.Context, usuarioID string, req dto.CrearHileraRequest) (*dto.HileraResponse, error)
	Actualizar(ctx context.Context, usuarioID string, id int64, req dto.ActualizarHileraRequest) (*dto.HileraResponse, error)
	Eliminar(ctx context.Context, usuarioID string, id int64) error
	Plantas(ctx context.Context, usuarioID string, id int64) ([]dto.PlantaResponse, error)
}

type hileraService struct {
	cuarteles repository.CuartelRepository
	hileras   repository.HileraRepository
	plantas   repository.PlantaRepository
	alcance   AlcanceService
}

func NewHileraService(
	cuarteles repository.CuartelRepository,
	hileras repository.HileraRepository,
	plantas repository.PlantaRepository,
	alcance AlcanceService,
) HileraService {
	return &hileraService{cuarteles: cuarteles, hileras: hileras, plantas: plantas, alcance: alcance}
}

func (s *hileraService) buscar(ctx context.Context, usuarioID string, id int64) (*model.Hilera, error) {
	sucursales, err := s.alcance.Sucursales(ctx, usuarioID)
	if err != nil {
		return nil, err
	}
	h, err := s.hileras.FindEnAlcance(ctx, id, sucursales)
	if err != nil {
		return nil, siNoExiste(err, msgHileraNoEncontrada)
	}
	return h, nil
}

func (s *hileraService) cuartelEnAlcance(ctx context.Context, usuarioID string, cuartelID int64) error {
	sucursales, err := s.alcance.Sucursales(ctx, usuarioID)
	if err != nil {
		return err
	}
	_, err = s.cuarteles.FindEnAlcance(ctx, cuartelID, sucursales)
	return siNoExiste(err, msgCuartelNoEncontrado)
}

func (s *hileraService) Listar(ctx context.Context, usuarioID string, cuartelID int64) ([]dto.HileraResponse, error) {
	if err := s.cuartelEnAlcance(ctx, usuarioID, cuartelID); err != nil {
		return nil, err
	}
	hileras, err := s.hileras.ListPorCuarteles(ctx, cuartelID)
	if err != nil {
		return nil, err
	}
	return hilerasConteo(hileras), nil
}

func (s *hileraService) Obtener(ctx context.Context, usuarioID string, id int64) (*dto.HileraResponse, error) {
	h, err := s.buscar(ctx, usuarioID, id)
	if err != nil {
		return nil, err
	}
	resp := hileraResponse(h)
	return &resp, nil
}

// Crear adds one row and keeps the field's n_hileras in sync.
func (s *hileraService) Crear(ctx context.Context, usuarioID string, req dto.CrearHileraRequest) (*dto.HileraResponse, error) {
	if err := s.cuartelEnAlcance(ctx, usuarioID, req.IDCuartel); err != nil {
		return nil, err
	}
	numero := req.Hilera.String()
	existe, err := s.hileras.ExisteNumero(ctx, req.IDCuartel, numero, 0)
	if err != nil {
		return nil, err
	}
	if existe {
		return nil, apierror.Conflicto(fmt.Sprintf("Ya existe la hilera %s en el cuartel", numero))
	}

	ahora := time.Now()
	nueva := []model.Hilera{{Hilera: numero, IDCuartel: req.IDCuartel, IDEstado: model.EstadoActivo, FechaCreacion: &ahora}}
	err = runTx(ctx, s.cuarteles.DB(), func(tx *gorm.DB) error {
		if err := s.hileras.CreateTx(tx, nueva); err != nil {
			return err
		}
		return s.sincronizarConteo(tx, req.IDCuartel)
	})
	if err != nil {
		return nil, siDuplicado(err, fmt.Sprintf("Ya existe la hilera %s en el cuartel", numero))
	}
	resp := hileraResponse(&nueva[0])
	return &resp, nil
}

func (s *hileraService) Actualizar(ctx context.Context, usuarioID string, id int64, req dto.ActualizarHileraRequest) (*dto.HileraResponse, error) {
	h, err := s.buscar(ctx, usuarioID, id)
	if err != nil {
		return nil, err
	}
	numero := req.Hilera.String()
	existe, err := s.hileras.ExisteNumero(ctx, h.IDCuartel, numero, id)
	if err != nil {
		return nil, err
	}
	if existe {
		return nil, apierror.Conflicto(fmt.Sprintf("Ya existe la hilera %s en el cuartel", numero))
	}
	if err := s.hileras.UpdateNumero(ctx, id, numero); err != nil {
		return nil, siDuplicado(err, fmt.Sprintf("Ya existe la hilera %s en el cuartel", numero))
	}
	h.Hilera = numero
	resp := hileraResponse(h)
	return &resp, nil
}

// Eliminar is blocked while the row has active plants. The cascading delete
// lives in CargaMasivaService.EliminarHileraCascada.
func (s *hileraService) Eliminar(ctx context.Context, usuarioID string, id int64) error {
	h, err := s.buscar(ctx, usuarioID, id)
	if err != nil {
		return err
	}
	n, err := s.plantas.CountActivas(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return apierror.Validacion(fmt.Sprintf("No se puede eliminar la hilera: tiene %d plantas activas", n))
	}
	return runTx(ctx, s.cuarteles.DB(), func(tx *gorm.DB) error {
		if err := s.hileras.SoftDeleteTx(tx, id); err != nil {
			return err
		}
		return s.sincronizarConteo(tx, h.IDCuartel)
	})
}

func (s *hileraService) Plantas(ctx context.Context, usuarioID string, id int64) ([]dto.PlantaResponse, error) {
	if _, err := s.buscar(ctx, usuarioID, id); err != nil {
		return nil, err
	}
	plantas, err := s.plantas.ListPorHilera(ctx, id)
	if err != nil {
		return nil, err
	}
	return plantasResponse(plantas), nil
}

func (s *hileraService) sincronizarConteo(tx *gorm.DB, cuartelID int64) error {
	n, err := s.hileras.CountActivasTx(tx, cuartelID)
	if err != nil {
		return err
	}
	return s.cuarteles.SetNHilerasTx(tx, cuartelID, int(n))
}
