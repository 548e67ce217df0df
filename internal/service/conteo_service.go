package service

import (
	"context"

	"github.com/soporte-code/API-PORTALWEB/internal/apierror"
	"github.com/soporte-code/API-PORTALWEB/internal/dto"
	"github.com/soporte-code/API-PORTALWEB/internal/model"
	"github.com/soporte-code/API-PORTALWEB/internal/repository"
)

type ConteoService interface {
	ListarAtributos(ctx context.Context) ([]dto.AtributoResponse, error)

	ListarOptimos(ctx context.Context, atributoID *int64) ([]dto.AtributoOptimoResponse, error)
	ObtenerOptimo(ctx context.Context, id int64) (*dto.AtributoOptimoResponse, error)
	CrearOptimo(ctx context.Context, req dto.AtributoOptimoRequest) (*dto.AtributoOptimoResponse, error)
	ActualizarOptimo(ctx context.Context, id int64, req dto.ActualizarAtributoOptimoRequest) (*dto.AtributoOptimoResponse, error)
	EliminarOptimo(ctx context.Context, id int64) error

	ListarAtributoEspecie(ctx context.Context, especieID *int64) ([]dto.AtributoEspecieResponse, error)
	ObtenerAtributoEspecie(ctx context.Context, id int64) (*dto.AtributoEspecieResponse, error)
	CrearAtributoEspecie(ctx context.Context, req dto.AtributoEspecieRequest) (*dto.AtributoEspecieResponse, error)
	ActualizarAtributoEspecie(ctx context.Context, id int64, req dto.ActualizarAtributoEspecieRequest) (*dto.AtributoEspecieResponse, error)
	EliminarAtributoEspecie(ctx context.Context, id int64) error
}

type conteoService struct {
	repo     repository.ConteoRepository
	especies repository.EspecieRepository
}

func NewConteoService(repo repository.ConteoRepository, especies repository.EspecieRepository) ConteoService {
	return &conteoService{repo: repo, especies: especies}
}

func optimoResponse(o *model.AtributoOptimo) dto.AtributoOptimoResponse {
	return dto.AtributoOptimoResponse{
		ID: o.ID, IDAtributo: o.IDAtributo, EdadMin: o.EdadMin, EdadMax: o.EdadMax,
		OptimoHa: o.OptimoHa, MinHa: o.MinHa, MaxHa: o.MaxHa, IDEstado: o.IDEstado,
	}
}

func atributoEspecieResponse(ae *model.AtributoEspecie) dto.AtributoEspecieResponse {
	return dto.AtributoEspecieResponse{ID: ae.ID, IDAtributo: ae.IDAtributo, IDEspecie: ae.IDEspecie, IDEstado: ae.IDEstado}
}

func (s *conteoService) ListarAtributos(ctx context.Context) ([]dto.AtributoResponse, error) {
	atributos, err := s.repo.ListAtributos(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.AtributoResponse, len(atributos))
	for i, a := range atributos {
		resp[i] = dto.AtributoResponse{ID: a.ID, Nombre: a.Nombre}
	}
	return resp, nil
}

func (s *conteoService) ListarOptimos(ctx context.Context, atributoID *int64) ([]dto.AtributoOptimoResponse, error) {
	optimos, err := s.repo.ListOptimos(ctx, atributoID)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.AtributoOptimoResponse, len(optimos))
	for i := range optimos {
		resp[i] = optimoResponse(&optimos[i])
	}
	return resp, nil
}

func (s *conteoService) ObtenerOptimo(ctx context.Context, id int64) (*dto.AtributoOptimoResponse, error) {
	o, err := s.repo.FindOptimo(ctx, id)
	if err != nil {
		return nil, siNoExiste(err, "Atributo optimo no encontrado")
	}
	resp := optimoResponse(o)
	return &resp, nil
}

func (s *conteoService) CrearOptimo(ctx context.Context, req dto.AtributoOptimoRequest) (*dto.AtributoOptimoResponse, error) {
	o := &model.AtributoOptimo{
		IDAtributo: req.IDAtributo,
		EdadMin:    req.EdadMin,
		EdadMax:    req.EdadMax,
		OptimoHa:   req.OptimoHa,
		MinHa:      req.MinHa,
		MaxHa:      req.MaxHa,
		IDEstado:   model.EstadoActivo,
	}
	if err := s.validarOptimo(ctx, o); err != nil {
		return nil, err
	}
	if err := s.repo.CreateOptimo(ctx, o); err != nil {
		return nil, err
	}
	resp := optimoResponse(o)
	return &resp, nil
}

// ActualizarOptimo re-checks the ranges on the merged values.
func (s *conteoService) ActualizarOptimo(ctx context.Context, id int64, req dto.ActualizarAtributoOptimoRequest) (*dto.AtributoOptimoResponse, error) {
	o, err := s.repo.FindOptimo(ctx, id)
	if err != nil {
		return nil, siNoExiste(err, "Atributo optimo no encontrado")
	}
	cambios := map[string]interface{}{}
	if req.IDAtributo != nil {
		o.IDAtributo, cambios["id_atributo"] = *req.IDAtributo, *req.IDAtributo
	}
	if req.EdadMin != nil {
		o.EdadMin, cambios["edad_min"] = *req.EdadMin, *req.EdadMin
	}
	if req.EdadMax != nil {
		o.EdadMax, cambios["edad_max"] = *req.EdadMax, *req.EdadMax
	}
	if req.OptimoHa != nil {
		o.OptimoHa, cambios["optimo_ha"] = *req.OptimoHa, *req.OptimoHa
	}
	if req.MinHa != nil {
		o.MinHa, cambios["min_ha"] = *req.MinHa, *req.MinHa
	}
	if req.MaxHa != nil {
		o.MaxHa, cambios["max_ha"] = *req.MaxHa, *req.MaxHa
	}
	if req.IDEstado != nil {
		o.IDEstado, cambios["id_estado"] = *req.IDEstado, *req.IDEstado
	}
	if len(cambios) == 0 {
		return nil, apierror.Validacion("No hay campos para actualizar")
	}
	if err := s.validarOptimo(ctx, o); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateOptimo(ctx, id, cambios); err != nil {
		return nil, err
	}
	resp := optimoResponse(o)
	return &resp, nil
}

func (s *conteoService) EliminarOptimo(ctx context.Context, id int64) error {
	if _, err := s.repo.FindOptimo(ctx, id); err != nil {
		return siNoExiste(err, "Atributo optimo no encontrado")
	}
	return s.repo.SoftDeleteOptimo(ctx, id)
}

func (s *conteoService) validarOptimo(ctx context.Context, o *model.AtributoOptimo) error {
	if o.EdadMin > o.EdadMax {
		return apierror.Validacion("edad_min no puede ser mayor que edad_max")
	}
	if o.MinHa.GreaterThan(o.MaxHa) {
		return apierror.Validacion("min_ha no puede ser mayor que max_ha")
	}
	if _, err := s.repo.FindAtributo(ctx, o.IDAtributo); err != nil {
		if errorDeBusqueda(err) {
			return err
		}
		return apierror.Validacion("El atributo no existe")
	}
	return nil
}

func (s *conteoService) ListarAtributoEspecie(ctx context.Context, especieID *int64) ([]dto.AtributoEspecieResponse, error) {
	pares, err := s.repo.ListAtributoEspecie(ctx, especieID)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.AtributoEspecieResponse, len(pares))
	for i := range pares {
		resp[i] = atributoEspecieResponse(&pares[i])
	}
	return resp, nil
}

func (s *conteoService) ObtenerAtributoEspecie(ctx context.Context, id int64) (*dto.AtributoEspecieResponse, error) {
	ae, err := s.repo.FindAtributoEspecie(ctx, id)
	if err != nil {
		return nil, siNoExiste(err, "Relacion atributo-especie no encontrada")
	}
	resp := atributoEspecieResponse(ae)
	return &resp, nil
}

func (s *conteoService) CrearAtributoEspecie(ctx context.Context, req dto.AtributoEspecieRequest) (*dto.AtributoEspecieResponse, error) {
	ae := &model.AtributoEspecie{IDAtributo: req.IDAtributo, IDEspecie: req.IDEspecie, IDEstado: model.EstadoActivo}
	if err := s.validarAtributoEspecie(ctx, ae, 0); err != nil {
		return nil, err
	}
	if err := s.repo.CreateAtributoEspecie(ctx, ae); err != nil {
		return nil, err
	}
	resp := atributoEspecieResponse(ae)
	return &resp, nil
}

func (s *conteoService) ActualizarAtributoEspecie(ctx context.Context, id int64, req dto.ActualizarAtributoEspecieRequest) (*dto.AtributoEspecieResponse, error) {
	ae, err := s.repo.FindAtributoEspecie(ctx, id)
	if err != nil {
		return nil, siNoExiste(err, "Relacion atributo-especie no encontrada")
	}
	cambios := map[string]interface{}{}
	if req.IDAtributo != nil {
		ae.IDAtributo, cambios["id_atributo"] = *req.IDAtributo, *req.IDAtributo
	}
	if req.IDEspecie != nil {
		ae.IDEspecie, cambios["id_especie"] = *req.IDEspecie, *req.IDEspecie
	}
	if req.IDEstado != nil {
		ae.IDEstado, cambios["id_estado"] = *req.IDEstado, *req.IDEstado
	}
	if len(cambios) == 0 {
		return nil, apierror.Validacion("No hay campos para actualizar")
	}
	if err := s.validarAtributoEspecie(ctx, ae, id); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateAtributoEspecie(ctx, id, cambios); err != nil {
		return nil, err
	}
	resp := atributoEspecieResponse(ae)
	return &resp, nil
}

func (s *conteoService) EliminarAtributoEspecie(ctx context.Context, id int64) error {
	if _, err := s.repo.FindAtributoEspecie(ctx, id); err != nil {
		return siNoExiste(err, "Relacion atributo-especie no encontrada")
	}
	return s.repo.SoftDeleteAtributoEspecie(ctx, id)
}

// validarAtributoEspecie checks references and that the pair is not already
// active under another id.
func (s *conteoService) validarAtributoEspecie(ctx context.Context, ae *model.AtributoEspecie, excluirID int64) error {
	if _, err := s.repo.FindAtributo(ctx, ae.IDAtributo); err != nil {
		if errorDeBusqueda(err) {
			return err
		}
		return apierror.Validacion("El atributo no existe")
	}
	if _, err := s.especies.FindEspecie(ctx, ae.IDEspecie); err != nil {
		if errorDeBusqueda(err) {
			return err
		}
		return apierror.Validacion("La especie no existe")
	}
	if ae.IDEstado != model.EstadoActivo {
		return nil
	}
	existe, err := s.repo.ExisteAtributoEspecie(ctx, ae.IDAtributo, ae.IDEspecie, excluirID)
	if err != nil {
		return err
	}
	if existe {
		return apierror.Conflicto("El atributo ya esta asociado a la especie")
	}
	return nil
}
