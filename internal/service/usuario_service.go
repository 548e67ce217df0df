package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/soporte-code/API-PORTALWEB/internal/apierror"
	"github.com/soporte-code/API-PORTALWEB/internal/config"
	"github.com/soporte-code/API-PORTALWEB/internal/dto"
	"github.com/soporte-code/API-PORTALWEB/internal/model"
	"github.com/soporte-code/API-PORTALWEB/internal/repository"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Valores por defecto de un usuario nuevo.
const (
	rolPorDefecto    = 3
	perfilPorDefecto = 1
)

type UsuarioService interface {
	Listar(ctx context.Context) ([]dto.UsuarioResponse, error)
	Obtener(ctx context.Context, id string) (*dto.UsuarioResponse, error)
	Crear(ctx context.Context, req dto.CrearUsuarioRequest) (*dto.UsuarioResponse, error)
	Actualizar(ctx context.Context, id string, req dto.ActualizarUsuarioRequest) (*dto.UsuarioResponse, error)
	Eliminar(ctx context.Context, id string) error
	Perfiles(ctx context.Context) ([]dto.PerfilResponse, error)
	SucursalesCampo(ctx context.Context) ([]dto.SucursalResponse, error)
	SucursalesDeUsuario(ctx context.Context, id string) ([]dto.SucursalResponse, error)
	AsignarSucursales(ctx context.Context, id string, req dto.AsignarSucursalesRequest) ([]dto.SucursalResponse, error)
	QuitarSucursales(ctx context.Context, id string) (int64, error)
}

type usuarioService struct {
	usuarios   repository.UsuarioRepository
	sucursales repository.SucursalRepository
	alcance    AlcanceService
	cfg        *config.Config
}

func NewUsuarioService(
	usuarios repository.UsuarioRepository,
	sucursales repository.SucursalRepository,
	alcance AlcanceService,
	cfg *config.Config,
) UsuarioService {
	return &usuarioService{usuarios: usuarios, sucursales: sucursales, alcance: alcance, cfg: cfg}
}

func (s *usuarioService) Listar(ctx context.Context) ([]dto.UsuarioResponse, error) {
	users, err := s.usuarios.List(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.UsuarioResponse, len(users))
	for i := range users {
		resp[i] = usuarioResponse(&users[i])
	}
	return resp, nil
}

func (s *usuarioService) Obtener(ctx context.Context, id string) (*dto.UsuarioResponse, error) {
	u, err := s.usuarios.FindByID(ctx, id)
	if err != nil {
		return nil, siNoExiste(err, "Usuario no encontrado")
	}
	resp := usuarioResponse(u)
	return &resp, nil
}

func (s *usuarioService) Crear(ctx context.Context, req dto.CrearUsuarioRequest) (*dto.UsuarioResponse, error) {
	usuario := strings.TrimSpace(req.Usuario)
	if err := s.verificarUnicos(ctx, usuario, req.Correo, ""); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Clave), bcryptCost)
	if err != nil {
		return nil, err
	}
	ahora := time.Now()
	u := &model.Usuario{
		ID:               uuid.NewString(),
		Usuario:          usuario,
		Nombre:           strings.TrimSpace(req.Nombre),
		ApellidoPaterno:  strings.TrimSpace(req.ApellidoPaterno),
		ApellidoMaterno:  req.ApellidoMaterno,
		Clave:            string(hash),
		Correo:           req.Correo,
		IDSucursalActiva: req.IDSucursalActiva,
		IDEstado:         valorOr(req.IDEstado, model.EstadoActivo),
		IDRol:            valorOr(req.IDRol, rolPorDefecto),
		IDPerfil:         valorOr(req.IDPerfil, perfilPorDefecto),
		FechaCreacion:    &ahora,
	}
	if err := s.usuarios.CreateConApp(ctx, u, s.cfg.AppID); err != nil {
		return nil, siDuplicado(err, "El usuario ya existe")
	}
	resp := usuarioResponse(u)
	return &resp, nil
}

func (s *usuarioService) Actualizar(ctx context.Context, id string, req dto.ActualizarUsuarioRequest) (*dto.UsuarioResponse, error) {
	if _, err := s.usuarios.FindByID(ctx, id); err != nil {
		return nil, siNoExiste(err, "Usuario no encontrado")
	}

	cambios := map[string]interface{}{}
	if req.Nombre != nil {
		cambios["nombre"] = strings.TrimSpace(*req.Nombre)
	}
	if req.ApellidoPaterno != nil {
		cambios["apellido_paterno"] = strings.TrimSpace(*req.ApellidoPaterno)
	}
	if req.ApellidoMaterno != nil {
		cambios["apellido_materno"] = strings.TrimSpace(*req.ApellidoMaterno)
	}
	if req.Correo != nil {
		if err := s.verificarUnicos(ctx, "", *req.Correo, id); err != nil {
			return nil, err
		}
		cambios["correo"] = *req.Correo
	}
	if req.IDEstado != nil {
		cambios["id_estado"] = *req.IDEstado
	}
	if req.IDRol != nil {
		cambios["id_rol"] = *req.IDRol
	}
	if req.IDPerfil != nil {
		cambios["id_perfil"] = *req.IDPerfil
	}
	if req.IDSucursalActiva != nil {
		cambios["id_sucursalactiva"] = *req.IDSucursalActiva
	}
	if req.Clave != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Clave), bcryptCost)
		if err != nil {
			return nil, err
		}
		cambios["clave"] = string(hash)
	}
	if len(cambios) == 0 {
		return nil, apierror.Validacion("No hay campos para actualizar")
	}

	if err := s.usuarios.Update(ctx, id, cambios); err != nil {
		return nil, siDuplicado(err, "El correo ya esta registrado")
	}
	return s.Obtener(ctx, id)
}

func (s *usuarioService) Eliminar(ctx context.Context, id string) error {
	if _, err := s.usuarios.FindByID(ctx, id); err != nil {
		return siNoExiste(err, "Usuario no encontrado")
	}
	return s.usuarios.SoftDelete(ctx, id)
}

func (s *usuarioService) Perfiles(ctx context.Context) ([]dto.PerfilResponse, error) {
	perfiles, err := s.usuarios.ListPerfiles(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.PerfilResponse, len(perfiles))
	for i, p := range perfiles {
		resp[i] = dto.PerfilResponse{ID: p.ID, Nombre: p.Nombre}
	}
	return resp, nil
}

func (s *usuarioService) SucursalesCampo(ctx context.Context) ([]dto.SucursalResponse, error) {
	sucursales, err := s.sucursales.ListCampo(ctx)
	if err != nil {
		return nil, err
	}
	return sucursalesResponse(sucursales), nil
}

func (s *usuarioService) SucursalesDeUsuario(ctx context.Context, id string) ([]dto.SucursalResponse, error) {
	sucursales, err := s.sucursales.ListDeUsuario(ctx, id)
	if err != nil {
		return nil, err
	}
	return sucursalesResponse(sucursales), nil
}

// AsignarSucursales replaces the user's memberships with req.SucursalesIDs.
func (s *usuarioService) AsignarSucursales(ctx context.Context, id string, req dto.AsignarSucursalesRequest) ([]dto.SucursalResponse, error) {
	if _, err := s.usuarios.FindByID(ctx, id); err != nil {
		return nil, siNoExiste(err, "Usuario no encontrado")
	}

	ids := unicos(req.SucursalesIDs)
	existentes, err := s.sucursales.ExistentesCampo(ctx, ids)
	if err != nil {
		return nil, err
	}
	var invalidas []string
	for _, sid := range ids {
		if !contiene(existentes, sid) {
			invalidas = append(invalidas, fmt.Sprint(sid))
		}
	}
	if len(invalidas) > 0 {
		return nil, apierror.Validacion("Sucursales invalidas: " + strings.Join(invalidas, ", "))
	}

	if err := s.sucursales.ReemplazarDeUsuario(ctx, id, ids); err != nil {
		return nil, err
	}
	s.alcance.Invalidar(ctx, id)
	return s.SucursalesDeUsuario(ctx, id)
}

func (s *usuarioService) QuitarSucursales(ctx context.Context, id string) (int64, error) {
	if _, err := s.usuarios.FindByID(ctx, id); err != nil {
		return 0, siNoExiste(err, "Usuario no encontrado")
	}
	n, err := s.sucursales.EliminarDeUsuario(ctx, id)
	if err != nil {
		return 0, err
	}
	s.alcance.Invalidar(ctx, id)
	return n, nil
}

func (s *usuarioService) verificarUnicos(ctx context.Context, usuario, correo, excluirID string) error {
	if usuario != "" {
		existe, err := s.usuarios.ExisteUsuario(ctx, usuario, excluirID)
		if err != nil {
			return err
		}
		if existe {
			return apierror.Conflicto("El nombre de usuario ya existe")
		}
	}
	if correo != "" {
		existe, err := s.usuarios.ExisteCorreo(ctx, correo, excluirID)
		if err != nil {
			return err
		}
		if existe {
			return apierror.Conflicto("El correo ya esta registrado")
		}
	}
	return nil
}

func sucursalesResponse(ss []model.Sucursal) []dto.SucursalResponse {
	resp := make([]dto.SucursalResponse, len(ss))
	for i, s := range ss {
		resp[i] = sucursalResponse(s)
	}
	return resp
}

func valorOr[T any](p *T, def T) T {
	if p == nil {
		return def
	}
	return *p
}

func unicos(ids []int64) []int64 {
	vistos := make(map[int64]bool, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if !vistos[id] {
			vistos[id] = true
			out = append(out, id)
		}
	}
	return out
}
