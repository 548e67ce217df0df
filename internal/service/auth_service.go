package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/soporte-code/API-PORTALWEB/internal/apierror"
	"github.com/soporte-code/API-PORTALWEB/internal/config"
	"github.com/soporte-code/API-PORTALWEB/internal/dto"
	"github.com/soporte-code/API-PORTALWEB/internal/model"
	"github.com/soporte-code/API-PORTALWEB/internal/repository"
	"github.com/soporte-code/API-PORTALWEB/internal/worker"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const bcryptCost = 12

var errCredenciales = apierror.NoAutenticado("Credenciales invalidas")

type AuthService interface {
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
	Refresh(ctx context.Context, usuarioID string) (*dto.LoginResponse, error)
	CambiarClave(ctx context.Context, usuarioID string, req dto.CambiarClaveRequest) error
	CambiarSucursal(ctx context.Context, usuarioID string, req dto.CambiarSucursalRequest) (*dto.LoginResponse, error)
	Me(ctx context.Context, usuarioID string) (*dto.UsuarioResponse, error)
	ActualizarMe(ctx context.Context, usuarioID string, req dto.ActualizarPerfilRequest) (*dto.UsuarioResponse, error)
}

type authService struct {
	usuarios   repository.UsuarioRepository
	sucursales repository.SucursalRepository
	alcance    AlcanceService
	dispatcher *worker.Dispatcher
	cfg        *config.Config
}

func NewAuthService(
	usuarios repository.UsuarioRepository,
	sucursales repository.SucursalRepository,
	alcance AlcanceService,
	dispatcher *worker.Dispatcher,
	cfg *config.Config,
) AuthService {
	return &authService{usuarios: usuarios, sucursales: sucursales, alcance: alcance, dispatcher: dispatcher, cfg: cfg}
}

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	login, clave := strings.TrimSpace(req.Login()), req.Secreto()
	if login == "" || clave == "" {
		return nil, apierror.Validacion("Usuario y clave son requeridos")
	}

	user, err := s.usuarios.FindByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errCredenciales
		}
		return nil, err
	}
	if user.IDEstado != model.EstadoActivo {
		return nil, errCredenciales
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Clave), []byte(clave)); err != nil {
		return nil, errCredenciales
	}

	tieneApp, err := s.usuarios.TieneApp(ctx, user.ID, s.cfg.AppID)
	if err != nil {
		return nil, err
	}
	if !tieneApp {
		return nil, apierror.NoAutenticado("El usuario no tiene acceso a esta aplicacion")
	}

	resp, err := s.sesion(ctx, user, true)
	if err != nil {
		return nil, err
	}
	resp.Message = "Login exitoso"
	log.Info().Str("usuario", user.Usuario).Msg("login")
	return resp, nil
}

// Refresh issues a new access token; the refresh token itself was already
// verified by the middleware.
func (s *authService) Refresh(ctx context.Context, usuarioID string) (*dto.LoginResponse, error) {
	user, err := s.usuarios.FindByID(ctx, usuarioID)
	if err != nil || user.IDEstado != model.EstadoActivo {
		return nil, apierror.NoAutenticado("Usuario no encontrado o inactivo")
	}
	resp, err := s.sesion(ctx, user, false)
	if err != nil {
		return nil, err
	}
	resp.Message = "Token renovado"
	return resp, nil
}

func (s *authService) CambiarClave(ctx context.Context, usuarioID string, req dto.CambiarClaveRequest) error {
	user, err := s.usuarios.FindByID(ctx, usuarioID)
	if err != nil {
		return siNoExiste(err, "Usuario no encontrado")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Clave), []byte(req.ClaveActual)); err != nil {
		return apierror.Validacion("La clave actual es incorrecta")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.ClaveNueva), bcryptCost)
	if err != nil {
		return err
	}
	if err := s.usuarios.Update(ctx, usuarioID, map[string]interface{}{"clave": string(hash)}); err != nil {
		return err
	}

	if err := s.dispatcher.EncolarNotificacion(ctx, worker.Notificacion{
		Para:   user.Correo,
		Asunto: "Cambio de clave",
		Cuerpo: "Hola " + user.Nombre + ", tu clave del portal fue modificada el " +
			time.Now().Format("02-01-2006 15:04") + ". Si no fuiste tu, contacta a soporte.",
	}); err != nil {
		log.Warn().Err(err).Msg("no se pudo encolar la notificacion de cambio de clave")
	}
	return nil
}

func (s *authService) CambiarSucursal(ctx context.Context, usuarioID string, req dto.CambiarSucursalRequest) (*dto.LoginResponse, error) {
	ok, err := s.alcance.TieneAcceso(ctx, usuarioID, req.IDSucursal)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apierror.Prohibido("No tienes acceso a esta sucursal")
	}
	if err := s.usuarios.Update(ctx, usuarioID, map[string]interface{}{"id_sucursalactiva": req.IDSucursal}); err != nil {
		return nil, err
	}
	s.alcance.Invalidar(ctx, usuarioID)

	user, err := s.usuarios.FindByID(ctx, usuarioID)
	if err != nil {
		return nil, siNoExiste(err, "Usuario no encontrado")
	}
	resp, err := s.sesion(ctx, user, false)
	if err != nil {
		return nil, err
	}
	resp.Message = "Sucursal actualizada"
	return resp, nil
}

func (s *authService) Me(ctx context.Context, usuarioID string) (*dto.UsuarioResponse, error) {
	user, err := s.usuarios.FindByID(ctx, usuarioID)
	if err != nil {
		return nil, siNoExiste(err, "Usuario no encontrado")
	}
	resp := usuarioResponse(user)
	return &resp, nil
}

func (s *authService) ActualizarMe(ctx context.Context, usuarioID string, req dto.ActualizarPerfilRequest) (*dto.UsuarioResponse, error) {
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
		existe, err := s.usuarios.ExisteCorreo(ctx, *req.Correo, usuarioID)
		if err != nil {
			return nil, err
		}
		if existe {
			return nil, apierror.Conflicto("El correo ya esta registrado")
		}
		cambios["correo"] = *req.Correo
	}
	if len(cambios) == 0 {
		return nil, apierror.Validacion("No hay campos para actualizar")
	}
	if err := s.usuarios.Update(ctx, usuarioID, cambios); err != nil {
		return nil, siDuplicado(err, "El correo ya esta registrado")
	}
	return s.Me(ctx, usuarioID)
}

// sesion builds the login payload for user; the refresh token is only issued
// on login.
func (s *authService) sesion(ctx context.Context, user *model.Usuario, conRefresh bool) (*dto.LoginResponse, error) {
	var sucursalNombre string
	if user.IDSucursalActiva != nil {
		if suc, err := s.sucursales.FindByID(ctx, *user.IDSucursalActiva); err == nil {
			sucursalNombre = suc.Nombre
		}
	}

	access, err := s.generateToken(user, sucursalNombre, "access", time.Duration(s.cfg.JWTAccessHours)*time.Hour)
	if err != nil {
		return nil, err
	}
	resp := &dto.LoginResponse{
		Success:         true,
		AccessToken:     access,
		TokenType:       "bearer",
		ExpiresIn:       s.cfg.JWTAccessHours * 3600,
		Usuario:         user.Usuario,
		Nombre:          user.Nombre,
		ApellidoPaterno: user.ApellidoPaterno,
		IDSucursal:      user.IDSucursalActiva,
		SucursalNombre:  sucursalNombre,
		IDRol:           user.IDRol,
		IDPerfil:        user.IDPerfil,
	}
	if conRefresh {
		if resp.RefreshToken, err = s.generateToken(user, sucursalNombre, "refresh", time.Duration(s.cfg.JWTRefreshHours)*time.Hour); err != nil {
			return nil, err
		}
	}
	return resp, nil
}

func (s *authService) generateToken(user *model.Usuario, sucursalNombre, tipo string, duration time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":             user.ID,
		"rol":             user.IDRol,
		"perfil":          user.IDPerfil,
		"sucursal":        user.IDSucursalActiva,
		"sucursal_nombre": sucursalNombre,
		"typ":             tipo,
		"exp":             now.Add(duration).Unix(),
		"iat":             now.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}
