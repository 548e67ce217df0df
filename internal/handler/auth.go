package handler

import (
	"net/http"

	"github.com/soporte-code/API-PORTALWEB/internal/dto"
	"github.com/soporte-code/API-PORTALWEB/internal/service"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct{ svc service.AuthService }

func NewAuthHandler(svc service.AuthService) *AuthHandler { return &AuthHandler{svc: svc} }

// Login godoc
// @Summary Login de usuario
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.LoginRequest true "Credenciales"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} apierror.APIError
// @Failure 401 {object} apierror.APIError
// @Router /api/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Login(c.Request.Context(), req)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Refresh godoc
// @Summary Nuevo token de acceso a partir del token de refresco
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.LoginResponse
// @Failure 401 {object} apierror.APIError
// @Router /api/auth/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	resp, err := h.svc.Refresh(c.Request.Context(), usuarioID(c))
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AuthHandler) CambiarClave(c *gin.Context) {
	var req dto.CambiarClaveRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.CambiarClave(c.Request.Context(), usuarioID(c), req); err != nil {
		responderError(c, err)
		return
	}
	ok(c, http.StatusOK, "Clave actualizada", nil)
}

func (h *AuthHandler) CambiarSucursal(c *gin.Context) {
	var req dto.CambiarSucursalRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CambiarSucursal(c.Request.Context(), usuarioID(c), req)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AuthHandler) Me(c *gin.Context) {
	resp, err := h.svc.Me(c.Request.Context(), usuarioID(c))
	if err != nil {
		responderError(c, err)
		return
	}
	ok(c, http.StatusOK, "", resp)
}

func (h *AuthHandler) ActualizarMe(c *gin.Context) {
	var req dto.ActualizarPerfilRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.ActualizarMe(c.Request.Context(), usuarioID(c), req)
	if err != nil {
		responderError(c, err)
		return
	}
	ok(c, http.StatusOK, "Perfil actualizado", resp)
}

// ── Usuarios Handler ─────────────────────────────────────────────────────────

type UsuariosHandler struct{ svc service.UsuarioService }

func NewUsuariosHandler(svc service.UsuarioService) *UsuariosHandler {
	return &UsuariosHandler{svc: svc}
}

func (h *UsuariosHandler) Listar(c *gin.Context) {
	resp, err := h.svc.Listar(c.Request.Context())
	if err != nil {
		responderError(c, err)
		return
	}
	ok(c, http.StatusOK, "", resp)
}

func (h *UsuariosHandler) Obtener(c *gin.Context) {
	resp, err := h.svc.Obtener(c.Request.Context(), c.Param("id"))
	if err != nil {
		responderError(c, err)
		return
	}
	ok(c, http.StatusOK, "", resp)
}

func (h *UsuariosHandler) Crear(c *gin.Context) {
	var req dto.CrearUsuarioRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Crear(c.Request.Context(), req)
	if err != nil {
		responderError(c, err)
		return
	}
	ok(c, http.StatusCreated, "Usuario creado", resp)
}

func (h *UsuariosHandler) Actualizar(c *gin.Context) {
	var req dto.ActualizarUsuarioRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Actualizar(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		responderError(c, err)
		return
	}
	ok(c, http.StatusOK, "Usuario actualizado", resp)
}

func (h *UsuariosHandler) Eliminar(c *gin.Context) {
	if err := h.svc.Eliminar(c.Request.Context(), c.Param("id")); err != nil {
		responderError(c, err)
		return
	}
	ok(c, http.StatusOK, "Usuario eliminado", nil)
}

func (h *UsuariosHandler) Perfiles(c *gin.Context) {
	resp, err := h.svc.Perfiles(c.Request.Context())
	if err != nil {
		responderError(c, err)
		return
	}
	ok(c, http.StatusOK, "", resp)
}

func (h *UsuariosHandler) Sucursales(c *gin.Context) {
	resp, err := h.svc.SucursalesCampo(c.Request.Context())
	if err != nil {
		responderError(c, err)
		return
	}
	ok(c, http.StatusOK, "", resp)
}

func (h *UsuariosHandler) SucursalesPermitidas(c *gin.Context) {
	resp, err := h.svc.SucursalesDeUsuario(c.Request.Context(), c.Param("id"))
	if err != nil {
		responderError(c, err)
		return
	}
	ok(c, http.StatusOK, "", resp)
}

// AsignarSucursales replaces the whole set of allowed branches.
func (h *UsuariosHandler) AsignarSucursales(c *gin.Context) {
	var req dto.AsignarSucursalesRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.AsignarSucursales(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		responderError(c, err)
		return
	}
	ok(c, http.StatusOK, "Sucursales asignadas", resp)
}

func (h *UsuariosHandler) QuitarSucursales(c *gin.Context) {
	n, err := h.svc.QuitarSucursales(c.Request.Context(), c.Param("id"))
	if err != nil {
		responderError(c, err)
		return
	}
	ok(c, http.StatusOK, "Sucursales eliminadas", gin.H{"eliminadas": n})
}

// MisSucursales lists the caller's own branches (/api/opciones/sucursales).
func (h *UsuariosHandler) MisSucursales(c *gin.Context) {
	resp, err := h.svc.SucursalesDeUsuario(c.Request.Context(), usuarioID(c))
	if err != nil {
		responderError(c, err)
		return
	}
	ok(c, http.StatusOK, "", resp)
}
