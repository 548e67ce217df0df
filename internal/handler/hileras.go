package handler

import (
	"net/http"

	"github.com/soporte-code/API-PORTALWEB/internal/apierror"
	"github.com/soporte-code/API-PORTALWEB/internal/dto"
	"github.com/soporte-code/API-PORTALWEB/internal/service"

	"github.com/gin-gonic/gin"
)

type HilerasHandler struct{ svc service.HileraService }

func NewHilerasHandler(svc service.HileraService) *HilerasHandler {
	return &HilerasHandler{svc: svc}
}

// Listar requires ?id_cuartel.
func (h *HilerasHandler) Listar(c *gin.Context) {
	cuartelID, valido := queryID(c, "id_cuartel")
	if !valido {
		return
	}
	if cuartelID == nil {
		c.JSON(http.StatusBadRequest, apierror.New("id_cuartel es requerido"))
		return
	}
	resp, err := h.svc.Listar(c.Request.Context(), usuarioID(c), *cuartelID)
	if err != nil {
		responderError(c, err)
		return
	}
	ok(c, http.StatusOK, "", resp)
}

func (h *HilerasHandler) Obtener(c *gin.Context) {
	id, valido := idParam(c, "id")
	if !valido {
		return
	}
	resp, err := h.svc.Obtener(c.Request.Context(), usuarioID(c), id)
	if err != nil {
		responderError(c, err)
		return
	}
	ok(c, http.StatusOK, "", resp)
}

func (h *HilerasHandler) Crear(c *gin.Context) {
	var req dto.CrearHileraRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Crear(c.Request.Context(), usuarioID(c), req)
	if err != nil {
		responderError(c, err)
		return
	}
	ok(c, http.StatusCreated, "Hilera creada", resp)
}

func (h *HilerasHandler) Actualizar(c *gin.Context) {
	id, valido := idParam(c, "id")
	if !valido {
		return
	}
	var req dto.ActualizarHileraRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Actualizar(c.Request.Context(), usuarioID(c), id, req)
	if err != nil {
		responderError(c, err)
		return
	}
	ok(c, http.StatusOK, "Hilera actualizada", resp)
}

func (h *HilerasHandler) Eliminar(c *gin.Context) {
	id, valido := idParam(c, "id")
	if !valido {
		return
	}
	if err := h.svc.Eliminar(c.Request.Context(), usuarioID(c), id); err != nil {
		responderError(c, err)
		return
	}
	ok(c, http.StatusOK, "Hilera eliminada", nil)
}

func (h *HilerasHandler) Plantas(c *gin.Context) {
	id, valido := idParam(c, "id")
	if !valido {
		return
	}
	resp, err := h.svc.Plantas(c.Request.Context(), usuarioID(c), id)
	if err != nil {
		responderError(c, err)
		return
	}
	ok(c, http.StatusOK, "", resp)
}
