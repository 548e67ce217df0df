package handler

import (
	"net/http"

	"github.com/soporte-code/API-PORTALWEB/internal/apierror"
	"github.com/soporte-code/API-PORTALWEB/internal/dto"
	"github.com/soporte-code/API-PORTALWEB/internal/service"

	"github.com/gin-gonic/gin"
)

type PlantasHandler struct {
	svc   service.PlantaService
	carga service.CargaMasivaService
}

func NewPlantasHandler(svc service.PlantaService, carga service.CargaMasivaService) *PlantasHandler {
	return &PlantasHandler{svc: svc, carga: carga}
}

func (h *PlantasHandler) Listar(c *gin.Context) {
	hileraID, valido := queryID(c, "id_hilera")
	if !valido {
		return
	}
	if hileraID == nil {
		c.JSON(http.StatusBadRequest, apierror.New("id_hilera es requerido"))
		return
	}
	resp, err := h.svc.Listar(c.Request.Context(), usuarioID(c), *hileraID)
	if err != nil {
		responderError(c, err)
		return
	}
	ok(c, http.StatusOK, "", resp)
}

func (h *PlantasHandler) Obtener(c *gin.Context) {
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

func (h *PlantasHandler) Crear(c *gin.Context) {
	var req dto.CrearPlantaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Crear(c.Request.Context(), usuarioID(c), req)
	if err != nil {
		responderError(c, err)
		return
	}
	ok(c, http.StatusCreated, "Planta creada", resp)
}

func (h *PlantasHandler) Actualizar(c *gin.Context) {
	id, valido := idParam(c, "id")
	if !valido {
		return
	}
	var req dto.ActualizarPlantaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Actualizar(c.Request.Context(), usuarioID(c), id, req)
	if err != nil {
		responderError(c, err)
		return
	}
	ok(c, http.StatusOK, "Planta actualizada", resp)
}

func (h *PlantasHandler) Eliminar(c *gin.Context) {
	id, valido := idParam(c, "id")
	if !valido {
		return
	}
	if err := h.svc.Eliminar(c.Request.Context(), usuarioID(c), id); err != nil {
		responderError(c, err)
		return
	}
	ok(c, http.StatusOK, "Planta eliminada", nil)
}

func (h *PlantasHandler) Buscar(c *gin.Context) {
	var f dto.BuscarPlantaFilter
	if err := c.ShouldBindQuery(&f); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.Buscar(c.Request.Context(), usuarioID(c), f)
	if err != nil {
		responderError(c, err)
		return
	}
	ok(c, http.StatusOK, "", resp)
}

func (h *PlantasHandler) Bulk(c *gin.Context) {
	var req dto.BulkPlantasRequest
	if !bindAndValidate(c, &req) {
		return
	}
	rep, err := h.carga.BulkPlantas(c.Request.Context(), usuarioID(c), req)
	responderCarga(c, rep, err)
}
