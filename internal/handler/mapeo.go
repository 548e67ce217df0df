package handler

import (
	"net/http"

	"github.com/soporte-code/API-PORTALWEB/internal/apierror"
	"github.com/soporte-code/API-PORTALWEB/internal/dto"
	"github.com/soporte-code/API-PORTALWEB/internal/service"

	"github.com/gin-gonic/gin"
)

// MapeoHandler serves /api/mapeo: campaigns, row states, inspection records
// and the mapping-side bulk imports.
type MapeoHandler struct {
	svc        service.MapeoService
	cuarteles  service.CuartelService
	carga      service.CargaMasivaService
	plantillas service.PlantillaService
}

func NewMapeoHandler(
	svc service.MapeoService,
	cuarteles service.CuartelService,
	carga service.CargaMasivaService,
	plantillas service.PlantillaService,
) *MapeoHandler {
	return &MapeoHandler{svc: svc, cuarteles: cuarteles, carga: carga, plantillas: plantillas}
}

func (h *MapeoHandler) ListarCampanias(c *gin.Context) {
	resp, err := h.svc.ListarCampanias(c.Request.Context(), usuarioID(c))
	if err != nil {
		responderError(c, err)
		return
	}
	ok(c, http.StatusOK, "", resp)
}

func (h *MapeoHandler) ObtenerCampania(c *gin.Context) {
	resp, err := h.svc.ObtenerCampania(c.Request.Context(), usuarioID(c), c.Param("id"))
	if err != nil {
		responderError(c, err)
		return
	}
	ok(c, http.StatusOK, "", resp)
}

// CrearCampania godoc
// @Summary Abre una campaña de mapeo sobre un cuartel
// @Tags mapeo
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CrearRegistroMapeoRequest true "Campaña"
// @Success 201 {object} dto.Respuesta
// @Failure 400 {object} apierror.APIError
// @Failure 404 {object} apierror.APIError
// @Router /api/mapeo/registros-mapeo [post]
func (h *MapeoHandler) CrearCampania(c *gin.Context) {
	var req dto.CrearRegistroMapeoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	id, err := h.svc.CrearCampania(c.Request.Context(), usuarioID(c), req)
	if err != nil {
		responderError(c, err)
		return
	}
	ok(c, http.StatusCreated, "Registro de mapeo creado", gin.H{"id": id})
}

func (h *MapeoHandler) ActualizarCampania(c *gin.Context) {
	var req dto.ActualizarRegistroMapeoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.ActualizarCampania(c.Request.Context(), usuarioID(c), c.Param("id"), req)
	if err != nil {
		responderError(c, err)
		return
	}
	ok(c, http.StatusOK, "Registro de mapeo actualizado", resp)
}

func (h *MapeoHandler) EstadosHileras(c *gin.Context) {
	resp, err := h.svc.EstadosHileras(c.Request.Context(), usuarioID(c), c.Param("id"))
	if err != nil {
		responderError(c, err)
		return
	}
	ok(c, http.StatusOK, "", resp)
}

func (h *MapeoHandler) ActualizarEstadoHilera(c *gin.Context) {
	var req dto.EstadoHileraRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.ActualizarEstadoHilera(c.Request.Context(), usuarioID(c), c.Param("id"), req)
	if err != nil {
		responderError(c, err)
		return
	}
	ok(c, http.StatusOK, "Estado de hilera actualizado", resp)
}

func (h *MapeoHandler) ListarRegistros(c *gin.Context) {
	var f dto.RegistroFilter
	if err := c.ShouldBindQuery(&f); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.ListarRegistros(c.Request.Context(), usuarioID(c), f)
	if err != nil {
		responderError(c, err)
		return
	}
	ok(c, http.StatusOK, "", resp)
}

func (h *MapeoHandler) ObtenerRegistro(c *gin.Context) {
	resp, err := h.svc.ObtenerRegistro(c.Request.Context(), usuarioID(c), c.Param("id"))
	if err != nil {
		responderError(c, err)
		return
	}
	ok(c, http.StatusOK, "", resp)
}

func (h *MapeoHandler) CrearRegistro(c *gin.Context) {
	var req dto.RegistroRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CrearRegistro(c.Request.Context(), usuarioID(c), req)
	if err != nil {
		responderError(c, err)
		return
	}
	ok(c, http.StatusCreated, "Registro creado", resp)
}

func (h *MapeoHandler) TiposPlanta(c *gin.Context) {
	resp, err := h.svc.TiposPlanta(c.Request.Context(), usuarioID(c))
	if err != nil {
		responderError(c, err)
		return
	}
	ok(c, http.StatusOK, "", resp)
}

// ── Cargas masivas ───────────────────────────────────────────────────────────

func (h *MapeoHandler) CuartelesBulk(c *gin.Context) {
	var req dto.CuartelesBulkRequest
	if !bindAndValidate(c, &req) {
		return
	}
	rep, err := h.carga.CuartelesCascada(c.Request.Context(), usuarioID(c), req)
	responderCarga(c, rep, err)
}

func (h *MapeoHandler) RegistrosBulk(c *gin.Context) {
	var req dto.RegistrosBulkRequest
	if !bindAndValidate(c, &req) {
		return
	}
	rep, err := h.carga.RegistrosBulk(c.Request.Context(), usuarioID(c), req)
	responderCarga(c, rep, err)
}

// ImportarExcel reads the multipart fields "file" and "tipo_importacion".
func (h *MapeoHandler) ImportarExcel(c *gin.Context) {
	tipo := c.PostForm("tipo_importacion")
	if tipo == "" {
		c.JSON(http.StatusBadRequest, apierror.New("tipo_importacion es requerido"))
		return
	}
	fh, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Se requiere el archivo en el campo file"))
		return
	}
	f, err := fh.Open()
	if err != nil {
		responderError(c, err)
		return
	}
	defer f.Close()

	rep, err := h.plantillas.Importar(c.Request.Context(), usuarioID(c), tipo, f)
	responderCarga(c, rep, err)
}

func (h *MapeoHandler) AgregarHileras(c *gin.Context) {
	id, valido := idParam(c, "id")
	if !valido {
		return
	}
	var req dto.AgregarHilerasRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.carga.AgregarHileras(c.Request.Context(), usuarioID(c), id, req)
	if err != nil {
		responderError(c, err)
		return
	}
	ok(c, http.StatusCreated, "Hileras agregadas", resp)
}

func (h *MapeoHandler) EliminarHilera(c *gin.Context) {
	id, valido := idParam(c, "id")
	if !valido {
		return
	}
	resp, err := h.carga.EliminarHileraCascada(c.Request.Context(), usuarioID(c), id)
	if err != nil {
		responderError(c, err)
		return
	}
	ok(c, http.StatusOK, "Hilera eliminada", resp)
}

func (h *MapeoHandler) CambiarEstadoCatastro(c *gin.Context) {
	id, valido := idParam(c, "id")
	if !valido {
		return
	}
	var req dto.EstadoCatastroRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.cuarteles.CambiarEstadoCatastro(c.Request.Context(), usuarioID(c), id, req)
	if err != nil {
		responderError(c, err)
		return
	}
	ok(c, http.StatusOK, "Estado de catastro actualizado", resp)
}

func (h *MapeoHandler) Plantilla(c *gin.Context) {
	archivo, err := h.plantillas.Plantilla(c.Param("tipo"))
	if err != nil {
		responderError(c, err)
		return
	}
	enviarArchivo(c, archivo)
}
