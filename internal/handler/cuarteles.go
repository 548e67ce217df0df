package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/soporte-code/API-PORTALWEB/internal/apierror"
	"github.com/soporte-code/API-PORTALWEB/internal/dto"
	"github.com/soporte-code/API-PORTALWEB/internal/service"

	"github.com/gin-gonic/gin"
)

type CuartelesHandler struct {
	svc        service.CuartelService
	carga      service.CargaMasivaService
	plantillas service.PlantillaService
	reportes   service.ReporteService
}

func NewCuartelesHandler(
	svc service.CuartelService,
	carga service.CargaMasivaService,
	plantillas service.PlantillaService,
	reportes service.ReporteService,
) *CuartelesHandler {
	return &CuartelesHandler{svc: svc, carga: carga, plantillas: plantillas, reportes: reportes}
}

// Listar godoc
// @Summary Cuarteles de las sucursales del usuario
// @Tags cuarteles
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.Respuesta
// @Router /api/cuarteles [get]
func (h *CuartelesHandler) Listar(c *gin.Context) {
	resp, err := h.svc.Listar(c.Request.Context(), usuarioID(c))
	if err != nil {
		responderError(c, err)
		return
	}
	ok(c, http.StatusOK, "", resp)
}

func (h *CuartelesHandler) Obtener(c *gin.Context) {
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

// Crear godoc
// @Summary Crea un cuartel y sus hileras numeradas
// @Tags cuarteles
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CrearCuartelRequest true "Cuartel"
// @Success 201 {object} dto.Respuesta
// @Failure 400 {object} apierror.APIError
// @Failure 403 {object} apierror.APIError
// @Router /api/cuarteles [post]
func (h *CuartelesHandler) Crear(c *gin.Context) {
	var req dto.CrearCuartelRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Crear(c.Request.Context(), usuarioID(c), req)
	if err != nil {
		responderError(c, err)
		return
	}
	ok(c, http.StatusCreated, "Cuartel creado", resp)
}

func (h *CuartelesHandler) Actualizar(c *gin.Context) {
	id, valido := idParam(c, "id")
	if !valido {
		return
	}
	var req dto.ActualizarCuartelRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Actualizar(c.Request.Context(), usuarioID(c), id, req)
	if err != nil {
		responderError(c, err)
		return
	}
	ok(c, http.StatusOK, "Cuartel actualizado", resp)
}

func (h *CuartelesHandler) Eliminar(c *gin.Context) {
	id, valido := idParam(c, "id")
	if !valido {
		return
	}
	if err := h.svc.Eliminar(c.Request.Context(), usuarioID(c), id); err != nil {
		responderError(c, err)
		return
	}
	ok(c, http.StatusOK, "Cuartel eliminado", nil)
}

func (h *CuartelesHandler) CambiarEstadoCatastro(c *gin.Context) {
	id, valido := idParam(c, "id")
	if !valido {
		return
	}
	var req dto.EstadoCatastroRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CambiarEstadoCatastro(c.Request.Context(), usuarioID(c), id, req)
	if err != nil {
		responderError(c, err)
		return
	}
	ok(c, http.StatusOK, "Estado de catastro actualizado", resp)
}

func (h *CuartelesHandler) Hileras(c *gin.Context) {
	id, valido := idParam(c, "id")
	if !valido {
		return
	}
	resp, err := h.svc.Hileras(c.Request.Context(), usuarioID(c), id)
	if err != nil {
		responderError(c, err)
		return
	}
	ok(c, http.StatusOK, "", resp)
}

func (h *CuartelesHandler) Plantas(c *gin.Context) {
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

func (h *CuartelesHandler) PlantasDeHilera(c *gin.Context) {
	id, valido := idParam(c, "id")
	if !valido {
		return
	}
	hid, valido := idParam(c, "hid")
	if !valido {
		return
	}
	resp, err := h.svc.PlantasDeHilera(c.Request.Context(), usuarioID(c), id, hid)
	if err != nil {
		responderError(c, err)
		return
	}
	ok(c, http.StatusOK, "", resp)
}

func (h *CuartelesHandler) PlantasMasivoInfo(c *gin.Context) {
	resp, err := h.svc.PlantasMasivoInfo(c.Request.Context(), usuarioID(c))
	if err != nil {
		responderError(c, err)
		return
	}
	ok(c, http.StatusOK, "", resp)
}

// ── Carga masiva ─────────────────────────────────────────────────────────────

func (h *CuartelesHandler) CatastroMasivo(c *gin.Context) {
	var req dto.CatastroMasivoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	rep, err := h.carga.CatastroMasivo(c.Request.Context(), usuarioID(c), req)
	responderCarga(c, rep, err)
}

func (h *CuartelesHandler) PlantasMasivo(c *gin.Context) {
	var req dto.PlantasMasivoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	rep, err := h.carga.PlantasMasivo(c.Request.Context(), usuarioID(c), req)
	responderCarga(c, rep, err)
}

// BulkHileras also serves /api/hileras/bulk.
func (h *CuartelesHandler) BulkHileras(c *gin.Context) {
	var req dto.BulkHilerasRequest
	if !bindAndValidate(c, &req) {
		return
	}
	rep, err := h.carga.BulkHileras(c.Request.Context(), usuarioID(c), req)
	responderCarga(c, rep, err)
}

// ── Documentos ───────────────────────────────────────────────────────────────

func (h *CuartelesHandler) PlantillaPlantas(c *gin.Context) {
	id, valido := idParam(c, "id")
	if !valido {
		return
	}
	archivo, err := h.plantillas.PlantillaPlantas(c.Request.Context(), usuarioID(c), id)
	if err != nil {
		responderError(c, err)
		return
	}
	enviarArchivo(c, archivo)
}

// PlantillaPlantasMasiva accepts the field list as ?cuartel_ids=1,2 on GET or
// as a JSON body on POST.
func (h *CuartelesHandler) PlantillaPlantasMasiva(c *gin.Context) {
	var req dto.PlantillaPlantasMasivaRequest
	if c.Request.Method == http.MethodPost {
		if !bindAndValidate(c, &req) {
			return
		}
	} else {
		ids, err := listaIDs(c.Query("cuartel_ids"))
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.New("cuartel_ids invalido"))
			return
		}
		req.CuartelIDs = ids
	}
	archivo, err := h.plantillas.PlantillaPlantasMasiva(c.Request.Context(), usuarioID(c), req.CuartelIDs)
	if err != nil {
		responderError(c, err)
		return
	}
	enviarArchivo(c, archivo)
}

func (h *CuartelesHandler) Reporte(c *gin.Context) {
	id, valido := idParam(c, "id")
	if !valido {
		return
	}
	archivo, err := h.reportes.CatastroPDF(c.Request.Context(), usuarioID(c), id)
	if err != nil {
		responderError(c, err)
		return
	}
	enviarArchivo(c, archivo)
}

func (h *CuartelesHandler) GeoJSON(c *gin.Context) {
	id, valido := idParam(c, "id")
	if !valido {
		return
	}
	fc, err := h.reportes.GeoJSON(c.Request.Context(), usuarioID(c), id)
	if err != nil {
		responderError(c, err)
		return
	}
	c.Header("Content-Type", "application/geo+json")
	c.JSON(http.StatusOK, fc)
}

func listaIDs(s string) ([]int64, error) {
	var ids []int64
	for _, parte := range strings.Split(s, ",") {
		parte = strings.TrimSpace(parte)
		if parte == "" {
			continue
		}
		id, err := strconv.ParseInt(parte, 10, 64)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
