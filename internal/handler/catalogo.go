package handler

import (
	"net/http"

	"github.com/soporte-code/API-PORTALWEB/internal/dto"
	"github.com/soporte-code/API-PORTALWEB/internal/service"

	"github.com/gin-gonic/gin"
)

// VariedadesHandler serves /api/variedades: species and their varieties.
type VariedadesHandler struct{ svc service.VariedadService }

func NewVariedadesHandler(svc service.VariedadService) *VariedadesHandler {
	return &VariedadesHandler{svc: svc}
}

func (h *VariedadesHandler) ListarEspecies(c *gin.Context) {
	resp, err := h.svc.ListarEspecies(c.Request.Context())
	if err != nil {
		responderError(c, err)
		return
	}
	ok(c, http.StatusOK, "", resp)
}

func (h *VariedadesHandler) ObtenerEspecie(c *gin.Context) {
	id, valido := idParam(c, "id")
	if !valido {
		return
	}
	resp, err := h.svc.ObtenerEspecie(c.Request.Context(), id)
	if err != nil {
		responderError(c, err)
		return
	}
	ok(c, http.StatusOK, "", resp)
}

func (h *VariedadesHandler) CrearEspecie(c *gin.Context) {
	var req dto.EspecieRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CrearEspecie(c.Request.Context(), req)
	if err != nil {
		responderError(c, err)
		return
	}
	ok(c, http.StatusCreated, "Especie creada", resp)
}

func (h *VariedadesHandler) ActualizarEspecie(c *gin.Context) {
	id, valido := idParam(c, "id")
	if !valido {
		return
	}
	var req dto.ActualizarEspecieRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.ActualizarEspecie(c.Request.Context(), id, req)
	if err != nil {
		responderError(c, err)
		return
	}
	ok(c, http.StatusOK, "Especie actualizada", resp)
}

func (h *VariedadesHandler) EliminarEspecie(c *gin.Context) {
	id, valido := idParam(c, "id")
	if !valido {
		return
	}
	if err := h.svc.EliminarEspecie(c.Request.Context(), id); err != nil {
		responderError(c, err)
		return
	}
	ok(c, http.StatusOK, "Especie eliminada", nil)
}

// ListarVariedades filters by ?id_especie when present.
func (h *VariedadesHandler) ListarVariedades(c *gin.Context) {
	especieID, valido := queryID(c, "id_especie")
	if !valido {
		return
	}
	resp, err := h.svc.ListarVariedades(c.Request.Context(), especieID)
	if err != nil {
		responderError(c, err)
		return
	}
	ok(c, http.StatusOK, "", resp)
}

func (h *VariedadesHandler) VariedadesDeEspecie(c *gin.Context) {
	id, valido := idParam(c, "id")
	if !valido {
		return
	}
	resp, err := h.svc.ListarVariedades(c.Request.Context(), &id)
	if err != nil {
		responderError(c, err)
		return
	}
	ok(c, http.StatusOK, "", resp)
}

func (h *VariedadesHandler) ObtenerVariedad(c *gin.Context) {
	id, valido := idParam(c, "id")
	if !valido {
		return
	}
	resp, err := h.svc.ObtenerVariedad(c.Request.Context(), id)
	if err != nil {
		responderError(c, err)
		return
	}
	ok(c, http.StatusOK, "", resp)
}

func (h *VariedadesHandler) CrearVariedad(c *gin.Context) {
	var req dto.VariedadRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CrearVariedad(c.Request.Context(), req)
	if err != nil {
		responderError(c, err)
		return
	}
	ok(c, http.StatusCreated, "Variedad creada", resp)
}

func (h *VariedadesHandler) ActualizarVariedad(c *gin.Context) {
	id, valido := idParam(c, "id")
	if !valido {
		return
	}
	var req dto.ActualizarVariedadRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.ActualizarVariedad(c.Request.Context(), id, req)
	if err != nil {
		responderError(c, err)
		return
	}
	ok(c, http.StatusOK, "Variedad actualizada", resp)
}

func (h *VariedadesHandler) EliminarVariedad(c *gin.Context) {
	id, valido := idParam(c, "id")
	if !valido {
		return
	}
	if err := h.svc.EliminarVariedad(c.Request.Context(), id); err != nil {
		responderError(c, err)
		return
	}
	ok(c, http.StatusOK, "Variedad eliminada", nil)
}

// ── Conteo ───────────────────────────────────────────────────────────────────

type ConteoHandler struct{ svc service.ConteoService }

func NewConteoHandler(svc service.ConteoService) *ConteoHandler {
	return &ConteoHandler{svc: svc}
}

func (h *ConteoHandler) Atributos(c *gin.Context) {
	resp, err := h.svc.ListarAtributos(c.Request.Context())
	if err != nil {
		responderError(c, err)
		return
	}
	ok(c, http.StatusOK, "", resp)
}

func (h *ConteoHandler) ListarOptimos(c *gin.Context) {
	resp, err := h.svc.ListarOptimos(c.Request.Context(), nil)
	if err != nil {
		responderError(c, err)
		return
	}
	ok(c, http.StatusOK, "", resp)
}

func (h *ConteoHandler) OptimosPorAtributo(c *gin.Context) {
	id, valido := idParam(c, "id")
	if !valido {
		return
	}
	resp, err := h.svc.ListarOptimos(c.Request.Context(), &id)
	if err != nil {
		responderError(c, err)
		return
	}
	ok(c, http.StatusOK, "", resp)
}

func (h *ConteoHandler) ObtenerOptimo(c *gin.Context) {
	id, valido := idParam(c, "id")
	if !valido {
		return
	}
	resp, err := h.svc.ObtenerOptimo(c.Request.Context(), id)
	if err != nil {
		responderError(c, err)
		return
	}
	ok(c, http.StatusOK, "", resp)
}

func (h *ConteoHandler) CrearOptimo(c *gin.Context) {
	var req dto.AtributoOptimoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CrearOptimo(c.Request.Context(), req)
	if err != nil {
		responderError(c, err)
		return
	}
	ok(c, http.StatusCreated, "Atributo optimo creado", resp)
}

func (h *ConteoHandler) ActualizarOptimo(c *gin.Context) {
	id, valido := idParam(c, "id")
	if !valido {
		return
	}
	var req dto.ActualizarAtributoOptimoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.ActualizarOptimo(c.Request.Context(), id, req)
	if err != nil {
		responderError(c, err)
		return
	}
	ok(c, http.StatusOK, "Atributo optimo actualizado", resp)
}

func (h *ConteoHandler) EliminarOptimo(c *gin.Context) {
	id, valido := idParam(c, "id")
	if !valido {
		return
	}
	if err := h.svc.EliminarOptimo(c.Request.Context(), id); err != nil {
		responderError(c, err)
		return
	}
	ok(c, http.StatusOK, "Atributo optimo eliminado", nil)
}

func (h *ConteoHandler) ListarAtributoEspecie(c *gin.Context) {
	resp, err := h.svc.ListarAtributoEspecie(c.Request.Context(), nil)
	if err != nil {
		responderError(c, err)
		return
	}
	ok(c, http.StatusOK, "", resp)
}

func (h *ConteoHandler) AtributoEspeciePorEspecie(c *gin.Context) {
	id, valido := idParam(c, "id")
	if !valido {
		return
	}
	resp, err := h.svc.ListarAtributoEspecie(c.Request.Context(), &id)
	if err != nil {
		responderError(c, err)
		return
	}
	ok(c, http.StatusOK, "", resp)
}

func (h *ConteoHandler) ObtenerAtributoEspecie(c *gin.Context) {
	id, valido := idParam(c, "id")
	if !valido {
		return
	}
	resp, err := h.svc.ObtenerAtributoEspecie(c.Request.Context(), id)
	if err != nil {
		responderError(c, err)
		return
	}
	ok(c, http.StatusOK, "", resp)
}

func (h *ConteoHandler) CrearAtributoEspecie(c *gin.Context) {
	var req dto.AtributoEspecieRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CrearAtributoEspecie(c.Request.Context(), req)
	if err != nil {
		responderError(c, err)
		return
	}
	ok(c, http.StatusCreated, "Atributo especie creado", resp)
}

func (h *ConteoHandler) ActualizarAtributoEspecie(c *gin.Context) {
	id, valido := idParam(c, "id")
	if !valido {
		return
	}
	var req dto.ActualizarAtributoEspecieRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.ActualizarAtributoEspecie(c.Request.Context(), id, req)
	if err != nil {
		responderError(c, err)
		return
	}
	ok(c, http.StatusOK, "Atributo especie actualizado", resp)
}

func (h *ConteoHandler) EliminarAtributoEspecie(c *gin.Context) {
	id, valido := idParam(c, "id")
	if !valido {
		return
	}
	if err := h.svc.EliminarAtributoEspecie(c.Request.Context(), id); err != nil {
		responderError(c, err)
		return
	}
	ok(c, http.StatusOK, "Atributo especie eliminado", nil)
}
