package handler

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strconv"

	"github.com/soporte-code/API-PORTALWEB/internal/apierror"
	"github.com/soporte-code/API-PORTALWEB/internal/dto"
	"github.com/soporte-code/API-PORTALWEB/internal/middleware"
	"github.com/soporte-code/API-PORTALWEB/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

func init() {
	// decimal.Decimal se valida como número (min=0, gt=0, required).
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if v, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := v.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
}

// bindAndValidate binds the JSON body and runs the validator tags. On false
// the response is already written.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("JSON invalido: "+err.Error()))
		return false
	}
	if err := validate.Struct(req); err != nil {
		var ve validator.ValidationErrors
		if !errors.As(err, &ve) {
			c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
			return false
		}
		fields := make(map[string]string, len(ve))
		for _, fe := range ve {
			fields[fe.Field()] = fe.Tag()
		}
		c.JSON(http.StatusBadRequest, apierror.NewValidation(fields))
		return false
	}
	return true
}

// responderError hands err to middleware.ErrorHandler, which maps domain
// kinds to their status and hides everything else behind a 500.
func responderError(c *gin.Context, err error) {
	_ = c.Error(err)
}

func ok(c *gin.Context, status int, message string, data any) {
	c.JSON(status, dto.Respuesta{Success: true, Message: message, Data: data})
}

// idParam parses a numeric path parameter.
func idParam(c *gin.Context, nombre string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(nombre), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return 0, false
	}
	return id, true
}

// queryID parses an optional numeric query parameter. Absent means nil.
func queryID(c *gin.Context, nombre string) (*int64, bool) {
	v := c.Query(nombre)
	if v == "" {
		return nil, true
	}
	id, err := strconv.ParseInt(v, 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, apierror.New(nombre+" invalido"))
		return nil, false
	}
	return &id, true
}

func usuarioID(c *gin.Context) string {
	return middleware.GetClaims(c).UsuarioID()
}

func enviarArchivo(c *gin.Context, a *service.Archivo) {
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, a.Nombre))
	c.Data(http.StatusOK, a.ContentType, a.Datos)
}

// responderCarga answers a bulk call: 201 when at least one element was
// created, 400 with the same report otherwise.
func responderCarga(c *gin.Context, rep *dto.ReporteCarga, err error) {
	if err != nil {
		responderError(c, err)
		return
	}
	status := http.StatusCreated
	if rep.Creados == 0 {
		status = http.StatusBadRequest
	}
	c.JSON(status, dto.Respuesta{
		Success: rep.Creados > 0,
		Message: fmt.Sprintf("Procesados %d: %d creados, %d errores, %d advertencias",
			rep.Procesados, rep.Creados, len(rep.Errores), len(rep.Warnings)),
		Data: rep,
	})
}
