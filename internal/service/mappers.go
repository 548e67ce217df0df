package service

import (
	"github.com/soporte-code/API-PORTALWEB/internal/dto"
	"github.com/soporte-code/API-PORTALWEB/internal/model"
)

const formatoFecha = "2006-01-02"

func usuarioResponse(u *model.Usuario) dto.UsuarioResponse {
	return dto.UsuarioResponse{
		ID:               u.ID,
		Usuario:          u.Usuario,
		Nombre:           u.Nombre,
		ApellidoPaterno:  u.ApellidoPaterno,
		ApellidoMaterno:  u.ApellidoMaterno,
		Correo:           u.Correo,
		IDSucursalActiva: u.IDSucursalActiva,
		IDEstado:         u.IDEstado,
		IDRol:            u.IDRol,
		IDPerfil:         u.IDPerfil,
		FechaCreacion:    u.FechaCreacion,
	}
}

func sucursalResponse(s model.Sucursal) dto.SucursalResponse {
	return dto.SucursalResponse{ID: s.ID, Nombre: s.Nombre, Ubicacion: s.Ubicacion}
}

func cuartelResponse(c *model.CuartelDetalle) dto.CuartelResponse {
	return dto.CuartelResponse{
		ID:                 c.ID,
		IDCeco:             c.IDCeco,
		IDSucursal:         c.IDSucursalEfectiva,
		NombreSucursal:     c.NombreSucursal,
		Nombre:             c.Nombre,
		IDVariedad:         c.IDVariedad,
		NombreVariedad:     c.NombreVariedad,
		Superficie:         c.Superficie,
		AnoPlantacion:      c.AnoPlantacion,
		DSH:                c.DSH,
		DEH:                c.DEH,
		IDPropiedad:        c.IDPropiedad,
		IDPortainjerto:     c.IDPortainjerto,
		BrazosEjes:         c.BrazosEjes,
		IDEstadoProductivo: c.IDEstadoProductivo,
		NHileras:           c.NHileras,
		IDEstadoCatastro:   c.IDEstadoCatastro,
		EstadoCatastro:     c.EstadoCatastro,
		IDEstado:           c.IDEstado,
		FechaCreacion:      c.FechaCreacion,
		FechaActualizacion: c.FechaActualizacion,
	}
}

func hileraResponse(h *model.Hilera) dto.HileraResponse {
	return dto.HileraResponse{
		ID:            h.ID,
		Hilera:        h.Hilera,
		IDCuartel:     h.IDCuartel,
		IDEstado:      h.IDEstado,
		FechaCreacion: h.FechaCreacion,
	}
}

func hilerasConteo(hs []model.HileraConteo) []dto.HileraResponse {
	resp := make([]dto.HileraResponse, len(hs))
	for i := range hs {
		resp[i] = hileraResponse(&hs[i].Hilera)
		n := hs[i].PlantasActivas
		resp[i].PlantasActivas = &n
	}
	return resp
}

func plantaResponse(p *model.Planta) dto.PlantaResponse {
	return dto.PlantaResponse{
		ID:            p.ID,
		Planta:        p.Planta,
		IDHilera:      p.IDHilera,
		Ubicacion:     p.Ubicacion,
		IDEstado:      p.IDEstado,
		FechaCreacion: p.FechaCreacion,
	}
}

func plantaDetalleResponse(p *model.PlantaDetalle) dto.PlantaResponse {
	r := plantaResponse(&p.Planta)
	r.NombreHilera = p.NombreHilera
	r.IDCuartel = p.IDCuartel
	r.NombreCuartel = p.NombreCuartel
	return r
}

func plantasResponse(ps []model.Planta) []dto.PlantaResponse {
	resp := make([]dto.PlantaResponse, len(ps))
	for i := range ps {
		resp[i] = plantaResponse(&ps[i])
	}
	return resp
}

func plantasDetalleResponse(ps []model.PlantaDetalle) []dto.PlantaResponse {
	resp := make([]dto.PlantaResponse, len(ps))
	for i := range ps {
		resp[i] = plantaDetalleResponse(&ps[i])
	}
	return resp
}

func registroMapeoResponse(rm *model.RegistroMapeoDetalle) dto.RegistroMapeoResponse {
	return dto.RegistroMapeoResponse{
		ID:            rm.ID,
		IDTemporada:   rm.IDTemporada,
		IDCuartel:     rm.IDCuartel,
		NombreCuartel: rm.NombreCuartel,
		FechaInicio:   rm.FechaInicio.Format(formatoFecha),
		FechaTermino:  rm.FechaTermino.Format(formatoFecha),
		IDEstado:      rm.IDEstado,
		FechaCreacion: rm.FechaCreacion,
	}
}

func estadoHileraResponse(e *model.EstadoHilera) dto.EstadoHileraResponse {
	return dto.EstadoHileraResponse{
		ID:                 e.ID,
		IDRegistroMapeo:    e.IDRegistroMapeo,
		IDHilera:           e.IDHilera,
		Estado:             e.Estado,
		IDUsuario:          e.IDUsuario,
		Observaciones:      e.Observaciones,
		FechaCreacion:      e.FechaCreacion,
		FechaActualizacion: e.FechaActualizacion,
	}
}

func registroResponse(r *model.Registro) dto.RegistroResponse {
	return dto.RegistroResponse{
		ID:           r.ID,
		IDEvaluador:  r.IDEvaluador,
		HoraRegistro: r.HoraRegistro,
		IDPlanta:     r.IDPlanta,
		IDTipoPlanta: r.IDTipoPlanta,
		Imagen:       r.Imagen,
	}
}
