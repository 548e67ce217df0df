package service

import (
	"context"
	"fmt"
	"time"

	"github.com/soporte-code/API-PORTALWEB/internal/infra"
	"github.com/soporte-code/API-PORTALWEB/internal/repository"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// ReporteService renders per-field documents: the cadastre PDF and the
// GeoJSON map of geolocated plants.
type ReporteService interface {
	CatastroPDF(ctx context.Context, usuarioID string, cuartelID int64) (*Archivo, error)
	GeoJSON(ctx context.Context, usuarioID string, cuartelID int64) (*geojson.FeatureCollection, error)
}

type reporteService struct {
	cuarteles repository.CuartelRepository
	hileras   repository.HileraRepository
	plantas   repository.PlantaRepository
	alcance   AlcanceService
}

func NewReporteService(
	cuarteles repository.CuartelRepository,
	hileras repository.HileraRepository,
	plantas repository.PlantaRepository,
	alcance AlcanceService,
) ReporteService {
	return &reporteService{cuarteles: cuarteles, hileras: hileras, plantas: plantas, alcance: alcance}
}

func (s *reporteService) CatastroPDF(ctx context.Context, usuarioID string, cuartelID int64) (*Archivo, error) {
	sucursales, err := s.alcance.Sucursales(ctx, usuarioID)
	if err != nil {
		return nil, err
	}
	c, err := s.cuarteles.FindEnAlcance(ctx, cuartelID, sucursales)
	if err != nil {
		return nil, siNoExiste(err, msgCuartelNoEncontrado)
	}
	hileras, err := s.hileras.ListPorCuarteles(ctx, cuartelID)
	if err != nil {
		return nil, err
	}
	datos, err := infra.GenerarReporteCuartelPDF(*c, hileras, time.Now())
	if err != nil {
		return nil, err
	}
	return &Archivo{
		Nombre:      fmt.Sprintf("catastro_cuartel_%d.pdf", cuartelID),
		ContentType: "application/pdf",
		Datos:       datos,
	}, nil
}

// GeoJSON returns one Point feature per active plant with a valid location.
// Plants without location or with an unparsable one are left out. The
// collection carries a bbox when it has at least one feature.
func (s *reporteService) GeoJSON(ctx context.Context, usuarioID string, cuartelID int64) (*geojson.FeatureCollection, error) {
	sucursales, err := s.alcance.Sucursales(ctx, usuarioID)
	if err != nil {
		return nil, err
	}
	c, err := s.cuarteles.FindEnAlcance(ctx, cuartelID, sucursales)
	if err != nil {
		return nil, siNoExiste(err, msgCuartelNoEncontrado)
	}
	plantas, err := s.plantas.ListPorCuartel(ctx, cuartelID)
	if err != nil {
		return nil, err
	}

	fc := geojson.NewFeatureCollection()
	var limites orb.Bound
	for _, p := range plantas {
		if p.Ubicacion == nil {
			continue
		}
		punto, err := ParseUbicacion(*p.Ubicacion)
		if err != nil {
			continue
		}
		f := geojson.NewFeature(punto)
		f.ID = p.ID
		f.Properties["planta"] = p.Planta.Planta
		f.Properties["id_hilera"] = p.IDHilera
		f.Properties["hilera"] = p.NombreHilera
		if len(fc.Features) == 0 {
			limites = punto.Bound()
		} else {
			limites = limites.Extend(punto)
		}
		fc.Append(f)
	}
	if len(fc.Features) > 0 {
		fc.BBox = geojson.NewBBox(limites)
	}
	fc.ExtraMembers = geojson.Properties{"cuartel": c.Nombre, "id_cuartel": c.ID}
	return fc, nil
}
