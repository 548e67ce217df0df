package service

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
)

var errUbicacion = errors.New(`ubicacion GPS invalida, se espera "lat, lng" con lat en [-90,90] y lng en [-180,180]`)

// ParseUbicacion parses a "lat, lng" string. The returned point follows the
// GeoJSON order (lng, lat).
func ParseUbicacion(s string) (orb.Point, error) {
	partes := strings.Split(s, ",")
	if len(partes) != 2 {
		return orb.Point{}, errUbicacion
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(partes[0]), 64)
	if err != nil {
		return orb.Point{}, errUbicacion
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(partes[1]), 64)
	if err != nil {
		return orb.Point{}, errUbicacion
	}
	if math.IsNaN(lat) || math.IsNaN(lng) || lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return orb.Point{}, errUbicacion
	}
	return orb.Point{lng, lat}, nil
}

// limpiarUbicacion validates an optional location. Blank means no location.
func limpiarUbicacion(s *string) (*string, error) {
	if s == nil {
		return nil, nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil, nil
	}
	if _, err := ParseUbicacion(v); err != nil {
		return nil, err
	}
	return &v, nil
}
