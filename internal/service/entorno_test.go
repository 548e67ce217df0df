package service_test

import (
	"context"
	"testing"

	"github.com/soporte-code/API-PORTALWEB/internal/apierror"
	"github.com/soporte-code/API-PORTALWEB/internal/config"
	"github.com/soporte-code/API-PORTALWEB/internal/infra"
	"github.com/soporte-code/API-PORTALWEB/internal/service"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const (
	usuarioCampo  = "u-campo"
	usuarioAjeno  = "u-ajeno"
	sucursalNorte = int64(101)
	sucursalSur   = int64(102)
	appPortal     = 2
)

// entorno wires every service over one in-memory database. usuarioCampo
// belongs to sucursalNorte only; usuarioAjeno to sucursalSur only.
type entorno struct {
	m *memoria

	usuarios   *usuarioStub
	sucursales *sucursalStub
	cuarteles  *cuartelStub
	hileras    *hileraStub
	plantas    *plantaStub
	especies   *especieStub
	conteo     *conteoStub
	mapeo      *mapeoStub

	cfg     *config.Config
	alcance service.AlcanceService
	blob    infra.BlobStore
}

func nuevoEntorno(t *testing.T) *entorno {
	t.Helper()
	m := nuevaMemoria()
	m.conSucursal(sucursalNorte, "Fundo Norte", 1)
	m.conSucursal(sucursalSur, "Fundo Sur", 2)
	m.conUsuario(usuarioCampo, "212121", hashClave(t, "212121"), sucursalNorte)
	m.conUsuario(usuarioAjeno, "ajeno", hashClave(t, "ajeno"), sucursalSur)
	m.apps[usuarioCampo] = map[int]bool{appPortal: true}
	m.apps[usuarioAjeno] = map[int]bool{appPortal: true}

	e := &entorno{
		m:          m,
		usuarios:   &usuarioStub{m: m},
		sucursales: &sucursalStub{m: m},
		cuarteles:  &cuartelStub{m: m},
		hileras:    &hileraStub{m: m},
		plantas:    &plantaStub{m: m, conRegistros: map[int64]bool{}},
		especies:   &especieStub{m: m, cuartelesPorVariedad: map[int64]int64{}},
		conteo:     &conteoStub{m: m},
		mapeo:      &mapeoStub{m: m},
		cfg: &config.Config{
			JWTSecret: "secreto-de-pruebas", JWTAccessHours: 10, JWTRefreshHours: 168,
			AppID: appPortal, BulkMaxItems: 1000, BulkMaxGenerated: 100000,
		},
	}
	e.alcance = service.NewAlcanceService(e.sucursales, nil, 0)
	return e
}

// hashClave uses the minimum cost to keep the suite fast.
func hashClave(t *testing.T, clave string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(clave), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func (e *entorno) auth() service.AuthService {
	return service.NewAuthService(e.usuarios, e.sucursales, e.alcance, nil, e.cfg)
}

func (e *entorno) cuartelService() service.CuartelService {
	return service.NewCuartelService(e.cuarteles, e.hileras, e.plantas, e.sucursales, e.especies, e.alcance)
}

func (e *entorno) hileraService() service.HileraService {
	return service.NewHileraService(e.cuarteles, e.hileras, e.plantas, e.alcance)
}

func (e *entorno) plantaService() service.PlantaService {
	return service.NewPlantaService(e.hileras, e.plantas, e.alcance)
}

func (e *entorno) carga() service.CargaMasivaService {
	return service.NewCargaMasivaService(e.cuarteles, e.hileras, e.plantas, e.mapeo, e.sucursales,
		e.especies, e.usuarios, e.alcance, e.blob, nil,
		service.LimitesCarga{MaxElementos: e.cfg.BulkMaxItems, MaxGenerados: e.cfg.BulkMaxGenerated})
}

func (e *entorno) mapeoService() service.MapeoService {
	return service.NewMapeoService(e.mapeo, e.cuarteles, e.hileras, e.plantas, e.usuarios, e.sucursales, e.alcance, e.blob)
}

func esTipo(t *testing.T, err error, kind apierror.Kind) {
	t.Helper()
	require.Error(t, err)
	require.Truef(t, apierror.Is(err, kind), "error inesperado: %v", err)
}

var ctx = context.Background()
