package service_test

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/soporte-code/API-PORTALWEB/internal/dto"
	"github.com/soporte-code/API-PORTALWEB/internal/infra"
	"github.com/soporte-code/API-PORTALWEB/internal/model"
	"github.com/soporte-code/API-PORTALWEB/internal/repository"

	"gorm.io/gorm"
)

// ─── Base en memoria ─────────────────────────────────────────────────────────

// memoria is the in-memory database shared by every stub repository, so a
// service that writes through one repo reads the result through another.
type memoria struct {
	seq int64

	usuarios   map[string]*model.Usuario
	apps       map[string]map[int]bool
	sucursales map[int64]*model.Sucursal
	cecos      map[int64]*model.Ceco
	miembros   map[string][]int64

	cuarteles map[int64]*model.Cuartel
	hileras   map[int64]*model.Hilera
	plantas   map[int64]*model.Planta

	especies   map[int64]*model.Especie
	variedades map[int64]*model.Variedad

	atributos        map[int64]*model.Atributo
	optimos          map[int64]*model.AtributoOptimo
	atributoEspecies map[int64]*model.AtributoEspecie

	campanias map[string]*model.RegistroMapeo
	estados   map[string]*model.EstadoHilera
	registros []model.Registro
	tipos     []model.TipoPlanta
}

func nuevaMemoria() *memoria {
	return &memoria{
		usuarios:         map[string]*model.Usuario{},
		apps:             map[string]map[int]bool{},
		sucursales:       map[int64]*model.Sucursal{},
		cecos:            map[int64]*model.Ceco{},
		miembros:         map[string][]int64{},
		cuarteles:        map[int64]*model.Cuartel{},
		hileras:          map[int64]*model.Hilera{},
		plantas:          map[int64]*model.Planta{},
		especies:         map[int64]*model.Especie{},
		variedades:       map[int64]*model.Variedad{},
		atributos:        map[int64]*model.Atributo{},
		optimos:          map[int64]*model.AtributoOptimo{},
		atributoEspecies: map[int64]*model.AtributoEspecie{},
		campanias:        map[string]*model.RegistroMapeo{},
		estados:          map[string]*model.EstadoHilera{},
	}
}

func (m *memoria) id() int64 {
	m.seq++
	return m.seq
}

func ptr[T any](v T) *T { return &v }

func tieneID(ids []int64, id int64) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

// ─── Fixtures ────────────────────────────────────────────────────────────────

func (m *memoria) conSucursal(id int64, nombre string, empresa int64) {
	m.sucursales[id] = &model.Sucursal{ID: id, Nombre: nombre, IDSucursalTipo: model.SucursalTipoCampo, IDEmpresa: ptr(empresa), IDEstado: model.EstadoActivo}
}

func (m *memoria) conUsuario(id, login, hash string, sucursales ...int64) *model.Usuario {
	u := &model.Usuario{
		ID: id, Usuario: login, Nombre: "Ana", ApellidoPaterno: "Soto",
		Clave: hash, Correo: login + "@campo.cl", IDEstado: model.EstadoActivo, IDPerfil: 1,
	}
	if len(sucursales) > 0 {
		u.IDSucursalActiva = ptr(sucursales[0])
	}
	m.usuarios[id] = u
	m.miembros[id] = sucursales
	return u
}

func (m *memoria) conCuartel(nombre string, sucursal int64, nHileras int) *model.Cuartel {
	c := &model.Cuartel{ID: m.id(), Nombre: nombre, IDSucursal: ptr(sucursal), NHileras: nHileras, IDEstado: model.EstadoActivo}
	m.cuarteles[c.ID] = c
	return c
}

func (m *memoria) conHilera(cuartelID int64, nombre string) *model.Hilera {
	h := &model.Hilera{ID: m.id(), Hilera: nombre, IDCuartel: cuartelID, IDEstado: model.EstadoActivo}
	m.hileras[h.ID] = h
	return h
}

func (m *memoria) conPlanta(hileraID int64, numero string, ubicacion *string) *model.Planta {
	p := &model.Planta{ID: m.id(), Planta: numero, IDHilera: hileraID, Ubicacion: ubicacion, IDEstado: model.EstadoActivo}
	m.plantas[p.ID] = p
	return p
}

// ─── Consultas internas ──────────────────────────────────────────────────────

func (m *memoria) sucursalDe(c *model.Cuartel) int64 {
	if c.IDCeco != nil {
		if ceco, ok := m.cecos[*c.IDCeco]; ok {
			return ceco.IDSucursal
		}
	}
	if c.IDSucursal != nil {
		return *c.IDSucursal
	}
	return 0
}

func (m *memoria) cuartelDetalle(c *model.Cuartel) *model.CuartelDetalle {
	d := &model.CuartelDetalle{Cuartel: *c, IDSucursalEfectiva: m.sucursalDe(c)}
	if s, ok := m.sucursales[d.IDSucursalEfectiva]; ok {
		d.NombreSucursal = ptr(s.Nombre)
	}
	return d
}

func (m *memoria) cuartelActivo(id int64) (*model.Cuartel, bool) {
	c, ok := m.cuarteles[id]
	if !ok || c.IDEstado != model.EstadoActivo {
		return nil, false
	}
	return c, true
}

func (m *memoria) hileraActiva(id int64) (*model.Hilera, *model.Cuartel, bool) {
	h, ok := m.hileras[id]
	if !ok || h.IDEstado != model.EstadoActivo {
		return nil, nil, false
	}
	c, ok := m.cuartelActivo(h.IDCuartel)
	if !ok {
		return nil, nil, false
	}
	return h, c, true
}

func (m *memoria) plantaDetalle(id int64) (*model.PlantaDetalle, bool) {
	p, ok := m.plantas[id]
	if !ok || p.IDEstado != model.EstadoActivo {
		return nil, false
	}
	h, c, ok := m.hileraActiva(p.IDHilera)
	if !ok {
		return nil, false
	}
	return &model.PlantaDetalle{
		Planta: *p, NombreHilera: h.Hilera, IDCuartel: c.ID,
		NombreCuartel: c.Nombre, IDSucursalEfectiva: m.sucursalDe(c),
	}, true
}

func (m *memoria) hilerasActivas(cuartelID int64) []*model.Hilera {
	var lista []*model.Hilera
	for id := int64(1); id <= m.seq; id++ {
		if h, ok := m.hileras[id]; ok && h.IDCuartel == cuartelID && h.IDEstado == model.EstadoActivo {
			lista = append(lista, h)
		}
	}
	return lista
}

func (m *memoria) plantasActivas(hileraID int64) []*model.Planta {
	var lista []*model.Planta
	for id := int64(1); id <= m.seq; id++ {
		if p, ok := m.plantas[id]; ok && p.IDHilera == hileraID && p.IDEstado == model.EstadoActivo {
			lista = append(lista, p)
		}
	}
	return lista
}

// ─── UsuarioRepository ───────────────────────────────────────────────────────

type usuarioStub struct{ m *memoria }

var _ repository.UsuarioRepository = (*usuarioStub)(nil)

func (r *usuarioStub) CreateConApp(_ context.Context, u *model.Usuario, appID int) error {
	r.m.usuarios[u.ID] = u
	r.m.apps[u.ID] = map[int]bool{appID: true}
	return nil
}

func (r *usuarioStub) FindByLogin(_ context.Context, login string) (*model.Usuario, error) {
	for _, u := range r.m.usuarios {
		if u.Usuario == login || u.Correo == login {
			cp := *u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *usuarioStub) FindByID(_ context.Context, id string) (*model.Usuario, error) {
	u, ok := r.m.usuarios[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *usuarioStub) List(_ context.Context) ([]model.Usuario, error) {
	var lista []model.Usuario
	for _, u := range r.m.usuarios {
		if u.IDEstado == model.EstadoActivo {
			lista = append(lista, *u)
		}
	}
	return lista, nil
}

func (r *usuarioStub) Update(_ context.Context, id string, cambios map[string]interface{}) error {
	u, ok := r.m.usuarios[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	for k, v := range cambios {
		switch k {
		case "nombre":
			u.Nombre = v.(string)
		case "apellido_paterno":
			u.ApellidoPaterno = v.(string)
		case "correo":
			u.Correo = v.(string)
		case "clave":
			u.Clave = v.(string)
		case "id_sucursalactiva":
			u.IDSucursalActiva = ptr(v.(int64))
		case "id_perfil":
			u.IDPerfil = v.(int)
		case "id_estado":
			u.IDEstado = v.(int)
		}
	}
	return nil
}

func (r *usuarioStub) SoftDelete(_ context.Context, id string) error {
	if u, ok := r.m.usuarios[id]; ok {
		u.IDEstado = model.EstadoInactivo
	}
	return nil
}

func (r *usuarioStub) ExisteUsuario(_ context.Context, usuario, excluirID string) (bool, error) {
	for _, u := range r.m.usuarios {
		if u.ID != excluirID && strings.EqualFold(u.Usuario, usuario) {
			return true, nil
		}
	}
	return false, nil
}

func (r *usuarioStub) ExisteCorreo(_ context.Context, correo, excluirID string) (bool, error) {
	for _, u := range r.m.usuarios {
		if u.ID != excluirID && strings.EqualFold(u.Correo, correo) {
			return true, nil
		}
	}
	return false, nil
}

func (r *usuarioStub) TieneApp(_ context.Context, id string, appID int) (bool, error) {
	return r.m.apps[id][appID], nil
}

func (r *usuarioStub) ListPerfiles(_ context.Context) ([]model.Perfil, error) {
	return []model.Perfil{{ID: 1, Nombre: "Basico"}, {ID: model.PerfilAdministrador, Nombre: "Administrador"}}, nil
}

// ─── SucursalRepository ──────────────────────────────────────────────────────

type sucursalStub struct{ m *memoria }

var _ repository.SucursalRepository = (*sucursalStub)(nil)

func (r *sucursalStub) IDsDeUsuario(_ context.Context, usuarioID string) ([]int64, error) {
	return append([]int64(nil), r.m.miembros[usuarioID]...), nil
}

func (r *sucursalStub) ListDeUsuario(_ context.Context, usuarioID string) ([]model.Sucursal, error) {
	var lista []model.Sucursal
	for _, id := range r.m.miembros[usuarioID] {
		if s, ok := r.m.sucursales[id]; ok {
			lista = append(lista, *s)
		}
	}
	return lista, nil
}

func (r *sucursalStub) FindByID(_ context.Context, id int64) (*model.Sucursal, error) {
	s, ok := r.m.sucursales[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *s
	return &cp, nil
}

func (r *sucursalStub) FindCeco(_ context.Context, id int64) (*model.Ceco, error) {
	c, ok := r.m.cecos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *sucursalStub) ListCampo(_ context.Context) ([]model.Sucursal, error) {
	var lista []model.Sucursal
	for _, s := range r.m.sucursales {
		if s.IDSucursalTipo == model.SucursalTipoCampo {
			lista = append(lista, *s)
		}
	}
	return lista, nil
}

func (r *sucursalStub) ExistentesCampo(_ context.Context, ids []int64) ([]int64, error) {
	var encontradas []int64
	for _, id := range ids {
		if s, ok := r.m.sucursales[id]; ok && s.IDSucursalTipo == model.SucursalTipoCampo {
			encontradas = append(encontradas, id)
		}
	}
	return encontradas, nil
}

func (r *sucursalStub) ReemplazarDeUsuario(_ context.Context, usuarioID string, ids []int64) error {
	r.m.miembros[usuarioID] = append([]int64(nil), ids...)
	return nil
}

func (r *sucursalStub) EliminarDeUsuario(_ context.Context, usuarioID string) (int64, error) {
	n := int64(len(r.m.miembros[usuarioID]))
	delete(r.m.miembros, usuarioID)
	return n, nil
}

// ─── CuartelRepository ───────────────────────────────────────────────────────

type cuartelStub struct{ m *memoria }

var _ repository.CuartelRepository = (*cuartelStub)(nil)

func (r *cuartelStub) List(_ context.Context, sucursales []int64) ([]model.CuartelDetalle, error) {
	lista := []model.CuartelDetalle{}
	for id := int64(1); id <= r.m.seq; id++ {
		if c, ok := r.m.cuartelActivo(id); ok && tieneID(sucursales, r.m.sucursalDe(c)) {
			lista = append(lista, *r.m.cuartelDetalle(c))
		}
	}
	return lista, nil
}

func (r *cuartelStub) FindEnAlcance(_ context.Context, id int64, sucursales []int64) (*model.CuartelDetalle, error) {
	c, ok := r.m.cuartelActivo(id)
	if !ok || !tieneID(sucursales, r.m.sucursalDe(c)) {
		return nil, gorm.ErrRecordNotFound
	}
	return r.m.cuartelDetalle(c), nil
}

func (r *cuartelStub) Update(_ context.Context, id int64, cambios map[string]interface{}) error {
	c, ok := r.m.cuarteles[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	for k, v := range cambios {
		switch k {
		case "nombre":
			c.Nombre = v.(string)
		case "n_hileras":
			c.NHileras = v.(int)
		case "ano_plantacion":
			c.AnoPlantacion = ptr(v.(int))
		case "estado_catastro":
			c.EstadoCatastro = ptr(v.(string))
		case "id_variedad":
			c.IDVariedad = ptr(v.(int64))
		}
	}
	ahora := time.Now()
	c.FechaActualizacion = &ahora
	return nil
}

func (r *cuartelStub) SoftDelete(_ context.Context, id int64) error {
	if c, ok := r.m.cuarteles[id]; ok {
		c.IDEstado = model.EstadoInactivo
	}
	return nil
}

func (r *cuartelStub) FindTx(_ *gorm.DB, id int64) (*model.CuartelDetalle, error) {
	c, ok := r.m.cuartelActivo(id)
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return r.m.cuartelDetalle(c), nil
}

func (r *cuartelStub) CreateTx(_ *gorm.DB, c *model.Cuartel) error {
	c.ID = r.m.id()
	cp := *c
	r.m.cuarteles[c.ID] = &cp
	return nil
}

func (r *cuartelStub) SetNHilerasTx(_ *gorm.DB, id int64, n int) error {
	if c, ok := r.m.cuarteles[id]; ok {
		c.NHileras = n
	}
	return nil
}

func (r *cuartelStub) DB() *gorm.DB { return nil }

// ─── HileraRepository ────────────────────────────────────────────────────────

type hileraStub struct{ m *memoria }

var _ repository.HileraRepository = (*hileraStub)(nil)

func (r *hileraStub) ListPorCuarteles(_ context.Context, cuartelIDs ...int64) ([]model.HileraConteo, error) {
	lista := []model.HileraConteo{}
	for _, cid := range cuartelIDs {
		for _, h := range r.m.hilerasActivas(cid) {
			lista = append(lista, model.HileraConteo{Hilera: *h, PlantasActivas: int64(len(r.m.plantasActivas(h.ID)))})
		}
	}
	return lista, nil
}

func (r *hileraStub) FindEnAlcance(_ context.Context, id int64, sucursales []int64) (*model.Hilera, error) {
	h, c, ok := r.m.hileraActiva(id)
	if !ok || !tieneID(sucursales, r.m.sucursalDe(c)) {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *h
	return &cp, nil
}

func (r *hileraStub) ExisteNumero(_ context.Context, cuartelID int64, hilera string, excluirID int64) (bool, error) {
	for _, h := range r.m.hilerasActivas(cuartelID) {
		if h.ID != excluirID && h.Hilera == hilera {
			return true, nil
		}
	}
	return false, nil
}

func (r *hileraStub) UpdateNumero(_ context.Context, id int64, hilera string) error {
	if h, ok := r.m.hileras[id]; ok {
		h.Hilera = hilera
	}
	return nil
}

func (r *hileraStub) FindTx(_ *gorm.DB, id int64) (*model.Hilera, error) {
	h, _, ok := r.m.hileraActiva(id)
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *h
	return &cp, nil
}

func (r *hileraStub) NumerosActivosTx(_ *gorm.DB, cuartelID int64) ([]string, error) {
	var numeros []string
	for _, h := range r.m.hilerasActivas(cuartelID) {
		numeros = append(numeros, h.Hilera)
	}
	return numeros, nil
}

func (r *hileraStub) CountActivasTx(_ *gorm.DB, cuartelID int64) (int64, error) {
	return int64(len(r.m.hilerasActivas(cuartelID))), nil
}

// CreateTx fills the IDs into the caller's slice like GORM does.
func (r *hileraStub) CreateTx(_ *gorm.DB, hileras []model.Hilera) error {
	for i := range hileras {
		hileras[i].ID = r.m.id()
		cp := hileras[i]
		r.m.hileras[cp.ID] = &cp
	}
	return nil
}

func (r *hileraStub) SoftDeleteTx(_ *gorm.DB, id int64) error {
	if h, ok := r.m.hileras[id]; ok {
		h.IDEstado = model.EstadoInactivo
	}
	return nil
}

// ─── PlantaRepository ────────────────────────────────────────────────────────

type plantaStub struct {
	m            *memoria
	conRegistros map[int64]bool
}

var _ repository.PlantaRepository = (*plantaStub)(nil)

func (r *plantaStub) ListPorHilera(_ context.Context, hileraID int64) ([]model.Planta, error) {
	lista := []model.Planta{}
	for _, p := range r.m.plantasActivas(hileraID) {
		lista = append(lista, *p)
	}
	return lista, nil
}

func (r *plantaStub) ListPorCuartel(_ context.Context, cuartelID int64) ([]model.PlantaDetalle, error) {
	lista := []model.PlantaDetalle{}
	for _, h := range r.m.hilerasActivas(cuartelID) {
		for _, p := range r.m.plantasActivas(h.ID) {
			if d, ok := r.m.plantaDetalle(p.ID); ok {
				lista = append(lista, *d)
			}
		}
	}
	return lista, nil
}

func (r *plantaStub) FindEnAlcance(_ context.Context, id int64, sucursales []int64) (*model.PlantaDetalle, error) {
	d, ok := r.m.plantaDetalle(id)
	if !ok || !tieneID(sucursales, d.IDSucursalEfectiva) {
		return nil, gorm.ErrRecordNotFound
	}
	return d, nil
}

func (r *plantaStub) Buscar(_ context.Context, f dto.BuscarPlantaFilter, sucursales []int64) ([]model.PlantaDetalle, error) {
	lista := []model.PlantaDetalle{}
	for id := int64(1); id <= r.m.seq; id++ {
		d, ok := r.m.plantaDetalle(id)
		if !ok || !tieneID(sucursales, d.IDSucursalEfectiva) {
			continue
		}
		if f.CuartelID != nil && d.IDCuartel != *f.CuartelID {
			continue
		}
		if f.HileraID != nil && d.IDHilera != *f.HileraID {
			continue
		}
		if f.Planta != "" && d.Planta.Planta != f.Planta {
			continue
		}
		lista = append(lista, *d)
	}
	return lista, nil
}

func (r *plantaStub) ExisteNumero(_ context.Context, hileraID int64, planta string, excluirID int64) (bool, error) {
	for _, p := range r.m.plantasActivas(hileraID) {
		if p.ID != excluirID && p.Planta == planta {
			return true, nil
		}
	}
	return false, nil
}

func (r *plantaStub) CountActivas(_ context.Context, hileraID int64) (int64, error) {
	return int64(len(r.m.plantasActivas(hileraID))), nil
}

func (r *plantaStub) TieneRegistros(_ context.Context, id int64) (bool, error) {
	return r.conRegistros[id], nil
}

func (r *plantaStub) Create(_ context.Context, p *model.Planta) error {
	p.ID = r.m.id()
	cp := *p
	r.m.plantas[p.ID] = &cp
	return nil
}

func (r *plantaStub) Update(_ context.Context, id int64, cambios map[string]interface{}) error {
	p, ok := r.m.plantas[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	for k, v := range cambios {
		switch k {
		case "planta":
			p.Planta = v.(string)
		case "ubicacion":
			p.Ubicacion = v.(*string)
		}
	}
	return nil
}

func (r *plantaStub) SoftDelete(_ context.Context, id int64) error {
	if p, ok := r.m.plantas[id]; ok {
		p.IDEstado = model.EstadoInactivo
	}
	return nil
}

func (r *plantaStub) FindDetalleTx(_ *gorm.DB, id int64) (*model.PlantaDetalle, error) {
	d, ok := r.m.plantaDetalle(id)
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return d, nil
}

func (r *plantaStub) NumerosActivosTx(_ *gorm.DB, hileraID int64) ([]string, error) {
	var numeros []string
	for _, p := range r.m.plantasActivas(hileraID) {
		numeros = append(numeros, p.Planta)
	}
	return numeros, nil
}

func (r *plantaStub) CreateTx(_ *gorm.DB, plantas []model.Planta) error {
	for i := range plantas {
		plantas[i].ID = r.m.id()
		cp := plantas[i]
		r.m.plantas[cp.ID] = &cp
	}
	return nil
}

func (r *plantaStub) SoftDeletePorHileraTx(_ *gorm.DB, hileraID int64) (int64, error) {
	var n int64
	for _, p := range r.m.plantasActivas(hileraID) {
		p.IDEstado = model.EstadoInactivo
		n++
	}
	return n, nil
}

// ─── EspecieRepository ───────────────────────────────────────────────────────

type especieStub struct {
	m                    *memoria
	cuartelesPorVariedad map[int64]int64
}

var _ repository.EspecieRepository = (*especieStub)(nil)

func (r *especieStub) ListEspecies(_ context.Context) ([]model.Especie, error) {
	lista := []model.Especie{}
	for id := int64(1); id <= r.m.seq; id++ {
		if e, ok := r.m.especies[id]; ok && e.IDEstado == model.EstadoActivo {
			lista = append(lista, *e)
		}
	}
	return lista, nil
}

func (r *especieStub) FindEspecie(_ context.Context, id int64) (*model.Especie, error) {
	e, ok := r.m.especies[id]
	if !ok || e.IDEstado != model.EstadoActivo {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *e
	return &cp, nil
}

func (r *especieStub) CreateEspecie(_ context.Context, e *model.Especie) error {
	e.ID = r.m.id()
	cp := *e
	r.m.especies[e.ID] = &cp
	return nil
}

func (r *especieStub) UpdateEspecie(_ context.Context, id int64, cambios map[string]interface{}) error {
	e, ok := r.m.especies[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if v, ok := cambios["nombre"]; ok {
		e.Nombre = v.(string)
	}
	return nil
}

func (r *especieStub) SoftDeleteEspecie(_ context.Context, id int64) error {
	if e, ok := r.m.especies[id]; ok {
		e.IDEstado = model.EstadoInactivo
	}
	return nil
}

func (r *especieStub) ExisteEspecie(_ context.Context, nombre string, excluirID int64) (bool, error) {
	for _, e := range r.m.especies {
		if e.ID != excluirID && e.IDEstado == model.EstadoActivo && strings.EqualFold(e.Nombre, nombre) {
			return true, nil
		}
	}
	return false, nil
}

func (r *especieStub) CountVariedadesActivas(_ context.Context, especieID int64) (int64, error) {
	var n int64
	for _, v := range r.m.variedades {
		if v.IDEspecie == especieID && v.IDEstado == model.EstadoActivo {
			n++
		}
	}
	return n, nil
}

func (r *especieStub) ListVariedades(_ context.Context, especieID *int64) ([]model.VariedadDetalle, error) {
	lista := []model.VariedadDetalle{}
	for id := int64(1); id <= r.m.seq; id++ {
		v, ok := r.m.variedades[id]
		if !ok || v.IDEstado != model.EstadoActivo || (especieID != nil && v.IDEspecie != *especieID) {
			continue
		}
		d := model.VariedadDetalle{Variedad: *v}
		if e, ok := r.m.especies[v.IDEspecie]; ok {
			d.NombreEspecie = ptr(e.Nombre)
		}
		lista = append(lista, d)
	}
	return lista, nil
}

func (r *especieStub) FindVariedad(_ context.Context, id int64) (*model.Variedad, error) {
	v, ok := r.m.variedades[id]
	if !ok || v.IDEstado != model.EstadoActivo {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *v
	return &cp, nil
}

func (r *especieStub) CreateVariedad(_ context.Context, v *model.Variedad) error {
	v.ID = r.m.id()
	cp := *v
	r.m.variedades[v.ID] = &cp
	return nil
}

func (r *especieStub) UpdateVariedad(_ context.Context, id int64, cambios map[string]interface{}) error {
	v, ok := r.m.variedades[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if n, ok := cambios["nombre"]; ok {
		v.Nombre = n.(string)
	}
	if e, ok := cambios["id_especie"]; ok {
		v.IDEspecie = e.(int64)
	}
	return nil
}

func (r *especieStub) SoftDeleteVariedad(_ context.Context, id int64) error {
	if v, ok := r.m.variedades[id]; ok {
		v.IDEstado = model.EstadoInactivo
	}
	return nil
}

func (r *especieStub) ExisteVariedad(_ context.Context, especieID int64, nombre string, excluirID int64) (bool, error) {
	for _, v := range r.m.variedades {
		if v.ID != excluirID && v.IDEspecie == especieID && v.IDEstado == model.EstadoActivo && strings.EqualFold(v.Nombre, nombre) {
			return true, nil
		}
	}
	return false, nil
}

func (r *especieStub) CountCuartelesActivos(_ context.Context, variedadID int64) (int64, error) {
	return r.cuartelesPorVariedad[variedadID], nil
}

// ─── ConteoRepository ────────────────────────────────────────────────────────

type conteoStub struct{ m *memoria }

var _ repository.ConteoRepository = (*conteoStub)(nil)

func (r *conteoStub) ListAtributos(_ context.Context) ([]model.Atributo, error) {
	lista := []model.Atributo{}
	for id := int64(1); id <= r.m.seq; id++ {
		if a, ok := r.m.atributos[id]; ok {
			lista = append(lista, *a)
		}
	}
	return lista, nil
}

func (r *conteoStub) FindAtributo(_ context.Context, id int64) (*model.Atributo, error) {
	a, ok := r.m.atributos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *a
	return &cp, nil
}

func (r *conteoStub) ListOptimos(_ context.Context, atributoID *int64) ([]model.AtributoOptimo, error) {
	lista := []model.AtributoOptimo{}
	for id := int64(1); id <= r.m.seq; id++ {
		o, ok := r.m.optimos[id]
		if ok && o.IDEstado == model.EstadoActivo && (atributoID == nil || o.IDAtributo == *atributoID) {
			lista = append(lista, *o)
		}
	}
	return lista, nil
}

func (r *conteoStub) FindOptimo(_ context.Context, id int64) (*model.AtributoOptimo, error) {
	o, ok := r.m.optimos[id]
	if !ok || o.IDEstado != model.EstadoActivo {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *o
	return &cp, nil
}

func (r *conteoStub) CreateOptimo(_ context.Context, o *model.AtributoOptimo) error {
	o.ID = r.m.id()
	cp := *o
	r.m.optimos[o.ID] = &cp
	return nil
}

func (r *conteoStub) UpdateOptimo(_ context.Context, id int64, cambios map[string]interface{}) error {
	o, ok := r.m.optimos[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if v, ok := cambios["edad_min"]; ok {
		o.EdadMin = v.(int)
	}
	if v, ok := cambios["edad_max"]; ok {
		o.EdadMax = v.(int)
	}
	return nil
}

func (r *conteoStub) SoftDeleteOptimo(_ context.Context, id int64) error {
	if o, ok := r.m.optimos[id]; ok {
		o.IDEstado = model.EstadoInactivo
	}
	return nil
}

func (r *conteoStub) ListAtributoEspecie(_ context.Context, especieID *int64) ([]model.AtributoEspecie, error) {
	lista := []model.AtributoEspecie{}
	for id := int64(1); id <= r.m.seq; id++ {
		ae, ok := r.m.atributoEspecies[id]
		if ok && ae.IDEstado == model.EstadoActivo && (especieID == nil || ae.IDEspecie == *especieID) {
			lista = append(lista, *ae)
		}
	}
	return lista, nil
}

func (r *conteoStub) FindAtributoEspecie(_ context.Context, id int64) (*model.AtributoEspecie, error) {
	ae, ok := r.m.atributoEspecies[id]
	if !ok || ae.IDEstado != model.EstadoActivo {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *ae
	return &cp, nil
}

func (r *conteoStub) CreateAtributoEspecie(_ context.Context, ae *model.AtributoEspecie) error {
	ae.ID = r.m.id()
	cp := *ae
	r.m.atributoEspecies[ae.ID] = &cp
	return nil
}

func (r *conteoStub) UpdateAtributoEspecie(_ context.Context, id int64, cambios map[string]interface{}) error {
	ae, ok := r.m.atributoEspecies[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if v, ok := cambios["id_especie"]; ok {
		ae.IDEspecie = v.(int64)
	}
	return nil
}

func (r *conteoStub) SoftDeleteAtributoEspecie(_ context.Context, id int64) error {
	if ae, ok := r.m.atributoEspecies[id]; ok {
		ae.IDEstado = model.EstadoInactivo
	}
	return nil
}

func (r *conteoStub) ExisteAtributoEspecie(_ context.Context, atributoID, especieID, excluirID int64) (bool, error) {
	for _, ae := range r.m.atributoEspecies {
		if ae.ID != excluirID && ae.IDEstado == model.EstadoActivo && ae.IDAtributo == atributoID && ae.IDEspecie == especieID {
			return true, nil
		}
	}
	return false, nil
}

// ─── MapeoRepository ─────────────────────────────────────────────────────────

type mapeoStub struct {
	m         *memoria
	errInsert error
}

var _ repository.MapeoRepository = (*mapeoStub)(nil)

func (r *mapeoStub) campaniaDetalle(rm *model.RegistroMapeo, sucursales []int64) (*model.RegistroMapeoDetalle, bool) {
	c, ok := r.m.cuarteles[rm.IDCuartel]
	if !ok || !tieneID(sucursales, r.m.sucursalDe(c)) {
		return nil, false
	}
	return &model.RegistroMapeoDetalle{RegistroMapeo: *rm, NombreCuartel: c.Nombre}, true
}

func (r *mapeoStub) ListRegistrosMapeo(_ context.Context, sucursales []int64) ([]model.RegistroMapeoDetalle, error) {
	lista := []model.RegistroMapeoDetalle{}
	for _, rm := range r.m.campanias {
		if d, ok := r.campaniaDetalle(rm, sucursales); ok {
			lista = append(lista, *d)
		}
	}
	return lista, nil
}

func (r *mapeoStub) FindRegistroMapeo(_ context.Context, id string, sucursales []int64) (*model.RegistroMapeoDetalle, error) {
	rm, ok := r.m.campanias[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	d, ok := r.campaniaDetalle(rm, sucursales)
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return d, nil
}

func (r *mapeoStub) ExisteActivoPorCuartel(_ context.Context, cuartelID int64) (bool, error) {
	for _, rm := range r.m.campanias {
		if rm.IDCuartel == cuartelID && rm.IDEstado == model.EstadoActivo {
			return true, nil
		}
	}
	return false, nil
}

func (r *mapeoStub) CreateRegistroMapeo(_ context.Context, rm *model.RegistroMapeo) error {
	cp := *rm
	r.m.campanias[rm.ID] = &cp
	return nil
}

func (r *mapeoStub) UpdateRegistroMapeo(_ context.Context, id string, cambios map[string]interface{}) error {
	rm, ok := r.m.campanias[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	for k, v := range cambios {
		switch k {
		case "fecha_inicio":
			rm.FechaInicio = v.(time.Time)
		case "fecha_termino":
			rm.FechaTermino = v.(time.Time)
		case "id_estado":
			rm.IDEstado = v.(int)
		}
	}
	return nil
}

func claveEstado(campaniaID string, hileraID int64) string {
	return fmt.Sprintf("%s|%d", campaniaID, hileraID)
}

func (r *mapeoStub) ListEstadosHileras(_ context.Context, registroMapeoID string) ([]model.EstadoHilera, error) {
	lista := []model.EstadoHilera{}
	for _, e := range r.m.estados {
		if e.IDRegistroMapeo == registroMapeoID {
			lista = append(lista, *e)
		}
	}
	return lista, nil
}

func (r *mapeoStub) FindEstadoHilera(_ context.Context, registroMapeoID string, hileraID int64) (*model.EstadoHilera, error) {
	e, ok := r.m.estados[claveEstado(registroMapeoID, hileraID)]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *e
	return &cp, nil
}

// UpsertEstadoHilera keeps the original ID and creation date on conflict.
func (r *mapeoStub) UpsertEstadoHilera(_ context.Context, e *model.EstadoHilera) error {
	clave := claveEstado(e.IDRegistroMapeo, e.IDHilera)
	if actual, ok := r.m.estados[clave]; ok {
		actual.Estado = e.Estado
		actual.IDUsuario = e.IDUsuario
		actual.Observaciones = e.Observaciones
		actual.FechaActualizacion = e.FechaActualizacion
		return nil
	}
	cp := *e
	r.m.estados[clave] = &cp
	return nil
}

func (r *mapeoStub) ListRegistros(_ context.Context, f dto.RegistroFilter, sucursales []int64) ([]model.Registro, error) {
	lista := []model.Registro{}
	for _, reg := range r.m.registros {
		d, ok := r.m.plantaDetalle(reg.IDPlanta)
		if !ok || !tieneID(sucursales, d.IDSucursalEfectiva) {
			continue
		}
		if f.PlantaID != nil && reg.IDPlanta != *f.PlantaID {
			continue
		}
		if f.EvaluadorID != "" && reg.IDEvaluador != f.EvaluadorID {
			continue
		}
		lista = append(lista, reg)
	}
	return lista, nil
}

func (r *mapeoStub) FindRegistro(_ context.Context, id string, sucursales []int64) (*model.Registro, error) {
	for _, reg := range r.m.registros {
		if reg.ID != id {
			continue
		}
		if d, ok := r.m.plantaDetalle(reg.IDPlanta); ok && tieneID(sucursales, d.IDSucursalEfectiva) {
			cp := reg
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *mapeoStub) CreateRegistro(_ context.Context, reg *model.Registro) error {
	if r.errInsert != nil {
		return r.errInsert
	}
	r.m.registros = append(r.m.registros, *reg)
	return nil
}

func (r *mapeoStub) CreateRegistrosTx(_ *gorm.DB, regs []model.Registro) error {
	if r.errInsert != nil {
		return r.errInsert
	}
	r.m.registros = append(r.m.registros, regs...)
	return nil
}

func (r *mapeoStub) ListTiposPlanta(_ context.Context, empresaID *int64) ([]model.TipoPlanta, error) {
	lista := []model.TipoPlanta{}
	for _, t := range r.m.tipos {
		if t.IDEstado == model.EstadoActivo && (empresaID == nil || t.IDEmpresa == *empresaID) {
			lista = append(lista, t)
		}
	}
	return lista, nil
}

func (r *mapeoStub) DB() *gorm.DB { return nil }

// ─── Blob store ──────────────────────────────────────────────────────────────

type blobMemoria struct{ objetos map[string][]byte }

var _ infra.BlobStore = (*blobMemoria)(nil)

func nuevoBlob() *blobMemoria { return &blobMemoria{objetos: map[string][]byte{}} }

func (b *blobMemoria) Put(_ context.Context, key string, data []byte, _ string) (string, error) {
	ref := "s3://fotos/" + key
	b.objetos[ref] = data
	return ref, nil
}

func (b *blobMemoria) PresignURL(_ context.Context, ref string, _ time.Duration) (string, error) {
	return "https://firmada/" + ref, nil
}

func (b *blobMemoria) Delete(_ context.Context, ref string) error {
	delete(b.objetos, ref)
	return nil
}
