package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/soporte-code/API-PORTALWEB/internal/apierror"
	"github.com/soporte-code/API-PORTALWEB/internal/dto"
	"github.com/soporte-code/API-PORTALWEB/internal/infra"
	"github.com/soporte-code/API-PORTALWEB/internal/model"
	"github.com/soporte-code/API-PORTALWEB/internal/repository"
	"github.com/soporte-code/API-PORTALWEB/internal/worker"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// Operaciones de carga masiva; también son la etiqueta de las métricas.
const (
	OpCatastroMasivo   = "catastro_masivo"
	OpPlantasMasivo    = "plantas_masivo"
	OpBulkHileras      = "bulk_hileras"
	OpBulkPlantas      = "bulk_plantas"
	OpCuartelesCascada = "cuarteles_cascada"
	OpRegistrosBulk    = "registros_bulk"
)

const formatoHoraRegistro = "2006-01-02 15:04:05"

// CargaMasivaService runs every bulk endpoint. Each call is one transaction:
// invalid elements are reported in the ReporteCarga and skipped, valid ones
// commit together. Only infrastructure failures abort the whole call.
type CargaMasivaService interface {
	CatastroMasivo(ctx context.Context, usuarioID string, req dto.CatastroMasivoRequest) (*dto.ReporteCarga, error)
	PlantasMasivo(ctx context.Context, usuarioID string, req dto.PlantasMasivoRequest) (*dto.ReporteCarga, error)
	BulkHileras(ctx context.Context, usuarioID string, req dto.BulkHilerasRequest) (*dto.ReporteCarga, error)
	BulkPlantas(ctx context.Context, usuarioID string, req dto.BulkPlantasRequest) (*dto.ReporteCarga, error)
	CuartelesCascada(ctx context.Context, usuarioID string, req dto.CuartelesBulkRequest) (*dto.ReporteCarga, error)
	RegistrosBulk(ctx context.Context, usuarioID string, req dto.RegistrosBulkRequest) (*dto.ReporteCarga, error)
	AgregarHileras(ctx context.Context, usuarioID string, cuartelID int64, req dto.AgregarHilerasRequest) (*dto.HilerasAgregadasResponse, error)
	EliminarHileraCascada(ctx context.Context, usuarioID string, hileraID int64) (*dto.HileraEliminadaResponse, error)
}

type cargaMasivaService struct {
	cuarteles  repository.CuartelRepository
	hileras    repository.HileraRepository
	plantas    repository.PlantaRepository
	mapeo      repository.MapeoRepository
	sucursales repository.SucursalRepository
	especies   repository.EspecieRepository
	usuarios   repository.UsuarioRepository
	alcance    AlcanceService
	blob       infra.BlobStore
	dispatcher *worker.Dispatcher
	maxItems   int
	maxGen     int
}

// LimitesCarga bounds a bulk call. MaxElementos caps the elements of the
// request and any per-element count (n_hileras, n_plantas); MaxGenerados caps
// the rows and plants one call may create in total.
type LimitesCarga struct {
	MaxElementos int
	MaxGenerados int
}

func NewCargaMasivaService(
	cuarteles repository.CuartelRepository,
	hileras repository.HileraRepository,
	plantas repository.PlantaRepository,
	mapeo repository.MapeoRepository,
	sucursales repository.SucursalRepository,
	especies repository.EspecieRepository,
	usuarios repository.UsuarioRepository,
	alcance AlcanceService,
	blob infra.BlobStore,
	dispatcher *worker.Dispatcher,
	limites LimitesCarga,
) CargaMasivaService {
	if limites.MaxElementos <= 0 {
		limites.MaxElementos = 1000
	}
	if limites.MaxGenerados <= 0 {
		limites.MaxGenerados = 100000
	}
	return &cargaMasivaService{
		cuarteles: cuarteles, hileras: hileras, plantas: plantas, mapeo: mapeo,
		sucursales: sucursales, especies: especies, usuarios: usuarios,
		alcance: alcance, blob: blob, dispatcher: dispatcher,
		maxItems: limites.MaxElementos, maxGen: limites.MaxGenerados,
	}
}

// validarLote rejects empty and oversized batches before any transaction.
func (s *cargaMasivaService) validarLote(n int) error {
	if n == 0 {
		return apierror.Validacion("El lote no contiene elementos")
	}
	if n > s.maxItems {
		return apierror.LoteExcedido(fmt.Sprintf("Maximo %d elementos por carga masiva", s.maxItems))
	}
	return nil
}

// validarGenerados rejects, before any transaction, a call whose valid
// per-element counts add up to more rows or plants than one call may create.
func (s *cargaMasivaService) validarGenerados(total int) error {
	if total > s.maxGen {
		return apierror.LoteExcedido(fmt.Sprintf("La carga generaria %d elementos; maximo %d por carga masiva", total, s.maxGen))
	}
	return nil
}

// cantidadSolicitada is the part of a per-element count that counts towards
// validarGenerados. Counts that cantidadValida rejects do not.
func (s *cargaMasivaService) cantidadSolicitada(n *int) int {
	if n == nil || *n <= 0 || *n > s.maxItems {
		return 0
	}
	return *n
}

// cantidadValida reports an element whose count is not in 1..maxItems.
func (s *cargaMasivaService) cantidadValida(rep *dto.ReporteCarga, fila int, campo string, n int) bool {
	switch {
	case n <= 0:
		rep.AgregarError(fila, campo, campo+" debe ser mayor que 0")
	case n > s.maxItems:
		rep.AgregarError(fila, campo, fmt.Sprintf("%s no puede superar %d", campo, s.maxItems))
	default:
		return true
	}
	return false
}

// cuartelTx resolves the field referenced by an element. A nil result with a
// nil error means the element failed and was already reported.
func (s *cargaMasivaService) cuartelTx(tx *gorm.DB, rep *dto.ReporteCarga, fila int, campo string, id int64, sucursales []int64) (*model.CuartelDetalle, error) {
	c, err := s.cuarteles.FindTx(tx, id)
	if err != nil {
		if errorDeBusqueda(err) {
			return nil, err
		}
		rep.AgregarError(fila, campo, fmt.Sprintf("Cuartel con ID %d no existe", id))
		return nil, nil
	}
	if !contiene(sucursales, c.IDSucursalEfectiva) {
		rep.AgregarError(fila, campo, fmt.Sprintf("No tienes acceso al cuartel %d", id))
		return nil, nil
	}
	return c, nil
}

// terminar records metrics and enqueues the summary mail once the batch has
// committed.
func (s *cargaMasivaService) terminar(ctx context.Context, usuarioID, operacion string, rep *dto.ReporteCarga) {
	infra.CargaMasivaElementos.WithLabelValues(operacion, "creado").Add(float64(rep.Creados))
	infra.CargaMasivaElementos.WithLabelValues(operacion, "error").Add(float64(len(rep.Errores)))
	infra.CargaMasivaElementos.WithLabelValues(operacion, "warning").Add(float64(len(rep.Warnings)))

	log.Info().
		Str("operacion", operacion).
		Str("usuario", usuarioID).
		Int("procesados", rep.Procesados).
		Int("creados", rep.Creados).
		Int("errores", len(rep.Errores)).
		Msg("carga masiva completada")

	if !s.dispatcher.Habilitado() || rep.Creados == 0 {
		return
	}
	u, err := s.usuarios.FindByID(ctx, usuarioID)
	if err != nil || u.Correo == "" {
		return
	}
	n := worker.Notificacion{
		Para:   u.Correo,
		Asunto: "Carga masiva completada",
		Cuerpo: fmt.Sprintf("Operacion %s: %d de %d elementos creados, %d errores, %d advertencias.",
			operacion, rep.Creados, rep.Procesados, len(rep.Errores), len(rep.Warnings)),
	}
	if err := s.dispatcher.EncolarNotificacion(ctx, n); err != nil {
		log.Warn().Err(err).Str("operacion", operacion).Msg("no se pudo encolar la notificacion")
	}
}

// CatastroMasivo generates "Hilera 1..N" for fields that have no active rows.
func (s *cargaMasivaService) CatastroMasivo(ctx context.Context, usuarioID string, req dto.CatastroMasivoRequest) (*dto.ReporteCarga, error) {
	if err := s.validarLote(len(req.Cuarteles)); err != nil {
		return nil, err
	}
	total := 0
	for _, item := range req.Cuarteles {
		total += s.cantidadSolicitada(item.NHileras)
	}
	if err := s.validarGenerados(total); err != nil {
		return nil, err
	}
	sucursales, err := s.alcance.Sucursales(ctx, usuarioID)
	if err != nil {
		return nil, err
	}

	rep := dto.NuevoReporte(len(req.Cuarteles))
	ahora := time.Now()
	err = runTx(ctx, s.cuarteles.DB(), func(tx *gorm.DB) error {
		for i, item := range req.Cuarteles {
			fila := i + 1
			if item.ID == nil {
				rep.AgregarError(fila, "id", "Campo requerido: id")
				continue
			}
			if item.NHileras == nil {
				rep.AgregarError(fila, "n_hileras", "Campo requerido: n_hileras")
				continue
			}
			c, err := s.cuartelTx(tx, rep, fila, "id", *item.ID, sucursales)
			if err != nil {
				return err
			}
			if c == nil {
				continue
			}
			if !s.cantidadValida(rep, fila, "n_hileras", *item.NHileras) {
				continue
			}
			activas, err := s.hileras.CountActivasTx(tx, c.ID)
			if err != nil {
				return err
			}
			if activas > 0 {
				rep.AgregarError(fila, "id", fmt.Sprintf("El cuartel %d ya tiene %d hileras activas", c.ID, activas))
				continue
			}

			if err := s.hileras.CreateTx(tx, hilerasNumeradas(c.ID, 1, *item.NHileras, nil, ahora)); err != nil {
				return err
			}
			if err := s.cuarteles.SetNHilerasTx(tx, c.ID, *item.NHileras); err != nil {
				return err
			}
			rep.HilerasCreadas += *item.NHileras
			rep.Creados++
		}
		return nil
	})
	if err != nil {
		return nil, siDuplicado(err, "Hilera duplicada en el cuartel")
	}
	s.terminar(ctx, usuarioID, OpCatastroMasivo, rep)
	return rep, nil
}

// PlantasMasivo generates plants "1..N" for rows that have no active plants.
func (s *cargaMasivaService) PlantasMasivo(ctx context.Context, usuarioID string, req dto.PlantasMasivoRequest) (*dto.ReporteCarga, error) {
	if err := s.validarLote(len(req.Plantas)); err != nil {
		return nil, err
	}
	total := 0
	for _, item := range req.Plantas {
		total += s.cantidadSolicitada(item.NPlantas)
	}
	if err := s.validarGenerados(total); err != nil {
		return nil, err
	}
	sucursales, err := s.alcance.Sucursales(ctx, usuarioID)
	if err != nil {
		return nil, err
	}

	rep := dto.NuevoReporte(len(req.Plantas))
	ahora := time.Now()
	err = runTx(ctx, s.cuarteles.DB(), func(tx *gorm.DB) error {
		for i, item := range req.Plantas {
			fila := i + 1
			switch {
			case item.IDCuartel == nil:
				rep.AgregarError(fila, "id_cuartel", "Campo requerido: id_cuartel")
				continue
			case item.IDHilera == nil:
				rep.AgregarError(fila, "id_hilera", "Campo requerido: id_hilera")
				continue
			case item.NPlantas == nil:
				rep.AgregarError(fila, "n_plantas", "Campo requerido: n_plantas")
				continue
			}

			c, err := s.cuartelTx(tx, rep, fila, "id_cuartel", *item.IDCuartel, sucursales)
			if err != nil {
				return err
			}
			if c == nil {
				continue
			}
			// A missing row and a row of another field read the same.
			h, err := s.hileras.FindTx(tx, *item.IDHilera)
			if err != nil && errorDeBusqueda(err) {
				return err
			}
			if err != nil || h.IDCuartel != c.ID {
				rep.AgregarError(fila, "id_hilera", fmt.Sprintf("La hilera %d no existe en el cuartel %d", *item.IDHilera, c.ID))
				continue
			}
			if !s.cantidadValida(rep, fila, "n_plantas", *item.NPlantas) {
				continue
			}
			existentes, err := s.plantas.NumerosActivosTx(tx, h.ID)
			if err != nil {
				return err
			}
			if len(existentes) > 0 {
				rep.AgregarError(fila, "id_hilera", fmt.Sprintf("La hilera %d ya tiene %d plantas activas", h.ID, len(existentes)))
				continue
			}

			if err := s.plantas.CreateTx(tx, plantasNumeradas(h.ID, *item.NPlantas, ahora)); err != nil {
				return err
			}
			rep.PlantasCreadas += *item.NPlantas
			rep.Creados++
		}
		return nil
	})
	if err != nil {
		return nil, siDuplicado(err, "Planta duplicada en la hilera")
	}
	s.terminar(ctx, usuarioID, OpPlantasMasivo, rep)
	return rep, nil
}

// BulkHileras creates rows with caller-supplied identifiers in one field.
func (s *cargaMasivaService) BulkHileras(ctx context.Context, usuarioID string, req dto.BulkHilerasRequest) (*dto.ReporteCarga, error) {
	if req.IDCuartel == nil {
		return nil, apierror.Validacion("Se requiere id_cuartel")
	}
	if err := s.validarLote(len(req.Hileras)); err != nil {
		return nil, err
	}
	sucursales, err := s.alcance.Sucursales(ctx, usuarioID)
	if err != nil {
		return nil, err
	}
	cuartelID := *req.IDCuartel
	if _, err := s.cuarteles.FindEnAlcance(ctx, cuartelID, sucursales); err != nil {
		return nil, siNoExiste(err, msgCuartelNoEncontrado)
	}

	rep := dto.NuevoReporte(len(req.Hileras))
	ahora := time.Now()
	err = runTx(ctx, s.cuarteles.DB(), func(tx *gorm.DB) error {
		existentes, err := s.hileras.NumerosActivosTx(tx, cuartelID)
		if err != nil {
			return err
		}
		ocupados := conjunto(existentes)

		nuevas := make([]model.Hilera, 0, len(req.Hileras))
		for i, id := range req.Hileras {
			fila := i + 1
			numero := id.String()
			if numero == "" {
				rep.AgregarError(fila, "hilera", "Campo requerido: hilera")
				continue
			}
			if ocupados[numero] {
				rep.AgregarError(fila, "hilera", fmt.Sprintf("La hilera %s ya existe en el cuartel", numero))
				continue
			}
			ocupados[numero] = true
			nuevas = append(nuevas, model.Hilera{
				Hilera:        numero,
				IDCuartel:     cuartelID,
				IDEstado:      model.EstadoActivo,
				FechaCreacion: &ahora,
			})
		}
		if len(nuevas) == 0 {
			return nil
		}
		if err := s.hileras.CreateTx(tx, nuevas); err != nil {
			return err
		}
		rep.HilerasCreadas = len(nuevas)
		rep.Creados = len(nuevas)
		n, err := s.hileras.CountActivasTx(tx, cuartelID)
		if err != nil {
			return err
		}
		return s.cuarteles.SetNHilerasTx(tx, cuartelID, int(n))
	})
	if err != nil {
		return nil, siDuplicado(err, "Hilera duplicada en el cuartel")
	}
	s.terminar(ctx, usuarioID, OpBulkHileras, rep)
	return rep, nil
}

// BulkPlantas creates plants with caller-supplied numbers in one row. A bad
// GPS value is stored as NULL with a warning.
func (s *cargaMasivaService) BulkPlantas(ctx context.Context, usuarioID string, req dto.BulkPlantasRequest) (*dto.ReporteCarga, error) {
	if req.IDHilera == nil {
		return nil, apierror.Validacion("Se requiere id_hilera")
	}
	if err := s.validarLote(len(req.Plantas)); err != nil {
		return nil, err
	}
	sucursales, err := s.alcance.Sucursales(ctx, usuarioID)
	if err != nil {
		return nil, err
	}
	hileraID := *req.IDHilera
	if _, err := s.hileras.FindEnAlcance(ctx, hileraID, sucursales); err != nil {
		return nil, siNoExiste(err, msgHileraNoEncontrada)
	}

	rep := dto.NuevoReporte(len(req.Plantas))
	ahora := time.Now()
	err = runTx(ctx, s.cuarteles.DB(), func(tx *gorm.DB) error {
		existentes, err := s.plantas.NumerosActivosTx(tx, hileraID)
		if err != nil {
			return err
		}
		nuevas := plantasDeCarga(rep, hileraID, req.Plantas, conjunto(existentes), ahora,
			func(k int, campo string) (int, string) { return k + 1, campo })
		if len(nuevas) == 0 {
			return nil
		}
		if err := s.plantas.CreateTx(tx, nuevas); err != nil {
			return err
		}
		rep.PlantasCreadas = len(nuevas)
		rep.Creados = len(nuevas)
		return nil
	})
	if err != nil {
		return nil, siDuplicado(err, "Planta duplicada en la hilera")
	}
	s.terminar(ctx, usuarioID, OpBulkPlantas, rep)
	return rep, nil
}

// plantasDeCarga validates the plants of one row and returns those to insert.
// ocupados holds the active numbers of the row and grows with each accepted
// plant, so repeats inside the batch are rejected too. ubicar maps the k-th
// plant and a field name to the fila/campo reported.
func plantasDeCarga(
	rep *dto.ReporteCarga,
	hileraID int64,
	cargas []dto.PlantaCarga,
	ocupados map[string]bool,
	ahora time.Time,
	ubicar func(k int, campo string) (int, string),
) []model.Planta {
	nuevas := make([]model.Planta, 0, len(cargas))
	for k, p := range cargas {
		numero := p.Planta.String()
		if numero == "" {
			fila, campo := ubicar(k, "planta")
			rep.AgregarError(fila, campo, "Campo requerido: planta")
			continue
		}
		if ocupados[numero] {
			fila, campo := ubicar(k, "planta")
			rep.AgregarError(fila, campo, fmt.Sprintf("La planta %s ya existe en la hilera", numero))
			continue
		}
		ubicacion, err := limpiarUbicacion(p.Ubicacion)
		if err != nil {
			fila, campo := ubicar(k, "ubicacion")
			rep.AgregarWarning(fila, campo, fmt.Sprintf("Formato de coordenadas invalido: %s", *p.Ubicacion))
		}
		ocupados[numero] = true
		nuevas = append(nuevas, model.Planta{
			Planta:        numero,
			IDHilera:      hileraID,
			Ubicacion:     ubicacion,
			IDEstado:      model.EstadoActivo,
			FechaCreacion: &ahora,
		})
	}
	return nuevas
}

// CuartelesCascada imports whole fields: the field, its "Hilera 1..N" rows
// and, when given, the plants of each row.
func (s *cargaMasivaService) CuartelesCascada(ctx context.Context, usuarioID string, req dto.CuartelesBulkRequest) (*dto.ReporteCarga, error) {
	if err := s.validarLote(len(req.Cuarteles)); err != nil {
		return nil, err
	}
	total := 0
	for _, c := range req.Cuarteles {
		total += s.cantidadSolicitada(c.NHileras)
		for _, h := range c.Hileras {
			total += len(h.Plantas)
		}
	}
	if err := s.validarGenerados(total); err != nil {
		return nil, err
	}
	sucursales, err := s.alcance.Sucursales(ctx, usuarioID)
	if err != nil {
		return nil, err
	}
	existentes, variedades, err := s.referenciasCascada(ctx, req.Cuarteles)
	if err != nil {
		return nil, err
	}

	rep := dto.NuevoReporte(len(req.Cuarteles))
	ahora := time.Now()
	err = runTx(ctx, s.cuarteles.DB(), func(tx *gorm.DB) error {
		for i := range req.Cuarteles {
			if err := s.importarCuartel(tx, rep, i+1, &req.Cuarteles[i], sucursales, existentes, variedades, ahora); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, siDuplicado(err, "Elemento duplicado en la carga")
	}
	s.terminar(ctx, usuarioID, OpCuartelesCascada, rep)
	return rep, nil
}

// referenciasCascada loads the branches and varieties named by the batch.
func (s *cargaMasivaService) referenciasCascada(ctx context.Context, cargas []dto.CuartelCarga) (map[int64]bool, map[int64]bool, error) {
	ids := make([]int64, 0, len(cargas))
	for _, c := range cargas {
		if c.IDSucursal != nil {
			ids = append(ids, *c.IDSucursal)
		}
	}
	encontradas, err := s.sucursales.ExistentesCampo(ctx, unicos(ids))
	if err != nil {
		return nil, nil, err
	}
	existentes := make(map[int64]bool, len(encontradas))
	for _, id := range encontradas {
		existentes[id] = true
	}

	lista, err := s.especies.ListVariedades(ctx, nil)
	if err != nil {
		return nil, nil, err
	}
	variedades := make(map[int64]bool, len(lista))
	for _, v := range lista {
		variedades[v.ID] = true
	}
	return existentes, variedades, nil
}

func (s *cargaMasivaService) importarCuartel(
	tx *gorm.DB,
	rep *dto.ReporteCarga,
	fila int,
	carga *dto.CuartelCarga,
	sucursales []int64,
	existentes, variedades map[int64]bool,
	ahora time.Time,
) error {
	nombre := strings.TrimSpace(carga.Nombre)
	faltantes := 0
	for _, f := range []struct {
		campo    string
		presente bool
	}{
		{"nombre", nombre != ""},
		{"id_sucursal", carga.IDSucursal != nil},
		{"superficie", carga.Superficie != nil},
		{"n_hileras", carga.NHileras != nil},
	} {
		if !f.presente {
			rep.AgregarError(fila, f.campo, "Campo requerido: "+f.campo)
			faltantes++
		}
	}
	if faltantes > 0 {
		return nil
	}

	sucursalID := *carga.IDSucursal
	if !existentes[sucursalID] {
		rep.AgregarError(fila, "id_sucursal", fmt.Sprintf("Sucursal con ID %d no existe", sucursalID))
		return nil
	}
	if carga.IDVariedad != nil && !variedades[*carga.IDVariedad] {
		rep.AgregarError(fila, "id_variedad", fmt.Sprintf("Variedad con ID %d no existe", *carga.IDVariedad))
		return nil
	}
	if !contiene(sucursales, sucursalID) {
		rep.AgregarError(fila, "id_sucursal", fmt.Sprintf("No tienes acceso a la sucursal %d", sucursalID))
		return nil
	}
	if !s.cantidadValida(rep, fila, "n_hileras", *carga.NHileras) {
		return nil
	}

	c := &model.Cuartel{
		IDSucursal:    &sucursalID,
		Nombre:        nombre,
		IDVariedad:    carga.IDVariedad,
		Superficie:    *carga.Superficie,
		AnoPlantacion: carga.AnoPlantacion,
		DSH:           carga.DSH,
		DEH:           carga.DEH,
		NHileras:      *carga.NHileras,
		IDEstado:      model.EstadoActivo,
		FechaCreacion: &ahora,
	}
	if err := s.cuarteles.CreateTx(tx, c); err != nil {
		return err
	}
	hileras := hilerasNumeradas(c.ID, 1, *carga.NHileras, nil, ahora)
	if err := s.hileras.CreateTx(tx, hileras); err != nil {
		return err
	}
	rep.CuartelesCreados++
	rep.HilerasCreadas += len(hileras)
	rep.Creados++

	porNombre := make(map[string]int64, len(hileras))
	for _, h := range hileras {
		porNombre[h.Hilera] = h.ID
	}

	var plantas []model.Planta
	configuradas := make(map[int64]map[string]bool)
	for j, hc := range carga.Hileras {
		id := hc.Hilera.String()
		hileraID, ok := porNombre[id]
		if n, err := strconv.Atoi(id); !ok && err == nil {
			hileraID, ok = porNombre[NombreHilera(n)]
		}
		if !ok {
			rep.AgregarWarning(fila, fmt.Sprintf("hileras[%d].hilera", j), fmt.Sprintf("La hilera %s no existe en el cuartel %s", id, nombre))
			continue
		}
		ocupados, ok := configuradas[hileraID]
		if !ok {
			ocupados = map[string]bool{}
			configuradas[hileraID] = ocupados
		}
		plantas = append(plantas, plantasDeCarga(rep, hileraID, hc.Plantas, ocupados, ahora,
			func(k int, campo string) (int, string) {
				return fila, fmt.Sprintf("hileras[%d].plantas[%d].%s", j, k, campo)
			})...)
	}
	if err := s.plantas.CreateTx(tx, plantas); err != nil {
		return err
	}
	rep.PlantasCreadas += len(plantas)
	return nil
}

// RegistrosBulk stores inspection records on plants in scope. A malformed
// hora_registro falls back to the current time with a warning.
func (s *cargaMasivaService) RegistrosBulk(ctx context.Context, usuarioID string, req dto.RegistrosBulkRequest) (*dto.ReporteCarga, error) {
	if err := s.validarLote(len(req.Registros)); err != nil {
		return nil, err
	}
	sucursales, err := s.alcance.Sucursales(ctx, usuarioID)
	if err != nil {
		return nil, err
	}
	tipos, err := tiposPlantaActivos(ctx, s.mapeo)
	if err != nil {
		return nil, err
	}

	rep := dto.NuevoReporte(len(req.Registros))
	ahora := time.Now()
	var subidas []string
	err = runTx(ctx, s.mapeo.DB(), func(tx *gorm.DB) error {
		nuevos := make([]model.Registro, 0, len(req.Registros))
		for i, r := range req.Registros {
			fila := i + 1
			if r.IDPlanta == nil {
				rep.AgregarError(fila, "id_planta", "Campo requerido: id_planta")
				continue
			}
			if r.IDTipoPlanta == nil {
				rep.AgregarError(fila, "id_tipoplanta", "Campo requerido: id_tipoplanta")
				continue
			}
			p, err := s.plantas.FindDetalleTx(tx, *r.IDPlanta)
			if err != nil {
				if errorDeBusqueda(err) {
					return err
				}
				rep.AgregarError(fila, "id_planta", fmt.Sprintf("Planta con ID %d no existe", *r.IDPlanta))
				continue
			}
			if !tipos[*r.IDTipoPlanta] {
				rep.AgregarError(fila, "id_tipoplanta", fmt.Sprintf("Tipo de planta con ID %d no existe", *r.IDTipoPlanta))
				continue
			}
			if !contiene(sucursales, p.IDSucursalEfectiva) {
				rep.AgregarError(fila, "id_planta", fmt.Sprintf("No tienes acceso a la planta %d", p.ID))
				continue
			}

			hora := ahora
			if r.HoraRegistro != nil {
				if t, err := time.ParseInLocation(formatoHoraRegistro, *r.HoraRegistro, time.Local); err == nil {
					hora = t
				} else {
					rep.AgregarWarning(fila, "hora_registro", fmt.Sprintf("Formato de hora invalido: %s. Usando hora actual.", *r.HoraRegistro))
				}
			}
			reg := model.Registro{
				ID:           uuid.NewString(),
				IDEvaluador:  usuarioID,
				HoraRegistro: hora,
				IDPlanta:     p.ID,
				IDTipoPlanta: *r.IDTipoPlanta,
			}
			imagen, err := guardarImagen(ctx, s.blob, reg.ID, r.Imagen)
			if err != nil {
				rep.AgregarWarning(fila, "imagen", "La imagen no es valida y se omitio")
			} else if imagenSubida(r.Imagen, imagen) {
				subidas = append(subidas, *imagen)
			}
			reg.Imagen = imagen
			nuevos = append(nuevos, reg)
		}
		if err := s.mapeo.CreateRegistrosTx(tx, nuevos); err != nil {
			return err
		}
		rep.RegistrosCreados = len(nuevos)
		rep.Creados = len(nuevos)
		return nil
	})
	if err != nil {
		descartarImagenes(ctx, s.blob, subidas)
		return nil, err
	}
	s.terminar(ctx, usuarioID, OpRegistrosBulk, rep)
	return rep, nil
}

// AgregarHileras appends rows numbered from the current active count + 1,
// skipping identifiers already taken.
func (s *cargaMasivaService) AgregarHileras(ctx context.Context, usuarioID string, cuartelID int64, req dto.AgregarHilerasRequest) (*dto.HilerasAgregadasResponse, error) {
	if req.Cantidad <= 0 {
		return nil, apierror.Validacion("La cantidad debe ser un numero entero positivo")
	}
	if req.Cantidad > s.maxItems {
		return nil, apierror.LoteExcedido(fmt.Sprintf("Maximo %d hileras por llamada", s.maxItems))
	}
	sucursales, err := s.alcance.Sucursales(ctx, usuarioID)
	if err != nil {
		return nil, err
	}
	if _, err := s.cuarteles.FindEnAlcance(ctx, cuartelID, sucursales); err != nil {
		return nil, siNoExiste(err, msgCuartelNoEncontrado)
	}

	var (
		nuevas []model.Hilera
		total  int
	)
	ahora := time.Now()
	err = runTx(ctx, s.cuarteles.DB(), func(tx *gorm.DB) error {
		existentes, err := s.hileras.NumerosActivosTx(tx, cuartelID)
		if err != nil {
			return err
		}
		nuevas = hilerasNumeradas(cuartelID, len(existentes)+1, req.Cantidad, conjunto(existentes), ahora)
		if err := s.hileras.CreateTx(tx, nuevas); err != nil {
			return err
		}
		total = len(existentes) + len(nuevas)
		return s.cuarteles.SetNHilerasTx(tx, cuartelID, total)
	})
	if err != nil {
		return nil, siDuplicado(err, "Hilera duplicada en el cuartel")
	}

	resp := &dto.HilerasAgregadasResponse{
		CuartelID:        cuartelID,
		HilerasAgregadas: len(nuevas),
		TotalHileras:     total,
		HilerasCreadas:   make([]dto.HileraResponse, len(nuevas)),
	}
	for i := range nuevas {
		resp.HilerasCreadas[i] = hileraResponse(&nuevas[i])
	}
	infra.CargaMasivaElementos.WithLabelValues("agregar_hileras", "creado").Add(float64(len(nuevas)))
	return resp, nil
}

// EliminarHileraCascada soft-deletes a row with all its plants and decrements
// the field's n_hileras.
func (s *cargaMasivaService) EliminarHileraCascada(ctx context.Context, usuarioID string, hileraID int64) (*dto.HileraEliminadaResponse, error) {
	sucursales, err := s.alcance.Sucursales(ctx, usuarioID)
	if err != nil {
		return nil, err
	}
	h, err := s.hileras.FindEnAlcance(ctx, hileraID, sucursales)
	if err != nil {
		return nil, siNoExiste(err, msgHileraNoEncontrada)
	}

	resp := &dto.HileraEliminadaResponse{HileraID: h.ID, HileraNombre: h.Hilera, CuartelID: h.IDCuartel}
	err = runTx(ctx, s.cuarteles.DB(), func(tx *gorm.DB) error {
		c, err := s.cuarteles.FindTx(tx, h.IDCuartel)
		if err != nil {
			return siNoExiste(err, msgCuartelNoEncontrado)
		}
		if resp.PlantasEliminadas, err = s.plantas.SoftDeletePorHileraTx(tx, h.ID); err != nil {
			return err
		}
		if err := s.hileras.SoftDeleteTx(tx, h.ID); err != nil {
			return err
		}
		resp.CuartelNombre = c.Nombre
		resp.NuevoTotalHileras = max(c.NHileras-1, 0)
		return s.cuarteles.SetNHilerasTx(tx, c.ID, resp.NuevoTotalHileras)
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}
