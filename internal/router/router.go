package router

import (
	"time"

	"github.com/soporte-code/API-PORTALWEB/internal/config"
	"github.com/soporte-code/API-PORTALWEB/internal/handler"
	"github.com/soporte-code/API-PORTALWEB/internal/infra"
	"github.com/soporte-code/API-PORTALWEB/internal/middleware"
	"github.com/soporte-code/API-PORTALWEB/internal/model"
	"github.com/soporte-code/API-PORTALWEB/internal/repository"
	"github.com/soporte-code/API-PORTALWEB/internal/service"
	"github.com/soporte-code/API-PORTALWEB/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Infra groups the connections built in main. Only DB is mandatory; the
// rest degrade to a no-op when nil.
type Infra struct {
	DB         *gorm.DB
	Redis      *redis.Client
	Blob       infra.BlobStore
	Dispatcher *worker.Dispatcher
	MailCB     *infra.CircuitBreaker
}

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, in Infra) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.MaxMultipartMemory = 16 << 20

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.Metrics())
	r.Use(middleware.CORS(cfg.CORSOrigins))
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	usuarioRepo := repository.NewUsuarioRepository(in.DB)
	sucursalRepo := repository.NewSucursalRepository(in.DB)
	cuartelRepo := repository.NewCuartelRepository(in.DB)
	hileraRepo := repository.NewHileraRepository(in.DB)
	plantaRepo := repository.NewPlantaRepository(in.DB)
	especieRepo := repository.NewEspecieRepository(in.DB)
	conteoRepo := repository.NewConteoRepository(in.DB)
	mapeoRepo := repository.NewMapeoRepository(in.DB)

	// ── Services ─────────────────────────────────────────────────────────────
	alcanceSvc := service.NewAlcanceService(sucursalRepo, in.Redis, time.Duration(cfg.ScopeCacheTTLSeconds)*time.Second)
	authSvc := service.NewAuthService(usuarioRepo, sucursalRepo, alcanceSvc, in.Dispatcher, cfg)
	usuarioSvc := service.NewUsuarioService(usuarioRepo, sucursalRepo, alcanceSvc, cfg)
	cuartelSvc := service.NewCuartelService(cuartelRepo, hileraRepo, plantaRepo, sucursalRepo, especieRepo, alcanceSvc)
	hileraSvc := service.NewHileraService(cuartelRepo, hileraRepo, plantaRepo, alcanceSvc)
	plantaSvc := service.NewPlantaService(hileraRepo, plantaRepo, alcanceSvc)
	variedadSvc := service.NewVariedadService(especieRepo)
	conteoSvc := service.NewConteoService(conteoRepo, especieRepo)
	mapeoSvc := service.NewMapeoService(mapeoRepo, cuartelRepo, hileraRepo, plantaRepo, usuarioRepo, sucursalRepo, alcanceSvc, in.Blob)
	cargaSvc := service.NewCargaMasivaService(cuartelRepo, hileraRepo, plantaRepo, mapeoRepo, sucursalRepo,
		especieRepo, usuarioRepo, alcanceSvc, in.Blob, in.Dispatcher,
		service.LimitesCarga{MaxElementos: cfg.BulkMaxItems, MaxGenerados: cfg.BulkMaxGenerated})
	plantillaSvc := service.NewPlantillaService(cuartelRepo, hileraRepo, alcanceSvc, cargaSvc)
	reporteSvc := service.NewReporteService(cuartelRepo, hileraRepo, plantaRepo, alcanceSvc)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	usuariosH := handler.NewUsuariosHandler(usuarioSvc)
	cuartelesH := handler.NewCuartelesHandler(cuartelSvc, cargaSvc, plantillaSvc, reporteSvc)
	hilerasH := handler.NewHilerasHandler(hileraSvc)
	plantasH := handler.NewPlantasHandler(plantaSvc, cargaSvc)
	variedadesH := handler.NewVariedadesHandler(variedadSvc)
	conteoH := handler.NewConteoHandler(conteoSvc)
	mapeoH := handler.NewMapeoHandler(mapeoSvc, cuartelSvc, cargaSvc, plantillaSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(in.DB, in.Redis, in.MailCB))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")

	auth := api.Group("/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", middleware.JWTRefresh(cfg.JWTSecret), authH.Refresh)
	}

	// Protected routes
	p := api.Group("", middleware.JWTAuth(cfg.JWTSecret))

	me := p.Group("/auth")
	{
		me.POST("/cambiar-clave", authH.CambiarClave)
		me.POST("/cambiar-sucursal", authH.CambiarSucursal)
		me.GET("/me", authH.Me)
		me.PUT("/me", authH.ActualizarMe)
	}

	// Option lists are open to any user; everything that reads or changes
	// other accounts requires the administrator profile.
	usuarios := p.Group("/usuarios")
	{
		usuarios.GET("/perfiles", usuariosH.Perfiles)
		usuarios.GET("/sucursales", usuariosH.Sucursales)

		admin := usuarios.Group("", middleware.RequirePerfil(model.PerfilAdministrador))
		admin.GET("", usuariosH.Listar)
		admin.POST("", usuariosH.Crear)
		admin.GET("/:id", usuariosH.Obtener)
		admin.PUT("/:id", usuariosH.Actualizar)
		admin.DELETE("/:id", usuariosH.Eliminar)
		admin.GET("/:id/sucursales-permitidas", usuariosH.SucursalesPermitidas)
		admin.POST("/:id/sucursales-permitidas", usuariosH.AsignarSucursales)
		admin.DELETE("/:id/sucursales-permitidas", usuariosH.QuitarSucursales)
	}

	p.GET("/opciones/sucursales", usuariosH.MisSucursales)

	cuarteles := p.Group("/cuarteles")
	{
		cuarteles.GET("", cuartelesH.Listar)
		cuarteles.POST("", cuartelesH.Crear)
		cuarteles.GET("/plantas-masivo-info", cuartelesH.PlantasMasivoInfo)
		cuarteles.POST("/catastro-masivo", cuartelesH.CatastroMasivo)
		cuarteles.POST("/plantas-masivo", cuartelesH.PlantasMasivo)
		cuarteles.POST("/bulk-hileras", cuartelesH.BulkHileras)
		cuarteles.GET("/plantilla-plantas-masiva", cuartelesH.PlantillaPlantasMasiva)
		cuarteles.POST("/plantilla-plantas-masiva", cuartelesH.PlantillaPlantasMasiva)
		cuarteles.GET("/:id", cuartelesH.Obtener)
		cuarteles.PUT("/:id", cuartelesH.Actualizar)
		cuarteles.DELETE("/:id", cuartelesH.Eliminar)
		cuarteles.PUT("/:id/estado-catastro", cuartelesH.CambiarEstadoCatastro)
		cuarteles.GET("/:id/hileras", cuartelesH.Hileras)
		cuarteles.GET("/:id/plantas", cuartelesH.Plantas)
		cuarteles.GET("/:id/hileras/:hid/plantas", cuartelesH.PlantasDeHilera)
		cuarteles.GET("/:id/plantilla-plantas", cuartelesH.PlantillaPlantas)
		cuarteles.GET("/:id/reporte", cuartelesH.Reporte)
		cuarteles.GET("/:id/geojson", cuartelesH.GeoJSON)
	}

	hileras := p.Group("/hileras")
	{
		hileras.GET("", hilerasH.Listar)
		hileras.POST("", hilerasH.Crear)
		hileras.POST("/bulk", cuartelesH.BulkHileras)
		hileras.GET("/:id", hilerasH.Obtener)
		hileras.PUT("/:id", hilerasH.Actualizar)
		hileras.DELETE("/:id", hilerasH.Eliminar)
		hileras.GET("/:id/plantas", hilerasH.Plantas)
	}

	plantas := p.Group("/plantas")
	{
		plantas.GET("", plantasH.Listar)
		plantas.POST("", plantasH.Crear)
		plantas.GET("/buscar", plantasH.Buscar)
		plantas.POST("/bulk", plantasH.Bulk)
		plantas.GET("/:id", plantasH.Obtener)
		plantas.PUT("/:id", plantasH.Actualizar)
		plantas.DELETE("/:id", plantasH.Eliminar)
	}

	variedades := p.Group("/variedades")
	{
		variedades.GET("", variedadesH.ListarVariedades)
		variedades.POST("", variedadesH.CrearVariedad)
		variedades.GET("/especies", variedadesH.ListarEspecies)
		variedades.POST("/especies", variedadesH.CrearEspecie)
		variedades.GET("/especies/:id", variedadesH.ObtenerEspecie)
		variedades.PUT("/especies/:id", variedadesH.ActualizarEspecie)
		variedades.DELETE("/especies/:id", variedadesH.EliminarEspecie)
		variedades.GET("/especies/:id/variedades", variedadesH.VariedadesDeEspecie)
		variedades.GET("/:id", variedadesH.ObtenerVariedad)
		variedades.PUT("/:id", variedadesH.ActualizarVariedad)
		variedades.DELETE("/:id", variedadesH.EliminarVariedad)
	}

	conteo := p.Group("/conteo")
	{
		conteo.GET("/atributos", conteoH.Atributos)

		conteo.GET("/atributo-optimo", conteoH.ListarOptimos)
		conteo.POST("/atributo-optimo", conteoH.CrearOptimo)
		conteo.GET("/atributo-optimo/por-atributo/:id", conteoH.OptimosPorAtributo)
		conteo.GET("/atributo-optimo/:id", conteoH.ObtenerOptimo)
		conteo.PUT("/atributo-optimo/:id", conteoH.ActualizarOptimo)
		conteo.DELETE("/atributo-optimo/:id", conteoH.EliminarOptimo)

		conteo.GET("/atributo-especie", conteoH.ListarAtributoEspecie)
		conteo.POST("/atributo-especie", conteoH.CrearAtributoEspecie)
		conteo.GET("/atributo-especie/por-especie/:id", conteoH.AtributoEspeciePorEspecie)
		conteo.GET("/atributo-especie/:id", conteoH.ObtenerAtributoEspecie)
		conteo.PUT("/atributo-especie/:id", conteoH.ActualizarAtributoEspecie)
		conteo.DELETE("/atributo-especie/:id", conteoH.EliminarAtributoEspecie)
	}

	mapeo := p.Group("/mapeo")
	{
		mapeo.GET("/registros-mapeo", mapeoH.ListarCampanias)
		mapeo.POST("/registros-mapeo", mapeoH.CrearCampania)
		mapeo.GET("/registros-mapeo/:id", mapeoH.ObtenerCampania)
		mapeo.PUT("/registros-mapeo/:id", mapeoH.ActualizarCampania)
		mapeo.GET("/registros-mapeo/:id/estados-hileras", mapeoH.EstadosHileras)
		mapeo.POST("/registros-mapeo/:id/estados-hileras", mapeoH.ActualizarEstadoHilera)

		mapeo.GET("/registros", mapeoH.ListarRegistros)
		mapeo.POST("/registros", mapeoH.CrearRegistro)
		mapeo.POST("/registros/bulk", mapeoH.RegistrosBulk)
		mapeo.GET("/registros/:id", mapeoH.ObtenerRegistro)
		mapeo.GET("/tipos-planta", mapeoH.TiposPlanta)

		mapeo.POST("/cuarteles/bulk", mapeoH.CuartelesBulk)
		mapeo.POST("/cuarteles/:id/agregar-hileras", mapeoH.AgregarHileras)
		mapeo.PUT("/cuarteles/:id/estado-catastro", mapeoH.CambiarEstadoCatastro)
		mapeo.DELETE("/hileras/:id", mapeoH.EliminarHilera)
		mapeo.POST("/import/excel", mapeoH.ImportarExcel)
		mapeo.GET("/plantillas/:tipo", mapeoH.Plantilla)
	}

	// Swagger UI, only outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
