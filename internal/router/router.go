package router

import (
	"database/sql"
	"net/http"

	mem "tour-planning-assistant/internal/adapters/storage/memory"
	mgo "tour-planning-assistant/internal/adapters/storage/mongodb"
	pg "tour-planning-assistant/internal/adapters/storage/postgres"
	"tour-planning-assistant/internal/domain/bands"
	"tour-planning-assistant/internal/domain/dashboard"
	"tour-planning-assistant/internal/domain/tours"
	"tour-planning-assistant/internal/domain/venues"
	"tour-planning-assistant/internal/middleware"
	"tour-planning-assistant/internal/platform/logger"
	"tour-planning-assistant/internal/ports/auth"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.mongodb.org/mongo-driver/mongo"
)

type Options struct {
	AuthVerifier auth.AuthVerifier // puede ser nil (modo dev)

	// Opcional: DB => Postgres, Mongo => MongoDB, ninguno => in-memory.
	DB    *sql.DB
	Mongo *mongo.Database

	Logger      logger.Logger
	CORSOrigins []string
}

func NewRouter(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(log))
	r.Use(chimw.Recoverer)
	r.Use(middleware.CORS(opts.CORSOrigins))
	r.Use(middleware.SecureHeaders)

	r.Use(middleware.AuthContext(opts.AuthVerifier, log))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	var (
		tourRepo  tours.Repository
		venueRepo venues.Repository
		bandRepo  bands.Repository
	)

	switch {
	case opts.DB != nil:
		tourRepo = pg.NewToursRepo(opts.DB)
		venueRepo = pg.NewVenuesRepo(opts.DB)
		bandRepo = pg.NewBandsRepo(opts.DB)
	case opts.Mongo != nil:
		tourRepo = mgo.NewToursRepo(opts.Mongo)
		venueRepo = mgo.NewVenuesRepo(opts.Mongo)
		bandRepo = mgo.NewBandsRepo(opts.Mongo)
	default:
		tourRepo = mem.NewTourRepo()
		venueRepo = mem.NewVenueRepo()
		bandRepo = mem.NewBandRepo()
	}

	// Services por módulo
	venuesSvc := venues.NewService(venueRepo, log)
	bandsSvc := bands.NewService(bandRepo, log)
	toursSvc := tours.NewService(tourRepo, venuesSvc, bandsSvc, log)
	dashboardSvc := dashboard.NewService(tourRepo, venuesSvc, bandsSvc)

	// Rutas por módulo; /health queda fuera de /api.
	r.Route("/api", func(api chi.Router) {
		venues.RegisterRoutes(api, venuesSvc)
		bands.RegisterRoutes(api, bandsSvc)
		tours.RegisterRoutes(api, toursSvc)
		dashboard.RegisterRoutes(api, dashboardSvc)
	})

	return r
}
