package app

import (
	"context"

	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/avito-tech/go-transaction-manager/trm/v2"
	"github.com/avito-tech/go-transaction-manager/trm/v2/manager"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"

	gameAPI "slots_backend/internal/api/game"
	"slots_backend/internal/config"
	"slots_backend/internal/config/env"
	"slots_backend/internal/repository"
	"slots_backend/internal/repository/roll_repo"
	"slots_backend/internal/repository/session_repo"
	"slots_backend/internal/repository/stats_repo"
	"slots_backend/internal/service"
	"slots_backend/internal/service/game"
)

// Файл с игровыми параметрами (символы, выплаты, пороги подкрутки)
const gameConfigPath = "config.yaml"

type ServiceProvider struct {
	//TXManager
	txManager trm.Manager

	// Database
	pgConfig config.PGConfig
	dbClient *pgxpool.Pool

	// Game bits
	gameCfg     config.GameConfig
	sessionRepo repository.SessionRepository
	rollRepo    repository.RollRepository
	statsRepo   repository.StatsRepository
	gameServ    service.GameService
	gameHand    *gameAPI.Handler

	// Router and HTTP config
	httpCfg config.HTTPConfig
	router  chi.Router
}

func newServiceProvider() *ServiceProvider {
	return &ServiceProvider{}
}

func (sp *ServiceProvider) PgConfig() config.PGConfig {
	if sp.pgConfig == nil {
		cfg, err := env.NewPGConfig()
		if err != nil {
			panic("failed to get database config: " + err.Error())
		}
		sp.pgConfig = cfg
	}
	return sp.pgConfig
}

func (sp *ServiceProvider) DBClient(ctx context.Context) *pgxpool.Pool {
	if sp.dbClient == nil {
		dbc, err := pgxpool.New(ctx, sp.PgConfig().DSN())
		if err != nil {
			panic("failed to create db pool: " + err.Error())
		}
		err = dbc.Ping(ctx)
		if err != nil {
			panic("failed to ping db: " + err.Error())
		}
		sp.dbClient = dbc
	}
	return sp.dbClient
}

func (sp *ServiceProvider) TXManager(ctx context.Context) trm.Manager {
	if sp.txManager == nil {
		m, err := manager.New(trmpgx.NewDefaultFactory(sp.DBClient(ctx)))
		if err != nil {
			panic("failed to create tx manager: " + err.Error())
		}

		sp.txManager = m
	}

	return sp.txManager
}

func (sp *ServiceProvider) GameCfg() config.GameConfig {
	if sp.gameCfg == nil {
		cfg, err := env.NewGameConfigFromYAML(gameConfigPath)
		if err != nil {
			panic("failed to get game config: " + err.Error())
		}

		sp.gameCfg = cfg
	}
	return sp.gameCfg
}

func (sp *ServiceProvider) SessionRepository(ctx context.Context) repository.SessionRepository {
	if sp.sessionRepo == nil {
		sp.sessionRepo = session_repo.NewSessionRepository(sp.DBClient(ctx), trmpgx.DefaultCtxGetter)
	}
	return sp.sessionRepo
}

func (sp *ServiceProvider) RollRepository(ctx context.Context) repository.RollRepository {
	if sp.rollRepo == nil {
		sp.rollRepo = roll_repo.NewRollRepository(sp.DBClient(ctx), trmpgx.DefaultCtxGetter)
	}
	return sp.rollRepo
}

func (sp *ServiceProvider) StatsRepository() repository.StatsRepository {
	if sp.statsRepo == nil {
		sp.statsRepo = stats_repo.NewStatsRepository()
	}
	return sp.statsRepo
}

func (sp *ServiceProvider) GameService(ctx context.Context) service.GameService {
	if sp.gameServ == nil {
		sp.gameServ = game.NewGameService(
			sp.GameCfg(),
			sp.SessionRepository(ctx),
			sp.RollRepository(ctx),
			sp.StatsRepository(),
			sp.TXManager(ctx),
		)
	}
	return sp.gameServ
}

func (sp *ServiceProvider) GameHandler(ctx context.Context) *gameAPI.Handler {
	if sp.gameHand == nil {
		sp.gameHand = gameAPI.NewHandler(gameAPI.HandlerDeps{
			Serv:     sp.GameService(ctx),
			RollCost: sp.GameCfg().RollCost(),
		})
	}
	return sp.gameHand
}

func (sp *ServiceProvider) HTTPCfg() config.HTTPConfig {
	if sp.httpCfg == nil {
		cfg, err := env.NewHTTPConfig()
		if err != nil {
			panic("failed to get http config: " + err.Error())
		}
		sp.httpCfg = cfg
	}

	return sp.httpCfg
}

// Close - закрывает пул соединений с БД, если он был создан
func (sp *ServiceProvider) Close() {
	if sp.dbClient != nil {
		sp.dbClient.Close()
	}
}

func (sp *ServiceProvider) Router(ctx context.Context) chi.Router {
	if sp.router == nil {
		r := chi.NewRouter()

		// CORS middleware
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{"*"},
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
			ExposedHeaders:   []string{"Link"},
			AllowCredentials: false,
			MaxAge:           60 * 15,
		}))

		// Game endpoints
		gameHandler := sp.GameHandler(ctx)
		r.Route("/api", func(rr chi.Router) {
			rr.Post("/sessions", gameHandler.CreateSession)
			rr.Get("/sessions/{sessionID}", gameHandler.GetSession)
			rr.Post("/sessions/{sessionID}/roll", gameHandler.Roll)
			rr.Post("/sessions/{sessionID}/cashout", gameHandler.CashOut)
			rr.Get("/sessions/{sessionID}/rolls", gameHandler.History)
			rr.Get("/stats", gameHandler.Stats)
		})

		sp.router = r
	}

	return sp.router
}
