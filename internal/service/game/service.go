package game

import (
	"math/rand"

	"github.com/avito-tech/go-transaction-manager/trm/v2"

	"slots_backend/internal/config"
	"slots_backend/internal/repository"
	statsModel "slots_backend/internal/repository/stats_repo/model"
	"slots_backend/internal/service"
)

// randSource - источник случайности. Выделен в интерфейс, чтобы тесты
// могли подставить детерминированный источник и проверить точные
// вероятности веток подкрутки
type randSource interface {
	Intn(n int) int
	Float64() float64
}

// defaultRand - источник по умолчанию поверх глобального генератора
// math/rand. Глобальные функции синхронизированы внутри пакета, поэтому
// один экземпляр можно делить между параллельными запросами
type defaultRand struct{}

func (defaultRand) Intn(n int) int   { return rand.Intn(n) }
func (defaultRand) Float64() float64 { return rand.Float64() }

type serv struct {
	cfg         config.GameConfig
	sessionRepo repository.SessionRepository
	rollRepo    repository.RollRepository
	statsRepo   repository.StatsRepository
	txManager   trm.Manager
	rnd         randSource
}

// NewGameService Создать новый сервис слот-машины
func NewGameService(
	cfg config.GameConfig,
	sessionRepo repository.SessionRepository,
	rollRepo repository.RollRepository,
	statsRepo repository.StatsRepository,
	txManager trm.Manager,
) service.GameService {
	return &serv{
		cfg:         cfg,
		sessionRepo: sessionRepo,
		rollRepo:    rollRepo,
		statsRepo:   statsRepo,
		txManager:   txManager,
		rnd:         defaultRand{},
	}
}

// Stats - снимок агрегированного состояния казино
func (s *serv) Stats() statsModel.CasinoState {
	return s.statsRepo.CasinoState()
}
