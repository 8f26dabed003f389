package stats_repo

import (
	"sync"

	repoModel "slots_backend/internal/repository/stats_repo/model"
)

// Реализация репозитория для хранения состояния казино.
// Состояние живет в памяти процесса и обнуляется при рестарте
type StateRepo struct {
	mtx   sync.RWMutex
	state repoModel.CasinoState
}

// NewStatsRepository Конструктор для создания нового репозитория с начальным состоянием
func NewStatsRepository() *StateRepo {
	return &StateRepo{}
}

// RecordRoll - учитывает один ролл в агрегатах казино
func (r *StateRepo) RecordRoll(bet, payout int, winning, rerolled bool) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	r.state.TotalRolls++
	r.state.TotalBet += int64(bet)
	r.state.TotalPayout += int64(payout)
	if winning {
		r.state.WinningRolls++
	}
	if rerolled {
		r.state.RerolledWins++
	}

	if r.state.TotalBet > 0 {
		r.state.ObservedRTP = float64(r.state.TotalPayout) / float64(r.state.TotalBet) * 100
	}
}

// CasinoState - возвращает снимок текущего состояния
func (r *StateRepo) CasinoState() repoModel.CasinoState {
	r.mtx.RLock()
	defer r.mtx.RUnlock()

	return r.state
}
