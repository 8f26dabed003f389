package repository

import (
	"context"

	"slots_backend/internal/model"
	statsModel "slots_backend/internal/repository/stats_repo/model"
)

type SessionRepository interface {
	CreateSession(ctx context.Context, session *model.Session) error
	GetSession(ctx context.Context, id string) (*model.Session, error)
	GetSessionForUpdate(ctx context.Context, id string) (*model.Session, error)
	UpdateCredits(ctx context.Context, id string, credits int) error
	CashOut(ctx context.Context, id string, accountCredits int) error
}

type RollRepository interface {
	CreateRoll(ctx context.Context, roll *model.Roll) (int64, error)
	GetRollsBySession(ctx context.Context, sessionID string) ([]model.Roll, error)
}

type StatsRepository interface {
	RecordRoll(bet, payout int, winning, rerolled bool)
	CasinoState() statsModel.CasinoState
}
