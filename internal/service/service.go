package service

import (
	"context"

	"slots_backend/internal/model"
	statsModel "slots_backend/internal/repository/stats_repo/model"
)

type GameService interface {
	CreateSession(ctx context.Context) (*model.Session, error)
	GetSession(ctx context.Context, sessionID string) (*model.Session, error)
	Roll(ctx context.Context, sessionID string) (*model.RollResult, error)
	CashOut(ctx context.Context, sessionID string) (*model.CashOutResult, error)
	History(ctx context.Context, sessionID string) ([]model.Roll, error)
	Stats() statsModel.CasinoState
}
