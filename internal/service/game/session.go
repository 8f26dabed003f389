package game

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"

	"slots_backend/internal/model"
)

// CreateSession - создает новую игровую сессию со стартовым балансом
func (s *serv) CreateSession(ctx context.Context) (*model.Session, error) {
	session := &model.Session{
		ID:             uuid.NewString(),
		Credits:        s.cfg.StartingCredits(),
		AccountCredits: 0,
		IsActive:       true,
		CreatedAt:      time.Now().UTC(),
	}

	if err := s.sessionRepo.CreateSession(ctx, session); err != nil {
		log.Println(err)
		return nil, errors.New("failed to create session")
	}

	return session, nil
}

// GetSession - возвращает текущее состояние сессии
func (s *serv) GetSession(ctx context.Context, sessionID string) (*model.Session, error) {
	session, err := s.sessionRepo.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	return session, nil
}

// History - возвращает журнал роллов сессии, новые первыми
func (s *serv) History(ctx context.Context, sessionID string) ([]model.Roll, error) {
	// Убеждаемся, что сессия существует, иначе журнал пустой и для мусорных ID
	if _, err := s.sessionRepo.GetSession(ctx, sessionID); err != nil {
		return nil, err
	}

	return s.rollRepo.GetRollsBySession(ctx, sessionID)
}
