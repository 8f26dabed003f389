package game

import (
	"context"
	"errors"
	"log"

	"slots_backend/internal/model"
)

// CashOut переносит кредиты сессии на аккаунт и закрывает сессию.
// Для существующей сессии операция всегда успешна
func (s *serv) CashOut(ctx context.Context, sessionID string) (*model.CashOutResult, error) {
	// Инициализируем структуру для хранения результата
	var res *model.CashOutResult

	// Начало транзакции где выполняется вывод кредитов
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		session, err := s.sessionRepo.GetSessionForUpdate(txCtx, sessionID)
		if err != nil {
			return err
		}

		total := session.AccountCredits + session.Credits

		if err := s.sessionRepo.CashOut(txCtx, sessionID, total); err != nil {
			log.Println(err)
			return errors.New("failed to cash out session")
		}

		res = &model.CashOutResult{
			CashedOut:           session.Credits,
			TotalAccountCredits: total,
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return res, nil
}
