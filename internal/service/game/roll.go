package game

import (
	"context"
	"errors"
	"log"
	"time"

	"slots_backend/internal/model"
)

// Roll выполняет один ролл: списывает ставку, крутит барабаны,
// решает вопрос подкрутки и пишет запись в журнал
func (s *serv) Roll(ctx context.Context, sessionID string) (*model.RollResult, error) {
	cost := s.cfg.RollCost()

	// Инициализируем структуру для хранения результата ролла
	var res *model.RollResult

	// Локальные значения для статистики после коммита
	var payout int
	var winning, rerolled bool

	// Начало транзакции где выполняется процесс ролла
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		// Читаем сессию с блокировкой строки, чтобы параллельные роллы
		// одной сессии не потеряли обновления баланса
		session, err := s.sessionRepo.GetSessionForUpdate(txCtx, sessionID)
		if err != nil {
			return err
		}

		if !session.IsActive {
			return model.ErrSessionClosed
		}

		// Баланс меньше ставки - ролл отклоняется без изменений состояния
		if session.Credits < cost {
			return model.ErrInsufficientCredits
		}

		creditsBefore := session.Credits

		// Списание ставки
		credits := session.Credits - cost

		// Крутим барабаны
		symbols := s.drawSymbols()
		winning = isWinning(symbols)
		payout = 0
		rerolled = false

		if winning {
			payout = s.cfg.SymbolPayouts()[symbols[0]]

			// КЛЮЧЕВОЙ ВЫЗОВ
			// Решаем, отбирать ли выигрыш у игрока
			if s.shouldSuppressWin(credits, payout) {
				// Перерисовываем в гарантированно проигрышную комбинацию
				symbols = s.drawLosingSymbols()
				winning = false
				payout = 0
				rerolled = true
			}
		}

		// Начисление выигрыша
		if winning {
			credits += payout
		}

		if err := s.sessionRepo.UpdateCredits(txCtx, sessionID, credits); err != nil {
			log.Println(err)
			return errors.New("failed to update session credits")
		}

		// Пишем в журнал эффективную (возможно перерисованную) комбинацию
		roll := &model.Roll{
			SessionID:     sessionID,
			Symbols:       symbols,
			CreditsBefore: creditsBefore,
			CreditsAfter:  credits,
			CreditsWon:    payout,
			WasWinning:    winning,
			WasRerolled:   rerolled,
			CreatedAt:     time.Now().UTC(),
		}
		if _, err := s.rollRepo.CreateRoll(txCtx, roll); err != nil {
			log.Println(err)
			return errors.New("failed to record roll")
		}

		res = &model.RollResult{
			Symbols:        symbols,
			SymbolsDisplay: s.displaySymbols(symbols),
			IsWinning:      winning,
			CreditsWon:     payout,
			TotalCredits:   credits,
			WasRerolled:    rerolled,
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	// Обновляем статистику казино
	s.statsRepo.RecordRoll(cost, payout, winning, rerolled)

	return res, nil
}

// displaySymbols - буквы символов для отображения на клиенте
func (s *serv) displaySymbols(symbols []string) []string {
	letters := s.cfg.SymbolLetters()

	display := make([]string, len(symbols))
	for i, sym := range symbols {
		display[i] = letters[sym]
	}
	return display
}
