package game

type SessionResponse struct {
	SessionID      string `json:"session_id"`      // Токен сессии
	Credits        int    `json:"credits"`         // Баланс кредитов
	AccountCredits int    `json:"account_credits"` // Выведено на аккаунт
}

type SessionStatusResponse struct {
	SessionID      string `json:"session_id"`      // Токен сессии
	Credits        int    `json:"credits"`         // Баланс кредитов
	AccountCredits int    `json:"account_credits"` // Выведено на аккаунт
	IsActive       bool   `json:"is_active"`       // Сессия еще открыта
	CanPlay        bool   `json:"can_play"`        // Хватает кредитов на ролл
}

type RollResponse struct {
	Symbols        []string `json:"symbols"`         // Имена символов
	SymbolsDisplay []string `json:"symbols_display"` // Буквы для отображения
	IsWinning      bool     `json:"is_winning"`      // Выигрышная комбинация
	CreditsWon     int      `json:"credits_won"`     // Выплата
	TotalCredits   int      `json:"total_credits"`   // Баланс после
	WasRerolled    bool     `json:"was_rerolled"`    // Была подкрутка (для отладки)
}

type CashOutResponse struct {
	Success             bool   `json:"success"`               // Всегда true при 200
	TotalAccountCredits int    `json:"total_account_credits"` // Итог на аккаунте
	Message             string `json:"message"`               // Человекочитаемое сообщение
}

type RollRecord struct {
	ID            int64    `json:"id"`             // ID записи
	Symbols       []string `json:"symbols"`        // Эффективная комбинация
	CreditsBefore int      `json:"credits_before"` // Баланс до ролла
	CreditsAfter  int      `json:"credits_after"`  // Баланс после ролла
	CreditsWon    int      `json:"credits_won"`    // Выплата
	WasWinning    bool     `json:"was_winning"`    // Был выигрыш
	WasRerolled   bool     `json:"was_rerolled"`   // Была подкрутка
	CreatedAt     string   `json:"created_at"`     // RFC3339
}

type HistoryResponse struct {
	Rolls []RollRecord `json:"rolls"` // Журнал роллов, новые первыми
}

type StatsResponse struct {
	TotalRolls   int64   `json:"total_rolls"`   // Всего роллов
	TotalBet     int64   `json:"total_bet"`     // Сумма ставок
	TotalPayout  int64   `json:"total_payout"`  // Сумма выплат
	WinningRolls int64   `json:"winning_rolls"` // Выигрышных роллов
	RerolledWins int64   `json:"rerolled_wins"` // Отобранных выигрышей
	ObservedRTP  float64 `json:"observed_rtp"`  // Фактический RTP, %
}

type ErrorResponse struct {
	Error string `json:"error"` // Текст ошибки
}
