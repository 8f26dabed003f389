package model

import "time"

// Roll - запись одного ролла в журнале. После создания не изменяется
type Roll struct {
	ID            int64
	SessionID     string
	Symbols       []string
	CreditsBefore int
	CreditsAfter  int
	CreditsWon    int
	WasWinning    bool
	WasRerolled   bool
	CreatedAt     time.Time
}

// RollResult - результат ролла, который увидит клиент
type RollResult struct {
	Symbols        []string
	SymbolsDisplay []string
	IsWinning      bool
	CreditsWon     int
	TotalCredits   int
	WasRerolled    bool
}

// CashOutResult - результат вывода кредитов на аккаунт
type CashOutResult struct {
	CashedOut           int
	TotalAccountCredits int
}
