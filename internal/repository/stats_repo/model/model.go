package model

// CasinoState - агрегированное состояние казино по всем сессиям.
// ObservedRTP считается как выплаты / ставки в процентах
type CasinoState struct {
	TotalRolls   int64
	TotalBet     int64
	TotalPayout  int64
	WinningRolls int64
	RerolledWins int64
	ObservedRTP  float64
}
