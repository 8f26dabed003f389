package game

// Количество барабанов
const reelCount = 3

// shouldSuppressWin - решает, подкручивать ли выигрышный ролл.
// Пороги считаются по "будущим" кредитам: баланс после списания ставки
// плюс потенциальная выплата. Ниже нижнего порога не подкручиваем никогда,
// между порогами (включительно) - с вероятностью MidSuppressChance,
// выше верхнего - с вероятностью HighSuppressChance
func (s *serv) shouldSuppressWin(creditsAfterDebit, potentialWin int) bool {
	future := creditsAfterDebit + potentialWin

	switch {
	case future < s.cfg.LowThreshold():
		return false
	case future <= s.cfg.HighThreshold():
		return s.rnd.Float64() < s.cfg.MidSuppressChance()
	default:
		return s.rnd.Float64() < s.cfg.HighSuppressChance()
	}
}

// drawSymbols - три независимых символа, каждый равномерно из набора
func (s *serv) drawSymbols() []string {
	names := s.cfg.SymbolNames()

	symbols := make([]string, reelCount)
	for i := range symbols {
		symbols[i] = names[s.rnd.Intn(len(names))]
	}
	return symbols
}

// drawLosingSymbols - гарантированно проигрышная комбинация.
// Если случайно выпали три одинаковых, последний символ заменяется любым другим
func (s *serv) drawLosingSymbols() []string {
	symbols := s.drawSymbols()
	if !isWinning(symbols) {
		return symbols
	}

	names := s.cfg.SymbolNames()
	others := make([]string, 0, len(names)-1)
	for _, name := range names {
		if name != symbols[0] {
			others = append(others, name)
		}
	}
	symbols[reelCount-1] = others[s.rnd.Intn(len(others))]

	return symbols
}

// isWinning - выигрыш, когда все три символа совпадают
func isWinning(symbols []string) bool {
	for _, sym := range symbols {
		if sym != symbols[0] {
			return false
		}
	}
	return true
}
