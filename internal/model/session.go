package model

import "time"

type Session struct {
	ID             string
	Credits        int
	AccountCredits int
	IsActive       bool
	CreatedAt      time.Time
}

// CanPlay - проверяет, хватает ли кредитов на один ролл по указанной цене
func (s *Session) CanPlay(cost int) bool {
	return s.IsActive && s.Credits >= cost
}
