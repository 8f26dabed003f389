package converter

import (
	"fmt"
	"time"

	dto "slots_backend/internal/api/dto/game"
	"slots_backend/internal/model"
	statsModel "slots_backend/internal/repository/stats_repo/model"
)

func ToSessionResponse(session model.Session) dto.SessionResponse {
	return dto.SessionResponse{
		SessionID:      session.ID,
		Credits:        session.Credits,
		AccountCredits: session.AccountCredits,
	}
}

func ToSessionStatusResponse(session model.Session, rollCost int) dto.SessionStatusResponse {
	return dto.SessionStatusResponse{
		SessionID:      session.ID,
		Credits:        session.Credits,
		AccountCredits: session.AccountCredits,
		IsActive:       session.IsActive,
		CanPlay:        session.CanPlay(rollCost),
	}
}

func ToRollResponse(res model.RollResult) dto.RollResponse {
	return dto.RollResponse{
		Symbols:        res.Symbols,
		SymbolsDisplay: res.SymbolsDisplay,
		IsWinning:      res.IsWinning,
		CreditsWon:     res.CreditsWon,
		TotalCredits:   res.TotalCredits,
		WasRerolled:    res.WasRerolled,
	}
}

func ToCashOutResponse(res model.CashOutResult) dto.CashOutResponse {
	return dto.CashOutResponse{
		Success:             true,
		TotalAccountCredits: res.TotalAccountCredits,
		Message:             fmt.Sprintf("Successfully cashed out %d credits!", res.CashedOut),
	}
}

func ToHistoryResponse(rolls []model.Roll) dto.HistoryResponse {
	records := make([]dto.RollRecord, len(rolls))
	for i, roll := range rolls {
		records[i] = dto.RollRecord{
			ID:            roll.ID,
			Symbols:       roll.Symbols,
			CreditsBefore: roll.CreditsBefore,
			CreditsAfter:  roll.CreditsAfter,
			CreditsWon:    roll.CreditsWon,
			WasWinning:    roll.WasWinning,
			WasRerolled:   roll.WasRerolled,
			CreatedAt:     roll.CreatedAt.Format(time.RFC3339),
		}
	}
	return dto.HistoryResponse{Rolls: records}
}

func ToStatsResponse(state statsModel.CasinoState) dto.StatsResponse {
	return dto.StatsResponse{
		TotalRolls:   state.TotalRolls,
		TotalBet:     state.TotalBet,
		TotalPayout:  state.TotalPayout,
		WinningRolls: state.WinningRolls,
		RerolledWins: state.RerolledWins,
		ObservedRTP:  state.ObservedRTP,
	}
}
