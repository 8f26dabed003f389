package roll_repo

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"

	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"

	"slots_backend/internal/model"
	"slots_backend/internal/repository"
)

const (
	table            = "rolls"
	colID            = "id"
	colSessionID     = "session_id"
	colSymbols       = "symbols"
	colCreditsBefore = "credits_before"
	colCreditsAfter  = "credits_after"
	colCreditsWon    = "credits_won"
	colWasWinning    = "was_winning"
	colWasRerolled   = "was_rerolled"
	colCreatedAt     = "created_at"
)

type repo struct {
	dbc    *pgxpool.Pool
	getter *trmpgx.CtxGetter
}

func NewRollRepository(dbc *pgxpool.Pool, getter *trmpgx.CtxGetter) repository.RollRepository {
	return &repo{
		dbc:    dbc,
		getter: getter,
	}
}

// CreateRoll - добавляет запись ролла в журнал. Журнал append-only,
// записи после вставки не изменяются.
// Возвращает ID созданной записи
func (r *repo) CreateRoll(ctx context.Context, roll *model.Roll) (int64, error) {
	// Формируем запрос
	query := sq.Insert(table).
		Columns(colSessionID, colSymbols, colCreditsBefore, colCreditsAfter,
			colCreditsWon, colWasWinning, colWasRerolled, colCreatedAt).
		Values(roll.SessionID, roll.Symbols, roll.CreditsBefore, roll.CreditsAfter,
			roll.CreditsWon, roll.WasWinning, roll.WasRerolled, roll.CreatedAt).
		Suffix("RETURNING " + colID).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return 0, err
	}

	var id int64
	err = r.getter.DefaultTrOrDB(ctx, r.dbc).QueryRow(ctx, sqlStr, args...).Scan(&id)
	if err != nil {
		return 0, err
	}

	return id, nil
}

// GetRollsBySession - возвращает все роллы сессии, новые первыми
func (r *repo) GetRollsBySession(ctx context.Context, sessionID string) ([]model.Roll, error) {
	// Формируем запрос
	query := sq.Select(colID, colSessionID, colSymbols, colCreditsBefore, colCreditsAfter,
		colCreditsWon, colWasWinning, colWasRerolled, colCreatedAt).
		From(table).
		Where(sq.Eq{colSessionID: sessionID}).
		OrderBy(colID + " DESC").
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.getter.DefaultTrOrDB(ctx, r.dbc).Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rolls []model.Roll
	for rows.Next() {
		var roll model.Roll
		err = rows.Scan(&roll.ID, &roll.SessionID, &roll.Symbols, &roll.CreditsBefore,
			&roll.CreditsAfter, &roll.CreditsWon, &roll.WasWinning, &roll.WasRerolled, &roll.CreatedAt)
		if err != nil {
			return nil, err
		}
		rolls = append(rolls, roll)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return rolls, nil
}
