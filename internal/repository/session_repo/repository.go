package session_repo

import (
	"context"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"

	"slots_backend/internal/model"
	"slots_backend/internal/repository"
)

const (
	table             = "sessions"
	colID             = "id"
	colCredits        = "credits"
	colAccountCredits = "account_credits"
	colIsActive       = "is_active"
	colCreatedAt      = "created_at"
)

type repo struct {
	dbc    *pgxpool.Pool
	getter *trmpgx.CtxGetter
}

func NewSessionRepository(dbc *pgxpool.Pool, getter *trmpgx.CtxGetter) repository.SessionRepository {
	return &repo{
		dbc:    dbc,
		getter: getter,
	}
}

// CreateSession - создает новую игровую сессию в БД.
// Принимает model.Session - (ID, Credits, AccountCredits, IsActive, CreatedAt)
func (r *repo) CreateSession(ctx context.Context, session *model.Session) error {
	// Формируем запрос
	query := sq.Insert(table).
		Columns(colID, colCredits, colAccountCredits, colIsActive, colCreatedAt).
		Values(session.ID, session.Credits, session.AccountCredits, session.IsActive, session.CreatedAt).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.getter.DefaultTrOrDB(ctx, r.dbc).Exec(ctx, sqlStr, args...)
	if err != nil {
		return err
	}

	return nil
}

// GetSession - возвращает текущее состояние сессии по её ID
func (r *repo) GetSession(ctx context.Context, id string) (*model.Session, error) {
	return r.getSession(ctx, id, false)
}

// GetSessionForUpdate - то же, что GetSession, но с блокировкой строки
// до конца транзакции. Нужен для атомарного read-modify-write в ролле
func (r *repo) GetSessionForUpdate(ctx context.Context, id string) (*model.Session, error) {
	return r.getSession(ctx, id, true)
}

func (r *repo) getSession(ctx context.Context, id string, forUpdate bool) (*model.Session, error) {
	// Формируем запрос
	query := sq.Select(colID, colCredits, colAccountCredits, colIsActive, colCreatedAt).
		From(table).
		Where(sq.Eq{colID: id}).
		PlaceholderFormat(sq.Dollar)

	if forUpdate {
		query = query.Suffix("FOR UPDATE")
	}

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var session model.Session
	err = r.getter.DefaultTrOrDB(ctx, r.dbc).QueryRow(ctx, sqlStr, args...).
		Scan(&session.ID, &session.Credits, &session.AccountCredits, &session.IsActive, &session.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrSessionNotFound
		}
		return nil, err
	}

	return &session, nil
}

// UpdateCredits - устанавливает новый баланс кредитов сессии
func (r *repo) UpdateCredits(ctx context.Context, id string, credits int) error {
	// Формируем запрос
	query := sq.Update(table).
		Set(colCredits, credits).
		Where(sq.Eq{colID: id}).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return err
	}

	res, err := r.getter.DefaultTrOrDB(ctx, r.dbc).Exec(ctx, sqlStr, args...)
	if err != nil {
		return err
	}

	if res.RowsAffected() == 0 {
		return model.ErrSessionNotFound
	}

	return nil
}

// CashOut - переносит кредиты на аккаунт: обнуляет баланс, записывает
// итоговую сумму на аккаунте и закрывает сессию
func (r *repo) CashOut(ctx context.Context, id string, accountCredits int) error {
	// Формируем запрос
	query := sq.Update(table).
		Set(colCredits, 0).
		Set(colAccountCredits, accountCredits).
		Set(colIsActive, false).
		Where(sq.Eq{colID: id}).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return err
	}

	res, err := r.getter.DefaultTrOrDB(ctx, r.dbc).Exec(ctx, sqlStr, args...)
	if err != nil {
		return err
	}

	if res.RowsAffected() == 0 {
		return model.ErrSessionNotFound
	}

	return nil
}
