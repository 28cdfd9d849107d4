package repository

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/restaurant_booking_bot/internal/model"
	"github.com/Freeeeeet/restaurant_booking_bot/internal/repository/base"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const userColumns = `id, telegram_id, username, first_name, last_name, language_code, phone, created_at`

type UserRepository struct {
	db *base.Repository
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: base.NewRepository(pool)}
}

// Upsert создаёт пользователя или обновляет профиль Telegram; телефон не трогает
func (r *UserRepository) Upsert(ctx context.Context, user *model.User) (created bool, err error) {
	query := `
		INSERT INTO users (telegram_id, username, first_name, last_name, language_code)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (telegram_id) DO UPDATE
		SET username = EXCLUDED.username,
		    first_name = EXCLUDED.first_name,
		    last_name = EXCLUDED.last_name,
		    language_code = EXCLUDED.language_code
		RETURNING ` + userColumns + `, (xmax = 0)
	`

	row := r.db.QueryRow(ctx, query, user.TelegramID, user.Username, user.FirstName, user.LastName, user.LanguageCode)
	err = row.Scan(
		&user.ID,
		&user.TelegramID,
		&user.Username,
		&user.FirstName,
		&user.LastName,
		&user.LanguageCode,
		&user.Phone,
		&user.CreatedAt,
		&created,
	)
	if err != nil {
		return false, fmt.Errorf("upsert user: %w", err)
	}
	return created, nil
}

// GetByTelegramID получает пользователя по Telegram ID
func (r *UserRepository) GetByTelegramID(ctx context.Context, telegramID int64) (*model.User, error) {
	user, err := scanUser(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE telegram_id = $1`, telegramID))
	if err != nil {
		return nil, fmt.Errorf("get user by telegram id: %w", err)
	}
	return user, nil
}

// GetByID получает пользователя по ID
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	user, err := scanUser(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if err != nil {
		return nil, fmt.Errorf("get user by id: %w", err)
	}
	return user, nil
}

// UpdatePhone сохраняет телефон гостя
func (r *UserRepository) UpdatePhone(ctx context.Context, id int64, phone string) error {
	affected, err := r.db.ExecAffected(ctx, `UPDATE users SET phone = $1 WHERE id = $2`, phone, id)
	if err != nil {
		return fmt.Errorf("update user phone: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("update user phone: %w", pgx.ErrNoRows)
	}
	return nil
}

// scanUser возвращает nil, nil если строки нет
func scanUser(row pgx.Row) (*model.User, error) {
	var user model.User
	err := row.Scan(
		&user.ID,
		&user.TelegramID,
		&user.Username,
		&user.FirstName,
		&user.LastName,
		&user.LanguageCode,
		&user.Phone,
		&user.CreatedAt,
	)
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}
