package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Freeeeeet/restaurant_booking_bot/internal/model"
	"github.com/Freeeeeet/restaurant_booking_bot/internal/repository/base"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const bookingColumns = `
	id, restaurant_id, user_id, to_char(booking_date, 'YYYY-MM-DD'), booking_time, party_size,
	status, table_id, confirmation_code, customer_name, customer_phone, special_requests,
	created_at, updated_at`

// ErrConfirmationCodeTaken код подтверждения уже выдан другой брони
var ErrConfirmationCodeTaken = errors.New("confirmation code already taken")

type BookingRepository struct {
	db *base.Repository
}

func NewBookingRepository(pool *pgxpool.Pool) *BookingRepository {
	return &BookingRepository{db: base.NewRepository(pool)}
}

// CreateLocked атомарно проверяет и создаёт бронь.
// На время транзакции берётся advisory lock ресторана: оборот стола может переходить
// через полночь, поэтому соседние дни тоже должны выполняться строго по очереди.
// decide получает живые брони на дату и соседние дни и возвращает бронь для вставки;
// его ошибка откатывает транзакцию и возвращается как есть.
func (r *BookingRepository) CreateLocked(ctx context.Context, restaurantID int64, date string, decide func(live []*model.Booking) (*model.Booking, error)) (*model.Booking, error) {
	var created *model.Booking

	err := r.db.InTx(ctx, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx,
			`SELECT pg_advisory_xact_lock(hashtextextended('bookings:' || $1::bigint::text, 0))`,
			restaurantID,
		)
		if err != nil {
			return fmt.Errorf("acquire restaurant lock: %w", err)
		}

		live, err := listBookings(ctx, tx, `
			SELECT `+bookingColumns+`
			FROM bookings
			WHERE restaurant_id = $1
			  AND booking_date BETWEEN $2::date - 1 AND $2::date + 1
			  AND status NOT IN ('cancelled', 'no-show')
			ORDER BY booking_date, booking_time, id
		`, restaurantID, date)
		if err != nil {
			return fmt.Errorf("list live bookings: %w", err)
		}

		booking, err := decide(live)
		if err != nil {
			return err
		}

		if err := insertBooking(ctx, tx, booking); err != nil {
			return err
		}

		created = booking
		return nil
	})
	if err != nil {
		return nil, err
	}

	return created, nil
}

func insertBooking(ctx context.Context, q base.Querier, booking *model.Booking) error {
	query := `
		INSERT INTO bookings (
			restaurant_id, user_id, booking_date, booking_time, party_size, status, table_id,
			confirmation_code, customer_name, customer_phone, special_requests, created_at, updated_at
		)
		VALUES ($1, $2, $3::date, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id
	`

	err := q.QueryRow(
		ctx, query,
		booking.RestaurantID,
		booking.UserID,
		booking.Date,
		booking.Time,
		booking.PartySize,
		booking.Status,
		booking.TableID,
		booking.ConfirmationCode,
		booking.CustomerName,
		booking.CustomerPhone,
		booking.SpecialRequests,
		booking.CreatedAt,
		booking.UpdatedAt,
	).Scan(&booking.ID)

	if err != nil {
		if base.IsUniqueViolation(err) {
			return fmt.Errorf("insert booking: %w", ErrConfirmationCodeTaken)
		}
		return fmt.Errorf("insert booking: %w", err)
	}

	return nil
}

// UpdateStatusLocked блокирует строку брони, передаёт её в apply и сохраняет новый статус.
// Если брони нет, возвращает nil, nil.
func (r *BookingRepository) UpdateStatusLocked(ctx context.Context, id int64, apply func(b *model.Booking) error) (*model.Booking, error) {
	var updated *model.Booking

	err := r.db.InTx(ctx, func(tx pgx.Tx) error {
		booking, err := scanBooking(tx.QueryRow(ctx, `
			SELECT `+bookingColumns+`
			FROM bookings
			WHERE id = $1
			FOR UPDATE
		`, id))
		if err != nil {
			if base.IsNotFound(err) {
				return nil
			}
			return fmt.Errorf("lock booking: %w", err)
		}

		if err := apply(booking); err != nil {
			return err
		}

		_, err = tx.Exec(ctx,
			`UPDATE bookings SET status = $1, updated_at = $2 WHERE id = $3`,
			booking.Status, booking.UpdatedAt, booking.ID,
		)
		if err != nil {
			return fmt.Errorf("update booking status: %w", err)
		}

		updated = booking
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// GetByID получает бронирование по ID
func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*model.Booking, error) {
	booking, err := scanBooking(r.db.QueryRow(ctx, `
		SELECT `+bookingColumns+`
		FROM bookings
		WHERE id = $1
	`, id))

	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get booking by id: %w", err)
	}

	return booking, nil
}

// GetByConfirmationCode ищет бронь по коду подтверждения
func (r *BookingRepository) GetByConfirmationCode(ctx context.Context, code string) (*model.Booking, error) {
	booking, err := scanBooking(r.db.QueryRow(ctx, `
		SELECT `+bookingColumns+`
		FROM bookings
		WHERE confirmation_code = $1
	`, code))

	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get booking by code: %w", err)
	}

	return booking, nil
}

// ListByRestaurantDate все брони ресторана на дату, включая отменённые
func (r *BookingRepository) ListByRestaurantDate(ctx context.Context, restaurantID int64, date string) ([]*model.Booking, error) {
	bookings, err := listBookings(ctx, r.db, `
		SELECT `+bookingColumns+`
		FROM bookings
		WHERE restaurant_id = $1 AND booking_date = $2::date
		ORDER BY booking_time, id
	`, restaurantID, date)
	if err != nil {
		return nil, fmt.Errorf("get bookings by restaurant date: %w", err)
	}
	return bookings, nil
}

// ListByRestaurantDates брони ресторана с from по to включительно
func (r *BookingRepository) ListByRestaurantDates(ctx context.Context, restaurantID int64, from, to string) ([]*model.Booking, error) {
	bookings, err := listBookings(ctx, r.db, `
		SELECT `+bookingColumns+`
		FROM bookings
		WHERE restaurant_id = $1 AND booking_date BETWEEN $2::date AND $3::date
		ORDER BY booking_date, booking_time, id
	`, restaurantID, from, to)
	if err != nil {
		return nil, fmt.Errorf("get bookings by restaurant dates: %w", err)
	}
	return bookings, nil
}

// ListByRestaurant все брони ресторана, для статистики
func (r *BookingRepository) ListByRestaurant(ctx context.Context, restaurantID int64) ([]*model.Booking, error) {
	bookings, err := listBookings(ctx, r.db, `
		SELECT `+bookingColumns+`
		FROM bookings
		WHERE restaurant_id = $1
		ORDER BY booking_date, booking_time, id
	`, restaurantID)
	if err != nil {
		return nil, fmt.Errorf("get bookings by restaurant: %w", err)
	}
	return bookings, nil
}

// ListByUser брони пользователя, ближайшие первыми
func (r *BookingRepository) ListByUser(ctx context.Context, userID int64) ([]*model.Booking, error) {
	bookings, err := listBookings(ctx, r.db, `
		SELECT `+bookingColumns+`
		FROM bookings
		WHERE user_id = $1
		ORDER BY booking_date DESC, booking_time DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("get bookings by user: %w", err)
	}
	return bookings, nil
}

// ListByStatusUntil брони в статусе status с датой не позже date
func (r *BookingRepository) ListByStatusUntil(ctx context.Context, status model.BookingStatus, date string) ([]*model.Booking, error) {
	bookings, err := listBookings(ctx, r.db, `
		SELECT `+bookingColumns+`
		FROM bookings
		WHERE status = $1 AND booking_date <= $2::date
		ORDER BY booking_date, booking_time
	`, status, date)
	if err != nil {
		return nil, fmt.Errorf("get bookings by status: %w", err)
	}
	return bookings, nil
}

func listBookings(ctx context.Context, q base.Querier, query string, args ...any) ([]*model.Booking, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookings []*model.Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("scan booking: %w", err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate bookings: %w", err)
	}

	return bookings, nil
}

func scanBooking(row pgx.Row) (*model.Booking, error) {
	var booking model.Booking
	err := row.Scan(
		&booking.ID,
		&booking.RestaurantID,
		&booking.UserID,
		&booking.Date,
		&booking.Time,
		&booking.PartySize,
		&booking.Status,
		&booking.TableID,
		&booking.ConfirmationCode,
		&booking.CustomerName,
		&booking.CustomerPhone,
		&booking.SpecialRequests,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &booking, nil
}
