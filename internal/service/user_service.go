package service

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/restaurant_booking_bot/internal/model"
	"github.com/Freeeeeet/restaurant_booking_bot/internal/repository"
	"go.uber.org/zap"
)

type UserService struct {
	userRepo *repository.UserRepository
	logger   *zap.Logger
}

func NewUserService(userRepo *repository.UserRepository, logger *zap.Logger) *UserService {
	return &UserService{
		userRepo: userRepo,
		logger:   logger,
	}
}

// RegisterUser заводит гостя при первом /start и освежает профиль при повторных
func (s *UserService) RegisterUser(ctx context.Context, profile model.User) (*model.User, error) {
	user := profile
	created, err := s.userRepo.Upsert(ctx, &user)
	if err != nil {
		return nil, fmt.Errorf("register user: %w", err)
	}

	if created {
		s.logger.Info("New user registered",
			zap.Int64("user_id", user.ID),
			zap.Int64("telegram_id", user.TelegramID),
			zap.String("username", user.Username),
		)
	}
	return &user, nil
}

func (s *UserService) GetByTelegramID(ctx context.Context, telegramID int64) (*model.User, error) {
	return s.userRepo.GetByTelegramID(ctx, telegramID)
}

func (s *UserService) GetByID(ctx context.Context, id int64) (*model.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// SetPhone запоминает телефон, чтобы не спрашивать его при следующей брони
func (s *UserService) SetPhone(ctx context.Context, user *model.User, phone string) error {
	if err := s.userRepo.UpdatePhone(ctx, user.ID, phone); err != nil {
		return err
	}
	user.Phone = phone
	return nil
}
