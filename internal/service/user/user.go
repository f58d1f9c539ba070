package user

import (
	"context"
	"fmt"
	"strings"

	"waste-service/internal/entities"
)

const maxTokenLength = 4096

type Service struct {
	repository Repository
}

func New(repository Repository) *Service {
	return &Service{
		repository: repository,
	}
}

// RegisterDeviceToken stores the push token of the calling user, replacing any previous one.
func (s *Service) RegisterDeviceToken(ctx context.Context, actor entities.Actor, token string) error {
	if actor.ID == "" {
		return ErrMissingUser
	}
	token = strings.TrimSpace(token)
	if token == "" || len(token) > maxTokenLength {
		return ErrInvalidToken
	}

	if err := s.repository.UpdateDeviceToken(ctx, actor.ID, token); err != nil {
		return fmt.Errorf("update device token: %w", err)
	}
	return nil
}
