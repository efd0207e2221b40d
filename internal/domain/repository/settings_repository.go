package repository

import (
	"context"

	"github.com/tijara-app/tijara-api/internal/domain/entity"
)

// SettingsRepository is the persistence port for the single settings row.
type SettingsRepository interface {
	Get(ctx context.Context) (*entity.Settings, error)
	Update(ctx context.Context, s *entity.Settings) error
}
