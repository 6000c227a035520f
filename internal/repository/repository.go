package repository

import (
	"context"
	"database/sql"
	"time"

	"mcu_control/internal/models"
)

type Authorization interface {
	Create(ctx context.Context, username, hash string) (int, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}

// EventRepo is the diagnostic journal. It is write-mostly and never read
// back to restore actuator state.
type EventRepo interface {
	Append(ctx context.Context, e models.ActuatorEvent) error
	List(ctx context.Context, q EventQuery) ([]models.ActuatorEvent, error)
}

// EventQuery filters List. Zero fields are ignored.
type EventQuery struct {
	From  time.Time
	To    time.Time
	Type  string
	Limit int // newest Limit entries, still returned oldest first
}

type Repository struct {
	EventRepo EventRepo
	Auth      Authorization
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		EventRepo: NewEventSQLite(db),
		Auth:      NewUserRepository(db),
	}
}
