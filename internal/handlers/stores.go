package handlers

import (
	"context"

	"github.com/buildcanada/trade-tracker/internal/model"
)

// AgreementStore is the slice of the store layer the agreement handlers need.
type AgreementStore interface {
	GetAll(ctx context.Context) ([]model.Agreement, error)
	GetByID(ctx context.Context, id string) (*model.Agreement, error)
	Create(ctx context.Context, a *model.Agreement) error
	Update(ctx context.Context, id string, a *model.Agreement) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// ThemeStore is the slice of the store layer the theme handlers need.
type ThemeStore interface {
	GetAll(ctx context.Context) ([]model.Theme, error)
	Create(ctx context.Context, name string) (*model.Theme, error)
	Rename(ctx context.Context, id, newName string) (*model.Theme, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// UserStore is the slice of the store layer the auth handlers need.
type UserStore interface {
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, id string) (*model.User, error)
	UpdatePassword(ctx context.Context, id, passwordHash string) (bool, error)
}
