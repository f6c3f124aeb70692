package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/buildcanada/trade-tracker/internal/model"
)

// stubAgreementStore is an in-memory AgreementStore for handler tests.
type stubAgreementStore struct {
	agreements []model.Agreement
	created    *model.Agreement
	updated    *model.Agreement
	updatedID  string
	deletedID  string
	err        error
}

func (s *stubAgreementStore) GetAll(ctx context.Context) ([]model.Agreement, error) {
	return s.agreements, s.err
}

func (s *stubAgreementStore) GetByID(ctx context.Context, id string) (*model.Agreement, error) {
	if s.err != nil {
		return nil, s.err
	}
	for i := range s.agreements {
		if s.agreements[i].ID == id {
			return &s.agreements[i], nil
		}
	}
	return nil, nil
}

func (s *stubAgreementStore) Create(ctx context.Context, a *model.Agreement) error {
	if s.err != nil {
		return s.err
	}
	a.ID = "generated-id"
	s.created = a
	return nil
}

func (s *stubAgreementStore) Update(ctx context.Context, id string, a *model.Agreement) (bool, error) {
	if s.err != nil {
		return false, s.err
	}
	s.updated = a
	s.updatedID = id
	for i := range s.agreements {
		if s.agreements[i].ID == id {
			return true, nil
		}
	}
	return false, nil
}

func (s *stubAgreementStore) Delete(ctx context.Context, id string) (bool, error) {
	if s.err != nil {
		return false, s.err
	}
	s.deletedID = id
	for i := range s.agreements {
		if s.agreements[i].ID == id {
			return true, nil
		}
	}
	return false, nil
}

// stubThemeStore is an in-memory ThemeStore for handler tests.
type stubThemeStore struct {
	themes    []model.Theme
	created   string
	deleteErr error
}

func (s *stubThemeStore) GetAll(ctx context.Context) ([]model.Theme, error) {
	return s.themes, nil
}

func (s *stubThemeStore) Create(ctx context.Context, name string) (*model.Theme, error) {
	s.created = name
	return &model.Theme{ID: "theme-id", Name: name}, nil
}

func (s *stubThemeStore) Rename(ctx context.Context, id, newName string) (*model.Theme, error) {
	for i := range s.themes {
		if s.themes[i].ID == id {
			s.themes[i].Name = newName
			return &s.themes[i], nil
		}
	}
	return nil, nil
}

func (s *stubThemeStore) Delete(ctx context.Context, id string) (bool, error) {
	if s.deleteErr != nil {
		return false, s.deleteErr
	}
	for i := range s.themes {
		if s.themes[i].ID == id {
			s.themes = append(s.themes[:i], s.themes[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

// stubUserStore is an in-memory UserStore for handler tests.
type stubUserStore struct {
	users       []model.User
	updatedID   string
	updatedHash string
}

func (s *stubUserStore) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	for i := range s.users {
		if s.users[i].Email == email {
			return &s.users[i], nil
		}
	}
	return nil, nil
}

func (s *stubUserStore) GetByID(ctx context.Context, id string) (*model.User, error) {
	for i := range s.users {
		if s.users[i].ID == id {
			return &s.users[i], nil
		}
	}
	return nil, nil
}

func (s *stubUserStore) UpdatePassword(ctx context.Context, id, passwordHash string) (bool, error) {
	s.updatedID = id
	s.updatedHash = passwordHash
	return s.updatedID != "missing", nil
}

func jsonRequest(t *testing.T, method, target string, body any) *http.Request {
	t.Helper()
	var buf io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		buf = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, target, buf)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	return req
}

func decodeBody(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}
