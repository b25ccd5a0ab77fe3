package service

import (
	"context"

	"github.com/adivinatobi/adivinatobi/shared/domain"
	"github.com/adivinatobi/adivinatobi/shared/logger"
)

// UserService maintains the list of known display names. The list only feeds
// name pickers; any name may author predictions.
type UserService interface {
	List(ctx context.Context) ([]domain.UserName, error)
	Register(ctx context.Context, name domain.UserName) error
	Remove(ctx context.Context, name domain.UserName) error
}

type User struct {
	store     DocumentStore
	validator Validator
}

func NewUser(store DocumentStore, validator Validator) UserService {
	return &User{store: store, validator: validator}
}

func (s *User) List(ctx context.Context) ([]domain.UserName, error) {
	doc, err := load(ctx, s.store)
	if err != nil {
		return nil, err
	}
	if doc.Users == nil {
		return []domain.UserName{}, nil
	}
	return doc.Users, nil
}

// Register is a no-op for a known name.
func (s *User) Register(ctx context.Context, name domain.UserName) error {
	name = trim(name)
	if err := s.validator.UserName(name); err != nil {
		return reject("register_user", err)
	}
	doc, err := load(ctx, s.store)
	if err != nil {
		return err
	}
	if !doc.AddUser(name) {
		return nil
	}
	if err := save(ctx, s.store, &doc); err != nil {
		return err
	}
	logger.Log.Info("user registered", "name", name)
	return nil
}

// Remove is a no-op for an unknown name.
func (s *User) Remove(ctx context.Context, name domain.UserName) error {
	name = trim(name)
	if err := s.validator.UserName(name); err != nil {
		return reject("remove_user", err)
	}
	doc, err := load(ctx, s.store)
	if err != nil {
		return err
	}
	if !doc.RemoveUser(name) {
		return nil
	}
	if err := save(ctx, s.store, &doc); err != nil {
		return err
	}
	logger.Log.Info("user removed", "name", name)
	return nil
}
