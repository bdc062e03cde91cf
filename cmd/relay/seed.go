package main

import (
	"errors"

	"github.com/bouwconnect/backend/internal/entity"
	"github.com/bouwconnect/backend/internal/repository"
	"github.com/bouwconnect/backend/pkg/xcontext"
	"github.com/google/uuid"
	"github.com/urfave/cli/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func (s *srv) startSeed(*cli.Context) error {
	if err := s.loadDatabase(); err != nil {
		return err
	}

	if err := s.migrateDB(); err != nil {
		return err
	}

	s.userRepo = repository.NewUserRepository()
	return s.seedDemoUser()
}

func (s *srv) seedDemoUser() error {
	cfg := xcontext.Configs(s.ctx).Demo
	if cfg.Email == "" || cfg.Password == "" {
		return errors.New("demo email and password must be configured")
	}

	_, err := s.userRepo.GetByEmail(s.ctx, cfg.Email)
	if err == nil {
		xcontext.Logger(s.ctx).Infof("User %s already exists", cfg.Email)
		return nil
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user := &entity.User{
		Base:         entity.Base{ID: uuid.NewString()},
		Email:        cfg.Email,
		Name:         cfg.Name,
		PasswordHash: string(hash),
	}
	if err := s.userRepo.Create(s.ctx, user); err != nil {
		return err
	}

	xcontext.Logger(s.ctx).Infof("Created user %s", cfg.Email)
	return nil
}
