package domain

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/bouwconnect/backend/config"
	"github.com/bouwconnect/backend/internal/model"
	"github.com/bouwconnect/backend/internal/repository"
	"github.com/bouwconnect/backend/pkg/errorx"
	"github.com/bouwconnect/backend/pkg/xcontext"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthDomain interface {
	Login(context.Context, *model.LoginRequest) (*model.LoginResponse, error)
	GetMe(context.Context, *model.GetMeRequest) (*model.GetMeResponse, error)
}

type authDomain struct {
	userRepo repository.UserRepository
}

func NewAuthDomain(userRepo repository.UserRepository) AuthDomain {
	return &authDomain{userRepo: userRepo}
}

func (d *authDomain) Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error) {
	user, err := d.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.Unauthenticated, "Invalid email or password")
		}

		xcontext.Logger(ctx).Errorf("Cannot get user by email: %v", err)
		return nil, errorx.Unknown
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password))
	if err != nil {
		return nil, errorx.New(errorx.Unauthenticated, "Invalid email or password")
	}

	cfg := xcontext.Configs(ctx)
	token, err := xcontext.TokenEngine(ctx).Generate(
		cfg.Auth.AccessToken.Expiration,
		model.AccessToken{ID: user.ID, Email: user.Email},
	)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot generate access token: %v", err)
		return nil, errorx.Unknown
	}

	return &model.LoginResponse{
		Token: token,
		User:  convertUser(user),
		Cookie: http.Cookie{
			Name:     cfg.Auth.AccessToken.Name,
			Value:    token,
			Path:     "/",
			Expires:  time.Now().Add(cfg.Auth.AccessToken.Expiration),
			Secure:   cfg.Env == config.EnvProduction,
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		},
	}, nil
}

func (d *authDomain) GetMe(ctx context.Context, req *model.GetMeRequest) (*model.GetMeResponse, error) {
	userID, err := checkRequestUser(ctx, "")
	if err != nil {
		return nil, err
	}

	user, err := d.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "User not found")
		}

		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	return &model.GetMeResponse{User: convertUser(user)}, nil
}
