package domain

import (
	"context"
	"time"

	"github.com/bouwconnect/backend/internal/model"
)

type HealthDomain interface {
	Check(context.Context, *model.HealthRequest) (*model.HealthResponse, error)
}

type healthDomain struct{}

func NewHealthDomain() HealthDomain {
	return &healthDomain{}
}

func (d *healthDomain) Check(ctx context.Context, req *model.HealthRequest) (*model.HealthResponse, error) {
	return &model.HealthResponse{
		Status:    "OK",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}, nil
}
