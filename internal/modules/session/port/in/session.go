package in

import (
	"context"

	"classsign/internal/modules/session/dto"
)

type Usecase interface {
	Login(ctx context.Context, input dto.LoginInput) (dto.SessionOutput, error)
	Current(ctx context.Context) (dto.SessionOutput, error)
	Logout(ctx context.Context) error
}
