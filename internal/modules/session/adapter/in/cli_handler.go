package in

import (
	"context"

	sessiondto "classsign/internal/modules/session/dto"
	sessionin "classsign/internal/modules/session/port/in"
)

type CLIHandler struct {
	usecase sessionin.Usecase
}

func NewCLIHandler(usecase sessionin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Login(ctx context.Context, studentID string) (sessiondto.SessionOutput, error) {
	return h.usecase.Login(ctx, sessiondto.LoginInput{StudentID: studentID})
}

func (h CLIHandler) Current(ctx context.Context) (sessiondto.SessionOutput, error) {
	return h.usecase.Current(ctx)
}

func (h CLIHandler) Logout(ctx context.Context) error {
	return h.usecase.Logout(ctx)
}
