package out

import (
	"context"

	"classsign/internal/modules/session/domain"
	sessionout "classsign/internal/modules/session/port/out"
	"classsign/internal/platform/iclass"
)

type IClassAuthenticator struct {
	client *iclass.Client
}

func NewIClassAuthenticator(client *iclass.Client) sessionout.Authenticator {
	return &IClassAuthenticator{client: client}
}

func (a *IClassAuthenticator) Authenticate(ctx context.Context, studentID string) (domain.Session, error) {
	userID, token, err := a.client.Login(ctx, studentID)
	if err != nil {
		return domain.Session{}, err
	}
	return domain.Session{StudentID: studentID, UserID: userID, Token: token}, nil
}
