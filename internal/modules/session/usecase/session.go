package usecase

import (
	"context"

	sessiondto "classsign/internal/modules/session/dto"
	sessionin "classsign/internal/modules/session/port/in"
	sessionout "classsign/internal/modules/session/port/out"
	"classsign/internal/modules/session/service"
)

type Interactor struct {
	svc   *service.SessionService
	store sessionout.SessionStore
}

func NewInteractor(svc *service.SessionService, store sessionout.SessionStore) sessionin.Usecase {
	return &Interactor{svc: svc, store: store}
}

// Login replaces any held session. A failed login discards the previous one
// so a run never continues on stale credentials.
func (i *Interactor) Login(ctx context.Context, input sessiondto.LoginInput) (sessiondto.SessionOutput, error) {
	session, err := i.svc.Login(ctx, input.StudentID)
	if err != nil {
		_ = i.store.Clear(ctx)
		return sessiondto.SessionOutput{}, err
	}
	if err := i.store.Save(ctx, session); err != nil {
		return sessiondto.SessionOutput{}, err
	}
	return sessiondto.SessionOutput{StudentID: session.StudentID, UserID: session.UserID, Token: session.Token}, nil
}

func (i *Interactor) Current(ctx context.Context) (sessiondto.SessionOutput, error) {
	session, err := i.store.Load(ctx)
	if err != nil {
		return sessiondto.SessionOutput{}, err
	}
	return sessiondto.SessionOutput{StudentID: session.StudentID, UserID: session.UserID, Token: session.Token}, nil
}

func (i *Interactor) Logout(ctx context.Context) error {
	return i.store.Clear(ctx)
}
