package service

import (
	"context"
	"fmt"
	"strings"

	"classsign/internal/modules/session/domain"
	sessionout "classsign/internal/modules/session/port/out"
	apperrors "classsign/internal/platform/errors"
)

type SessionService struct {
	auth sessionout.Authenticator
}

func NewSessionService(auth sessionout.Authenticator) *SessionService {
	return &SessionService{auth: auth}
}

func (s *SessionService) Login(ctx context.Context, studentID string) (domain.Session, error) {
	studentID = strings.TrimSpace(studentID)
	if studentID == "" {
		return domain.Session{}, fmt.Errorf("student id is required: %w", apperrors.ErrInvalidInput)
	}
	session, err := s.auth.Authenticate(ctx, studentID)
	if err != nil {
		return domain.Session{}, err
	}
	if !session.Valid() {
		return domain.Session{}, apperrors.NewAuthError("login returned an incomplete session")
	}
	session.StudentID = studentID
	return session, nil
}
