package dto

type LoginInput struct {
	StudentID string
}

type SessionOutput struct {
	StudentID string
	UserID    string
	Token     string
}
