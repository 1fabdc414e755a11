package domain

import (
	"errors"

	"github.com/google/uuid"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

var (
	MessageFailedProcessRequest = "failed to process request"
	MessageFailedBodyRequest    = "failed to parse request body"
	MessageFailedGetToken       = "failed to get token"
	MessageFailedTokenInvalid   = "token is invalid"

	ErrParseUUID      = errors.New("failed to parse UUID")
	ErrUserNotAllowed = errors.New("user not allowed")
	ErrTokenNotFound  = errors.New("token not found")
	ErrTokenInvalid   = errors.New("token invalid")
	ErrTokenExpired   = errors.New("token expired")
)

// Actor is the authenticated identity a request runs as. Handlers build it
// from token claims and pass it down explicitly; services never reach into
// ambient request state.
type Actor struct {
	ID   uuid.UUID
	Role string
}

func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

func (a Actor) IsAnonymous() bool {
	return a.ID == uuid.Nil
}

// CanManage reports whether the actor may mutate a resource owned by
// ownerID. Owners and admins qualify.
func (a Actor) CanManage(ownerID uuid.UUID) bool {
	return a.ID == ownerID || a.IsAdmin()
}
