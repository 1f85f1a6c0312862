// Package service hosts the bot's domain logic: lazy identity resolution,
// access policy gating, and the mutating flows over groups, notes and
// join-requests. Mutations never proceed past a failed policy check.
package service

import (
	"errors"

	"github.com/Dardva/Bot-for-remind/bot/storage"
)

var (
	// ErrPermissionDenied reports a failed access policy predicate.
	ErrPermissionDenied = errors.New("service: permission denied")
	// ErrOwnerProtected reports an attempt to remove the group owner via
	// the member-kick path.
	ErrOwnerProtected = errors.New("service: owner cannot be removed")
	// ErrInvalidInput reports malformed free-text input, such as an empty
	// group name or an unparsable user reference.
	ErrInvalidInput = errors.New("service: invalid input")
)

// Services bundles the domain services over a shared store.
type Services struct {
	Users    *UserService
	Groups   *GroupService
	Notes    *NoteService
	Requests *RequestService
}

// New wires all services over the given store.
func New(store *storage.Store) *Services {
	return &Services{
		Users:    &UserService{store: store},
		Groups:   &GroupService{store: store},
		Notes:    &NoteService{store: store},
		Requests: &RequestService{store: store},
	}
}
