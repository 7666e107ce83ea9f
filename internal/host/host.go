// Package host describes the platform services the app consumes: identity,
// haptic feedback, native dialogs and window chrome. Each capability is an
// interface with an "unavailable" variant so callers never check for the host.
package host

import (
	"context"
	"errors"
	"strings"
)

var ErrUnavailable = errors.New("host: capability unavailable")

type User struct {
	ID        string
	FirstName string
	Username  string
}

type Identity interface {
	CurrentUser() (User, bool)
}

// StaticIdentity is resolved once from configuration.
type StaticIdentity struct {
	user *User
}

func IdentityFromID(id string) StaticIdentity {
	id = strings.TrimSpace(id)
	if id == "" {
		return StaticIdentity{}
	}
	return StaticIdentity{user: &User{ID: id}}
}

func (s StaticIdentity) CurrentUser() (User, bool) {
	if s.user == nil {
		return User{}, false
	}
	return *s.user, true
}

type ImpactStyle string

const (
	ImpactLight  ImpactStyle = "light"
	ImpactMedium ImpactStyle = "medium"
)

type NotificationType string

const (
	NotificationSuccess NotificationType = "success"
	NotificationError   NotificationType = "error"
)

type Haptics interface {
	ImpactOccurred(style ImpactStyle)
	NotificationOccurred(kind NotificationType)
}

type NoopHaptics struct{}

func (NoopHaptics) ImpactOccurred(ImpactStyle)            {}
func (NoopHaptics) NotificationOccurred(NotificationType) {}

// Dialogs are blocking native prompts. Callers run them off the UI loop.
type Dialogs interface {
	Confirm(ctx context.Context, message string) (bool, error)
	Alert(ctx context.Context, message string) error
}

// Bridge bundles the capabilities. A nil Dialogs means the host has none and
// the UI must supply its own prompt.
type Bridge struct {
	Identity Identity
	Haptics  Haptics
	Dialogs  Dialogs
	Chrome   Chrome
}

// Normalize replaces missing capabilities with their unavailable variants.
func (b Bridge) Normalize() Bridge {
	if b.Identity == nil {
		b.Identity = StaticIdentity{}
	}
	if b.Haptics == nil {
		b.Haptics = NoopHaptics{}
	}
	if b.Chrome == nil {
		b.Chrome = NewTerminalChrome()
	}
	return b
}

// UserKey is the identity string used for storage scoping, or "" when no
// user is known.
func (b Bridge) UserKey() string {
	if b.Identity == nil {
		return ""
	}
	u, ok := b.Identity.CurrentUser()
	if !ok {
		return ""
	}
	return u.ID
}
