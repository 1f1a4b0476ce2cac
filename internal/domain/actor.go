package domain

import "strconv"

type ActorKind string

const (
	ActorAdmin    ActorKind = "admin"
	ActorUser     ActorKind = "user"
	ActorBusiness ActorKind = "business"
)

// Actor is the authenticated principal, resolved exactly once at the
// boundary from the access token. Exactly one of User or Business is
// non-nil, matching Kind; handlers switch on Kind instead of re-parsing
// role strings.
type Actor struct {
	Kind     ActorKind
	User     *User
	Business *Business
}

func (a Actor) IsAdmin() bool { return a.Kind == ActorAdmin }

// Subject is the JWT sub claim for this actor.
func (a Actor) Subject() string {
	switch a.Kind {
	case ActorBusiness:
		if a.Business != nil {
			return strconv.FormatUint(uint64(a.Business.ID), 10)
		}
	default:
		if a.User != nil {
			return a.User.ID.String()
		}
	}
	return ""
}
