// Package authz holds the two authorization policies the service uses. They
// are deliberately separate: spot edits are owner-only with no admin
// override, while moderation is admin-only. Collapsing them into one flag
// invites accidental privilege escalation.
package authz

import "github.com/google/uuid"

// Actor identifies who is attempting an operation.
type Actor struct {
	ID    uuid.UUID
	Admin bool
}

// Decision is the outcome of an authorization check. Reason is set only on
// denial and is safe to surface to the caller.
type Decision struct {
	Allowed bool
	Reason  string
}

func allow() Decision { return Decision{Allowed: true} }

func deny(reason string) Decision { return Decision{Allowed: false, Reason: reason} }

// OwnerOnly permits mutation only by the resource's owner. Admins get no
// special treatment here.
func OwnerOnly(actor Actor, ownerID uuid.UUID) Decision {
	if actor.ID == uuid.Nil {
		return deny("You must be signed in to modify this resource!")
	}
	if actor.ID != ownerID {
		return deny("You tried to modify a resource that doesn't belong to you!")
	}
	return allow()
}

// AdminOnly permits moderation operations by admins regardless of ownership.
func AdminOnly(actor Actor) Decision {
	if actor.ID == uuid.Nil {
		return deny("You must be signed in to moderate content!")
	}
	if !actor.Admin {
		return deny("Access denied. Admins only!")
	}
	return allow()
}
