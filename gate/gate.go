// Package gate is a small role/permission authorization checkpoint. A
// Resolver maps a subject (typically a user id) to a Profile carrying
// permissions of the form "resource:action"; the Gate answers whether the
// subject may perform an action on a resource type. Generic over the subject
// type so it stays decoupled from the application's user model.
package gate

import (
	"context"
	"errors"
)

// Action describes the kind of operation a subject wants to perform.
type Action string

const (
	ActionView   Action = "view"
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
	ActionExport Action = "export"
)

var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrNoProfile    = errors.New("no profile for subject")
)

// Resolver maps a subject to its permission profile.
type Resolver[U comparable] interface {
	Resolve(ctx context.Context, subject U) (Profile, error)
}

// Gate is the central authorization checkpoint.
type Gate[U comparable] struct {
	resolver Resolver[U]
}

func New[U comparable](r Resolver[U]) *Gate[U] { return &Gate[U]{resolver: r} }

// Authorize returns nil if subject may perform action on resource.
// A zero-value subject is always denied.
func (g *Gate[U]) Authorize(ctx context.Context, subject U, resource string, action Action) error {
	var zero U
	if subject == zero {
		return ErrUnauthorized
	}
	profile, err := g.resolver.Resolve(ctx, subject)
	if err != nil {
		return err
	}
	if profile == nil {
		return ErrNoProfile
	}
	if !profile.Has(Permission(resource + ":" + string(action))) {
		return ErrUnauthorized
	}
	return nil
}

// Can is a convenience wrapper returning bool instead of error.
func (g *Gate[U]) Can(ctx context.Context, subject U, resource string, action Action) bool {
	return g.Authorize(ctx, subject, resource, action) == nil
}
