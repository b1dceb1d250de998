package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"

	"github.com/inkpost/blog-bff/internal/core/domain"
	"github.com/inkpost/blog-bff/internal/core/ports"
)

var (
	loginRe    = regexp.MustCompile(`^\w+$`)
	passwordRe = regexp.MustCompile(`^[\w#%]+$`)
)

func (o *Orchestrator) userOperations() []Operation {
	adminOnly := domain.RoleSet{domain.RoleAdmin}

	return []Operation{
		{Name: "fetchUsers", Roles: adminOnly, Run: o.fetchUsers},
		{Name: "removeUser", Roles: adminOnly, Run: o.removeUser},
		{Name: "updateUserRole", Roles: adminOnly, Run: o.updateUserRole},
		// Registration is reachable only by anonymous callers; an
		// authenticated user must log out first.
		{Name: "register", Roles: domain.RoleSet{domain.RoleGuest}, Run: o.registerUser},
	}
}

// fetchUsers loads the user list and the role catalog concurrently. Both are
// required for the administration view to render, so either read failing
// voids the whole response.
func (o *Orchestrator) fetchUsers(ctx context.Context, _ *domain.Session, _ json.RawMessage) (any, error) {
	var (
		users []domain.User
		roles []domain.RoleRecord
	)
	plan := Plan{
		{
			{Name: "read users", Run: func(ctx context.Context) error {
				var err error
				users, err = o.api.Users(ctx)
				return err
			}},
			{Name: "read roles", Run: func(ctx context.Context) error {
				var err error
				roles, err = o.api.Roles(ctx)
				return err
			}},
		},
	}
	if err := plan.Execute(ctx); err != nil {
		return nil, err
	}

	return ports.UsersWithRoles{Users: users, Roles: roles}, nil
}

func (o *Orchestrator) removeUser(ctx context.Context, _ *domain.Session, raw json.RawMessage) (any, error) {
	var args ports.RemoveUserArgs
	if err := decodeArgs(o.validate, raw, &args); err != nil {
		return nil, err
	}

	if err := o.api.RemoveUser(ctx, args.UserID); err != nil {
		return nil, err
	}
	return true, nil
}

func (o *Orchestrator) updateUserRole(ctx context.Context, _ *domain.Session, raw json.RawMessage) (any, error) {
	var args ports.UpdateUserRoleArgs
	if err := decodeArgs(o.validate, raw, &args); err != nil {
		return nil, err
	}
	// A missing roleId must not decode to the admin role's zero value.
	if args.RoleID == nil {
		return nil, domain.NewValidationError(MsgUnknownRole)
	}
	role := *args.RoleID
	if !role.Known() || role == domain.RoleGuest {
		return nil, domain.NewValidationError(MsgUnknownRole)
	}

	return o.api.UpdateUserRole(ctx, args.UserID, role)
}

// registerUser creates an account. The role is always the fixed default and
// the registration timestamp is the current server time: neither can be
// supplied by the caller, closing the privilege-escalation path a forged
// payload would otherwise open.
func (o *Orchestrator) registerUser(ctx context.Context, _ *domain.Session, raw json.RawMessage) (any, error) {
	var args ports.RegisterArgs
	if err := decodeArgs(o.validate, raw, &args); err != nil {
		return nil, err
	}
	if err := validateCredentials(args.Login, args.Password); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(args.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	var created *domain.User
	plan := Plan{
		{
			{Name: "check login free", Run: func(ctx context.Context) error {
				_, err := o.api.UserByLogin(ctx, args.Login)
				if err == nil {
					return domain.ErrUserExists
				}
				if errors.Is(err, domain.ErrUserNotFound) {
					return nil
				}
				return err
			}},
		},
		{
			{Name: "write user", Run: func(ctx context.Context) error {
				var err error
				created, err = o.api.CreateUser(ctx, args.Login, string(hash), o.now().UTC(), domain.RoleDefault)
				return err
			}},
		},
	}
	if err := plan.Execute(ctx); err != nil {
		return nil, err
	}

	o.log.Info().Str("user_id", created.ID).Str("login", created.Login).Msg("user registered")
	return created, nil
}

func validateCredentials(login, password string) error {
	switch {
	case utf8.RuneCountInString(login) < 3:
		return domain.NewValidationError(msgShortLogin)
	case utf8.RuneCountInString(login) > 15:
		return domain.NewValidationError(msgLongLogin)
	case !loginRe.MatchString(login):
		return domain.NewValidationError(msgBadLogin)
	case utf8.RuneCountInString(password) < 6:
		return domain.NewValidationError(msgShortPassword)
	case utf8.RuneCountInString(password) > 30:
		return domain.NewValidationError(msgLongPassword)
	case !passwordRe.MatchString(password):
		return domain.NewValidationError(msgBadPassword)
	}
	return nil
}
