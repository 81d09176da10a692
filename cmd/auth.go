package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/uta/internal/shared"
	"github.com/urfave/cli/v3"
)

// AuthRegister creates an account and prints the resulting user.
func (r *Runner) AuthRegister(ctx context.Context, cmd *cli.Command) error {
	email := cmd.String("email")
	password := cmd.String("password")
	name := cmd.String("name")

	user, err := r.session.Register(ctx, email, password, name)
	if err != nil {
		return err
	}

	r.logger.Infof("registered account for %s", user.Email)
	r.writePlainln("✓ Registered: %s (id %d)", user.DisplayName, user.ID)
	return nil
}

// AuthLogin authenticates and prints the resulting user.
func (r *Runner) AuthLogin(ctx context.Context, cmd *cli.Command) error {
	email := cmd.String("email")
	password := cmd.String("password")

	user, err := r.session.Login(ctx, email, password)
	if err != nil {
		return err
	}

	r.logger.Infof("logged in as %s", user.Email)
	r.writePlainln("✓ Logged in: %s (id %d)", user.DisplayName, user.ID)
	return nil
}

// AuthWhoami fetches the backend record for a user id.
func (r *Runner) AuthWhoami(ctx context.Context, cmd *cli.Command) error {
	id := cmd.IntArg("id")
	if id == 0 {
		return fmt.Errorf("%w: user id", shared.ErrMissingArgument)
	}

	user, err := r.session.FetchUser(ctx, int64(id))
	if err != nil {
		return err
	}

	r.writePlainln("%s <%s> (id %d)", user.DisplayName, user.Email, user.ID)
	return nil
}
