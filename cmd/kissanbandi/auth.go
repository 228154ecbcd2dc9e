package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Skillon-x/kissanbandi/client/credentials"
)

func newLoginCmd() *cobra.Command {
	var kind, token string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Store a bearer token in the durable credential store",
		RunE: func(cmd *cobra.Command, args []string) error {
			k := credentials.Kind(kind)
			if k != credentials.Admin && k != credentials.User {
				return fmt.Errorf("--kind must be admin or user, got %q", kind)
			}
			if token == "" {
				return errors.New("--token is required")
			}
			a := appFrom(cmd)
			if err := a.keyring.Save(cmd.Context(), k, credentials.Durable, token); err != nil {
				return err
			}
			a.log.Info().Str("kind", kind).Msg("token stored")
			return nil
		},
	}
	cmd.Flags().StringVar(&kind, "kind", string(credentials.User), "Token kind: admin or user")
	cmd.Flags().StringVar(&token, "token", "", "Bearer token issued by the backend")
	return cmd
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Remove stored admin and user tokens",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := appFrom(cmd)
			if err := a.keyring.Clear(cmd.Context()); err != nil {
				return err
			}
			a.log.Info().Msg("credentials cleared")
			return nil
		},
	}
}

type whoami struct {
	Kind      credentials.Kind  `json:"kind"`
	Scope     credentials.Scope `json:"scope"`
	Subject   string            `json:"subject,omitempty"`
	Role      string            `json:"role,omitempty"`
	Email     string            `json:"email,omitempty"`
	ExpiresAt *time.Time        `json:"expiresAt,omitempty"`
	Expired   bool              `json:"expired"`
}

func newWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the credential requests will carry",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := appFrom(cmd)
			cred, ok, err := a.keyring.Lookup(cmd.Context())
			if err != nil {
				return err
			}
			if !ok {
				return errors.New("not logged in")
			}
			out := whoami{Kind: cred.Kind, Scope: cred.Scope}
			claims, err := credentials.Inspect(cred.Token)
			if err != nil {
				// Opaque tokens are still sent; only the claims are unknown.
				a.log.Debug().Err(err).Msg("token is not a readable JWT")
			} else {
				out.Subject, out.Role, out.Email = claims.Subject, claims.Role, claims.Email
				if !claims.ExpiresAt.IsZero() {
					exp := claims.ExpiresAt.UTC()
					out.ExpiresAt = &exp
				}
				out.Expired = claims.Expired(time.Now())
			}
			return printJSON(cmd.OutOrStdout(), out)
		},
	}
}
