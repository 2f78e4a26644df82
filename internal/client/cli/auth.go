package cli

import (
	"bufio"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dmitrijs2005/gophtasks/internal/client/client"
)

func newLoginCmd(s *session) *cobra.Command {
	var username string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and store an access token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()

			if username == "" {
				u, err := GetSimpleText(bufio.NewReader(cmd.InOrStdin()), "Username", out)
				if err != nil {
					return err
				}
				username = u
			}

			password, err := GetPassword(out)
			if err != nil {
				return err
			}
			defer clear(password)

			token, err := s.api.Login(cmd.Context(), username, string(password))
			if err != nil {
				if errors.Is(err, client.ErrUnauthorized) {
					return errors.New("login failed: incorrect username or password")
				}
				return fmt.Errorf("login failed: %w", err)
			}

			if err := s.tokens.Save(token); err != nil {
				return fmt.Errorf("save token: %w", err)
			}

			fmt.Fprintln(out, token)
			return nil
		},
	}
	cmd.Flags().StringVarP(&username, "username", "u", "", "user name (prompted when empty)")
	return cmd
}

func newLogoutCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored access token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := s.tokens.Clear(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "logged out")
			return nil
		},
	}
}

func newWhoamiCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			token, err := s.tokens.Load()
			if err != nil {
				return err
			}
			id, err := s.api.CurrentUser(cmd.Context(), token)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s (id %d)\n", id.Username, id.ID)
			return nil
		},
	}
}
