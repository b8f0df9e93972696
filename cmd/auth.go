package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/adaptly/internal/auth"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Store the platform access token",
	Long:  "Store a bearer token issued by the learning platform. Reads ADAPTLY_TOKEN when --token is not given.",
	RunE: func(cmd *cobra.Command, args []string) error {
		token, _ := cmd.Flags().GetString("token")
		if token == "" {
			token = os.Getenv("ADAPTLY_TOKEN")
		}
		return withDeps(cmd, func(ctx context.Context, d *deps) error {
			s := d.auth()
			if err := s.Login(ctx, token); err != nil {
				if errors.Is(err, auth.ErrEmptyToken) {
					return fmt.Errorf("%w: pass --token or set ADAPTLY_TOKEN", err)
				}
				return err
			}
			if !s.IsAuthenticated(ctx) {
				fmt.Println("Token stored, but it has already expired.")
				return nil
			}
			if u, ok := s.User(ctx); ok && u.Username != "" {
				fmt.Printf("Logged in as %s.\n", u.Username)
				return nil
			}
			fmt.Println("Token stored.")
			return nil
		})
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the platform access token",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDeps(cmd, func(ctx context.Context, d *deps) error {
			if err := d.auth().Logout(ctx); err != nil {
				return err
			}
			fmt.Println("Logged out.")
			return nil
		})
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the logged-in user",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDeps(cmd, func(ctx context.Context, d *deps) error {
			s := d.auth()
			if !s.IsAuthenticated(ctx) {
				fmt.Println("Not logged in.")
				return nil
			}
			u, ok := s.User(ctx)
			if !ok {
				fmt.Println("Logged in with an opaque token.")
				return nil
			}
			fmt.Printf("User:    %s\n", u.Username)
			if len(u.Roles) > 0 {
				fmt.Printf("Roles:   %s\n", strings.Join(u.Roles, ", "))
			}
			if !u.ExpiresAt.IsZero() {
				fmt.Printf("Expires: %s\n", u.ExpiresAt.Local().Format("2006-01-02 15:04"))
			}
			return nil
		})
	},
}

func init() {
	loginCmd.Flags().String("token", "", "Bearer token")
}

// requireTeacher fails unless the stored token carries the teacher role.
func requireTeacher(ctx context.Context, d *deps) error {
	s := d.auth()
	if !s.IsAuthenticated(ctx) {
		return errors.New("not logged in: run adaptly login first")
	}
	if u, ok := s.User(ctx); ok && !u.IsTeacher() {
		return fmt.Errorf("%s is not a teacher account", u.Username)
	}
	return nil
}
