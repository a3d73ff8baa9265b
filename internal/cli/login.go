package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

// newLoginCmd creates and returns a new login command
func newLoginCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate with the Reservat backend",
		Long: `Login to the Reservat backend as a provider account.
The returned access token is stored in the credentials file and used by every
subsequent command until it expires or you log out.

Example:
  reservat login --email hotel@example.com --password secreto
  reservat login --email hotel@example.com  # prompts for the password`,
		RunE: runLogin,
	}

	cmd.Flags().String("email", "", "Provider account email")
	cmd.Flags().String("password", "", "Account password (prompted when omitted)")
	return cmd
}

// runLogin handles the login command execution
func runLogin(cmd *cobra.Command, args []string) error {
	rt, err := newRuntime()
	if err != nil {
		return err
	}

	email, _ := cmd.Flags().GetString("email")
	if email == "" {
		return fmt.Errorf("no email provided. Use the --email flag")
	}
	password, _ := cmd.Flags().GetString("password")
	if password == "" {
		fmt.Print("Password: ")
		reader := bufio.NewReader(os.Stdin)
		line, readErr := reader.ReadString('\n')
		if readErr != nil {
			return fmt.Errorf("failed to read password: %w", readErr)
		}
		password = strings.TrimSpace(line)
	}
	if password == "" {
		return fmt.Errorf("no password provided")
	}

	sess, authErr := rt.sessions.Authenticate(cmd.Context(), email, password)
	if authErr != nil {
		return fmt.Errorf("login failed: %s", authErr.Error())
	}

	if jsonOutput {
		kv := map[string]interface{}{
			"status":     "success",
			"email":      sess.Claims.Email,
			"vertical":   string(sess.Claims.Vertical),
			"expires_at": sess.Claims.Expiry.Format(time.RFC3339),
		}
		printJSON(kv)
	} else {
		okLabel.Println("✓ Login successful")
		fmt.Printf("Account: %s (%s)\n", sess.Claims.Email, sess.Claims.Vertical)
		fmt.Printf("Token expires at: %s\n", sess.Claims.Expiry.Local().Format("2006-01-02 15:04:05 MST"))
	}

	return nil
}

// newLogoutCmd creates and returns a new logout command
func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Discard the stored session",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newRuntime()
			if err != nil {
				return err
			}
			rt.sessions.Invalidate()

			if jsonOutput {
				printJSON(map[string]string{"status": "success"})
			} else {
				okLabel.Println("✓ Logged out")
			}
			return nil
		},
	}
}

// newWhoamiCmd creates and returns a new whoami command
func newWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the identity of the active session",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newRuntime()
			if err != nil {
				return err
			}
			claims, err := rt.requireSession()
			if err != nil {
				return err
			}

			if jsonOutput {
				kv := map[string]string{
					"id":         claims.SubjectID,
					"email":      claims.Email,
					"vertical":   string(claims.Vertical),
					"expires_at": claims.Expiry.Format(time.RFC3339),
				}
				printJSON(kv)
			} else {
				fmt.Printf("Provider ID: %s\n", claims.SubjectID)
				fmt.Printf("Email: %s\n", claims.Email)
				fmt.Printf("Vertical: %s\n", claims.Vertical)
				fmt.Printf("Token expires at: %s\n", claims.Expiry.Local().Format("2006-01-02 15:04:05 MST"))
			}
			return nil
		},
	}
}
