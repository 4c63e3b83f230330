// ABOUTME: This file implements the login, logout, and whoami commands
// ABOUTME: Passwords are read from the terminal, never from argv

package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/TeBabaEvent/eventclient/models"
)

var loginCmd = &cobra.Command{
	Use:   "login <email>",
	Short: "Sign in to the ticketing backend",
	Args:  cobra.ExactArgs(1),
	RunE:  runLogin,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and clear the stored session",
	Args:  cobra.NoArgs,
	RunE:  runLogout,
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in identity",
	Args:  cobra.NoArgs,
	RunE:  runWhoami,
}

func init() {
	rootCmd.AddCommand(loginCmd, logoutCmd, whoamiCmd)
	loginCmd.Flags().String("password", "", "password (prompted when omitted)")
}

func runLogin(cmd *cobra.Command, args []string) error {
	email := args[0]
	password, _ := cmd.Flags().GetString("password")
	if password == "" {
		fmt.Fprint(os.Stderr, "Password: ")
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil {
			return fmt.Errorf("reading password: %w", err)
		}
		password = strings.TrimRight(line, "\r\n")
	}

	result := sessionSvc.Login(context.Background(), email, password)
	if !result.Success {
		failColor.Fprintln(os.Stderr, loginErrorMessage(result))
		os.Exit(1)
	}

	user := sessionSvc.User()
	okColor.Fprintf(os.Stderr, "Signed in as %s (%s)\n", user.Email, user.Role)
	return nil
}

func loginErrorMessage(result models.LoginResult) string {
	switch result.Kind {
	case models.LoginErrorInvalidCredentials:
		return "Invalid email or password."
	case models.LoginErrorRateLimited:
		return "Too many attempts, wait a minute and try again."
	case models.LoginErrorServer:
		return "The server is unavailable, try again later."
	default:
		return "Login failed."
	}
}

func runLogout(cmd *cobra.Command, args []string) error {
	sessionSvc.Logout(context.Background())
	fmt.Fprintln(os.Stderr, "Signed out.")
	return nil
}

func runWhoami(cmd *cobra.Command, args []string) error {
	if !sessionSvc.CheckAuth(context.Background()) {
		fmt.Fprintln(os.Stderr, "Not signed in.")
		os.Exit(1)
	}

	user := sessionSvc.User()
	fmt.Printf("ID:    %s\n", user.ID)
	fmt.Printf("Email: %s\n", user.Email)
	fmt.Printf("Role:  %s\n", user.Role)
	if sessionSvc.CanScan() {
		fmt.Println("Scanner access: yes")
	}
	return nil
}
