package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/chrisdamba/foodstore/internal/catalog"
	"github.com/chrisdamba/foodstore/internal/models"
	"github.com/spf13/cobra"
)

var (
	authEmail    string
	authPassword string
	authName     string
	authPhone    string

	addressLabel      string
	addressStreet     string
	addressCity       string
	addressPostalCode string
	addressDefault    bool
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in and store the access token",
	RunE: func(cmd *cobra.Command, args []string) error {
		password, err := passwordOrPrompt(cmd)
		if err != nil {
			return err
		}
		client := newClient(cfg)
		if _, err := client.Login(cmd.Context(), models.Credentials{Email: authEmail, Password: password}); err != nil {
			return fmt.Errorf("login failed: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s\n", authEmail)
		return nil
	},
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account and store the access token",
	RunE: func(cmd *cobra.Command, args []string) error {
		password, err := passwordOrPrompt(cmd)
		if err != nil {
			return err
		}
		client := newClient(cfg)
		registration := models.Registration{
			Name:     authName,
			Email:    authEmail,
			Password: password,
			Phone:    authPhone,
		}
		if _, err := client.Register(cmd.Context(), registration); err != nil {
			return fmt.Errorf("registration failed: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Welcome, %s\n", authName)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the stored access token",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := newClient(cfg).Logout(); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Signed out")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed in user and their addresses",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		token, err := catalog.NewFileTokenStore(cfg.TokenFile).Token()
		if err != nil {
			return err
		}
		if token == "" {
			fmt.Fprintln(out, "Not signed in")
			return nil
		}
		info, err := catalog.InspectToken(token)
		if err != nil {
			return err
		}
		if info.Expired(time.Now()) {
			fmt.Fprintf(out, "Session expired at %s, please log in again\n", info.ExpiresAt.Format(time.RFC3339))
			return nil
		}

		user, err := newClient(cfg).Profile(cmd.Context())
		if err != nil {
			if catalog.IsUnauthorized(err) {
				fmt.Fprintln(out, "Session rejected by the backend, please log in again")
				return nil
			}
			return err
		}
		if user == nil {
			return errors.New("empty profile response")
		}
		fmt.Fprintf(out, "%s <%s>\n", user.Name, user.Email)
		if user.Phone != "" {
			fmt.Fprintf(out, "Phone: %s\n", user.Phone)
		}
		if !info.ExpiresAt.IsZero() {
			fmt.Fprintf(out, "Session valid until %s\n", info.ExpiresAt.Format(time.RFC3339))
		}
		for i, a := range user.Addresses {
			marker := ""
			if a.IsDefault {
				marker = " (default)"
			}
			fmt.Fprintf(out, "  %d. %s: %s, %s %s%s\n", i, a.Label, a.Street, a.PostalCode, a.City, marker)
		}
		return nil
	},
}

var addressCmd = &cobra.Command{
	Use:   "address",
	Short: "Manage delivery addresses",
}

var addressAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a delivery address to the profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		address := models.UserAddress{
			Label:      addressLabel,
			Street:     addressStreet,
			City:       addressCity,
			PostalCode: addressPostalCode,
			IsDefault:  addressDefault,
		}
		if err := newClient(cfg).AddAddress(cmd.Context(), address); err != nil {
			return fmt.Errorf("failed to add address: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Address added")
		return nil
	},
}

func init() {
	for _, c := range []*cobra.Command{loginCmd, registerCmd} {
		c.Flags().StringVar(&authEmail, "email", "", "account email")
		c.Flags().StringVar(&authPassword, "password", "", "account password (prompted when empty)")
		cobra.CheckErr(c.MarkFlagRequired("email"))
	}
	registerCmd.Flags().StringVar(&authName, "name", "", "full name")
	registerCmd.Flags().StringVar(&authPhone, "phone", "", "phone number")
	cobra.CheckErr(registerCmd.MarkFlagRequired("name"))

	addressAddCmd.Flags().StringVar(&addressLabel, "label", "Casa", "address label")
	addressAddCmd.Flags().StringVar(&addressStreet, "street", "", "street and number")
	addressAddCmd.Flags().StringVar(&addressCity, "city", "", "city")
	addressAddCmd.Flags().StringVar(&addressPostalCode, "postal-code", "", "postal code")
	addressAddCmd.Flags().BoolVar(&addressDefault, "default", false, "make this the default address")
	cobra.CheckErr(addressAddCmd.MarkFlagRequired("street"))
	cobra.CheckErr(addressAddCmd.MarkFlagRequired("city"))
	addressCmd.AddCommand(addressAddCmd)

	rootCmd.AddCommand(loginCmd, registerCmd, logoutCmd, whoamiCmd, addressCmd)
}

func passwordOrPrompt(cmd *cobra.Command) (string, error) {
	if authPassword != "" {
		return authPassword, nil
	}
	fmt.Fprint(cmd.OutOrStdout(), "Password: ")
	return readPassword(cmd.InOrStdin())
}

func readPassword(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return "", errors.New("password must not be empty")
	}
	return line, nil
}
