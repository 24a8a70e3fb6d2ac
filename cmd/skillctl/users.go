package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"skilltrack/internal/models"
	"skilltrack/internal/progression"
	"skilltrack/internal/repository"
	"skilltrack/pkg/validator"
)

var (
	userEmail string
	userName  string
	userRole  string

	// set-role flags
	setRoleID   uint
	setRoleName string
)

func init() {
	rootCmd.AddCommand(userCmd)
	userCmd.AddCommand(userAddCmd)
	userCmd.AddCommand(userSetRoleCmd)

	userAddCmd.Flags().StringVar(&userEmail, "email", "", "Email address (required)")
	userAddCmd.Flags().StringVar(&userName, "name", "", "Full name (required)")
	userAddCmd.Flags().StringVar(&userRole, "role", string(progression.RoleEmployee), "employee, tech_lead, manager or admin")
	_ = userAddCmd.MarkFlagRequired("email")
	_ = userAddCmd.MarkFlagRequired("name")

	userSetRoleCmd.Flags().UintVar(&setRoleID, "id", 0, "User ID (required)")
	userSetRoleCmd.Flags().StringVar(&setRoleName, "role", "", "New role (required)")
	_ = userSetRoleCmd.MarkFlagRequired("id")
	_ = userSetRoleCmd.MarkFlagRequired("role")
}

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage user profiles",
	Long: `Manage the user profiles ratings are attached to.

Accounts live with the identity provider; these profiles only carry the id,
email and role the API authorizes against.`,
}

var userAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Create a user profile",
	Long: `Create a user profile and print it as JSON.

Examples:
  skillctl user add --email lead@example.com --name "Dana Lee" --role tech_lead`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		user, err := newUserProfile(userEmail, userName, userRole)
		if err != nil {
			return err
		}

		_, db, err := openDatabase(cmd.Context())
		if err != nil {
			return err
		}
		defer db.Close()

		if err := repository.NewUserRepository(db.DB).Create(cmd.Context(), user); err != nil {
			return err
		}
		return writeJSON(cmd.OutOrStdout(), user)
	},
}

var userSetRoleCmd = &cobra.Command{
	Use:   "set-role",
	Short: "Change the role of a user",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		role, err := progression.ParseRole(setRoleName)
		if err != nil {
			return err
		}

		_, db, err := openDatabase(cmd.Context())
		if err != nil {
			return err
		}
		defer db.Close()

		if err := repository.NewUserRepository(db.DB).UpdateRole(cmd.Context(), setRoleID, role); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "user %d is now %s\n", setRoleID, role)
		return nil
	},
}

// newUserProfile validates and normalizes the flags of user add
func newUserProfile(email, name, role string) (*models.User, error) {
	email = validator.SanitizeEmail(email)
	if err := validator.ValidateEmail(email); err != nil {
		return nil, err
	}
	name = validator.SanitizeString(name)
	if err := validator.ValidateRequired("name", name); err != nil {
		return nil, err
	}
	r, err := progression.ParseRole(role)
	if err != nil {
		return nil, err
	}
	return &models.User{Email: email, FullName: name, Role: r}, nil
}
