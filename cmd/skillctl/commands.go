package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"skilltrack/internal/auth"
	"skilltrack/internal/metrics"
	"skilltrack/internal/progression"
	"skilltrack/internal/repository"
	"skilltrack/internal/scheduler"
	"skilltrack/internal/service"
	"skilltrack/migrations"
)

var (
	// token flags
	tokenUserID uint
	tokenEmail  string

	// keygen flags
	keygenOut string

	// progress flags
	progressUserID     uint
	progressCategoryID uint

	// options flags
	optLevel       string
	optStatus      string
	optNextUpgrade string
)

func init() {
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(tokenCmd)
	rootCmd.AddCommand(keygenCmd)
	rootCmd.AddCommand(progressCmd)
	rootCmd.AddCommand(optionsCmd)
	rootCmd.AddCommand(digestCmd)

	tokenCmd.Flags().UintVar(&tokenUserID, "user-id", 0, "User ID the token is issued for (required)")
	tokenCmd.Flags().StringVar(&tokenEmail, "email", "", "Email claim (required)")
	_ = tokenCmd.MarkFlagRequired("user-id")
	_ = tokenCmd.MarkFlagRequired("email")

	keygenCmd.Flags().StringVar(&keygenOut, "out", "", "Write the private key to this file instead of stdout")

	progressCmd.Flags().UintVar(&progressUserID, "user", 0, "User ID (required)")
	progressCmd.Flags().UintVar(&progressCategoryID, "category", 0, "Only this category")
	_ = progressCmd.MarkFlagRequired("user")

	optionsCmd.Flags().StringVar(&optLevel, "level", "", "Current level (empty when never rated)")
	optionsCmd.Flags().StringVar(&optStatus, "status", string(progression.StatusDraft), "Current status")
	optionsCmd.Flags().StringVar(&optNextUpgrade, "next-upgrade", "", "Next upgrade date (RFC3339)")
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations",
	Long: `Apply all pending SQL migrations bundled with the binary.

Already applied migrations are verified by checksum; a changed file aborts
the run.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, db, err := openDatabase(cmd.Context())
		if err != nil {
			return err
		}
		defer db.Close()

		applied, err := db.Migrate(cmd.Context(), migrations.FS)
		if err != nil {
			return err
		}
		for _, m := range applied {
			fmt.Fprintf(cmd.OutOrStdout(), "applied %s\n", m.Version)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d migration(s) applied\n", len(applied))
		return nil
	},
}

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Mint a bearer token for development",
	Long: `Mint a bearer token signed with JWT_SECRET.

Examples:
  # Token for user 1
  skillctl token --user-id 1 --email admin@example.com`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd.Context())
		if err != nil {
			return err
		}
		tokens, err := auth.NewService(&cfg.JWT)
		if err != nil {
			return err
		}
		token, err := tokens.GenerateToken(tokenUserID, tokenEmail)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	},
}

var keygenCmd = &cobra.Command{
	Use:   "keygen",
	Short: "Generate an ECDSA P-256 signing key",
	Long: `Generate a PEM encoded ECDSA P-256 private key for ES256 tokens.

Set JWT_SECRET to the private key on the issuer and to the public key on
servers that only validate tokens.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runKeygen(cmd.OutOrStdout(), keygenOut)
	},
}

func runKeygen(out io.Writer, path string) error {
	private, err := auth.GenerateKeyPEM()
	if err != nil {
		return err
	}
	public, err := auth.PublicKeyPEM(private)
	if err != nil {
		return err
	}

	if path == "" {
		if _, err := out.Write(private); err != nil {
			return err
		}
	} else {
		if err := os.WriteFile(path, private, 0o600); err != nil {
			return fmt.Errorf("failed to write private key: %w", err)
		}
		fmt.Fprintf(out, "private key written to %s\n", path)
	}
	_, err = out.Write(public)
	return err
}

var progressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Print a user's category progress as JSON",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, db, err := openDatabase(cmd.Context())
		if err != nil {
			return err
		}
		defer db.Close()

		svc := service.NewProgressService(
			repository.NewCatalogRepository(db.DB),
			repository.NewRatingRepository(db.DB),
			nil,
			metrics.New(),
		)

		var result any
		if progressCategoryID != 0 {
			result, err = svc.CategoryProgress(cmd.Context(), progressUserID, progressCategoryID)
		} else {
			result, err = svc.AllProgress(cmd.Context(), progressUserID)
		}
		if err != nil {
			return err
		}
		return writeJSON(cmd.OutOrStdout(), result)
	},
}

// optionsReport is the output of the options command
type optionsReport struct {
	Options   []progression.Level                        `json:"options"`
	Decisions map[progression.Level]progression.Decision `json:"decisions"`
}

var optionsCmd = &cobra.Command{
	Use:   "options",
	Short: "Show which levels a rating may move to",
	Long: `Show the selectable levels and the upgrade decision for every level,
given the current level, status and next upgrade date of a rating.

Examples:
  # Approved medium rating in its cool-down
  skillctl options --level medium --status approved --next-upgrade 2025-04-01T00:00:00Z`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		report, err := buildOptionsReport(optLevel, optStatus, optNextUpgrade, time.Now())
		if err != nil {
			return err
		}
		return writeJSON(cmd.OutOrStdout(), report)
	},
}

func buildOptionsReport(level, status, nextUpgrade string, now time.Time) (*optionsReport, error) {
	var current *progression.Level
	if level != "" {
		l, err := progression.ParseLevel(level)
		if err != nil {
			return nil, err
		}
		current = &l
	}
	st, err := progression.ParseStatus(status)
	if err != nil {
		return nil, err
	}
	var next *time.Time
	if nextUpgrade != "" {
		t, err := time.Parse(time.RFC3339, nextUpgrade)
		if err != nil {
			return nil, fmt.Errorf("invalid --next-upgrade: %w", err)
		}
		next = &t
	}

	options, err := progression.AvailableOptions(current, st, next, now)
	if err != nil {
		return nil, err
	}
	report := &optionsReport{
		Options:   options,
		Decisions: make(map[progression.Level]progression.Decision, len(progression.Levels)),
	}
	for _, l := range progression.Levels {
		d, err := progression.CanUpgrade(current, l, st, next, now)
		if err != nil {
			return nil, err
		}
		report.Decisions[l] = d
	}
	return report, nil
}

var digestCmd = &cobra.Command{
	Use:   "digest",
	Short: "Send the pending approval digest now",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, db, err := openDatabase(cmd.Context())
		if err != nil {
			return err
		}
		defer db.Close()

		ratingRepo := repository.NewRatingRepository(db.DB)
		userRepo := repository.NewUserRepository(db.DB)
		audit := service.NewAuditService(repository.NewAuditRepository(db.DB))
		approvals := service.NewApprovalService(ratingRepo, userRepo, audit, nil, metrics.New(), cfg.Rating.UpgradeCoolDown, nil)
		notifications := service.NewNotificationService(repository.NewNotificationRepository(db.DB))

		sent, err := scheduler.RunPendingDigest(cmd.Context(), approvals, notifications)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d digest notification(s) written\n", sent)
		return nil
	},
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
