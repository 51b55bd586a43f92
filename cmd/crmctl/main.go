package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/dangerclosesec/crm/internal/app"
	"github.com/dangerclosesec/crm/internal/config"
	"github.com/dangerclosesec/crm/internal/database"
	"github.com/dangerclosesec/crm/internal/model"
	"github.com/dangerclosesec/crm/internal/policy"
	"github.com/dangerclosesec/crm/internal/service"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var (
	verbose bool
	dryRun  bool
	asEmail string
	notes   string

	newUser service.CreateUserInput
	newTeam service.CreateTeamInput
	teamRef string
	mgrRef  string
)

// operator acts for commands run directly against the database. It is an
// admin without a user row.
var operator = policy.Principal{ID: uuid.Nil, Role: policy.RoleAdmin}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")

	userCreateCmd.Flags().StringVar(&newUser.Email, "email", "", "Email address")
	userCreateCmd.Flags().StringVar(&newUser.FirstName, "first-name", "", "First name")
	userCreateCmd.Flags().StringVar(&newUser.LastName, "last-name", "", "Last name")
	userCreateCmd.Flags().StringVar(&newUser.Password, "password", "", "Initial password")
	userCreateCmd.Flags().StringVar(&newUser.Role, "role", "sales_executive", "admin, sales_manager or sales_executive")
	userCreateCmd.Flags().StringVar(&teamRef, "team", "", "Team id")
	userCreateCmd.Flags().StringVar(&mgrRef, "manager", "", "Manager email")
	userCreateCmd.MarkFlagRequired("email")
	userCreateCmd.MarkFlagRequired("first-name")
	userCreateCmd.MarkFlagRequired("password")

	userCmd.AddCommand(userCreateCmd)
	userCmd.AddCommand(userSetManagerCmd)

	teamCreateCmd.Flags().StringVar(&newTeam.Description, "description", "", "Team description")
	teamCmd.AddCommand(teamCreateCmd)

	bulkAssignCmd.Flags().StringVar(&asEmail, "as", "", "Email of the admin or manager performing the assignment")
	bulkAssignCmd.Flags().StringVar(&notes, "notes", "", "Notes recorded on each assignment")
	bulkAssignCmd.MarkFlagRequired("as")
	leadsCmd.AddCommand(bulkAssignCmd)

	reconcileCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print what would be done without making changes")

	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(userCmd)
	rootCmd.AddCommand(teamCmd)
	rootCmd.AddCommand(leadsCmd)
	rootCmd.AddCommand(reconcileCmd)
}

var rootCmd = &cobra.Command{
	Use:           "crmctl",
	Short:         "crmctl administers the CRM database",
	Long:          `crmctl migrates the schema, bootstraps users and teams, and runs assignment and reconciliation jobs.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB(config.Load())
		if err != nil {
			return err
		}
		if err := database.Migrate(cmd.Context(), db); err != nil {
			return err
		}
		fmt.Println("Schema is up to date")
		return nil
	},
}

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage users",
}

var userCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a user",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		ctx := cmd.Context()

		if teamRef != "" {
			id, err := uuid.Parse(teamRef)
			if err != nil {
				return fmt.Errorf("invalid team id %q: %w", teamRef, err)
			}
			newUser.TeamID = &id
		}
		if mgrRef != "" {
			manager, err := a.Users.FindByEmail(ctx, mgrRef)
			if err != nil {
				return fmt.Errorf("looking up manager %s: %w", mgrRef, err)
			}
			newUser.ManagerID = &manager.ID
		}

		user, err := a.Users.Bootstrap(ctx, newUser)
		if err != nil {
			return err
		}
		fmt.Printf("Created %s %s (%s)\n", user.Role, user.Email, user.ID)
		return nil
	},
}

var userSetManagerCmd = &cobra.Command{
	Use:   "set-manager [user-email] [manager-email]",
	Short: "Set or clear a user's manager",
	Long:  `Set the manager of a user. Pass "none" as the manager to clear it.`,
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		ctx := cmd.Context()

		user, err := a.Users.FindByEmail(ctx, args[0])
		if err != nil {
			return fmt.Errorf("looking up user %s: %w", args[0], err)
		}

		var managerID *uuid.UUID
		if !strings.EqualFold(args[1], "none") {
			manager, err := a.Users.FindByEmail(ctx, args[1])
			if err != nil {
				return fmt.Errorf("looking up manager %s: %w", args[1], err)
			}
			managerID = &manager.ID
		}

		if _, err := a.Teams.SetManager(ctx, operator, user.ID, managerID); err != nil {
			return err
		}
		fmt.Printf("Updated manager of %s\n", user.Email)
		return nil
	},
}

var teamCmd = &cobra.Command{
	Use:   "team",
	Short: "Manage teams",
}

var teamCreateCmd = &cobra.Command{
	Use:   "create [name]",
	Short: "Create a team",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}

		newTeam.Name = args[0]
		team, err := a.Teams.CreateTeam(cmd.Context(), operator, newTeam)
		if err != nil {
			return err
		}
		fmt.Printf("Created team %s (%s)\n", team.Name, team.ID)
		return nil
	},
}

var leadsCmd = &cobra.Command{
	Use:   "leads",
	Short: "Work with leads",
}

var bulkAssignCmd = &cobra.Command{
	Use:   "bulk-assign [assignee-email] [lead-id...]",
	Short: "Assign leads to a user",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		ctx := cmd.Context()

		actor, err := a.Users.FindByEmail(ctx, asEmail)
		if err != nil {
			return fmt.Errorf("looking up %s: %w", asEmail, err)
		}
		assignee, err := a.Users.FindByEmail(ctx, args[0])
		if err != nil {
			return fmt.Errorf("looking up assignee %s: %w", args[0], err)
		}

		input := service.BulkAssignInput{AssigneeID: assignee.ID, Notes: notes}
		for _, raw := range args[1:] {
			id, err := uuid.Parse(raw)
			if err != nil {
				return fmt.Errorf("invalid lead id %q: %w", raw, err)
			}
			input.IDs = append(input.IDs, id)
		}

		result, err := a.Assignments.BulkAssign(ctx, actor.Principal(), model.KindLead, input)
		if err != nil {
			return err
		}

		for _, r := range result.Results {
			if r.Success {
				if verbose {
					fmt.Printf("  %s assigned\n", r.ID)
				}
				continue
			}
			fmt.Printf("  %s failed: %s\n", r.ID, r.Error)
		}
		if !result.Success {
			return fmt.Errorf("some leads were not assigned")
		}
		fmt.Printf("Assigned %d leads to %s\n", len(result.Results), assignee.Email)
		return nil
	},
}

var reconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Repair lead and opportunity teams that drifted from their assignee",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}

		a.Reconciliation.SetDryRun(dryRun)
		counts, err := a.Reconciliation.ReconcileAll(cmd.Context())
		if err != nil {
			return err
		}
		for kind, n := range counts {
			fmt.Printf("%s: %d drifted\n", kind, n)
		}
		return nil
	},
}

func openDB(cfg *config.Config) (*gorm.DB, error) {
	level := logger.Silent
	if verbose {
		level = logger.Info
	}
	return database.Open(cfg, level)
}

func openApp() (*app.App, error) {
	cfg := config.Load()
	db, err := openDB(cfg)
	if err != nil {
		return nil, err
	}
	return app.New(cfg, db, slog.Default())
}

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})))

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
