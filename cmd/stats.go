package cmd

import (
	"context"
	"fmt"

	"github.com/abhisek/profexa/internal/store"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show learning statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve database path: %w", err)
		}

		s, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer s.Close()

		ctx := context.Background()
		users, err := s.UserRepo().Count(ctx)
		if err != nil {
			return fmt.Errorf("count users: %w", err)
		}
		sessions, err := s.SessionRepo().Count(ctx)
		if err != nil {
			return fmt.Errorf("count sessions: %w", err)
		}

		fmt.Printf("Database:          %s\n", dbPath)
		fmt.Printf("Users:             %d\n", users)
		fmt.Printf("Learning sessions: %d\n", sessions)
		return nil
	},
}
