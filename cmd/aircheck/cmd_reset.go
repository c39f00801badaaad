/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/friendsincode/aircheck/internal/db"
)

var resetForce bool

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset the database to a fresh state",
	Long: `Drop all Aircheck tables and re-create them empty.

WARNING: This action is irreversible. All DJs, songs, playlists, and
assignments will be lost.

Examples:
  # Interactive reset (will prompt for confirmation)
  aircheck reset

  # Force reset without confirmation
  aircheck reset --force
`,
	RunE: runReset,
}

func init() {
	resetCmd.Flags().BoolVarP(&resetForce, "force", "f", false, "Skip confirmation prompt")
	rootCmd.AddCommand(resetCmd)
}

func runReset(cmd *cobra.Command, args []string) error {
	if err := loadConfig(); err != nil {
		return err
	}

	if !resetForce {
		fmt.Println("This will DELETE ALL DATA: DJs, songs, playlists, and assignments.")
		fmt.Print("Type 'yes' to confirm reset: ")
		reader := bufio.NewReader(os.Stdin)
		response, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}
		if strings.TrimSpace(strings.ToLower(response)) != "yes" {
			fmt.Println("Reset cancelled.")
			return nil
		}
	}

	database, err := db.Connect(cfg)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer db.Close(database)

	if err := db.Reset(database); err != nil {
		return fmt.Errorf("reset database: %w", err)
	}

	logger.Info().Msg("database reset complete")
	return nil
}
