package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var expireCmd = &cobra.Command{
	Use:   "expire",
	Short: "Remove expired provisional bookings once and exit",
	RunE:  runExpire,
}

func init() {
	rootCmd.AddCommand(expireCmd)
}

func runExpire(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	rt, err := newRuntime(ctx, true)
	if err != nil {
		return err
	}
	defer rt.Close()

	expired, err := rt.state.ExpireNow(ctx)
	if err != nil {
		return fmt.Errorf("expire: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "expired %d provisional booking(s)\n", expired)
	return nil
}
