package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	remoteService "github.com/m04kA/SMC-FieldScheduler/internal/service/remote"
)

var pullActor string

var pushCmd = &cobra.Command{
	Use:   "push",
	Short: "Send the local snapshot to the remote store",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSync(cmd, func(ctx context.Context, svc *remoteService.Service) (*remoteService.Result, error) {
			return svc.Push(ctx)
		})
	},
}

var pullCmd = &cobra.Command{
	Use:   "pull",
	Short: "Replace the local snapshot with the remote one",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSync(cmd, func(ctx context.Context, svc *remoteService.Service) (*remoteService.Result, error) {
			return svc.Pull(ctx, pullActor)
		})
	},
}

func init() {
	pullCmd.Flags().StringVar(&pullActor, "actor", "cli", "user recorded in the audit log")
	rootCmd.AddCommand(pushCmd, pullCmd)
}

func runSync(cmd *cobra.Command, fn func(context.Context, *remoteService.Service) (*remoteService.Result, error)) error {
	ctx := context.Background()

	rt, err := newRuntime(ctx, false)
	if err != nil {
		return err
	}
	defer rt.Close()

	result, err := fn(ctx, rt.remoteService())
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s: technicians=%d bookings=%d\n", result.Direction, result.Technicians, result.Bookings)
	if result.Warning != "" {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s\n", result.Warning)
	}
	return nil
}
