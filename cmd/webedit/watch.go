package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Reload WebEdit.ini on every change until interrupted",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		h := newHost(cmd.OutOrStdout(), cmd.ErrOrStderr(), cmd.InOrStdin(), flagYes)
		a, err := openApp(cmd, h, true)
		if err != nil {
			return err
		}
		defer a.Close()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		noticeColor.Fprintf(cmd.ErrOrStderr(), "watching %s\n", a.Store().Path())
		return a.Run(ctx)
	},
}
