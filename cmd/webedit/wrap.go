package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Krazal/WebEdit/internal/dispatcher/handler"
	"github.com/Krazal/WebEdit/internal/dispatcher/handlers/command"
)

var (
	wrapCommand string
	wrapSelect  string
	wrapWrite   bool
)

func init() {
	wrapCmd.Flags().StringVarP(&wrapCommand, "command", "c", "", "[Commands] entry name or ordinal")
	wrapCmd.Flags().StringVar(&wrapSelect, "select", "", "selection START:END in bytes")
	wrapCmd.Flags().BoolVarP(&wrapWrite, "write", "w", false, "write the result back to FILE")
	_ = wrapCmd.MarkFlagRequired("command")
	_ = wrapCmd.MarkFlagRequired("select")
}

var wrapCmd = &cobra.Command{
	Use:   "wrap FILE",
	Short: "Wrap a selection with a [Commands] entry",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := parseRange(wrapSelect)
		if err != nil {
			return err
		}
		s, err := openSession(cmd, args[0], nil, cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		s.doc.SetSelection(r.Start, r.End)

		res := s.dispatch(handler.NewAction(command.ActionName(wrapCommand)))
		switch res.Status {
		case handler.StatusOK:
			return s.finish(cmd.OutOrStdout(), outputFor(wrapWrite))
		case handler.StatusError:
			_ = s.close()
			return res.Error
		default:
			_ = s.close()
			return fmt.Errorf("command %q %s: %s", wrapCommand, res.Status, res.Message)
		}
	},
}
