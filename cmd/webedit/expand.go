package main

import (
	"github.com/spf13/cobra"

	"github.com/Krazal/WebEdit/internal/dispatcher/handlers/tag"
	"github.com/Krazal/WebEdit/internal/dispatcher/handler"
)

var (
	expandAt     []int
	expandSelect []string
	expandWrite  bool
)

func init() {
	expandCmd.Flags().IntSliceVar(&expandAt, "at", nil, "caret byte offset (repeatable)")
	expandCmd.Flags().StringSliceVar(&expandSelect, "select", nil, "selection START:END in bytes (repeatable)")
	expandCmd.Flags().BoolVarP(&expandWrite, "write", "w", false, "write the result back to FILE")
}

var expandCmd = &cobra.Command{
	Use:   "expand FILE",
	Short: "Replace the tags at the given carets or selections",
	Long: `expand runs Replace Tag on FILE. With several positions every selection
is expanded independently and unknown tags are skipped. With a single
position an unknown tag prints the suggestion list on stderr instead.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ranges, err := selections(expandAt, expandSelect)
		if err != nil {
			return err
		}
		s, err := openSession(cmd, args[0], ranges, cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		res := s.dispatch(handler.NewAction(tag.ActionReplace))
		if res.IsError() {
			_ = s.close()
			return res.Error
		}
		return s.finish(cmd.OutOrStdout(), outputFor(expandWrite))
	},
}
