package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Krazal/WebEdit/internal/dispatcher/handler"
	"github.com/Krazal/WebEdit/internal/dispatcher/handlers/tag"
	"github.com/Krazal/WebEdit/internal/editor"
)

var (
	recommendAt    int
	recommendPick  string
	recommendWrite bool
)

func init() {
	recommendCmd.Flags().IntVar(&recommendAt, "at", -1, "caret byte offset")
	recommendCmd.Flags().StringVar(&recommendPick, "pick", "", "entry to choose from the list")
	recommendCmd.Flags().BoolVarP(&recommendWrite, "write", "w", false, "write the result back to FILE")
	_ = recommendCmd.MarkFlagRequired("at")
}

var recommendCmd = &cobra.Command{
	Use:   "recommend FILE",
	Short: "List tags similar to the one at the caret",
	Long: `recommend prints the suggestion list for the tag at --at. With --pick the
entry is chosen as a user would: a tag name is inserted and expanded, and
the [Find]/[Add] entry opens WebEdit.ini at that tag and saves it.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if recommendAt < 0 {
			return fmt.Errorf("offset %d: must not be negative", recommendAt)
		}
		pos := editor.ByteOffset(recommendAt)
		s, err := openSession(cmd, args[0], []editor.Range{{Start: pos, End: pos}}, cmd.OutOrStdout())
		if err != nil {
			return err
		}

		res := s.dispatch(handler.NewAction(tag.ActionRecommend))
		if res.IsError() {
			_ = s.close()
			return res.Error
		}
		if res.Status != handler.StatusPending || recommendPick == "" {
			return s.close()
		}

		res = s.dispatch(handler.NewAction(tag.ActionSuggestionSelected).WithArg(tag.ArgText, recommendPick))
		switch res.Status {
		case handler.StatusOK:
			// The host inserts the chosen entry, then reports completion.
			s.doc.ReplaceSelection(recommendPick)
			res = s.dispatch(handler.NewAction(tag.ActionSuggestionCompleted))
			if res.IsError() {
				_ = s.close()
				return res.Error
			}
			return s.finish(cmd.OutOrStdout(), outputFor(recommendWrite))
		case handler.StatusCancelled:
			// Only the tags file changed.
			return s.finish(cmd.OutOrStdout(), outputNone)
		case handler.StatusError:
			_ = s.close()
			return res.Error
		default:
			_ = s.close()
			return fmt.Errorf("%q is not in the suggestion list", recommendPick)
		}
	},
}
