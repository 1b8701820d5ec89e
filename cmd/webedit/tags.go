package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Krazal/WebEdit/internal/config"
	"github.com/Krazal/WebEdit/internal/dispatcher/handler"
	"github.com/Krazal/WebEdit/internal/dispatcher/handlers/command"
	"github.com/Krazal/WebEdit/internal/tags"
)

var tagsCommands bool

func init() {
	tagsCmd.Flags().BoolVar(&tagsCommands, "commands", false, "list [Commands] instead of [Tags]")
}

var keyColor = color.New(color.FgGreen)

var tagsCmd = &cobra.Command{
	Use:   "tags",
	Short: "List the tags defined in WebEdit.ini",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd, nil, false)
		if err != nil {
			return err
		}
		defer a.Close()
		out := cmd.OutOrStdout()

		if tagsCommands {
			res := a.Dispatch(handler.NewAction(command.ActionList), nil)
			if res.IsError() {
				return res.Error
			}
			v, _ := res.GetData(command.DataCommands)
			cmds, _ := v.([]tags.Command)
			for _, c := range cmds {
				fmt.Fprintf(out, "%2d  %s  %s\n", c.Index, keyColor.Sprint(c.Name), c.Template)
			}
			return nil
		}

		for _, e := range a.Store().Entries(config.SectionTags) {
			fmt.Fprintf(out, "%s=%s\n", keyColor.Sprint(e.Key), e.Value)
		}
		return nil
	},
}
