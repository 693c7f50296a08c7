package commands

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"studyreport/lib/scrapers/ixl"
)

func init() {
	rootCmd.AddCommand(skillsCmd)
}

var skillsCmd = &cobra.Command{
	Use:   "skills <subject-url>",
	Short: "Fetch and print the public IXL skill tree for a subject page.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		skills, err := ixl.FetchSkillTree(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		t := table.NewWriter()
		t.SetStyle(table.StyleLight)
		t.AppendHeader(table.Row{"Grade", "#", "Skill", "Permacode"})
		for _, skill := range skills {
			t.AppendRow(table.Row{skill.Grade, skill.Number, skill.Name, skill.Permacode})
		}
		fmt.Println(t.Render())
		return nil
	},
}
