package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/t59688/novel-kit/internal/profiles"
	"github.com/t59688/novel-kit/internal/ui"
)

var envsCmd = &cobra.Command{
	Use:   "envs",
	Short: "List supported AI environments",
	Long: `Lists every AI environment packages can be built for, with the folder
and command format each one uses.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := profiles.Default()
		if err != nil {
			return handleError(ErrInternal, err, "")
		}
		list := reg.Profiles()

		if isJSONOutput() {
			type envReport struct {
				ID          string `json:"id"`
				Name        string `json:"name"`
				Description string `json:"description,omitempty"`
				Folder      string `json:"folder"`
				Format      string `json:"format"`
				ArgToken    string `json:"arg_token"`
				AliasOf     string `json:"alias_of,omitempty"`
			}
			out := make([]envReport, 0, len(list))
			for _, p := range list {
				out = append(out, envReport{
					ID:          p.ID,
					Name:        p.Name,
					Description: p.Description,
					Folder:      p.Folder,
					Format:      string(p.Format),
					ArgToken:    p.ArgToken,
					AliasOf:     p.Alias,
				})
			}
			outputSuccess(out, &Meta{Count: len(out)})
			return nil
		}

		fmt.Println(ui.Header("Supported AI environments"))
		fmt.Println()
		for _, p := range list {
			alias := ""
			if p.Alias != "" {
				alias = " " + ui.Hint(fmt.Sprintf("(alias of %s)", p.Alias))
			}
			fmt.Printf("  %s %-26s %-18s %-15s %s%s\n",
				ui.Accent.Render(fmt.Sprintf("%-14s", p.ID)),
				p.Name, p.Folder, string(p.Format), p.ArgToken, alias)
		}
		fmt.Println()
		fmt.Println(ui.Hint(fmt.Sprintf("%d environments. Build one with 'novelkit build <id> <platform>'.", len(list))))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(envsCmd)
}
