package command

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var findCmd = &cobra.Command{
	Use:   "find",
	Short: "Look up a security rule by name",
	Long: `Look up the security rule with the given name and print it in a hierarchical
text form. A rule name that does not exist in the rulebase is a failure, not
an empty result.`,
	RunE: runFind,
}

func init() {
	findCmd.Flags().StringVar(&ruleName, "rule-name", "", "name of the security rule (required)")
	_ = findCmd.MarkFlagRequired("rule-name")
}

func runFind(cmd *cobra.Command, args []string) error {
	session, err := connect(resolved)
	if err != nil {
		return err
	}

	rulebase, err := locate(session, resolved)
	if err != nil {
		return err
	}

	rule, err := rulebase.Find(ruleName)
	if err != nil {
		return err
	}

	dump, err := rule.Dump()
	if err != nil {
		return err
	}

	fmt.Println(dump)
	log.Info().Msg("Rule matched")

	return nil
}
