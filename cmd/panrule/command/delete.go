package command

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete a security rule",
	Long: `Delete the security rule with the given name from the device. A rule name
that does not exist in the rulebase is a failure, and no change is reported.`,
	RunE: runDelete,
}

func init() {
	deleteCmd.Flags().StringVar(&ruleName, "rule-name", "", "name of the security rule (required)")
	_ = deleteCmd.MarkFlagRequired("rule-name")
}

func runDelete(cmd *cobra.Command, args []string) error {
	session, err := connect(resolved)
	if err != nil {
		return err
	}

	rulebase, err := locate(session, resolved)
	if err != nil {
		return err
	}

	result, err := rulebase.Delete(ruleName)
	if err != nil {
		return err
	}

	if err := commitIfRequested(session, resolved); err != nil {
		return err
	}

	log.Info().Msg(result.Msg)

	return nil
}
