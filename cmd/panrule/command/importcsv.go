package command

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/techiewarrior/panrule/pkg/policy"
)

var csvFile string

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Create security rules from a CSV file",
	Long: `Create every security rule defined in a CSV file. The format of the file
must follow this layout:

  name,action,from,to,source,destination,application,service,description (optional),tag (optional)

Fields that hold multiple members must separate each member with a comma and
a space, and be enclosed in quotes. Rules are appended in file order.`,
	RunE: runImport,
}

func init() {
	importCmd.Flags().StringVar(&csvFile, "file", "", "CSV file with the rules to create (required)")
	_ = importCmd.MarkFlagRequired("file")
}

func runImport(cmd *cobra.Command, args []string) error {
	rules, err := policy.RulesFromCsv(csvFile)
	if err != nil {
		return err
	}

	session, err := connect(resolved)
	if err != nil {
		return err
	}

	rulebase, err := locate(session, resolved)
	if err != nil {
		return err
	}

	for _, rule := range rules {
		result, err := rulebase.Add(rule)
		if err != nil {
			return err
		}

		log.Info().Msg(result.Msg)
	}

	if err := commitIfRequested(session, resolved); err != nil {
		return err
	}

	log.Info().Msgf("Imported %d rules from %s", len(rules), csvFile)

	return nil
}
