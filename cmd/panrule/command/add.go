package command

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/techiewarrior/panrule/pkg/policy"
)

var (
	ruleName    string
	description string
	tag         string
	ruleType    string
	ruleAction  string
	fromZone    []string
	toZone      []string
	source      []string
	sourceUser  []string
	destination []string
	category    []string
	application []string
	service     []string
	hipProfiles []string
	logStart    bool
	logEnd      bool

	groupProfile     string
	antivirus        string
	vulnerability    string
	spyware          string
	urlFiltering     string
	fileBlocking     string
	dataFiltering    string
	wildfireAnalysis string
)

// ruleParams is the declared rule surface checked before any remote call.
type ruleParams struct {
	RuleName string `validate:"required"`
	Type     string `validate:"oneof=universal intrazone interzone"`
	Action   string `validate:"oneof=allow deny drop reset-client reset-server reset-both"`
}

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Create a security rule",
	Long: `Create a security rule on the device. The rule is appended to the rulebase;
existing rules are never reordered. There is no check for an existing rule
with the same name first - the device decides whether a same-named create is
rejected or merged.`,
	RunE: runAdd,
}

func init() {
	addCmd.Flags().StringVar(&ruleName, "rule-name", "", "name of the security rule (required)")
	addCmd.Flags().StringVar(&description, "description", "", "description for the security rule")
	addCmd.Flags().StringVar(&tag, "tag", "", "administrative tag for the rule; the tag must already be defined")
	addCmd.Flags().StringVar(&ruleType, "rule-type", "universal", "type of security rule: universal, intrazone or interzone")
	addCmd.Flags().StringVar(&ruleAction, "action", "allow", "action to apply once the rule matches")
	addCmd.Flags().StringSliceVar(&fromZone, "from-zone", []string{"any"}, "source zones")
	addCmd.Flags().StringSliceVar(&toZone, "to-zone", []string{"any"}, "destination zones")
	addCmd.Flags().StringSliceVar(&source, "source", []string{"any"}, "source addresses")
	addCmd.Flags().StringSliceVar(&sourceUser, "source-user", []string{"any"}, "users or groups of users to enforce the policy for")
	addCmd.Flags().StringSliceVar(&destination, "destination", []string{"any"}, "destination addresses")
	addCmd.Flags().StringSliceVar(&category, "category", []string{"any"}, "URL categories")
	addCmd.Flags().StringSliceVar(&application, "application", []string{"any"}, "applications")
	addCmd.Flags().StringSliceVar(&service, "service", []string{"application-default"}, "services")
	addCmd.Flags().StringSliceVar(&hipProfiles, "hip-profiles", []string{"any"}, "GlobalProtect host information profiles")
	addCmd.Flags().BoolVar(&logStart, "log-start", false, "log at session start")
	addCmd.Flags().BoolVar(&logEnd, "log-end", true, "log at session end")

	addCmd.Flags().StringVar(&groupProfile, "group-profile", "", "security profile group; supersedes all individual profile flags")
	addCmd.Flags().StringVar(&antivirus, "antivirus", "", "name of the already defined antivirus profile")
	addCmd.Flags().StringVar(&vulnerability, "vulnerability", "", "name of the already defined vulnerability profile")
	addCmd.Flags().StringVar(&spyware, "spyware", "", "name of the already defined spyware profile")
	addCmd.Flags().StringVar(&urlFiltering, "url-filtering", "", "name of the already defined url-filtering profile")
	addCmd.Flags().StringVar(&fileBlocking, "file-blocking", "", "name of the already defined file-blocking profile")
	addCmd.Flags().StringVar(&dataFiltering, "data-filtering", "", "name of the already defined data-filtering profile")
	addCmd.Flags().StringVar(&wildfireAnalysis, "wildfire-analysis", "", "name of the already defined wildfire-analysis profile")

	_ = addCmd.MarkFlagRequired("rule-name")
}

// ruleOptions maps the declared flags into the builder input. The profile
// group supersedes the individual profile flags when both are given.
func ruleOptions() policy.RuleOptions {
	return policy.RuleOptions{
		Name:        ruleName,
		Description: description,
		Type:        ruleType,
		Action:      ruleAction,
		From:        fromZone,
		To:          toZone,
		Source:      source,
		SourceUser:  sourceUser,
		Destination: destination,
		Category:    category,
		Application: application,
		Service:     service,
		HIPProfiles: hipProfiles,
		LogStart:    logStart,
		LogEnd:      logEnd,
		Tag:         tag,
		Profiles: policy.SelectProfiles(groupProfile, policy.IndividualProfiles{
			AntiVirus:        antivirus,
			Vulnerability:    vulnerability,
			Spyware:          spyware,
			URLFiltering:     urlFiltering,
			FileBlocking:     fileBlocking,
			DataFiltering:    dataFiltering,
			WildfireAnalysis: wildfireAnalysis,
		}),
	}
}

func runAdd(cmd *cobra.Command, args []string) error {
	params := ruleParams{RuleName: ruleName, Type: ruleType, Action: ruleAction}
	if err := validate.Struct(params); err != nil {
		return fmt.Errorf("invalid rule parameters: %w", err)
	}

	session, err := connect(resolved)
	if err != nil {
		return err
	}

	rulebase, err := locate(session, resolved)
	if err != nil {
		return err
	}

	result, err := rulebase.Add(policy.NewRule(ruleOptions()))
	if err != nil {
		return err
	}

	if err := commitIfRequested(session, resolved); err != nil {
		return err
	}

	log.Info().Msg(result.Msg)

	return nil
}
