package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/techiewarrior/panrule/pkg/policy"
)

// Flag registration in init() leaves the bound variables holding their
// defaults, so the declared-parameter surface can be exercised without
// running a command.

func TestRuleOptionsDefaults(t *testing.T) {
	ruleName = "SSH permit"
	fromZone = []string{"public"}
	toZone = []string{"private"}
	destination = []string{"1.1.1.1"}
	application = []string{"ssh"}

	opts := ruleOptions()

	assert.Equal(t, "allow", opts.Action)
	assert.Equal(t, "universal", opts.Type)
	assert.Equal(t, []string{"application-default"}, opts.Service)
	assert.Equal(t, []string{"any"}, opts.Source)
	assert.Equal(t, []string{"any"}, opts.SourceUser)
	assert.Equal(t, []string{"any"}, opts.Category)
	assert.Equal(t, []string{"any"}, opts.HIPProfiles)
	assert.False(t, opts.LogStart)
	assert.True(t, opts.LogEnd)
	assert.Nil(t, opts.Profiles)

	rule := policy.NewRule(opts)
	assert.Equal(t, "SSH permit", rule.Name)
	assert.Equal(t, "allow", rule.Action)
	assert.Equal(t, []string{"public"}, rule.From)
	assert.Equal(t, []string{"private"}, rule.To)
	assert.Equal(t, []string{"1.1.1.1"}, rule.Destination)
	assert.Equal(t, []string{"ssh"}, rule.Application)
	assert.Equal(t, []string{"application-default"}, rule.Service)
}

func TestRuleOptionsGroupProfileSupersedes(t *testing.T) {
	groupProfile = "strict-group"
	antivirus = "default"
	spyware = "default"
	t.Cleanup(func() {
		groupProfile = ""
		antivirus = ""
		spyware = ""
	})

	opts := ruleOptions()

	require.NotNil(t, opts.Profiles)
	assert.IsType(t, policy.ProfileGroup(""), opts.Profiles)
}

func TestRuleParamsValidation(t *testing.T) {
	valid := ruleParams{RuleName: "SSH permit", Type: "universal", Action: "allow"}
	assert.NoError(t, validate.Struct(valid))

	missingName := ruleParams{Type: "universal", Action: "allow"}
	assert.Error(t, validate.Struct(missingName))

	badAction := ruleParams{RuleName: "SSH permit", Type: "universal", Action: "permit"}
	assert.Error(t, validate.Struct(badAction))

	badType := ruleParams{RuleName: "SSH permit", Type: "sideways", Action: "allow"}
	assert.Error(t, validate.Struct(badType))
}

func TestConnParamsValidation(t *testing.T) {
	valid := connParams{Address: "fw01.example.com", Username: "admin", Password: "paloalto"}
	assert.NoError(t, validate.Struct(valid))

	missingAddress := connParams{Username: "admin", Password: "paloalto"}
	assert.Error(t, validate.Struct(missingAddress))
}
