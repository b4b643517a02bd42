// Package policy builds PAN-OS security rule definitions and converges a
// firewall or Panorama device-group rulebase to the declared state.
package policy

import (
	"encoding/xml"
)

// Rule contains information about each individual security rule. It marshals
// to the <entry> element the XML API expects under the security rules node of
// a rulebase.
type Rule struct {
	XMLName        xml.Name        `xml:"entry"`
	Name           string          `xml:"name,attr"`
	From           []string        `xml:"from>member"`
	To             []string        `xml:"to>member"`
	Source         []string        `xml:"source>member"`
	SourceUser     []string        `xml:"source-user>member"`
	Destination    []string        `xml:"destination>member"`
	Category       []string        `xml:"category>member"`
	Application    []string        `xml:"application>member"`
	Service        []string        `xml:"service>member"`
	HIPProfiles    []string        `xml:"hip-profiles>member"`
	Action         string          `xml:"action"`
	Type           string          `xml:"rule-type,omitempty"`
	Description    string          `xml:"description,omitempty"`
	LogStart       string          `xml:"log-start"`
	LogEnd         string          `xml:"log-end"`
	Tag            []string        `xml:"tag>member,omitempty"`
	ProfileSetting *profileSetting `xml:"profile-setting,omitempty"`
}

// profileSetting is the profile-setting node of a security rule. Only one of
// Group or Profiles is ever populated.
type profileSetting struct {
	Group    []string            `xml:"group>member,omitempty"`
	Profiles *individualProfiles `xml:"profiles,omitempty"`
}

// individualProfiles lists the per-threat profiles attached to a rule.
type individualProfiles struct {
	Virus            []string `xml:"virus>member,omitempty"`
	Vulnerability    []string `xml:"vulnerability>member,omitempty"`
	Spyware          []string `xml:"spyware>member,omitempty"`
	URLFiltering     []string `xml:"url-filtering>member,omitempty"`
	FileBlocking     []string `xml:"file-blocking>member,omitempty"`
	DataFiltering    []string `xml:"data-filtering>member,omitempty"`
	WildfireAnalysis []string `xml:"wildfire-analysis>member,omitempty"`
}

// ProfileSelection is the security profile attachment of a rule: either a
// pre-defined profile group, or a set of individual profiles. The two are
// mutually exclusive by construction.
type ProfileSelection interface {
	setting() *profileSetting
}

// ProfileGroup names a security profile group that is already defined on the
// device.
type ProfileGroup string

func (g ProfileGroup) setting() *profileSetting {
	return &profileSetting{Group: []string{string(g)}}
}

// IndividualProfiles names the already defined security profiles to attach to
// a rule, one per threat type. Empty fields are left off the rule entirely.
type IndividualProfiles struct {
	AntiVirus        string
	Vulnerability    string
	Spyware          string
	URLFiltering     string
	FileBlocking     string
	DataFiltering    string
	WildfireAnalysis string
}

func (i IndividualProfiles) setting() *profileSetting {
	profiles := &individualProfiles{}

	if i.AntiVirus != "" {
		profiles.Virus = []string{i.AntiVirus}
	}

	if i.Vulnerability != "" {
		profiles.Vulnerability = []string{i.Vulnerability}
	}

	if i.Spyware != "" {
		profiles.Spyware = []string{i.Spyware}
	}

	if i.URLFiltering != "" {
		profiles.URLFiltering = []string{i.URLFiltering}
	}

	if i.FileBlocking != "" {
		profiles.FileBlocking = []string{i.FileBlocking}
	}

	if i.DataFiltering != "" {
		profiles.DataFiltering = []string{i.DataFiltering}
	}

	if i.WildfireAnalysis != "" {
		profiles.WildfireAnalysis = []string{i.WildfireAnalysis}
	}

	return &profileSetting{Profiles: profiles}
}

// SelectProfiles picks the security profile attachment for a rule. A profile
// group supersedes every individual profile, no matter which of them are also
// given. When neither a group nor any individual profile is supplied, there is
// no attachment at all.
func SelectProfiles(group string, individual IndividualProfiles) ProfileSelection {
	if group != "" {
		return ProfileGroup(group)
	}

	if individual == (IndividualProfiles{}) {
		return nil
	}

	return individual
}

// RuleOptions contains every field of a security rule that can be declared.
// The zone, address, user, category, application, service and HIP lists are
// taken as-is; names are not checked for existence locally, the device will
// reject unknown references.
type RuleOptions struct {
	Name        string
	Description string
	Type        string
	Action      string
	From        []string
	To          []string
	Source      []string
	SourceUser  []string
	Destination []string
	Category    []string
	Application []string
	Service     []string
	HIPProfiles []string
	LogStart    bool
	LogEnd      bool
	Tag         string
	Profiles    ProfileSelection
}

// NewRule builds a security rule definition from the given options. The tag
// and profile selection are only attached when supplied.
func NewRule(opts RuleOptions) *Rule {
	rule := &Rule{
		Name:        opts.Name,
		Description: opts.Description,
		Type:        opts.Type,
		Action:      opts.Action,
		From:        opts.From,
		To:          opts.To,
		Source:      opts.Source,
		SourceUser:  opts.SourceUser,
		Destination: opts.Destination,
		Category:    opts.Category,
		Application: opts.Application,
		Service:     opts.Service,
		HIPProfiles: opts.HIPProfiles,
		LogStart:    yesno(opts.LogStart),
		LogEnd:      yesno(opts.LogEnd),
	}

	if opts.Tag != "" {
		rule.Tag = []string{opts.Tag}
	}

	if opts.Profiles != nil {
		rule.ProfileSetting = opts.Profiles.setting()
	}

	return rule
}

// Element renders the rule as the XML element used when creating it on the
// device.
func (rule *Rule) Element() (string, error) {
	out, err := xml.Marshal(rule)
	if err != nil {
		return "", err
	}

	return string(out), nil
}

// Dump renders the rule as an indented, hierarchical text form for display.
func (rule *Rule) Dump() (string, error) {
	out, err := xml.MarshalIndent(rule, "", "  ")
	if err != nil {
		return "", err
	}

	return string(out), nil
}

// yesno converts a boolean to the yes/no form PAN-OS uses on the wire.
func yesno(b bool) string {
	if b {
		return "yes"
	}

	return "no"
}
