package policy

import (
	"fmt"
	"strings"

	easycsv "github.com/scottdware/go-easycsv"
)

// RulesFromCsv takes a CSV file and builds the security rules defined within.
// The format of the CSV file must follow this layout:
//
// name,action,from,to,source,destination,application,service,description (optional),tag (optional)
//
// Fields that hold multiple members, such as source or application, must
// separate each member with a comma and a space, and be enclosed in quotes,
// e.g. "web-browsing, ssl". Empty member fields default to "any"
// ("application-default" for the service field).
func RulesFromCsv(file string) ([]*Rule, error) {
	c, err := easycsv.Open(file)
	if err != nil {
		return nil, err
	}

	var rules []*Rule

	for n, line := range c {
		if len(line) < 8 {
			return nil, fmt.Errorf("line %d: a rule needs at least the name, action, zone, address, application and service fields", n+1)
		}

		name := line[0]
		action := line[1]

		if name == "" || action == "" {
			return nil, fmt.Errorf("line %d: the rule name and action fields cannot be empty", n+1)
		}

		opts := RuleOptions{
			Name:        name,
			Action:      action,
			Type:        "universal",
			From:        members(line[2], "any"),
			To:          members(line[3], "any"),
			Source:      members(line[4], "any"),
			SourceUser:  []string{"any"},
			Destination: members(line[5], "any"),
			Category:    []string{"any"},
			Application: members(line[6], "any"),
			Service:     members(line[7], "application-default"),
			HIPProfiles: []string{"any"},
			LogEnd:      true,
		}

		if len(line) > 8 && len(line[8]) > 0 {
			opts.Description = line[8]
		}

		if len(line) > 9 && len(line[9]) > 0 {
			opts.Tag = line[9]
		}

		rules = append(rules, NewRule(opts))
	}

	return rules, nil
}

// members splits a comma separated CSV field into its member names, falling
// back to the given default when the field is empty.
func members(field, def string) []string {
	if field == "" {
		return []string{def}
	}

	var list []string
	for _, member := range strings.Split(field, ", ") {
		list = append(list, strings.Trim(member, " "))
	}

	return list
}
