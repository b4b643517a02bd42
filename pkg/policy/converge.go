package policy

import "fmt"

// Result reports the outcome of a Delete or Add operation.
type Result struct {
	Changed bool
	Msg     string
}

// Find returns the security rule with the given name from the rules that were
// on the device when the rulebase was located. The rule name is the identity
// key: the first match wins. A missing rule is a failure, not an empty
// result.
func (rb *Rulebase) Find(name string) (*Rule, error) {
	for i := range rb.Rules {
		if rb.Rules[i].Name == name {
			return &rb.Rules[i], nil
		}
	}

	return nil, &RuleNotFoundError{Name: name}
}

// Delete removes the security rule with the given name from the device. A
// missing rule is a failure, matching Find. Errors from the device are passed
// through as-is.
func (rb *Rulebase) Delete(name string) (*Result, error) {
	if _, err := rb.Find(name); err != nil {
		return nil, err
	}

	if err := rb.session.DeleteConfig(rb.entryXpath(name)); err != nil {
		return nil, err
	}

	kept := rb.Rules[:0]
	for _, rule := range rb.Rules {
		if rule.Name != name {
			kept = append(kept, rule)
		}
	}
	rb.Rules = kept

	return &Result{
		Changed: true,
		Msg:     fmt.Sprintf("Rule '%s' successfully deleted", name),
	}, nil
}

// Add attaches the rule to the rulebase and creates it on the device. There
// is no lookup for an existing rule with the same name first: the device
// decides what a same-named create means, and a successful call always
// reports a change. Errors from the device are passed through as-is.
func (rb *Rulebase) Add(rule *Rule) (*Result, error) {
	element, err := rule.Element()
	if err != nil {
		return nil, err
	}

	rb.Rules = append(rb.Rules, *rule)

	if err := rb.session.SetConfig(rb.xpath, element); err != nil {
		return nil, err
	}

	return &Result{
		Changed: true,
		Msg:     fmt.Sprintf("Rule '%s' successfully added", rule.Name),
	}, nil
}
