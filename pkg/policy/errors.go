package policy

import "fmt"

// RuleNotFoundError is returned when no security rule with the given name
// exists in the rulebase.
type RuleNotFoundError struct {
	Name string
}

func (e *RuleNotFoundError) Error() string {
	return fmt.Sprintf("rule '%s' not found. Is the name correct?", e.Name)
}

// DeviceGroupNotFoundError is returned when the named device-group does not
// exist on the Panorama device.
type DeviceGroupNotFoundError struct {
	Group string
}

func (e *DeviceGroupNotFoundError) Error() string {
	return fmt.Sprintf("'%s' device group not found in Panorama. Is the name correct?", e.Group)
}
