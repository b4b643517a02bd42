package policy

import (
	"encoding/xml"
	"fmt"

	"github.com/techiewarrior/panrule/pkg/panos"
)

// Target locates the security rulebase a rule operation applies to. There are
// two variants: StandaloneTarget for a firewall with a flat rulebase, and
// PanoramaTarget for a device-group's pre-rulebase on a Panorama device.
type Target interface {
	Locate(p *panos.PaloAlto) (*Rulebase, error)
}

// ResolveTarget picks the target variant for the connected device. The
// devicegroup parameter only matters when the session is against a Panorama
// device; a standalone firewall has a single rulebase and the parameter is
// ignored.
func ResolveTarget(p *panos.PaloAlto, devicegroup string) Target {
	if p.DeviceType == "panorama" {
		return PanoramaTarget{DeviceGroup: devicegroup}
	}

	return StandaloneTarget{}
}

// StandaloneTarget locates the flat rulebase of a single firewall.
type StandaloneTarget struct{}

// Locate returns the firewall's security rulebase with its current rules
// loaded.
func (StandaloneTarget) Locate(p *panos.PaloAlto) (*Rulebase, error) {
	rb := &Rulebase{
		session: p,
		xpath:   "/config/devices/entry[@name='localhost.localdomain']/vsys/entry[@name='vsys1']/rulebase/security/rules",
	}

	if err := rb.refresh(); err != nil {
		return nil, err
	}

	return rb, nil
}

// PanoramaTarget locates the pre-rulebase of a device-group on a Panorama
// device. The device-group must already exist.
type PanoramaTarget struct {
	DeviceGroup string
}

// Locate confirms the device-group exists among the groups currently known to
// Panorama and returns its pre-rulebase with its current rules loaded.
func (t PanoramaTarget) Locate(p *panos.PaloAlto) (*Rulebase, error) {
	groups, err := p.DeviceGroups()
	if err != nil {
		return nil, err
	}

	found := false
	for _, group := range groups.Groups {
		if group.Name == t.DeviceGroup {
			found = true
			break
		}
	}

	if !found {
		return nil, &DeviceGroupNotFoundError{Group: t.DeviceGroup}
	}

	rb := &Rulebase{
		session: p,
		xpath:   fmt.Sprintf("/config/devices/entry[@name='localhost.localdomain']/device-group/entry[@name='%s']/pre-rulebase/security/rules", t.DeviceGroup),
	}

	if err := rb.refresh(); err != nil {
		return nil, err
	}

	return rb, nil
}

// Rulebase is an ordered list of security rules at a single location on the
// device, along with the session used to change them. Rules holds the state
// that was on the device when the rulebase was located; Find and Delete match
// against it.
type Rulebase struct {
	session *panos.PaloAlto
	xpath   string
	Rules   []Rule
}

// securityRules parses the rules returned when reading a rulebase.
type securityRules struct {
	XMLName xml.Name `xml:"response"`
	Status  string   `xml:"status,attr"`
	Code    string   `xml:"code,attr"`
	Rules   []Rule   `xml:"result>rules>entry"`
}

// refresh loads the current rules from the device into the rulebase.
func (rb *Rulebase) refresh() error {
	var rules securityRules

	resp, err := rb.session.GetConfig(rb.xpath)
	if err != nil {
		return err
	}

	if err := xml.Unmarshal([]byte(resp), &rules); err != nil {
		return err
	}

	rb.Rules = rules.Rules

	return nil
}

// entryXpath returns the xpath of a single named rule within the rulebase.
func (rb *Rulebase) entryXpath(name string) string {
	return fmt.Sprintf("%s/entry[@name='%s']", rb.xpath, name)
}
