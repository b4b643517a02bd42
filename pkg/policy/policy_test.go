package policy

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/techiewarrior/panrule/pkg/panos"
)

// fakeDevice emulates the PAN-OS XML API endpoints the policy layer talks to.
type fakeDevice struct {
	model  string
	family string
	groups []string
	rules  []string

	lastSetXpath   string
	lastSetElement string
	deletedXpaths  []string
	failCode       string
}

func (f *fakeDevice) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		q := req.URL.Query()

		switch {
		case q.Get("type") == "keygen":
			fmt.Fprint(w, `<response status="success"><result><key>secret</key></result></response>`)
		case q.Get("type") == "op" && strings.Contains(q.Get("cmd"), "panorama-status"):
			fmt.Fprint(w, `<response status="success"><result>Panorama Server 1 : not connected</result></response>`)
		case q.Get("type") == "op" && strings.Contains(q.Get("cmd"), "system"):
			fmt.Fprintf(w, `<response status="success"><result><system><platform-family>%s</platform-family><model>%s</model><serial>007051000012345</serial><sw-version>9.1.3</sw-version></system></result></response>`, f.family, f.model)
		case q.Get("type") == "config" && q.Get("action") == "get" && strings.Contains(q.Get("xpath"), "device-group") && !strings.Contains(q.Get("xpath"), "rulebase"):
			entries := ""
			for _, group := range f.groups {
				entries += fmt.Sprintf(`<entry name="%s"><devices><entry name="007051000054321"/></devices></entry>`, group)
			}
			fmt.Fprintf(w, `<response status="success" code="19"><result><device-group>%s</device-group></result></response>`, entries)
		case q.Get("type") == "config" && q.Get("action") == "get":
			fmt.Fprintf(w, `<response status="success" code="19"><result><rules>%s</rules></result></response>`, strings.Join(f.rules, ""))
		case q.Get("type") == "config" && q.Get("action") == "set":
			if f.failCode != "" {
				fmt.Fprintf(w, `<response status="error" code="%s"/>`, f.failCode)
				return
			}
			f.lastSetXpath = q.Get("xpath")
			f.lastSetElement = q.Get("element")
			fmt.Fprint(w, `<response status="success" code="20"/>`)
		case q.Get("type") == "config" && q.Get("action") == "delete":
			if f.failCode != "" {
				fmt.Fprintf(w, `<response status="error" code="%s"/>`, f.failCode)
				return
			}
			f.deletedXpaths = append(f.deletedXpaths, q.Get("xpath"))
			fmt.Fprint(w, `<response status="success" code="20"/>`)
		default:
			fmt.Fprint(w, `<response status="error" code="17"/>`)
		}
	}
}

// connect starts the fake device and opens a session against it.
func (f *fakeDevice) connect(t *testing.T) *panos.PaloAlto {
	t.Helper()

	srv := httptest.NewTLSServer(f.handler())
	t.Cleanup(srv.Close)

	host := strings.TrimPrefix(srv.URL, "https://")
	session, err := panos.NewSession(host, &panos.AuthMethod{APIKey: "secret"})
	require.NoError(t, err)

	return session
}

func firewallRule(name string) string {
	return fmt.Sprintf(`<entry name="%s"><from><member>public</member></from><to><member>private</member></to><source><member>any</member></source><source-user><member>any</member></source-user><destination><member>1.1.1.1</member></destination><category><member>any</member></category><application><member>ssh</member></application><service><member>application-default</member></service><hip-profiles><member>any</member></hip-profiles><action>allow</action><log-start>no</log-start><log-end>yes</log-end></entry>`, name)
}
