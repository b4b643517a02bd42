package command

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"gopkg.in/go-playground/validator.v9"

	"github.com/techiewarrior/panrule/pkg/config"
	"github.com/techiewarrior/panrule/pkg/logger"
	"github.com/techiewarrior/panrule/pkg/panos"
	"github.com/techiewarrior/panrule/pkg/policy"
)

var (
	cfgFile     string
	address     string
	username    string
	password    string
	apiKey      string
	devicegroup string
	commit      bool
	debug       bool

	validate = validator.New()

	// resolved holds the merged config file and flag settings for the
	// running command.
	resolved config.Settings
)

// connParams is the connection surface every operation needs, checked before
// any remote call is made.
type connParams struct {
	Address  string `validate:"required"`
	Username string `validate:"required"`
	Password string
	APIKey   string
}

// RootCmd is the top level panrule command.
var RootCmd = &cobra.Command{
	Use:   "panrule",
	Short: "Manage security rules on PAN-OS devices and Panorama",
	Long: `panrule declares the desired state of a single security rule on a Palo Alto
firewall, or on a device-group of a Panorama management console, and converges
the device to it. Exactly one operation runs per invocation: add, delete or
find.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.InitLogger(debug)
		resolved = settings()
		if resolved.Debug {
			zerolog.SetGlobalLevel(zerolog.DebugLevel)
		}
	},
}

func init() {
	RootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default /etc/panrule/panrule.conf, then ~/.panrule.conf)")
	RootCmd.PersistentFlags().StringVar(&address, "address", "", "IP address (or hostname) of the PAN-OS device being configured")
	RootCmd.PersistentFlags().StringVar(&username, "username", "", "username to authenticate with unless --api-key is set (default admin)")
	RootCmd.PersistentFlags().StringVar(&password, "password", "", "password to authenticate with unless --api-key is set")
	RootCmd.PersistentFlags().StringVar(&apiKey, "api-key", "", "API key to use instead of username/password credentials")
	RootCmd.PersistentFlags().StringVar(&devicegroup, "devicegroup", "", "device-group to target; required when the device is a Panorama")
	RootCmd.PersistentFlags().BoolVar(&commit, "commit", false, "commit the candidate configuration after a successful change")
	RootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	RootCmd.AddCommand(addCmd, deleteCmd, findCmd, importCmd)
}

// settings merges the config file defaults with the command line flags. Flags
// win.
func settings() config.Settings {
	files := config.Files()
	if cfgFile != "" {
		files = []string{cfgFile}
	}

	s := config.LoadConfig(files)

	if address != "" {
		s.Address = address
	}

	if username != "" {
		s.Username = username
	}

	if password != "" {
		s.Password = password
	}

	if apiKey != "" {
		s.APIKey = apiKey
	}

	if devicegroup != "" {
		s.DeviceGroup = devicegroup
	}

	if debug {
		s.Debug = true
	}

	return s
}

// connect validates the connection parameters and opens a session to the
// device.
func connect(s config.Settings) (*panos.PaloAlto, error) {
	params := connParams{
		Address:  s.Address,
		Username: s.Username,
		Password: s.Password,
		APIKey:   s.APIKey,
	}

	if err := validate.Struct(params); err != nil {
		return nil, fmt.Errorf("invalid connection parameters: %w", err)
	}

	if params.Password == "" && params.APIKey == "" {
		return nil, errors.New("one of --password or --api-key is required")
	}

	auth := &panos.AuthMethod{APIKey: params.APIKey}
	if params.APIKey == "" {
		auth = &panos.AuthMethod{Credentials: []string{params.Username, params.Password}}
	}

	log.Debug().Msgf("Connecting to %s...", params.Address)

	return panos.NewSession(params.Address, auth)
}

// locate resolves the target rulebase for the session: the flat rulebase of a
// firewall, or the pre-rulebase of the named device-group on a Panorama.
func locate(session *panos.PaloAlto, s config.Settings) (*policy.Rulebase, error) {
	if session.DeviceType == "panorama" && s.DeviceGroup == "" {
		return nil, errors.New("you must specify a device-group when targeting a Panorama device")
	}

	return policy.ResolveTarget(session, s.DeviceGroup).Locate(session)
}

// commitIfRequested pushes the candidate configuration when --commit was
// given. On a Panorama device the commit is scoped to the targeted
// device-group.
func commitIfRequested(session *panos.PaloAlto, s config.Settings) error {
	if !commit {
		return nil
	}

	log.Info().Msg("Committing candidate configuration...")

	if session.DeviceType == "panorama" {
		return session.CommitAll(s.DeviceGroup)
	}

	return session.Commit()
}
