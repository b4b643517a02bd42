package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"gopkg.in/ini.v1"
)

const name = "panrule"

// LoadConfig reads connection defaults from the first usable config file in
// configFiles. No file at all is fine; every setting can also be given on the
// command line.
func LoadConfig(configFiles []string) Settings {
	var validConfigFile string

	for _, configFile := range configFiles {
		fileInfo, statErr := os.Stat(configFile)
		if statErr != nil {
			if os.IsNotExist(statErr) {
				continue
			}
			log.Error().Err(statErr).Msgf("Error accessing config file %s.", configFile)
			continue
		}

		if fileInfo.Size() == 0 {
			log.Debug().Msgf("Config file %s is empty, skipping...", configFile)
			continue
		}

		log.Debug().Msgf("Using config file %s.", configFile)
		validConfigFile = configFile
		break
	}

	if validConfigFile == "" {
		log.Debug().Msg("No config file found, relying on command line flags.")
		return Settings{Username: "admin"}
	}

	iniData, err := ini.Load(validConfigFile)
	if err != nil {
		log.Fatal().Err(err).Msgf("failed to load config file %s.", validConfigFile)
	}

	var config Config
	err = iniData.MapTo(&config)
	if err != nil {
		log.Fatal().Err(err).Msgf("failed to parse config file %s.", validConfigFile)
	}

	settings := Settings{
		Address:     config.Device.Address,
		Username:    config.Device.Username,
		Password:    config.Device.Password,
		APIKey:      config.Device.APIKey,
		DeviceGroup: config.Device.DeviceGroup,
		Debug:       config.Logging.Debug,
	}

	if settings.Username == "" {
		settings.Username = "admin"
	}

	return settings
}

// Files lists the config file locations, in lookup order.
func Files() []string {
	return []string{
		fmt.Sprintf("/etc/%s/%s.conf", name, name),
		filepath.Join(os.Getenv("HOME"), fmt.Sprintf(".%s.conf", name)),
	}
}
