package config

// Settings holds the connection defaults resolved from the config files.
// Values given on the command line take precedence over all of these.
type Settings struct {
	Address     string
	Username    string
	Password    string
	APIKey      string
	DeviceGroup string
	Debug       bool
}

// Config maps the on-disk ini layout.
type Config struct {
	Device struct {
		Address     string `ini:"address"`
		Username    string `ini:"username"`
		Password    string `ini:"password"`
		APIKey      string `ini:"api_key"`
		DeviceGroup string `ini:"devicegroup"`
	} `ini:"device"`
	Logging struct {
		Debug bool `ini:"debug"`
	} `ini:"logging"`
}
