package config

const (
	defaultConfigPath     = "~/.config/bilrost/config.toml"
	defaultStateDir       = "~/.local/share/bilrost"
	defaultServiceLogPath = "~/.local/share/bilrost/service.log"
	defaultServiceHost    = "127.0.0.1"
	defaultServicePort    = 9224
	defaultServiceCommand = "bilrost-server"
	defaultStartTimeout   = 20
	defaultPollIntervalMS = 200
	defaultRequestTimeout = 30
	defaultLogFormat      = "console"
	defaultLogLevel       = "info"
	maxPollIntervalMS     = 10000
	envServiceCommand     = "BILROST_SERVICE_COMMAND"
	envServicePort        = "BILROST_PORT"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Service: Service{
			Host:           defaultServiceHost,
			Port:           defaultServicePort,
			Command:        defaultServiceCommand,
			StartTimeout:   defaultStartTimeout,
			PollIntervalMS: defaultPollIntervalMS,
			LogPath:        defaultServiceLogPath,
		},
		Paths: Paths{
			StateDir: defaultStateDir,
		},
		Backend: Backend{
			RequestTimeout: defaultRequestTimeout,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
