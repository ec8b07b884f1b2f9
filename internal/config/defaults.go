package config

const (
	defaultOutputDir          = "~/videos/filmstrip"
	defaultLogDir             = "~/.local/share/filmstrip/logs"
	defaultStateDir           = "~/.local/share/filmstrip"
	defaultWidth              = 1920
	defaultHeight             = 1080
	defaultFPS                = 30
	defaultPendingHighWater   = 20
	defaultPendingLowWater    = 10
	defaultSinkReadyRetries   = 5
	defaultSinkReadyBackoffMS = 100
	defaultVideoCodec         = "libx264"
	defaultMinFreeDiskGiB     = 1
	defaultLogFormat          = "console"
	defaultLogLevel           = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			OutputDir: defaultOutputDir,
			LogDir:    defaultLogDir,
			StateDir:  defaultStateDir,
		},
		Render: Render{
			Width:              defaultWidth,
			Height:             defaultHeight,
			FPS:                defaultFPS,
			PendingHighWater:   defaultPendingHighWater,
			PendingLowWater:    defaultPendingLowWater,
			SinkReadyRetries:   defaultSinkReadyRetries,
			SinkReadyBackoffMS: defaultSinkReadyBackoffMS,
			VideoCodec:         defaultVideoCodec,
			MinFreeDiskGiB:     defaultMinFreeDiskGiB,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
