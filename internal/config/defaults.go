package config

const (
	defaultConfigPath         = "~/.config/nssk/config.toml"
	projectConfigName         = "nssk.toml"
	legacyConfigName          = "config.yml"
	defaultSonarrTimeout      = 30
	defaultFutureDays         = 21
	defaultOutputDir          = "."
	defaultOverlayFile        = "NSSK_TV_OVERLAYS.yml"
	defaultCollectionFile     = "NSSK_TV_COLLECTION.yml"
	defaultCollectionName     = "New Season Soon"
	defaultSortTitle          = "+1_2New Season Soon"
	defaultNotifyTimeout      = 10
	defaultLogFormat          = "console"
	defaultLogLevel           = "info"
	defaultSkipUnmonitoredRaw = "false"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Sonarr: Sonarr{
			TimeoutSeconds: defaultSonarrTimeout,
		},
		Selection: Selection{
			FutureDays:      defaultFutureDays,
			SkipUnmonitored: defaultSkipUnmonitoredRaw,
		},
		Output: Output{
			Dir:            defaultOutputDir,
			OverlayFile:    defaultOverlayFile,
			CollectionFile: defaultCollectionFile,
		},
		Collection: Collection{
			Name:      defaultCollectionName,
			SortTitle: defaultSortTitle,
		},
		Notifications: Notifications{
			RequestTimeout: defaultNotifyTimeout,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
