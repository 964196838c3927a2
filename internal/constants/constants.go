package constants

const (
	Version        = `0.1.0`
	AppName        = `sift`
	ConfigFile     = `config`
	ConfigFileType = `yaml`
	ConfigDir      = `/.sift/`
	LogFile        = `sift.log`
)
