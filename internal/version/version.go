package version

// App identity used in logs and the CLI banner.
const (
	AppName     = "Marketmind"
	AppFullName = "Marketmind Discord Persona"
)

// Version is overridden at build time via -ldflags.
var Version = "dev"
