package domain

type Environment string

const (
	EnvironmentLive Environment = "live"
	EnvironmentDev  Environment = "dev"
)

// Environments lists the run phases in execution order. Live always
// completes before dev starts.
var Environments = []Environment{EnvironmentLive, EnvironmentDev}

func (e Environment) String() string {
	return string(e)
}

type Viewport struct {
	Width  int `yaml:"width" mapstructure:"width" validate:"gte=1"`
	Height int `yaml:"height" mapstructure:"height" validate:"gte=1"`
}

func DefaultViewport() Viewport {
	return Viewport{Width: 1280, Height: 720}
}
