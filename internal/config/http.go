package config

import (
	"fmt"

	"github.com/docker/go-units"
)

type HTTP struct {
	Port    uint32 `env:"HTTP_PORT" envDefault:"8080"`
	Swagger bool   `env:"HTTP_SWAGGER" envDefault:"true"`

	// PublicURL prefixes the Location header of created resources.
	// Empty yields a host-relative location.
	PublicURL string `env:"HTTP_PUBLIC_URL"`

	MaxBodySize ByteSize `env:"HTTP_MAX_BODY_SIZE" envDefault:"1MB"`
	CorsOrigins []string `env:"HTTP_CORS_ORIGINS" envDefault:"*" envSeparator:","`
}

// ByteSize is a size in bytes parsed from a human readable value such as
// "512KB" or "1MB".
type ByteSize int64

// UnmarshalText implements [encoding.TextUnmarshaler].
func (b *ByteSize) UnmarshalText(text []byte) error {
	size, err := units.FromHumanSize(string(text))
	if err != nil {
		return fmt.Errorf("parse byte size %q: %w", text, err)
	}
	if size <= 0 {
		return fmt.Errorf("byte size must be positive: %q", text)
	}
	*b = ByteSize(size)
	return nil
}

func (b ByteSize) String() string {
	return units.HumanSize(float64(b))
}
