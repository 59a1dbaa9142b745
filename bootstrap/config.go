package bootstrap

import (
	"github.com/kbukum/lazyflow/config"
)

// Config is the constraint for tool configuration types. Any struct that
// embeds config.ServiceConfig by value satisfies it through promoted
// methods; tools override ApplyDefaults and Validate to cover their own
// sections and call the embedded versions first.
type Config interface {
	GetServiceConfig() *config.ServiceConfig
	ApplyDefaults()
	Validate() error
}
