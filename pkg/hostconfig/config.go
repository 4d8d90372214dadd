// pkg/hostconfig/config.go
package hostconfig

import "fmt"

// Config is the host-level configuration for a dispatch service. It carries
// no route or handler declarations; those arrive through the discovery
// source in code.
type Config struct {
	Service      string       `toml:"service"`
	Server       Server       `toml:"server"`
	Restrictions Restrictions `toml:"restrictions"`
	Logging      Logging      `toml:"logging"`
}

type Server struct {
	Listen  string `toml:"listen"`
	TLSCert string `toml:"tls_cert"`
	TLSKey  string `toml:"tls_key"`
}

// Restrictions toggles access-policy enforcement host-wide. Declared
// scenarios are still recorded when disabled; they just stop denying.
type Restrictions struct {
	Enabled bool `toml:"enabled"`
}

type Logging struct {
	File string `toml:"file"`
}

func (c *Config) Validate() error {
	if c.Service == "" {
		return fmt.Errorf("hostconfig: service name required")
	}
	if c.Server.Listen == "" {
		c.Server.Listen = ":4000"
	}
	if c.Logging.File == "" {
		c.Logging.File = "system.log"
	}
	if (c.Server.TLSCert == "") != (c.Server.TLSKey == "") {
		return fmt.Errorf("hostconfig: tls_cert and tls_key must be set together")
	}
	return nil
}
