package config

// Mode is how the exporter authenticates.
type Mode int

const (
	// ModeAnon uses the public key only; tables behind row-level security
	// may come back empty or partial.
	ModeAnon Mode = iota
	// ModePassword signs in with email and password before exporting.
	ModePassword
	// ModeServiceKey uses the privileged key and bypasses row-level security.
	ModeServiceKey
)

func (m Mode) String() string {
	switch m {
	case ModePassword:
		return "password"
	case ModeServiceKey:
		return "service_key"
	default:
		return "anon"
	}
}

// Mode picks the credential mode. A privileged key wins over email and
// password; an incomplete email/password pair falls back to anon.
func (c *Config) Mode() Mode {
	switch {
	case c.PrivilegedKey != "":
		return ModeServiceKey
	case c.Credentials.Complete():
		return ModePassword
	default:
		return ModeAnon
	}
}

// APIKey is the key sent in the apikey header for the selected mode.
func (c *Config) APIKey() string {
	if c.Mode() == ModeServiceKey {
		return c.PrivilegedKey
	}
	return c.PublicKey
}
