package main

import (
	"flag"

	"github.com/teslashibe/go-facecam/internal/config"
)

// overrides are the command-line values that may replace settings-file
// keys, with the names of the flags given explicitly.
type overrides struct {
	explicit    map[string]bool
	pigoCascade string
	webAddr     string
}

// explicitFlags returns the names of the flags set on the command line.
func explicitFlags(fs *flag.FlagSet) map[string]bool {
	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	return set
}

// merge layers o over the settings file. An explicit flag wins, then the
// environment variable, then the file, then the built-in default.
func (o overrides) merge(f config.File) config.File {
	if o.explicit["pigo-cascade"] || config.IsSet(config.EnvPigoCascade) {
		f.Pigo.CascadePath = o.pigoCascade
	}
	if o.explicit["web"] || config.IsSet(config.EnvWebPort) {
		f.Web.Addr = o.webAddr
	}
	return f
}
