// Package scanopts binds the scan flags shared by the root and watch
// commands and merges them with the optional config file.
package scanopts

import (
	"fmt"

	"github.com/LegacyCodeHQ/headerscan/cmd/formatters"
	"github.com/LegacyCodeHQ/headerscan/depgraph/includes"
	"github.com/LegacyCodeHQ/headerscan/internal/config"

	"github.com/spf13/pflag"
)

// Options holds raw flag values.
type Options struct {
	Includes   []string
	Debug      bool
	Format     string
	Target     string
	Parser     string
	ConfigPath string
}

// Settings is the effective configuration for a run.
type Settings struct {
	IncludeDirs   []string
	Debug         bool
	Formatter     formatters.Formatter
	FormatOptions formatters.FormatOptions
	Extractor     includes.Extractor
	// ConfigFile is the config file that was read, if any.
	ConfigFile string
}

// AddFlags registers the scan flags on flags.
func (o *Options) AddFlags(flags *pflag.FlagSet) {
	flags.StringArrayVarP(&o.Includes, "include", "I", nil, "Add include search directories (repeatable; a value may hold several space-separated directories)")
	flags.BoolVarP(&o.Debug, "debug", "D", false, "Enable diagnostic tracing on stderr")
	flags.StringVarP(&o.Format, "format", "f", formatters.OutputFormatList.String(),
		fmt.Sprintf("Output format (%s)", formatters.SupportedFormats()))
	flags.StringVar(&o.Target, "target", "", "Rule target for the make format")
	flags.StringVarP(&o.Parser, "parser", "p", includes.ExtractorRegex.String(),
		fmt.Sprintf("Include parser (%s)", includes.SupportedExtractors()))
	flags.StringVar(&o.ConfigPath, "config", "", "Config file (default is ./"+config.ConfigFileName+".{toml,yaml,json})")
}

// Resolve merges flags with the config file and environment. Flags that were
// set explicitly win; config include directories come first in the search
// path, followed by those given with -I.
func (o *Options) Resolve(flags *pflag.FlagSet) (Settings, error) {
	cfg, used, err := config.Load(config.LoadOptions{ConfigFilePath: o.ConfigPath})
	if err != nil {
		return Settings{}, err
	}

	format := pick(flags, "format", o.Format, cfg.Format)
	parser := pick(flags, "parser", o.Parser, cfg.Parser)
	target := pick(flags, "target", o.Target, cfg.Target)

	formatter, err := formatters.NewFormatter(format)
	if err != nil {
		return Settings{}, err
	}
	if format == formatters.OutputFormatMake.String() && target == "" {
		return Settings{}, fmt.Errorf("--target is required with --format %s", format)
	}

	extractor, err := includes.NewExtractor(parser)
	if err != nil {
		return Settings{}, err
	}

	includeDirs := make([]string, 0, len(cfg.Include)+len(o.Includes))
	includeDirs = append(includeDirs, cfg.Include...)
	includeDirs = append(includeDirs, o.Includes...)

	return Settings{
		IncludeDirs:   includeDirs,
		Debug:         o.Debug || cfg.Debug,
		Formatter:     formatter,
		FormatOptions: formatters.FormatOptions{Target: target},
		Extractor:     extractor,
		ConfigFile:    used,
	}, nil
}

func pick(flags *pflag.FlagSet, name, flagValue, configValue string) string {
	if flags.Changed(name) || configValue == "" {
		return flagValue
	}
	return configValue
}
