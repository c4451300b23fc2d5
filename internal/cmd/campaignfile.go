package cmd

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// campaignFile is an optional YAML description of a run; flags override
// its values field by field.
type campaignFile struct {
	CSV       string  `yaml:"csv"`
	Template  string  `yaml:"template"`
	Subject   string  `yaml:"subject"`
	FromName  string  `yaml:"from_name"`
	FromEmail string  `yaml:"from_email"`
	Transport string  `yaml:"transport"`
	RateLimit float64 `yaml:"rate_limit"`
	Limit     int     `yaml:"limit"`
	DryRun    bool    `yaml:"dry_run"`
}

func loadCampaignFile(path string) (*campaignFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read campaign file")
	}

	var cf campaignFile
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, errors.Wrap(err, "failed to parse campaign file")
	}

	return &cf, nil
}
