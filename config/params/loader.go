package params

import (
	"io/ioutil"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v2"
)

// LoadProtocolConfigFile loads a yaml parameter file and applies it on top
// of the defaults. Unknown keys are rejected so that typos in a config file
// do not silently fall back to defaults.
func LoadProtocolConfigFile(configFileName string) error {
	yamlFile, err := ioutil.ReadFile(configFileName) // #nosec G304
	if err != nil {
		return errors.Wrap(err, "failed to read protocol config file")
	}
	conf := DefaultProtocolConfig()
	if err := yaml.UnmarshalStrict(yamlFile, conf); err != nil {
		return errors.Wrap(err, "failed to parse protocol config yaml")
	}
	if err := conf.Validate(); err != nil {
		return err
	}
	log.Debugf("Config file values: %+v", conf)
	OverrideProtocolConfig(conf)
	return nil
}

// Validate rejects parameter combinations the engines cannot run with.
func (c *ProtocolConfig) Validate() error {
	if c.NumValidators == 0 {
		return errors.New("NUM_VALIDATORS must be positive")
	}
	if c.ValidatorWeight == 0 {
		return errors.New("VALIDATOR_WEIGHT must be positive")
	}
	if c.FinalityWindow == 0 {
		return errors.New("FINALITY_WINDOW must be positive")
	}
	return nil
}
