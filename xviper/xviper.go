package xviper

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// New produces a Viper instance configured with this project's conventions.
// The applicationName is used as the configuration file name, the environment
// prefix, and to generate the path under /etc and $HOME to look for
// configuration files.  Automatic environment mode is turned on.
func New(applicationName string) *viper.Viper {
	v := viper.New()
	v.SetConfigName(applicationName)
	v.AddConfigPath(fmt.Sprintf("/etc/%s", applicationName))
	v.AddConfigPath(fmt.Sprintf("$HOME/.%s", applicationName))
	v.AddConfigPath(".")

	v.SetEnvPrefix(applicationName)
	v.AutomaticEnv()

	return v
}

// ParseAndBind parses the given flag set using the supplied arguments and then binds
// the flag set to the specified Viper instance.  If arguments is nil, os.Args is used instead.
func ParseAndBind(v *viper.Viper, flagSet *pflag.FlagSet, arguments []string) error {
	if arguments == nil {
		arguments = os.Args[1:]
	}

	if err := flagSet.Parse(arguments); err != nil {
		return err
	}

	return v.BindPFlags(flagSet)
}

// ReadInConfig reads the configuration file located by the supplied Viper instance.
// A missing configuration file is not an error:  all settings simply fall back to
// defaults, flags, and the environment.  Any other read error is returned as is.
func ReadInConfig(v *viper.Viper) error {
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return nil
		}

		return err
	}

	return nil
}
