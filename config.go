package aerso

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
)

var (
	cfgLoaded = false
	config    = _aersoconfig{}
)

// _aersoconfig is a "hidden" struct, just use `aersoConfig`
type _aersoconfig struct {
	outputDir     string
	shearExponent float64
}

// aersoConfig returns the aerso configuration. If the `AERSO_CONFIG`
// environment variable is set, conf.toml is loaded from that directory,
// otherwise the compiled defaults are used so the library works out of the box.
func aersoConfig() _aersoconfig {
	if cfgLoaded {
		return config
	}
	config = _aersoconfig{outputDir: ".", shearExponent: ShearExponentTypical}
	if confPath := os.Getenv("AERSO_CONFIG"); confPath != "" {
		viper.SetConfigName("conf")
		viper.AddConfigPath(confPath)
		if err := viper.ReadInConfig(); err != nil {
			panic(fmt.Errorf("%s/conf.toml not found", confPath))
		}
		if outputDir := viper.GetString("general.output_path"); outputDir != "" {
			config.outputDir = outputDir
		}
		if shear := viper.GetFloat64("wind.shear_exponent"); shear != 0 {
			config.shearExponent = shear
		}
	}
	cfgLoaded = true
	return config
}
