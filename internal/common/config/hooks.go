package config

import (
	"reflect"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

// CustomHooks are the decode hooks applied when unmarshalling configuration. Setting a decode hook replaces viper's
// defaults, so the duration and slice hooks viper normally uses are composed back in.
var CustomHooks = []viper.DecoderConfigOption{
	viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		CharDecodeHook(),
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	)),
}

// CharDecodeHook decodes one-character strings into Char. Without it mapstructure would weakly parse "1" as the
// number one.
func CharDecodeHook() mapstructure.DecodeHookFuncType {
	return func(
		f reflect.Type,
		t reflect.Type,
		data interface{},
	) (interface{}, error) {
		if f.Kind() != reflect.String || t != reflect.TypeOf(Char(0)) {
			return data, nil
		}
		return ParseChar(data.(string))
	}
}
