package codec

import (
	"reflect"

	"github.com/mitchellh/mapstructure"

	"github.com/operator-framework/fasb/pkg/navigator"
	"github.com/operator-framework/fasb/pkg/sampler"
)

// ModeHookFunc decodes the long and short names of a navigation mode.
func ModeHookFunc() mapstructure.DecodeHookFunc {
	return modeHookFunc
}

func modeHookFunc(f, t reflect.Type, data interface{}) (interface{}, error) {
	if t != reflect.TypeOf(navigator.ModeKind("")) || f.Kind() != reflect.String {
		return data, nil
	}
	return navigator.ParseModeKind(reflect.ValueOf(data).String())
}

// WeightHookFunc decodes the long and short names of a weight.
func WeightHookFunc() mapstructure.DecodeHookFunc {
	return weightHookFunc
}

func weightHookFunc(f, t reflect.Type, data interface{}) (interface{}, error) {
	if t != reflect.TypeOf(navigator.WeightKind("")) || f.Kind() != reflect.String {
		return data, nil
	}
	return navigator.ParseWeightKind(reflect.ValueOf(data).String())
}

func HeuristicHookFunc() mapstructure.DecodeHookFunc {
	return heuristicHookFunc
}

func heuristicHookFunc(f, t reflect.Type, data interface{}) (interface{}, error) {
	if t != reflect.TypeOf(sampler.Heuristic("")) || f.Kind() != reflect.String {
		return data, nil
	}
	return sampler.ParseHeuristic(reflect.ValueOf(data).String())
}

// HookFunc composes every hook of the package.
func HookFunc() mapstructure.DecodeHookFunc {
	return mapstructure.ComposeDecodeHookFunc(
		ModeHookFunc(),
		WeightHookFunc(),
		HeuristicHookFunc(),
	)
}
