// Package validation checks configuration structs and command arguments,
// reporting failures as INVALID_INPUT errors from the errors package.
//
// Struct tags use go-playground/validator; field names in messages follow
// mapstructure tags, so they match the keys of config.yml:
//
//	type CountConfig struct {
//	    MinLength int    `mapstructure:"min_length" validate:"gte=0"`
//	    Ext       string `mapstructure:"ext" validate:"ext"`
//	}
//	err := validation.Validate(cfg)
//
// Values outside a struct go through the collecting Validator:
//
//	v := validation.New()
//	v.Required("dir", dir).Distinct("dirs", left, right)
//	if err := v.Validate(); err != nil { ... }
package validation
