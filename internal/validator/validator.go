package validator

import "strings"

// type that will hold a map containing all the errors
// {"title": "must be provided", "rating": "is not a recognised field"} ...
type Validator struct {
	Errors map[string]string
}

func New() *Validator {
	validator := &Validator{
		Errors: make(map[string]string),
	}
	return validator
}

// return true if theres no entries in the validator Errors map
func (v Validator) Valid() bool {
	return len(v.Errors) < 1
}

// add en error to the map
func (v *Validator) AddError(key, message string) {
	// keep the first error assigned
	_, ok := v.Errors[key]
	if !ok {
		v.Errors[key] = message
	}
}

// adds an error message to the map if the condition is true
func (v *Validator) Check(condition bool, key, message string) {
	if condition {
		v.AddError(key, message)
	}
}

// returns true if the string has something other than whitespace
func NotBlank(value string) bool {
	return strings.TrimSpace(value) != ""
}
