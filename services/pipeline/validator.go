// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package pipeline

import (
	"sort"
)

// requiredKeys are the record keys every non-hidden parameter must declare.
var requiredKeys = []string{"dtype", "description", "visibility", "default"}

// hiddenRequiredKeys is the reduced requirement for hidden parameters.
var hiddenRequiredKeys = []string{"default"}

// datasetParams are the reserved dataset parameter names whose visibility
// is forced to "datasets" so the display order stays stable.
var datasetParams = map[string]bool{
	"in_datasets":  true,
	"out_datasets": true,
}

// validateClass runs all schema checks over a single class's records. The
// checks are pure over the class's own record set and never consult sibling
// classes. Each check aggregates every offending parameter before failing so
// one error surfaces the full picture.
func validateClass(class string, records *ParamMap) error {
	if err := checkRequiredKeys(class, records); err != nil {
		validationFailures.WithLabelValues(class, "required_keys").Inc()
		return err
	}
	if err := checkOptions(class, records); err != nil {
		validationFailures.WithLabelValues(class, "options").Inc()
		return err
	}
	if err := checkVisibility(class, records); err != nil {
		validationFailures.WithLabelValues(class, "visibility").Inc()
		return err
	}
	if err := checkDtype(class, records); err != nil {
		validationFailures.WithLabelValues(class, "dtype").Inc()
		return err
	}
	return nil
}

// checkRequiredKeys verifies that every record carries its required keys.
func checkRequiredKeys(class string, records *ParamMap) error {
	missing := make(map[string][]string)
	records.Each(func(name string, def *Definition) {
		required := requiredKeys
		if def.Visibility == VisibilityHidden {
			required = hiddenRequiredKeys
		}
		var absent []string
		for _, key := range required {
			if !def.HasKey(key) {
				absent = append(absent, key)
			}
		}
		if len(absent) > 0 {
			sort.Strings(absent)
			missing[name] = absent
		}
	})
	if len(missing) > 0 {
		return &MissingKeysError{Class: class, Missing: missing}
	}
	return nil
}

// checkDtype verifies every declared dtype token against the registry.
// Unknown tokens are aggregated into one fatal error for the class.
func checkDtype(class string, records *ParamMap) error {
	invalid := make(map[string][]string)
	records.Each(func(name string, def *Definition) {
		if !def.HasKey("dtype") {
			// Only possible for hidden records, which need no dtype.
			return
		}
		for _, token := range def.Dtype {
			if !IsValidDtype(token) {
				invalid[name] = append(invalid[name], token)
			}
		}
	})
	if len(invalid) > 0 {
		return &InvalidDtypeError{Class: class, Invalid: invalid}
	}
	return nil
}

// checkVisibility coerces the reserved dataset parameters to visibility
// "datasets" (unless explicitly "not") and verifies every declared
// visibility against the accepted set.
func checkVisibility(class string, records *ParamMap) error {
	invalid := make(map[string]string)
	records.Each(func(name string, def *Definition) {
		if datasetParams[name] && def.Visibility != VisibilityNot {
			def.Visibility = VisibilityDatasets
		}
		if !def.HasKey("visibility") {
			return
		}
		if !IsValidVisibility(def.Visibility) {
			invalid[name] = string(def.Visibility)
		}
	})
	if len(invalid) > 0 {
		return &InvalidVisibilityError{Class: class, Invalid: invalid}
	}
	return nil
}

// checkOptions verifies that per-option sub-descriptions only describe
// values present in the declared options list.
func checkOptions(class string, records *ParamMap) error {
	invalid := make(map[string][]string)
	records.Each(func(name string, def *Definition) {
		if len(def.Options) == 0 || len(def.Description.Options) == 0 {
			return
		}
		declared := make(map[string]bool, len(def.Options))
		for _, opt := range def.Options {
			declared[opt] = true
		}
		var extra []string
		for opt := range def.Description.Options {
			if !declared[opt] {
				extra = append(extra, opt)
			}
		}
		if len(extra) > 0 {
			sort.Strings(extra)
			invalid[name] = extra
		}
	})
	if len(invalid) > 0 {
		return &InvalidOptionError{Class: class, Invalid: invalid}
	}
	return nil
}
