// pkg/config/validate.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package config

import (
	"fmt"
	"math"
	"os"
	"reflect"
	"strings"

	validatorpkg "github.com/go-playground/validator/v10"

	"firewatch/pkg/model"
	"firewatch/pkg/util"
)

// Load reads, schema-checks, and validates a parameters file from path.
// Both the reflection-based shape check and the struct-tag value check
// accumulate into one util.ErrorLogger, and each reports every problem it
// finds rather than stopping at the first one (§6.1, §7 kind 1). The value
// check runs only once the shape check has passed, so a file with shape
// errors reports those alone.
func Load(path string) (*Parameters, *util.ErrorLogger) {
	var e util.ErrorLogger

	b, err := os.ReadFile(path)
	if err != nil {
		e.Error(err)
		return nil, &e
	}
	return Parse(b)
}

// Parse is Load without the filesystem dependency, split out so tests
// can validate in-memory parameter sets without a round trip through disk.
func Parse(b []byte) (*Parameters, *util.ErrorLogger) {
	var e util.ErrorLogger

	util.CheckJSON[Parameters](b, &e)
	if e.HaveErrors() {
		return nil, &e
	}

	var p Parameters
	if err := util.UnmarshalJSONBytes(b, &p); err != nil {
		e.Error(err)
		return nil, &e
	}

	validateValues(&p, &e)
	if e.HaveErrors() {
		return nil, &e
	}
	return &p, nil
}

// validate reports fields by their json names, so a value error names the
// config key (e.g. pct_fuel_cutoff) rather than the Go field.
var validate = func() *validatorpkg.Validate {
	v := validatorpkg.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}()

// validateValues runs the struct-tag pass (§6.1's "right shape, wrong
// value" class) and the handful of cross-field / non-tag-expressible
// checks the validator tags above can't capture on their own.
func validateValues(p *Parameters, e *util.ErrorLogger) {
	if err := validate.Struct(p); err != nil {
		for _, fe := range err.(validatorpkg.ValidationErrors) {
			e.ErrorString("%s: failed %q validation (got %v)", fe.Namespace(), fe.Tag(), fe.Value())
		}
	}

	if _, err := model.ParseCoordinatorPolicy(p.UAVCoordinator); err != nil {
		e.ErrorString("uav_coordinator: %v", err)
	}
	if _, err := model.ParseCoordinatorPolicy(p.WBCoordinator); err != nil {
		e.ErrorString("wb_coordinator: %v", err)
	}
	if _, err := model.ParsePrioritisationFunction(p.UAVs.Prioritisation); err != nil {
		e.ErrorString("uavs.prioritisation_function: %v", err)
	}

	if _, err := ParseTargetMaximum(p.TargetMaximumInspectionTime); err != nil {
		e.ErrorString("target_maximum_inspection_time: %v", err)
	}
	if _, err := ParseTargetMaximum(p.TargetMaximumSuppressionTime); err != nil {
		e.ErrorString("target_maximum_suppression_time: %v", err)
	}

	if p.UnassignedUAVs != nil && p.UnassignedUAVs.Forecasting != nil && p.UnassignedUAVs.TargetsFilename == "" {
		e.ErrorString("unassigned_uavs.forecasting: requires targets_filename")
	}
}

// ParseTargetMaximum interprets a target_maximum_*_time value: either a
// positive number of hours, or the literal string "inf" (soft ceiling
// disabled). Anything else is a schema error.
func ParseTargetMaximum(v interface{}) (float64, error) {
	switch x := v.(type) {
	case nil:
		return math.Inf(1), nil
	case string:
		if x == "inf" {
			return math.Inf(1), nil
		}
		return 0, fmt.Errorf("%q: must be a number of hours or the literal string \"inf\"", x)
	case float64:
		if x <= 0 {
			return 0, fmt.Errorf("%v: must be positive", x)
		}
		return x, nil
	default:
		return 0, fmt.Errorf("unexpected type %T", v)
	}
}
