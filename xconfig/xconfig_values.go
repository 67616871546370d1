package xconfig

import (
	"fmt"
	"reflect"
	"strconv"
	"time"
)

var durationType = reflect.TypeOf(time.Duration(0))

func isScalar(v reflect.Value) bool {
	return v.Type() == durationType || v.Kind() != reflect.Struct
}

func setValueFromString(elem reflect.Value, value string) error {
	if elem.Type() == durationType {
		duration, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid duration value %q", value)
		}
		elem.SetInt(int64(duration))
		return nil
	}

	switch elem.Kind() {
	case reflect.String:
		elem.SetString(value)
	case reflect.Bool:
		val, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean value %q", value)
		}
		elem.SetBool(val)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		val, err := strconv.ParseInt(value, 10, 64)
		if err != nil || elem.OverflowInt(val) {
			return fmt.Errorf("invalid integer value %q for %s", value, elem.Type())
		}
		elem.SetInt(val)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		val, err := strconv.ParseUint(value, 10, 64)
		if err != nil || elem.OverflowUint(val) {
			return fmt.Errorf("invalid unsigned integer value %q for %s", value, elem.Type())
		}
		elem.SetUint(val)
	case reflect.Float32, reflect.Float64:
		val, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("invalid float value %q", value)
		}
		elem.SetFloat(val)
	default:
		return fmt.Errorf("unsupported type %s", elem.Kind())
	}

	return nil
}
