package xconfig

import (
	"fmt"
	"reflect"
)

func applyDefaultTagsRecursive(v reflect.Value) error {
	if v.Kind() != reflect.Struct {
		return nil
	}

	t := v.Type()

	for i := 0; i < v.NumField(); i++ {
		field := v.Field(i)
		fieldType := t.Field(i)

		if !field.CanSet() {
			continue
		}

		if !isScalar(field) {
			if err := applyDefaultTagsRecursive(field); err != nil {
				return err
			}
			continue
		}

		defaultValue := fieldType.Tag.Get("default")
		if defaultValue == "" || !field.IsZero() {
			continue
		}

		if err := setValueFromString(field, defaultValue); err != nil {
			return fmt.Errorf("invalid default for field %s: %w", fieldType.Name, err)
		}
	}

	return nil
}
