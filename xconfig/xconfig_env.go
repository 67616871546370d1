package xconfig

import (
	"fmt"
	"os"
	"reflect"
	"strings"
	"unicode"
)

func camelToSnake(s string) string {
	var result strings.Builder
	runes := []rune(s)

	for i, r := range runes {
		if i > 0 && unicode.IsUpper(r) {
			prevUpper := unicode.IsUpper(runes[i-1])
			nextLower := i < len(runes)-1 && unicode.IsLower(runes[i+1])

			if !prevUpper || nextLower {
				result.WriteByte('_')
			}
		}
		result.WriteRune(unicode.ToLower(r))
	}
	return result.String()
}

func getFieldTagName(fieldType reflect.StructField) string {
	for _, key := range []string{"env", "yaml", "json"} {
		tag := fieldType.Tag.Get(key)
		if tag == "-" {
			return ""
		}
		if name := strings.Split(tag, ",")[0]; name != "" {
			return name
		}
	}

	return camelToSnake(fieldType.Name)
}

// loadFromEnv overrides fields from PREFIX_SECTION_FIELD variables.
func loadFromEnv(v reflect.Value, prefix string) error {
	t := v.Type()

	for i := 0; i < v.NumField(); i++ {
		field := v.Field(i)
		fieldType := t.Field(i)

		if !field.CanSet() {
			continue
		}

		tagName := getFieldTagName(fieldType)
		if tagName == "" {
			continue
		}

		envKey := strings.ToUpper(prefix + "_" + tagName)

		if !isScalar(field) {
			if err := loadFromEnv(field, envKey); err != nil {
				return err
			}
			continue
		}

		envValue, ok := os.LookupEnv(envKey)
		if !ok || envValue == "" {
			continue
		}

		if err := setValueFromString(field, envValue); err != nil {
			return fmt.Errorf("failed to set field %s from %s: %w", fieldType.Name, envKey, err)
		}
	}

	return nil
}
