package env

import (
	"fmt"
	"os"
	"strings"

	pkgstrings "github.com/klwxsrx/deskbooking/pkg/strings"
)

func Must[T any](val T, err error) T {
	if err != nil {
		panic(fmt.Errorf("parse environment: %w", err))
	}

	return val
}

func Parse[T pkgstrings.SupportedValueParsingTypes](key string) (T, error) {
	var result T
	str, ok := os.LookupEnv(key)
	if !ok {
		return result, notFoundError(key, result)
	}

	return parseValue[T](key, str)
}

// ParseOptional returns nil when the variable is not set or empty.
func ParseOptional[T pkgstrings.SupportedValueParsingTypes](key string) (*T, error) {
	str, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(str) == "" {
		return nil, nil
	}

	result, err := parseValue[T](key, str)
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func ParseWithDefault[T pkgstrings.SupportedValueParsingTypes](key string, defaultValue T) (T, error) {
	result, err := ParseOptional[T](key)
	if err != nil {
		return defaultValue, err
	}
	if result == nil {
		return defaultValue, nil
	}

	return *result, nil
}

func ParseList[T pkgstrings.SupportedValueParsingTypes](key string, delimiter string) ([]T, error) {
	str, ok := os.LookupEnv(key)
	if !ok {
		var blank T
		return nil, notFoundError(key, []T{blank})
	}

	strList := strings.Split(str, delimiter)
	result := make([]T, 0, len(strList))
	for _, item := range strList {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}

		v, err := parseValue[T](key, item)
		if err != nil {
			return nil, err
		}
		result = append(result, v)
	}

	return result, nil
}

func ParseOptionalList[T pkgstrings.SupportedValueParsingTypes](key string, delimiter string) ([]T, error) {
	if _, ok := os.LookupEnv(key); !ok {
		return nil, nil
	}

	return ParseList[T](key, delimiter)
}

func parseValue[T pkgstrings.SupportedValueParsingTypes](key, str string) (T, error) {
	result, err := pkgstrings.ParseTypedValue[T](strings.TrimSpace(str))
	if err != nil {
		return result, fmt.Errorf("env %s with type %T has invalid value: %w", key, result, err)
	}

	return result, nil
}

func notFoundError(key string, v any) error {
	return fmt.Errorf("env %s with type %T not found", key, v)
}
