package env

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"

	pkgstrings "github.com/klwxsrx/go-storefront/pkg/strings"
)

var ErrNotFound = errors.New("env not found")

func Must[T any](val T, err error) T {
	if err != nil {
		panic(fmt.Errorf("parse environment: %w", err))
	}
	return val
}

// LoadDotEnv populates the environment from the given files, skipping absent ones.
// Variables already present in the environment win.
func LoadDotEnv(paths ...string) error {
	for _, path := range paths {
		err := godotenv.Load(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
	}

	return nil
}

func Parse[T pkgstrings.SupportedValueParsingTypes](key string) (T, error) {
	str, ok := lookup(key)
	if !ok {
		var blank T
		return blank, fmt.Errorf("%w: %s with type %T", ErrNotFound, key, blank)
	}

	v, err := pkgstrings.ParseTypedValue[T](str)
	if err != nil {
		return v, invalidValueError(key, err)
	}
	return v, nil
}

func ParseOptional[T pkgstrings.SupportedValueParsingTypes](key string, fallback T) (T, error) {
	v, err := Parse[T](key)
	if errors.Is(err, ErrNotFound) {
		return fallback, nil
	}
	return v, err
}

func ParseList[T pkgstrings.SupportedValueParsingTypes](key string, delimiter string) ([]T, error) {
	str, ok := lookup(key)
	if !ok {
		return nil, fmt.Errorf("%w: %s with type list", ErrNotFound, key)
	}

	strList := strings.Split(str, delimiter)
	result := make([]T, 0, len(strList))
	for _, item := range strList {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		v, err := pkgstrings.ParseTypedValue[T](item)
		if err != nil {
			return nil, invalidValueError(key, err)
		}
		result = append(result, v)
	}

	return result, nil
}

func lookup(key string) (string, bool) {
	str, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(str) == "" {
		return "", false
	}
	return str, true
}

func invalidValueError(key string, err error) error {
	return fmt.Errorf("env %s has invalid value: %w", key, err)
}
