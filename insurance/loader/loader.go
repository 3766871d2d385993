// Package loader reads product definitions from a configuration directory.
// Loading is best-effort: a malformed record is logged and skipped, the rest
// of the directory still loads.
package loader

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
	modelx "github.com/narinth/insurepath/insurance/model"
	registryx "github.com/narinth/insurepath/insurance/registry"
)

var supportedExtensions = map[string]bool{
	".json": true,
	".yaml": true,
	".yml":  true,
}

// LoadFile reads and validates a single product definition.
func LoadFile(path string) (modelx.Product, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return modelx.Product{}, fmt.Errorf("read product file: %w", err)
	}

	var product modelx.Product
	if err := v.Unmarshal(&product); err != nil {
		return modelx.Product{}, fmt.Errorf("decode product record: %w", err)
	}
	if err := product.Validate(); err != nil {
		return modelx.Product{}, err
	}
	return product, nil
}

// LoadDirectory registers every valid product definition found in dir and
// returns how many loaded. A missing directory is not an error; it simply
// loads nothing.
func LoadDirectory(dir string, registry *registryx.ProductRegistry) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("read product directory: %w", err)
	}

	loaded := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if !supportedExtensions[ext] {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		product, err := LoadFile(path)
		if err != nil {
			log.Warn().
				Err(err).
				Str("path", path).
				Msg("skipping malformed product definition")
			continue
		}

		registry.Register(product)
		loaded++
		log.Debug().
			Str("product_id", product.ID).
			Str("category", string(product.Category)).
			Msg("product loaded")
	}

	return loaded, nil
}
