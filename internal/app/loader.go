package app

import (
	"path/filepath"
	"strings"

	"github.com/specialistvlad/cgpgrid/internal/config"
	"github.com/specialistvlad/cgpgrid/internal/hcl"
	"github.com/specialistvlad/cgpgrid/internal/yamlconfig"
)

// LoaderFor picks the configuration format from the path's extension.
// Directories are read as HCL.
func LoaderFor(path string) config.Loader {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yamlconfig.NewLoader()
	default:
		return hcl.NewLoader()
	}
}
