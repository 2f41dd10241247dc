package app

import (
	"testing"

	"github.com/specialistvlad/cgpgrid/internal/hcl"
	"github.com/specialistvlad/cgpgrid/internal/yamlconfig"
	"github.com/stretchr/testify/assert"
)

func TestLoaderFor(t *testing.T) {
	assert.IsType(t, &yamlconfig.Loader{}, LoaderFor("run.YAML"))
	assert.IsType(t, &yamlconfig.Loader{}, LoaderFor("run.yml"))
	assert.IsType(t, &hcl.Loader{}, LoaderFor("run.hcl"))
	assert.IsType(t, &hcl.Loader{}, LoaderFor("runs/"))
}
