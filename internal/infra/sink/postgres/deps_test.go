package postgres

import (
	"testing"

	"prototypecore/testutil"
)

func TestImportsOnlyPrototypePackage(t *testing.T) {
	testutil.AssertNoDirectImports(t, ".", testutil.ModuleImportsExcept("prototypecore/pkg/prototype"), "sinks depend on pkg/prototype only")
}
