package teststreaming

import (
	"os"
	"testing"
)

// TSRootDirEnv overrides entities.Config.TSRootDir.
const TSRootDirEnv = "ISDBCC_TSROOTDIR"

// AllowTempDir lets file probers and streamers open fixtures generated under
// t.TempDir. It must run before the dependencies are built.
func AllowTempDir(t *testing.T) {
	t.Setenv(TSRootDirEnv, os.TempDir())
}
