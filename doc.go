// Package testartifacts gives each test case its own directory for output
// artifacts such as logs, screenshots, or generated data.
//
// The package is organized into subpackages by concern:
//
//   - artifact: the per-test Repository and maintenance helpers
//   - config: layered configuration resolution and saving
//   - testutil: helpers for testing code built on this package
//
// # Quick Start
//
//	func TestRender(t *testing.T) {
//	    arts := testartifacts.New(t)
//
//	    err := arts.Create("page.html", func(f *os.File) error {
//	        return render(f)
//	    })
//	    if err != nil {
//	        t.Fatal(err)
//	    }
//	}
//
// The file above lands in .artifacts/TestRender/page.html and stays there
// after the run. The directory is emptied when the test next runs.
//
// # Choosing the Root
//
// The artifacts root resolves once per test binary, highest priority first:
//
//   - the -artifacts-dir flag (go test ./pkg -args -artifacts-dir=out/)
//   - the TESTARTIFACTS_ARTIFACTS_DIR environment variable
//   - artifacts_dir in .testartifacts.yaml (or .yml/.toml) at the git root
//   - artifacts_dir in ~/.config/testartifacts/config.yaml
//   - the default, .artifacts/
//
// Relative roots are relative to the test's working directory, which go
// test sets to the package directory.
package testartifacts
