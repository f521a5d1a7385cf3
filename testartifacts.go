package testartifacts

import (
	"flag"
	"log/slog"
	"sync"

	"github.com/randalmurphal/testartifacts/artifact"
	"github.com/randalmurphal/testartifacts/config"
)

// Configuration keys and defaults.
const (
	// KeyArtifactsDir is the config key holding the artifacts root.
	KeyArtifactsDir = "artifacts_dir"

	// DefaultArtifactsDir is used when no other source sets the root.
	DefaultArtifactsDir = ".artifacts/"

	// EnvPrefix prefixes environment overrides, e.g. TESTARTIFACTS_ARTIFACTS_DIR.
	EnvPrefix = "TESTARTIFACTS_"

	// AppName names the global config directory under ~/.config/.
	AppName = "testartifacts"

	// FlagName is the command-line flag that overrides every other source.
	FlagName = "artifacts-dir"
)

// LocalConfigNames are the config files looked up in the git root, in order.
var LocalConfigNames = []string{".testartifacts.yaml", ".testartifacts.yml", ".testartifacts.toml"}

// ValidKeys are the keys accepted in config files.
var ValidKeys = []string{KeyArtifactsDir}

var artifactsDir = flag.String(FlagName, "", "Directory to store test artifacts. Overrides the config file setting.")

var (
	rootOnce sync.Once
	root     string
)

// TestingT is the part of testing.TB used here. *testing.T, *testing.B and
// *testing.F all satisfy it.
type TestingT interface {
	Helper()
	Name() string
	Fatalf(format string, args ...any)
}

// NewResolver returns a config resolver for the artifacts settings.
func NewResolver(logger *slog.Logger) *config.Resolver {
	return config.NewResolver(config.ResolverConfig{
		EnvPrefix:        EnvPrefix,
		GlobalConfigDir:  AppName,
		LocalConfigNames: LocalConfigNames,
		Defaults: map[string]string{
			KeyArtifactsDir: DefaultArtifactsDir,
		},
		ValidGlobalKeys: ValidKeys,
		ValidLocalKeys:  ValidKeys,
		Logger:          logger,
	})
}

// ResolveRoot resolves the artifacts root with override taking precedence
// over every configured source. An empty override counts as unset.
func ResolveRoot(override string) (string, config.Source) {
	value, src := NewResolver(nil).Resolve().GetWithSource(KeyArtifactsDir)
	if override != "" {
		src = config.SourceFlag
	}
	return config.Override(override, value), src
}

// Root returns the artifacts root for this process. It is resolved once,
// on first use, from the -artifacts-dir flag and the configured sources.
func Root() string {
	rootOnce.Do(func() {
		var src config.Source
		root, src = ResolveRoot(*artifactsDir)
		slog.Debug("resolved artifacts root",
			slog.String("path", root),
			slog.String("source", string(src)))
	})
	return root
}

// New returns an acquired repository at <Root()>/<t.Name()>. Failure to
// acquire the directory fails the test.
func New(t TestingT, opts ...artifact.Option) *artifact.Repository {
	t.Helper()
	return NewAt(t, Root(), opts...)
}

// NewAt is New with an explicit artifacts root.
//
// Tests sharing a root must have distinct names; two running in parallel
// under the same name wipe each other's directory.
func NewAt(t TestingT, root string, opts ...artifact.Option) *artifact.Repository {
	t.Helper()

	dir, err := artifact.TestDir(root, t.Name())
	if err != nil {
		t.Fatalf("artifacts dir: %v", err)
		return artifact.New("", opts...)
	}

	repo := artifact.New(dir, opts...)
	if err := repo.Acquire(); err != nil {
		t.Fatalf("acquire artifacts: %v", err)
	}
	return repo
}
