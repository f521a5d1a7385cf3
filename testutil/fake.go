package testutil

import "fmt"

// FakeT records failures instead of stopping the test. It satisfies the
// Helper/Name/Fatalf subset of testing.TB, so code that fails a test can be
// exercised without failing the real one.
type FakeT struct {
	TestName string
	Failures []string
}

// NewFakeT returns a FakeT reporting name from Name.
func NewFakeT(name string) *FakeT {
	return &FakeT{TestName: name}
}

// Helper is a no-op.
func (f *FakeT) Helper() {}

// Name returns the configured test name.
func (f *FakeT) Name() string {
	return f.TestName
}

// Fatalf records the failure message.
func (f *FakeT) Fatalf(format string, args ...any) {
	f.Failures = append(f.Failures, fmt.Sprintf(format, args...))
}

// Failed reports whether Fatalf was called.
func (f *FakeT) Failed() bool {
	return len(f.Failures) > 0
}
