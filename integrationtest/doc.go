// Package integrationtest runs go test against a throwaway module that uses
// testartifacts, checking the flag, config file, and on-disk layout end to
// end. It needs the go toolchain and the module's dependencies, and is
// skipped with -short.
package integrationtest
