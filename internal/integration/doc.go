// Package integration holds end-to-end tests that run the storefront against
// real backing services in containers. Run them with -tags integration.
package integration
