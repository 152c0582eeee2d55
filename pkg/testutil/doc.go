// Package testutil provides helpers shared by the pricecalc tests.
//
// Key components:
//   - TestEnvironment: isolates XDG config and state directories and gives
//     each test its own scratch directory
//   - ModelBuilder: declarative construction of calculation models
//   - file helpers that fail the test instead of returning errors
package testutil
