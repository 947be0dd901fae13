// Package atletiek extracts competition, athlete, registration and result
// data from the server-rendered HTML of the atletiek.nu results site, which
// exposes no public API.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, sqlite/, http/).
package atletiek
