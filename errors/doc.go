// Package errors defines the failure taxonomy shared by the fuel packages.
// Every failure carries a machine-readable code so callers can tell a request
// that never left the process from one that failed on the network, one that
// was cancelled, and one whose body did not decode.
package errors
