// Package component defines the lifecycle interfaces fuel's long-lived parts
// implement so a host application can start, stop, and health-check them.
package component
