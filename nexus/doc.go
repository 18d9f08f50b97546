// Package nexus bridges the shell to the nexus CLI. A Runner executes one
// invocation — locally via os/exec or remotely over SSH — and Bridge adapts
// a Runner into the ignition.Bridge the readiness controller drives.
package nexus
