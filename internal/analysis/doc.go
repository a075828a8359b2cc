// Package analysis holds the collaborator types the bedrock container wires
// together: type registries, reflection providers, scopes, and the diagnostics
// the engine reports. The container builds and memoizes these services; the
// test harness composes them into higher-level objects per test.
package analysis
