// Package ciutil detects the execution environment (CI or local) and gives
// tests one consistent way to find the database they should use.
package ciutil
