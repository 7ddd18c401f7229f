// Package main hosts the foldfeat CLI entrypoint and command graph.
//
// The Cobra command tree resolves configuration once per invocation, builds
// the structured logger, and hands each subcommand an extractor wired from
// the loaded settings. Feature derivation lives in the internal packages;
// commands here only translate flags into jobs and render reports.
package main
