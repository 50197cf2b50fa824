// Package install implements the idempotent installer primitives that every
// platform setup is built from.
//
// # Config Mergers
//
// [MCPConfigMerger] inserts the ulink server under the mcpServers object of a
// host's JSON config. Every other key and value is kept, in its original order,
// because the document is edited as a HuJSON syntax tree rather than decoded
// into a Go map. Comments and trailing commas are tolerated on input.
//
// [TOMLConfigMerger] applies the same contract to TOML configs, writing the
// entry to the mcp_servers.ulink table.
//
// Both mergers write through [fileutil.AtomicWriteFile], so an interrupted run
// leaves the previous file intact. Running a merger twice produces identical
// bytes.
//
// # Skill Copier
//
// [SkillCopier] copies a skill bundle directory into a host's skill directory.
// A missing source is a warning, not an error, and leaves the destination
// untouched.
//
// All primitives operate on an [afero.Fs] supplied through [Env], which lets
// tests run against an in-memory filesystem.
package install
