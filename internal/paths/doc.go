// Package paths resolves the filesystem locations ulink-setup reads and
// writes, and formats them for terminal output.
//
// Platform-specific locations (~/.cursor/mcp.json and friends) live with each
// platform adapter; this package only knows about the user's home directory,
// the XDG config directory and the bundled skill source.
//
// # Home Redaction
//
// Paths printed to the terminal go through a [Redactor] so that
// /Users/alice/.cursor/mcp.json is shown as ~/.cursor/mcp.json:
//
//	r := paths.NewRedactor(home)
//	fmt.Println(r.Redact(configPath))
//
// The home directory is resolved once at startup with [ResolveHome] and the
// Redactor is passed to the components that print paths.
package paths
