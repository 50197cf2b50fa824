// Package frontmatter reads the YAML header of Markdown files such as a
// skill bundle's SKILL.md.
//
// A header is delimited by lines containing only "---":
//
//	---
//	name: setup-ulink
//	description: Walks the user through ULink onboarding.
//	---
//
//	# Instructions
//
// Only the header is read. The body after the closing delimiter is never
// consumed, so large bundles cost one short read.
package frontmatter
