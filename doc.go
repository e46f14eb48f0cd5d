// Package braindev is Dev Brain, an intelligent developer insights MCP server.
//
// Dev Brain consumes the Context Engine to provide test coverage analysis,
// behavior gap detection, test generation suggestions, refactoring
// recommendations and UX insights.
//
// Usage:
//
//	# As MCP server
//	brain-dev serve
//
//	# Programmatic
//	cfg := braindev.DefaultConfig()
//	fmt.Println(braindev.Version)
package braindev
