/*
Package ports defines the interfaces between the Storyline core and its adapters.

These interfaces decouple the engine from where stories come from and from the hosts that
present them, allowing the same engine to back a terminal, an HTTP API or an MCP server.

# Key Interfaces

  - StoryLoader: Responsible for producing a story Definition (e.g., from Loam, a file or memory).
  - Playthrough: The query and transition surface of a single story engine.
*/
package ports
