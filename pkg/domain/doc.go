/*
Package domain contains the core domain models of the Storyline engine.

It defines the immutable story graph (nodes and the choices connecting them) and the
snapshot of a playthrough. The package is pure: it performs no I/O and knows nothing about
loaders, hosts or persistence.

# Key Entities

  - Node: a passage of narrative text, optionally classified as an ending.
  - Choice: an edge leaving a node. It may move the cursor, nudge the ending tendency, or both.
  - Definition: the serialisable form of a story, produced by the DSL and the loaders.
  - Graph: the validated, read-only arena built from a Definition.
  - State: a consistent snapshot of a playthrough (cursor, active ending, history).
*/
package domain
