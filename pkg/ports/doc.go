/*
Package ports defines the driven ports (interfaces) of the pole-zero editor.

These interfaces decouple the editing logic from the environment, so the codec,
mutator and publisher can run against a browser location, a file, or a test
double without change.

# Key Interfaces

  - ConfigSource: the external configuration store (the page URL) with Load/Save.
  - DraftStore: persists the configuration being edited while the editor is open.
  - DistributedLocker: coordinates draft access across replicas.
*/
package ports
