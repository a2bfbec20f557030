/*
Package ports defines the interfaces between the explorer core and its adapters.

# Key Interfaces

  - Explorer: stateless catalog access and sampling, used by HTTP and MCP adapters.
  - SessionExplorer: Explorer plus server-side parameter state per session.
  - StateStore: persists session State (memory, Redis).
  - DistributedLocker: serializes access to a session across replicas.
*/
package ports
