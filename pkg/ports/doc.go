/*
Package ports defines the driven ports (interfaces) for workbench hosts.

These interfaces decouple the HTTP adapter from concrete backends, so a
deployment can swap the query cache between in-memory and Redis without
touching handler code.

# Key Interfaces

  - QueryCache: Stores membership verdicts keyed by description fingerprint
    and input.

Driving interfaces live with their consumers: each host adapter declares
the Engine surface it needs from *automata.Workbench.
*/
package ports
