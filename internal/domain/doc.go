// Package domain contains the core entities and value objects for nitrogen.
//
// This package represents the innermost layer of the architecture. It has no
// dependencies on infrastructure concerns (HTTP, screen capture, input
// injection, logging) and contains only pure data and business rules.
//
// # Entities
//
//   - [Frame]: A single captured frame with a monotonic id and timestamp
//   - [SourceAction]: A gamepad-shaped action vector produced by the policy
//   - [TargetAction]: A keyboard/mouse-shaped action vector ready to inject
//   - [RunConfig]: The immutable parameter snapshot for one run
//   - [RecordEntry]: One frame/action pair persisted by the recorder
//   - [Run]: A recording run and its identity
//
// # Design Principles
//
// Domain entities are:
//   - Immutable after construction (where practical)
//   - Free of infrastructure dependencies
//   - Testable without mocks or external systems
package domain
