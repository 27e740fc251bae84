// Package kasane provides a chained-mapping data structure: a layered
// view over multiple key-value mappings.
//
// The name comes from the Japanese word for layering (重ね). A chain
// keeps an ordered list of underlying mappings and makes them appear
// as a single logical mapping - lookups scan the layers in priority
// order, while writes and deletes always target the first layer.
//
// Key features:
//   - Priority-ordered lookup across any number of layers
//   - Non-owning layer references: external mutations are visible
//     through the chain immediately, no snapshotting
//   - Scope push/pop via NewChild and Parents
//   - Insertion-ordered layers, plain-map adapters, and file-backed
//     layers (JSON, YAML) with change watching
//   - Reduction helpers over (value, key) pairs in package calc
package kasane
