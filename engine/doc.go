// Package engine connects abilink to the wazero runtime.
//
// Two things live here. Describe compiles a module and reports its imported
// and exported functions and the custom sections a runtime sees; the
// inspect command uses it to show that an annotated module still loads.
// InstantiateLogHost provides the "env" host module with a single
// log(ptr, len) import that guest modules use to emit UTF-8 messages.
//
// # Host Logging Import
//
//	(import "env" "log" (func $log (param i32 i32)))
//
// The guest passes the offset and length of a message in its exported
// memory. The host reads it with bounds checking and writes it to the zap
// logger; a range outside memory is reported, never trusted.
package engine
