// Package dispatcher is the command table the host invokes.
//
// Every user action arrives as a named command such as "tags.replace" or
// "commands.run.Bold" and runs synchronously to completion before the
// next one. Commands are found first by namespace prefix through the
// Router, then by exact name in the Registry.
//
// When a command is dispatched:
//
//  1. An ExecutionContext is built with a fresh correlation id
//  2. The router or registry finds the handler
//  3. The handler runs, with panic recovery unless disabled
//  4. The outcome is logged with the correlation id
//  5. Metrics are recorded (if enabled)
//
// Usage:
//
//	d := dispatcher.NewWithDefaults()
//	d.RegisterNamespace(tagHandler)
//	result := d.Dispatch(handler.NewAction("tags.replace"), doc)
package dispatcher
