// Package spawn implements the worker launcher for threadrun.
//
// It provides:
//   - Worker: a single countdown worker with an identifier, iteration count and delay
//   - Spawner: the primitive that starts a worker and hands back a Handle
//   - Launcher: spawns a roster of workers in order and joins them in spawn order
//
// Spawn failures are fatal to the launcher: it reports the failure and returns
// without joining workers that already started. Running workers are reclaimed
// by process exit.
package spawn
