// Package services implements the driving port interfaces.
// Services contain the integration lifecycle logic and orchestrate
// calls to driven ports (adapters).
//
// State is owned by the caller's event loop: services return Cmds that
// run elsewhere and feed their Msgs back through Registry.Update.
package services
