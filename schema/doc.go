// Package schema defines the page builder data contract: localized text, the closed
// set of field variants, component instances with their variant overrides, and the
// page document persisted as one pretty-printed JSON file per slug.
//
// All values are treated as immutable. Operations that change a component or page
// return a copy; previous values stay valid so callers can revert to them.
package schema
