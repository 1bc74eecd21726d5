// Package services sits between the front ends and the API/session layers.
//
// Every service follows the same failure policy: the error is logged, a
// destructive toast is raised on the Notifier, previously loaded state is
// left as it was, and the error is returned to the caller. Nothing retries.
package services
