// Package cli implements the gophtasks command-line client.
//
// NewRootCmd builds the cobra command tree:
//
//	gophtasks login            obtain and store an access token
//	gophtasks logout           forget the stored token
//	gophtasks whoami           show the user the stored token belongs to
//	gophtasks tasks list       list your tasks
//	gophtasks tasks add        create a task
//	gophtasks tasks status     change a task's status
//	gophtasks tasks delete     delete a task
//
// Settings come from internal/client/config; --server and --token-file
// override them for a single invocation.
package cli
