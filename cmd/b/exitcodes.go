package main

// Exit codes shared by all commands
const (
	ExitSuccess  = 0 // Success, including "nothing to do"
	ExitError    = 1 // I/O failure, malformed store, duplicate key, config dir unresolvable
	ExitNotFound = 2 // No bookmark with the requested key
)
