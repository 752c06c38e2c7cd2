package state

import (
	"time"

	"lexhtml/style"
)

// newLocalEnv creates a new LocalEnv instance with default values
func newLocalEnv() *LocalEnv {
	return &LocalEnv{
		start:    time.Now(),
		Registry: style.Default(),
	}
}
