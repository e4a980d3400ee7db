package state

import (
	"time"

	"caret/icons"
)

// newLocalEnv creates a new LocalEnv instance with default values
func newLocalEnv() *LocalEnv {
	return &LocalEnv{
		start: time.Now(),
		Icons: icons.Defaults(),
	}
}
