//go:build tools
// +build tools

// Package sentify pins the code generators invoked through go generate (mockgen)
// so go.mod and go.sum stay in sync on a fresh checkout.
package sentify

import (
	_ "go.uber.org/mock/mockgen"
)
