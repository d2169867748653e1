// SPDX-License-Identifier: Apache-2.0

// Package test holds assertion helpers shared by the package tests.
package test

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// Assert is testify/assert with some extensions
type Assert struct {
	*assert.Assertions

	t *testing.T
}

// NoErrorFatal fails the test immediately on error
func (a *Assert) NoErrorFatal(err error) {
	a.NoError(err)
	if err != nil {
		a.t.Logf("Stopping test %s due to fatal error", a.t.Name())
		a.t.FailNow()
	}
}

// NotNilFatal fails the test immediately if v is nil
func (a *Assert) NotNilFatal(v interface{}) {
	if !a.NotNil(v) {
		a.t.Logf("Stopping test %s due to nil value", a.t.Name())
		a.t.FailNow()
	}
}

func NewAssert(t *testing.T) *Assert {
	return &Assert{assert.New(t), t}
}
