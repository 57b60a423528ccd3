// Copyright ©2026 The duallagrange Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package objective

import "fmt"

// Factory builds an Objective from the driver's gamma/projectionType/args
// triple — the objective loader protocol.
type Factory func(gamma float64, projectionType string, args []string) (Objective, error)

// registry is the compile-time stand-in for the reference implementation's
// reflective class loader (the design note: "replace this with a
// compile-time registry... do not attempt reflective class loading").
var registry = map[string]Factory{}

// Register adds a factory under a fully qualified name. Intended to be
// called from an init() in the package that defines the objective, mirroring
// how production objectives would self-register.
func Register(fqName string, factory Factory) {
	if _, exists := registry[fqName]; exists {
		panic(fmt.Sprintf("objective: %q already registered", fqName))
	}
	registry[fqName] = factory
}

// ErrObjectiveNotFound is returned by Lookup when fqName has no registered
// factory — an ObjectiveLoadError, fatal to the top-level driver.
type ErrObjectiveNotFound struct {
	Name string
}

func (e *ErrObjectiveNotFound) Error() string {
	return fmt.Sprintf("objective: no factory registered for %q", e.Name)
}

// Lookup resolves fqName to an Objective, invoking its factory with the
// given parameters.
func Lookup(fqName string, gamma float64, projectionType string, args []string) (Objective, error) {
	factory, ok := registry[fqName]
	if !ok {
		return nil, &ErrObjectiveNotFound{Name: fqName}
	}
	return factory(gamma, projectionType, args)
}
