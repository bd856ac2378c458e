package compute

import (
	"fmt"

	"github.com/lattice-ml/lattice/internal/tensor"
)

// Kernel is a single numeric computation: it reads the owning
// algorithm's Input and Parameter and writes into its allocated Result.
// Kernels hold no state; the Env they receive is read-only.
type Kernel interface {
	Compute(env Env, in Input, par Parameter, res Result) error
}

// kernelKey identifies one registered kernel variant.
type kernelKey struct {
	method Method
	dtype  tensor.DataType
}

// Container binds (Method, DataType) pairs to executable kernels within
// a shared execution environment. The container holds no numeric logic;
// it is the seam that lets Batch orchestration select among specialized
// kernels without knowing their internals. The kernel is resolved once
// per Compute call and the same container is reused across calls.
type Container struct {
	env     Env
	kernels map[kernelKey]Kernel
}

// NewContainer creates an empty container bound to env.
func NewContainer(env Env) *Container {
	return &Container{
		env:     env,
		kernels: make(map[kernelKey]Kernel),
	}
}

// Register binds a kernel to the (method, dtype) pair, overwriting any
// prior registration.
func (c *Container) Register(m Method, dt tensor.DataType, k Kernel) {
	c.kernels[kernelKey{method: m, dtype: dt}] = k
}

// Env returns the container's execution environment.
func (c *Container) Env() Env {
	return c.env
}

// Compute resolves the kernel for (m, dt) and invokes it.
func (c *Container) Compute(m Method, dt tensor.DataType, in Input, par Parameter, res Result) error {
	k, ok := c.kernels[kernelKey{method: m, dtype: dt}]
	if !ok {
		return fmt.Errorf("%w: method %d, dtype %s", ErrUnsupportedMethod, m, dt)
	}
	return k.Compute(c.env, in, par, res)
}
