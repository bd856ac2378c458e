// Package layers defines the generic forward/backward layer contract on
// top of the compute framework.
//
// A forward pass maps the layer input to the layer value and records
// auxiliary data (indices, shapes) in its Result; the matching backward
// pass consumes that auxiliary data together with the upstream gradient
// to produce the input gradient. Layer families (pooling, activation,
// loss) embed the container types defined here and add their own
// identifiers, shape inference and kernels; each family is a variant,
// not a subclass.
package layers
