package primitives

// View is an opaque UI description produced by a render function.
// The engine never inspects a View; it only carries it to the render host.
type View string
