package github

// NewClientWithBase exports the private constructor for testing purposes.
var NewClientWithBase = newClientWithBase

// NewHasherWithClient exports the private constructor for testing purposes.
var NewHasherWithClient = newHasherWithClient
