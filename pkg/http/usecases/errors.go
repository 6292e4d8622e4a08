package usecases

const (
	msgAddressNotFound = "address not found"
	msgPathNotFound    = "no route between the two addresses"
	msgTimeout         = "route computation timed out"
	msgGraphNotLoaded  = "road network is not loaded"
)
