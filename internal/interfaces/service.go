package interfaces

// Service interface defines the methods that every kind of interface exposing
// the protocol must be compliant with.
type Service interface {
	Start() error
	Stop()
}
