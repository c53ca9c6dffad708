// Package awsclient constructs the shared AWS SDK clients from the default
// configuration chain. Clients are created once per process and injected
// into the handler through its narrow API interfaces.
package awsclient
