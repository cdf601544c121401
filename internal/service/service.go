// Package service holds the authentication and catalog use cases. Both
// services are stateless and safe for concurrent use.
package service

import "github.com/Skotchmaster/flogin/internal/transport"

var defaultValidator = transport.NewValidator()
