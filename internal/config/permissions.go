package config

import (
	"github.com/clipsend/clipsend/internal/core/urlnorm"
)

// OriginGrantor abstracts the host-permission surface the settings layer
// talks to. Implementations back onto whatever grant store the runtime has.
type OriginGrantor interface {
	// Contains reports whether the origin pattern is already granted.
	Contains(pattern string) (bool, error)

	// Request asks for the origin pattern; returns whether it was granted.
	Request(pattern string) (bool, error)

	// Remove revokes a previously granted origin pattern.
	Remove(pattern string) error
}

// PermissionTransition records the outcome of moving host access from one API
// origin to another.
type PermissionTransition struct {
	// Granted is true when the new origin is usable after the transition.
	Granted bool

	// Pattern is the origin match pattern for the new API URL.
	Pattern string

	// RemovedPrevious is true when the old origin's grant was revoked.
	RemovedPrevious bool

	// Reason is set when Granted is false.
	Reason string
}

// EnsureOriginTransition makes sure the new API URL's origin is granted,
// revoking the previous origin's grant when it differs. A denied request
// leaves the previous grant in place so the old endpoint keeps working.
func EnsureOriginTransition(grantor OriginGrantor, previousAPIURL, newAPIURL string) (PermissionTransition, error) {
	pattern, err := urlnorm.OriginPattern(newAPIURL)
	if err != nil {
		return PermissionTransition{Reason: "URL API invalide."}, err
	}

	var previousPattern string
	if previousAPIURL != "" {
		if p, err := urlnorm.OriginPattern(previousAPIURL); err == nil {
			previousPattern = p
		}
	}

	has, err := grantor.Contains(pattern)
	if err != nil {
		return PermissionTransition{Pattern: pattern, Reason: err.Error()}, err
	}

	granted := has
	if !granted {
		granted, err = grantor.Request(pattern)
		if err != nil {
			return PermissionTransition{Pattern: pattern, Reason: err.Error()}, err
		}
	}

	if !granted {
		return PermissionTransition{
			Pattern: pattern,
			Reason:  "Permission refusée pour l'origine de l'API.",
		}, nil
	}

	transition := PermissionTransition{Granted: true, Pattern: pattern}
	if previousPattern != "" && previousPattern != pattern {
		if err := grantor.Remove(previousPattern); err == nil {
			transition.RemovedPrevious = true
		}
	}
	return transition, nil
}
