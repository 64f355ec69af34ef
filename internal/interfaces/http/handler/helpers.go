package handler

import (
	"fmt"

	"github.com/google/uuid"
)

// parseOptionalUUID parses a nullable UUID string from a request body
func parseOptionalUUID(s *string) (*uuid.UUID, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	id, err := uuid.Parse(*s)
	if err != nil {
		return nil, fmt.Errorf("invalid UUID %q", *s)
	}
	return &id, nil
}
