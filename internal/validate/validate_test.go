package validate

import (
	"testing"

	"github.com/GiorgiUbiria/skill_swap/internal/apperr"
	"github.com/stretchr/testify/assert"
)

type meetingInput struct {
	Date string `json:"meetingDate" validate:"required"`
	Link string `json:"meetingLink" validate:"required,startswith=http"`
	Kind string `json:"type" validate:"omitempty,oneof=Offer Request"`
}

func TestStructReportsJSONFieldNames(t *testing.T) {
	err := Struct(meetingInput{Link: "https://meet.example.com/x"})
	assert.True(t, apperr.Is(err, apperr.KindValidation))
	assert.EqualError(t, err, "meetingDate is required")
}

func TestStructStartsWith(t *testing.T) {
	err := Struct(meetingInput{Date: "2026-10-20", Link: "meet.example.com/x"})
	assert.EqualError(t, err, "meetingLink must start with http")
}

func TestStructOneOf(t *testing.T) {
	err := Struct(meetingInput{Date: "2026-10-20", Link: "http://x", Kind: "Trade"})
	assert.EqualError(t, err, "type must be one of: Offer Request")
}

func TestStructValid(t *testing.T) {
	assert.NoError(t, Struct(meetingInput{Date: "2026-10-20", Link: "http://x", Kind: "Offer"}))
}
