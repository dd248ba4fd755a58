package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	Question   string `json:"question" validate:"required"`
	Difficulty int    `json:"difficulty" validate:"required,gte=1"`
	Note       string `json:"note" validate:"max=5"`
}

func TestStruct_Valid(t *testing.T) {
	assert.NoError(t, Struct(&sampleRequest{Question: "q", Difficulty: 2}))
}

func TestStruct_UsesJSONFieldNames(t *testing.T) {
	err := Struct(&sampleRequest{Difficulty: 1})

	var verr *RequestValidationError
	require.True(t, errors.As(err, &verr))
	require.Len(t, verr.Fields, 1)
	assert.Equal(t, "question", verr.Fields[0].Field)
	assert.Equal(t, "required", verr.Fields[0].Tag)
	assert.Equal(t, "question is required", verr.Error())
}

func TestStruct_CollectsEveryFailure(t *testing.T) {
	err := Struct(&sampleRequest{Question: "q", Difficulty: -1, Note: "too long"})

	var verr *RequestValidationError
	require.True(t, errors.As(err, &verr))
	require.Len(t, verr.Fields, 2)
	assert.Equal(t, "difficulty must be at least 1; note must be at most 5 characters", verr.Error())
}

func TestValidator_Singleton(t *testing.T) {
	assert.Same(t, Validator(), Validator())
}
