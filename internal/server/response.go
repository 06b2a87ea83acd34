package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/alnah/go-blockforge"
	"github.com/alnah/go-blockforge/internal/splitstore"
)

// Error codes carried by the envelope.
const (
	CodeBadRequest   = "bad_request"
	CodeInvalidState = "invalid_state"
	CodeInvalidApply = "invalid_apply"
	CodeUnknownBlock = "unknown_block"
	CodeTooLarge     = "payload_too_large"
	CodeInternal     = "internal"
)

// APIError is the body of a failed request.
type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// ErrorEnvelope wraps APIError under an "error" key.
type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

func respondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
		_ = c.Error(err)
	}
	c.AbortWithStatusJSON(status, ErrorEnvelope{Error: APIError{Message: msg, Code: code}})
}

func respondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

// classify maps a domain error to a status and code.
func classify(err error) (int, string) {
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge, CodeTooLarge
	case errors.Is(err, blockforge.ErrUnknownBlock):
		return http.StatusNotFound, CodeUnknownBlock
	case errors.Is(err, blockforge.ErrEmptyBlockID),
		errors.Is(err, blockforge.ErrDuplicateBlockID),
		errors.Is(err, blockforge.ErrInvalidBlockType),
		errors.Is(err, blockforge.ErrInvalidListType),
		errors.Is(err, splitstore.ErrInvalidEntry):
		return http.StatusUnprocessableEntity, CodeInvalidState
	case errors.Is(err, blockforge.ErrUnknownComponent),
		errors.Is(err, blockforge.ErrNoBlocks),
		errors.Is(err, blockforge.ErrInvalidSplit),
		errors.Is(err, blockforge.ErrInvalidIndent),
		errors.Is(err, blockforge.ErrInvalidColour),
		errors.Is(err, blockforge.ErrInvalidIcon),
		errors.Is(err, blockforge.ErrNotIndentable):
		return http.StatusUnprocessableEntity, CodeInvalidApply
	default:
		return http.StatusBadRequest, CodeBadRequest
	}
}

func fail(c *gin.Context, err error) {
	status, code := classify(err)
	respondError(c, status, code, err)
}
