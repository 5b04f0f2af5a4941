package httpx

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Every endpoint answers with a flat JSON object carrying a "success" boolean
// and, on failure, a "message" string. Payload fields sit next to "success"
// rather than under a data envelope, matching the public contract
// (e.g. {"success":true,"pricing":{...}}).

// OK sends a successful response, merging payload keys into the envelope.
func OK(c *gin.Context, payload gin.H) {
	body := gin.H{"success": true}
	for k, v := range payload {
		body[k] = v
	}
	c.JSON(http.StatusOK, body)
}

// OKMsg sends a successful response with a message plus payload keys.
func OKMsg(c *gin.Context, message string, payload gin.H) {
	body := gin.H{"success": true, "message": message}
	for k, v := range payload {
		body[k] = v
	}
	c.JSON(http.StatusOK, body)
}

// Fail sends an error response with the given HTTP status and message.
func Fail(c *gin.Context, httpStatus int, message string) {
	c.JSON(httpStatus, gin.H{
		"success": false,
		"message": message,
	})
}

// FailErr sends an error response from an AppError.
// If AppError.Err is not nil, it is logged but never returned to the client.
func FailErr(c *gin.Context, err *AppError) {
	if err.Err != nil {
		log.Printf("[ERROR] %s (code=%d, internal_err=%v)", err.Message, err.Code, err.Err)
	}

	message := err.Message
	// Database and internal errors keep their detail server-side.
	if err.Code == CodeDatabaseError || err.Code == CodeInternalError {
		message = "internal server error"
	}

	Fail(c, err.HTTPStatus, message)
}
