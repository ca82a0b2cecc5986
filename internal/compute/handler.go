package compute

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"automation-dashboard/internal/model"
)

var functionTaskTypes = map[string]model.TaskType{
	"email-parser":      model.TaskTypeEmailParse,
	"invoice-generator": model.TaskTypeInvoiceGenerate,
	"lead-scorer":       model.TaskTypeLeadScore,
}

// InvokeHandler serves POST /invoke/:function for the compute service.
type InvokeHandler struct {
	wrapper *Wrapper
	logger  *zap.Logger
}

func NewInvokeHandler(wrapper *Wrapper, logger *zap.Logger) *InvokeHandler {
	return &InvokeHandler{wrapper: wrapper, logger: logger}
}

// Invoke mirrors a Lambda RequestResponse invocation: the transport status is
// 200 whenever the function ran, and the envelope's statusCode carries the
// function-level outcome.
func (h *InvokeHandler) Invoke(c *gin.Context) {
	function := c.Param("function")
	taskType, ok := functionTaskTypes[function]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown function: " + function})
		return
	}

	raw, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read request body"})
		return
	}

	params, err := model.DecodeParameters(taskType, raw)
	if err != nil {
		h.logger.Warn("Rejected invocation payload",
			zap.String("function", function),
			zap.Error(err),
		)
		c.JSON(http.StatusOK, model.InvocationEnvelope{
			StatusCode: http.StatusBadRequest,
			Body:       model.InvocationBody{Success: false, Error: err.Error()},
		})
		return
	}

	envelope := h.wrapper.Invoke(c.Request.Context(), taskType, params)
	c.JSON(http.StatusOK, envelope)
}
