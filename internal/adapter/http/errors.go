package http

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"resume-optimizer/internal/domain"
	"resume-optimizer/internal/extract"
	"resume-optimizer/internal/usecase"
)

// APIError is an error with the status and client-facing message to send.
type APIError struct {
	Status  int
	Message string
	Err     error
}

func (e *APIError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *APIError) Unwrap() error { return e.Err }

func badRequest(msg string) *APIError {
	return &APIError{Status: fiber.StatusBadRequest, Message: msg}
}

// fail maps a use case error to an APIError, using fallback as the message
// for unexpected failures.
func fail(err error, fallback string) *APIError {
	switch {
	case errors.Is(err, usecase.ErrMissingInput):
		return &APIError{Status: fiber.StatusBadRequest, Message: msgMissingInput, Err: err}
	case errors.Is(err, usecase.ErrEmptyContent):
		return &APIError{Status: fiber.StatusBadRequest, Message: msgMissingContent, Err: err}
	case errors.Is(err, usecase.ErrInvalidFileName):
		return &APIError{Status: fiber.StatusBadRequest, Message: msgInvalidFile, Err: err}
	case errors.Is(err, extract.ErrUnsupportedType), errors.Is(err, usecase.ErrNoText):
		return &APIError{Status: fiber.StatusBadRequest, Message: msgUnsupportedFile, Err: err}
	case errors.Is(err, usecase.ErrFileNotFound):
		return &APIError{Status: fiber.StatusNotFound, Message: msgFileNotFound, Err: err}
	case errors.Is(err, domain.ErrResumeNotFound):
		return &APIError{Status: fiber.StatusNotFound, Message: msgResumeNotFound, Err: err}
	}
	return &APIError{Status: fiber.StatusInternalServerError, Message: fallback, Err: err}
}

// ErrorHandler writes every error as {success:false, message}.
func ErrorHandler(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	msg := msgInternal

	var apiErr *APIError
	var fiberErr *fiber.Error
	switch {
	case errors.As(err, &apiErr):
		status, msg = apiErr.Status, apiErr.Message
	case errors.As(err, &fiberErr):
		status, msg = fiberErr.Code, fiberErr.Message
	}

	attrs := []any{"method", c.Method(), "path", c.Path(), "status", status, "error", err}
	if rid, ok := c.Locals("requestid").(string); ok {
		attrs = append(attrs, "requestId", rid)
	}
	if status >= fiber.StatusInternalServerError {
		slog.Error("request failed", attrs...)
	} else {
		slog.Warn("request rejected", attrs...)
	}

	return c.Status(status).JSON(fiber.Map{"success": false, "message": msg})
}

const (
	msgMissingInput    = "请提供原始简历和职位描述"
	msgMissingContent  = "请提供简历内容"
	msgMissingFile     = "缺少文件参数"
	msgInvalidFile     = "文件参数无效"
	msgFileNotFound    = "文件不存在"
	msgResumeNotFound  = "简历不存在"
	msgUnsupportedFile = "不支持的文件类型"
	msgInvalidPayload  = "请求格式错误"
	msgGenerateFailed  = "生成简历失败，请稍后重试"
	msgUpdateFailed    = "更新简历失败，请重试"
	msgGetFailed       = "获取简历失败"
	msgExportFailed    = "导出PDF失败"
	msgDownloadFailed  = "下载PDF失败"
	msgScoreFailed     = "计算匹配度失败"
	msgExtractFailed   = "解析简历文件失败"
	msgInternal        = "服务器内部错误"
)
