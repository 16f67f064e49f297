package http

import (
	"io"
	"strings"

	"github.com/gofiber/fiber/v2"

	"resume-optimizer/internal/usecase"
)

type Handler struct {
	processor *usecase.Processor
}

func NewHandler(p *usecase.Processor) *Handler {
	return &Handler{processor: p}
}

// RegisterRoutes mounts the resume API under router.
func (h *Handler) RegisterRoutes(router fiber.Router) {
	r := router.Group("/resume")
	r.Post("/generate", h.Generate)
	r.Post("/score", h.Score)
	r.Post("/extract", h.Extract)
	r.Put("/:id", h.Update)
	r.Get("/:id", h.Get)
	r.Post("/:id/export", h.Export)
	r.Get("/:id/download", h.Download)
}

type optimizeReq struct {
	OriginalResume string `json:"originalResume"`
	JobDescription string `json:"jobDescription"`
}

type contentReq struct {
	Content string `json:"content"`
}

func ok(c *fiber.Ctx, data interface{}) error {
	return c.JSON(fiber.Map{"success": true, "data": data})
}

func (h *Handler) Generate(c *fiber.Ctx) error {
	var req optimizeReq
	if err := c.BodyParser(&req); err != nil {
		return badRequest(msgInvalidPayload)
	}
	res, err := h.processor.Generate(c.UserContext(), req.OriginalResume, req.JobDescription)
	if err != nil {
		return fail(err, msgGenerateFailed)
	}
	return ok(c, res)
}

func (h *Handler) Score(c *fiber.Ctx) error {
	var req optimizeReq
	if err := c.BodyParser(&req); err != nil {
		return badRequest(msgInvalidPayload)
	}
	score, err := h.processor.Score(c.UserContext(), req.OriginalResume, req.JobDescription)
	if err != nil {
		return fail(err, msgScoreFailed)
	}
	return ok(c, fiber.Map{"matchScore": score})
}

func (h *Handler) Extract(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return badRequest(msgMissingFile)
	}
	f, err := fh.Open()
	if err != nil {
		return fail(err, msgExtractFailed)
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return fail(err, msgExtractFailed)
	}
	text, err := h.processor.Extract(c.UserContext(), fh.Header.Get(fiber.HeaderContentType), fh.Filename, data)
	if err != nil {
		return fail(err, msgExtractFailed)
	}
	return ok(c, fiber.Map{"text": text})
}

func (h *Handler) Update(c *fiber.Ctx) error {
	var req contentReq
	if err := c.BodyParser(&req); err != nil {
		return badRequest(msgInvalidPayload)
	}
	rec, err := h.processor.Update(c.UserContext(), c.Params("id"), req.Content)
	if err != nil {
		return fail(err, msgUpdateFailed)
	}
	return ok(c, fiber.Map{"id": rec.ID, "content": rec.Content, "updatedAt": rec.UpdatedAt})
}

func (h *Handler) Get(c *fiber.Ctx) error {
	rec, err := h.processor.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return fail(err, msgGetFailed)
	}
	return ok(c, rec)
}

func (h *Handler) Export(c *fiber.Ctx) error {
	var req contentReq
	if err := c.BodyParser(&req); err != nil {
		return badRequest(msgInvalidPayload)
	}
	res, err := h.processor.Export(c.UserContext(), c.Params("id"), req.Content)
	if err != nil {
		return fail(err, msgExportFailed)
	}
	return c.JSON(fiber.Map{
		"success":     true,
		"downloadUrl": res.DownloadURL,
		"filePath":    res.FilePath,
	})
}

func (h *Handler) Download(c *fiber.Ctx) error {
	id := c.Params("id")
	file := strings.TrimSpace(c.Query("file"))
	if file == "" {
		return badRequest(msgMissingFile)
	}
	rc, err := h.processor.Download(c.UserContext(), id, file)
	if err != nil {
		return fail(err, msgDownloadFailed)
	}
	c.Attachment("resume_" + id + ".pdf")
	c.Set(fiber.HeaderContentType, "application/pdf")
	// fasthttp closes rc once the body has been written
	return c.SendStream(rc)
}
