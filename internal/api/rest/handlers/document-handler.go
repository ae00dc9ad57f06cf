package handlers

import (
	"github.com/CrossCheckCME/case_service/internal/dto"
	"github.com/CrossCheckCME/case_service/internal/helper/utils"
	"github.com/CrossCheckCME/case_service/internal/services"
	pkgutils "github.com/CrossCheckCME/case_service/pkg/utils"
	"github.com/gofiber/fiber/v2"
)

type DocumentHandler struct {
	svc services.DocumentService
}

func NewDocumentHandler(svc services.DocumentService) *DocumentHandler {
	return &DocumentHandler{svc: svc}
}

func (h *DocumentHandler) SetupRoutes(api fiber.Router) {
	api.Get("/cases/:caseId/documents", h.ListDocuments)
	api.Post("/cases/:caseId/documents", h.UploadDocuments)
	api.Delete("/cases/:caseId/documents/:documentId", h.DeleteDocument)
}

func (h *DocumentHandler) ListDocuments(ctx *fiber.Ctx) error {
	userID, ok := currentUserID(ctx)
	if !ok {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "Unauthorized")
	}
	caseID := ctx.Params("caseId")
	if caseID == "" {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "Case ID is required")
	}

	docs, err := h.svc.ListDocuments(userID, caseID)
	if err != nil {
		return utils.ResponseAppError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(docs)
}

// UploadDocuments accepts a multipart batch on the repeatable "files" field.
func (h *DocumentHandler) UploadDocuments(ctx *fiber.Ctx) error {
	userID, ok := currentUserID(ctx)
	if !ok {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "Unauthorized")
	}
	caseID := ctx.Params("caseId")
	if caseID == "" {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "Case ID is required")
	}

	form, err := ctx.MultipartForm()
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "Multipart form data is required")
	}

	headers := form.File["files"]
	files := make([]dto.DocumentUpload, 0, len(headers))
	for _, fh := range headers {
		upload := dto.DocumentUpload{
			FileName:    fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Size:        fh.Size,
		}
		// oversized files are rejected on Size alone; don't buffer them
		if fh.Size > 0 && fh.Size <= services.MaxFileSizeBytes {
			f, err := fh.Open()
			if err != nil {
				return utils.ResponseError(ctx, fiber.StatusInternalServerError, "cannot open uploaded file")
			}
			content, err := pkgutils.ReadAllLimit(f, services.MaxFileSizeBytes)
			f.Close()
			if err != nil {
				return utils.ResponseError(ctx, fiber.StatusInternalServerError, "cannot read uploaded file")
			}
			upload.Content = content
		}
		files = append(files, upload)
	}

	created, err := h.svc.UploadDocuments(ctx.Context(), userID, caseID, files)
	if err != nil {
		return utils.ResponseAppError(ctx, err)
	}
	return ctx.Status(fiber.StatusCreated).JSON(created)
}

func (h *DocumentHandler) DeleteDocument(ctx *fiber.Ctx) error {
	userID, ok := currentUserID(ctx)
	if !ok {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "Unauthorized")
	}
	caseID := ctx.Params("caseId")
	documentID := ctx.Params("documentId")
	if caseID == "" || documentID == "" {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "Case ID and Document ID are required")
	}

	if err := h.svc.DeleteDocument(userID, caseID, documentID); err != nil {
		return utils.ResponseAppError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(dto.MessageResponse{
		Message: "Document deleted successfully",
	})
}
