package handlers

import (
	"strconv"

	"github.com/ahmetcoskunkizilkaya/creatordash/internal/dto"
	"github.com/ahmetcoskunkizilkaya/creatordash/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ReportHandler struct {
	reportService *services.ReportService
}

func NewReportHandler(reportService *services.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

func (h *ReportHandler) CreateReport(c *fiber.Ctx) error {
	userID, ok, err := currentUser(c)
	if !ok {
		return err
	}

	var req dto.ReportPostRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	report, err := h.reportService.CreateReport(c.UserContext(), userID, c.Params("postId"), &req)
	if err != nil {
		return respondError(c, err, "")
	}

	return c.Status(fiber.StatusCreated).JSON(dto.SuccessResponse{
		Success: true,
		Data:    report,
		Message: "Post reported successfully",
	})
}

func (h *ReportHandler) ListReports(c *fiber.Ctx) error {
	status := c.Query("status", "")
	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	offset, _ := strconv.Atoi(c.Query("offset", "0"))

	page, err := h.reportService.ListReports(c.UserContext(), status, limit, offset)
	if err != nil {
		return err
	}

	return c.JSON(dto.OK(page))
}

func (h *ReportHandler) ActionReport(c *fiber.Ctx) error {
	reportID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid report ID")
	}

	var req dto.ActionReportRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	if err := h.reportService.ActionReport(c.UserContext(), reportID, &req); err != nil {
		return respondError(c, err, "")
	}

	return c.JSON(dto.SuccessResponse{Success: true, Message: "Report updated successfully"})
}
