package handlers

import (
	"database/sql"
	"errors"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"aptbillmanager/internal/models"
	"aptbillmanager/internal/repositories"
	"aptbillmanager/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const previewLimit = 10

type BillHandler struct {
	flats    repositories.FlatRepository
	bills    services.BillService
	notifier *services.NotificationService
}

func NewBillHandler(flats repositories.FlatRepository, bills services.BillService, notifier *services.NotificationService) *BillHandler {
	return &BillHandler{flats: flats, bills: bills, notifier: notifier}
}

// RegisterTelegram links a chat id to an existing flat. No ownership proof
// beyond knowing the flat number; a deliberate simplification for a zero-cost
// residential tool.
func (h *BillHandler) RegisterTelegram(c *gin.Context) {
	var req models.FlatOwnerRegister
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	flatNo := strings.ToUpper(strings.TrimSpace(req.FlatNo))

	if _, err := h.flats.GetByFlatNo(c.Request.Context(), flatNo); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Flat number not found. Please ensure the committee has added you to the master list."})
			return
		}
		log.Printf("[bill][register] lookup failed for flat=%s: %v", flatNo, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register chat id"})
		return
	}

	flat, err := h.flats.UpdateTelegramChatID(c.Request.Context(), flatNo, req.TelegramChatID)
	if err != nil {
		log.Printf("[bill][register] update failed for flat=%s: %v", flatNo, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register chat id"})
		return
	}

	c.JSON(http.StatusOK, flat)
}

// GenerateBills accepts the consumption spreadsheet, computes bill records
// and schedules the Telegram fan-out in the background. The response carries
// counts and a preview; it never waits for delivery.
func (h *BillHandler) GenerateBills(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing file upload"})
		return
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if ext != ".xlsx" && ext != ".xls" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid file type. Please upload an Excel file (.xlsx or .xls)."})
		return
	}

	scratch := filepath.Join(os.TempDir(), uuid.New().String()+"_"+filepath.Base(file.Filename))
	if err := c.SaveUploadedFile(file, scratch); err != nil {
		log.Printf("[bill][generate] save upload failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error during bill generation."})
		return
	}
	defer os.Remove(scratch)

	records, err := h.bills.ProcessFile(c.Request.Context(), scratch)
	if err != nil {
		if errors.Is(err, services.ErrNoValidRecords) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "No valid bill records found in the file after processing."})
			return
		}
		log.Printf("[bill][generate] processing failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error during bill generation."})
		return
	}

	var toSend []models.BillRecord
	for _, r := range records {
		if r.TelegramChatID != "" {
			toSend = append(toSend, r)
		}
	}

	if len(toSend) > 0 {
		h.notifier.Dispatch(toSend)
	}

	preview := records
	if len(preview) > previewLimit {
		preview = preview[:previewLimit]
	}

	c.JSON(http.StatusOK, models.BillProcessResponse{
		TotalRecordsProcessed: len(records),
		NotificationsReady:    len(toSend),
		SkippedRecords:        len(records) - len(toSend),
		Preview:               preview,
	})
}

func (h *BillHandler) Status(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":        "ok",
		"service":       "Apt Bill Manager API",
		"cost_per_unit": h.bills.CostPerUnit(),
	})
}
