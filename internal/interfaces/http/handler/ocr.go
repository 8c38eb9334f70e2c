package handler

import (
	"io"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	invoiceapp "github.com/chefcode/backend/internal/application/invoice"
)

// maxInvoiceSize caps uploaded invoice scans at 10 MiB.
const maxInvoiceSize = 10 << 20

// invoiceMimeTypes maps accepted scan extensions to the MIME type sent to
// the vision model.
var invoiceMimeTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".webp": "image/webp",
}

// ocrItem is one extracted line in the shape the client feeds straight into
// an inventory add. Lot and expiry are left blank for manual entry.
type ocrItem struct {
	Name       string  `json:"name"`
	Quantity   float64 `json:"quantity"`
	Unit       string  `json:"unit"`
	Category   string  `json:"category"`
	Price      float64 `json:"price"`
	LotNumber  string  `json:"lot_number"`
	ExpiryDate string  `json:"expiry_date"`
}

// OCRHandler serves invoice scanning: upload goes through the vision model
// and the arithmetic validator before anything reaches the client.
type OCRHandler struct {
	BaseHandler
	extractor    invoiceapp.Extractor
	validator    *invoiceapp.Validator
	availability Availability
	auth         gin.HandlerFunc
}

// NewOCRHandler creates a new OCRHandler.
func NewOCRHandler(extractor invoiceapp.Extractor, validator *invoiceapp.Validator, availability Availability, auth gin.HandlerFunc) *OCRHandler {
	return &OCRHandler{extractor: extractor, validator: validator, availability: availability, auth: auth}
}

// RegisterRoutes registers the OCR routes under their own prefix.
func (h *OCRHandler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/ocr")
	g.POST("/upload", h.auth, h.Upload)
	g.GET("/health", h.Health)
}

// Upload extracts line items from an uploaded invoice scan and reconciles
// each line's quantity against its stated total.
func (h *OCRHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		h.BadRequest(c, "Missing required file upload: file")
		return
	}
	mimeType, ok := invoiceMimeTypes[strings.ToLower(filepath.Ext(fileHeader.Filename))]
	if !ok {
		h.BadRequest(c, "Invalid file type. Allowed: .jpg, .jpeg, .png, .webp")
		return
	}
	if fileHeader.Size > maxInvoiceSize {
		h.BadRequest(c, "File too large, the limit is 10 MB")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.InternalError(c, "Failed to read uploaded file")
		return
	}
	defer file.Close()
	image, err := io.ReadAll(io.LimitReader(file, maxInvoiceSize))
	if err != nil {
		h.InternalError(c, "Failed to read uploaded file")
		return
	}

	lines, err := h.extractor.ExtractLineItems(c.Request.Context(), image, mimeType)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	result := h.validator.Validate(lines)

	items := make([]ocrItem, 0, len(result.Items))
	for _, line := range result.Items {
		items = append(items, ocrItem{
			Name:     line.Description,
			Quantity: line.Quantity,
			Unit:     line.Unit,
			Category: line.Type,
			Price:    line.UnitPrice,
		})
	}
	h.Success(c, gin.H{
		"items":       items,
		"corrections": result.Corrections,
	})
}

// Health reports whether the vision model integration is configured.
func (h *OCRHandler) Health(c *gin.Context) {
	status := "ready"
	if !h.availability.Available() {
		status = "not_configured"
	}
	h.Success(c, gin.H{
		"status": status,
		"model":  h.availability.Model(),
	})
}
