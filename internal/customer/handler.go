package customer

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"time"

	sharedContext "github.com/changhyeonkim/sales-crm/internal/shared/context"
	sharedError "github.com/changhyeonkim/sales-crm/internal/shared/error"
	"github.com/changhyeonkim/sales-crm/internal/shared/handler"
	"github.com/changhyeonkim/sales-crm/internal/shared/logger"
	"github.com/gin-gonic/gin"
)

// multipart framing allowance on top of the file size limit
const multipartOverhead = 64 << 10

type CustomerHandler struct {
	customerService *CustomerService
	importMaxBytes  int64
}

func NewCustomerHandler(customerService *CustomerService) *CustomerHandler {
	return &CustomerHandler{
		customerService: customerService,
		importMaxBytes:  customerService.cfg.ImportMaxBytes,
	}
}

func (h *CustomerHandler) Create(c *gin.Context) {
	userID, ok := sharedContext.RequireUserID(c)
	if !ok {
		return
	}

	var request CustomerRequest
	if !handler.BindJSON(c, &request) {
		return
	}

	response, err := h.customerService.Create(c.Request.Context(), userID, &request)
	if err != nil {
		RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response)
}

func (h *CustomerHandler) List(c *gin.Context) {
	userID, ok := sharedContext.RequireUserID(c)
	if !ok {
		return
	}

	var query ListQuery
	if !handler.BindQuery(c, &query) {
		return
	}

	response, err := h.customerService.List(c.Request.Context(), userID, &query)
	if err != nil {
		RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *CustomerHandler) Get(c *gin.Context) {
	userID, ok := sharedContext.RequireUserID(c)
	if !ok {
		return
	}

	response, err := h.customerService.Get(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *CustomerHandler) Update(c *gin.Context) {
	userID, ok := sharedContext.RequireUserID(c)
	if !ok {
		return
	}

	var request CustomerRequest
	if !handler.BindJSON(c, &request) {
		return
	}

	response, err := h.customerService.Update(c.Request.Context(), userID, c.Param("id"), &request)
	if err != nil {
		RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *CustomerHandler) Delete(c *gin.Context) {
	userID, ok := sharedContext.RequireUserID(c)
	if !ok {
		return
	}

	if err := h.customerService.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
		RespondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Import accepts a multipart upload in field "file"
func (h *CustomerHandler) Import(c *gin.Context) {
	userID, ok := sharedContext.RequireUserID(c)
	if !ok {
		return
	}

	file, err := OpenUpload(c, "file", h.importMaxBytes)
	if err != nil {
		RespondError(c, err)
		return
	}
	defer file.Close()

	result, err := h.customerService.Import(c.Request.Context(), userID, file)
	if err != nil {
		RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// Export streams the caller's customers as a CSV attachment
func (h *CustomerHandler) Export(c *gin.Context) {
	userID, ok := sharedContext.RequireUserID(c)
	if !ok {
		return
	}

	filename := fmt.Sprintf("customers-%s.csv", time.Now().Format("20060102"))
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Status(http.StatusOK)

	if _, err := h.customerService.Export(c.Request.Context(), userID, c.Writer); err != nil {
		// headers are gone already; the truncated body is all the client gets
		_ = c.Error(err)
		logger.FromContext(c.Request.Context()).Error("CSV 내보내기 실패", "error", err)
	}
}

// OpenUpload returns the uploaded file in field, enforcing maxBytes
func OpenUpload(c *gin.Context, field string, maxBytes int64) (multipart.File, error) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes+multipartOverhead)

	header, err := c.FormFile(field)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, fmt.Errorf("업로드 크기 초과: %w", ErrImportTooLarge)
		}
		return nil, fmt.Errorf("업로드 파일 없음 field=%s: %v: %w", field, err, ErrInvalidCSV)
	}

	if header.Size > maxBytes {
		return nil, fmt.Errorf("업로드 크기 초과 size=%d: %w", header.Size, ErrImportTooLarge)
	}

	file, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("업로드 파일 열기 실패: %w", err)
	}
	return file, nil
}

// ErrorResponse resolves err, carrying the row-level reason for invalid input
func ErrorResponse(err error) sharedError.ErrorResponse {
	resp := sharedError.Resolve(err)
	if errors.Is(err, ErrInvalidCustomer) {
		resp.Message = reason(err)
	}
	return resp
}

// RespondError sends the customer error response
func RespondError(c *gin.Context, err error) {
	handler.RespondError(c, err, ErrorResponse(err))
}
