package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/prasetyowira/qrlogo/constant"
	"github.com/prasetyowira/qrlogo/domain/composer"
	"github.com/prasetyowira/qrlogo/domain/generation"
	appLogger "github.com/prasetyowira/qrlogo/infrastructure/logger"
)

// Service is the part of generation.Service the handlers use
type Service interface {
	Generate(ctx context.Context, req generation.Request) (*generation.Record, error)
	Get(ctx context.Context, id string) (*generation.Record, error)
	List(ctx context.Context, limit int) ([]*generation.Record, error)
}

// Handler contains service dependencies for API handlers
type Handler struct {
	service Service
}

// CreateQRCodeRequest is the request object for CreateQRCode endpoint
type CreateQRCodeRequest struct {
	Text    string `json:"text"`
	Logo    string `json:"logo"`
	Caption bool   `json:"caption"`
}

// ErrorResponse represents an API error response
type ErrorResponse struct {
	Error string `json:"error"`
	Code  int    `json:"code"`
}

// NewHandler creates a new API handler
func NewHandler(service Service) *Handler {
	return &Handler{
		service: service,
	}
}

// CreateQRCode composes a QR code. A logo that breaks the code still answers
// 201; the record carries verified=false.
func (h *Handler) CreateQRCode(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	appLogger.CtxDebug(ctx, constant.MsgHandlingCreateRequest, appLogger.LoggerInfo{
		ContextFunction: constant.CtxCreateQRCode,
	})

	var req CreateQRCodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		appLogger.CtxError(ctx, "Error decoding request body", appLogger.LoggerInfo{
			ContextFunction: constant.CtxCreateQRCode,
			Error: &appLogger.CustomError{
				Code:    constant.ErrCodeAPIDecodeRequest,
				Message: err.Error(),
				Type:    constant.ErrTypeAPI,
			},
		})

		WriteJSONError(w, "Invalid request format", http.StatusBadRequest)
		return
	}

	record, err := h.service.Generate(ctx, generation.Request{
		Text:    req.Text,
		Logo:    req.Logo,
		Caption: req.Caption,
	})
	if err != nil {
		status := statusFor(err)
		if status == http.StatusInternalServerError {
			appLogger.CtxError(ctx, "Error creating QR code", appLogger.LoggerInfo{
				ContextFunction: constant.CtxCreateQRCode,
				Error: &appLogger.CustomError{
					Code:    constant.ErrCodeAPIServiceError,
					Message: err.Error(),
					Type:    constant.ErrTypeAPI,
				},
				Data: map[string]interface{}{
					constant.DataText: req.Text,
					constant.DataLogo: req.Logo,
				},
			})
			WriteJSONError(w, "Failed to create QR code", status)
			return
		}

		WriteJSONError(w, err.Error(), status)
		return
	}

	appLogger.CtxInfo(ctx, "Created QR code successfully", appLogger.LoggerInfo{
		ContextFunction: constant.CtxCreateQRCode,
		Data: map[string]interface{}{
			constant.DataID:       record.ID,
			constant.DataVerified: record.Verified,
		},
	})

	WriteJSON(w, record, http.StatusCreated)
}

// ListQRCodes returns the most recent generations. ?limit= caps the count.
func (h *Handler) ListQRCodes(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	records, err := h.service.List(ctx, limit)
	if err != nil {
		appLogger.CtxError(ctx, "Error listing QR codes", appLogger.LoggerInfo{
			ContextFunction: constant.CtxListQRCodes,
			Error: &appLogger.CustomError{
				Code:    constant.ErrCodeAPIServiceError,
				Message: err.Error(),
				Type:    constant.ErrTypeAPI,
			},
		})

		WriteJSONError(w, "Error listing QR codes", http.StatusInternalServerError)
		return
	}

	if records == nil {
		records = []*generation.Record{}
	}
	WriteJSON(w, records, http.StatusOK)
}

// GetQRCode returns a single generation record
func (h *Handler) GetQRCode(w http.ResponseWriter, r *http.Request) {
	record, ok := h.lookup(w, r, constant.CtxGetQRCode)
	if !ok {
		return
	}

	WriteJSON(w, record, http.StatusOK)
}

// GetQRCodeImage serves the PNG a generation wrote, broken or not
func (h *Handler) GetQRCodeImage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	record, ok := h.lookup(w, r, constant.CtxGetQRCodeImage)
	if !ok {
		return
	}

	data, err := os.ReadFile(record.WrittenPath)
	if err != nil {
		appLogger.CtxError(ctx, "Error reading QR code image", appLogger.LoggerInfo{
			ContextFunction: constant.CtxGetQRCodeImage,
			Error: &appLogger.CustomError{
				Code:    constant.ErrCodeAPIReadImage,
				Message: err.Error(),
				Type:    constant.ErrTypeAPI,
			},
			Data: map[string]interface{}{
				constant.DataID:          record.ID,
				constant.DataWrittenPath: record.WrittenPath,
			},
		})

		if errors.Is(err, os.ErrNotExist) {
			WriteJSONError(w, "QR code image not found", http.StatusNotFound)
			return
		}
		WriteJSONError(w, "Error reading QR code image", http.StatusInternalServerError)
		return
	}

	w.Header().Set(constant.HeaderContentType, "image/png")
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

func (h *Handler) lookup(w http.ResponseWriter, r *http.Request, fn string) (*generation.Record, bool) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	record, err := h.service.Get(ctx, id)
	if err != nil {
		if errors.Is(err, generation.ErrNotFound) {
			appLogger.CtxInfo(ctx, "QR code not found", appLogger.LoggerInfo{
				ContextFunction: fn,
				Data: map[string]interface{}{
					constant.DataID: id,
				},
			})

			WriteJSONError(w, "QR code not found", http.StatusNotFound)
			return nil, false
		}

		appLogger.CtxError(ctx, "Error retrieving QR code", appLogger.LoggerInfo{
			ContextFunction: fn,
			Error: &appLogger.CustomError{
				Code:    constant.ErrCodeAPIServiceError,
				Message: err.Error(),
				Type:    constant.ErrTypeAPI,
			},
			Data: map[string]interface{}{
				constant.DataID: id,
			},
		})

		WriteJSONError(w, "Error retrieving QR code", statusFor(err))
		return nil, false
	}

	return record, true
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, generation.ErrEmptyText),
		errors.Is(err, generation.ErrEmptyID),
		errors.Is(err, composer.ErrInvalidArgument),
		errors.Is(err, composer.ErrLogoLoadFailed):
		return http.StatusBadRequest
	case errors.Is(err, composer.ErrEncodingFailed):
		return http.StatusUnprocessableEntity
	case errors.Is(err, generation.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// WriteJSON writes a JSON response
func WriteJSON(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set(constant.HeaderContentType, "application/json")
	w.WriteHeader(statusCode)
	err := json.NewEncoder(w).Encode(data)
	if err != nil {
		return
	}
}

// WriteJSONError writes a JSON error response
func WriteJSONError(w http.ResponseWriter, message string, statusCode int) {
	WriteJSON(w, ErrorResponse{
		Error: message,
		Code:  statusCode,
	}, statusCode)
}
