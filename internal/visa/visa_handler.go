package visa

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/STS-Engineer/rh-app-backend/internal/shared/apperror"
	"github.com/STS-Engineer/rh-app-backend/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// maxUploadSize caps multipart document uploads at 10 MiB.
const maxUploadSize = 10 << 20

type Handler struct {
	service Service
	rdb     *redis.Client
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("visa.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("visa.handler")
	}
	return &Handler{service: service, logger: l}
}

func NewHandlerWithRedis(service Service, rdb *redis.Client, logger ...*zap.Logger) *Handler {
	h := NewHandler(service, logger...)
	h.rdb = rdb
	return h
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("visa request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) writeBindingError(c *gin.Context, err error) {
	mapped := apperror.ToHTTP(apperror.MapValidationError(err))
	response.Error(c, mapped.Status, mapped.Code, mapped.Message, nil)
}

func (h *Handler) CreateDossier(c *gin.Context) {
	lockKey, _ := c.Get("idempotency_lock_key")
	cacheKey, _ := c.Get("idempotency_cache_key")

	if h.rdb != nil {
		if lk, ok := lockKey.(string); ok && lk != "" {
			defer h.rdb.Del(c.Request.Context(), lk)
		}
	}

	var req CreateDossierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeBindingError(c, err)
		return
	}

	resp, err := h.service.CreateDossier(c.Request.Context(), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	if h.rdb != nil {
		if ck, ok := cacheKey.(string); ok && ck != "" {
			if payload, marshalErr := json.Marshal(resp); marshalErr == nil {
				_ = h.rdb.Set(c.Request.Context(), ck, payload, 24*time.Hour).Err()
			}
		}
	}

	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) GetAllDossiers(c *gin.Context) {
	resp, err := h.service.GetAllDossiers(c.Request.Context())
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetDossierByID(c *gin.Context) {
	resp, err := h.service.GetDossierByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) UpdateDossierStatus(c *gin.Context) {
	var req UpdateDossierStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeBindingError(c, err)
		return
	}

	resp, err := h.service.UpdateDossierStatus(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) UploadDocument(c *gin.Context) {
	file, err := c.FormFile("pdfFile")
	if err != nil {
		response.Error(c, http.StatusBadRequest, apperror.CodeInvalidInput, "pdfFile is required", nil)
		return
	}
	if file.Size > maxUploadSize {
		response.Error(c, http.StatusBadRequest, apperror.CodeInvalidInput, "pdfFile exceeds the size limit", nil)
		return
	}

	src, err := file.Open()
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, maxUploadSize+1))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	resp, err := h.service.UploadDocument(c.Request.Context(), c.Param("id"), file.Filename, data)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) UpdateDocument(c *gin.Context) {
	var req UpdateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeBindingError(c, err)
		return
	}

	resp, err := h.service.UpdateDocument(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GenerateAttestationTravail(c *gin.Context) {
	var req AttestationTravailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeBindingError(c, err)
		return
	}

	resp, err := h.service.GenerateAttestationTravail(c.Request.Context(), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) GenerateInvitationPriseEnCharge(c *gin.Context) {
	var req InvitationPriseEnChargeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeBindingError(c, err)
		return
	}

	resp, err := h.service.GenerateInvitationPriseEnCharge(c.Request.Context(), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) GenerateOrdreMission(c *gin.Context) {
	var req OrdreMissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeBindingError(c, err)
		return
	}

	resp, err := h.service.GenerateOrdreMission(c.Request.Context(), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) DossierPDF(c *gin.Context) {
	data, err := h.service.MergeDossierPDF(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="dossier.pdf"`)
	c.Data(http.StatusOK, "application/pdf", data)
}

func (h *Handler) SendAssuranceEmail(c *gin.Context) {
	h.sendTravelEmail(c, h.service.SendAssuranceEmail)
}

func (h *Handler) SendBilletEmail(c *gin.Context) {
	h.sendTravelEmail(c, h.service.SendBilletEmail)
}

func (h *Handler) sendTravelEmail(c *gin.Context, send func(ctx context.Context, dossierID string) (bool, error)) {
	var req TravelEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeBindingError(c, err)
		return
	}

	sent, err := send(c.Request.Context(), req.DossierID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, EmailSentResponse{EmailSent: sent}, nil)
}
