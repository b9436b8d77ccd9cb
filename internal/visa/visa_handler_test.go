package visa_test

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/STS-Engineer/rh-app-backend/internal/visa"
	visaerrors "github.com/STS-Engineer/rh-app-backend/internal/visa/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type apiEnvelope struct {
	Ok    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Error *apiError       `json:"error"`
}

func decodeEnvelope(t *testing.T, body []byte) apiEnvelope {
	t.Helper()
	var env apiEnvelope
	err := json.Unmarshal(body, &env)
	assert.NoError(t, err)
	return env
}

type fakeVisaService struct {
	createDossierFn       func(ctx context.Context, req visa.CreateDossierRequest) (visa.CreateDossierResponse, error)
	getAllDossiersFn      func(ctx context.Context) ([]visa.DossierResponse, error)
	getDossierByIDFn      func(ctx context.Context, id string) (visa.DossierResponse, error)
	updateDossierStatusFn func(ctx context.Context, id string, req visa.UpdateDossierStatusRequest) (visa.DossierResponse, error)
	uploadDocumentFn      func(ctx context.Context, documentID, originalFilename string, data []byte) (visa.DocumentResponse, error)
	updateDocumentFn      func(ctx context.Context, documentID string, req visa.UpdateDocumentRequest) (visa.DocumentResponse, error)
	attestationFn         func(ctx context.Context, req visa.AttestationTravailRequest) (visa.DocumentResponse, error)
	invitationFn          func(ctx context.Context, req visa.InvitationPriseEnChargeRequest) (visa.DocumentResponse, error)
	ordreMissionFn        func(ctx context.Context, req visa.OrdreMissionRequest) (visa.DocumentResponse, error)
	mergeDossierPDFFn     func(ctx context.Context, dossierID string) ([]byte, error)
	sendAssuranceFn       func(ctx context.Context, dossierID string) (bool, error)
	sendBilletFn          func(ctx context.Context, dossierID string) (bool, error)
}

func (f *fakeVisaService) CreateDossier(ctx context.Context, req visa.CreateDossierRequest) (visa.CreateDossierResponse, error) {
	return f.createDossierFn(ctx, req)
}
func (f *fakeVisaService) GetAllDossiers(ctx context.Context) ([]visa.DossierResponse, error) {
	return f.getAllDossiersFn(ctx)
}
func (f *fakeVisaService) GetDossierByID(ctx context.Context, id string) (visa.DossierResponse, error) {
	return f.getDossierByIDFn(ctx, id)
}
func (f *fakeVisaService) UpdateDossierStatus(ctx context.Context, id string, req visa.UpdateDossierStatusRequest) (visa.DossierResponse, error) {
	return f.updateDossierStatusFn(ctx, id, req)
}
func (f *fakeVisaService) UploadDocument(ctx context.Context, documentID, originalFilename string, data []byte) (visa.DocumentResponse, error) {
	return f.uploadDocumentFn(ctx, documentID, originalFilename, data)
}
func (f *fakeVisaService) UpdateDocument(ctx context.Context, documentID string, req visa.UpdateDocumentRequest) (visa.DocumentResponse, error) {
	return f.updateDocumentFn(ctx, documentID, req)
}
func (f *fakeVisaService) GenerateAttestationTravail(ctx context.Context, req visa.AttestationTravailRequest) (visa.DocumentResponse, error) {
	return f.attestationFn(ctx, req)
}
func (f *fakeVisaService) GenerateInvitationPriseEnCharge(ctx context.Context, req visa.InvitationPriseEnChargeRequest) (visa.DocumentResponse, error) {
	return f.invitationFn(ctx, req)
}
func (f *fakeVisaService) GenerateOrdreMission(ctx context.Context, req visa.OrdreMissionRequest) (visa.DocumentResponse, error) {
	return f.ordreMissionFn(ctx, req)
}
func (f *fakeVisaService) MergeDossierPDF(ctx context.Context, dossierID string) ([]byte, error) {
	return f.mergeDossierPDFFn(ctx, dossierID)
}
func (f *fakeVisaService) SendAssuranceEmail(ctx context.Context, dossierID string) (bool, error) {
	return f.sendAssuranceFn(ctx, dossierID)
}
func (f *fakeVisaService) SendBilletEmail(ctx context.Context, dossierID string) (bool, error) {
	return f.sendBilletFn(ctx, dossierID)
}

func setupVisaHandlerTest(svc visa.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := visa.NewHandler(svc)
	r.POST("/visa-dossiers", h.CreateDossier)
	r.GET("/visa-dossiers/:id/dossier-pdf", h.DossierPDF)
	r.POST("/visa-documents/:id/upload", h.UploadDocument)
	r.PATCH("/visa-documents/:id", h.UpdateDocument)
	return r
}

func TestVisaHandler_CreateDossier(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		employeID := uuid.NewString()
		svc := &fakeVisaService{
			createDossierFn: func(ctx context.Context, req visa.CreateDossierRequest) (visa.CreateDossierResponse, error) {
				assert.Equal(t, employeID, req.EmployeID)
				return visa.CreateDossierResponse{
					Dossier: visa.DossierResponse{
						ID:        uuid.NewString(),
						EmployeID: req.EmployeID,
						Motif:     req.Motif,
						Statut:    visa.StatusDocumentsPending,
					},
					EmailSent: true,
				}, nil
			},
		}
		r := setupVisaHandlerTest(svc)

		body := `{"employe_id":"` + employeID + `","motif":"Mission","date_depart":"2026-10-01","date_retour":"2026-10-15"}`
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/visa-dossiers", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.True(t, env.Ok)
	})

	t.Run("missing motif yields 400", func(t *testing.T) {
		svc := &fakeVisaService{}
		r := setupVisaHandlerTest(svc)

		body := `{"employe_id":"` + uuid.NewString() + `","date_depart":"2026-10-01","date_retour":"2026-10-15"}`
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/visa-dossiers", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.False(t, env.Ok)
		assert.Equal(t, "INVALID_INPUT", env.Error.Code)
	})
}

func TestVisaHandler_UploadDocument(t *testing.T) {
	t.Run("multipart pdfFile is forwarded", func(t *testing.T) {
		documentID := uuid.NewString()
		payload := []byte("%PDF-1.4\nbody")
		svc := &fakeVisaService{
			uploadDocumentFn: func(ctx context.Context, docID, filename string, data []byte) (visa.DocumentResponse, error) {
				assert.Equal(t, documentID, docID)
				assert.Equal(t, "passeport.pdf", filename)
				assert.Equal(t, payload, data)
				return visa.DocumentResponse{ID: docID, Statut: visa.DocStatusUploaded}, nil
			},
		}
		r := setupVisaHandlerTest(svc)

		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		fw, err := mw.CreateFormFile("pdfFile", "passeport.pdf")
		assert.NoError(t, err)
		_, err = fw.Write(payload)
		assert.NoError(t, err)
		assert.NoError(t, mw.Close())

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/visa-documents/"+documentID+"/upload", &buf)
		req.Header.Set("Content-Type", mw.FormDataContentType())
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("missing file yields 400", func(t *testing.T) {
		svc := &fakeVisaService{}
		r := setupVisaHandlerTest(svc)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/visa-documents/"+uuid.NewString()+"/upload", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestVisaHandler_UpdateDocument(t *testing.T) {
	t.Run("rejects statut outside RECEIVED_PHYSICAL", func(t *testing.T) {
		svc := &fakeVisaService{}
		r := setupVisaHandlerTest(svc)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPatch, "/visa-documents/"+uuid.NewString(), strings.NewReader(`{"statut":"UPLOADED"}`))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestVisaHandler_DossierPDF(t *testing.T) {
	t.Run("streams merged pdf", func(t *testing.T) {
		payload := []byte("%PDF-1.4\nmerged")
		svc := &fakeVisaService{
			mergeDossierPDFFn: func(ctx context.Context, dossierID string) ([]byte, error) {
				return payload, nil
			},
		}
		r := setupVisaHandlerTest(svc)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/visa-dossiers/"+uuid.NewString()+"/dossier-pdf", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
		assert.Equal(t, payload, w.Body.Bytes())
	})

	t.Run("empty dossier yields 400", func(t *testing.T) {
		svc := &fakeVisaService{
			mergeDossierPDFFn: func(ctx context.Context, dossierID string) ([]byte, error) {
				return nil, visaerrors.ErrNoMergeablePDF
			},
		}
		r := setupVisaHandlerTest(svc)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/visa-dossiers/"+uuid.NewString()+"/dossier-pdf", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.False(t, env.Ok)
	})
}
