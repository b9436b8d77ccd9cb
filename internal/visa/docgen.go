package visa

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/STS-Engineer/rh-app-backend/internal/employee"
	"github.com/STS-Engineer/rh-app-backend/internal/shared/apperror"
	visaerrors "github.com/STS-Engineer/rh-app-backend/internal/visa/errors"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Document generation fills a fixed text template with employee and
// mission data and attaches the rendered PDF to the checklist row exactly
// like a manual upload would.

func (s *service) GenerateAttestationTravail(ctx context.Context, req AttestationTravailRequest) (DocumentResponse, error) {
	emp, doc, err := s.loadGenerationTargets(ctx, req.EmployeID, req.DocumentID)
	if err != nil {
		return DocumentResponse{}, err
	}
	if err := requireEmployeeFields(emp, "poste", "type_contrat"); err != nil {
		return DocumentResponse{}, err
	}

	lines := []string{
		"ATTESTATION DE TRAVAIL",
		"",
		"Nous soussignés, la Direction des Ressources Humaines,",
		"attestons par la présente que :",
		"",
		fmt.Sprintf("M./Mme %s", emp.FullName()),
		fmt.Sprintf("Matricule : %s", emp.Matricule),
		fmt.Sprintf("CIN : %s", emp.CIN),
		fmt.Sprintf("occupe le poste de %s (%s)", emp.Poste, emp.TypeContrat),
		fmt.Sprintf("au sein de notre société depuis le %s.", emp.DateDebut.Format("02/01/2006")),
		"",
		"Cette attestation est délivrée à l'intéressé(e) pour servir",
		"et valoir ce que de droit.",
		"",
		fmt.Sprintf("Fait le %s", time.Now().Format("02/01/2006")),
		"La Direction des Ressources Humaines",
	}

	return s.renderAndAttach(ctx, doc, "attestation-travail.pdf", lines)
}

func (s *service) GenerateInvitationPriseEnCharge(ctx context.Context, req InvitationPriseEnChargeRequest) (DocumentResponse, error) {
	emp, doc, err := s.loadGenerationTargets(ctx, req.EmployeID, req.DocumentID)
	if err != nil {
		return DocumentResponse{}, err
	}
	if err := requireEmployeeFields(emp, "passeport"); err != nil {
		return DocumentResponse{}, err
	}

	lines := []string{
		"INVITATION ET PRISE EN CHARGE",
		"",
		fmt.Sprintf("Organisme d'accueil : %s", req.Organisme),
		fmt.Sprintf("Destination : %s", req.Destination),
		"",
		fmt.Sprintf("Nous invitons M./Mme %s,", emp.FullName()),
		fmt.Sprintf("titulaire du passeport n° %s,", *emp.Passeport),
		fmt.Sprintf("employé(e) en qualité de %s,", emp.Poste),
		"et certifions la prise en charge intégrale des frais de séjour",
		"pour la durée de la mission.",
		"",
		fmt.Sprintf("Fait le %s", time.Now().Format("02/01/2006")),
		"La Direction des Ressources Humaines",
	}

	return s.renderAndAttach(ctx, doc, "invitation-prise-en-charge.pdf", lines)
}

func (s *service) GenerateOrdreMission(ctx context.Context, req OrdreMissionRequest) (DocumentResponse, error) {
	emp, doc, err := s.loadGenerationTargets(ctx, req.EmployeID, req.DocumentID)
	if err != nil {
		return DocumentResponse{}, err
	}

	debut, err := parseDate(req.DateDebut)
	if err != nil {
		return DocumentResponse{}, err
	}
	fin, err := parseDate(req.DateFin)
	if err != nil {
		return DocumentResponse{}, err
	}
	if fin.Before(debut) {
		return DocumentResponse{}, visaerrors.ErrInvalidDateRange
	}

	lines := []string{
		"ORDRE DE MISSION",
		"",
		fmt.Sprintf("Collaborateur : %s", emp.FullName()),
		fmt.Sprintf("Matricule : %s", emp.Matricule),
		fmt.Sprintf("Poste : %s", emp.Poste),
		"",
		fmt.Sprintf("Objet de la mission : %s", req.ObjetMission),
		fmt.Sprintf("Destination : %s", req.Destination),
		fmt.Sprintf("Du %s au %s", debut.Format("02/01/2006"), fin.Format("02/01/2006")),
		"",
		"Le collaborateur est autorisé à se déplacer dans le cadre de",
		"cette mission pour le compte de la société.",
		"",
		fmt.Sprintf("Fait le %s", time.Now().Format("02/01/2006")),
		"La Direction des Ressources Humaines",
	}

	return s.renderAndAttach(ctx, doc, "ordre-mission.pdf", lines)
}

func (s *service) loadGenerationTargets(ctx context.Context, employeID, documentID string) (*employee.Employee, *VisaDocument, error) {
	emp, err := s.employees.FindByID(ctx, employeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, visaerrors.ErrEmployeeNotFound
		}
		return nil, nil, err
	}

	doc, err := s.repo.FindDocumentByID(ctx, documentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, visaerrors.ErrDocumentNotFound
		}
		return nil, nil, err
	}
	if doc.Mode != ModeUpload {
		return nil, nil, visaerrors.ErrDocumentNotUploadable
	}
	return emp, doc, nil
}

func (s *service) renderAndAttach(ctx context.Context, doc *VisaDocument, filename string, lines []string) (DocumentResponse, error) {
	pdf, err := buildSimpleDocumentPDF(lines)
	if err != nil {
		s.logger.Error("render document failed",
			zap.String("document_id", doc.ID.String()),
			zap.Error(err),
		)
		return DocumentResponse{}, err
	}
	return s.attachArtifact(ctx, doc, filename, pdf)
}

// requireEmployeeFields rejects generation when a template placeholder has
// no value, naming the missing field.
func requireEmployeeFields(emp *employee.Employee, fields ...string) error {
	for _, field := range fields {
		switch field {
		case "poste":
			if emp.Poste == "" {
				return apperror.RequiredField("poste")
			}
		case "type_contrat":
			if emp.TypeContrat == "" {
				return apperror.RequiredField("type_contrat")
			}
		case "passeport":
			if emp.Passeport == nil || *emp.Passeport == "" {
				return apperror.RequiredField("passeport")
			}
		}
	}
	return nil
}

// buildSimpleDocumentPDF emits a minimal single-page PDF with one text
// line per entry. Enough for the administrative letters this service
// produces; anything fancier goes through the upload path.
func buildSimpleDocumentPDF(lines []string) ([]byte, error) {
	if len(lines) == 0 {
		lines = []string{"Document"}
	}

	var content strings.Builder
	content.WriteString("BT\n/F1 12 Tf\n14 TL\n50 800 Td\n")
	for i, line := range lines {
		escaped := pdfEscape(line)
		if i == 0 {
			content.WriteString(fmt.Sprintf("(%s) Tj\n", escaped))
			continue
		}
		content.WriteString(fmt.Sprintf("T* (%s) Tj\n", escaped))
	}
	content.WriteString("ET")

	stream := content.String()
	objects := []string{
		"1 0 obj\n<< /Type /Catalog /Pages 2 0 R >>\nendobj\n",
		"2 0 obj\n<< /Type /Pages /Kids [3 0 R] /Count 1 >>\nendobj\n",
		"3 0 obj\n<< /Type /Page /Parent 2 0 R /MediaBox [0 0 595 842] /Resources << /Font << /F1 4 0 R >> >> /Contents 5 0 R >>\nendobj\n",
		"4 0 obj\n<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>\nendobj\n",
		fmt.Sprintf("5 0 obj\n<< /Length %d >>\nstream\n%s\nendstream\nendobj\n", len(stream), stream),
	}

	var out bytes.Buffer
	out.WriteString("%PDF-1.4\n")
	offsets := make([]int, 0, len(objects)+1)
	offsets = append(offsets, 0)

	for _, obj := range objects {
		offsets = append(offsets, out.Len())
		out.WriteString(obj)
	}

	xrefStart := out.Len()
	out.WriteString(fmt.Sprintf("xref\n0 %d\n", len(offsets)))
	out.WriteString("0000000000 65535 f \n")
	for i := 1; i < len(offsets); i++ {
		out.WriteString(fmt.Sprintf("%010d 00000 n \n", offsets[i]))
	}
	out.WriteString(fmt.Sprintf("trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF", len(offsets), xrefStart))

	return out.Bytes(), nil
}

func pdfEscape(v string) string {
	replacer := strings.NewReplacer("\\", "\\\\", "(", "\\(", ")", "\\)")
	return replacer.Replace(v)
}
