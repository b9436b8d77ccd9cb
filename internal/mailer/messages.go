package mailer

import (
	"fmt"
	"strings"
)

// Builders for the fixed transactional messages. Subjects and bodies stay
// in French to match what the HR back office and employees expect.

func DocumentsRequired(employeeName, motif string, physicalItems []string) Message {
	var b strings.Builder
	fmt.Fprintf(&b, "Bonjour %s,\n\n", employeeName)
	fmt.Fprintf(&b, "Votre dossier visa (%s) a été créé.\n\n", motif)
	b.WriteString("Merci de téléverser les documents demandés sur la plateforme RH.\n")

	if len(physicalItems) > 0 {
		b.WriteString("\nDocuments à apporter physiquement au bureau RH :\n")
		for _, item := range physicalItems {
			fmt.Fprintf(&b, "  - %s\n", item)
		}
	}

	b.WriteString("\nL'historique CNSS est à envoyer par email au service RH.\n")
	b.WriteString("\nCordialement,\nService RH")

	return Message{
		Subject: "Documents requis pour votre dossier visa",
		Body:    b.String(),
	}
}

func AssuranceRequest(employeeName, departure, ret string) Message {
	return Message{
		Subject: fmt.Sprintf("Demande d'assurance voyage - %s", employeeName),
		Body: fmt.Sprintf(
			"Bonjour,\n\nMerci de fournir une assurance voyage pour %s.\nDépart : %s\nRetour : %s\n\nCordialement,\nService RH",
			employeeName, departure, ret,
		),
	}
}

func BilletRequest(employeeName, departure, ret string) Message {
	return Message{
		Subject: fmt.Sprintf("Demande de billet d'avion - %s", employeeName),
		Body: fmt.Sprintf(
			"Bonjour,\n\nMerci de fournir un billet d'avion pour %s.\nDépart : %s\nRetour : %s\n\nCordialement,\nService RH",
			employeeName, departure, ret,
		),
	}
}

func ContractEndAlert(employeeName, matricule, endDate string) Message {
	return Message{
		Subject: fmt.Sprintf("Fin de contrat dans 1 mois - %s", employeeName),
		Body: fmt.Sprintf(
			"Bonjour,\n\nLe contrat de %s (matricule %s) arrive à échéance le %s.\nMerci de prévoir le renouvellement ou l'entretien de départ.\n\nService RH",
			employeeName, matricule, endDate,
		),
	}
}

func PasswordReset(resetURL string) Message {
	return Message{
		Subject: "Réinitialisation de votre mot de passe",
		Body: fmt.Sprintf(
			"Bonjour,\n\nPour réinitialiser votre mot de passe, suivez ce lien (valable 1 heure) :\n%s\n\nSi vous n'êtes pas à l'origine de cette demande, ignorez cet email.\n\nService RH",
			resetURL,
		),
	}
}
