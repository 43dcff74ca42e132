package service

import (
	"fmt"

	"github.com/park-seva/helpcenter-service/internal/domain"
)

// Fixed transcript texts. Several of these are golden-output contracts: the
// support contact block must render verbatim wherever it appears.

const apologyText = "I apologize, but I'm having trouble connecting. Please try again or raise a support ticket."

const positiveFeedbackText = "Thank you for your positive feedback! We're glad we could help you."

const neutralFeedbackText = "Thank you for your feedback. We'll continue to improve our service."

const statusPromptText = `Please provide your Ticket ID to check the status.

Ticket ID format: TKT-XXXXXXXXXX

You can find your Ticket ID in the previous conversation or in your Dashboard.`

func ticketConfirmationText(ticketID, description string) string {
	return fmt.Sprintf(`Support ticket %s has been raised successfully.

Your request has been forwarded to our support team. They will respond within 24 hours.

Ticket Details:
Ticket ID: %s
Issue: %s
Status: Open
Priority: High

Please save your Ticket ID. You can check the status anytime by asking "Check ticket status %s" or simply provide your ticket ID.

You can track your ticket in the Dashboard.`, ticketID, ticketID, description, ticketID)
}

func ticketNotFoundText(ticketID string, contact domain.Contact) string {
	return fmt.Sprintf(`Ticket %s not found.

Please verify your Ticket ID and try again. If you continue to face issues, please contact support:

Contact Person: %s
Mobile: %s`, ticketID, contact.Name, contact.Phone)
}

func ticketInProgressText(ticket *domain.SupportTicket, contact domain.Contact) string {
	return fmt.Sprintf(`Ticket Status: %s

Status: In Progress
Issue: %s
Created: %s

Your issue is currently being processed by our support team. We will respond shortly.

If urgent, please contact:

Contact Person: %s
Mobile: %s`, ticket.ID, ticket.Description, ticket.CreatedAt.Format(createdAtLayout), contact.Name, contact.Phone)
}

func escalationText(ticketID string, contact domain.Contact) string {
	return fmt.Sprintf(`Your ticket %s has not been responded to within 24 hours.

Please contact our support team directly:

Contact Person: %s
Mobile: %s

You can call or message for immediate assistance.`, ticketID, contact.Name, contact.Phone)
}

func surveyTicketRaisedText(ticketID string) string {
	return fmt.Sprintf("Support ticket %s has been raised. Our team will contact you soon.", ticketID)
}

const createdAtLayout = "Jan 2, 2006, 3:04:05 PM"
