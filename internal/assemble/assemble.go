// Package assemble builds the fully-resolved request bundle handed to the
// generation gateway. It is a pure transform: profile, history exemplars,
// optional client, optional current content and a computed due date go
// in, placeholder-free system and user texts come out.
package assemble

import (
	"fmt"
	"strings"
	"time"

	"docugen/pkg/models"
)

// maxExemplars bounds how many prior invoices are included as
// style/structure examples.
const maxExemplars = 3

// dateLayout is the human-readable date format used inside generated
// documents, e.g. "January 2, 2026".
const dateLayout = "January 2, 2006"

// Input carries everything the assembler needs. CurrentContent is empty
// for a new document and holds the live projection body when editing in
// place.
type Input struct {
	Prompt         string
	Profile        models.UserProfile
	History        []models.Invoice
	SelectedClient *models.Client
	CurrentContent string
	InvoiceNumber  string
	Now            time.Time
}

// Bundle is the opaque, fully-formed generation request. System is the
// behavioral directive, User the combined context plus the request.
type Bundle struct {
	System             string
	User               string
	SelectedClientName string
	InvoiceNumber      string
	DueDate            *time.Time
	DueDateText        string
}

// BuildBundle resolves Input into a Bundle. It has no side effects.
func BuildBundle(in Input) Bundle {
	currentDate := in.Now.Format(dateLayout)
	dueDate, dueText := DueDate(in.Profile.DefaultPaymentTerms, in.Now)

	var selectedName string
	if in.SelectedClient != nil {
		selectedName = in.SelectedClient.Name
	}

	var user strings.Builder
	user.WriteString(profileContext(in.Profile, currentDate, dueText, in.InvoiceNumber))
	user.WriteString("\n\n")
	user.WriteString(clientContext(in.SelectedClient, in.Profile))
	user.WriteString("\n\n")
	user.WriteString(historyContext(in.History))
	if in.CurrentContent != "" {
		user.WriteString("\n\n")
		user.WriteString(editingContext(in.CurrentContent))
	}
	fmt.Fprintf(&user, "\n\nUSER REQUEST: %q\n\nGenerate the Invoice Markdown now.\n", in.Prompt)

	return Bundle{
		System:             systemInstruction(in.Profile, in.InvoiceNumber, currentDate, dueText),
		User:               user.String(),
		SelectedClientName: selectedName,
		InvoiceNumber:      in.InvoiceNumber,
		DueDate:            dueDate,
		DueDateText:        dueText,
	}
}

func profileContext(p models.UserProfile, currentDate, dueText, invoiceNumber string) string {
	return fmt.Sprintf(`CURRENT DATE: %s
DUE DATE: %s
ASSIGNED INVOICE NUMBER: %s

CURRENT USER PROFILE (The Sender):
Business: %s
Owner: %s
Address: %s
Email: %s
Website: %s
Payment Info: %s
Default Terms: %s
Currency: %s`,
		currentDate, dueText, invoiceNumber,
		p.BusinessName, p.OwnerName, p.Address, p.Email,
		orNA(p.WebsiteURL), p.PaymentDetails,
		orDefault(p.DefaultPaymentTerms, "Due on Receipt"), p.Currency)
}

// clientContext resolves the recipient block. A selected client takes
// strict precedence over the profile's default client address.
func clientContext(client *models.Client, p models.UserProfile) string {
	if client != nil {
		return fmt.Sprintf(`SELECTED CLIENT (Recipient):
Name: %s
Address: %s
Email: %s
Phone: %s

INSTRUCTION: You MUST use the "SELECTED CLIENT" details above for the "Bill To" section of the invoice. Ignore any conflicting client names in the user request if they are ambiguous, prioritize this selected client.`,
			client.Name, client.Address, client.Email, orNA(client.Phone))
	}
	return fmt.Sprintf(`OPTIONAL DEFAULT CLIENT ADDRESS (Use if relevant or if no specific client address is provided in request):
%s`, orNA(p.DefaultClientAddress))
}

func historyContext(history []models.Invoice) string {
	if len(history) == 0 {
		return "No previous invoices available. Use a standard professional format."
	}
	if len(history) > maxExemplars {
		history = history[:maxExemplars]
	}

	var b strings.Builder
	b.WriteString("PREVIOUS INVOICES (Use these for style/structure consistency):\n")
	for i, inv := range history {
		fmt.Fprintf(&b, "--- EXAMPLE %d ---\n%s\n", i+1, inv.MarkdownContent)
	}
	return strings.TrimRight(b.String(), "\n")
}

func editingContext(current string) string {
	return fmt.Sprintf(`CURRENT INVOICE CONTENT (The user wants to modify this):
%s

IMPORTANT: Maintain the existing structure, line items, and details of the CURRENT INVOICE CONTENT, only applying the changes requested in the USER REQUEST. Do not hallucinate new items unless asked.`, current)
}

func systemInstruction(p models.UserProfile, invoiceNumber, currentDate, dueText string) string {
	return fmt.Sprintf(`You are an expert document generator agent specializing in Markdown Invoices.

Your goal is to generate a CLEAN, PROFESSIONAL Markdown string representing an invoice based on the user's request.

RULES:
1. ONLY return the Markdown content. Do not include conversational filler.
2. Use Standard Markdown tables for line items.
3. Use H1 (#) for the document title (e.g. INVOICE %[1]s).
4. Use H2 (##) for major sections like "Bill To", "Details", "Terms".
5. INCLUDE the "CURRENT USER PROFILE" details as the "From" section automatically.
6. USE the "ASSIGNED INVOICE NUMBER" (%[1]s) and "CURRENT DATE" (%[2]s) explicitly in the document header.
7. INCLUDE the "DUE DATE" (%[3]s) in the header or terms section.
8. INCLUDE the Default Terms (%[4]s) unless the user specifies otherwise.
9. Infer the Client details from the prompt. If a "SELECTED CLIENT" is provided in context, USE THAT.
10. Calculate totals if individual items are listed.
11. Do NOT wrap the output in `+"```markdown"+` code blocks. Return raw markdown text.
12. At the very end of the response, add a hidden metadata section strictly in this format:
    <!-- METADATA
    CLIENT: [Extracted Client Name]
    SUMMARY: [Short summary of invoice, e.g. "Web Dev Services - Oct"]
    -->`,
		invoiceNumber, currentDate, dueText,
		orDefault(p.DefaultPaymentTerms, "Due on Receipt"))
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
