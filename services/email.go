package services

import (
	"fmt"
	"log"
	"strings"

	"justice_bot_go/config"

	"github.com/resend/resend-go/v2"
)

// Email represents an email message
type Email struct {
	To       []string
	Subject  string
	HTMLBody string
	TextBody string
}

// SendEmail sends an email using Resend API
func SendEmail(cfg *config.Config, email *Email) error {
	// In development mode, log the email instead of sending
	if cfg.EmailTestMode {
		logEmailToConsole(email)
		return nil
	}

	if cfg.ResendAPIKey == "" {
		return fmt.Errorf("RESEND_API_KEY not configured")
	}

	client := resend.NewClient(cfg.ResendAPIKey)

	fromAddress := fmt.Sprintf("%s <%s>", cfg.EmailFromName, cfg.EmailFrom)

	params := &resend.SendEmailRequest{
		From:    fromAddress,
		To:      email.To,
		Subject: email.Subject,
	}
	if email.HTMLBody != "" {
		params.Html = email.HTMLBody
	}
	if email.TextBody != "" {
		params.Text = email.TextBody
	}
	if params.Html == "" && params.Text == "" {
		return fmt.Errorf("email must have either HTMLBody or TextBody")
	}

	sent, err := client.Emails.Send(params)
	if err != nil {
		return fmt.Errorf("failed to send email via Resend: %v", err)
	}

	log.Printf("Email sent successfully via Resend (ID: %s) to: %v", sent.Id, email.To)
	return nil
}

// logEmailToConsole logs email details to console in development mode
func logEmailToConsole(email *Email) {
	separator := strings.Repeat("=", 80)
	log.Printf("\n%s\nEMAIL (Development Mode - Not Actually Sent)\n%s", separator, separator)
	log.Printf("To: %v", email.To)
	log.Printf("Subject: %s", email.Subject)
	log.Printf("\n--- TEXT BODY ---\n%s", email.TextBody)
	log.Printf("%s\n", separator)
}

// SendEmailAsync sends an email asynchronously using a goroutine
// This is the recommended method for sending emails in handlers to avoid blocking HTTP responses
func SendEmailAsync(cfg *config.Config, email *Email) {
	// Create a copy of the email to avoid race conditions
	emailCopy := &Email{
		To:       append([]string{}, email.To...),
		Subject:  email.Subject,
		HTMLBody: email.HTMLBody,
		TextBody: email.TextBody,
	}

	go func(cfg *config.Config, email *Email) {
		if err := SendEmail(cfg, email); err != nil {
			log.Printf("Error sending async email: %v", err)
		}
	}(cfg, emailCopy)
}

// BuildWelcomeEmail creates a welcome email for new users
func BuildWelcomeEmail(userEmail, userName string) *Email {
	name := userName
	if name == "" {
		name = "there"
	}
	return &Email{
		To:      []string{userEmail},
		Subject: "Welcome to Justice-Bot",
		TextBody: fmt.Sprintf(
			"Hi %s,\n\nWelcome to Justice-Bot. You can now describe your legal issue, "+
				"get an assessment of your case, and prepare the right tribunal forms.\n\n"+
				"Justice-Bot provides legal information, not legal advice.\n", name),
	}
}

// BuildAnalysisReadyEmail notifies a user that their case analysis finished
func BuildAnalysisReadyEmail(userEmail, userName, caseID string, score int) *Email {
	name := userName
	if name == "" {
		name = "there"
	}
	return &Email{
		To:      []string{userEmail},
		Subject: "Your case analysis is ready",
		TextBody: fmt.Sprintf(
			"Hi %s,\n\nThe analysis of your case is complete. Your merit score is %d/100.\n\n"+
				"Sign in to see the recommended legal pathway, next steps and the forms "+
				"you can prepare.\n\nCase reference: %s\n", name, score, caseID),
	}
}

// BuildPasswordResetEmail creates a password reset email with a tokenized link
func BuildPasswordResetEmail(userEmail, resetURL string) *Email {
	return &Email{
		To:      []string{userEmail},
		Subject: "Reset your Justice-Bot password",
		TextBody: fmt.Sprintf(
			"A password reset was requested for your account.\n\n"+
				"Reset your password here: %s\n\n"+
				"This link expires in 1 hour. If you did not request this, ignore this email.\n", resetURL),
	}
}

// BuildLowIncomeDecisionEmail notifies an applicant of a low-income decision
func BuildLowIncomeDecisionEmail(userEmail string, approved bool) *Email {
	subject := "Your low-income access application"
	var body string
	if approved {
		body = "Your low-income access application has been approved. " +
			"All paid features are now unlocked on your account at no charge.\n"
	} else {
		body = "Your low-income access application was not approved based on the " +
			"information provided. You can reapply if your circumstances change.\n"
	}
	return &Email{
		To:       []string{userEmail},
		Subject:  subject,
		TextBody: body,
	}
}
