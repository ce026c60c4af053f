package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"support-desk-go/internal/repository"
	"support-desk-go/pkg/log"
)

// forbiddenAccountFields may not be changed through the chat channel.
var forbiddenAccountFields = []string{"email", "name", "status", "username"}

const accountForbiddenResponse = "For security reasons, only phone number and date of birth updates " +
	"are allowed via chat.\n\n" +
	"Please contact support for other account changes."

const accountDOBPromptResponse = "Please provide your date of birth in YYYY-MM-DD format.\n" +
	"Example: 1995-08-21"

const accountPhonePromptResponse = "Please provide the new phone number.\n" +
	"Example: +1234567890"

const accountCapabilitiesResponse = "I can help you update the following account details:\n" +
	"- Phone number\n" +
	"- Date of birth (DOB)\n\n" +
	"Please tell me what you'd like to update."

const accountUpdateFailedResponse = "Sorry, I couldn't update your account details right now. " +
	"Please try again in a few minutes."

// accountService applies phone and date-of-birth updates supplied in chat.
type accountService struct {
	accountRepo repository.AccountRepository
}

// NewAccountService creates the account agent handler.
func NewAccountService(accountRepo repository.AccountRepository) AgentHandler {
	return &accountService{accountRepo: accountRepo}
}

// Handle extracts the supplied value and applies the update. The DOB check
// runs before the phone check because a date also contains digit runs that
// look like a phone number.
func (s *accountService) Handle(ctx context.Context, customerID, message string) string {
	lower := strings.ToLower(message)

	if containsAny(lower, forbiddenAccountFields) {
		return accountForbiddenResponse
	}

	if dob := dateTokenRe.FindString(message); dob != "" {
		if !isValidDOB(dob) {
			return "Please provide a valid past date of birth in YYYY-MM-DD format."
		}
		if err := s.accountRepo.UpdateDOB(customerID, dob); err != nil {
			log.Errorf("failed to update DOB: customer=%s err=%v", customerID, err)
			return accountUpdateFailedResponse
		}
		return fmt.Sprintf("Your date of birth has been updated to %s.", dob)
	}

	if strings.Contains(lower, "dob") || strings.Contains(lower, "date of birth") {
		return accountDOBPromptResponse
	}

	if phone := phoneTokenRe.FindString(message); phone != "" {
		if err := s.accountRepo.UpdatePhone(customerID, phone); err != nil {
			log.Errorf("failed to update phone: customer=%s err=%v", customerID, err)
			return accountUpdateFailedResponse
		}
		return fmt.Sprintf("Your phone number has been updated to %s.", phone)
	}

	if strings.Contains(lower, "phone") {
		return accountPhonePromptResponse
	}

	return accountCapabilitiesResponse
}

// isValidDOB accepts only parseable dates strictly in the past.
func isValidDOB(dob string) bool {
	parsed, err := time.Parse("2006-01-02", dob)
	if err != nil {
		return false
	}
	return parsed.Before(time.Now().UTC().Truncate(24 * time.Hour))
}
