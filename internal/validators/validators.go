// Package validators performs the structural request checks that run before
// any connection is acquired. Each endpoint maps to one [Operation]; the
// dispatch switch in [Validate] is exhaustive, so adding an operation
// without its rule set is a compile-visible omission rather than a silent
// pass-through.
//
// Checks stop at the first failure: the returned [*ValidationError] carries
// exactly one human-readable message, which is the entire msg payload of the
// error envelope.
package validators

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/liquify-app/liquify-server/models"
)

// Operation identifies one validated endpoint.
type Operation int

const (
	OpLogin Operation = iota
	OpLogout
	OpResendVerification
	OpVerify
	OpAccount
	OpSaveAccessToken
	OpExchangeToken
	OpBudgetAll
	OpBudgetGet
	OpBudgetCreate
	OpBudgetEdit
	OpLearnGet
	OpLearnUpdate
)

// ValidationError carries the single user-facing message of the first
// failed check.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func invalid(msg string) error {
	return &ValidationError{Message: msg}
}

var (
	emailPattern          = regexp.MustCompile(`\S+@\S+\.\S+`)
	allocationNamePattern = regexp.MustCompile(`^[\w\-\s]+$`)
)

// learnParts lists the valid part names per category. The two tracks are
// fixed; an unknown category or part is a validation failure, not a lookup
// miss.
var learnParts = map[string][]string{
	"budgets": {"intro", "creating", "adjusting", "controlling", "specialized"},
	"finAid":  {"intro", "applying", "types", "loans", "repaying"},
}

// Validate runs the rule set of op against req. req must be the request
// type the operation's handler decodes; a mismatch is a programming error
// and is reported as such. A nil return means the request passed every
// structural check.
func Validate(op Operation, req any) error {
	switch op {
	case OpLogin:
		r, ok := req.(*models.LoginRequest)
		if !ok {
			return fmt.Errorf("validators: OpLogin expects *models.LoginRequest, got %T", req)
		}
		return validateLogin(r)

	case OpLogout, OpResendVerification, OpAccount, OpLearnGet:
		r, ok := req.(*models.SessionRequest)
		if !ok {
			return fmt.Errorf("validators: session operation expects *models.SessionRequest, got %T", req)
		}
		return validateSessionID(r.SessionID)

	case OpVerify:
		r, ok := req.(*models.VerifyRequest)
		if !ok {
			return fmt.Errorf("validators: OpVerify expects *models.VerifyRequest, got %T", req)
		}
		return validateVerify(r)

	case OpSaveAccessToken:
		r, ok := req.(*models.SaveAccessTokenRequest)
		if !ok {
			return fmt.Errorf("validators: OpSaveAccessToken expects *models.SaveAccessTokenRequest, got %T", req)
		}
		return validateSaveAccessToken(r)

	case OpExchangeToken:
		r, ok := req.(*models.ExchangeTokenRequest)
		if !ok {
			return fmt.Errorf("validators: OpExchangeToken expects *models.ExchangeTokenRequest, got %T", req)
		}
		return validateExchangeToken(r)

	case OpBudgetAll:
		r, ok := req.(*models.BudgetAllRequest)
		if !ok {
			return fmt.Errorf("validators: OpBudgetAll expects *models.BudgetAllRequest, got %T", req)
		}
		return validateBudgetAll(r)

	case OpBudgetGet:
		r, ok := req.(*models.BudgetGetRequest)
		if !ok {
			return fmt.Errorf("validators: OpBudgetGet expects *models.BudgetGetRequest, got %T", req)
		}
		return validateBudgetGet(r)

	case OpBudgetCreate:
		r, ok := req.(*models.BudgetCreateRequest)
		if !ok {
			return fmt.Errorf("validators: OpBudgetCreate expects *models.BudgetCreateRequest, got %T", req)
		}
		return validateBudgetCreate(r)

	case OpBudgetEdit:
		r, ok := req.(*models.BudgetEditRequest)
		if !ok {
			return fmt.Errorf("validators: OpBudgetEdit expects *models.BudgetEditRequest, got %T", req)
		}
		return validateBudgetEdit(r)

	case OpLearnUpdate:
		r, ok := req.(*models.LearnUpdateRequest)
		if !ok {
			return fmt.Errorf("validators: OpLearnUpdate expects *models.LearnUpdateRequest, got %T", req)
		}
		return validateLearnUpdate(r)
	}

	return fmt.Errorf("validators: unknown operation %d", op)
}

func validateLogin(r *models.LoginRequest) error {
	r.Email = strings.TrimSpace(r.Email)
	if r.Email == "" || !emailPattern.MatchString(r.Email) {
		return invalid("The provided email is invalid. Please check that your email is correct.")
	}
	if r.Password == "" {
		return invalid("The provided password is invalid. Please check that your password is correct.")
	}
	// an omitted fingerprint is allowed: the transport derives one
	if r.Fingerprint != "" && strings.TrimSpace(r.Fingerprint) == "" {
		return invalid("The provided fingerprint is invalid.")
	}
	return nil
}

func validateSessionID(sessionID string) error {
	if strings.TrimSpace(sessionID) == "" {
		return invalid("Session ID is Invalid")
	}
	return nil
}

func validateVerify(r *models.VerifyRequest) error {
	if err := validateSessionID(r.SessionID); err != nil {
		return err
	}

	code := strings.TrimSpace(r.VerifyCode)
	if len(code) != 6 {
		return invalid("Access Code is not 6 digits long")
	}
	if _, err := strconv.Atoi(code); err != nil {
		return invalid("Access Code is not an integer")
	}
	return nil
}

func validateSaveAccessToken(r *models.SaveAccessTokenRequest) error {
	if err := validateSessionID(r.SessionID); err != nil {
		return err
	}
	if strings.TrimSpace(r.AccessToken) == "" {
		return invalid("Access Token for Bank Account is Invalid")
	}
	if strings.TrimSpace(r.ItemID) == "" {
		return invalid("Item ID for Bank Account is Invalid")
	}
	return nil
}

func validateExchangeToken(r *models.ExchangeTokenRequest) error {
	if err := validateSessionID(r.SessionID); err != nil {
		return err
	}
	if strings.TrimSpace(r.PublicToken) == "" {
		return invalid("Public Token for Bank Account is Invalid")
	}
	return nil
}

func validateBudgetAll(r *models.BudgetAllRequest) error {
	if err := validateSessionID(r.SessionID); err != nil {
		return err
	}
	if r.Budgets == nil {
		return invalid("Budget List is Invalid")
	}
	return nil
}

func validateBudgetGet(r *models.BudgetGetRequest) error {
	if err := validateSessionID(r.SessionID); err != nil {
		return err
	}
	if strings.TrimSpace(r.BudgetID) == "" {
		return invalid("Budget ID is Invalid.")
	}
	return nil
}

func validateBudgetCreate(r *models.BudgetCreateRequest) error {
	if err := validateSessionID(r.SessionID); err != nil {
		return err
	}
	if err := validateBudgetFields(r.Name, r.Description, r.Allocations); err != nil {
		return err
	}
	return nil
}

func validateBudgetEdit(r *models.BudgetEditRequest) error {
	if err := validateSessionID(r.SessionID); err != nil {
		return err
	}
	if strings.TrimSpace(r.BudgetID) == "" {
		return invalid("Budget ID is Invalid.")
	}
	return validateBudgetFields(r.Name, r.Description, r.Allocations)
}

// validateBudgetFields checks the document body shared by create and edit:
// name length, optional description length, and every allocation's name and
// numeric strings. Allocation failures name the offending entry by its
// one-based position.
func validateBudgetFields(name, description string, allocations []models.Allocation) error {
	name = strings.TrimSpace(name)
	if name == "" || len(name) > 50 {
		return invalid("Invalid Budget Name")
	}
	if len(description) > 150 {
		return invalid("Invalid Budget Description")
	}

	if len(allocations) == 0 {
		return invalid("No allocations defined.")
	}
	for i, allocation := range allocations {
		if allocation.Name == "" || !allocationNamePattern.MatchString(allocation.Name) {
			return invalid(fmt.Sprintf("Invalid allocation name in Allocation #%d", i+1))
		}
		if !isNonNegativeNumber(allocation.Total) {
			return invalid(fmt.Sprintf("Invalid allocation total in Allocation #%d", i+1))
		}
		if !isNonNegativeNumber(allocation.Amount) {
			return invalid(fmt.Sprintf("Invalid allocation amount in Allocation #%d", i+1))
		}
	}

	return nil
}

func validateLearnUpdate(r *models.LearnUpdateRequest) error {
	if err := validateSessionID(r.SessionID); err != nil {
		return err
	}

	parts, ok := learnParts[r.Category]
	if !ok {
		return invalid("Invalid Category")
	}

	found := false
	for _, part := range parts {
		if part == r.Part {
			found = true
			break
		}
	}
	if !found {
		return invalid("Invalid Part")
	}

	if r.Score < 0 || r.Score > 2 {
		return invalid("Invalid Score")
	}
	return nil
}

// isNonNegativeNumber reports whether s parses as a decimal number >= 0.
// Amounts travel as strings to avoid float drift, so the check parses
// rather than type-asserts.
func isNonNegativeNumber(s string) bool {
	if s == "" {
		return false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return false
	}
	return f >= 0
}
