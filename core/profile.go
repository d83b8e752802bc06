package core

import (
	"time"

	"github.com/shopspring/decimal"
)

// Section identifies one of the onboarding forms.
type Section string

const (
	SectionFamilyBackground Section = "family-background"
	SectionCareerInfo       Section = "career-info"
	SectionExpenses         Section = "expenses"
	SectionRiskAppetite     Section = "risk-appetite"
	SectionFinancialGoals   Section = "financial-goals"
	SectionExistingDebt     Section = "existing-debt"
)

// ProfileRecord is one submitted onboarding form, linked to a user.
// Data holds the section-specific payload. Forms are independent:
// nothing orders them or checks consistency across sections.
type ProfileRecord struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Section   Section   `json:"section"`
	Data      any       `json:"data"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"createdAt"`
}

// FamilyBackground describes household composition and income.
type FamilyBackground struct {
	HouseholdSize int             `json:"householdSize"`
	Dependents    int             `json:"dependents"`
	FamilyIncome  decimal.Decimal `json:"familyIncome"`
}

// CareerInfo describes employment situation.
type CareerInfo struct {
	EmploymentStatus string `json:"employmentStatus"`
	JobStability     int    `json:"jobStability"`
	IncomeLevel      int    `json:"incomeLevel"`
}

// Expenses splits monthly spending into fixed and variable parts.
type Expenses struct {
	FixedExpenditure    decimal.Decimal `json:"fixedExpenditure"`
	VariableExpenditure decimal.Decimal `json:"variableExpenditure"`
}

// RiskAppetite is the user's self-assessed risk tolerance.
type RiskAppetite struct {
	RiskLevel int `json:"riskLevel"`
}

// FinancialGoals captures the investment objective.
type FinancialGoals struct {
	GoalType       string `json:"goalType"`
	ExpectedReturn string `json:"expectedReturn"`
}

// ExistingDebt lists outstanding liabilities.
type ExistingDebt struct {
	CurrentLoans   decimal.Decimal `json:"currentLoans"`
	CreditCardDebt decimal.Decimal `json:"creditCardDebt"`
	OtherDebt      decimal.Decimal `json:"otherDebt"`
}
