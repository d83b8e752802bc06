package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/wealthpath/onboard/core"
	"github.com/wealthpath/onboard/service"
)

// ProfileHandlers serves the onboarding form endpoints. Request fields
// are pointers so a zero value counts as present while a missing field
// still fails validation.
type ProfileHandlers struct {
	profiles *service.ProfileService
}

// NewProfileHandlers creates new profile handlers.
func NewProfileHandlers(profiles *service.ProfileService) *ProfileHandlers {
	return &ProfileHandlers{profiles: profiles}
}

type familyBackgroundRequest struct {
	HouseholdSize *int             `json:"householdSize" binding:"required"`
	Dependents    *int             `json:"dependents" binding:"required"`
	FamilyIncome  *decimal.Decimal `json:"familyIncome" binding:"required"`
}

type careerInfoRequest struct {
	EmploymentStatus *string `json:"employmentStatus" binding:"required"`
	JobStability     *int    `json:"jobStability" binding:"required"`
	IncomeLevel      *int    `json:"incomeLevel" binding:"required"`
}

type expensesRequest struct {
	FixedExpenditure    *decimal.Decimal `json:"fixedExpenditure" binding:"required"`
	VariableExpenditure *decimal.Decimal `json:"variableExpenditure" binding:"required"`
}

type riskAppetiteRequest struct {
	RiskLevel *int `json:"riskLevel" binding:"required"`
}

type financialGoalsRequest struct {
	GoalType       *string `json:"goalType" binding:"required"`
	ExpectedReturn *string `json:"expectedReturn" binding:"required"`
}

type existingDebtRequest struct {
	CurrentLoans   *decimal.Decimal `json:"currentLoans" binding:"required"`
	CreditCardDebt *decimal.Decimal `json:"creditCardDebt" binding:"required"`
	OtherDebt      *decimal.Decimal `json:"otherDebt" binding:"required"`
}

func (h *ProfileHandlers) submit(c *gin.Context, section core.Section, data any, message string) {
	rec, err := h.profiles.Submit(c.Request.Context(), userIDFrom(c), section, data)
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusCreated, rec, message)
}

// FamilyBackground handles the family background form.
func (h *ProfileHandlers) FamilyBackground(c *gin.Context) {
	var req familyBackgroundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, &core.ValidationError{})
		return
	}

	h.submit(c, core.SectionFamilyBackground, core.FamilyBackground{
		HouseholdSize: *req.HouseholdSize,
		Dependents:    *req.Dependents,
		FamilyIncome:  *req.FamilyIncome,
	}, "Family background added successfully")
}

// CareerInfo handles the career info form.
func (h *ProfileHandlers) CareerInfo(c *gin.Context) {
	var req careerInfoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, &core.ValidationError{})
		return
	}

	h.submit(c, core.SectionCareerInfo, core.CareerInfo{
		EmploymentStatus: *req.EmploymentStatus,
		JobStability:     *req.JobStability,
		IncomeLevel:      *req.IncomeLevel,
	}, "Career info added successfully")
}

// Expenses handles the expenses form.
func (h *ProfileHandlers) Expenses(c *gin.Context) {
	var req expensesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, &core.ValidationError{})
		return
	}

	h.submit(c, core.SectionExpenses, core.Expenses{
		FixedExpenditure:    *req.FixedExpenditure,
		VariableExpenditure: *req.VariableExpenditure,
	}, "Expenses added successfully")
}

// RiskAppetite handles the risk appetite form.
func (h *ProfileHandlers) RiskAppetite(c *gin.Context) {
	var req riskAppetiteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, &core.ValidationError{})
		return
	}

	h.submit(c, core.SectionRiskAppetite, core.RiskAppetite{
		RiskLevel: *req.RiskLevel,
	}, "Risk appetite added successfully")
}

// FinancialGoals handles the financial goals form.
func (h *ProfileHandlers) FinancialGoals(c *gin.Context) {
	var req financialGoalsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, &core.ValidationError{})
		return
	}

	h.submit(c, core.SectionFinancialGoals, core.FinancialGoals{
		GoalType:       *req.GoalType,
		ExpectedReturn: *req.ExpectedReturn,
	}, "Financial goals added successfully")
}

// ExistingDebt handles the existing debt form.
func (h *ProfileHandlers) ExistingDebt(c *gin.Context) {
	var req existingDebtRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, &core.ValidationError{})
		return
	}

	h.submit(c, core.SectionExistingDebt, core.ExistingDebt{
		CurrentLoans:   *req.CurrentLoans,
		CreditCardDebt: *req.CreditCardDebt,
		OtherDebt:      *req.OtherDebt,
	}, "Existing debt added successfully")
}

// Records lists every form the authenticated user has submitted.
func (h *ProfileHandlers) Records(c *gin.Context) {
	records, err := h.profiles.Records(c.Request.Context(), userIDFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, records, "Profile records fetched successfully")
}
