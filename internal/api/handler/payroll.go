package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/talentops/talentops/internal/api/middleware"
	"github.com/talentops/talentops/internal/service"
)

// PayrollHandler exposes payroll generation and payslip issuance.
type PayrollHandler struct {
	svc *service.PayrollService
}

// NewPayrollHandler creates a PayrollHandler.
func NewPayrollHandler(svc *service.PayrollService) *PayrollHandler {
	return &PayrollHandler{svc: svc}
}

// Generate computes one employee-month of pay from attendance and leave.
func (h *PayrollHandler) Generate(c *gin.Context) {
	var body struct {
		EmployeeID string  `json:"employeeId" binding:"required"`
		Month      string  `json:"month" binding:"required"`
		BaseSalary float64 `json:"baseSalary" binding:"required"`
		Allowances float64 `json:"allowances"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "employeeId, month and baseSalary are required"})
		return
	}

	sess := middleware.GetSession(c)
	record, err := h.svc.GeneratePayroll(c.Request.Context(), body.EmployeeID, body.Month, body.BaseSalary, body.Allowances, sess)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": record})
}

// IssuePayslip creates the numbered payslip for a payroll record.
func (h *PayrollHandler) IssuePayslip(c *gin.Context) {
	sess := middleware.GetSession(c)
	record, err := h.svc.IssuePayslip(c.Request.Context(), c.Param("id"), sess)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": record})
}
