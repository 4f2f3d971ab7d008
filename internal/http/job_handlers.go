package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"jobly/internal/domain"
)

type createJobRequest struct {
	Title         string   `json:"title" binding:"required,min=1"`
	Salary        *int     `json:"salary" binding:"omitempty,min=0"`
	Equity        *float64 `json:"equity" binding:"omitempty,min=0,max=1"`
	CompanyHandle string   `json:"companyHandle" binding:"required,handle"`
}

type updateJobRequest struct {
	Title  *string                  `json:"title" binding:"omitempty,min=1"`
	Salary domain.Nullable[int]     `json:"salary" binding:"omitempty,min=0"`
	Equity domain.Nullable[float64] `json:"equity" binding:"omitempty,min=0,max=1"`
}

type jobQuery struct {
	Title     *string `form:"title" binding:"omitempty,min=1"`
	MinSalary *int    `form:"minSalary" binding:"omitempty,min=0"`
	HasEquity *bool   `form:"hasEquity"`
}

func (h *Handler) createJob(c *gin.Context) {
	var req createJobRequest
	if err := bindJSON(c, &req); err != nil {
		writeError(c, err)
		return
	}

	job, err := h.jobs.Create(c.Request.Context(), domain.Job{
		Title:         req.Title,
		Salary:        req.Salary,
		Equity:        req.Equity,
		CompanyHandle: req.CompanyHandle,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"job": jobToResponse(*job)})
}

func (h *Handler) listJobs(c *gin.Context) {
	var q jobQuery
	if err := bindQuery(c, &q, "title", "minSalary", "hasEquity"); err != nil {
		writeError(c, err)
		return
	}

	jobs, err := h.jobs.List(c.Request.Context(), domain.JobFilter{
		Title:     q.Title,
		MinSalary: q.MinSalary,
		HasEquity: q.HasEquity,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	resp := make([]JobResponse, len(jobs))
	for i := range jobs {
		resp[i] = jobToResponse(jobs[i])
	}
	c.JSON(http.StatusOK, gin.H{"jobs": resp})
}

func (h *Handler) getJob(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		writeError(c, err)
		return
	}

	job, err := h.jobs.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"job": jobToResponse(*job)})
}

func (h *Handler) updateJob(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		writeError(c, err)
		return
	}

	var req updateJobRequest
	if err := bindJSON(c, &req); err != nil {
		writeError(c, err)
		return
	}

	job, err := h.jobs.Update(c.Request.Context(), id, domain.JobPatch{
		Title:  req.Title,
		Salary: req.Salary,
		Equity: req.Equity,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"job": jobToResponse(*job)})
}

func (h *Handler) deleteJob(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		writeError(c, err)
		return
	}

	if err := h.jobs.Delete(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": id})
}
