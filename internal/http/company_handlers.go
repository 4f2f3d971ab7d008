package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"jobly/internal/domain"
	"jobly/internal/service"
)

const maxLogoBytes = 2 << 20

type createCompanyRequest struct {
	Handle       string  `json:"handle" binding:"required,handle"`
	Name         string  `json:"name" binding:"required,min=1"`
	Description  string  `json:"description" binding:"required"`
	NumEmployees *int    `json:"numEmployees" binding:"omitempty,min=0"`
	LogoURL      *string `json:"logoUrl" binding:"omitempty,url"`
}

type updateCompanyRequest struct {
	Name         *string                 `json:"name" binding:"omitempty,min=1"`
	Description  *string                 `json:"description"`
	NumEmployees domain.Nullable[int]    `json:"numEmployees" binding:"omitempty,min=0"`
	LogoURL      domain.Nullable[string] `json:"logoUrl" binding:"omitempty,url"`
}

type companyQuery struct {
	MinEmployees *int    `form:"minEmployees" binding:"omitempty,min=0"`
	MaxEmployees *int    `form:"maxEmployees" binding:"omitempty,min=0"`
	Name         *string `form:"name" binding:"omitempty,min=1"`
}

func (h *Handler) createCompany(c *gin.Context) {
	var req createCompanyRequest
	if err := bindJSON(c, &req); err != nil {
		writeError(c, err)
		return
	}

	company, err := h.companies.Create(c.Request.Context(), domain.Company{
		Handle:       req.Handle,
		Name:         req.Name,
		Description:  req.Description,
		NumEmployees: req.NumEmployees,
		LogoURL:      req.LogoURL,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"company": companyToResponse(*company)})
}

func (h *Handler) listCompanies(c *gin.Context) {
	var q companyQuery
	if err := bindQuery(c, &q, "minEmployees", "maxEmployees", "name"); err != nil {
		writeError(c, err)
		return
	}

	companies, err := h.companies.List(c.Request.Context(), domain.CompanyFilter{
		MinEmployees: q.MinEmployees,
		MaxEmployees: q.MaxEmployees,
		Name:         q.Name,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	resp := make([]CompanyResponse, len(companies))
	for i := range companies {
		resp[i] = companyToResponse(companies[i])
	}
	c.JSON(http.StatusOK, gin.H{"companies": resp})
}

func (h *Handler) getCompany(c *gin.Context) {
	company, err := h.companies.Get(c.Request.Context(), c.Param("handle"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"company": companyToDetailResponse(*company)})
}

func (h *Handler) updateCompany(c *gin.Context) {
	var req updateCompanyRequest
	if err := bindJSON(c, &req); err != nil {
		writeError(c, err)
		return
	}

	company, err := h.companies.Update(c.Request.Context(), c.Param("handle"), domain.CompanyPatch{
		Name:         req.Name,
		Description:  req.Description,
		NumEmployees: req.NumEmployees,
		LogoURL:      req.LogoURL,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"company": companyToResponse(*company)})
}

func (h *Handler) deleteCompany(c *gin.Context) {
	handle := c.Param("handle")

	warnings, err := h.companies.Delete(c.Request.Context(), handle)
	if err != nil {
		writeError(c, err)
		return
	}

	resp := gin.H{"deleted": handle}
	if len(warnings) > 0 {
		h.logger.WithField("handle", handle).Warnf("company deleted with warnings: %s", strings.Join(warnings, "; "))
		resp["warnings"] = warnings
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) uploadCompanyLogo(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxLogoBytes+1<<10)

	header, err := c.FormFile("logo")
	if err != nil {
		writeError(c, domain.BadRequest("logo file is required"))
		return
	}
	if header.Size > maxLogoBytes {
		writeError(c, domain.BadRequest("logo must be at most %d bytes", maxLogoBytes))
		return
	}

	contentType := header.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		writeError(c, domain.BadRequest("logo must be an image"))
		return
	}

	file, err := header.Open()
	if err != nil {
		writeError(c, err)
		return
	}
	defer file.Close()

	company, err := h.companies.UploadLogo(c.Request.Context(), c.Param("handle"), service.Upload{
		Filename:    header.Filename,
		ContentType: contentType,
		Body:        file,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"company": companyToResponse(*company)})
}
