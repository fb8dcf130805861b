package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/finbooks/finbooks_backend/internal/core/ports/services"
	"github.com/finbooks/finbooks_backend/internal/dto"
	"github.com/finbooks/finbooks_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// organizationIDKey is the gin context key holding the resolved organization ID
// for routes nested under /orgs/:org_slug.
const organizationIDKey = "organizationID"

// organizationHandler handles HTTP requests related to organizations.
type organizationHandler struct {
	orgService portssvc.OrganizationSvcFacade
}

// newOrganizationHandler creates a new organizationHandler.
func newOrganizationHandler(orgService portssvc.OrganizationSvcFacade) *organizationHandler {
	return &organizationHandler{
		orgService: orgService,
	}
}

// resolveOrganization is middleware for routes nested under /orgs/:org_slug.
// It resolves the slug to an organization ID and stores it in the context.
// Tenant authorization stays in the services; this only translates the slug.
func (h *organizationHandler) resolveOrganization(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	slug := c.Param("org_slug")

	org, err := h.orgService.GetOrganizationBySlug(c.Request.Context(), slug)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to resolve organization")
		c.Abort()
		return
	}

	c.Set(organizationIDKey, org.OrganizationID)
	c.Next()
}

// getOrganizationIDFromContext returns the organization ID set by resolveOrganization.
func getOrganizationIDFromContext(c *gin.Context) (string, bool) {
	orgID, ok := c.Get(organizationIDKey)
	if !ok {
		return "", false
	}
	id, ok := orgID.(string)
	return id, ok && id != ""
}

// createOrganization godoc
// @Summary Create an organization
// @Description Creates a new organization with the caller as its admin
// @Tags organizations
// @Accept  json
// @Produce  json
// @Param   organization body dto.CreateOrganizationRequest true "Organization details"
// @Success 201 {object} dto.OrganizationResponse "The created organization"
// @Failure 400 {object} map[string]string "Invalid request format"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 409 {object} map[string]string "Slug already taken"
// @Router /orgs [post]
func (h *organizationHandler) createOrganization(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateOrganizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for CreateOrganization", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Creator user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	org, err := h.orgService.CreateOrganization(c.Request.Context(), req, creatorUserID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create organization")
		return
	}

	logger.Info("Organization created", slog.String("organization_id", org.OrganizationID), slog.String("slug", org.Slug))
	c.JSON(http.StatusCreated, dto.ToOrganizationResponse(org))
}

// listOrganizations godoc
// @Summary List the caller's organizations
// @Description Retrieves the organizations the authenticated user belongs to
// @Tags organizations
// @Produce  json
// @Param   includeDisabled query bool false "Include deactivated organizations"
// @Success 200 {object} dto.ListOrganizationsResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Router /orgs [get]
func (h *organizationHandler) listOrganizations(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	includeDisabled := c.Query("includeDisabled") == "true"

	orgs, err := h.orgService.ListUserOrganizations(c.Request.Context(), userID, includeDisabled)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list organizations")
		return
	}

	resp := dto.ListOrganizationsResponse{
		Organizations: make([]dto.OrganizationResponse, len(orgs)),
	}
	for i := range orgs {
		resp.Organizations[i] = dto.ToOrganizationResponse(&orgs[i])
	}
	c.JSON(http.StatusOK, resp)
}

// getOrganization godoc
// @Summary Get an organization
// @Description Retrieves an organization by its slug
// @Tags organizations
// @Produce  json
// @Param   org_slug path string true "Organization slug"
// @Success 200 {object} dto.OrganizationResponse
// @Failure 404 {object} map[string]string "Organization not found"
// @Router /orgs/{org_slug} [get]
func (h *organizationHandler) getOrganization(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	orgID, ok := getOrganizationIDFromContext(c)
	if !ok {
		logger.Error("Organization ID missing from context")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve organization"})
		return
	}

	org, err := h.orgService.GetOrganizationByID(c.Request.Context(), orgID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve organization")
		return
	}

	c.JSON(http.StatusOK, dto.ToOrganizationResponse(org))
}

// addMember godoc
// @Summary Add a member to an organization
// @Description Adds a user to the organization with the given role; admin only
// @Tags organizations
// @Accept  json
// @Produce  json
// @Param   org_slug path string true "Organization slug"
// @Param   member body dto.AddMemberRequest true "User and role"
// @Success 204 "Member added"
// @Failure 400 {object} map[string]string "Invalid request format"
// @Failure 403 {object} map[string]string "Caller is not an admin"
// @Router /orgs/{org_slug}/members [post]
func (h *organizationHandler) addMember(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	orgID, ok := getOrganizationIDFromContext(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve organization"})
		return
	}

	var req dto.AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for AddMember", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	addingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.orgService.AddMember(c.Request.Context(), addingUserID, orgID, req); err != nil {
		respondServiceError(c, logger, err, "Failed to add member")
		return
	}

	logger.Info("Member added to organization", slog.String("organization_id", orgID), slog.String("member_user_id", req.UserID))
	c.Status(http.StatusNoContent)
}

// deactivateOrganization godoc
// @Summary Deactivate an organization
// @Description Marks the organization inactive; admin only
// @Tags organizations
// @Produce  json
// @Param   org_slug path string true "Organization slug"
// @Success 204 "Organization deactivated"
// @Failure 403 {object} map[string]string "Caller is not an admin"
// @Failure 409 {object} map[string]string "Already deactivated"
// @Router /orgs/{org_slug}/deactivate [post]
func (h *organizationHandler) deactivateOrganization(c *gin.Context) {
	h.setActive(c, false)
}

// activateOrganization godoc
// @Summary Reactivate an organization
// @Description Marks the organization active again; admin only
// @Tags organizations
// @Produce  json
// @Param   org_slug path string true "Organization slug"
// @Success 204 "Organization activated"
// @Failure 403 {object} map[string]string "Caller is not an admin"
// @Failure 409 {object} map[string]string "Already active"
// @Router /orgs/{org_slug}/activate [post]
func (h *organizationHandler) activateOrganization(c *gin.Context) {
	h.setActive(c, true)
}

func (h *organizationHandler) setActive(c *gin.Context, active bool) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	orgID, ok := getOrganizationIDFromContext(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve organization"})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var err error
	if active {
		err = h.orgService.ActivateOrganization(c.Request.Context(), orgID, userID)
	} else {
		err = h.orgService.DeactivateOrganization(c.Request.Context(), orgID, userID)
	}
	if err != nil {
		respondServiceError(c, logger, err, "Failed to update organization status")
		return
	}

	logger.Info("Organization status updated", slog.String("organization_id", orgID), slog.Bool("is_active", active))
	c.Status(http.StatusNoContent)
}
